package api

import (
	"kocho-pos/api/catalog"
	"kocho-pos/api/customer"
	"kocho-pos/api/health"
	"kocho-pos/api/inventory"
	"kocho-pos/api/ledger"
	"kocho-pos/api/middleware"
	"kocho-pos/api/order"
	"kocho-pos/api/report"
	"kocho-pos/config"

	"github.com/gin-gonic/gin"
)

// Router Route configuration
type Router struct {
	engine              *gin.Engine
	config              *config.Config
	healthController    *health.Controller
	orderController     *order.Controller
	inventoryController *inventory.Controller
	catalogController   *catalog.Controller
	customerController  *customer.Controller
	ledgerController    *ledger.Controller
	reportController    *report.Controller
}

// NewRouter Create route configuration
func NewRouter(
	cfg *config.Config,
	healthController *health.Controller,
	orderController *order.Controller,
	inventoryController *inventory.Controller,
	catalogController *catalog.Controller,
	customerController *customer.Controller,
	ledgerController *ledger.Controller,
	reportController *report.Controller,
) *Router {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	// Middleware order matters: request ID first, then recovery and logging.
	engine.Use(middleware.RequestIDMiddleware())
	engine.Use(middleware.RecoveryMiddleware())
	engine.Use(middleware.LoggingMiddleware())
	engine.Use(middleware.CORSMiddleware(&cfg.CORS))
	engine.Use(middleware.RateLimitMiddleware(&cfg.Server.RateLimit))

	return &Router{
		engine:              engine,
		config:              cfg,
		healthController:    healthController,
		orderController:     orderController,
		inventoryController: inventoryController,
		catalogController:   catalogController,
		customerController:  customerController,
		ledgerController:    ledgerController,
		reportController:    reportController,
	}
}

// SetupRoutes Set up all routes
func (r *Router) SetupRoutes() {
	apiGroup := r.engine.Group("/api/v1")
	{
		// Health endpoints stay open for probes.
		r.healthController.RegisterRoutes(apiGroup)

		// Business endpoints require a forwarded actor identity.
		authed := apiGroup.Group("", middleware.ActorMiddleware())
		{
			r.orderController.RegisterRoutes(authed)
			r.inventoryController.RegisterRoutes(authed)
			r.catalogController.RegisterRoutes(authed)
			r.customerController.RegisterRoutes(authed)
			r.ledgerController.RegisterRoutes(authed)
			r.reportController.RegisterRoutes(authed)
		}
	}

	r.engine.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"name":    r.config.App.Name,
			"version": r.config.App.Version,
			"env":     r.config.App.Env,
			"health":  "/api/v1/health",
		})
	})
}

// GetEngine Get Gin engine
func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
