package middleware

import (
	"strconv"

	"kocho-pos/api/response"
	apperrors "kocho-pos/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Actor identity headers. Authentication happens upstream (reverse proxy /
// auth gateway); this service trusts the forwarded identity.
const (
	ActorIDHeader   = "X-Actor-ID"
	ActorRoleHeader = "X-Actor-Role"

	ActorIDKey   = "actor_id"
	ActorRoleKey = "actor_role"

	RoleOwner = "owner"
	RoleStaff = "staff"
)

// ActorMiddleware extracts the forwarded actor identity. Requests without a
// valid actor id are rejected.
func ActorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rawID := c.GetHeader(ActorIDHeader)
		actorID, err := strconv.ParseUint(rawID, 10, 32)
		if err != nil || actorID == 0 {
			response.HandleAppError(c, apperrors.Unauthorized("missing or invalid actor identity"))
			c.Abort()
			return
		}

		role := c.GetHeader(ActorRoleHeader)
		if role == "" {
			role = RoleStaff
		}

		c.Set(ActorIDKey, uint(actorID))
		c.Set(ActorRoleKey, role)
		c.Next()
	}
}

// RequireOwner gates owner-only endpoints (expenses, profit and loss,
// inventory mutation, forced status overrides).
func RequireOwner() gin.HandlerFunc {
	return func(c *gin.Context) {
		if ActorRole(c) != RoleOwner {
			response.HandleAppError(c, apperrors.Forbidden("owner role required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// ActorID returns the authenticated actor's id, 0 when absent.
func ActorID(c *gin.Context) uint {
	if v, exists := c.Get(ActorIDKey); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// ActorRole returns the authenticated actor's role.
func ActorRole(c *gin.Context) string {
	if v, exists := c.Get(ActorRoleKey); exists {
		if role, ok := v.(string); ok {
			return role
		}
	}
	return ""
}

// IsOwner reports whether the current actor has the owner role.
func IsOwner(c *gin.Context) bool {
	return ActorRole(c) == RoleOwner
}
