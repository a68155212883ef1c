package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	gormlogger "gorm.io/gorm/logger"
)

func TestLogModeReturnsNewAdapter(t *testing.T) {
	adapter := NewGormLoggerAdapter(gormlogger.Warn)
	changed := adapter.LogMode(gormlogger.Error)

	if changed == adapter {
		t.Error("LogMode must return a new adapter, not mutate the receiver")
	}
	if adapter.logLevel != gormlogger.Warn {
		t.Errorf("original adapter level changed to %v", adapter.logLevel)
	}
}

func TestNilConfigFallsBackToDefaults(t *testing.T) {
	adapter := NewGormLoggerAdapterWithConfig(gormlogger.Info, nil)
	if adapter.config == nil {
		t.Fatal("config is nil")
	}
	if adapter.config.SlowThreshold != 200*time.Millisecond {
		t.Errorf("unexpected slow threshold %v", adapter.config.SlowThreshold)
	}
	if !adapter.config.IgnoreRecordNotFoundError {
		t.Error("IgnoreRecordNotFoundError should default to true")
	}
}

func TestTraceSilentLevelDoesNotInvokeCallback(t *testing.T) {
	adapter := NewGormLoggerAdapter(gormlogger.Silent)

	called := false
	adapter.Trace(context.Background(), time.Now(), func() (string, int64) {
		called = true
		return "SELECT 1", 1
	}, nil)

	if called {
		t.Error("silent adapter must not evaluate the SQL callback")
	}
}

func TestTraceIgnoresRecordNotFound(t *testing.T) {
	// Must not panic and must short-circuit before logging.
	adapter := NewGormLoggerAdapter(gormlogger.Error)
	adapter.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM orders WHERE id = 42", 0
	}, gormlogger.ErrRecordNotFound)

	adapter.Trace(context.Background(), time.Now(), func() (string, int64) {
		return "SELECT * FROM orders WHERE id = 42", 0
	}, errors.New("connection reset"))
}
