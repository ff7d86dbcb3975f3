package logger

import (
	"go.uber.org/zap"
)

// Log is the package-level logger. It is a no-op until Initialize is called,
// so library code can log unconditionally.
var Log *zap.Logger = zap.NewNop()

func Initialize(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = zl
	return nil
}

// Security logs an audit-relevant event (rate-limit drops, failed admin
// re-verification, webhook signature mismatches). These are logged but never
// surfaced to the caller.
func Security(event string, fields ...zap.Field) {
	Log.Warn("security_event", append([]zap.Field{zap.String("event", event)}, fields...)...)
}
