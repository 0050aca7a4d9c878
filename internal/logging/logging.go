package logging

import (
	"context"

	"github.com/xxxsen/common/logger"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"resetd/internal/config"
)

// Init configures the process-wide logger from the log section of the config.
func Init(cfg config.LogConfig) {
	logger.Init(
		cfg.File,
		cfg.Level,
		cfg.FileCount,
		cfg.FileSize,
		cfg.KeepDays,
		cfg.Console,
	)
}

// From returns the logger bound to ctx, with any fields stored by WithFields.
func From(ctx context.Context) *zap.Logger {
	l := logutil.GetLogger(ctx)
	if fields, ok := ctx.Value(fieldsKey{}).([]zap.Field); ok && len(fields) > 0 {
		return l.With(fields...)
	}
	return l
}

type fieldsKey struct{}

// WithFields attaches zap fields to ctx so every From(ctx) call carries them.
func WithFields(ctx context.Context, fields ...zap.Field) context.Context {
	prev, _ := ctx.Value(fieldsKey{}).([]zap.Field)
	merged := make([]zap.Field, 0, len(prev)+len(fields))
	merged = append(merged, prev...)
	merged = append(merged, fields...)
	return context.WithValue(ctx, fieldsKey{}, merged)
}
