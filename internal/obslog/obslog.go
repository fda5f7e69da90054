// Package obslog builds the zap.Logger shared by internal/cli and
// internal/bench. One logger is constructed per process invocation and a
// github.com/google/uuid run id is attached to every entry so concurrent
// `cynthia bench` scenarios (internal/bench, one goroutine per scenario)
// don't interleave illegibly in the output.
package obslog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/google/uuid"

	"github.com/cynthia-ltlf/cynthia/internal/config"
)

// New builds a zap.Logger per cfg: a production (JSON) encoder when
// cfg.JSON is set, a development (console) encoder otherwise, at the level
// cfg.Level names. An unrecognized level falls back to info rather than
// failing the whole CLI invocation over a typo in cynthia.toml.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	level := parseLevel(cfg.Level)

	var zc zap.Config
	if cfg.JSON {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return logger.With(zap.String("run_id", uuid.NewString())), nil
}

func parseLevel(s string) zapcore.Level {
	switch s {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "", "info":
		return zapcore.InfoLevel
	default:
		return zapcore.InfoLevel
	}
}
