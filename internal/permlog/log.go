// Package permlog provides the logr.Logger the permcheck CLI runs with,
// mirroring pkg/runtime/logr's pattern of a package-level Logger that
// callers thread through constructors rather than reaching for a global.
package permlog

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
)

// New builds a logr.Logger backed by zap at info level, or at debug level
// when debug is true (zap's debug level is what enables logr's V(1)).
func New(debug bool) logr.Logger {
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.EncoderConfig.TimeKey = "ts"
	z, err := cfg.Build()
	if err != nil {
		// Config.Build only fails on a bad encoder/sink name, which NewProductionConfig
		// never produces, so this path never triggers in practice.
		return logr.Discard()
	}
	return zapr.NewLogger(z)
}

// Nop returns a logger that discards everything, for callers that want no
// logging, e.g. NewManager(permlog.Nop()).
func Nop() logr.Logger {
	return logr.Discard()
}
