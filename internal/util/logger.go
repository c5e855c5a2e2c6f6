// Package util holds process-wide helpers shared by every layer, currently
// the zap logger bootstrap.
package util

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger

// InitLogger initializes the global logger. Production selects JSON output;
// anything else selects the human-readable development encoder. When logPath
// is non-empty, entries go to that file instead of stderr, which keeps them
// from interleaving with the interactive screen.
func InitLogger(env, logPath string) error {
	var config zap.Config

	if env == "production" {
		config = zap.NewProductionConfig()
	} else {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	if logPath != "" {
		config.OutputPaths = []string{logPath}
		config.ErrorOutputPaths = []string{logPath}
	}

	built, err := config.Build()
	if err != nil {
		return err
	}
	logger = built

	zap.ReplaceGlobals(logger)
	return nil
}

// GetLogger returns the global logger. Falls back to a development logger
// when InitLogger has not run, so tests and early startup never get nil.
func GetLogger() *zap.Logger {
	if logger == nil {
		logger, _ = zap.NewDevelopment()
	}
	return logger
}

// SyncLogger flushes any buffered log entries.
func SyncLogger() {
	if logger != nil {
		_ = logger.Sync()
	}
}
