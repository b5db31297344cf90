package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. It is a no-op logger until Init is called so
// packages can log from tests without setup.
var Log = zap.NewNop()

// Init builds the production logger, or the development one when debug is set
// or SKYSCENE_DEBUG is present in the environment.
func Init(debug bool) {
	if _, ok := os.LookupEnv("SKYSCENE_DEBUG"); ok {
		debug = true
	}

	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	l, err := cfg.Build()
	if err != nil {
		// Fall back to stderr rather than run silent
		l = zap.NewExample()
		l.Warn("Could not build configured logger", zap.Error(err))
	}
	Log = l
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	_ = Log.Sync()
}
