// Package logging builds the zap logger shared by the server and the CLI.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a JSON production logger; outside production the level drops
// to debug.
func New(appEnv string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	if appEnv != "production" {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	config.EncoderConfig.TimeKey = "time"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return config.Build()
}

// Must is New for callers with no way to recover.
func Must(appEnv string) *zap.Logger {
	logger, err := New(appEnv)
	if err != nil {
		panic(err)
	}
	return logger
}
