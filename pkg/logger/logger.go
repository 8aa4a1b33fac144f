// Package logger builds the zap logger shared by the API and its middleware.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environments that get the development profile (debug level, stack traces on warn).
const (
	EnvDevelopment = "development"
	EnvLocal       = "local"
)

// New creates a JSON logger for env. level overrides the environment's default
// level when set ("debug", "info", "warn", "error").
func New(env, level string) (*zap.Logger, error) {
	cfg := configFor(env)

	if strings.TrimSpace(level) != "" {
		var parsed zapcore.Level
		if err := parsed.Set(level); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = zap.NewAtomicLevelAt(parsed)
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return l, nil
}

func configFor(env string) zap.Config {
	var cfg zap.Config
	if isDevelopment(env) {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Encoding = "json"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableStacktrace = !isDevelopment(env)
	return cfg
}

func isDevelopment(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == EnvDevelopment || env == EnvLocal
}
