package config

import (
	"github.com/sirupsen/logrus"
)

var logger *logrus.Logger

// InitLogger configures the application-wide logrus logger from LOG_LEVEL.
func InitLogger(cfg *Config) *logrus.Logger {
	logger = logrus.New()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.IsProduction() {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}

	return logger
}

// GetLogger returns the application logger, initializing a default one if
// InitLogger has not been called (tests).
func GetLogger() *logrus.Logger {
	if logger == nil {
		logger = logrus.New()
		logger.SetLevel(logrus.WarnLevel)
	}
	return logger
}

// SetLogger sets the logger instance (primarily for testing)
func SetLogger(l *logrus.Logger) {
	logger = l
}
