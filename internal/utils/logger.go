package utils

import (
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds the process logger: human-readable text in development,
// JSON everywhere else. level overrides the environment default when it parses.
func NewLogger(env, level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if env == "development" {
		logger.SetLevel(logrus.DebugLevel)
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		logger.SetLevel(logrus.InfoLevel)
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	if level != "" {
		if lvl, err := logrus.ParseLevel(level); err == nil {
			logger.SetLevel(lvl)
		} else {
			logger.WithField("level", level).Warn("unknown LOG_LEVEL, keeping default")
		}
	}
	return logger
}
