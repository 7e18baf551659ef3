package logging

import (
	"github.com/sirupsen/logrus"
)

// NewLogger - creates the suite logger; unknown levels fall back to info
func NewLogger(level string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
		logger.Warnf("Unknown log level %q, using info", level)
		return logger
	}
	logger.SetLevel(lvl)

	return logger
}
