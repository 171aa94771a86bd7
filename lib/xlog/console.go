package xlog

import (
	"os"

	"github.com/gravitational/trace"
	"github.com/sirupsen/logrus"
)

// InitLogger configures the standard logger for console output with full
// timestamps, trimming everything below the given level
func InitLogger(level logrus.Level) {
	logrus.StandardLogger().Hooks = make(logrus.LevelHooks)
	logrus.SetFormatter(&trace.TextFormatter{
		TextFormatter: logrus.TextFormatter{FullTimestamp: true},
	})
	logrus.SetOutput(os.Stderr)
	logrus.SetLevel(level)
}

// ConsoleLogger returns a logger which writes entries at or above the given
// level to the console
func ConsoleLogger(consoleLevel logrus.Level) *logrus.Logger {
	log := logrus.New()
	log.Level = consoleLevel
	log.Out = os.Stderr
	log.Formatter = &trace.TextFormatter{
		TextFormatter: logrus.TextFormatter{FullTimestamp: true},
	}
	return log
}
