package xlog

import (
	"fmt"
	"testing"

	"github.com/sirupsen/logrus"
)

// TestingHook forwards log entries to the test log so suite output stays
// attached to the test that produced it
type TestingHook struct {
	t *testing.T
}

func (hook *TestingHook) Fire(e *logrus.Entry) error {
	hook.t.Log(e.Message, fmt.Sprint(e.Data))
	return nil
}

// Levels returns logging levels supported by logrus
func (hook *TestingHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

// NewLogger returns a per-test logger that mirrors entries to the console
// and to t.Log
func NewLogger(t *testing.T, commonFields logrus.Fields) logrus.FieldLogger {
	log := ConsoleLogger(logrus.DebugLevel)
	log.Hooks.Add(&TestingHook{t})
	return log.WithFields(commonFields)
}
