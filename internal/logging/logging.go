// Package logging builds the logrus logger shared by the CLI and its packages.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"
)

// DefaultLevel keeps the CLI quiet unless something goes wrong
const DefaultLevel = "warning"

// New creates a logger writing text records to w at the named level
// (debug, info, warning, error).
func New(w io.Writer, level string) (*logrus.Logger, error) {
	if level == "" {
		level = DefaultLevel
	}
	lv, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(lv)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: lv != logrus.DebugLevel && lv != logrus.TraceLevel,
		FullTimestamp:    true,
	})
	return logger, nil
}

// Discard returns a logger that drops everything, for tests and library use
func Discard() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}
