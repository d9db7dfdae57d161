package logging

import (
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu            sync.Mutex
	managed       []*logrus.Logger
	defaultLogger Logger = NewLogrusAdapterFromLogger(logrus.StandardLogger())
)

// GetLogger returns the process-wide default logger. Packages capture it at
// init time; the root command replaces it (and re-propagates via each
// package's SetLogger) once flags and environment are read.
func GetLogger() Logger {
	mu.Lock()
	defer mu.Unlock()
	return defaultLogger
}

// SetDefault replaces the process-wide default logger. A nil logger is
// ignored.
func SetDefault(l Logger) {
	if l == nil {
		return
	}
	mu.Lock()
	defer mu.Unlock()
	defaultLogger = l
}

// SetAllLogLevels forces the given level onto the standard logrus logger and
// every logrus instance created through this package. Adapters created after
// the call pick the level up from their own configuration.
func SetAllLogLevels(level logrus.Level) {
	logrus.SetLevel(level)
	mu.Lock()
	defer mu.Unlock()
	for _, l := range managed {
		l.SetLevel(level)
	}
}

func register(l *logrus.Logger) {
	mu.Lock()
	defer mu.Unlock()
	managed = append(managed, l)
}
