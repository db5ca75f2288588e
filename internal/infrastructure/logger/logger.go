package logger

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

// Log is the application-wide logger
var Log *logrus.Logger

var once sync.Once

// Init sets up the global logger from LOG_LEVEL and LOG_FORMAT.
// Call it once from main.
func Init() {
	Log = newLogger(os.Stdout)
	once.Do(func() {})
}

// Get returns the global logger, creating a quiet one when Init was never
// called (tests, library use)
func Get() *logrus.Logger {
	once.Do(func() {
		if Log == nil {
			Log = newLogger(io.Discard)
		}
	})
	return Log
}

func newLogger(out io.Writer) *logrus.Logger {
	l := logrus.New()

	logLevel, ok := os.LookupEnv("LOG_LEVEL")
	if !ok {
		logLevel = "info"
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	l.SetOutput(out)
	return l
}
