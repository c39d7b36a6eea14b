package logger

import (
	"os"

	"github.com/sirupsen/logrus"
)

// DefaultLogLevel is used when NAVIRAD_LOG_LEVEL is unset or invalid.
const DefaultLogLevel = "warn"

var log *logrus.Logger

// Init configures the global logger. Output goes to stderr so log lines never
// interleave with the interactive browser on stdout.
func Init() {
	log = logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
		FullTimestamp:   true,
	})

	logLevel := os.Getenv("NAVIRAD_LOG_LEVEL")
	if logLevel == "" {
		logLevel = DefaultLogLevel
	}
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		level = logrus.WarnLevel
	}
	log.SetLevel(level)
}

// GetLogger returns the global logger instance
func GetLogger() *logrus.Logger {
	if log == nil {
		Init()
	}
	return log
}

// WithComponent creates an entry tagged with the originating component.
func WithComponent(component string) *logrus.Entry {
	return GetLogger().WithField("component", component)
}

func Debugf(format string, args ...interface{}) {
	GetLogger().Debugf(format, args...)
}

func Infof(format string, args ...interface{}) {
	GetLogger().Infof(format, args...)
}

func Warnf(format string, args ...interface{}) {
	GetLogger().Warnf(format, args...)
}

func Errorf(format string, args ...interface{}) {
	GetLogger().Errorf(format, args...)
}
