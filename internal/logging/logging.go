package logging

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// Fields is a set of structured log fields
type Fields = log.Fields

// Logger interface that allows abstracting away the concrete logger implementation we are using
type Logger interface {
	// Fatalf causes the application to terminate with the given error message
	Fatalf(format string, args ...interface{})
	// Errorf logs a message at ERROR level
	Errorf(format string, args ...interface{})
	// Warnf logs a message at WARN level
	Warnf(format string, args ...interface{})
	// Infof logs a message at INFO level
	Infof(format string, args ...interface{})
	// Debugf logs a message at DEBUG level
	Debugf(format string, args ...interface{})
	// WithFields returns a logger that attaches the given fields to every entry
	WithFields(fields Fields) Logger
	// WithError returns a logger that attaches err to every entry
	WithError(err error) Logger
}

// NewLogger instantiates a logger writing to stdout with the given level and format ("json" or "text")
func NewLogger(level, format string) Logger {
	return NewLoggerTo(os.Stdout, level, format)
}

// NewLoggerTo is NewLogger with an explicit output
func NewLoggerTo(out io.Writer, level, format string) Logger {
	impl := log.New()
	impl.SetOutput(out)

	if format == "text" {
		impl.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	} else {
		impl.SetFormatter(&log.JSONFormatter{})
	}

	lvl, err := log.ParseLevel(level)
	if err != nil {
		lvl = log.InfoLevel
	}
	impl.SetLevel(lvl)

	return &logger{entry: log.NewEntry(impl)}
}

// Discard returns a logger that drops everything, for tests and tools
func Discard() Logger {
	return NewLoggerTo(io.Discard, "panic", "text")
}

type logger struct {
	entry *log.Entry
}

func (l *logger) Fatalf(format string, args ...interface{}) {
	l.entry.Fatalf(format, args...)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.entry.Errorf(format, args...)
}

func (l *logger) Warnf(format string, args ...interface{}) {
	l.entry.Warnf(format, args...)
}

func (l *logger) Infof(format string, args ...interface{}) {
	l.entry.Infof(format, args...)
}

func (l *logger) Debugf(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}

func (l *logger) WithFields(fields Fields) Logger {
	return &logger{entry: l.entry.WithFields(fields)}
}

func (l *logger) WithError(err error) Logger {
	return &logger{entry: l.entry.WithError(err)}
}
