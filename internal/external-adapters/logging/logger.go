// Package logging adapts logrus to the domain Logger interface.
package logging

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ochairo/crossbuild/internal/domain/interfaces"
)

// Logger writes domain log messages through a logrus entry
type Logger struct {
	entry *logrus.Entry
}

var _ interfaces.Logger = (*Logger)(nil)

// New returns a text logger writing to out at the given level
func New(out io.Writer, level logrus.Level) *Logger {
	l := logrus.New()
	l.SetOutput(out)
	l.SetLevel(level)
	l.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp:       true,
		DisableLevelTruncation: true,
		PadLevelText:           true,
	})
	return &Logger{entry: logrus.NewEntry(l)}
}

// ParseLevel parses a level name such as "debug" or "warn"
func ParseLevel(name string) (logrus.Level, error) {
	return logrus.ParseLevel(name)
}

// With returns a logger that adds fields to every message
func (l *Logger) With(fields ...interfaces.Field) *Logger {
	return &Logger{entry: l.withFields(fields)}
}

// Debug logs debug-level messages
func (l *Logger) Debug(msg string, fields ...interfaces.Field) {
	l.withFields(fields).Debug(msg)
}

// Info logs informational messages
func (l *Logger) Info(msg string, fields ...interfaces.Field) {
	l.withFields(fields).Info(msg)
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, fields ...interfaces.Field) {
	l.withFields(fields).Warn(msg)
}

// Error logs error messages
func (l *Logger) Error(msg string, fields ...interfaces.Field) {
	l.withFields(fields).Error(msg)
}

func (l *Logger) withFields(fields []interfaces.Field) *logrus.Entry {
	if len(fields) == 0 {
		return l.entry
	}
	lf := make(logrus.Fields, len(fields))
	for _, f := range fields {
		lf[f.Key] = f.Value
	}
	return l.entry.WithFields(lf)
}
