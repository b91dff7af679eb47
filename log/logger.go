// Package log provides logging for the webdriver module.
package log

import (
	"fmt"
	"io"
	"regexp"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
)

// Logger struct, utilizing logrus.
type Logger struct {
	*logrus.Logger
	mu             sync.Mutex
	lastLogCall    int64
	debugOverride  bool
	categoryFilter *regexp.Regexp
}

// New creates a new logger.
func New(logger *logrus.Logger, debugOverride bool) *Logger {
	return &Logger{
		Logger:        logger,
		debugOverride: debugOverride,
	}
}

// NewNullLogger will create a logger where log lines will
// be discarded.
func NewNullLogger() *Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(log, false)
}

// Tracef logs in trace level providing a caller category.
func (l *Logger) Tracef(category string, msg string, args ...any) {
	l.Logf(logrus.TraceLevel, category, msg, args...)
}

// Debugf logs in debug level providing a caller category.
func (l *Logger) Debugf(category string, msg string, args ...any) {
	l.Logf(logrus.DebugLevel, category, msg, args...)
}

// Errorf logs in error level providing a caller category.
func (l *Logger) Errorf(category string, msg string, args ...any) {
	l.Logf(logrus.ErrorLevel, category, msg, args...)
}

// Infof logs in info level providing a caller category.
func (l *Logger) Infof(category string, msg string, args ...any) {
	l.Logf(logrus.InfoLevel, category, msg, args...)
}

// Warnf logs in warn level providing a caller category.
func (l *Logger) Warnf(category string, msg string, args ...any) {
	l.Logf(logrus.WarnLevel, category, msg, args...)
}

// Logf logs in the given level providing a caller category.
func (l *Logger) Logf(level logrus.Level, category string, msg string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.categoryFilter != nil && !l.categoryFilter.MatchString(category) {
		return
	}

	now := time.Now().UnixMilli()
	elapsed := now - l.lastLogCall
	if l.lastLogCall == 0 {
		elapsed = 0
	}
	defer func() {
		l.lastLogCall = now
	}()

	entry := l.WithFields(logrus.Fields{
		"category": category,
		"elapsed":  fmt.Sprintf("%d ms", elapsed),
	})
	if l.GetLevel() < level && l.debugOverride {
		entry.Printf(msg, args...)
		return
	}
	entry.Logf(level, msg, args...)
}

// SetCategoryFilter enables filtering of log lines by the category field.
func (l *Logger) SetCategoryFilter(filter string) (err error) {
	if filter == "" {
		return nil
	}
	if l.categoryFilter, err = regexp.Compile(filter); err != nil {
		return fmt.Errorf("invalid category filter %q: %w", filter, err)
	}
	return nil
}

// SetLevel sets the logger level from a level string.
func (l *Logger) SetLevel(level string) error {
	pl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	l.Logger.SetLevel(pl)
	return nil
}

// DebugMode returns true if the logger level is set to Debug or higher.
func (l *Logger) DebugMode() bool {
	return l.GetLevel() >= logrus.DebugLevel
}

// ConsoleLogFormatter serializes entries for interactive use, coloring the
// category field by level.
type ConsoleLogFormatter struct {
	*logrus.TextFormatter
}

// Format assembles a colored log line from the entry.
func (f *ConsoleLogFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	if category, ok := entry.Data["category"].(string); ok {
		entry.Data["category"] = categoryColor(entry.Level)(category)
	}
	return f.TextFormatter.Format(entry)
}

func categoryColor(level logrus.Level) func(...any) string {
	switch level {
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		return color.New(color.FgRed).SprintFunc()
	case logrus.WarnLevel:
		return color.New(color.FgYellow).SprintFunc()
	case logrus.DebugLevel, logrus.TraceLevel:
		return color.New(color.FgMagenta).SprintFunc()
	default:
		return color.New(color.FgCyan).SprintFunc()
	}
}
