// Package logutil wires up leveled logging sinks for the other utilities:
// a log file receiving Info and above, an optional debug file receiving
// everything and console output for warnings.
package logutil

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Options configures Setup.
type Options struct {
	// LogFile receives Info and above, required. Truncated on setup.
	LogFile string

	// LogDir is joined with the file names when set and created if missing.
	LogDir string

	// DebugFile additionally receives Debug records, optional.
	DebugFile string

	// Prefix is prepended to every record.
	Prefix string

	// TimeFormat defaults to time.RFC3339.
	TimeFormat string
}

// Logger fans out records to the configured sinks, each sink filters by its
// own level.
type Logger struct {
	sinks []*log.Logger
	files []*os.File
}

// Setup opens the log files and builds the sink fan-out.
func Setup(o Options) (*Logger, error) {
	if o.LogFile == "" {
		return nil, errors.New("log file is required")
	}

	if o.TimeFormat == "" {
		o.TimeFormat = time.RFC3339
	}

	if o.LogDir != "" {
		if err := os.MkdirAll(o.LogDir, 0o755); err != nil {
			return nil, err
		}
	}

	l := &Logger{}

	fileSink, err := l.openSink(o, o.LogFile, log.InfoLevel)
	if err != nil {
		return nil, err
	}

	l.sinks = append(l.sinks, fileSink)

	if o.DebugFile != "" {
		debugSink, err := l.openSink(o, o.DebugFile, log.DebugLevel)
		if err != nil {
			l.Close()

			return nil, err
		}

		l.sinks = append(l.sinks, debugSink)
	}

	// Console only carries warnings and errors, details live in the files.
	l.sinks = append(l.sinks, log.NewWithOptions(os.Stderr, log.Options{
		Level:      log.WarnLevel,
		Prefix:     o.Prefix,
		TimeFormat: o.TimeFormat,
	}))

	return l, nil
}

func (l *Logger) openSink(o Options, name string, level log.Level) (*log.Logger, error) {
	path := name
	if o.LogDir != "" {
		path = filepath.Join(o.LogDir, name)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, err
	}

	l.files = append(l.files, f)

	return log.NewWithOptions(f, log.Options{
		Level:           level,
		Prefix:          o.Prefix,
		ReportTimestamp: true,
		TimeFormat:      o.TimeFormat,
	}), nil
}

// Debug logs a debug record to all sinks.
func (l *Logger) Debug(msg string, keyvals ...interface{}) {
	for _, s := range l.sinks {
		s.Debug(msg, keyvals...)
	}
}

// Info logs an info record to all sinks.
func (l *Logger) Info(msg string, keyvals ...interface{}) {
	for _, s := range l.sinks {
		s.Info(msg, keyvals...)
	}
}

// Warn logs a warning record to all sinks.
func (l *Logger) Warn(msg string, keyvals ...interface{}) {
	for _, s := range l.sinks {
		s.Warn(msg, keyvals...)
	}
}

// Error logs an error record to all sinks.
func (l *Logger) Error(msg string, keyvals ...interface{}) {
	for _, s := range l.sinks {
		s.Error(msg, keyvals...)
	}
}

// Close closes the log files.
func (l *Logger) Close() error {
	var firstErr error

	for _, f := range l.files {
		if err := f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return firstErr
}
