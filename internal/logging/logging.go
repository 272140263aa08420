// Package logging provides leveled, structured logging for debugging.
//
// Output goes to stderr so it never mixes with the generated command on
// stdout. The default level is None; the -v flag switches it to Debug.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents a logging level
type Level int

const (
	// LevelDebug is for detailed debugging information
	LevelDebug Level = iota
	// LevelInfo is for general informational messages
	LevelInfo
	// LevelWarn is for warning messages
	LevelWarn
	// LevelError is for error messages
	LevelError
	// LevelNone disables all logging
	LevelNone
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a string into a Level
func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "NONE", "OFF":
		return LevelNone
	default:
		return LevelNone
	}
}

// Fields is a map of structured log fields
type Fields map[string]interface{}

// entry is a single log line
type entry struct {
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	Message   string    `json:"message"`
	Fields    Fields    `json:"fields,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// Options configures the logger
type Options struct {
	Level  Level
	JSON   bool
	Output io.Writer
}

// Logger provides leveled logging with optional structured fields
type Logger struct {
	mu     sync.Mutex
	level  Level
	json   bool
	output io.Writer
}

// DefaultLogger is the package-level logger. Silent until enabled.
var DefaultLogger = New(Options{Level: LevelNone})

// New creates a new Logger with the given options
func New(opts Options) *Logger {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	return &Logger{
		level:  opts.Level,
		json:   opts.JSON,
		output: opts.Output,
	}
}

// SetLevel changes the log level
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetOutput changes the output writer
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...Fields) {
	l.log(LevelDebug, msg, nil, fields...)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...Fields) {
	l.log(LevelInfo, msg, nil, fields...)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...Fields) {
	l.log(LevelWarn, msg, nil, fields...)
}

// Error logs an error message
func (l *Logger) Error(msg string, err error, fields ...Fields) {
	l.log(LevelError, msg, err, fields...)
}

func (l *Logger) log(level Level, msg string, err error, fields ...Fields) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}

	e := entry{
		Timestamp: time.Now(),
		Level:     level.String(),
		Message:   msg,
	}
	if len(fields) > 0 {
		merged := make(Fields)
		for _, f := range fields {
			for k, v := range f {
				merged[k] = v
			}
		}
		e.Fields = merged
	}
	if err != nil {
		e.Error = err.Error()
	}

	if l.json {
		data, merr := json.Marshal(e)
		if merr != nil {
			fmt.Fprintf(l.output, `{"error":"failed to marshal log entry: %s"}`+"\n", merr.Error())
			return
		}
		fmt.Fprintln(l.output, string(data))
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s: %s", e.Timestamp.Format("2006-01-02 15:04:05.000"), e.Level, e.Message))
	if e.Error != "" {
		sb.WriteString(fmt.Sprintf(" error=%q", e.Error))
	}
	for k, v := range e.Fields {
		sb.WriteString(fmt.Sprintf(" %s=%v", k, v))
	}
	fmt.Fprintln(l.output, sb.String())
}

// Package-level convenience functions using DefaultLogger

// Debug logs a debug message using the default logger
func Debug(msg string, fields ...Fields) {
	DefaultLogger.Debug(msg, fields...)
}

// Info logs an info message using the default logger
func Info(msg string, fields ...Fields) {
	DefaultLogger.Info(msg, fields...)
}

// Warn logs a warning message using the default logger
func Warn(msg string, fields ...Fields) {
	DefaultLogger.Warn(msg, fields...)
}

// Error logs an error message using the default logger
func Error(msg string, err error, fields ...Fields) {
	DefaultLogger.Error(msg, err, fields...)
}

// SetLevel sets the level of the default logger
func SetLevel(level Level) {
	DefaultLogger.SetLevel(level)
}
