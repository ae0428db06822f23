package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Output formats
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Options controls how a Logger is built
type Options struct {
	// Level is one of debug, info, warn, error
	Level string

	// Format is console or json
	Format string

	// File, when set, receives log output instead of Writer
	File string

	// Writer receives log output when File is empty. Nil discards output.
	Writer io.Writer

	// Verbose forces debug level
	Verbose bool
}

// Logger provides structured logging scoped to a component
type Logger struct {
	component string
	base      *zap.Logger
	zl        *zap.Logger
	closer    io.Closer
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// New creates a new logger instance
func New(component string, opts Options) (*Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	if opts.Verbose {
		level = zapcore.DebugLevel
	}

	var (
		sink   zapcore.WriteSyncer
		closer io.Closer
	)
	switch {
	case opts.File != "":
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		sink, closer = zapcore.AddSync(f), f
	case opts.Writer != nil:
		sink = zapcore.AddSync(opts.Writer)
	default:
		return Nop().WithComponent(component), nil
	}

	encoder, err := newEncoder(opts.Format)
	if err != nil {
		if closer != nil {
			_ = closer.Close()
		}
		return nil, err
	}

	core := zapcore.NewCore(encoder, sink, zap.NewAtomicLevelAt(level))
	l := NewFromZap(component, zap.New(core))
	l.closer = closer
	return l, nil
}

// NewFromZap wraps an existing zap logger
func NewFromZap(component string, zl *zap.Logger) *Logger {
	return &Logger{
		component: component,
		base:      zl,
		zl:        zl.Named(componentName(component)),
	}
}

// Nop returns a logger that discards everything
func Nop() *Logger {
	return NewFromZap("main", zap.NewNop())
}

// ParseLevel converts a level name into a zap level. Empty means warn.
func ParseLevel(s string) (zapcore.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zapcore.WarnLevel, nil
	}
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(strings.ToLower(s))); err != nil {
		return level, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

func newEncoder(format string) (zapcore.Encoder, error) {
	switch format {
	case "", FormatConsole:
		cfg := zap.NewDevelopmentEncoderConfig()
		cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
		return zapcore.NewConsoleEncoder(cfg), nil
	case FormatJSON:
		return zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}
}

func componentName(component string) string {
	if component == "" {
		return "main"
	}
	return component
}

// WithComponent creates a logger with a specific component name
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		component: component,
		base:      l.base,
		zl:        l.base.Named(componentName(component)),
		closer:    l.closer,
	}
}

// Zap exposes the underlying zap logger
func (l *Logger) Zap() *zap.Logger {
	return l.zl
}

// Debug logs debug messages
func (l *Logger) Debug(msg string, args ...interface{}) {
	l.zl.Sugar().Debugf(msg, args...)
}

// Info logs informational messages
func (l *Logger) Info(msg string, args ...interface{}) {
	l.zl.Sugar().Infof(msg, args...)
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.zl.Sugar().Warnf(msg, args...)
}

// Error logs error messages
func (l *Logger) Error(msg string, args ...interface{}) {
	l.zl.Sugar().Errorf(msg, args...)
}

// DebugWithFields logs debug message with structured fields
func (l *Logger) DebugWithFields(msg string, fields []Field, args ...interface{}) {
	l.logWithFields(zapcore.DebugLevel, msg, fields, args...)
}

// InfoWithFields logs info message with structured fields
func (l *Logger) InfoWithFields(msg string, fields []Field, args ...interface{}) {
	l.logWithFields(zapcore.InfoLevel, msg, fields, args...)
}

// WarnWithFields logs warning message with structured fields
func (l *Logger) WarnWithFields(msg string, fields []Field, args ...interface{}) {
	l.logWithFields(zapcore.WarnLevel, msg, fields, args...)
}

// ErrorWithFields logs error message with structured fields
func (l *Logger) ErrorWithFields(msg string, fields []Field, args ...interface{}) {
	l.logWithFields(zapcore.ErrorLevel, msg, fields, args...)
}

func (l *Logger) logWithFields(level zapcore.Level, msg string, fields []Field, args ...interface{}) {
	ce := l.zl.Check(level, formatMessage(msg, args))
	if ce == nil {
		return
	}

	zfields := make([]zap.Field, 0, len(fields))
	for _, f := range fields {
		if err, ok := f.Value.(error); ok {
			zfields = append(zfields, zap.NamedError(f.Key, err))
			continue
		}
		zfields = append(zfields, zap.Any(f.Key, f.Value))
	}
	ce.Write(zfields...)
}

func formatMessage(msg string, args []interface{}) string {
	if len(args) == 0 {
		return msg
	}
	return fmt.Sprintf(msg, args...)
}

// Close flushes buffered output and closes the log file, if any
func (l *Logger) Close() error {
	_ = l.zl.Sync()
	if l.closer != nil {
		return l.closer.Close()
	}
	return nil
}

// Helper functions for common field types
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

func Count(value int) Field {
	return Field{Key: "count", Value: value}
}

func Duration(d time.Duration) Field {
	return Field{Key: "duration", Value: d}
}

func Error(err error) Field {
	return Field{Key: "error", Value: err}
}
