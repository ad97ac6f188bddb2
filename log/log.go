// Package log provides the structured logger used across sinkhole's
// packages: a thin interface over zap so no package outside this one needs
// to import zap directly.
package log

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the interface every sinkhole package logs through.
type Logger interface {
	Info(keyvals ...interface{})
	Debug(keyvals ...interface{})
	Warn(keyvals ...interface{})
	Error(keyvals ...interface{})
	Fatal(keyvals ...interface{})
	Infow(msg string, keyvals ...interface{})
	Debugw(msg string, keyvals ...interface{})
	Warnw(msg string, keyvals ...interface{})
	Errorw(msg string, keyvals ...interface{})
	With(args ...interface{}) Logger
	Named(s string) Logger
}

type log struct {
	*zap.SugaredLogger
}

func (l *log) With(args ...interface{}) Logger {
	return &log{l.SugaredLogger.With(args...)}
}

func (l *log) Named(s string) Logger {
	return &log{l.SugaredLogger.Named(s)}
}

const (
	// InfoLevel logs info and above.
	InfoLevel = int(zapcore.InfoLevel)
	// DebugLevel logs everything.
	DebugLevel = int(zapcore.DebugLevel)
	// ErrorLevel logs errors and above.
	ErrorLevel = int(zapcore.ErrorLevel)
	// WarnLevel logs warnings and above.
	WarnLevel = int(zapcore.WarnLevel)
)

// DefaultLevel is used by DefaultLogger. Change it before the first call to
// DefaultLogger to alter the default verbosity.
var DefaultLevel = InfoLevel

var defaultLoggerOnce sync.Once
var defaultLogger Logger

// DefaultLogger returns the package-wide default logger, constructing it
// (JSON-encoded, writing to stdout) on first use.
func DefaultLogger() Logger {
	defaultLoggerOnce.Do(func() {
		defaultLogger = New(os.Stdout, DefaultLevel, true)
	})
	return defaultLogger
}

// New returns a logger writing to output at the given level, either as
// logfmt-ish console output or as JSON.
func New(output zapcore.WriteSyncer, level int, isJSON bool) Logger {
	if output == nil {
		output = os.Stdout
	}
	encoder := getConsoleEncoder()
	if isJSON {
		encoder = getJSONEncoder()
	}
	core := zapcore.NewCore(encoder, output, zapcore.Level(level))
	zl := zap.New(core, zap.WithCaller(true))
	return &log{zl.Sugar()}
}

func getJSONEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(cfg)
}

func getConsoleEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}
