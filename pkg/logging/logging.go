// Package logging builds the zap logger shared by the CLI, the TUI and the
// MCP server.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	// File is the rotated JSON log. Empty disables the file core.
	File string
	// Level applies to the file core: debug, info, warn or error.
	Level string
	// Console receives WARN and above in a human format. Nil disables it.
	Console io.Writer
}

// New returns a logger teeing a rotated JSON file and a console core.
func New(opts Options) (*zap.Logger, error) {
	var cores []zapcore.Core

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return nil, err
		}
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // Megabytes
			MaxBackups: 5,
			MaxAge:     30, // Days
			Compress:   true,
		}
		level := zap.NewAtomicLevel()
		if err := level.UnmarshalText([]byte(orDefault(opts.Level, "info"))); err != nil {
			return nil, err
		}
		cores = append(cores, zapcore.NewCore(jsonEncoder(), zapcore.AddSync(rotator), level))
	}

	if opts.Console != nil {
		enc := zap.NewDevelopmentEncoderConfig()
		enc.TimeKey = ""
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(enc),
			zapcore.Lock(zapcore.AddSync(opts.Console)),
			zap.WarnLevel,
		))
	}

	if len(cores) == 0 {
		return Nop(), nil
	}
	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

// Nop discards everything.
func Nop() *zap.Logger { return zap.NewNop() }

// Module tags every entry with the component name.
func Module(l *zap.Logger, name string) *zap.Logger {
	if l == nil {
		l = Nop()
	}
	return l.With(zap.String("module", name))
}

func jsonEncoder() zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.MessageKey = "message"
	cfg.LevelKey = "level"
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewJSONEncoder(cfg)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
