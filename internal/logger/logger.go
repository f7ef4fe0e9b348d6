// internal/logger/logger.go
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	cfg "github.com/tamzrod/octolok/internal/config"
)

// New builds the process logger from the log section.
// Output "file" and "both" add a rotating file plus a separate error file.
func New(c cfg.LogConfig) (*zap.Logger, error) {
	level, err := ParseLevel(c.Level)
	if err != nil {
		return nil, err
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "logger",
		CallerKey:      "caller",
		FunctionKey:    zapcore.OmitKey,
		MessageKey:     "msg",
		StacktraceKey:  "stacktrace",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var encoder zapcore.Encoder
	if c.Format == "json" {
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	}

	var cores []zapcore.Core

	if c.Output == "" || c.Output == "stdout" || c.Output == "both" {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level))
	}

	if c.Output == "file" || c.Output == "both" {
		if err := os.MkdirAll(c.File.Path, 0o755); err != nil {
			return nil, fmt.Errorf("logger: create %s: %w", c.File.Path, err)
		}

		cores = append(cores, zapcore.NewCore(
			encoder,
			zapcore.AddSync(rotating(c.File, c.File.Filename)),
			level,
		))
		cores = append(cores, zapcore.NewCore(
			encoder,
			zapcore.AddSync(rotating(c.File, "error.log")),
			zapcore.ErrorLevel,
		))
	}

	return zap.New(
		zapcore.NewTee(cores...),
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	), nil
}

// ParseLevel maps a config level name; empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	switch s {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("logger: unknown level %q", s)
	}
}

func rotating(f cfg.LogFileConfig, name string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Join(f.Path, name),
		MaxSize:    f.MaxSize,    // MB
		MaxAge:     f.MaxAge,     // days
		MaxBackups: f.MaxBackups, // files kept
		Compress:   f.Compress,
	}
}
