package main

import (
	"fmt"
	"io"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger builds the console logger. Levels: none, normal, debug.
func newLogger(level string, w io.Writer, color bool) (*zap.Logger, error) {
	var enabler zapcore.Level
	switch level {
	case "", "none":
		return zap.NewNop(), nil
	case "normal":
		enabler = zapcore.InfoLevel
	case "debug":
		enabler = zapcore.DebugLevel
	default:
		return nil, fmt.Errorf("unknown log level %q (none|normal|debug)", level)
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.TimeKey = zapcore.OmitKey
	if color {
		ec.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		ec.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(ec), zapcore.Lock(zapcore.AddSync(w)), enabler)
	return zap.New(core), nil
}

// commandLogger resolves the level from --verbose and log.level.
func commandLogger(cmd interface{ ErrOrStderr() io.Writer }) (*zap.Logger, error) {
	level := getStringWithFallback("log-level", "log.level", "none")
	if getBoolWithFallback("verbose", "verbose", false) {
		level = "debug"
	}
	return newLogger(level, cmd.ErrOrStderr(), getBoolWithFallback("color", "color", false))
}
