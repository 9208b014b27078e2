// Copyright (c) 2025 ToeiRei
// Contactbook - minimal contact list
// This source code is licensed under the MIT license found in the LICENSE file.

// Package logging is the application-wide logger. It wraps a zap
// SugaredLogger behind the small printf-style helpers used across the code.
package logging

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu    sync.RWMutex
	level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	sugar = newLogger(zapcore.Lock(os.Stderr))
)

func newLogger(ws zapcore.WriteSyncer) *zap.SugaredLogger {
	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), ws, level)
	return zap.New(core).Sugar()
}

// L returns the current logger.
func L() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	return sugar
}

// SetLogger replaces the package logger. It returns a function restoring the
// previous one, which tests use together with zaptest/observer.
func SetLogger(l *zap.Logger) (restore func()) {
	mu.Lock()
	prev := sugar
	sugar = l.Sugar()
	mu.Unlock()
	return func() {
		mu.Lock()
		sugar = prev
		mu.Unlock()
	}
}

// SetOutputFile redirects log output to the given file, appending. The TUI
// uses it so log lines do not draw over the alternate screen. closeFn puts
// the previous logger back before closing the file.
func SetOutputFile(path string) (closeFn func() error, err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, err
	}
	fileLogger := newLogger(zapcore.Lock(f))
	mu.Lock()
	prev := sugar
	sugar = fileLogger
	mu.Unlock()
	return func() error {
		mu.Lock()
		if sugar == fileLogger {
			sugar = prev
		}
		mu.Unlock()
		_ = fileLogger.Sync()
		return f.Close()
	}, nil
}

// SetDebug enables or disables debug logging for the application.
func SetDebug(enabled bool) {
	if enabled {
		level.SetLevel(zapcore.DebugLevel)
		return
	}
	level.SetLevel(zapcore.InfoLevel)
}

// DebugEnabled reports whether debug output is currently emitted.
func DebugEnabled() bool {
	return level.Enabled(zapcore.DebugLevel)
}

// Debugf logs a formatted debug message. It is a no-op unless debug is enabled.
func Debugf(format string, v ...any) {
	L().Debugf(format, v...)
}

// Infof logs an informational formatted message.
func Infof(format string, v ...any) {
	L().Infof(format, v...)
}

// Warnf logs a warning formatted message.
func Warnf(format string, v ...any) {
	L().Warnf(format, v...)
}

// Errorf logs an error formatted message.
func Errorf(format string, v ...any) {
	L().Errorf(format, v...)
}

// Printf is a convenience alias for Infof.
func Printf(format string, v ...any) {
	Infof(format, v...)
}
