// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package logging builds the application's zap logger.
//
// The TUI owns the terminal, so logs go to a rotating file by default.
// One-shot CLI commands may additionally log to stderr.
package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// =============================================================================
// CONFIGURATION
// =============================================================================

// Options configures the logger.
type Options struct {
	// Level is one of debug, info, warn, error (default: info)
	Level string

	// Format is json or console (default: json)
	Format string

	// File is the log file path. Empty disables file output.
	File string

	// MaxSizeMB before rotation (default: 10)
	MaxSizeMB int

	// MaxBackups to keep (default: 3)
	MaxBackups int

	// MaxAgeDays to keep rotated files (default: 14)
	MaxAgeDays int

	Compress bool

	// Stderr also writes console-encoded entries to stderr.
	Stderr bool
}

// DefaultOptions returns file logging at info level.
func DefaultOptions(file string) Options {
	return Options{
		Level:      "info",
		Format:     "json",
		File:       file,
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 14,
	}
}

// ValidLevels are the accepted level names.
var ValidLevels = []string{"debug", "info", "warn", "error"}

// IsValidLevel reports whether level is an accepted level name.
func IsValidLevel(level string) bool {
	level = strings.ToLower(level)
	for _, l := range ValidLevels {
		if l == level {
			return true
		}
	}
	return false
}

// =============================================================================
// LOGGER
// =============================================================================

// Logger is a zap logger whose level can change at runtime.
type Logger struct {
	*zap.Logger
	level zap.AtomicLevel
	file  *lumberjack.Logger
}

// New builds a logger from opts. With no file and no stderr output the
// logger discards everything.
func New(opts Options) (*Logger, error) {
	if opts.Level == "" {
		opts.Level = "info"
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(opts.Level))
	if err != nil {
		return nil, fmt.Errorf("failed to parse log level: %w", err)
	}
	atom := zap.NewAtomicLevelAt(lvl)

	encCfg := zapcore.EncoderConfig{
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
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}

	var cores []zapcore.Core
	l := &Logger{level: atom}

	if opts.File != "" {
		l.file = fileWriter(opts)
		var enc zapcore.Encoder
		if opts.Format == "console" {
			enc = zapcore.NewConsoleEncoder(encCfg)
		} else {
			enc = zapcore.NewJSONEncoder(encCfg)
		}
		cores = append(cores, zapcore.NewCore(enc, zapcore.AddSync(l.file), atom))
	}
	if opts.Stderr {
		consoleCfg := encCfg
		consoleCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(consoleCfg),
			zapcore.Lock(zapcore.AddSync(os.Stderr)),
			atom,
		))
	}

	if len(cores) == 0 {
		l.Logger = zap.NewNop()
		return l, nil
	}
	l.Logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	return l, nil
}

func fileWriter(opts Options) *lumberjack.Logger {
	if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log directory: %v\n", err)
	}
	if opts.MaxSizeMB <= 0 {
		opts.MaxSizeMB = 10
	}
	return &lumberjack.Logger{
		Filename:   opts.File,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   opts.Compress,
		LocalTime:  true,
	}
}

// SetLevel changes the level of every output.
func (l *Logger) SetLevel(level string) error {
	lvl, err := zapcore.ParseLevel(strings.ToLower(level))
	if err != nil {
		return err
	}
	l.level.SetLevel(lvl)
	return nil
}

// LevelName returns the current level name.
func (l *Logger) LevelName() string {
	return l.level.Level().String()
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	_ = l.Logger.Sync()
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}

// =============================================================================
// GLOBAL LOGGER
// =============================================================================

var (
	globalMu     sync.RWMutex
	globalLogger = &Logger{Logger: zap.NewNop(), level: zap.NewAtomicLevel()}
)

// SetGlobal installs l as the process logger.
func SetGlobal(l *Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalLogger = l
}

// L returns the process logger. It discards output until SetGlobal is called.
func L() *Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalLogger
}

// Named returns a child of the process logger.
func Named(name string) *zap.Logger {
	return L().Named(name)
}
