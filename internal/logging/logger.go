// Package logging builds the zap logger shared by the CLI and its SDK clients.
//
// Console output goes to stderr in a human-readable encoding. When a log file
// is configured, a JSON copy of every entry is written to it through a
// rotating lumberjack sink. client-go's klog output is routed into the same
// logger so cluster API warnings do not bypass it.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
	"k8s.io/klog/v2"
)

// Options configures the logger.
type Options struct {
	// Level is one of debug, info, warn, error. Unknown values mean info.
	Level string
	// File, when set, receives JSON log entries with size-based rotation.
	File string
	// Console overrides the console writer (stderr when nil).
	Console io.Writer
}

// ParseLevel converts a level name into a zap level.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zap.DebugLevel
	case "warn", "warning":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}

// New creates a zap logger with the specified level and sinks.
func New(opts Options) (*zap.Logger, error) {
	level := zap.NewAtomicLevelAt(ParseLevel(opts.Level))

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	consoleCfg := zap.NewDevelopmentEncoderConfig()
	consoleCfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	consoleCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleCfg), zapcore.AddSync(console), level),
	}

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o750); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		fileWriter := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    50, // MB
			MaxBackups: 5,
			Compress:   true,
		}
		fileCfg := zap.NewProductionEncoderConfig()
		fileCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileCfg), zapcore.AddSync(fileWriter), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.ErrorOutput(zapcore.AddSync(console))), nil
}

// Logr adapts a zap logger to logr.
func Logr(logger *zap.Logger) logr.Logger {
	return zapr.NewLogger(logger)
}

// RouteKlog sends klog output (used by client-go) through logger.
func RouteKlog(logger *zap.Logger) {
	klog.SetLogger(Logr(logger.Named("client-go")))
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}
