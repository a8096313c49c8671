// Package logger holds the process-wide zap logger.
package logger

import (
	"errors"
	"os"
	"syscall"

	"go.uber.org/zap"
)

// Log is the global logger. It discards everything until Init is called.
var Log = zap.NewNop().Sugar()

// Init sets up Log at the given level ("debug", "info", "warn", "error").
// Output goes to stderr so it never mixes with command output.
func Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = lvl
	cfg.OutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	zl, err := cfg.Build()
	if err != nil {
		return err
	}
	Log = zl.Sugar()

	return nil
}

// Sync flushes buffered log entries. Errors from syncing a terminal are
// ignored.
func Sync() error {
	if err := Log.Sync(); err != nil && !errors.Is(err, os.ErrInvalid) && !errors.Is(err, syscall.ENOTTY) {
		return err
	}

	return nil
}
