// Package logging routes the standard logger to stderr and, optionally, to a
// size-rotated log file.
package logging

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mrlokans/quotevault/internal/config"
)

// Setup points the standard logger at stderr plus the configured file, if any.
// The returned writer is also suitable for gin.DefaultWriter. Close flushes
// and releases the log file.
func Setup(cfg config.Logging) (io.Writer, io.Closer) {
	out, closer := Writer(cfg, os.Stderr)
	log.SetOutput(out)
	log.SetFlags(log.LstdFlags)
	return out, closer
}

// Writer builds the log destination without touching the global logger.
func Writer(cfg config.Logging, console io.Writer) (io.Writer, io.Closer) {
	if cfg.File == "" {
		return console, nopCloser{}
	}

	file := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
	return io.MultiWriter(console, file), file
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
