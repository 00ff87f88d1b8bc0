package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/omarshaarawi/gridiron/internal/config"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds the process logger. With cfg.File set, output goes to stdout
// and to a size-rotated file.
func New(cfg config.Log) *slog.Logger {
	return slog.New(slog.NewTextHandler(Writer(cfg, os.Stdout), &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	}))
}

func Writer(cfg config.Log, stdout io.Writer) io.Writer {
	if cfg.File == "" {
		return stdout
	}
	return io.MultiWriter(stdout, &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    10,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})
}

func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
