package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// File configures rotated log output. An empty Path disables it.
type File struct {
	Path       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// New returns a JSON logger writing to stdout and, when f.Path is set, to a
// rotated file as well.
func New(env string, f File) *slog.Logger {
	return NewWithWriter(env, writer(f))
}

func NewWithWriter(env string, w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if env == "dev" {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

func writer(f File) io.Writer {
	if f.Path == "" {
		return os.Stdout
	}
	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			_, _ = os.Stderr.WriteString("logger: cannot create " + dir + ": " + err.Error() + ", logging to stdout only\n")
			return os.Stdout
		}
	}
	return io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   f.Path,
		MaxSize:    f.MaxSizeMB,
		MaxBackups: f.MaxBackups,
		MaxAge:     f.MaxAgeDays,
		Compress:   true,
	})
}
