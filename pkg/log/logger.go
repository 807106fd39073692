package log

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Default rotation policy for on-disk logs.
const (
	maxLogSizeMB  = 10
	maxLogBackups = 5
	maxLogAgeDays = 28
)

var (
	mu          sync.RWMutex
	application *slog.Logger
	discord     *slog.Logger
	errLogger   *slog.Logger
	closers     []io.Closer
)

// SetupLogger initializes the category loggers. Each category writes to its own
// rotating file under dir and is mirrored to stdout (stderr for errors).
// Safe to call before any logger accessor; accessors fall back to stderr until then.
func SetupLogger(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	appFile := rotatingFile(filepath.Join(dir, "application.log"))
	discordFile := rotatingFile(filepath.Join(dir, "discord.log"))
	errFile := rotatingFile(filepath.Join(dir, "error.log"))

	mu.Lock()
	defer mu.Unlock()

	application = slog.New(slog.NewTextHandler(io.MultiWriter(os.Stdout, appFile), nil))
	discord = slog.New(slog.NewTextHandler(io.MultiWriter(os.Stdout, discordFile), nil))
	errLogger = slog.New(slog.NewTextHandler(io.MultiWriter(os.Stderr, errFile), nil))
	closers = []io.Closer{appFile, discordFile, errFile}

	return nil
}

// Sync closes the rotating log files. Call on shutdown.
func Sync() {
	mu.Lock()
	defer mu.Unlock()
	for _, c := range closers {
		_ = c.Close()
	}
	closers = nil
}

// ApplicationLogger returns the logger for general application events.
func ApplicationLogger() *slog.Logger {
	return get(&application)
}

// DiscordLogger returns the logger for Discord gateway and API events.
func DiscordLogger() *slog.Logger {
	return get(&discord)
}

// ErrorLogger returns the logger for error reporting.
func ErrorLogger() *slog.Logger {
	return get(&errLogger)
}

func get(l **slog.Logger) *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	if *l != nil {
		return *l
	}
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

func rotatingFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
		Compress:   true,
	}
}
