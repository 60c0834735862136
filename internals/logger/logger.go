package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Nama logger yang dipakai aplikasi.
const (
	App   = "app"
	Audit = "audit"
)

// LogConfig mengatur level dan lokasi file log.
type LogConfig struct {
	Level      string
	LogPath    string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	// ConsoleOnly menonaktifkan file log (dipakai di test & CLI).
	ConsoleOnly bool
}

// DefaultConfig: info, ./logs, file 50MB x 5.
func DefaultConfig() *LogConfig {
	return &LogConfig{
		Level:      "info",
		LogPath:    "./logs",
		MaxSizeMB:  50,
		MaxBackups: 5,
		MaxAgeDays: 30,
	}
}

var (
	loggers   = make(map[string]*logrus.Logger)
	loggersMu sync.Mutex
	config    *LogConfig
)

// Init menyimpan konfigurasi dan menyiapkan folder log.
func Init(cfg *LogConfig) error {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if cfg == nil {
		cfg = DefaultConfig()
	}
	config = cfg
	loggers = make(map[string]*logrus.Logger)

	if cfg.ConsoleOnly {
		return nil
	}
	if err := os.MkdirAll(cfg.LogPath, 0o755); err != nil {
		return fmt.Errorf("failed to create logs directory: %w", err)
	}
	return nil
}

// GetLogger mengembalikan logger bernama (app, audit); dibuat sekali.
func GetLogger(name string) *logrus.Logger {
	loggersMu.Lock()
	defer loggersMu.Unlock()

	if config == nil {
		config = &LogConfig{Level: "info", ConsoleOnly: true}
	}
	if l, ok := loggers[name]; ok {
		return l
	}
	l := createLogger(name)
	loggers[name] = l
	return l
}

func createLogger(name string) *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{TimestampFormat: "2006-01-02 15:04:05"})

	level, err := logrus.ParseLevel(config.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	if config.ConsoleOnly {
		l.SetOutput(os.Stdout)
		return l
	}

	file := &lumberjack.Logger{
		Filename:   filepath.Join(config.LogPath, name+".log"),
		MaxSize:    config.MaxSizeMB,
		MaxBackups: config.MaxBackups,
		MaxAge:     config.MaxAgeDays,
		Compress:   true,
	}
	l.SetOutput(io.MultiWriter(os.Stdout, file))
	return l
}

// Discard membungkam semua logger (untuk test).
func Discard() {
	loggersMu.Lock()
	defer loggersMu.Unlock()
	config = &LogConfig{Level: "panic", ConsoleOnly: true}
	loggers = make(map[string]*logrus.Logger)
	for _, name := range []string{App, Audit} {
		l := logrus.New()
		l.SetOutput(io.Discard)
		loggers[name] = l
	}
}
