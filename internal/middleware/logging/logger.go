package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type Config struct {
	Enabled    bool   // Включено ли логирование
	Level      string // DEBUG, INFO, WARN, ERROR
	LogsDir    string // Директория для логов
	SavingDays uint   // Сколько дней хранить логи
}

type Logger struct {
	config *Config
	logger *logrus.Logger
	file   *os.File
	prefix string
}

func NewLogger(cfg *Config, prefix string) *Logger {
	l := &Logger{
		config: cfg,
		prefix: prefix,
	}

	var output io.Writer = os.Stdout
	if cfg.Enabled && cfg.LogsDir != "" {
		if err := os.MkdirAll(cfg.LogsDir, 0755); err == nil {
			logFile := filepath.Join(cfg.LogsDir, time.Now().Format("2006-01-02")+".log")
			if file, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644); err == nil {
				l.file = file
				output = io.MultiWriter(os.Stdout, file)
			}
		}
	}
	if !cfg.Enabled {
		output = io.Discard
	}

	l.logger = newLogrus(output, cfg.Level)

	if cfg.Enabled && cfg.SavingDays > 0 && cfg.LogsDir != "" {
		go l.cleanOldLogs()
	}

	return l
}

// NewWithWriter создает логгер без файлового вывода. Используется в тестах.
func NewWithWriter(w io.Writer, level, prefix string) *Logger {
	return &Logger{
		config: &Config{Enabled: true, Level: level},
		logger: newLogrus(w, level),
		prefix: prefix,
	}
}

// FromLogrus оборачивает готовый *logrus.Logger, например настроенный библиотечным клиентом.
func FromLogrus(lg *logrus.Logger, prefix string) *Logger {
	return &Logger{
		config: &Config{Enabled: lg.Out != io.Discard, Level: lg.GetLevel().String()},
		logger: lg,
		prefix: prefix,
	}
}

// Nop возвращает логгер, который ничего не пишет.
func Nop() *Logger {
	return &Logger{
		config: &Config{Enabled: false},
		logger: newLogrus(io.Discard, "ERROR"),
	}
}

func newLogrus(w io.Writer, level string) *logrus.Logger {
	lg := logrus.New()
	lg.SetOutput(w)
	lg.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = logrus.InfoLevel
	}
	lg.SetLevel(lvl)
	return lg
}

func (l *Logger) WithPrefix(prefix string) *Logger {
	newPrefix := l.prefix
	if newPrefix != "" {
		newPrefix += " "
	}
	newPrefix += "[" + prefix + "]"

	return &Logger{
		config: l.config,
		logger: l.logger,
		file:   l.file,
		prefix: newPrefix,
	}
}

// Logrus отдает нижележащий логгер для библиотек, которые принимают *logrus.Logger.
func (l *Logger) Logrus() *logrus.Logger {
	return l.logger
}

func (l *Logger) cleanOldLogs() {
	for range time.Tick(24 * time.Hour) {
		files, err := os.ReadDir(l.config.LogsDir)
		if err != nil {
			l.Error("Failed to read logs directory", "error", err)
			continue
		}

		cutoff := time.Now().AddDate(0, 0, int(-l.config.SavingDays))
		for _, file := range files {
			if info, err := file.Info(); err == nil && !file.IsDir() && info.ModTime().Before(cutoff) {
				if err := os.Remove(filepath.Join(l.config.LogsDir, file.Name())); err != nil {
					l.Error("Failed to delete old log file", "file", file.Name(), "error", err)
				}
			}
		}
	}
}

func (l *Logger) entry(fields []interface{}) *logrus.Entry {
	data := make(logrus.Fields, len(fields)/2+1)
	for i := 0; i < len(fields); i += 2 {
		key := fmt.Sprint(fields[i])
		var val interface{} = "?"
		if i+1 < len(fields) {
			val = fields[i+1]
		}
		data[key] = val
	}
	return l.logger.WithFields(data)
}

func (l *Logger) message(msg string) string {
	if l.prefix == "" {
		return msg
	}
	return l.prefix + " " + msg
}

func (l *Logger) ShouldLog(level string) bool {
	if !l.config.Enabled {
		return false
	}
	lvl, err := logrus.ParseLevel(strings.ToLower(level))
	if err != nil {
		return false
	}
	return l.logger.IsLevelEnabled(lvl)
}

func (l *Logger) Debug(msg string, fields ...interface{}) { l.entry(fields).Debug(l.message(msg)) }
func (l *Logger) Info(msg string, fields ...interface{})  { l.entry(fields).Info(l.message(msg)) }
func (l *Logger) Warn(msg string, fields ...interface{})  { l.entry(fields).Warn(l.message(msg)) }
func (l *Logger) Error(msg string, fields ...interface{}) { l.entry(fields).Error(l.message(msg)) }

func (l *Logger) Close() error {
	if l.file != nil {
		return l.file.Close()
	}
	return nil
}
