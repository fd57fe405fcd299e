package bridge

import (
	"os"
	"strconv"
	"time"
)

// Config хранит модель конфигурации клиента
type Config struct {
	ProfilePath     string
	SharedName      string
	Workers         int
	Timeout         time.Duration
	MonitorInterval time.Duration
	LogLevel        string
}

// Load загружает конфигурацию из переменных окружения
func Load() *Config {
	sharedName := os.Getenv("SHM_NAME")
	if sharedName == "" {
		sharedName = "DetectorImageBuffer"
	}

	workers, err := strconv.Atoi(os.Getenv("DISPATCH_WORKERS"))
	if err != nil || workers <= 0 {
		workers = 4
	}

	timeoutMs, err := strconv.Atoi(os.Getenv("DISPATCH_TIMEOUT_MS"))
	if err != nil || timeoutMs <= 0 {
		timeoutMs = 60000
	}

	intervalMs, err := strconv.Atoi(os.Getenv("MONITOR_INTERVAL_MS"))
	if err != nil || intervalMs <= 0 {
		intervalMs = 200
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	return &Config{
		ProfilePath:     os.Getenv("DEVICE_PROFILE"),
		SharedName:      sharedName,
		Workers:         workers,
		Timeout:         time.Duration(timeoutMs) * time.Millisecond,
		MonitorInterval: time.Duration(intervalMs) * time.Millisecond,
		LogLevel:        logLevel,
	}
}
