package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig содержит конфигурацию приложения
type AppConfig struct {
	ServerPort    string
	GinMode       string
	DeviceProfile string
	Database      DatabaseConfig
	Logging       LoggerConfig
	Monitor       MonitorConfig
	Dispatch      DispatchConfig
	Frame         FrameConfig
}

// LoggerConfig содержит настройки логгера
type LoggerConfig struct {
	Enable     bool
	LogsDir    string
	Level      string
	SavingDays int
}

// DatabaseConfig содержит конфигурацию для подключения к базе данных.
// При Enable=false журнал команд не сохраняется.
type DatabaseConfig struct {
	Enable   bool
	Host     string
	Port     string
	Username string
	Password string
	DBName   string
}

// MonitorConfig настройки фонового опроса статусов
type MonitorConfig struct {
	Interval  time.Duration
	AutoStart bool
}

// DispatchConfig настройки пула исполнителей асинхронных команд
type DispatchConfig struct {
	Workers int
	Timeout time.Duration
}

// FrameConfig настройки общей памяти для кадров детектора
type FrameConfig struct {
	SharedName string
}

// LoadConfiguration загружает конфигурацию из .env файла или переменных окружения
func LoadConfiguration() (*AppConfig, error) {
	_ = godotenv.Load()

	config := &AppConfig{
		ServerPort:    getEnv("APP_PORT", "8082"),
		GinMode:       getEnv("GIN_MODE", "debug"),
		DeviceProfile: getEnv("DEVICE_PROFILE", ""),
		Database: DatabaseConfig{
			Enable:   getEnvAsBool("DB_ENABLE", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Username: getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "root"),
			DBName:   getEnv("DB_NAME", "bridge_db"),
		},
		Logging: LoggerConfig{
			Enable:     getEnvAsBool("LOGGER_ENABLE", true),
			LogsDir:    getEnv("LOGGER_LOGS_DIR", "./logs"),
			Level:      getEnv("LOGGER_LOG_LEVEL", "DEBUG"),
			SavingDays: getEnvAsInt("LOGGER_SAVING_DAYS", 7),
		},
		Monitor: MonitorConfig{
			Interval:  time.Duration(getEnvAsInt("MONITOR_INTERVAL_MS", 200)) * time.Millisecond,
			AutoStart: getEnvAsBool("MONITOR_AUTOSTART", true),
		},
		Dispatch: DispatchConfig{
			Workers: getEnvAsInt("DISPATCH_WORKERS", 4),
			Timeout: time.Duration(getEnvAsInt("DISPATCH_TIMEOUT_MS", 60000)) * time.Millisecond,
		},
		Frame: FrameConfig{
			SharedName: getEnv("SHM_NAME", "DetectorImageBuffer"),
		},
	}

	return config, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvAsInt(name string, defaultValue int) int {
	valueStr := getEnv(name, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	val, _ := strconv.ParseBool(value)
	return val
}
