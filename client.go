package bridge

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/iwtcode/deviceBridge/internal/config"
	"github.com/iwtcode/deviceBridge/internal/devices"
	"github.com/iwtcode/deviceBridge/internal/interfaces"
	"github.com/iwtcode/deviceBridge/internal/middleware/logging"
	"github.com/iwtcode/deviceBridge/internal/services/bridge_service"
	"github.com/iwtcode/deviceBridge/models"
	"github.com/sirupsen/logrus"
)

const closeTimeout = 10 * time.Second

// TelemetryChannel получатель статусов устройств и уведомлений о кадрах
type TelemetryChannel = interfaces.TelemetryChannel

// Client является основной точкой входа для встраивания моста в другое приложение.
type Client struct {
	service interfaces.BridgeService
	config  *Config
	logger  *logrus.Logger
}

// New создает и возвращает новый экземпляр клиента.
// Адаптеры создаются по профилю, но не открываются: для этого служат команды initialize*.
func New(cfg *Config, channel TelemetryChannel) (*Client, error) {
	logger := logrus.New()

	if cfg.LogLevel == "off" || cfg.LogLevel == "none" {
		logger.SetOutput(io.Discard)
	} else {
		level, err := logrus.ParseLevel(cfg.LogLevel)
		if err != nil {
			level = logrus.InfoLevel
		}
		logger.SetLevel(level)
		logger.SetOutput(os.Stdout)
	}

	// Настраиваем форматтер с понятным форматом времени
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		ForceColors:     true,
		TimestampFormat: "2006-01-02 15:04:05",
	})

	profile, err := devices.LoadProfile(cfg.ProfilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load device profile: %w", err)
	}

	appLogger := logging.FromLogrus(logger, "DeviceBridge")
	appCfg := &config.AppConfig{
		Monitor:  config.MonitorConfig{Interval: cfg.MonitorInterval},
		Dispatch: config.DispatchConfig{Workers: cfg.Workers, Timeout: cfg.Timeout},
		Frame:    config.FrameConfig{SharedName: cfg.SharedName},
	}

	service, err := bridge_service.NewBridgeService(appCfg, devices.NewSimulatedSet(profile, appLogger), channel, appLogger)
	if err != nil {
		return nil, fmt.Errorf("failed to create bridge service: %w", err)
	}

	return &Client{
		service: service,
		config:  cfg,
		logger:  logger,
	}, nil
}

// Close останавливает монитор, захват и закрывает устройства.
// Зависшие асинхронные команды ожидаются не дольше closeTimeout.
func (c *Client) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()
	return c.service.Close(ctx)
}

// GetLogger возвращает используемый логгер.
func (c *Client) GetLogger() *logrus.Logger {
	return c.logger
}

// Invoke вызывает команду по имени. Асинхронные команды блокируют вызов до результата или таймаута.
func (c *Client) Invoke(ctx context.Context, name string, args ...any) (any, error) {
	return c.service.Invoke(ctx, name, args, false)
}

// SetProperty устанавливает свойство устройства (voltage, gain, targetPosition и т.д.).
func (c *Client) SetProperty(ctx context.Context, name string, value any) error {
	_, err := c.service.Invoke(ctx, name, []any{value}, true)
	return err
}

// Commands возвращает описания всех зарегистрированных команд.
func (c *Client) Commands() []models.CommandDescriptor {
	return c.service.Commands()
}

// ReadFrame возвращает копию первых size байт последнего кадра.
func (c *Client) ReadFrame(size int) ([]byte, error) {
	return c.service.ReadRegion(size)
}

// RegionName возвращает имя общей области кадров.
func (c *Client) RegionName() string {
	return c.service.RegionName()
}

// StartMonitoring запускает периодическую отправку статусов в channel.
func (c *Client) StartMonitoring(channel TelemetryChannel) {
	c.service.Start(channel)
}

// StopMonitoring останавливает опрос статусов.
func (c *Client) StopMonitoring() {
	c.service.Stop()
}
