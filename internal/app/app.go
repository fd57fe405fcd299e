package app

import (
	"context"
	"net/http"
	"time"

	"github.com/iwtcode/deviceBridge/internal/adapters/handlers"
	"github.com/iwtcode/deviceBridge/internal/adapters/repositories/postgres"
	"github.com/iwtcode/deviceBridge/internal/config"
	"github.com/iwtcode/deviceBridge/internal/devices"
	"github.com/iwtcode/deviceBridge/internal/interfaces"
	"github.com/iwtcode/deviceBridge/internal/middleware/logging"
	"github.com/iwtcode/deviceBridge/internal/middleware/swagger"
	"github.com/iwtcode/deviceBridge/internal/services/bridge_service"
	"github.com/iwtcode/deviceBridge/internal/services/telemetry"
	"github.com/iwtcode/deviceBridge/internal/usecases"

	"go.uber.org/fx"
)

// New создает новый экземпляр fx.App
func New() *fx.App {
	return fx.New(
		ConfigModule,
		LoggingModule,
		RepositoryModule,
		DevicesModule,
		TelemetryModule,
		ServiceModule,
		UsecaseModule,
		HttpServerModule,
		// Хуки жизненного цикла моста: автозапуск монитора и остановка в обратном порядке
		fx.Invoke(InvokeBridgeLifecycle),
	)
}

// --- Модули FX ---

var ConfigModule = fx.Module("config_module",
	fx.Provide(config.LoadConfiguration),
)

func ProvideLogger(cfg *config.AppConfig) *logging.Logger {
	loggerCfg := &logging.Config{
		Enabled:    cfg.Logging.Enable,
		Level:      cfg.Logging.Level,
		LogsDir:    cfg.Logging.LogsDir,
		SavingDays: uint(cfg.Logging.SavingDays),
	}
	return logging.NewLogger(loggerCfg, "DeviceBridgeApp")
}

var LoggingModule = fx.Module("logging_module",
	fx.Provide(ProvideLogger),
)

var RepositoryModule = fx.Module("repository_module",
	fx.Provide(postgres.NewRepository),
)

// ProvideDevices собирает набор адаптеров по профилю DEVICE_PROFILE
func ProvideDevices(cfg *config.AppConfig, logger *logging.Logger) (interfaces.DeviceSet, error) {
	profile, err := devices.LoadProfile(cfg.DeviceProfile)
	if err != nil {
		return nil, err
	}
	logger.Info("Device profile loaded", "path", cfg.DeviceProfile, "axes", len(profile.Motion.Axes),
		"width", profile.Detector.Width, "height", profile.Detector.Height)
	return devices.NewSimulatedSet(profile, logger), nil
}

var DevicesModule = fx.Module("devices_module",
	fx.Provide(ProvideDevices),
)

var TelemetryModule = fx.Module("telemetry_module",
	fx.Provide(
		telemetry.NewWebSocketChannel,
		telemetry.ProvideChannel,
	),
)

var ServiceModule = fx.Module("service_module",
	fx.Provide(bridge_service.NewBridgeService),
)

var UsecaseModule = fx.Module("usecases_module",
	fx.Provide(usecases.NewUsecases),
)

func NewSwaggerConfig(cfg *config.AppConfig) *swagger.Config {
	return &swagger.Config{
		Enabled: true,
		Path:    "/swagger",
		Host:    "localhost:" + cfg.ServerPort,
	}
}

var HttpServerModule = fx.Module("http_server_module",
	fx.Provide(
		NewSwaggerConfig,
		handlers.NewHandler,
		handlers.ProvideRouter,
	),
	fx.Invoke(InvokeHttpServer),
)

// InvokeBridgeLifecycle запускает монитор статусов при старте и освобождает
// устройства, общую память и канал телеметрии при остановке.
func InvokeBridgeLifecycle(lc fx.Lifecycle, cfg *config.AppConfig, uc interfaces.Usecases, bridge interfaces.BridgeService, channel interfaces.TelemetryChannel, logger *logging.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if cfg.Monitor.AutoStart {
				uc.StartMonitoring()
				logger.Info("Status monitor started automatically", "interval", cfg.Monitor.Interval)
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Shutting down device bridge...")
			if err := bridge.Close(ctx); err != nil {
				logger.Error("Device bridge shutdown failed", "error", err)
			}
			if err := channel.Close(); err != nil {
				logger.Warn("Failed to close telemetry channel", "error", err)
			}
			return logger.Close()
		},
	})
}

// InvokeHttpServer запускает HTTP-сервер.
func InvokeHttpServer(lc fx.Lifecycle, cfg *config.AppConfig, h http.Handler, logger *logging.Logger) {
	serverAddr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:              serverAddr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
		// Асинхронные команды держат запрос до своего таймаута
		WriteTimeout: cfg.Dispatch.Timeout + 10*time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("HTTP Server is starting", "address", serverAddr)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Error("Failed to start server", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Stopping HTTP server...")
			return server.Shutdown(ctx)
		},
	})
}
