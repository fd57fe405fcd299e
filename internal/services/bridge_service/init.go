package bridge_service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iwtcode/deviceBridge/internal/config"
	"github.com/iwtcode/deviceBridge/internal/interfaces"
	"github.com/iwtcode/deviceBridge/internal/middleware/logging"
	"github.com/iwtcode/deviceBridge/internal/services/command_service"
	"github.com/iwtcode/deviceBridge/internal/services/frame_service"
	"github.com/iwtcode/deviceBridge/internal/services/monitor_service"
	"github.com/iwtcode/deviceBridge/models"
)

type bridgeService struct {
	devices    interfaces.DeviceSet
	pool       *command_service.Pool
	dispatcher *command_service.Dispatcher
	pipeline   *frame_service.Pipeline
	monitor    *monitor_service.Monitor
	logger     *logging.Logger
}

func NewBridgeService(cfg *config.AppConfig, devices interfaces.DeviceSet, channel interfaces.TelemetryChannel, logger *logging.Logger) (interfaces.BridgeService, error) {
	registry, err := command_service.NewDefaultRegistry()
	if err != nil {
		return nil, fmt.Errorf("build command registry: %w", err)
	}

	pool := command_service.NewPool(cfg.Dispatch.Workers)
	pipeline := frame_service.NewPipeline(cfg.Frame.SharedName, devices, channel, logger)
	handlers := command_service.NewBindings(devices, pipeline, logger).Handlers()

	s := &bridgeService{
		devices:    devices,
		pool:       pool,
		dispatcher: command_service.NewDispatcher(registry, handlers, pool, cfg.Dispatch.Timeout, logger),
		pipeline:   pipeline,
		monitor:    monitor_service.NewMonitor(devices, cfg.Monitor.Interval, logger),
		logger:     logger.WithPrefix("BRIDGE"),
	}
	s.logger.Info("Bridge service created", "commands", len(registry.List()),
		"workers", pool.Workers(), "asyncTimeout", cfg.Dispatch.Timeout, "region", cfg.Frame.SharedName)
	return s, nil
}

// --- Реализация методов интерфейса BridgeService ---

func (s *bridgeService) Invoke(ctx context.Context, name string, args []any, isPropertySet bool) (any, error) {
	return s.dispatcher.Invoke(ctx, name, args, isPropertySet)
}

func (s *bridgeService) Commands() []models.CommandDescriptor {
	return s.dispatcher.Commands()
}

func (s *bridgeService) Start(channel interfaces.TelemetryChannel) {
	s.monitor.Start(channel)
}

func (s *bridgeService) Stop() {
	s.monitor.Stop()
}

func (s *bridgeService) IsRunning() bool {
	return s.monitor.IsRunning()
}

func (s *bridgeService) Initialize(width, height, bitDepth int) error {
	return s.pipeline.Initialize(width, height, bitDepth)
}

func (s *bridgeService) OnFrameReady(frame []byte) {
	s.pipeline.OnFrameReady(frame)
}

func (s *bridgeService) ReadRegion(size int) ([]byte, error) {
	return s.pipeline.ReadRegion(size)
}

func (s *bridgeService) RegionName() string {
	return s.pipeline.RegionName()
}

func (s *bridgeService) InitializeDetector() error {
	return s.pipeline.InitializeDetector()
}

func (s *bridgeService) StartLive() error {
	return s.pipeline.StartLive()
}

func (s *bridgeService) StopLive() error {
	return s.pipeline.StopLive()
}

// Close останавливает монитор и захват, освобождает общую память,
// закрывает адаптеры и дожидается асинхронных команд не дольше ctx.
func (s *bridgeService) Close(ctx context.Context) error {
	s.monitor.Stop()

	var errs []error
	if err := s.pipeline.Close(); err != nil {
		errs = append(errs, fmt.Errorf("frame pipeline: %w", err))
	}
	if err := s.devices.Close(); err != nil {
		errs = append(errs, fmt.Errorf("devices: %w", err))
	}
	if err := s.pool.Close(ctx); err != nil {
		s.logger.Warn("Async commands still running at shutdown", "workers", s.pool.Running(), "error", err)
		errs = append(errs, fmt.Errorf("worker pool: %w", err))
	}

	if err := errors.Join(errs...); err != nil {
		s.logger.Error("Bridge shutdown finished with errors", "error", err)
		return err
	}
	s.logger.Info("Bridge shut down")
	return nil
}
