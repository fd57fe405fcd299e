package interfaces

import (
	"context"

	"github.com/iwtcode/deviceBridge/models"
)

// BridgeService - это агрегирующий интерфейс для всей бизнес-логики.
type BridgeService interface {
	CommandDispatcher
	StatusMonitor
	FramePipeline
	Close(ctx context.Context) error
}

// CommandDispatcher определяет контракт для исполнения команд по имени.
type CommandDispatcher interface {
	Invoke(ctx context.Context, name string, args []any, isPropertySet bool) (any, error)
	Commands() []models.CommandDescriptor
}

// StatusMonitor определяет контракт фонового опроса статусов устройств.
type StatusMonitor interface {
	Start(channel TelemetryChannel)
	Stop()
	IsRunning() bool
}

// FramePipeline определяет контракт передачи кадров детектора через общую память.
type FramePipeline interface {
	Initialize(width, height, bitDepth int) error
	OnFrameReady(frame []byte)
	ReadRegion(size int) ([]byte, error)
	RegionName() string
	InitializeDetector() error
	StartLive() error
	StopLive() error
}
