package interfaces

import (
	"context"

	"github.com/iwtcode/deviceBridge/internal/domain/entities"
	"github.com/iwtcode/deviceBridge/models"
)

// Usecases - это агрегирующий интерфейс для всех use cases
type Usecases interface {
	Invoke(ctx context.Context, name string, args []any, isPropertySet bool) (any, error)
	Commands() []models.CommandDescriptor
	ReadFrame(size int) ([]byte, error)
	StartMonitoring()
	StopMonitoring()
	IsMonitoring() bool
	Journal(name string, limit int) ([]entities.CommandRecord, error)
}
