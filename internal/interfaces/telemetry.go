package interfaces

import (
	"context"
)

// TelemetryChannel определяет контракт для отправки данных единственному UI-клиенту
type TelemetryChannel interface {
	Push(ctx context.Context, payload []byte) error
	Close() error
}
