package usecases

import (
	"github.com/iwtcode/deviceBridge/internal/interfaces"
	"github.com/iwtcode/deviceBridge/internal/middleware/logging"
)

// UseCases - агрегатор всех use case интерфейсов
type UseCases struct {
	interfaces.Usecases
}

// NewUsecases - конструктор для UseCases
func NewUsecases(
	bridge interfaces.BridgeService,
	journal interfaces.CommandJournalRepository,
	channel interfaces.TelemetryChannel,
	logger *logging.Logger,
) interfaces.Usecases {
	return NewUsecase(bridge, journal, channel, logger)
}
