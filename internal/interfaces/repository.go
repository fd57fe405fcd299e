package interfaces

import (
	"github.com/iwtcode/deviceBridge/internal/domain/entities"
)

// CommandJournalRepository определяет контракт для журнала исполненных команд
type CommandJournalRepository interface {
	Create(record *entities.CommandRecord) error
	GetRecent(limit int) ([]entities.CommandRecord, error)
	GetByName(name string, limit int) ([]entities.CommandRecord, error)
}
