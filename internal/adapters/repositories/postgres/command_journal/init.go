package command_journal

import (
	"github.com/iwtcode/deviceBridge/internal/interfaces"
	"gorm.io/gorm"
)

type CommandJournalRepositoryImpl struct {
	db *gorm.DB
}

func NewCommandJournalRepository(db *gorm.DB) interfaces.CommandJournalRepository {
	return &CommandJournalRepositoryImpl{db: db}
}
