package command_journal

import (
	"github.com/iwtcode/deviceBridge/internal/domain/entities"
)

func (r *CommandJournalRepositoryImpl) Create(record *entities.CommandRecord) error {
	return r.db.Create(record).Error
}

// GetRecent возвращает последние записи, новые первыми
func (r *CommandJournalRepositoryImpl) GetRecent(limit int) ([]entities.CommandRecord, error) {
	var records []entities.CommandRecord
	if err := r.db.Order("created_at desc").Limit(limit).Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *CommandJournalRepositoryImpl) GetByName(name string, limit int) ([]entities.CommandRecord, error) {
	var records []entities.CommandRecord
	err := r.db.Where("name = ?", name).Order("created_at desc").Limit(limit).Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
