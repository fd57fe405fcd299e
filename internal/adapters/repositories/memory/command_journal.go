package memory

import (
	"sync"

	"github.com/iwtcode/deviceBridge/internal/domain/entities"
	"github.com/iwtcode/deviceBridge/internal/interfaces"
)

// CommandJournal хранит последние записи журнала в кольцевом буфере.
// Используется, когда база данных отключена.
type CommandJournal struct {
	mu       sync.RWMutex
	records  []entities.CommandRecord
	next     int
	full     bool
	capacity int
}

func NewCommandJournal(capacity int) interfaces.CommandJournalRepository {
	if capacity <= 0 {
		capacity = 1
	}
	return &CommandJournal{
		records:  make([]entities.CommandRecord, capacity),
		capacity: capacity,
	}
}

func (j *CommandJournal) Create(record *entities.CommandRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.records[j.next] = *record
	j.next = (j.next + 1) % j.capacity
	if j.next == 0 {
		j.full = true
	}
	return nil
}

// GetRecent возвращает последние записи, новые первыми
func (j *CommandJournal) GetRecent(limit int) ([]entities.CommandRecord, error) {
	return j.collect(limit, func(entities.CommandRecord) bool { return true }), nil
}

func (j *CommandJournal) GetByName(name string, limit int) ([]entities.CommandRecord, error) {
	return j.collect(limit, func(r entities.CommandRecord) bool { return r.Name == name }), nil
}

func (j *CommandJournal) collect(limit int, match func(entities.CommandRecord) bool) []entities.CommandRecord {
	j.mu.RLock()
	defer j.mu.RUnlock()

	size := j.next
	if j.full {
		size = j.capacity
	}
	out := make([]entities.CommandRecord, 0, min(limit, size))
	for i := 1; i <= size && len(out) < limit; i++ {
		r := j.records[(j.next-i+j.capacity)%j.capacity]
		if match(r) {
			out = append(out, r)
		}
	}
	return out
}
