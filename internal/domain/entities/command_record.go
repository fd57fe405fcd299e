package entities

import "time"

const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
)

// CommandRecord запись журнала об одном вызове команды
type CommandRecord struct {
	ID         string    `gorm:"primaryKey;type:uuid" json:"id"`
	Name       string    `gorm:"not null;index" json:"name"`
	Args       string    `json:"args"` // аргументы в JSON
	Mode       string    `gorm:"not null" json:"mode"`
	Outcome    string    `gorm:"not null" json:"outcome"` // success / failed
	ErrorKind  string    `json:"error_kind,omitempty"`
	Error      string    `json:"error,omitempty"`
	DurationMs int64     `json:"duration_ms"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}
