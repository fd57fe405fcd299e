package usecases

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/iwtcode/deviceBridge/internal/domain/entities"
	"github.com/iwtcode/deviceBridge/internal/interfaces"
	"github.com/iwtcode/deviceBridge/internal/middleware/logging"
	"github.com/iwtcode/deviceBridge/models"
	bridgeErrors "github.com/iwtcode/deviceBridge/pkg/errors"
)

const (
	DefaultJournalLimit = 50
	MaxJournalLimit     = 1000
)

type Usecase struct {
	bridge  interfaces.BridgeService
	journal interfaces.CommandJournalRepository
	channel interfaces.TelemetryChannel
	logger  *logging.Logger
}

func NewUsecase(bridge interfaces.BridgeService, journal interfaces.CommandJournalRepository, channel interfaces.TelemetryChannel, logger *logging.Logger) interfaces.Usecases {
	return &Usecase{
		bridge:  bridge,
		journal: journal,
		channel: channel,
		logger:  logger.WithPrefix("USECASE"),
	}
}

// Invoke исполняет команду и записывает результат в журнал.
// Ошибка записи в журнал не влияет на результат команды.
func (u *Usecase) Invoke(ctx context.Context, name string, args []any, isPropertySet bool) (any, error) {
	start := time.Now()
	result, err := u.bridge.Invoke(ctx, name, args, isPropertySet)
	u.record(name, args, isPropertySet, time.Since(start), err)
	return result, err
}

func (u *Usecase) record(name string, args []any, isPropertySet bool, elapsed time.Duration, callErr error) {
	argsJSON, err := json.Marshal(args)
	if err != nil {
		argsJSON = []byte(fmt.Sprintf("%q", fmt.Sprint(args)))
	}

	rec := &entities.CommandRecord{
		ID:         uuid.New().String(),
		Name:       name,
		Args:       string(argsJSON),
		Mode:       u.modeOf(name, isPropertySet),
		Outcome:    entities.OutcomeSuccess,
		DurationMs: elapsed.Milliseconds(),
		CreatedAt:  time.Now(),
	}
	if callErr != nil {
		rec.Outcome = entities.OutcomeFailed
		rec.Error = callErr.Error()
		if kind := bridgeErrors.KindOf(callErr); kind != 0 {
			rec.ErrorKind = kind.String()
		}
	}

	if err := u.journal.Create(rec); err != nil {
		u.logger.Warn("Failed to write command journal", "name", name, "error", err)
	}
}

func (u *Usecase) modeOf(name string, isPropertySet bool) string {
	for _, d := range u.bridge.Commands() {
		if d.Name == name {
			if d.IsPropertySet {
				return "property"
			}
			return d.Mode.String()
		}
	}
	if isPropertySet {
		return "property"
	}
	return "unknown"
}

func (u *Usecase) Commands() []models.CommandDescriptor {
	return u.bridge.Commands()
}

func (u *Usecase) ReadFrame(size int) ([]byte, error) {
	return u.bridge.ReadRegion(size)
}

// StartMonitoring запускает опрос статусов с выводом в канал телеметрии UI
func (u *Usecase) StartMonitoring() {
	u.bridge.Start(u.channel)
}

func (u *Usecase) StopMonitoring() {
	u.bridge.Stop()
}

func (u *Usecase) IsMonitoring() bool {
	return u.bridge.IsRunning()
}

// Journal возвращает последние записи журнала, при пустом name по всем командам
func (u *Usecase) Journal(name string, limit int) ([]entities.CommandRecord, error) {
	if limit <= 0 {
		limit = DefaultJournalLimit
	}
	if limit > MaxJournalLimit {
		limit = MaxJournalLimit
	}
	if name != "" {
		return u.journal.GetByName(name, limit)
	}
	return u.journal.GetRecent(limit)
}
