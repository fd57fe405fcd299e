package command_service

import (
	"fmt"
	"sort"
	"sync"

	"github.com/iwtcode/deviceBridge/models"
	bridgeErrors "github.com/iwtcode/deviceBridge/pkg/errors"
)

// Registry хранит описания команд по имени и по числовому идентификатору.
// Имена сравниваются побайтно с учетом регистра. Записи только добавляются.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*models.CommandDescriptor
	byID   map[int]*models.CommandDescriptor
}

func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]*models.CommandDescriptor),
		byID:   make(map[int]*models.CommandDescriptor),
	}
}

// NewDefaultRegistry регистрирует полный набор команд моста
func NewDefaultRegistry() (*Registry, error) {
	r := NewRegistry()
	for _, desc := range DefaultCommands() {
		if err := r.Register(desc); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register добавляет описание. Повтор имени или идентификатора отклоняется.
func (r *Registry) Register(desc models.CommandDescriptor) error {
	if desc.Name == "" {
		return fmt.Errorf("command with id %d has empty name", desc.ID)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[desc.Name]; exists {
		return fmt.Errorf("%w: name %q", bridgeErrors.ErrDuplicateCommand, desc.Name)
	}
	ids := append([]int{desc.ID}, desc.LegacyIDs...)
	for _, id := range ids {
		if prev, exists := r.byID[id]; exists {
			return fmt.Errorf("%w: id %d already used by %q", bridgeErrors.ErrDuplicateCommand, id, prev.Name)
		}
	}

	d := desc
	d.Args = append([]models.ArgKind(nil), desc.Args...)
	d.LegacyIDs = append([]int(nil), desc.LegacyIDs...)
	r.byName[d.Name] = &d
	for _, id := range ids {
		r.byID[id] = &d
	}
	return nil
}

func (r *Registry) ResolveByName(name string) (models.CommandDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byName[name]
	if !ok {
		return models.CommandDescriptor{}, bridgeErrors.New(bridgeErrors.KindUnknownCommand, name, "")
	}
	return *d, nil
}

func (r *Registry) ResolveByID(id int) (models.CommandDescriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.byID[id]
	if !ok {
		return models.CommandDescriptor{}, bridgeErrors.New(bridgeErrors.KindUnknownCommand, fmt.Sprintf("#%d", id), "")
	}
	return *d, nil
}

// List возвращает все команды, упорядоченные по идентификатору
func (r *Registry) List() []models.CommandDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.CommandDescriptor, 0, len(r.byName))
	for _, d := range r.byName {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
