package devices

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/iwtcode/deviceBridge/models"
)

var (
	ErrNotOpen     = errors.New("device is not open")
	ErrInvalidAxis = errors.New("invalid axis index")
	ErrOutOfRange  = errors.New("position out of range")
	ErrMoveAborted = errors.New("move aborted")
)

// SimMotion программная модель манипулятора.
// Все поля защищены mu; блокирующие перемещения выполняются без удержания mu.
type SimMotion struct {
	mu         sync.Mutex
	profile    MotionProfile
	open       bool
	state      models.MotionState
	positions  []float64
	referenced []bool
	joystick   []bool
	moving     int
	drivingRef int
	generation []uint64
	doorClosed bool
}

func NewSimMotion(p MotionProfile) *SimMotion {
	return &SimMotion{profile: p, doorClosed: true}
}

func (m *SimMotion) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.open {
		return nil
	}
	n := len(m.profile.Axes)
	m.positions = make([]float64, n)
	m.referenced = make([]bool, n)
	m.joystick = make([]bool, n)
	m.generation = make([]uint64, n)
	m.state = models.MotionStandStill
	m.open = true
	return nil
}

func (m *SimMotion) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.generation {
		m.generation[i]++
	}
	m.open = false
	m.state = models.MotionNotInit
	return nil
}

func (m *SimMotion) IsOpen() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}

func (m *SimMotion) AxisCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open {
		return 0
	}
	return len(m.positions)
}

func (m *SimMotion) Axes() []models.AxisDescriptor {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.open {
		return nil
	}
	axes := make([]models.AxisDescriptor, len(m.profile.Axes))
	for i, ax := range m.profile.Axes {
		axes[i] = models.AxisDescriptor{Index: i, Name: ax.Name, MinPosition: ax.Min, MaxPosition: ax.Max}
	}
	return axes
}

func (m *SimMotion) Positions() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]float64, len(m.positions))
	copy(out, m.positions)
	return out
}

func (m *SimMotion) checkAxis(axis int) error {
	if !m.open {
		return ErrNotOpen
	}
	if axis < 0 || axis >= len(m.positions) {
		return fmt.Errorf("%w: %d", ErrInvalidAxis, axis)
	}
	return nil
}

func (m *SimMotion) StartReference(axis int) error {
	m.mu.Lock()
	if err := m.checkAxis(axis); err != nil {
		m.mu.Unlock()
		return err
	}
	m.generation[axis]++
	gen := m.generation[axis]
	m.drivingRef++
	m.state = models.MotionDrivingRef
	m.mu.Unlock()

	time.Sleep(time.Duration(m.profile.RefLatencyMs) * time.Millisecond)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.drivingRef--
	if m.generation[axis] != gen {
		m.settle()
		return ErrMoveAborted
	}
	m.positions[axis] = 0
	m.referenced[axis] = true
	m.settle()
	return nil
}

func (m *SimMotion) MoveTo(axis int, position float64) error {
	m.mu.Lock()
	if err := m.checkAxis(axis); err != nil {
		m.mu.Unlock()
		return err
	}
	ax := m.profile.Axes[axis]
	if math.IsNaN(position) || position < ax.Min || position > ax.Max {
		m.mu.Unlock()
		return fmt.Errorf("%w: axis %s, %.3f not in [%.3f, %.3f]", ErrOutOfRange, ax.Name, position, ax.Min, ax.Max)
	}
	m.generation[axis]++
	gen := m.generation[axis]
	m.moving++
	m.state = models.MotionWasStarted
	m.mu.Unlock()

	time.Sleep(time.Duration(m.profile.MoveLatencyMs) * time.Millisecond)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.moving--
	if !m.open || m.generation[axis] != gen {
		m.settle()
		return ErrMoveAborted
	}
	m.positions[axis] = position
	m.settle()
	return nil
}

func (m *SimMotion) MoveAll(positions []float64) error {
	m.mu.Lock()
	if !m.open {
		m.mu.Unlock()
		return ErrNotOpen
	}
	if len(positions) != len(m.positions) {
		n := len(m.positions)
		m.mu.Unlock()
		return fmt.Errorf("expected %d positions, got %d", n, len(positions))
	}
	m.mu.Unlock()

	var wg sync.WaitGroup
	errs := make([]error, len(positions))
	for i, pos := range positions {
		wg.Add(1)
		go func(i int, pos float64) {
			defer wg.Done()
			errs[i] = m.MoveTo(i, pos)
		}(i, pos)
	}
	wg.Wait()
	return errors.Join(errs...)
}

func (m *SimMotion) Stop(axis int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkAxis(axis); err != nil {
		return err
	}
	m.generation[axis]++
	return nil
}

func (m *SimMotion) SetJoystick(axis int, enable bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.checkAxis(axis); err != nil {
		return err
	}
	m.joystick[axis] = enable
	return nil
}

func (m *SimMotion) PositionReached() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open && m.moving == 0 && m.drivingRef == 0
}

// settle вызывается под mu после завершения движения
func (m *SimMotion) settle() {
	if !m.open {
		m.state = models.MotionNotInit
		return
	}
	switch {
	case m.drivingRef > 0:
		m.state = models.MotionDrivingRef
	case m.moving > 0:
		m.state = models.MotionWasStarted
	default:
		// Контроллер остается в WAS_STARTED после перемещения, как настоящий CNC
		if m.state != models.MotionWasStarted {
			m.state = models.MotionStandStill
		}
	}
}

func (m *SimMotion) Snapshot() models.MotionSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	positions := make([]float64, len(m.positions))
	copy(positions, m.positions)

	referenced := m.open
	joy := false
	for i := range m.referenced {
		referenced = referenced && m.referenced[i]
		joy = joy || m.joystick[i]
	}
	return models.MotionSnapshot{
		State:             m.state,
		IsMoving:          m.moving > 0,
		IsDrivingRef:      m.drivingRef > 0,
		IsReferenced:      referenced,
		IsPositionReached: m.open && m.moving == 0 && m.drivingRef == 0,
		Positions:         positions,
		Temperature:       m.profile.Temperature,
		DoorClosed:        m.doorClosed,
		JoystickEnabled:   joy,
		CollisionDetected: false,
	}
}
