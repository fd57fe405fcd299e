package devices

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/iwtcode/deviceBridge/models"
)

var ErrSourceNotReady = errors.New("source is not ready")

// Допустимые режимы фокуса трубки
const (
	FocusSmall = iota
	FocusMedium
	FocusLarge
	FocusMax = FocusLarge
)

// SimSource программная модель рентгеновского источника
type SimSource struct {
	mu      sync.Mutex
	profile SourceProfile
	open    bool
	state   models.SourceState
	warm    bool
	beamOn  bool
	kV      int
	uA      int
	focus   int
}

func NewSimSource(p SourceProfile) *SimSource {
	return &SimSource{profile: p}
}

func (s *SimSource) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.open {
		return nil
	}
	s.open = true
	s.warm = !s.profile.StartCold
	if s.warm {
		s.state = models.SourceOff
	} else {
		s.state = models.SourceCold
	}
	return nil
}

// Close выключает излучение перед закрытием
func (s *SimSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.beamOn = false
	s.open = false
	s.state = models.SourceNotInit
	return nil
}

func (s *SimSource) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

func (s *SimSource) StartWarmUp() error {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return ErrNotOpen
	}
	if s.beamOn {
		s.mu.Unlock()
		return fmt.Errorf("%w: beam is on", ErrSourceNotReady)
	}
	s.state = models.SourceAging
	s.mu.Unlock()

	time.Sleep(time.Duration(s.profile.WarmUpMs) * time.Millisecond)

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return ErrNotOpen
	}
	s.warm = true
	s.state = models.SourceOff
	return nil
}

func (s *SimSource) SetVoltage(kV int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return ErrNotOpen
	}
	if kV < 0 || kV > s.profile.MaxVoltageKV {
		return fmt.Errorf("%w: voltage %d kV, max %d", ErrOutOfRange, kV, s.profile.MaxVoltageKV)
	}
	s.kV = kV
	return nil
}

func (s *SimSource) SetCurrent(uA int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return ErrNotOpen
	}
	if uA < 0 || uA > s.profile.MaxCurrentUA {
		return fmt.Errorf("%w: current %d uA, max %d", ErrOutOfRange, uA, s.profile.MaxCurrentUA)
	}
	s.uA = uA
	return nil
}

func (s *SimSource) SetFocus(mode int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return ErrNotOpen
	}
	if mode < FocusSmall || mode > FocusMax {
		return fmt.Errorf("%w: focus mode %d", ErrOutOfRange, mode)
	}
	s.focus = mode
	return nil
}

// TurnOn включает излучение. Холодная трубка сначала прогревается.
func (s *SimSource) TurnOn() error {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return ErrNotOpen
	}
	cold := !s.warm
	s.mu.Unlock()

	if cold {
		if err := s.StartWarmUp(); err != nil {
			return fmt.Errorf("warm-up before turn on: %w", err)
		}
	}

	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return ErrNotOpen
	}
	s.beamOn = true
	s.state = models.SourceRampingUp
	s.mu.Unlock()

	time.Sleep(time.Duration(s.profile.RampUpMs) * time.Millisecond)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.beamOn {
		s.state = models.SourceOn
	}
	return nil
}

func (s *SimSource) TurnOff() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return ErrNotOpen
	}
	s.beamOn = false
	s.state = models.SourceOff
	return nil
}

func (s *SimSource) Snapshot() models.SourceSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.SourceSnapshot{
		State:      s.state,
		IsBeamOn:   s.beamOn,
		IsWarmedUp: s.warm,
		IsBeaming:  s.state == models.SourceOn,
		SetVoltage: s.kV,
		SetCurrent: s.uA,
		FocusMode:  s.focus,
	}
}
