package devices

import (
	"errors"
	"sync"

	"github.com/iwtcode/deviceBridge/internal/interfaces"
	"github.com/iwtcode/deviceBridge/internal/middleware/logging"
)

// Set владеет тремя адаптерами. mu сериализует тики монитора и освобождение адаптеров.
type Set struct {
	mu       sync.Mutex
	motion   interfaces.MotionDevice
	source   interfaces.SourceDevice
	detector interfaces.DetectorDevice
	logger   *logging.Logger
}

func NewSet(motion interfaces.MotionDevice, source interfaces.SourceDevice, detector interfaces.DetectorDevice, logger *logging.Logger) *Set {
	return &Set{
		motion:   motion,
		source:   source,
		detector: detector,
		logger:   logger.WithPrefix("DEVICES"),
	}
}

// NewSimulatedSet собирает набор программных адаптеров по профилю
func NewSimulatedSet(p *Profile, logger *logging.Logger) *Set {
	return NewSet(
		NewSimMotion(p.Motion),
		NewSimSource(p.Source),
		NewSimDetector(p.Detector),
		logger,
	)
}

func (s *Set) Motion() interfaces.MotionDevice     { return s.motion }
func (s *Set) Source() interfaces.SourceDevice     { return s.source }
func (s *Set) Detector() interfaces.DetectorDevice { return s.detector }

func (s *Set) Lock()   { s.mu.Lock() }
func (s *Set) Unlock() { s.mu.Unlock() }

// Close закрывает открытые адаптеры в порядке: детектор, источник, манипулятор
func (s *Set) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var errs []error
	for _, dev := range []struct {
		name string
		d    interfaces.Device
	}{
		{"detector", s.detector},
		{"source", s.source},
		{"motion", s.motion},
	} {
		if dev.d == nil || !dev.d.IsOpen() {
			continue
		}
		if err := dev.d.Close(); err != nil {
			s.logger.Error("Failed to close device", "device", dev.name, "error", err)
			errs = append(errs, err)
			continue
		}
		s.logger.Info("Device closed", "device", dev.name)
	}
	return errors.Join(errs...)
}

var _ interfaces.DeviceSet = (*Set)(nil)
