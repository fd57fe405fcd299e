package command_service

import (
	"sync"
	"sync/atomic"

	"github.com/iwtcode/deviceBridge/internal/interfaces"
	"github.com/iwtcode/deviceBridge/models"
)

// touchCounter считает любые обращения к фейковым адаптерам
type touchCounter struct{ n atomic.Int32 }

func (c *touchCounter) touch()     { c.n.Add(1) }
func (c *touchCounter) count() int { return int(c.n.Load()) }

type fakeMotion struct {
	*touchCounter
	mu        sync.Mutex
	open      bool
	axes      int
	positions []float64
	moveErr   error
	release   chan struct{}
}

func (m *fakeMotion) Open() error {
	m.touch()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = true
	if m.positions == nil {
		m.positions = make([]float64, m.axes)
	}
	return nil
}
func (m *fakeMotion) Close() error { m.touch(); m.open = false; return nil }
func (m *fakeMotion) IsOpen() bool {
	m.touch()
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.open
}
func (m *fakeMotion) AxisCount() int { m.touch(); return m.axes }
func (m *fakeMotion) Axes() []models.AxisDescriptor {
	m.touch()
	out := make([]models.AxisDescriptor, m.axes)
	for i := range out {
		out[i] = models.AxisDescriptor{Index: i, Name: string(rune('X' + i)), MinPosition: -10, MaxPosition: 10}
	}
	return out
}
func (m *fakeMotion) Positions() []float64 {
	m.touch()
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.positions...)
}
func (m *fakeMotion) StartReference(int) error { m.touch(); return nil }
func (m *fakeMotion) MoveTo(axis int, pos float64) error {
	m.touch()
	if m.release != nil {
		<-m.release
	}
	if m.moveErr != nil {
		return m.moveErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.positions[axis] = pos
	return nil
}
func (m *fakeMotion) MoveAll(p []float64) error   { m.touch(); return nil }
func (m *fakeMotion) Stop(int) error              { m.touch(); return nil }
func (m *fakeMotion) SetJoystick(int, bool) error { m.touch(); return nil }
func (m *fakeMotion) PositionReached() bool       { m.touch(); return true }
func (m *fakeMotion) Snapshot() models.MotionSnapshot {
	m.touch()
	return models.MotionSnapshot{State: models.MotionStandStill, IsPositionReached: true, DoorClosed: true}
}

type fakeSource struct {
	*touchCounter
	open bool
	kV   int
}

func (s *fakeSource) Open() error        { s.touch(); s.open = true; return nil }
func (s *fakeSource) Close() error       { s.touch(); s.open = false; return nil }
func (s *fakeSource) IsOpen() bool       { s.touch(); return s.open }
func (s *fakeSource) StartWarmUp() error { s.touch(); return nil }
func (s *fakeSource) SetVoltage(kV int) error {
	s.touch()
	s.kV = kV
	return nil
}
func (s *fakeSource) SetCurrent(int) error { s.touch(); return nil }
func (s *fakeSource) SetFocus(int) error   { s.touch(); return nil }
func (s *fakeSource) TurnOn() error        { s.touch(); return nil }
func (s *fakeSource) TurnOff() error       { s.touch(); return nil }
func (s *fakeSource) Snapshot() models.SourceSnapshot {
	s.touch()
	return models.SourceSnapshot{State: models.SourceOff, SetVoltage: s.kV}
}

type fakeDetector struct {
	*touchCounter
	open bool
}

func (d *fakeDetector) Open() error                               { d.touch(); d.open = true; return nil }
func (d *fakeDetector) Close() error                              { d.touch(); return nil }
func (d *fakeDetector) IsOpen() bool                              { d.touch(); return d.open }
func (d *fakeDetector) ImageSize() (int, int)                     { d.touch(); return 4, 2 }
func (d *fakeDetector) BitDepth() int                             { d.touch(); return 16 }
func (d *fakeDetector) DefineDestBuffer([]byte) error             { d.touch(); return nil }
func (d *fakeDetector) SetFrameCallback(interfaces.FrameCallback) { d.touch() }
func (d *fakeDetector) StartAcquisition() error                   { d.touch(); return nil }
func (d *fakeDetector) AbortAcquisition() error                   { d.touch(); return nil }
func (d *fakeDetector) SetGain(int) error                         { d.touch(); return nil }
func (d *fakeDetector) SetTiming(int) error                       { d.touch(); return nil }
func (d *fakeDetector) Snapshot() models.DetectorSnapshot         { d.touch(); return models.DetectorSnapshot{} }

type fakeSet struct {
	mu       sync.Mutex
	motion   *fakeMotion
	source   *fakeSource
	detector *fakeDetector
}

func newFakeSet(tc *touchCounter) *fakeSet {
	return &fakeSet{
		motion:   &fakeMotion{touchCounter: tc, axes: 4},
		source:   &fakeSource{touchCounter: tc},
		detector: &fakeDetector{touchCounter: tc},
	}
}

func (s *fakeSet) Motion() interfaces.MotionDevice     { return s.motion }
func (s *fakeSet) Source() interfaces.SourceDevice     { return s.source }
func (s *fakeSet) Detector() interfaces.DetectorDevice { return s.detector }
func (s *fakeSet) Lock()                               { s.mu.Lock() }
func (s *fakeSet) Unlock()                             { s.mu.Unlock() }
func (s *fakeSet) Close() error                        { return nil }

type fakePipeline struct {
	*touchCounter
	startErr error
	data     []byte
}

func (p *fakePipeline) Initialize(int, int, int) error { p.touch(); return nil }
func (p *fakePipeline) OnFrameReady([]byte)            { p.touch() }
func (p *fakePipeline) ReadRegion(size int) ([]byte, error) {
	p.touch()
	return p.data[:size], nil
}
func (p *fakePipeline) RegionName() string        { return "TestRegion" }
func (p *fakePipeline) InitializeDetector() error { p.touch(); return nil }
func (p *fakePipeline) StartLive() error          { p.touch(); return p.startErr }
func (p *fakePipeline) StopLive() error           { p.touch(); return nil }
