package monitor_service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/iwtcode/deviceBridge/internal/interfaces"
	"github.com/iwtcode/deviceBridge/internal/middleware/logging"
	"github.com/iwtcode/deviceBridge/internal/services/telemetry"
	"github.com/iwtcode/deviceBridge/models"
)

type State int32

const (
	Stopped State = iota
	Running
	Stopping
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	default:
		return "stopped"
	}
}

const pushTimeout = time.Second

// Monitor периодически снимает статусы открытых адаптеров и отправляет их в канал телеметрии.
// Одновременно работает не более одного цикла опроса.
type Monitor struct {
	mu       sync.Mutex
	state    State
	done     chan struct{}
	exited   chan struct{}
	stopped  chan struct{}
	channel  interfaces.TelemetryChannel
	devices  interfaces.DeviceSet
	interval time.Duration
	logger   *logging.Logger

	loops atomic.Int32
	ticks atomic.Uint64
}

func NewMonitor(devices interfaces.DeviceSet, interval time.Duration, logger *logging.Logger) *Monitor {
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}
	return &Monitor{
		devices:  devices,
		interval: interval,
		logger:   logger.WithPrefix("MONITOR"),
	}
}

// Start запускает цикл опроса. Повторный вызов при работающем цикле ничего не делает.
// Если цикл как раз останавливается, Start дожидается остановки и запускает новый.
func (m *Monitor) Start(channel interfaces.TelemetryChannel) {
	m.mu.Lock()
	for m.state == Stopping {
		stopped := m.stopped
		m.mu.Unlock()
		m.logger.Debug("Monitor is stopping, start deferred")
		<-stopped
		m.mu.Lock()
	}
	defer m.mu.Unlock()

	if m.state == Running {
		m.logger.Debug("Monitor already running")
		return
	}
	m.state = Running
	m.channel = channel
	m.done = make(chan struct{})
	m.stopped = make(chan struct{})
	exited := make(chan struct{})
	m.exited = exited

	go m.run(m.done, exited, channel)
}

// Stop будит цикл, дожидается его завершения и отвязывает канал. Идемпотентен.
// stopped закрывается только после перехода в Stopped.
func (m *Monitor) Stop() {
	m.mu.Lock()
	if m.state != Running {
		var stopped chan struct{}
		if m.state == Stopping {
			stopped = m.stopped
		}
		m.mu.Unlock()
		// Параллельный Stop уже в процессе, ждем его
		if stopped != nil {
			<-stopped
		}
		return
	}
	m.state = Stopping
	close(m.done)
	exited := m.exited
	m.mu.Unlock()

	<-exited

	m.mu.Lock()
	m.state = Stopped
	m.channel = nil
	close(m.stopped)
	m.mu.Unlock()
	m.logger.Info("Status monitor stopped")
}

func (m *Monitor) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state == Running
}

func (m *Monitor) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// RunningLoops число активных горутин опроса
func (m *Monitor) RunningLoops() int { return int(m.loops.Load()) }

// Ticks число выполненных итераций опроса
func (m *Monitor) Ticks() uint64 { return m.ticks.Load() }

func (m *Monitor) run(done <-chan struct{}, exited chan<- struct{}, channel interfaces.TelemetryChannel) {
	m.loops.Add(1)
	m.logger.Info("Status monitor started", "interval", m.interval)
	defer func() {
		m.loops.Add(-1)
		close(exited)
	}()

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-done:
			return
		case <-timer.C:
			m.tick(channel)
			m.ticks.Add(1)
			// Интервал отсчитывается от конца тика, без компенсации дрейфа
			timer.Reset(m.interval)
		}
	}
}

func (m *Monitor) tick(channel interfaces.TelemetryChannel) {
	m.devices.Lock()
	defer m.devices.Unlock()

	if motion := m.devices.Motion(); motion != nil {
		m.report("motion", channel, func() (any, bool) {
			if !motion.IsOpen() {
				return nil, false
			}
			return models.NewMotionStatus(motion.Snapshot()), true
		})
	}
	if source := m.devices.Source(); source != nil {
		m.report("source", channel, func() (any, bool) {
			if !source.IsOpen() {
				return nil, false
			}
			return models.NewSourceStatus(source.Snapshot()), true
		})
	}
	if detector := m.devices.Detector(); detector != nil {
		m.report("detector", channel, func() (any, bool) {
			if !detector.IsOpen() {
				return nil, false
			}
			return models.NewDetectorStatus(detector.Snapshot()), true
		})
	}
}

// report снимает статус одного адаптера. Ошибка или паника адаптера не прерывают тик.
func (m *Monitor) report(device string, channel interfaces.TelemetryChannel, snapshot func() (any, bool)) {
	defer func() {
		if r := recover(); r != nil {
			m.logger.Error("Panic while polling device", "device", device, "panic", fmt.Sprint(r))
		}
	}()

	status, ok := snapshot()
	if !ok {
		return
	}
	payload, err := json.Marshal(status)
	if err != nil {
		m.logger.Error("Failed to serialize status", "device", device, "error", err)
		return
	}
	if channel == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), pushTimeout)
	defer cancel()
	if err := channel.Push(ctx, payload); err != nil {
		if errors.Is(err, telemetry.ErrNoClient) {
			return
		}
		m.logger.Warn("Failed to push status", "device", device, "error", err)
	}
}

var _ interfaces.StatusMonitor = (*Monitor)(nil)
