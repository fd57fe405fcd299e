package monitor_service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/iwtcode/deviceBridge/internal/devices"
	"github.com/iwtcode/deviceBridge/internal/interfaces"
	"github.com/iwtcode/deviceBridge/internal/middleware/logging"
	"github.com/iwtcode/deviceBridge/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingChannel struct {
	mu       sync.Mutex
	messages []string
}

func (c *recordingChannel) Push(_ context.Context, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, string(payload))
	return nil
}

func (c *recordingChannel) Close() error { return nil }

func (c *recordingChannel) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.messages...)
}

// blockingChannel держит Push до release, чтобы поймать монитор в состоянии Stopping
type blockingChannel struct {
	entered chan struct{}
	release chan struct{}
}

func (c *blockingChannel) Push(ctx context.Context, _ []byte) error {
	select {
	case c.entered <- struct{}{}:
	default:
	}
	select {
	case <-c.release:
	case <-ctx.Done():
	}
	return nil
}

func (c *blockingChannel) Close() error { return nil }

// panickingSource открыт, но падает при снятии статуса
type panickingSource struct {
	interfaces.SourceDevice
}

func (panickingSource) IsOpen() bool                   { return true }
func (panickingSource) Snapshot() models.SourceSnapshot { panic("bus error") }

func newSimSet(t *testing.T) *devices.Set {
	t.Helper()
	set := devices.NewSimulatedSet(devices.DefaultProfile(), logging.Nop())
	t.Cleanup(func() { _ = set.Close() })
	return set
}

func TestStartTwiceRunsOneLoop(t *testing.T) {
	m := NewMonitor(newSimSet(t), 5*time.Millisecond, logging.Nop())
	ch := &recordingChannel{}

	m.Start(ch)
	m.Start(ch)
	require.Eventually(t, func() bool { return m.RunningLoops() == 1 }, time.Second, time.Millisecond)
	assert.True(t, m.IsRunning())

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 1, m.RunningLoops())

	m.Stop()
	m.Stop()
	assert.False(t, m.IsRunning())
	assert.Equal(t, Stopped, m.State())
	assert.Equal(t, 0, m.RunningLoops())
}

func TestConcurrentStop(t *testing.T) {
	m := NewMonitor(newSimSet(t), 5*time.Millisecond, logging.Nop())
	m.Start(&recordingChannel{})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Stop()
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, m.RunningLoops())

	m.Start(&recordingChannel{})
	assert.True(t, m.IsRunning())
	m.Stop()
}

func TestStartWhileStoppingRestarts(t *testing.T) {
	set := newSimSet(t)
	require.NoError(t, set.Motion().Open())
	m := NewMonitor(set, 5*time.Millisecond, logging.Nop())

	blocking := &blockingChannel{entered: make(chan struct{}, 1), release: make(chan struct{})}
	m.Start(blocking)
	select {
	case <-blocking.entered:
	case <-time.After(time.Second):
		t.Fatal("monitor never pushed")
	}

	stopDone := make(chan struct{})
	go func() {
		m.Stop()
		close(stopDone)
	}()
	require.Eventually(t, func() bool { return m.State() == Stopping }, time.Second, time.Millisecond)

	next := &recordingChannel{}
	startDone := make(chan struct{})
	go func() {
		m.Start(next)
		close(startDone)
	}()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, Stopping, m.State(), "start waits for the running stop")

	close(blocking.release)
	<-stopDone
	<-startDone

	assert.True(t, m.IsRunning())
	require.Eventually(t, func() bool { return len(next.snapshot()) > 0 }, time.Second, time.Millisecond)
	assert.Equal(t, 1, m.RunningLoops())
	m.Stop()
}

func TestOnlyOpenAdaptersReported(t *testing.T) {
	set := newSimSet(t)
	require.NoError(t, set.Motion().Open())

	m := NewMonitor(set, 5*time.Millisecond, logging.Nop())
	ch := &recordingChannel{}
	m.Start(ch)
	require.Eventually(t, func() bool { return m.Ticks() >= 2 }, time.Second, time.Millisecond)
	m.Stop()

	msgs := ch.snapshot()
	require.NotEmpty(t, msgs)
	for _, msg := range msgs {
		var status map[string]any
		require.NoError(t, json.Unmarshal([]byte(msg), &status))
		assert.Contains(t, status, "isDrivingRef", "only motion status expected, got %s", msg)
	}
}

func TestFailingAdapterIsSkipped(t *testing.T) {
	sim := newSimSet(t)
	require.NoError(t, sim.Motion().Open())
	set := devices.NewSet(sim.Motion(), panickingSource{}, sim.Detector(), logging.Nop())

	m := NewMonitor(set, 5*time.Millisecond, logging.Nop())
	ch := &recordingChannel{}
	m.Start(ch)
	require.Eventually(t, func() bool { return m.Ticks() >= 3 }, time.Second, time.Millisecond)
	m.Stop()

	assert.GreaterOrEqual(t, len(ch.snapshot()), 3, "motion status keeps flowing")
}

func TestStatusSchema(t *testing.T) {
	set := newSimSet(t)
	require.NoError(t, set.Source().Open())
	require.NoError(t, set.Detector().Open())

	m := NewMonitor(set, 5*time.Millisecond, logging.Nop())
	ch := &recordingChannel{}
	m.Start(ch)
	require.Eventually(t, func() bool { return len(ch.snapshot()) >= 2 }, time.Second, time.Millisecond)
	m.Stop()

	var sawSource, sawDetector bool
	for _, msg := range ch.snapshot() {
		var status map[string]any
		require.NoError(t, json.Unmarshal([]byte(msg), &status))
		if _, ok := status["isPowered"]; ok {
			sawSource = true
			assert.Equal(t, models.XrIsCold, status["status"])
		}
		if _, ok := status["isLive"]; ok {
			sawDetector = true
			assert.Equal(t, models.DetIdle, status["status"])
		}
	}
	assert.True(t, sawSource)
	assert.True(t, sawDetector)
}
