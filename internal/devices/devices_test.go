package devices

import (
	"math"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/iwtcode/deviceBridge/internal/middleware/logging"
	"github.com/iwtcode/deviceBridge/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastProfile() *Profile {
	p := DefaultProfile()
	p.Motion.MoveLatencyMs = 1
	p.Motion.RefLatencyMs = 1
	p.Source.WarmUpMs = 1
	p.Source.RampUpMs = 1
	p.Detector.FPS = 200
	return p
}

func TestLoadProfileDefault(t *testing.T) {
	p, err := LoadProfile("")
	require.NoError(t, err)
	require.NoError(t, p.Validate())
	assert.Len(t, p.Motion.Axes, 4)
}

func TestLoadProfileFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	data := []byte(`
motion:
  axes:
    - {name: X, min: -10, max: 10}
    - {name: Y, min: -10, max: 10}
detector:
  width: 32
  height: 16
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	p, err := LoadProfile(path)
	require.NoError(t, err)
	assert.Len(t, p.Motion.Axes, 2)
	assert.Equal(t, 32, p.Detector.Width)
	assert.Equal(t, 16, p.Detector.BitDepth, "unset fields keep defaults")
}

func TestProfileValidate(t *testing.T) {
	p := DefaultProfile()
	p.Motion.Axes = append(p.Motion.Axes, p.Motion.Axes[0])
	require.ErrorContains(t, p.Validate(), "duplicate axis name")

	p = DefaultProfile()
	p.Motion.Axes = make([]AxisProfile, MaxAxes+1)
	require.Error(t, p.Validate())

	p = DefaultProfile()
	p.Detector.Width = 0
	require.ErrorContains(t, p.Validate(), "invalid image size")
}

func TestSimMotionMoveAndState(t *testing.T) {
	m := NewSimMotion(fastProfile().Motion)
	require.ErrorIs(t, m.MoveTo(0, 1), ErrNotOpen)

	require.NoError(t, m.Open())
	assert.Equal(t, 4, m.AxisCount())
	assert.Equal(t, []float64{0, 0, 0, 0}, m.Positions())

	require.NoError(t, m.MoveTo(0, 12.5))
	assert.Equal(t, 12.5, m.Positions()[0])

	snap := m.Snapshot()
	assert.Equal(t, models.MotionWasStarted, snap.State)
	assert.False(t, snap.IsMoving)
	assert.True(t, snap.IsPositionReached)

	require.ErrorIs(t, m.MoveTo(0, 1000), ErrOutOfRange)
	require.ErrorIs(t, m.MoveTo(9, 1), ErrInvalidAxis)
}

func TestSimMotionRejectsNonFinitePosition(t *testing.T) {
	m := NewSimMotion(fastProfile().Motion)
	require.NoError(t, m.Open())

	require.ErrorIs(t, m.MoveTo(0, math.NaN()), ErrOutOfRange)
	require.ErrorIs(t, m.MoveTo(1, math.Inf(1)), ErrOutOfRange)
	require.ErrorIs(t, m.MoveAll([]float64{0, math.NaN(), 0, 0}), ErrOutOfRange)
	assert.Equal(t, []float64{0, 0, 0, 0}, m.Positions())
}

func TestSimMotionStopAbortsMove(t *testing.T) {
	p := fastProfile().Motion
	p.MoveLatencyMs = 200
	m := NewSimMotion(p)
	require.NoError(t, m.Open())

	errCh := make(chan error, 1)
	go func() { errCh <- m.MoveTo(1, 5) }()

	require.Eventually(t, func() bool { return m.Snapshot().IsMoving }, time.Second, time.Millisecond)
	require.NoError(t, m.Stop(1))
	require.ErrorIs(t, <-errCh, ErrMoveAborted)
	assert.Equal(t, 0.0, m.Positions()[1])
}

func TestSimMotionMoveAll(t *testing.T) {
	m := NewSimMotion(fastProfile().Motion)
	require.NoError(t, m.Open())

	require.Error(t, m.MoveAll([]float64{1}))
	require.NoError(t, m.MoveAll([]float64{1, 2, 3, 4}))
	assert.Equal(t, []float64{1, 2, 3, 4}, m.Positions())
}

func TestSimSourceTurnOnWarmsUpColdTube(t *testing.T) {
	s := NewSimSource(fastProfile().Source)
	require.NoError(t, s.Open())
	assert.Equal(t, models.SourceCold, s.Snapshot().State)

	require.NoError(t, s.SetVoltage(120))
	require.NoError(t, s.SetCurrent(300))
	require.ErrorIs(t, s.SetVoltage(500), ErrOutOfRange)

	require.NoError(t, s.TurnOn())
	snap := s.Snapshot()
	assert.Equal(t, models.SourceOn, snap.State)
	assert.True(t, snap.IsWarmedUp)
	assert.True(t, snap.IsBeaming)
	assert.Equal(t, 120, snap.SetVoltage)

	require.NoError(t, s.Close())
	assert.False(t, s.Snapshot().IsBeamOn)
}

func TestSimDetectorDeliversFrames(t *testing.T) {
	p := fastProfile().Detector
	p.Width, p.Height = 8, 4
	d := NewSimDetector(p)
	require.NoError(t, d.Open())

	require.ErrorIs(t, d.StartAcquisition(), ErrNoDestBuffer)

	buf := make([]byte, 8*4*2)
	require.NoError(t, d.DefineDestBuffer(buf))

	var frames atomic.Int32
	d.SetFrameCallback(func(frame []byte) {
		assert.Len(t, frame, len(buf))
		frames.Add(1)
	})
	require.NoError(t, d.StartAcquisition())
	require.Eventually(t, func() bool { return frames.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	assert.True(t, d.Snapshot().IsLive)

	require.NoError(t, d.AbortAcquisition())
	require.NoError(t, d.AbortAcquisition())
	assert.False(t, d.Snapshot().IsLive)
}

func TestSetCloseSkipsClosedDevices(t *testing.T) {
	set := NewSimulatedSet(fastProfile(), logging.Nop())
	require.NoError(t, set.Motion().Open())

	require.NoError(t, set.Close())
	assert.False(t, set.Motion().IsOpen())
	assert.False(t, set.Source().IsOpen())
}
