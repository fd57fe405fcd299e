package bridge

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupClient(t *testing.T) *Client {
	t.Helper()
	t.Setenv("SHM_NAME", "ClientTest-"+t.Name())
	t.Setenv("LOG_LEVEL", "off")
	t.Setenv("DISPATCH_TIMEOUT_MS", "5000")

	cfg := Load()
	require.Equal(t, 5*time.Second, cfg.Timeout)

	c, err := New(cfg, nil)
	require.NoError(t, err, "Не удалось создать клиент")
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"SHM_NAME", "DISPATCH_WORKERS", "DISPATCH_TIMEOUT_MS", "MONITOR_INTERVAL_MS", "LOG_LEVEL", "DEVICE_PROFILE"} {
		t.Setenv(key, "")
	}
	cfg := Load()
	assert.Equal(t, "DetectorImageBuffer", cfg.SharedName)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, time.Minute, cfg.Timeout)
	assert.Equal(t, 200*time.Millisecond, cfg.MonitorInterval)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestClientMotion(t *testing.T) {
	c := setupClient(t)
	ctx := context.Background()

	_, err := c.Invoke(ctx, "initializeMotion")
	require.NoError(t, err)

	v, err := c.Invoke(ctx, "moveAxis", 12.5, 0)
	require.NoError(t, err)
	assert.Equal(t, true, v)

	v, err = c.Invoke(ctx, "getPositions")
	require.NoError(t, err)
	var positions []float64
	require.NoError(t, json.Unmarshal(v.(json.RawMessage), &positions))
	assert.Equal(t, []float64{12.5, 0, 0, 0}, positions)

	require.NoError(t, c.SetProperty(ctx, "targetPosition", "1,-3.5"))
	v, err = c.Invoke(ctx, "getPositions")
	require.NoError(t, err)
	assert.Equal(t, "[12.500,-3.500,0.000,0.000]", string(v.(json.RawMessage)))
}

func TestClientFrameRoundTrip(t *testing.T) {
	c := setupClient(t)
	ctx := context.Background()

	v, err := c.Invoke(ctx, "initializeDetector")
	require.NoError(t, err)
	require.Equal(t, true, v)

	_, err = c.ReadFrame(0)
	require.Error(t, err)

	data, err := c.ReadFrame(640 * 480 * 2)
	require.NoError(t, err)
	assert.Len(t, data, 640*480*2)
	assert.Equal(t, "ClientTest-"+t.Name(), c.RegionName())
}

func TestClientCommands(t *testing.T) {
	c := setupClient(t)
	names := make(map[string]bool)
	for _, d := range c.Commands() {
		names[d.Name] = true
	}
	for _, name := range []string{"initializeMotion", "moveAxis", "getPositions", "turnOn", "startLive", "readSharedMemory"} {
		assert.True(t, names[name], name)
	}
}
