package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/iwtcode/deviceBridge/internal/config"
	"github.com/iwtcode/deviceBridge/internal/domain/entities"
	"github.com/iwtcode/deviceBridge/internal/middleware/logging"
	"github.com/iwtcode/deviceBridge/internal/middleware/swagger"
	"github.com/iwtcode/deviceBridge/internal/services/telemetry"
	"github.com/iwtcode/deviceBridge/models"
	bridgeErrors "github.com/iwtcode/deviceBridge/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsecase struct {
	running   bool
	lastLimit int
	lastName  string
}

func (u *fakeUsecase) Invoke(_ context.Context, name string, args []any, isPropertySet bool) (any, error) {
	switch name {
	case "getPositions":
		return json.RawMessage(`[0.000,0.000,0.000,0.000]`), nil
	case "moveAxis":
		if len(args) != 2 {
			return nil, bridgeErrors.New(bridgeErrors.KindInvalidArguments, name, "expected 2 argument(s)")
		}
		return true, nil
	case "turnOn":
		return nil, bridgeErrors.New(bridgeErrors.KindNotInitialized, name, "source is not initialized")
	case "initializeMotion":
		return nil, bridgeErrors.New(bridgeErrors.KindTimeout, name, "no result after 60s")
	}
	return nil, bridgeErrors.New(bridgeErrors.KindUnknownCommand, name, "")
}

func (u *fakeUsecase) Commands() []models.CommandDescriptor {
	return []models.CommandDescriptor{{Name: "moveAxis", ID: 103, Args: []models.ArgKind{models.ArgFloat, models.ArgInt}, Mode: models.ModeAsync}}
}

func (u *fakeUsecase) ReadFrame(size int) ([]byte, error) {
	if size <= 0 {
		return nil, bridgeErrors.New(bridgeErrors.KindInvalidArguments, "", "size out of range")
	}
	return bytes.Repeat([]byte{0xAB}, size), nil
}

func (u *fakeUsecase) StartMonitoring()   { u.running = true }
func (u *fakeUsecase) StopMonitoring()    { u.running = false }
func (u *fakeUsecase) IsMonitoring() bool { return u.running }

func (u *fakeUsecase) Journal(name string, limit int) ([]entities.CommandRecord, error) {
	u.lastName, u.lastLimit = name, limit
	return []entities.CommandRecord{{ID: "1", Name: "moveAxis", Outcome: entities.OutcomeSuccess}}, nil
}

func newRouter(t *testing.T) (http.Handler, *fakeUsecase, *telemetry.WebSocketChannel) {
	t.Helper()
	uc := &fakeUsecase{}
	channel := telemetry.NewWebSocketChannel(logging.Nop())
	h := NewHandler(uc, channel, logging.Nop())
	router := ProvideRouter(h, &config.AppConfig{GinMode: gin.TestMode}, &swagger.Config{Enabled: false})
	return router, uc, channel
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestInvokeSuccess(t *testing.T) {
	router, _, _ := newRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/invoke", `{"name":"getPositions","args":[]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","command":"getPositions","result":[0.000,0.000,0.000,0.000]}`, rec.Body.String())
	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))

	rec = doJSON(t, router, http.MethodPost, "/api/v1/invoke", `{"name":"moveAxis","args":[12.5,0]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","command":"moveAxis","result":true}`, rec.Body.String())
}

func TestInvokeErrorKinds(t *testing.T) {
	router, _, _ := newRouter(t)

	cases := []struct {
		body string
		code int
		kind string
	}{
		{`{"name":"doesNotExist"}`, http.StatusNotFound, "unknown command"},
		{`{"name":"moveAxis","args":[1]}`, http.StatusBadRequest, "invalid arguments"},
		{`{"name":"turnOn"}`, http.StatusConflict, "not initialized"},
		{`{"name":"initializeMotion"}`, http.StatusGatewayTimeout, "timeout"},
	}
	for _, tc := range cases {
		rec := doJSON(t, router, http.MethodPost, "/api/v1/invoke", tc.body)
		require.Equal(t, tc.code, rec.Code, tc.body)

		var resp struct {
			Status string `json:"status"`
			Error  struct {
				Code int    `json:"code"`
				Kind string `json:"kind"`
			} `json:"error"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "error", resp.Status)
		assert.Equal(t, tc.code, resp.Error.Code)
		assert.Equal(t, tc.kind, resp.Error.Kind)
	}

	rec := doJSON(t, router, http.MethodPost, "/api/v1/invoke", `{"args":[1]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "name is required")
}

func TestGetCommands(t *testing.T) {
	router, _, _ := newRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/commands", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"status":"ok","count":1,"commands":[{"name":"moveAxis","id":103,"args":["float","int"],"is_property_set":false,"mode":"async","subsystem":""}]}`,
		rec.Body.String())
}

func TestGetFrame(t *testing.T) {
	router, _, _ := newRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/frame?size=8", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/octet-stream", rec.Header().Get("Content-Type"))
	assert.Equal(t, "8", rec.Header().Get("X-Frame-Size"))
	assert.Equal(t, bytes.Repeat([]byte{0xAB}, 8), rec.Body.Bytes())

	rec = doJSON(t, router, http.MethodGet, "/api/v1/frame?size=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/frame?size=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMonitoringRoutes(t *testing.T) {
	router, uc, _ := newRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/monitoring/start", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","running":true}`, rec.Body.String())
	assert.True(t, uc.running)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/monitoring", "")
	assert.JSONEq(t, `{"status":"ok","running":true}`, rec.Body.String())

	rec = doJSON(t, router, http.MethodPost, "/api/v1/monitoring/stop", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok","running":false}`, rec.Body.String())
}

func TestGetJournal(t *testing.T) {
	router, uc, _ := newRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/journal?limit=5&name=moveAxis", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, uc.lastLimit)
	assert.Equal(t, "moveAxis", uc.lastName)
	assert.Contains(t, rec.Body.String(), `"count":1`)

	rec = doJSON(t, router, http.MethodGet, "/api/v1/journal?limit=-1", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTelemetryRoute(t *testing.T) {
	router, _, channel := newRouter(t)
	srv := httptest.NewServer(router)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/api/v1/telemetry"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return channel.SessionID() != "" }, time.Second, 5*time.Millisecond)
	require.NoError(t, channel.Push(context.Background(), []byte(`{"type":"newFrame"}`)))

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, `{"type":"newFrame"}`, string(msg))
}
