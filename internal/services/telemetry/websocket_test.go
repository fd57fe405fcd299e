package telemetry

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/iwtcode/deviceBridge/internal/middleware/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startServer(t *testing.T, ch *WebSocketChannel) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = ch.Serve(w, r)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func dial(t *testing.T, url string, ch *WebSocketChannel, prevSession string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	require.Eventually(t, func() bool {
		s := ch.SessionID()
		return s != "" && s != prevSession
	}, time.Second, 5*time.Millisecond)
	return conn
}

func TestPushWithoutClient(t *testing.T) {
	ch := NewWebSocketChannel(logging.Nop())
	require.ErrorIs(t, ch.Push(context.Background(), []byte("{}")), ErrNoClient)
}

func TestPushDeliversToClient(t *testing.T) {
	ch := NewWebSocketChannel(logging.Nop())
	conn := dial(t, startServer(t, ch), ch, "")

	require.NoError(t, ch.Push(context.Background(), []byte(`{"status":"CNC_STAND_STILL"}`)))

	_ = conn.SetReadDeadline(time.Now().Add(time.Second))
	mt, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, mt)
	assert.JSONEq(t, `{"status":"CNC_STAND_STILL"}`, string(msg))
}

func TestNewClientReplacesOld(t *testing.T) {
	ch := NewWebSocketChannel(logging.Nop())
	url := startServer(t, ch)

	first := dial(t, url, ch, "")
	firstSession := ch.SessionID()
	second := dial(t, url, ch, firstSession)

	require.NoError(t, ch.Push(context.Background(), []byte("hello")))

	_ = second.SetReadDeadline(time.Now().Add(time.Second))
	_, msg, err := second.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, "hello", string(msg))

	_ = first.SetReadDeadline(time.Now().Add(time.Second))
	_, _, err = first.ReadMessage()
	require.Error(t, err, "replaced client is closed")
}

func TestClientDisconnectDetaches(t *testing.T) {
	ch := NewWebSocketChannel(logging.Nop())
	conn := dial(t, startServer(t, ch), ch, "")

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return ch.SessionID() == "" }, time.Second, 5*time.Millisecond)
	require.ErrorIs(t, ch.Push(context.Background(), []byte("x")), ErrNoClient)
}
