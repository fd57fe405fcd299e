package telemetry

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/iwtcode/deviceBridge/internal/interfaces"
	"github.com/iwtcode/deviceBridge/internal/middleware/logging"
)

// ErrNoClient возвращается Push, пока UI не подключен
var ErrNoClient = errors.New("no telemetry client attached")

const defaultWriteTimeout = 2 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 64 * 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// WebSocketChannel канал телеметрии к единственному UI-клиенту.
// Новое подключение вытесняет предыдущее.
type WebSocketChannel struct {
	mu           sync.Mutex
	conn         *websocket.Conn
	sessionID    string
	writeTimeout time.Duration
	logger       *logging.Logger
}

// NewWebSocketChannel создает канал без подключенного клиента
func NewWebSocketChannel(logger *logging.Logger) *WebSocketChannel {
	return &WebSocketChannel{
		writeTimeout: defaultWriteTimeout,
		logger:       logger.WithPrefix("TELEMETRY"),
	}
}

// ProvideChannel отдает тот же экземпляр под интерфейсом для монитора и конвейера кадров
func ProvideChannel(c *WebSocketChannel) interfaces.TelemetryChannel {
	return c
}

// Serve апгрейдит запрос до WebSocket и блокируется, пока клиент не отключится
func (c *WebSocketChannel) Serve(w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	// Сервер мог выставить дедлайны для обычных запросов, соединение долгоживущее
	_ = conn.SetReadDeadline(time.Time{})

	sessionID := uuid.New().String()
	c.mu.Lock()
	old := c.conn
	c.conn = conn
	c.sessionID = sessionID
	c.mu.Unlock()

	if old != nil {
		c.logger.Warn("Replacing previous telemetry client")
		_ = old.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "replaced by new client"),
			time.Now().Add(time.Second))
		_ = old.Close()
	}
	c.logger.Info("Telemetry client attached", "sessionID", sessionID, "remote_addr", r.RemoteAddr)

	// Входящие сообщения не используются, чтение нужно для обработки close/ping
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			c.detach(conn)
			c.logger.Info("Telemetry client detached", "sessionID", sessionID, "reason", err)
			return nil
		}
	}
}

func (c *WebSocketChannel) detach(conn *websocket.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == conn {
		c.conn = nil
		c.sessionID = ""
	}
	_ = conn.Close()
}

// Push отправляет одно текстовое сообщение текущему клиенту
func (c *WebSocketChannel) Push(ctx context.Context, payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return ErrNoClient
	}
	deadline := time.Now().Add(c.writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		_ = c.conn.Close()
		c.conn = nil
		c.sessionID = ""
		return err
	}
	return nil
}

// SessionID идентификатор текущего клиента или пустая строка
func (c *WebSocketChannel) SessionID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.sessionID
}

// Close отключает клиента
func (c *WebSocketChannel) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	c.sessionID = ""
	return err
}
