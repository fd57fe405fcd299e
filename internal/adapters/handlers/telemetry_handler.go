package handlers

import (
	"github.com/gin-gonic/gin"
)

// Telemetry подключает UI к каналу телеметрии.
// @Summary Канал телеметрии
// @Description WebSocket со статусами устройств и уведомлениями о новых кадрах. Новое подключение вытесняет предыдущее.
// @Tags Telemetry
// @Success 101 "Switching Protocols"
// @Router /telemetry [get]
func (h *Handler) Telemetry(c *gin.Context) {
	if err := h.telemetry.Serve(c.Writer, c.Request); err != nil {
		// Upgrader уже записал ответ с ошибкой
		h.logger.Warn("Telemetry upgrade failed", "remote_addr", c.Request.RemoteAddr, "error", err)
	}
}
