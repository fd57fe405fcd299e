package handlers

import (
	"net/http"

	"github.com/iwtcode/deviceBridge/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// StartMonitoring запускает фоновый опрос статусов.
// @Summary Запустить опрос статусов
// @Description Запускает периодическую отправку статусов открытых устройств в канал телеметрии. Повторный запуск ничего не делает.
// @Tags Monitoring
// @Produce json
// @Success 200 {object} models.MonitoringResponse "Опрос запущен"
// @Router /monitoring/start [post]
func (h *Handler) StartMonitoring(c *gin.Context) {
	h.usecase.StartMonitoring()
	h.logger.Info("Monitoring started")
	c.JSON(http.StatusOK, models.MonitoringResponse{Status: "ok", Running: h.usecase.IsMonitoring()})
}

// StopMonitoring останавливает фоновый опрос статусов.
// @Summary Остановить опрос статусов
// @Tags Monitoring
// @Produce json
// @Success 200 {object} models.MonitoringResponse "Опрос остановлен"
// @Router /monitoring/stop [post]
func (h *Handler) StopMonitoring(c *gin.Context) {
	h.usecase.StopMonitoring()
	h.logger.Info("Monitoring stopped")
	c.JSON(http.StatusOK, models.MonitoringResponse{Status: "ok", Running: h.usecase.IsMonitoring()})
}

// GetMonitoring возвращает состояние опроса.
// @Summary Состояние опроса статусов
// @Tags Monitoring
// @Produce json
// @Success 200 {object} models.MonitoringResponse "Состояние опроса"
// @Router /monitoring [get]
func (h *Handler) GetMonitoring(c *gin.Context) {
	c.JSON(http.StatusOK, models.MonitoringResponse{Status: "ok", Running: h.usecase.IsMonitoring()})
}
