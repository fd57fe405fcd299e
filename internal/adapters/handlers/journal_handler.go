package handlers

import (
	"net/http"
	"strconv"

	"github.com/iwtcode/deviceBridge/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// GetJournal возвращает последние записи журнала команд.
// @Summary Журнал команд
// @Description Возвращает последние вызовы команд с результатом и длительностью, новые первыми.
// @Tags Journal
// @Produce json
// @Param limit query int false "Максимальное число записей" default(50)
// @Param name query string false "Фильтр по имени команды"
// @Success 200 {object} models.JournalResponse "Записи журнала"
// @Failure 400 {object} models.ErrorResponse "Неверный limit"
// @Failure 500 {object} models.ErrorResponse "Ошибка хранилища"
// @Router /journal [get]
func (h *Handler) GetJournal(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.BadRequest(c, err, "Query parameter 'limit' must be a non-negative integer")
			return
		}
		limit = n
	}

	records, err := h.usecase.Journal(c.Query("name"), limit)
	if err != nil {
		h.InternalError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.JournalResponse{Status: "ok", Count: len(records), Records: records})
}
