package handlers

import (
	"net/http"

	"github.com/iwtcode/deviceBridge/internal/domain/models"

	"github.com/gin-gonic/gin"
)

// Invoke исполняет команду по имени.
// @Summary Вызвать команду
// @Description Разрешает команду по имени, проверяет аргументы и исполняет ее. Асинхронные команды блокируют запрос до завершения или таймаута.
// @Tags Commands
// @Accept json
// @Produce json
// @Param input body models.InvokeRequest true "Имя команды, аргументы и флаг установки свойства"
// @Success 200 {object} models.InvokeResponse "Результат команды"
// @Failure 400 {object} models.ErrorResponse "Неверные аргументы"
// @Failure 404 {object} models.ErrorResponse "Неизвестная команда"
// @Failure 409 {object} models.ErrorResponse "Устройство не инициализировано"
// @Failure 500 {object} models.ErrorResponse "Ошибка устройства"
// @Failure 504 {object} models.ErrorResponse "Таймаут асинхронной команды"
// @Router /invoke [post]
func (h *Handler) Invoke(c *gin.Context) {
	var req models.InvokeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err, "Invalid request payload")
		return
	}

	h.logger.Info("Invoking command", "name", req.Name, "args", req.Args, "is_property_set", req.IsPropertySet)

	result, err := h.usecase.Invoke(c.Request.Context(), req.Name, req.Args, req.IsPropertySet)
	if err != nil {
		h.DispatchFailure(c, err)
		return
	}

	c.JSON(http.StatusOK, models.InvokeResponse{
		Status:  "ok",
		Command: req.Name,
		Result:  result,
	})
}

// GetCommands возвращает список зарегистрированных команд.
// @Summary Список команд
// @Description Возвращает все команды с идентификаторами, типами аргументов и режимом исполнения.
// @Tags Commands
// @Produce json
// @Success 200 {object} models.CommandsResponse "Список команд"
// @Router /commands [get]
func (h *Handler) GetCommands(c *gin.Context) {
	commands := h.usecase.Commands()
	c.JSON(http.StatusOK, models.CommandsResponse{
		Status:   "ok",
		Count:    len(commands),
		Commands: commands,
	})
}
