package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetFrame возвращает первые size байт общей области кадра.
// @Summary Прочитать кадр
// @Description Возвращает сырые 16-битные отсчеты последнего кадра в нативном порядке байт.
// @Tags Frames
// @Produce octet-stream
// @Param size query int true "Число байт"
// @Success 200 {file} binary "Содержимое общей области"
// @Failure 400 {object} models.ErrorResponse "Неверный размер"
// @Failure 409 {object} models.ErrorResponse "Общая область не выделена"
// @Router /frame [get]
func (h *Handler) GetFrame(c *gin.Context) {
	size, err := strconv.Atoi(c.Query("size"))
	if err != nil {
		h.BadRequest(c, err, "Query parameter 'size' must be an integer")
		return
	}

	data, err := h.usecase.ReadFrame(size)
	if err != nil {
		h.DispatchFailure(c, err)
		return
	}

	c.Header("X-Frame-Size", fmt.Sprint(len(data)))
	c.Data(http.StatusOK, "application/octet-stream", data)
}
