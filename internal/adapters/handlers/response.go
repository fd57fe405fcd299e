package handlers

import (
	"net/http"

	"github.com/iwtcode/deviceBridge/pkg/errors"

	"github.com/gin-gonic/gin"
)

// ErrorResponse возвращает стандартизированный ответ с ошибкой
func (h *Handler) ErrorResponse(c *gin.Context, err error, statusCode int, message string, showError bool) {
	errorMessage := message
	if showError && err != nil {
		errorMessage = message + ": " + err.Error()
	}

	h.logger.Error(message, "error", err, "statusCode", statusCode)
	body := gin.H{
		"code":    statusCode,
		"message": errorMessage,
	}
	if kind := errors.KindOf(err); kind != 0 {
		body["kind"] = kind.String()
	}
	c.AbortWithStatusJSON(statusCode, gin.H{
		"status": "error",
		"error":  body,
	})
}

// DispatchFailure возвращает ошибку команды со статусом по ее категории
func (h *Handler) DispatchFailure(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	var message string
	switch status {
	case http.StatusNotFound:
		message = errors.NotFound
	case http.StatusBadRequest:
		message = errors.BadRequest
	case http.StatusConflict:
		message = errors.Conflict
	case http.StatusGatewayTimeout:
		message = errors.GatewayTimeout
	default:
		message = errors.InternalServerError
	}
	h.ErrorResponse(c, err, status, message, true)
}

// BadRequest возвращает ошибку 400
func (h *Handler) BadRequest(c *gin.Context, err error, message string) {
	if message == "" {
		message = errors.BadRequest
	}
	h.ErrorResponse(c, err, http.StatusBadRequest, message, true)
}

// InternalError возвращает ошибку 500
func (h *Handler) InternalError(c *gin.Context, err error) {
	h.ErrorResponse(c, err, http.StatusInternalServerError, errors.InternalServerError, false)
}
