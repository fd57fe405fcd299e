package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iwtcode/deviceBridge/internal/middleware/logging"

	"github.com/gin-gonic/gin"
)

const RequestIDHeader = "X-Request-ID"

func LoggingMiddleware(parentLogger *logging.Logger) gin.HandlerFunc {
	logger := parentLogger.WithPrefix("HTTP")

	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Header(RequestIDHeader, requestID)

		// UI читает кадры с частотой захвата, такие запросы пишутся только в debug
		log := logger.Info
		if strings.HasSuffix(c.Request.URL.Path, "/frame") {
			log = logger.Debug
		}

		start := time.Now()
		log("Request started",
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"remote_addr", c.Request.RemoteAddr,
		)

		c.Next()

		log("Request completed",
			"request_id", requestID,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
			"client_ip", c.ClientIP(),
		)
	}
}
