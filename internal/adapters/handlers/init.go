package handlers

import (
	"net/http"

	"github.com/iwtcode/deviceBridge/internal/config"
	"github.com/iwtcode/deviceBridge/internal/interfaces"
	"github.com/iwtcode/deviceBridge/internal/middleware/logging"
	"github.com/iwtcode/deviceBridge/internal/middleware/swagger"
	"github.com/iwtcode/deviceBridge/internal/services/telemetry"

	"github.com/gin-gonic/gin"
)

// Handler - структура для обработчиков HTTP-запросов
type Handler struct {
	usecase   interfaces.Usecases
	telemetry *telemetry.WebSocketChannel
	logger    *logging.Logger
}

// NewHandler создает новый экземпляр Handler
func NewHandler(usecase interfaces.Usecases, channel *telemetry.WebSocketChannel, logger *logging.Logger) *Handler {
	return &Handler{
		usecase:   usecase,
		telemetry: channel,
		logger:    logger.WithPrefix("HANDLER"),
	}
}

// ProvideRouter настраивает и возвращает HTTP-роутер
func ProvideRouter(h *Handler, cfg *config.AppConfig, swagCfg *swagger.Config) http.Handler {
	gin.SetMode(cfg.GinMode)

	router := gin.New()
	router.Use(gin.Recovery())

	// Swagger
	swagger.Setup(router, swagCfg)

	// Logger Middleware
	router.Use(LoggingMiddleware(h.logger))

	// Группа API v1
	v1 := router.Group("/api/v1")
	{
		v1.POST("/invoke", h.Invoke)
		v1.GET("/commands", h.GetCommands)
		v1.GET("/frame", h.GetFrame)
		v1.GET("/telemetry", h.Telemetry)
		v1.GET("/journal", h.GetJournal)

		monitoring := v1.Group("/monitoring")
		{
			monitoring.GET("", h.GetMonitoring)
			monitoring.POST("/start", h.StartMonitoring)
			monitoring.POST("/stop", h.StopMonitoring)
		}
	}

	return router
}
