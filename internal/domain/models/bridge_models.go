package models

import (
	"github.com/iwtcode/deviceBridge/internal/domain/entities"
	bridgeModels "github.com/iwtcode/deviceBridge/models"
)

// InvokeRequest определяет структуру запроса на вызов команды.
type InvokeRequest struct {
	Name          string `json:"name" binding:"required" example:"moveAxis"`
	Args          []any  `json:"args"`
	IsPropertySet bool   `json:"is_property_set" example:"false"`
}

// InvokeResponse представляет результат успешного вызова команды.
type InvokeResponse struct {
	Status  string `json:"status" example:"ok"`
	Command string `json:"command" example:"moveAxis"`
	Result  any    `json:"result"`
}

// CommandsResponse представляет список зарегистрированных команд.
type CommandsResponse struct {
	Status   string                           `json:"status" example:"ok"`
	Count    int                              `json:"count" example:"27"`
	Commands []bridgeModels.CommandDescriptor `json:"commands"`
}

// MonitoringResponse представляет состояние фонового опроса.
type MonitoringResponse struct {
	Status  string `json:"status" example:"ok"`
	Running bool   `json:"running" example:"true"`
}

// JournalResponse представляет последние записи журнала команд.
type JournalResponse struct {
	Status  string                   `json:"status" example:"ok"`
	Count   int                      `json:"count" example:"1"`
	Records []entities.CommandRecord `json:"records"`
}
