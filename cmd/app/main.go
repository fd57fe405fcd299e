// @title Device Bridge API
// @version 1.0.0
// @description API для вызова команд манипулятора, рентгеновского источника и детектора, чтения кадров и телеметрии.
// @host localhost:8082
// @BasePath /api/v1
package main

import "github.com/iwtcode/deviceBridge/internal/app"

func main() {
	// Создаем и запускаем новый экземпляр приложения fx
	app.New().Run()
}
