package internal

import (
	"net/http"

	"archivebot/internal/controllers"
	"archivebot/internal/providers"
	"archivebot/internal/structures"
)

func InitRoutes(botController *controllers.BotController, conf *structures.Config) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/reports", http.HandlerFunc(botController.GetReports))
	routers.Get("/report", http.HandlerFunc(botController.GetReport))
	routers.Post("/run", http.HandlerFunc(botController.TriggerRun))
	return routers
}
