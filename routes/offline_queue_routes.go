package routes

import (
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/config"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/controllers"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupOfflineQueueRoutes(app *fiber.App, db *gorm.DB) {
	queueController := controllers.NewOfflineQueueController(db)

	api := app.Group(config.MAIN_ROUTES+"/offline-queue", middleware.AuthMiddleware)
	api.Post("/", queueController.Enqueue)
	api.Get("/", queueController.GetQueue)
	api.Post("/replay", queueController.Replay)
}
