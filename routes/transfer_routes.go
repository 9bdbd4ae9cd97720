package routes

import (
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/config"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/controllers"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupTransferRoutes(app *fiber.App, db *gorm.DB) {
	transferController := controllers.NewTransferController(db)

	api := app.Group(config.MAIN_ROUTES+"/transfers", middleware.AuthMiddleware)
	api.Post("/", transferController.CreateTransfer)
	api.Get("/", transferController.GetAllTransfers)
	api.Get("/:id", transferController.GetTransferDetail)
}
