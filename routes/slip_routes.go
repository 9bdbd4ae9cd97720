package routes

import (
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/config"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/controllers"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupSlipRoutes(app *fiber.App, db *gorm.DB) {
	slipController := controllers.NewSlipController(db)

	api := app.Group(config.MAIN_ROUTES+"/slips", middleware.AuthMiddleware)
	api.Post("/", slipController.CreateSlips)
	api.Get("/", slipController.GetAllSlips)
	api.Get("/:id", slipController.GetSlipDetail)
	api.Put("/:id/status", slipController.UpdateSlipStatus)
	api.Delete("/:id", slipController.DeleteSlip)
}
