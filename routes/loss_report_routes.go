package routes

import (
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/config"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/controllers"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupLossReportRoutes(app *fiber.App, db *gorm.DB) {
	lossController := controllers.NewLossReportController(db)

	api := app.Group(config.MAIN_ROUTES+"/loss-reports", middleware.AuthMiddleware)
	api.Post("/", lossController.CreateLossReport)
	api.Get("/", lossController.GetAllLossReports)
	api.Put("/:id/status", lossController.UpdateLossReportStatus)
}
