package routes

import (
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/config"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/controllers"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupOfficeRoutes(app *fiber.App, db *gorm.DB) {
	officeController := controllers.NewOfficeController(db)

	api := app.Group(config.MAIN_ROUTES+"/offices", middleware.AuthMiddleware)
	api.Post("/", officeController.CreateOffice)
	api.Get("/", officeController.GetAllOffices)
	api.Put("/:id", officeController.UpdateOffice)
	api.Delete("/:id", officeController.DeleteOffice)
}
