package routes

import (
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/config"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/controllers"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupInventoryRoutes(app *fiber.App, db *gorm.DB) {
	inventoryController := controllers.NewInventoryController(db)

	api := app.Group(config.MAIN_ROUTES+"/items", middleware.AuthMiddleware)
	api.Post("/", inventoryController.CreateItem)
	api.Get("/", inventoryController.GetAllItems)
	api.Get("/export", inventoryController.ExportItems)
	api.Post("/estimate-life", inventoryController.EstimateLife)
	api.Get("/:id", inventoryController.GetItemByID)
	api.Put("/:id", inventoryController.UpdateItem)
	api.Delete("/:id", inventoryController.DeleteItem)
}
