package routes

import (
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/config"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/controllers"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupPropertyCardRoutes(app *fiber.App, db *gorm.DB) {
	cardController := controllers.NewPropertyCardController(db)

	api := app.Group(config.MAIN_ROUTES+"/property-cards", middleware.AuthMiddleware)
	api.Get("/", cardController.GetAllCards)
	api.Get("/item/:itemId", cardController.GetCardByItem)
}
