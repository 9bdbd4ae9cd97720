package main

import (
	"fmt"
	"log"

	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/config"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/controllers/idgen"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/database"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/routes"

	"github.com/gofiber/fiber/v2"
)

func main() {

	config.LoadConfig()

	app := fiber.New()

	database.EnsureDatabaseExists(config.DBName)

	db, err := database.GetDBConnection()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	idgen.Init()
	database.RunSeeders(db)

	config.SetupCORS(app)

	routes.SetupAuthRoutes(app, db)
	routes.SetupDashboardRoutes(app, db)
	routes.SetupInventoryRoutes(app, db)
	routes.SetupSlipRoutes(app, db)
	routes.SetupPropertyCardRoutes(app, db)
	routes.SetupTransferRoutes(app, db)
	routes.SetupLossReportRoutes(app, db)
	routes.SetupOfficeRoutes(app, db)
	routes.SetupOfflineQueueRoutes(app, db)

	port := config.APP_PORT
	fmt.Println("🚀 Server running on port " + port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}

}
