package database

import (
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.UserSession{},
		&models.LoginLog{},
		&models.Office{},
		&models.InventoryItem{},
		&models.PropertyCard{},
		&models.PropertyCardEntry{},
		&models.CustodianSlip{},
		&models.CustodianSlipItem{},
		&models.Transfer{},
		&models.TransferItem{},
		&models.LossReport{},
		&models.OfflineMutation{},
		&models.ActivityLog{},
	)
}
