package database

import (
	"fmt"
	"log"

	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/config"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/controllers/idgen"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/models"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/types"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/exp/rand"
	"gorm.io/gorm"
)

func RunSeeders(db *gorm.DB) {
	SeedOffices(db)
	SeedAdminUser(db)

	if config.SeedSampleData {
		SeedSampleItems(db)
	}
}

func SeedOffices(db *gorm.DB) {
	offices := []models.Office{
		{Code: "MO", Name: "Mayor's Office"},
		{Code: "MTO", Name: "Municipal Treasurer's Office"},
		{Code: "MAO", Name: "Municipal Accounting Office"},
		{Code: "GSO", Name: "General Services Office"},
		{Code: "MEO", Name: "Municipal Engineering Office"},
		{Code: "MHO", Name: "Municipal Health Office"},
	}

	for _, o := range offices {
		var existing models.Office
		if err := db.Where("code = ?", o.Code).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				db.Create(&o)
			}
		}
	}
}

func SeedAdminUser(db *gorm.DB) {
	var existing models.User
	err := db.Where("username = ?", "admin").First(&existing).Error
	if err == nil {
		return
	}
	if err != gorm.ErrRecordNotFound {
		log.Fatalf("Unexpected DB error: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash admin password: %v", err)
	}

	admin := models.User{
		Username: "admin",
		Email:    "admin@localhost",
		Password: string(hashed),
		Name:     "System Administrator",
		Role:     "admin",
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("Failed to create admin user: %v", err)
	}
}

// SeedSampleItems loads demo inventory for a fresh environment.
func SeedSampleItems(db *gorm.DB) {
	var count int64
	db.Model(&models.InventoryItem{}).Count(&count)
	if count > 0 {
		return
	}

	descriptions := []string{
		"Laptop Computer", "Office Desk", "Swivel Chair", "Printer",
		"Filing Cabinet", "Projector", "Electric Fan", "Water Dispenser",
	}

	items := []models.InventoryItem{}
	for i := 0; i < 40; i++ {
		desc := descriptions[rand.Intn(len(descriptions))]
		qty := 1
		unitCost := float64(rand.Intn(45000) + 500)
		category := models.ValueCategoryFor(unitCost)

		item := models.InventoryItem{
			ID:               types.SnowflakeID(idgen.GenerateID()),
			PropertyNo:       fmt.Sprintf("%s-2025-%04d", models.PropertyNoPrefix(category), i+1),
			Description:      fmt.Sprintf("%s (demo unit %d)", desc, i+1),
			SerialNo:         fmt.Sprintf("SN%06d", rand.Intn(999999)),
			Quantity:         qty,
			Uom:              "unit",
			UnitCost:         unitCost,
			TotalCost:        float64(qty) * unitCost,
			ValueCategory:    category,
			Condition:        models.ConditionServiceable,
			Status:           models.StatusActive,
			AssignmentStatus: models.AssignmentAvailable,
			AcquisitionDate:  "2025-01-15",
			CreatedBy:        1,
		}
		items = append(items, item)
	}

	if err := db.Create(&items).Error; err != nil {
		log.Printf("Failed to seed sample items: %v", err)
		return
	}

	for _, item := range items {
		card := models.PropertyCard{
			ItemID:          item.ID,
			EntityName:      config.EntityName,
			FundCluster:     config.FundCluster,
			PropertyNo:      item.PropertyNo,
			Description:     item.Description,
			AcquisitionDate: item.AcquisitionDate,
			CreatedBy:       1,
		}
		if err := db.Create(&card).Error; err != nil {
			log.Printf("Failed to seed property card for %s: %v", item.PropertyNo, err)
			continue
		}
		entry := models.PropertyCardEntry{
			CardID:           card.ID,
			EntryDate:        item.AcquisitionDate,
			Reference:        "Acquisition",
			ReceiptQty:       item.Quantity,
			ReceiptUnitCost:  item.UnitCost,
			ReceiptTotalCost: item.TotalCost,
			BalanceQty:       item.Quantity,
			Amount:           item.TotalCost,
			CreatedBy:        1,
		}
		db.Create(&entry)
	}
}
