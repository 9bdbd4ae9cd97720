package utils

import (
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/models"

	"gorm.io/gorm"
)

func InsertActivityLog(db *gorm.DB, entry models.ActivityLog) {
	db.Create(&entry)
}

func UserIDFromLocals(value interface{}) int {
	if id, ok := value.(float64); ok {
		return int(id)
	}
	return 0
}
