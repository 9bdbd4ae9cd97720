package models

import (
	"gorm.io/gorm"
)

type ActivityLog struct {
	gorm.Model
	UserID    int    `json:"user_id"`
	Action    string `json:"action"`
	Entity    string `json:"entity"`
	EntityRef string `json:"entity_ref"`
	Detail    string `json:"detail" gorm:"type:text"`
}
