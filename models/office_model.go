package models

import (
	"gorm.io/gorm"
)

type Office struct {
	gorm.Model
	Code      string `json:"code" gorm:"unique;not null"`
	Name      string `json:"name" gorm:"not null"`
	Head      string `json:"head"`
	CreatedBy int
	UpdatedBy int
	DeletedBy int
}
