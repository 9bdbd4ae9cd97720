package models

import (
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/types"

	"gorm.io/gorm"
)

const (
	LossReportStatusFiled    = "filed"
	LossReportStatusReviewed = "reviewed"
	LossReportStatusClosed   = "closed"
)

// LossReport (RLSSP) documents a lost, stolen, damaged or destroyed item.
type LossReport struct {
	gorm.Model
	ReportNo      string            `json:"report_no" gorm:"unique;not null"`
	ItemID        types.SnowflakeID `json:"item_id" gorm:"index;not null"`
	PropertyNo    string            `json:"property_no"`
	LossType      string            `json:"loss_type" gorm:"not null"`
	DateOfLoss    string            `json:"date_of_loss"`
	Circumstances string            `json:"circumstances"`
	ReportedBy    string            `json:"reported_by"`
	Status        string            `json:"status" gorm:"default:'filed'"`
	CreatedBy     int
	UpdatedBy     int
}
