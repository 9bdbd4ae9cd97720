package models

import (
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/types"

	"gorm.io/gorm"
)

const (
	TransferStatusPending   = "pending"
	TransferStatusApproved  = "approved"
	TransferStatusCompleted = "completed"
)

// Transfer (PTR) moves accountability of one or more items from one
// custodian to another.
type Transfer struct {
	gorm.Model
	TransferNo    string `json:"transfer_no" gorm:"unique;not null"`
	FromCustodian string `json:"from_custodian"`
	ToCustodian   string `json:"to_custodian" gorm:"not null"`
	ToDesignation string `json:"to_designation"`
	ToOffice      string `json:"to_office"`
	TransferDate  string `json:"transfer_date"`
	Reason        string `json:"reason"`
	ApprovedBy    string `json:"approved_by"`
	Status        string `json:"status" gorm:"default:'pending'"`
	CreatedBy     int
	UpdatedBy     int
}

type TransferItem struct {
	gorm.Model
	TransferID  uint              `json:"transfer_id" gorm:"index;not null"`
	ItemID      types.SnowflakeID `json:"item_id" gorm:"index"`
	PropertyNo  string            `json:"property_no"`
	Description string            `json:"description"`
	Quantity    int               `json:"quantity"`
	CreatedBy   int
}
