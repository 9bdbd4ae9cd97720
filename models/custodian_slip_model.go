package models

import (
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/types"

	"gorm.io/gorm"
)

// Slip status
const (
	SlipStatusDraft     = "draft"
	SlipStatusIssued    = "issued"
	SlipStatusCompleted = "completed"
	SlipStatusCancelled = "cancelled"
)

// CustodianSlip records one issuance event to one custodian on one date,
// scoped to a single value category group.
type CustodianSlip struct {
	gorm.Model
	SlipNo      string `json:"slip_no" gorm:"unique;not null"`
	Custodian   string `json:"custodian" gorm:"not null"`
	Designation string `json:"designation"`
	Office      string `json:"office"`
	DateIssued  string `json:"date_issued"`
	IssuedBy    string `json:"issued_by"`
	ReceivedBy  string `json:"received_by"`
	Status      string `json:"status" gorm:"default:'draft'"`
	Remarks     string `json:"remarks"`
	CreatedBy   int
	UpdatedBy   int
}

type CustodianSlipItem struct {
	gorm.Model
	SlipID      uint              `json:"slip_id" gorm:"index;not null"`
	ItemNo      int               `json:"item_no"`
	ItemID      types.SnowflakeID `json:"item_id" gorm:"index"`
	PropertyNo  string            `json:"property_no"`
	Description string            `json:"description"`
	Quantity    int               `json:"quantity"`
	Uom         string            `json:"uom"`
	UnitCost    float64           `json:"unit_cost" gorm:"type:decimal(14,2)"`
	Amount      float64           `json:"amount" gorm:"type:decimal(14,2)"`
	EntryID     uint              `json:"entry_id" gorm:"default:0"`
	CreatedBy   int
}
