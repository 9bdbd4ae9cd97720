package models

import (
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/types"

	"gorm.io/gorm"
)

// PropertyCard is the permanent per-item ledger header, one card per
// inventory item. Created at intake, never mutated after except remarks.
type PropertyCard struct {
	gorm.Model
	ItemID          types.SnowflakeID `json:"item_id" gorm:"uniqueIndex;not null"`
	EntityName      string            `json:"entity_name"`
	FundCluster     string            `json:"fund_cluster"`
	PropertyNo      string            `json:"property_no" gorm:"index;not null"`
	Description     string            `json:"description"`
	AcquisitionDate string            `json:"acquisition_date"`
	Remarks         string            `json:"remarks"`
	CreatedBy       int
	UpdatedBy       int
}

// PropertyCardEntry is one append-only ledger row. The first entry of a
// card is always a receipt establishing the opening balance; issue
// entries follow, each carrying the running balance after the issue.
type PropertyCardEntry struct {
	gorm.Model
	CardID           uint    `json:"card_id" gorm:"index;not null"`
	EntryDate        string  `json:"entry_date"`
	Reference        string  `json:"reference"`
	ReceiptQty       int     `json:"receipt_qty"`
	ReceiptUnitCost  float64 `json:"receipt_unit_cost" gorm:"type:decimal(14,2)"`
	ReceiptTotalCost float64 `json:"receipt_total_cost" gorm:"type:decimal(14,2)"`
	IssueQty         int     `json:"issue_qty"`
	IssueOfficer     string  `json:"issue_officer"`
	BalanceQty       int     `json:"balance_qty"`
	Amount           float64 `json:"amount" gorm:"type:decimal(14,2)"`
	SlipID           uint    `json:"slip_id" gorm:"index;default:0"`
	TransferID       uint    `json:"transfer_id" gorm:"default:0"`
	CreatedBy        int
}
