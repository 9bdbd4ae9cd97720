package models

import (
	"time"

	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/types"

	"gorm.io/gorm"
)

// Item condition
const (
	ConditionServiceable   = "serviceable"
	ConditionUnserviceable = "unserviceable"
	ConditionForRepair     = "for_repair"
	ConditionLost          = "lost"
	ConditionStolen        = "stolen"
	ConditionDamaged       = "damaged"
	ConditionDestroyed     = "destroyed"
)

// Lifecycle status
const (
	StatusActive      = "active"
	StatusTransferred = "transferred"
	StatusDisposed    = "disposed"
	StatusMissing     = "missing"
)

// Assignment status
const (
	AssignmentAvailable = "available"
	AssignmentAssigned  = "assigned"
)

// Value category, derived from unit cost
const (
	CategorySmallValue = "small_value"
	CategoryHighValue  = "high_value"

	PrefixSmallValue = "SPLV"
	PrefixHighValue  = "SPHV"

	// Semi-expendable property above this unit cost is tagged high value.
	HighValueThreshold = 5000.00
)

type InventoryItem struct {
	gorm.Model
	ID                   types.SnowflakeID `json:"id" gorm:"primaryKey"`
	PropertyNo           string            `json:"property_no" gorm:"unique;not null"`
	Description          string            `json:"description" gorm:"not null" validate:"required"`
	Brand                string            `json:"brand"`
	ModelNo              string            `json:"model_no"`
	SerialNo             string            `json:"serial_no"`
	Quantity             int               `json:"quantity" gorm:"default:1"`
	Uom                  string            `json:"uom" gorm:"default:'unit'"`
	UnitCost             float64           `json:"unit_cost" gorm:"type:decimal(14,2)"`
	TotalCost            float64           `json:"total_cost" gorm:"type:decimal(14,2)"`
	Category             string            `json:"category"`
	ValueCategory        string            `json:"value_category"`
	// "condition" is a reserved word on MySQL, hence the column rename.
	Condition            string            `json:"condition" gorm:"column:item_condition;default:'serviceable'"`
	Status               string            `json:"status" gorm:"default:'active'"`
	AssignmentStatus     string            `json:"assignment_status" gorm:"default:'available'"`
	Custodian            string            `json:"custodian"`
	CustodianDesignation string            `json:"custodian_designation"`
	AssignedDate         *time.Time        `json:"assigned_date"`
	SlipNo               string            `json:"slip_no"`
	Office               string            `json:"office"`
	AcquisitionDate      string            `json:"acquisition_date"`
	EstimatedLifeYears   int               `json:"estimated_life_years"`
	Remarks              string            `json:"remarks"`
	CreatedBy            int
	UpdatedBy            int
	DeletedBy            int
}

// ValueCategoryFor is the single place the small/high value split is
// decided. Both property numbering and slip grouping go through here.
func ValueCategoryFor(unitCost float64) string {
	if unitCost > HighValueThreshold {
		return CategoryHighValue
	}
	return CategorySmallValue
}

// PropertyNoPrefix maps a value category to its property number prefix.
func PropertyNoPrefix(valueCategory string) string {
	if valueCategory == CategoryHighValue {
		return PrefixHighValue
	}
	return PrefixSmallValue
}

// SlipNoPrefix maps a value category to its custodian slip number prefix.
// Slips are numbered per category so the printed ICS form keeps a
// continuous sequence within each series.
func SlipNoPrefix(valueCategory string) string {
	return "ICS-" + PropertyNoPrefix(valueCategory)
}
