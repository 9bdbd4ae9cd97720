package repositories

import (
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/models"

	"gorm.io/gorm"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

type ListInventoryItem struct {
	ID                 int64   `json:"id"`
	PropertyNo         string  `json:"property_no"`
	Description        string  `json:"description"`
	Brand              string  `json:"brand"`
	ModelNo            string  `json:"model_no"`
	SerialNo           string  `json:"serial_no"`
	Quantity           int     `json:"quantity"`
	Uom                string  `json:"uom"`
	UnitCost           float64 `json:"unit_cost"`
	TotalCost          float64 `json:"total_cost"`
	Category           string  `json:"category"`
	ValueCategory      string  `json:"value_category"`
	Condition          string  `json:"condition" gorm:"column:item_condition"`
	Status             string  `json:"status"`
	AssignmentStatus   string  `json:"assignment_status"`
	Custodian          string  `json:"custodian"`
	Office             string  `json:"office"`
	SlipNo             string  `json:"slip_no"`
	AcquisitionDate    string  `json:"acquisition_date"`
	EstimatedLifeYears int     `json:"estimated_life_years"`
}

func (r *InventoryRepository) GetAllItems(search string, offset, limit int) ([]ListInventoryItem, int64, error) {
	var items []ListInventoryItem
	var total int64

	query := r.db.Model(&models.InventoryItem{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where(
			"property_no LIKE ? OR description LIKE ? OR serial_no LIKE ? OR custodian LIKE ?",
			like, like, like, like,
		)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sql := query.Select(`id, property_no, description, brand, model_no, serial_no,
		quantity, uom, unit_cost, total_cost, category, value_category,
		item_condition, status, assignment_status, custodian, office, slip_no,
		acquisition_date, estimated_life_years`).
		Offset(offset).Limit(limit).Order("created_at DESC")

	if err := sql.Scan(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

type DashboardSummary struct {
	TotalItems     int64   `json:"total_items"`
	TotalValue     float64 `json:"total_value"`
	AssignedItems  int64   `json:"assigned_items"`
	AvailableItems int64   `json:"available_items"`
	MissingItems   int64   `json:"missing_items"`
	SmallValue     int64   `json:"small_value"`
	HighValue      int64   `json:"high_value"`
	TotalSlips     int64   `json:"total_slips"`
}

func (r *InventoryRepository) GetDashboardSummary() (DashboardSummary, error) {
	var summary DashboardSummary

	sql := `SELECT
		COUNT(*) AS total_items,
		COALESCE(SUM(total_cost), 0) AS total_value,
		SUM(CASE WHEN assignment_status = 'assigned' THEN 1 ELSE 0 END) AS assigned_items,
		SUM(CASE WHEN assignment_status = 'available' THEN 1 ELSE 0 END) AS available_items,
		SUM(CASE WHEN status = 'missing' THEN 1 ELSE 0 END) AS missing_items,
		SUM(CASE WHEN value_category = 'small_value' THEN 1 ELSE 0 END) AS small_value,
		SUM(CASE WHEN value_category = 'high_value' THEN 1 ELSE 0 END) AS high_value
		FROM inventory_items
		WHERE deleted_at IS NULL`

	if err := r.db.Raw(sql).Scan(&summary).Error; err != nil {
		return summary, err
	}

	if err := r.db.Model(&models.CustodianSlip{}).Count(&summary.TotalSlips).Error; err != nil {
		return summary, err
	}

	return summary, nil
}

// PropertyNumberSource feeds the sequence generator with the property
// numbers already on file.
type PropertyNumberSource struct {
	db *gorm.DB
}

func NewPropertyNumberSource(db *gorm.DB) *PropertyNumberSource {
	return &PropertyNumberSource{db: db}
}

func (s *PropertyNumberSource) NumbersLike(pattern string) ([]string, error) {
	var numbers []string
	if err := s.db.Model(&models.InventoryItem{}).Unscoped().
		Where("property_no LIKE ?", pattern).
		Pluck("property_no", &numbers).Error; err != nil {
		return nil, err
	}
	return numbers, nil
}

func (s *PropertyNumberSource) NumberExists(number string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.InventoryItem{}).Unscoped().
		Where("property_no = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
