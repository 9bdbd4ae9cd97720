package repositories

import (
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/models"

	"gorm.io/gorm"
)

type SlipRepository struct {
	db *gorm.DB
}

func NewSlipRepository(db *gorm.DB) *SlipRepository {
	return &SlipRepository{db: db}
}

type ListSlip struct {
	ID          uint    `json:"id"`
	SlipNo      string  `json:"slip_no"`
	Custodian   string  `json:"custodian"`
	Designation string  `json:"designation"`
	Office      string  `json:"office"`
	DateIssued  string  `json:"date_issued"`
	IssuedBy    string  `json:"issued_by"`
	ReceivedBy  string  `json:"received_by"`
	Status      string  `json:"status"`
	TotalItems  int     `json:"total_items"`
	TotalAmount float64 `json:"total_amount"`
}

func (r *SlipRepository) GetAllSlips() ([]ListSlip, error) {
	var slips []ListSlip

	sql := `WITH detail AS (
				SELECT slip_id, COUNT(id) AS total_items, SUM(amount) AS total_amount
				FROM custodian_slip_items GROUP BY slip_id
			)
			SELECT a.id, a.slip_no, a.custodian, a.designation, a.office,
			a.date_issued, a.issued_by, a.received_by, a.status,
			COALESCE(b.total_items, 0) AS total_items,
			COALESCE(b.total_amount, 0) AS total_amount
			FROM custodian_slips a
			LEFT JOIN detail b ON a.id = b.slip_id
			WHERE a.deleted_at IS NULL
			ORDER BY a.created_at DESC`

	if err := r.db.Raw(sql).Scan(&slips).Error; err != nil {
		return nil, err
	}

	return slips, nil
}

type SlipDetail struct {
	Slip  models.CustodianSlip       `json:"slip"`
	Items []models.CustodianSlipItem `json:"items"`
}

func (r *SlipRepository) GetSlipDetail(id uint) (*SlipDetail, error) {
	var slip models.CustodianSlip
	if err := r.db.Where("id = ?", id).First(&slip).Error; err != nil {
		return nil, err
	}

	var items []models.CustodianSlipItem
	if err := r.db.Where("slip_id = ?", id).Order("item_no ASC").Find(&items).Error; err != nil {
		return nil, err
	}

	return &SlipDetail{Slip: slip, Items: items}, nil
}

func (r *SlipRepository) GetSlipsByCustodian(custodian string) ([]ListSlip, error) {
	var slips []ListSlip

	sql := `WITH detail AS (
				SELECT slip_id, COUNT(id) AS total_items, SUM(amount) AS total_amount
				FROM custodian_slip_items GROUP BY slip_id
			)
			SELECT a.id, a.slip_no, a.custodian, a.designation, a.office,
			a.date_issued, a.issued_by, a.received_by, a.status,
			COALESCE(b.total_items, 0) AS total_items,
			COALESCE(b.total_amount, 0) AS total_amount
			FROM custodian_slips a
			LEFT JOIN detail b ON a.id = b.slip_id
			WHERE a.deleted_at IS NULL AND a.custodian = ?
			ORDER BY a.created_at DESC`

	if err := r.db.Raw(sql, custodian).Scan(&slips).Error; err != nil {
		return nil, err
	}

	return slips, nil
}
