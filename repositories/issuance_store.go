package repositories

import (
	"errors"

	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/models"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/services"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/types"

	"gorm.io/gorm"
)

// IssuanceStore is the gorm implementation of services.IssuanceStore.
// One statement per call; deletes are hard deletes so a rolled-back row
// never shadows a later balance read or number scan.
type IssuanceStore struct {
	db *gorm.DB
}

func NewIssuanceStore(db *gorm.DB) *IssuanceStore {
	return &IssuanceStore{db: db}
}

func (s *IssuanceStore) GetItem(id types.SnowflakeID) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := s.db.Where("id = ?", id).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

func (s *IssuanceStore) AssignItem(id types.SnowflakeID, a services.ItemAssignment) error {
	return s.db.Model(&models.InventoryItem{}).Where("id = ?", id).Updates(map[string]interface{}{
		"custodian":             a.Custodian,
		"custodian_designation": a.Designation,
		"assignment_status":     models.AssignmentAssigned,
		"assigned_date":         a.Date,
		"slip_no":               a.SlipNo,
	}).Error
}

func (s *IssuanceStore) ReleaseItem(id types.SnowflakeID) error {
	return s.db.Model(&models.InventoryItem{}).Where("id = ?", id).Updates(map[string]interface{}{
		"custodian":             "",
		"custodian_designation": "",
		"assignment_status":     models.AssignmentAvailable,
		"assigned_date":         nil,
		"slip_no":               "",
	}).Error
}

func (s *IssuanceStore) GetCardByItemID(itemID types.SnowflakeID) (*models.PropertyCard, error) {
	var card models.PropertyCard
	if err := s.db.Where("item_id = ?", itemID).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &card, nil
}

func (s *IssuanceStore) LastCardEntry(cardID uint) (*models.PropertyCardEntry, error) {
	var entry models.PropertyCardEntry
	if err := s.db.Where("card_id = ?", cardID).Order("id DESC").First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &entry, nil
}

func (s *IssuanceStore) CreateCardEntry(entry *models.PropertyCardEntry) error {
	return s.db.Create(entry).Error
}

func (s *IssuanceStore) DeleteCardEntry(id uint) error {
	return s.db.Unscoped().Delete(&models.PropertyCardEntry{}, id).Error
}

func (s *IssuanceStore) ListCardEntriesBySlip(slipID uint) ([]models.PropertyCardEntry, error) {
	var entries []models.PropertyCardEntry
	if err := s.db.Where("slip_id = ?", slipID).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *IssuanceStore) CreateSlip(slip *models.CustodianSlip) error {
	return s.db.Create(slip).Error
}

func (s *IssuanceStore) GetSlip(id uint) (*models.CustodianSlip, error) {
	var slip models.CustodianSlip
	if err := s.db.Where("id = ?", id).First(&slip).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &slip, nil
}

func (s *IssuanceStore) DeleteSlip(id uint) error {
	return s.db.Unscoped().Delete(&models.CustodianSlip{}, id).Error
}

func (s *IssuanceStore) CreateSlipItem(item *models.CustodianSlipItem) error {
	return s.db.Create(item).Error
}

func (s *IssuanceStore) DeleteSlipItem(id uint) error {
	return s.db.Unscoped().Delete(&models.CustodianSlipItem{}, id).Error
}

func (s *IssuanceStore) SetSlipItemEntry(slipItemID, entryID uint) error {
	return s.db.Model(&models.CustodianSlipItem{}).Where("id = ?", slipItemID).
		Update("entry_id", entryID).Error
}

func (s *IssuanceStore) ListSlipItems(slipID uint) ([]models.CustodianSlipItem, error) {
	var items []models.CustodianSlipItem
	if err := s.db.Where("slip_id = ?", slipID).Order("item_no ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *IssuanceStore) SlipNumbersLike(pattern string) ([]string, error) {
	var numbers []string
	if err := s.db.Model(&models.CustodianSlip{}).Where("slip_no LIKE ?", pattern).
		Pluck("slip_no", &numbers).Error; err != nil {
		return nil, err
	}
	return numbers, nil
}

func (s *IssuanceStore) SlipNumberExists(number string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.CustodianSlip{}).Where("slip_no = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
