package repositories

import (
	"gorm.io/gorm"
)

// DocumentNumberSource feeds the sequence generator from any numbered
// document table, e.g. transfers.transfer_no or loss_reports.report_no.
type DocumentNumberSource struct {
	db     *gorm.DB
	model  interface{}
	column string
}

func NewDocumentNumberSource(db *gorm.DB, model interface{}, column string) *DocumentNumberSource {
	return &DocumentNumberSource{db: db, model: model, column: column}
}

func (s *DocumentNumberSource) NumbersLike(pattern string) ([]string, error) {
	var numbers []string
	if err := s.db.Model(s.model).Unscoped().
		Where(s.column+" LIKE ?", pattern).
		Pluck(s.column, &numbers).Error; err != nil {
		return nil, err
	}
	return numbers, nil
}

func (s *DocumentNumberSource) NumberExists(number string) (bool, error) {
	var count int64
	if err := s.db.Model(s.model).Unscoped().
		Where(s.column+" = ?", number).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
