package repositories

import (
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/models"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/types"

	"gorm.io/gorm"
)

type PropertyCardRepository struct {
	db *gorm.DB
}

func NewPropertyCardRepository(db *gorm.DB) *PropertyCardRepository {
	return &PropertyCardRepository{db: db}
}

type CardWithEntries struct {
	Card    models.PropertyCard        `json:"card"`
	Entries []models.PropertyCardEntry `json:"entries"`
	Balance int                        `json:"balance"`
}

func (r *PropertyCardRepository) GetCardByItemID(itemID types.SnowflakeID) (*CardWithEntries, error) {
	var card models.PropertyCard
	if err := r.db.Where("item_id = ?", itemID).First(&card).Error; err != nil {
		return nil, err
	}

	var entries []models.PropertyCardEntry
	if err := r.db.Where("card_id = ?", card.ID).Order("id ASC").Find(&entries).Error; err != nil {
		return nil, err
	}

	// Current balance is the running balance of the newest entry.
	balance := 0
	if len(entries) > 0 {
		balance = entries[len(entries)-1].BalanceQty
	}

	return &CardWithEntries{Card: card, Entries: entries, Balance: balance}, nil
}

type ListCard struct {
	ID              uint   `json:"id"`
	PropertyNo      string `json:"property_no"`
	Description     string `json:"description"`
	EntityName      string `json:"entity_name"`
	FundCluster     string `json:"fund_cluster"`
	AcquisitionDate string `json:"acquisition_date"`
	EntryCount      int    `json:"entry_count"`
	Balance         int    `json:"balance"`
}

func (r *PropertyCardRepository) GetAllCards() ([]ListCard, error) {
	var cards []ListCard

	sql := `WITH latest AS (
				SELECT card_id, COUNT(id) AS entry_count, MAX(id) AS last_entry_id
				FROM property_card_entries GROUP BY card_id
			)
			SELECT a.id, a.property_no, a.description, a.entity_name,
			a.fund_cluster, a.acquisition_date,
			COALESCE(b.entry_count, 0) AS entry_count,
			COALESCE(c.balance_qty, 0) AS balance
			FROM property_cards a
			LEFT JOIN latest b ON a.id = b.card_id
			LEFT JOIN property_card_entries c ON c.id = b.last_entry_id
			WHERE a.deleted_at IS NULL
			ORDER BY a.property_no ASC`

	if err := r.db.Raw(sql).Scan(&cards).Error; err != nil {
		return nil, err
	}

	return cards, nil
}
