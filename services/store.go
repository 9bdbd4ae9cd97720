package services

import (
	"time"

	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/models"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/types"
)

// ItemAssignment is the set of inventory item fields that always move
// together when an item is issued. Clearing reverses all of them.
type ItemAssignment struct {
	Custodian   string
	Designation string
	SlipNo      string
	Date        time.Time
}

// IssuanceStore is the row-level capability set the issuance workflow
// needs from the database. Every call is individually atomic; there is
// no multi-statement transaction, which is why the workflow carries its
// own compensation log. Lookups return (nil, nil) when no row matches.
type IssuanceStore interface {
	GetItem(id types.SnowflakeID) (*models.InventoryItem, error)
	AssignItem(id types.SnowflakeID, a ItemAssignment) error
	ReleaseItem(id types.SnowflakeID) error

	GetCardByItemID(itemID types.SnowflakeID) (*models.PropertyCard, error)
	LastCardEntry(cardID uint) (*models.PropertyCardEntry, error)
	CreateCardEntry(entry *models.PropertyCardEntry) error
	DeleteCardEntry(id uint) error
	ListCardEntriesBySlip(slipID uint) ([]models.PropertyCardEntry, error)

	CreateSlip(slip *models.CustodianSlip) error
	GetSlip(id uint) (*models.CustodianSlip, error)
	DeleteSlip(id uint) error

	CreateSlipItem(item *models.CustodianSlipItem) error
	DeleteSlipItem(id uint) error
	SetSlipItemEntry(slipItemID, entryID uint) error
	ListSlipItems(slipID uint) ([]models.CustodianSlipItem, error)

	SlipNumbersLike(pattern string) ([]string, error)
	SlipNumberExists(number string) (bool, error)
}

// slipNumberSource adapts the store to the generator's read interface.
type slipNumberSource struct {
	store IssuanceStore
}

func (s slipNumberSource) NumbersLike(pattern string) ([]string, error) {
	return s.store.SlipNumbersLike(pattern)
}

func (s slipNumberSource) NumberExists(number string) (bool, error) {
	return s.store.SlipNumberExists(number)
}
