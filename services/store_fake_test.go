package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/models"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/types"
)

var errInjected = errors.New("injected store failure")

// fakeStore is an in-memory IssuanceStore. failAt["Op"] = n makes the
// n-th call to Op fail, so tests can break the workflow at any step.
type fakeStore struct {
	items     map[types.SnowflakeID]*models.InventoryItem
	cards     map[uint]*models.PropertyCard
	entries   map[uint]*models.PropertyCardEntry
	slips     map[uint]*models.CustodianSlip
	slipItems map[uint]*models.CustodianSlipItem

	nextID uint
	calls  map[string]int
	failAt map[string]int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		items:     map[types.SnowflakeID]*models.InventoryItem{},
		cards:     map[uint]*models.PropertyCard{},
		entries:   map[uint]*models.PropertyCardEntry{},
		slips:     map[uint]*models.CustodianSlip{},
		slipItems: map[uint]*models.CustodianSlipItem{},
		calls:     map[string]int{},
		failAt:    map[string]int{},
	}
}

func (f *fakeStore) fail(op string) error {
	f.calls[op]++
	if n, ok := f.failAt[op]; ok && f.calls[op] == n {
		return fmt.Errorf("%w: %s", errInjected, op)
	}
	return nil
}

func (f *fakeStore) id() uint {
	f.nextID++
	return f.nextID
}

// addItem seeds a serviceable, available item with its property card.
func (f *fakeStore) addItem(id int64, propertyNo string, unitCost float64, qty int) *models.InventoryItem {
	item := &models.InventoryItem{
		ID:            types.SnowflakeID(id),
		PropertyNo:    propertyNo,
		Description:   "Test asset " + propertyNo,
		Quantity:      qty,
		Uom:           "unit",
		UnitCost:      unitCost,
		TotalCost:     float64(qty) * unitCost,
		ValueCategory: models.ValueCategoryFor(unitCost),
		Condition:     models.ConditionServiceable,
		Status:        models.StatusActive,

		AssignmentStatus: models.AssignmentAvailable,
		AcquisitionDate:  "2025-01-15",
	}
	f.items[item.ID] = item

	card := &models.PropertyCard{
		ItemID:     item.ID,
		PropertyNo: propertyNo,
	}
	card.ID = f.id()
	f.cards[card.ID] = card

	return item
}

func (f *fakeStore) GetItem(id types.SnowflakeID) (*models.InventoryItem, error) {
	if err := f.fail("GetItem"); err != nil {
		return nil, err
	}
	item, ok := f.items[id]
	if !ok {
		return nil, nil
	}
	clone := *item
	return &clone, nil
}

func (f *fakeStore) AssignItem(id types.SnowflakeID, a ItemAssignment) error {
	if err := f.fail("AssignItem"); err != nil {
		return err
	}
	item, ok := f.items[id]
	if !ok {
		return fmt.Errorf("assign: item %d not found", int64(id))
	}
	date := a.Date
	item.Custodian = a.Custodian
	item.CustodianDesignation = a.Designation
	item.AssignmentStatus = models.AssignmentAssigned
	item.AssignedDate = &date
	item.SlipNo = a.SlipNo
	return nil
}

func (f *fakeStore) ReleaseItem(id types.SnowflakeID) error {
	if err := f.fail("ReleaseItem"); err != nil {
		return err
	}
	item, ok := f.items[id]
	if !ok {
		return fmt.Errorf("release: item %d not found", int64(id))
	}
	item.Custodian = ""
	item.CustodianDesignation = ""
	item.AssignmentStatus = models.AssignmentAvailable
	item.AssignedDate = nil
	item.SlipNo = ""
	return nil
}

func (f *fakeStore) GetCardByItemID(itemID types.SnowflakeID) (*models.PropertyCard, error) {
	if err := f.fail("GetCardByItemID"); err != nil {
		return nil, err
	}
	for _, card := range f.cards {
		if card.ItemID == itemID {
			clone := *card
			return &clone, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) LastCardEntry(cardID uint) (*models.PropertyCardEntry, error) {
	if err := f.fail("LastCardEntry"); err != nil {
		return nil, err
	}
	var last *models.PropertyCardEntry
	for _, entry := range f.entries {
		if entry.CardID != cardID {
			continue
		}
		if last == nil || entry.ID > last.ID {
			last = entry
		}
	}
	if last == nil {
		return nil, nil
	}
	clone := *last
	return &clone, nil
}

func (f *fakeStore) CreateCardEntry(entry *models.PropertyCardEntry) error {
	if err := f.fail("CreateCardEntry"); err != nil {
		return err
	}
	entry.ID = f.id()
	clone := *entry
	f.entries[entry.ID] = &clone
	return nil
}

func (f *fakeStore) DeleteCardEntry(id uint) error {
	if err := f.fail("DeleteCardEntry"); err != nil {
		return err
	}
	delete(f.entries, id)
	return nil
}

func (f *fakeStore) ListCardEntriesBySlip(slipID uint) ([]models.PropertyCardEntry, error) {
	if err := f.fail("ListCardEntriesBySlip"); err != nil {
		return nil, err
	}
	var out []models.PropertyCardEntry
	for _, entry := range f.entries {
		if entry.SlipID == slipID {
			out = append(out, *entry)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateSlip(slip *models.CustodianSlip) error {
	if err := f.fail("CreateSlip"); err != nil {
		return err
	}
	slip.ID = f.id()
	clone := *slip
	f.slips[slip.ID] = &clone
	return nil
}

func (f *fakeStore) GetSlip(id uint) (*models.CustodianSlip, error) {
	if err := f.fail("GetSlip"); err != nil {
		return nil, err
	}
	slip, ok := f.slips[id]
	if !ok {
		return nil, nil
	}
	clone := *slip
	return &clone, nil
}

func (f *fakeStore) DeleteSlip(id uint) error {
	if err := f.fail("DeleteSlip"); err != nil {
		return err
	}
	delete(f.slips, id)
	return nil
}

func (f *fakeStore) CreateSlipItem(item *models.CustodianSlipItem) error {
	if err := f.fail("CreateSlipItem"); err != nil {
		return err
	}
	item.ID = f.id()
	clone := *item
	f.slipItems[item.ID] = &clone
	return nil
}

func (f *fakeStore) DeleteSlipItem(id uint) error {
	if err := f.fail("DeleteSlipItem"); err != nil {
		return err
	}
	delete(f.slipItems, id)
	return nil
}

func (f *fakeStore) SetSlipItemEntry(slipItemID, entryID uint) error {
	if err := f.fail("SetSlipItemEntry"); err != nil {
		return err
	}
	item, ok := f.slipItems[slipItemID]
	if !ok {
		return fmt.Errorf("slip item %d not found", slipItemID)
	}
	item.EntryID = entryID
	return nil
}

func (f *fakeStore) ListSlipItems(slipID uint) ([]models.CustodianSlipItem, error) {
	if err := f.fail("ListSlipItems"); err != nil {
		return nil, err
	}
	var out []models.CustodianSlipItem
	for _, item := range f.slipItems {
		if item.SlipID == slipID {
			out = append(out, *item)
		}
	}
	return out, nil
}

func (f *fakeStore) SlipNumbersLike(pattern string) ([]string, error) {
	if err := f.fail("SlipNumbersLike"); err != nil {
		return nil, err
	}
	prefix := strings.TrimSuffix(pattern, "%")
	var out []string
	for _, slip := range f.slips {
		if strings.HasPrefix(slip.SlipNo, prefix) {
			out = append(out, slip.SlipNo)
		}
	}
	return out, nil
}

func (f *fakeStore) SlipNumberExists(number string) (bool, error) {
	if err := f.fail("SlipNumberExists"); err != nil {
		return false, err
	}
	for _, slip := range f.slips {
		if slip.SlipNo == number {
			return true, nil
		}
	}
	return false, nil
}

// fakeNumberSource backs generator-only tests with a plain list.
type fakeNumberSource struct {
	numbers []string
	err     error
}

func (f *fakeNumberSource) NumbersLike(pattern string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	prefix := strings.TrimSuffix(pattern, "%")
	var out []string
	for _, number := range f.numbers {
		if strings.HasPrefix(number, prefix) {
			out = append(out, number)
		}
	}
	return out, nil
}

func (f *fakeNumberSource) NumberExists(number string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, existing := range f.numbers {
		if existing == number {
			return true, nil
		}
	}
	return false, nil
}
