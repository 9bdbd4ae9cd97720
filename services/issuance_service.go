package services

import (
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/models"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/types"
)

// IssuanceRequest carries one slip-creation call: one custodian, one
// date, any number of items. Items of different value categories end up
// on separate slips.
type IssuanceRequest struct {
	Custodian   string              `json:"custodian" validate:"required"`
	Designation string              `json:"designation"`
	Office      string              `json:"office"`
	DateIssued  string              `json:"date_issued"`
	IssuedBy    string              `json:"issued_by"`
	ReceivedBy  string              `json:"received_by"`
	ItemIDs     []types.SnowflakeID `json:"item_ids" validate:"required,min=1"`
	UserID      int                 `json:"-"`
}

// compensation is the recorded inverse of one committed write.
type compensation struct {
	desc string
	undo func() error
}

// compensationLog collects inverses in commit order so a failure can
// unwind them newest first. The same list serves the happy path (just
// discarded) and the rollback path, so no inverse can be forgotten.
type compensationLog struct {
	steps []compensation
}

func (l *compensationLog) record(desc string, undo func() error) {
	l.steps = append(l.steps, compensation{desc: desc, undo: undo})
}

// rollback runs the inverses newest first. Failures are logged and do
// not stop the remaining inverses; the caller keeps its original error.
func (l *compensationLog) rollback() {
	for i := len(l.steps) - 1; i >= 0; i-- {
		step := l.steps[i]
		if err := step.undo(); err != nil {
			log.Printf("rollback: failed to %s: %v", step.desc, err)
		}
	}
	l.steps = nil
}

// IssuanceService creates and deletes custodian slips. All writes go
// through IssuanceStore one statement at a time; on any failure the
// service compensates everything it wrote, in the current group and in
// groups already committed by the same call, before surfacing the
// original error.
type IssuanceService struct {
	store IssuanceStore
	seq   *SequenceGenerator
	now   func() time.Time
}

func NewIssuanceService(store IssuanceStore) *IssuanceService {
	return &IssuanceService{
		store: store,
		seq:   NewSequenceGenerator(slipNumberSource{store: store}),
		now:   time.Now,
	}
}

type itemGroup struct {
	category string
	items    []*models.InventoryItem
}

// CreateSlips validates the whole batch, partitions it by value
// category and creates one slip per category. Returns the created slips
// in group order.
func (s *IssuanceService) CreateSlips(req IssuanceRequest) ([]models.CustodianSlip, error) {
	if len(req.ItemIDs) == 0 {
		return nil, fmt.Errorf("no items to issue")
	}

	// Validate the entire batch before touching anything. Rejecting the
	// whole request beats committing half of it.
	items := make([]*models.InventoryItem, 0, len(req.ItemIDs))
	for _, id := range req.ItemIDs {
		item, err := s.store.GetItem(id)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, fmt.Errorf("%w: id %d", ErrItemNotFound, int64(id))
		}
		if item.AssignmentStatus != models.AssignmentAvailable || item.Custodian != "" {
			return nil, fmt.Errorf("%w: %s", ErrAlreadyAssigned, item.PropertyNo)
		}
		if item.Condition != models.ConditionServiceable {
			return nil, fmt.Errorf("%w: %s is %s", ErrNotServiceable, item.PropertyNo, item.Condition)
		}
		items = append(items, item)
	}

	// Partition by value category, keeping first-appearance order.
	groups := []*itemGroup{}
	byCategory := map[string]*itemGroup{}
	for _, item := range items {
		category := item.ValueCategory
		if category == "" {
			category = models.ValueCategoryFor(item.UnitCost)
		}
		group, ok := byCategory[category]
		if !ok {
			group = &itemGroup{category: category}
			byCategory[category] = group
			groups = append(groups, group)
		}
		group.items = append(group.items, item)
	}

	year := s.issueYear(req.DateIssued)

	slips := make([]models.CustodianSlip, 0, len(groups))
	committed := make([]*compensationLog, 0, len(groups))

	for _, group := range groups {
		slip, groupLog, err := s.issueGroup(req, group, year)
		if err != nil {
			// Unwind the failed group, then every group this call
			// already committed, newest first. The caller must never
			// see some categories assigned and others not.
			if groupLog != nil {
				groupLog.rollback()
			}
			for i := len(committed) - 1; i >= 0; i-- {
				committed[i].rollback()
			}
			return nil, err
		}
		slips = append(slips, *slip)
		committed = append(committed, groupLog)
	}

	return slips, nil
}

// issueGroup creates one slip and issues its items. On error the
// returned log still holds the inverses of whatever was written.
func (s *IssuanceService) issueGroup(req IssuanceRequest, group *itemGroup, year string) (*models.CustodianSlip, *compensationLog, error) {
	groupLog := &compensationLog{}

	slipNo, err := s.seq.NextNumber(models.SlipNoPrefix(group.category), year)
	if err != nil {
		return nil, groupLog, err
	}

	slip := &models.CustodianSlip{
		SlipNo:      slipNo,
		Custodian:   req.Custodian,
		Designation: req.Designation,
		Office:      req.Office,
		DateIssued:  req.DateIssued,
		IssuedBy:    req.IssuedBy,
		ReceivedBy:  req.ReceivedBy,
		Status:      models.SlipStatusDraft,
		CreatedBy:   req.UserID,
	}
	if err := s.store.CreateSlip(slip); err != nil {
		return nil, groupLog, err
	}
	slipID := slip.ID
	groupLog.record(fmt.Sprintf("delete slip %s", slipNo), func() error {
		return s.store.DeleteSlip(slipID)
	})

	// Items are issued strictly in input order. The running balance of
	// each property card depends on the previous entry, so this chain
	// must not be parallelized or reordered.
	for idx, item := range group.items {
		if err := s.issueItem(req, slip, item, idx+1, groupLog); err != nil {
			return nil, groupLog, err
		}
	}

	return slip, groupLog, nil
}

func (s *IssuanceService) issueItem(req IssuanceRequest, slip *models.CustodianSlip, item *models.InventoryItem, itemNo int, groupLog *compensationLog) error {
	slipItem := &models.CustodianSlipItem{
		SlipID:      slip.ID,
		ItemNo:      itemNo,
		ItemID:      item.ID,
		PropertyNo:  item.PropertyNo,
		Description: item.Description,
		Quantity:    item.Quantity,
		Uom:         item.Uom,
		UnitCost:    item.UnitCost,
		Amount:      float64(item.Quantity) * item.UnitCost,
		CreatedBy:   req.UserID,
	}
	if err := s.store.CreateSlipItem(slipItem); err != nil {
		return s.stepFailed("create slip item", item.PropertyNo, err, groupLog)
	}
	slipItemID := slipItem.ID
	groupLog.record(fmt.Sprintf("delete slip item %s", item.PropertyNo), func() error {
		return s.store.DeleteSlipItem(slipItemID)
	})

	card, err := s.store.GetCardByItemID(item.ID)
	if err != nil {
		return s.stepFailed("locate property card", item.PropertyNo, err, groupLog)
	}
	if card == nil {
		return s.stepFailed("locate property card", item.PropertyNo,
			fmt.Errorf("%w: %s", ErrPropertyCardMissing, item.PropertyNo), groupLog)
	}

	last, err := s.store.LastCardEntry(card.ID)
	if err != nil {
		return s.stepFailed("read last card entry", item.PropertyNo, err, groupLog)
	}

	// A card must start from a receipt. If the ledger is still empty,
	// synthesize the opening entry from the item's acquisition data.
	if last == nil {
		opening := &models.PropertyCardEntry{
			CardID:           card.ID,
			EntryDate:        item.AcquisitionDate,
			Reference:        "Acquisition",
			ReceiptQty:       item.Quantity,
			ReceiptUnitCost:  item.UnitCost,
			ReceiptTotalCost: float64(item.Quantity) * item.UnitCost,
			BalanceQty:       item.Quantity,
			Amount:           float64(item.Quantity) * item.UnitCost,
			CreatedBy:        req.UserID,
		}
		if err := s.store.CreateCardEntry(opening); err != nil {
			return s.stepFailed("create opening card entry", item.PropertyNo, err, groupLog)
		}
		openingID := opening.ID
		groupLog.record(fmt.Sprintf("delete opening entry for %s", item.PropertyNo), func() error {
			return s.store.DeleteCardEntry(openingID)
		})
		last = opening
	}

	balance := last.BalanceQty - item.Quantity
	if balance < 0 {
		balance = 0
	}

	issue := &models.PropertyCardEntry{
		CardID:       card.ID,
		EntryDate:    req.DateIssued,
		Reference:    slip.SlipNo,
		IssueQty:     item.Quantity,
		IssueOfficer: req.IssuedBy,
		BalanceQty:   balance,
		Amount:       float64(item.Quantity) * item.UnitCost,
		SlipID:       slip.ID,
		CreatedBy:    req.UserID,
	}
	if err := s.store.CreateCardEntry(issue); err != nil {
		return s.stepFailed("create issue card entry", item.PropertyNo, err, groupLog)
	}
	issueID := issue.ID
	groupLog.record(fmt.Sprintf("delete issue entry for %s", item.PropertyNo), func() error {
		return s.store.DeleteCardEntry(issueID)
	})

	assignment := ItemAssignment{
		Custodian:   req.Custodian,
		Designation: req.Designation,
		SlipNo:      slip.SlipNo,
		Date:        s.now(),
	}
	if err := s.store.AssignItem(item.ID, assignment); err != nil {
		return s.stepFailed("assign inventory item", item.PropertyNo, err, groupLog)
	}
	itemID := item.ID
	groupLog.record(fmt.Sprintf("release item %s", item.PropertyNo), func() error {
		return s.store.ReleaseItem(itemID)
	})

	if err := s.store.SetSlipItemEntry(slipItem.ID, issue.ID); err != nil {
		return s.stepFailed("link slip item to card entry", item.PropertyNo, err, groupLog)
	}

	return nil
}

// stepFailed wraps a mid-issuance error so the caller can tell a
// compensated partial write from a pre-write validation failure. The
// wrapped error stays reachable through errors.Is/As.
func (s *IssuanceService) stepFailed(step, propertyNo string, err error, groupLog *compensationLog) error {
	if len(groupLog.steps) == 0 {
		return err
	}
	return &PartialWriteError{Step: fmt.Sprintf("%s (%s)", step, propertyNo), Err: err}
}

// DeleteSlip reverses an issuance: every item on the slip is released
// back to available, the slip's card entries and slip items are removed,
// then the slip itself. Finalized slips refuse unless force is set.
func (s *IssuanceService) DeleteSlip(id uint, force bool) error {
	slip, err := s.store.GetSlip(id)
	if err != nil {
		return err
	}
	if slip == nil {
		return fmt.Errorf("%w: id %d", ErrSlipNotFound, id)
	}
	if slip.Status == models.SlipStatusCompleted && !force {
		return fmt.Errorf("%w: %s", ErrImmutableSlip, slip.SlipNo)
	}

	items, err := s.store.ListSlipItems(slip.ID)
	if err != nil {
		return err
	}
	for _, slipItem := range items {
		if slipItem.ItemID == 0 {
			continue
		}
		if err := s.store.ReleaseItem(slipItem.ItemID); err != nil {
			return err
		}
	}

	entries, err := s.store.ListCardEntriesBySlip(slip.ID)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := s.store.DeleteCardEntry(entry.ID); err != nil {
			return err
		}
	}

	for _, slipItem := range items {
		if err := s.store.DeleteSlipItem(slipItem.ID); err != nil {
			return err
		}
	}

	return s.store.DeleteSlip(slip.ID)
}

func (s *IssuanceService) issueYear(dateIssued string) string {
	if t, err := time.Parse("2006-01-02", dateIssued); err == nil {
		return strconv.Itoa(t.Year())
	}
	return strconv.Itoa(s.now().Year())
}
