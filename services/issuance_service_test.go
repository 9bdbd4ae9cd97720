package services

import (
	"errors"
	"testing"

	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/models"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/types"
)

func testRequest(ids ...int64) IssuanceRequest {
	itemIDs := make([]types.SnowflakeID, len(ids))
	for i, id := range ids {
		itemIDs[i] = types.SnowflakeID(id)
	}
	return IssuanceRequest{
		Custodian:   "Juan Dela Cruz",
		Designation: "Administrative Officer II",
		Office:      "Supply Office",
		DateIssued:  "2025-06-01",
		IssuedBy:    "Maria Santos",
		ReceivedBy:  "Juan Dela Cruz",
		ItemIDs:     itemIDs,
		UserID:      7,
	}
}

func assertStoreUntouched(t *testing.T, store *fakeStore) {
	t.Helper()
	if len(store.slips) != 0 {
		t.Errorf("expected no slips, found %d", len(store.slips))
	}
	if len(store.slipItems) != 0 {
		t.Errorf("expected no slip items, found %d", len(store.slipItems))
	}
	if len(store.entries) != 0 {
		t.Errorf("expected no card entries, found %d", len(store.entries))
	}
	for _, item := range store.items {
		if item.AssignmentStatus != models.AssignmentAvailable || item.Custodian != "" || item.SlipNo != "" {
			t.Errorf("item %s left in assigned state after failure", item.PropertyNo)
		}
	}
}

func TestCreateSlipsGroupsByValueCategory(t *testing.T) {
	store := newFakeStore()
	store.addItem(1, "SPLV-2025-0001", 1500, 1)
	store.addItem(2, "SPLV-2025-0002", 3200, 1)
	store.addItem(3, "SPHV-2025-0001", 24000, 1)
	svc := NewIssuanceService(store)

	slips, err := svc.CreateSlips(testRequest(1, 2, 3))
	if err != nil {
		t.Fatalf("CreateSlips: %v", err)
	}

	if len(slips) != 2 {
		t.Fatalf("expected 2 slips, got %d", len(slips))
	}
	if slips[0].SlipNo != "ICS-SPLV-2025-0001" {
		t.Errorf("small value slip no = %s", slips[0].SlipNo)
	}
	if slips[1].SlipNo != "ICS-SPHV-2025-0001" {
		t.Errorf("high value slip no = %s", slips[1].SlipNo)
	}

	small, _ := store.ListSlipItems(slips[0].ID)
	high, _ := store.ListSlipItems(slips[1].ID)
	if len(small) != 2 || len(high) != 1 {
		t.Errorf("expected 2+1 slip items, got %d+%d", len(small), len(high))
	}

	for _, slip := range slips {
		if slip.Status != models.SlipStatusDraft {
			t.Errorf("slip %s created with status %s", slip.SlipNo, slip.Status)
		}
	}
}

func TestCreateSlipsAssignsItemsAndLinksEntries(t *testing.T) {
	store := newFakeStore()
	store.addItem(1, "SPLV-2025-0001", 1500, 1)
	svc := NewIssuanceService(store)

	slips, err := svc.CreateSlips(testRequest(1))
	if err != nil {
		t.Fatalf("CreateSlips: %v", err)
	}

	item := store.items[types.SnowflakeID(1)]
	if item.AssignmentStatus != models.AssignmentAssigned {
		t.Errorf("item not assigned")
	}
	if item.Custodian != "Juan Dela Cruz" || item.CustodianDesignation != "Administrative Officer II" {
		t.Errorf("custodian fields not set: %q %q", item.Custodian, item.CustodianDesignation)
	}
	if item.SlipNo != slips[0].SlipNo {
		t.Errorf("item slip no = %q, want %q", item.SlipNo, slips[0].SlipNo)
	}
	if item.AssignedDate == nil {
		t.Errorf("assigned date not set")
	}

	slipItems, _ := store.ListSlipItems(slips[0].ID)
	if len(slipItems) != 1 {
		t.Fatalf("expected 1 slip item, got %d", len(slipItems))
	}
	if slipItems[0].EntryID == 0 {
		t.Errorf("slip item not linked to its card entry")
	}
	entry := store.entries[slipItems[0].EntryID]
	if entry == nil || entry.SlipID != slips[0].ID {
		t.Errorf("linked entry missing or not referencing slip")
	}
}

// A card with no entries gets a synthetic opening receipt before the
// issue entry, so the ledger always starts from a receipt.
func TestCreateSlipsSynthesizesOpeningReceipt(t *testing.T) {
	store := newFakeStore()
	store.addItem(1, "SPLV-2025-0001", 900, 5)
	svc := NewIssuanceService(store)

	if _, err := svc.CreateSlips(testRequest(1)); err != nil {
		t.Fatalf("CreateSlips: %v", err)
	}

	var opening, issue *models.PropertyCardEntry
	for _, entry := range store.entries {
		if entry.ReceiptQty > 0 {
			opening = entry
		}
		if entry.IssueQty > 0 {
			issue = entry
		}
	}
	if opening == nil {
		t.Fatal("no opening receipt entry created")
	}
	if opening.ReceiptQty != 5 || opening.BalanceQty != 5 {
		t.Errorf("opening receipt qty/balance = %d/%d, want 5/5", opening.ReceiptQty, opening.BalanceQty)
	}
	if issue == nil {
		t.Fatal("no issue entry created")
	}
	if issue.IssueQty != 5 || issue.BalanceQty != 0 {
		t.Errorf("issue qty/balance = %d/%d, want 5/0", issue.IssueQty, issue.BalanceQty)
	}
	if issue.ID <= opening.ID {
		t.Errorf("issue entry must follow the opening receipt")
	}
}

// Balance recurrence: newBalance = max(0, lastBalance - issueQty),
// continuing from whatever the card already holds.
func TestBalanceChainContinuesFromExistingEntries(t *testing.T) {
	store := newFakeStore()
	item := store.addItem(1, "SPLV-2025-0001", 900, 3)

	var cardID uint
	for id, card := range store.cards {
		if card.ItemID == item.ID {
			cardID = id
		}
	}
	seed := &models.PropertyCardEntry{
		CardID:     cardID,
		Reference:  "Acquisition",
		ReceiptQty: 10,
		BalanceQty: 10,
	}
	if err := store.CreateCardEntry(seed); err != nil {
		t.Fatal(err)
	}

	svc := NewIssuanceService(store)
	if _, err := svc.CreateSlips(testRequest(1)); err != nil {
		t.Fatalf("CreateSlips: %v", err)
	}

	last, _ := store.LastCardEntry(cardID)
	if last.IssueQty != 3 || last.BalanceQty != 7 {
		t.Errorf("issue qty/balance = %d/%d, want 3/7", last.IssueQty, last.BalanceQty)
	}
}

func TestBalanceNeverGoesNegative(t *testing.T) {
	store := newFakeStore()
	item := store.addItem(1, "SPLV-2025-0001", 900, 8)

	var cardID uint
	for id, card := range store.cards {
		if card.ItemID == item.ID {
			cardID = id
		}
	}
	store.CreateCardEntry(&models.PropertyCardEntry{
		CardID: cardID, ReceiptQty: 2, BalanceQty: 2,
	})

	svc := NewIssuanceService(store)
	if _, err := svc.CreateSlips(testRequest(1)); err != nil {
		t.Fatalf("CreateSlips: %v", err)
	}

	last, _ := store.LastCardEntry(cardID)
	if last.BalanceQty != 0 {
		t.Errorf("balance clamped at 0 expected, got %d", last.BalanceQty)
	}
}

func TestValidationFailsBeforeAnyMutation(t *testing.T) {
	store := newFakeStore()
	store.addItem(1, "SPLV-2025-0001", 1500, 1)
	assigned := store.addItem(2, "SPLV-2025-0002", 1500, 1)
	assigned.AssignmentStatus = models.AssignmentAssigned
	assigned.Custodian = "Somebody Else"
	svc := NewIssuanceService(store)

	_, err := svc.CreateSlips(testRequest(1, 2))
	if !errors.Is(err, ErrAlreadyAssigned) {
		t.Fatalf("expected ErrAlreadyAssigned, got %v", err)
	}

	// The first, otherwise-valid item must be untouched too.
	if len(store.slips) != 0 || len(store.slipItems) != 0 || len(store.entries) != 0 {
		t.Errorf("mutations happened despite validation failure")
	}
	first := store.items[types.SnowflakeID(1)]
	if first.AssignmentStatus != models.AssignmentAvailable || first.Custodian != "" {
		t.Errorf("valid item mutated despite batch rejection")
	}
}

func TestValidationRejectsMissingItem(t *testing.T) {
	store := newFakeStore()
	store.addItem(1, "SPLV-2025-0001", 1500, 1)
	svc := NewIssuanceService(store)

	_, err := svc.CreateSlips(testRequest(1, 99))
	if !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("expected ErrItemNotFound, got %v", err)
	}
	assertStoreUntouched(t, store)
}

func TestValidationRejectsUnserviceableItem(t *testing.T) {
	store := newFakeStore()
	broken := store.addItem(1, "SPLV-2025-0001", 1500, 1)
	broken.Condition = models.ConditionForRepair
	svc := NewIssuanceService(store)

	_, err := svc.CreateSlips(testRequest(1))
	if !errors.Is(err, ErrNotServiceable) {
		t.Fatalf("expected ErrNotServiceable, got %v", err)
	}
	assertStoreUntouched(t, store)
}

func TestMissingPropertyCardRollsBackGroup(t *testing.T) {
	store := newFakeStore()
	store.addItem(1, "SPLV-2025-0001", 1500, 1)
	orphan := &models.InventoryItem{
		ID:               types.SnowflakeID(2),
		PropertyNo:       "SPLV-2025-0002",
		Quantity:         1,
		UnitCost:         1500,
		ValueCategory:    models.CategorySmallValue,
		Condition:        models.ConditionServiceable,
		AssignmentStatus: models.AssignmentAvailable,
	}
	store.items[orphan.ID] = orphan
	svc := NewIssuanceService(store)

	_, err := svc.CreateSlips(testRequest(1, 2))
	if !errors.Is(err, ErrPropertyCardMissing) {
		t.Fatalf("expected ErrPropertyCardMissing, got %v", err)
	}
	assertStoreUntouched(t, store)
}

// Failure partway through a group removes every row the group wrote,
// including the slip itself, and surfaces the original error.
func TestStepFailureRollsBackWholeGroup(t *testing.T) {
	store := newFakeStore()
	store.addItem(1, "SPLV-2025-0001", 1500, 1)
	store.addItem(2, "SPLV-2025-0002", 1800, 1)
	store.failAt["SetSlipItemEntry"] = 2
	svc := NewIssuanceService(store)

	_, err := svc.CreateSlips(testRequest(1, 2))
	if err == nil {
		t.Fatal("expected failure")
	}
	if !errors.Is(err, errInjected) {
		t.Fatalf("original error must surface, got %v", err)
	}
	var partial *PartialWriteError
	if !errors.As(err, &partial) {
		t.Fatalf("expected PartialWriteError, got %T", err)
	}
	assertStoreUntouched(t, store)
}

// If a later category group fails, earlier fully-committed groups are
// reverted too; the caller never sees a half-issued batch.
func TestCrossGroupRollback(t *testing.T) {
	store := newFakeStore()
	store.addItem(1, "SPLV-2025-0001", 1500, 1)
	store.addItem(2, "SPHV-2025-0001", 24000, 1)
	// Group 1 (small value) commits fully: slip + slip item + opening +
	// issue entry + assign. Group 2's assign is the 2nd AssignItem call.
	store.failAt["AssignItem"] = 2
	svc := NewIssuanceService(store)

	_, err := svc.CreateSlips(testRequest(1, 2))
	if err == nil {
		t.Fatal("expected failure")
	}
	if !errors.Is(err, errInjected) {
		t.Fatalf("original error must surface, got %v", err)
	}
	assertStoreUntouched(t, store)
}

func TestRollbackFailureDoesNotMaskOriginalError(t *testing.T) {
	store := newFakeStore()
	store.addItem(1, "SPLV-2025-0001", 1500, 1)
	store.failAt["SetSlipItemEntry"] = 1
	store.failAt["DeleteSlipItem"] = 1
	svc := NewIssuanceService(store)

	_, err := svc.CreateSlips(testRequest(1))
	if !errors.Is(err, errInjected) {
		t.Fatalf("original error must survive a failing rollback, got %v", err)
	}
	var partial *PartialWriteError
	if !errors.As(err, &partial) {
		t.Fatalf("expected PartialWriteError, got %T", err)
	}
}

func TestDeleteSlipReversesAssignment(t *testing.T) {
	store := newFakeStore()
	store.addItem(1, "SPLV-2025-0001", 900, 5)
	svc := NewIssuanceService(store)

	slips, err := svc.CreateSlips(testRequest(1))
	if err != nil {
		t.Fatalf("CreateSlips: %v", err)
	}

	if err := svc.DeleteSlip(slips[0].ID, false); err != nil {
		t.Fatalf("DeleteSlip: %v", err)
	}

	item := store.items[types.SnowflakeID(1)]
	if item.AssignmentStatus != models.AssignmentAvailable || item.Custodian != "" || item.SlipNo != "" {
		t.Errorf("item not released after slip deletion")
	}
	if len(store.slips) != 0 || len(store.slipItems) != 0 {
		t.Errorf("slip rows not removed")
	}

	// The issue entry is gone; the opening receipt stays, so the card's
	// current balance reads 5 again.
	var cardID uint
	for id, card := range store.cards {
		if card.ItemID == item.ID {
			cardID = id
		}
	}
	last, _ := store.LastCardEntry(cardID)
	if last == nil || last.BalanceQty != 5 || last.IssueQty != 0 {
		t.Errorf("balance not restored after deletion: %+v", last)
	}
}

func TestDeleteSlipRefusesFinalized(t *testing.T) {
	store := newFakeStore()
	store.addItem(1, "SPLV-2025-0001", 900, 1)
	svc := NewIssuanceService(store)

	slips, _ := svc.CreateSlips(testRequest(1))
	store.slips[slips[0].ID].Status = models.SlipStatusCompleted

	err := svc.DeleteSlip(slips[0].ID, false)
	if !errors.Is(err, ErrImmutableSlip) {
		t.Fatalf("expected ErrImmutableSlip, got %v", err)
	}

	// Explicit override goes through.
	if err := svc.DeleteSlip(slips[0].ID, true); err != nil {
		t.Fatalf("forced DeleteSlip: %v", err)
	}
	if len(store.slips) != 0 || len(store.slipItems) != 0 {
		t.Errorf("slip rows not removed by forced deletion")
	}
	item := store.items[types.SnowflakeID(1)]
	if item.AssignmentStatus != models.AssignmentAvailable {
		t.Errorf("item not released by forced deletion")
	}
}

func TestDeleteSlipUnknownID(t *testing.T) {
	svc := NewIssuanceService(newFakeStore())
	err := svc.DeleteSlip(42, false)
	if !errors.Is(err, ErrSlipNotFound) {
		t.Fatalf("expected ErrSlipNotFound, got %v", err)
	}
}

// Deleting and reissuing frees and remints cleanly: the freed slip
// number may be reused since the row is gone.
func TestReissueAfterDeletion(t *testing.T) {
	store := newFakeStore()
	store.addItem(1, "SPLV-2025-0001", 900, 5)
	svc := NewIssuanceService(store)

	slips, err := svc.CreateSlips(testRequest(1))
	if err != nil {
		t.Fatalf("first CreateSlips: %v", err)
	}
	if err := svc.DeleteSlip(slips[0].ID, false); err != nil {
		t.Fatalf("DeleteSlip: %v", err)
	}

	again, err := svc.CreateSlips(testRequest(1))
	if err != nil {
		t.Fatalf("second CreateSlips: %v", err)
	}
	if len(again) != 1 {
		t.Fatalf("expected 1 slip, got %d", len(again))
	}

	// Opening receipt survives the first cycle, so no second opening is
	// written and the balance chain continues 5 -> 0.
	var cardID uint
	for id, card := range store.cards {
		if card.ItemID == types.SnowflakeID(1) {
			cardID = id
		}
	}
	last, _ := store.LastCardEntry(cardID)
	if last.IssueQty != 5 || last.BalanceQty != 0 {
		t.Errorf("reissue balance chain wrong: %+v", last)
	}
	openings := 0
	for _, entry := range store.entries {
		if entry.ReceiptQty > 0 {
			openings++
		}
	}
	if openings != 1 {
		t.Errorf("expected exactly one opening receipt, got %d", openings)
	}
}

func TestCreateSlipsEmptyRequest(t *testing.T) {
	svc := NewIssuanceService(newFakeStore())
	if _, err := svc.CreateSlips(IssuanceRequest{}); err == nil {
		t.Fatal("expected error for empty item list")
	}
}
