package services

import (
	"errors"
	"fmt"
)

var (
	ErrItemNotFound        = errors.New("inventory item not found")
	ErrAlreadyAssigned     = errors.New("inventory item is already assigned")
	ErrNotServiceable      = errors.New("inventory item is not serviceable")
	ErrPropertyCardMissing = errors.New("property card not found for item")
	ErrExhaustedRetries    = errors.New("exhausted attempts to generate a free number")
	ErrSlipNotFound        = errors.New("custodian slip not found")
	ErrImmutableSlip       = errors.New("custodian slip is finalized and cannot be deleted")
)

// PartialWriteError marks a failure that happened after some writes of
// the same request had already succeeded. By the time the caller sees
// it, every write has been compensated; Unwrap exposes the step error.
type PartialWriteError struct {
	Step string
	Err  error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("issuance failed at %s: %v (all writes rolled back)", e.Step, e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}
