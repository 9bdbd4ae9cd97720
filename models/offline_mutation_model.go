package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	MutationStatusPending = "pending"
	MutationStatusFailed  = "failed"
)

// OfflineMutation is a queued service call recorded while the client was
// disconnected. Replayed FIFO; successful entries are deleted, failed
// ones kept with the error for a later pass.
type OfflineMutation struct {
	gorm.Model
	Name      string    `json:"name" gorm:"not null"`
	Payload   string    `json:"payload" gorm:"type:text"`
	Status    string    `json:"status" gorm:"default:'pending';index"`
	LastError string    `json:"last_error"`
	QueuedAt  time.Time `json:"queued_at"`
	CreatedBy int
}
