package services

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/models"

	"gorm.io/gorm"
)

// Mutation names the offline queue may carry.
const (
	MutationCreateSlip = "createCustodianSlip"
	MutationDeleteSlip = "deleteCustodianSlip"
)

type deleteSlipPayload struct {
	SlipID uint `json:"slip_id"`
	Force  bool `json:"force"`
}

// ReplayResult summarizes one pass over the queue.
type ReplayResult struct {
	Processed int
	Succeeded int
	Failed    []models.OfflineMutation
}

// ReplayService drains the offline mutation queue in FIFO order against
// the issuance service. Succeeded entries are deleted; failed ones stay
// with the error recorded for a later pass. Replay is not idempotent:
// re-running an already-applied issuance fails validation with
// ErrAlreadyAssigned, which is a terminal failure for that entry.
type ReplayService struct {
	db       *gorm.DB
	issuance *IssuanceService
}

func NewReplayService(db *gorm.DB, issuance *IssuanceService) *ReplayService {
	return &ReplayService{db: db, issuance: issuance}
}

func (s *ReplayService) Replay() (ReplayResult, error) {
	var queued []models.OfflineMutation
	if err := s.db.Order("id ASC").Find(&queued).Error; err != nil {
		return ReplayResult{}, err
	}

	result := ReplayResult{}
	for _, mutation := range queued {
		result.Processed++

		if err := s.apply(mutation); err != nil {
			log.Printf("replay: mutation %d (%s) failed: %v", mutation.ID, mutation.Name, err)
			mutation.Status = models.MutationStatusFailed
			mutation.LastError = err.Error()
			if saveErr := s.db.Save(&mutation).Error; saveErr != nil {
				log.Printf("replay: failed to mark mutation %d: %v", mutation.ID, saveErr)
			}
			result.Failed = append(result.Failed, mutation)
			continue
		}

		if err := s.db.Unscoped().Delete(&models.OfflineMutation{}, mutation.ID).Error; err != nil {
			log.Printf("replay: failed to remove mutation %d: %v", mutation.ID, err)
		}
		result.Succeeded++
	}

	return result, nil
}

func (s *ReplayService) apply(mutation models.OfflineMutation) error {
	switch mutation.Name {
	case MutationCreateSlip:
		var req IssuanceRequest
		if err := json.Unmarshal([]byte(mutation.Payload), &req); err != nil {
			return fmt.Errorf("invalid payload: %w", err)
		}
		_, err := s.issuance.CreateSlips(req)
		return err
	case MutationDeleteSlip:
		var payload deleteSlipPayload
		if err := json.Unmarshal([]byte(mutation.Payload), &payload); err != nil {
			return fmt.Errorf("invalid payload: %w", err)
		}
		return s.issuance.DeleteSlip(payload.SlipID, payload.Force)
	default:
		return fmt.Errorf("unknown mutation: %s", mutation.Name)
	}
}
