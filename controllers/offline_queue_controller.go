package controllers

import (
	"encoding/json"
	"time"

	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/models"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/repositories"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/services"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/utils"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OfflineQueueController struct {
	DB     *gorm.DB
	replay *services.ReplayService
}

func NewOfflineQueueController(DB *gorm.DB) *OfflineQueueController {
	issuance := services.NewIssuanceService(repositories.NewIssuanceStore(DB))
	return &OfflineQueueController{
		DB:     DB,
		replay: services.NewReplayService(DB, issuance),
	}
}

var enqueueInput struct {
	Name     string          `json:"name" validate:"required,oneof=createCustodianSlip deleteCustodianSlip"`
	Payload  json.RawMessage `json:"payload" validate:"required"`
	QueuedAt *time.Time      `json:"queued_at"`
}

// Enqueue accepts a mutation a client recorded while offline. Nothing is
// applied here; the queue is drained by Replay or by the processor.
func (c *OfflineQueueController) Enqueue(ctx *fiber.Ctx) error {

	if err := ctx.BodyParser(&enqueueInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(enqueueInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	queuedAt := time.Now()
	if enqueueInput.QueuedAt != nil {
		queuedAt = *enqueueInput.QueuedAt
	}

	mutation := models.OfflineMutation{
		Name:      enqueueInput.Name,
		Payload:   string(enqueueInput.Payload),
		Status:    models.MutationStatusPending,
		QueuedAt:  queuedAt,
		CreatedBy: utils.UserIDFromLocals(ctx.Locals("userID")),
	}
	if err := c.DB.Create(&mutation).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Mutation queued",
		"data":    mutation,
	})
}

func (c *OfflineQueueController) GetQueue(ctx *fiber.Ctx) error {
	var queued []models.OfflineMutation
	if err := c.DB.Order("id ASC").Find(&queued).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "data": queued})
}

// Replay drains the queue now, in queued order, and reports the split.
func (c *OfflineQueueController) Replay(ctx *fiber.Ctx) error {
	result, err := c.replay.Replay()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"success":   true,
		"processed": result.Processed,
		"succeeded": result.Succeeded,
		"failed":    len(result.Failed),
	})
}
