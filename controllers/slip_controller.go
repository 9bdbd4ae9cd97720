package controllers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/models"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/repositories"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/services"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/utils"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type SlipController struct {
	DB       *gorm.DB
	issuance *services.IssuanceService
}

func NewSlipController(DB *gorm.DB) *SlipController {
	return &SlipController{
		DB:       DB,
		issuance: services.NewIssuanceService(repositories.NewIssuanceStore(DB)),
	}
}

// CreateSlips issues items to a custodian. Items of mixed value
// categories come back as one slip per category.
func (c *SlipController) CreateSlips(ctx *fiber.Ctx) error {
	var req services.IssuanceRequest

	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	req.UserID = utils.UserIDFromLocals(ctx.Locals("userID"))

	slips, err := c.issuance.CreateSlips(req)
	if err != nil {
		return ctx.Status(issuanceStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	slipNos := make([]string, 0, len(slips))
	for _, slip := range slips {
		slipNos = append(slipNos, slip.SlipNo)
	}
	utils.InsertActivityLog(c.DB, models.ActivityLog{
		UserID:    req.UserID,
		Action:    "CREATE_SLIP",
		Entity:    "custodian_slip",
		EntityRef: fmt.Sprintf("%v", slipNos),
		Detail:    fmt.Sprintf("Issued %d item(s) to %s", len(req.ItemIDs), req.Custodian),
	})

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("%d slip(s) created", len(slips)),
		"data":    slips,
	})
}

func (c *SlipController) GetAllSlips(ctx *fiber.Ctx) error {
	repo := repositories.NewSlipRepository(c.DB)

	custodian := ctx.Query("custodian", "")
	var (
		slips []repositories.ListSlip
		err   error
	)
	if custodian != "" {
		slips, err = repo.GetSlipsByCustodian(custodian)
	} else {
		slips, err = repo.GetAllSlips()
	}
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "data": slips})
}

func (c *SlipController) GetSlipDetail(ctx *fiber.Ctx) error {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid slip id"})
	}

	repo := repositories.NewSlipRepository(c.DB)
	detail, err := repo.GetSlipDetail(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "slip not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "data": detail})
}

var slipStatusInput struct {
	Status string `json:"status" validate:"required,oneof=draft issued completed cancelled"`
}

// UpdateSlipStatus moves a slip along draft -> issued -> completed.
// Completed slips are frozen, mirroring the signed paper form.
func (c *SlipController) UpdateSlipStatus(ctx *fiber.Ctx) error {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid slip id"})
	}

	if err := ctx.BodyParser(&slipStatusInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(slipStatusInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var slip models.CustodianSlip
	if err := c.DB.First(&slip, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "slip not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if slip.Status == models.SlipStatusCompleted {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "completed slip can no longer change"})
	}

	updates := map[string]interface{}{
		"status":     slipStatusInput.Status,
		"updated_by": utils.UserIDFromLocals(ctx.Locals("userID")),
	}
	if err := c.DB.Model(&slip).Updates(updates).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "Slip updated"})
}

// DeleteSlip cancels an issuance. Every item goes back to available and
// the card entries written for the slip disappear. Pass force=true to
// delete a completed slip.
func (c *SlipController) DeleteSlip(ctx *fiber.Ctx) error {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid slip id"})
	}

	force := ctx.QueryBool("force", false)

	if err := c.issuance.DeleteSlip(uint(id), force); err != nil {
		return ctx.Status(issuanceStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	utils.InsertActivityLog(c.DB, models.ActivityLog{
		UserID:    utils.UserIDFromLocals(ctx.Locals("userID")),
		Action:    "DELETE_SLIP",
		Entity:    "custodian_slip",
		EntityRef: strconv.FormatUint(id, 10),
	})

	return ctx.JSON(fiber.Map{"success": true, "message": "Slip deleted, items released"})
}

// issuanceStatus maps service errors to HTTP statuses. A compensated
// partial write reports the underlying cause's status.
func issuanceStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrItemNotFound),
		errors.Is(err, services.ErrSlipNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrAlreadyAssigned),
		errors.Is(err, services.ErrImmutableSlip):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrNotServiceable),
		errors.Is(err, services.ErrPropertyCardMissing):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}
