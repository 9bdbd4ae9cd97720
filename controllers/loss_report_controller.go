package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/models"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/repositories"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/services"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/utils"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LossReportController struct {
	DB *gorm.DB
}

func NewLossReportController(DB *gorm.DB) *LossReportController {
	return &LossReportController{DB: DB}
}

var lossInput struct {
	ItemID        int64  `json:"item_id" validate:"required"`
	LossType      string `json:"loss_type" validate:"required,oneof=lost stolen damaged destroyed"`
	DateOfLoss    string `json:"date_of_loss" validate:"required"`
	Circumstances string `json:"circumstances"`
	ReportedBy    string `json:"reported_by" validate:"required"`
}

// CreateLossReport files the loss document and downgrades the item's
// condition in one transaction. Lost and stolen items also move to the
// missing status; the custodian stays on record pending relief.
func (c *LossReportController) CreateLossReport(ctx *fiber.Ctx) error {

	if err := ctx.BodyParser(&lossInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(lossInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if _, err := time.Parse("2006-01-02", lossInput.DateOfLoss); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "date_of_loss must be YYYY-MM-DD"})
	}

	var item models.InventoryItem
	if err := c.DB.First(&item, "id = ?", lossInput.ItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "item not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var open int64
	if err := c.DB.Model(&models.LossReport{}).
		Where("item_id = ? AND status != ?", item.ID, models.LossReportStatusClosed).
		Count(&open).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if open > 0 {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": fmt.Sprintf("%s already has an open loss report", item.PropertyNo),
		})
	}

	year := lossInput.DateOfLoss[:4]
	generator := services.NewSequenceGenerator(
		repositories.NewDocumentNumberSource(c.DB, &models.LossReport{}, "report_no"))
	reportNo, err := generator.NextNumber("RLSSP", year)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	userID := utils.UserIDFromLocals(ctx.Locals("userID"))

	report := models.LossReport{
		ReportNo:      reportNo,
		ItemID:        item.ID,
		PropertyNo:    item.PropertyNo,
		LossType:      lossInput.LossType,
		DateOfLoss:    lossInput.DateOfLoss,
		Circumstances: lossInput.Circumstances,
		ReportedBy:    lossInput.ReportedBy,
		Status:        models.LossReportStatusFiled,
		CreatedBy:     userID,
	}

	err = c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&report).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"item_condition": lossInput.LossType,
			"updated_by":     userID,
		}
		if lossInput.LossType == models.ConditionLost || lossInput.LossType == models.ConditionStolen {
			updates["status"] = models.StatusMissing
		}
		return tx.Model(&models.InventoryItem{}).
			Where("id = ?", item.ID).
			Updates(updates).Error
	})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	utils.InsertActivityLog(c.DB, models.ActivityLog{
		UserID:    userID,
		Action:    "FILE_LOSS_REPORT",
		Entity:    "loss_report",
		EntityRef: reportNo,
		Detail:    fmt.Sprintf("%s reported %s", item.PropertyNo, lossInput.LossType),
	})

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Loss report filed",
		"data":    report,
	})
}

func (c *LossReportController) GetAllLossReports(ctx *fiber.Ctx) error {
	var reports []models.LossReport
	if err := c.DB.Order("created_at DESC").Find(&reports).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "data": reports})
}

var lossStatusInput struct {
	Status string `json:"status" validate:"required,oneof=filed reviewed closed"`
}

func (c *LossReportController) UpdateLossReportStatus(ctx *fiber.Ctx) error {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid report id"})
	}

	if err := ctx.BodyParser(&lossStatusInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(lossStatusInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result := c.DB.Model(&models.LossReport{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     lossStatusInput.Status,
			"updated_by": utils.UserIDFromLocals(ctx.Locals("userID")),
		})
	if result.Error != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": result.Error.Error()})
	}
	if result.RowsAffected == 0 {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "loss report not found"})
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "Loss report updated"})
}
