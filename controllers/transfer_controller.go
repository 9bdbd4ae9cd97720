package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/models"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/repositories"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/services"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/types"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/utils"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type TransferController struct {
	DB *gorm.DB
}

func NewTransferController(DB *gorm.DB) *TransferController {
	return &TransferController{DB: DB}
}

var transferInput struct {
	FromCustodian string              `json:"from_custodian" validate:"required"`
	ToCustodian   string              `json:"to_custodian" validate:"required"`
	ToDesignation string              `json:"to_designation"`
	ToOffice      string              `json:"to_office"`
	TransferDate  string              `json:"transfer_date" validate:"required"`
	Reason        string              `json:"reason"`
	ApprovedBy    string              `json:"approved_by"`
	ItemIDs       []types.SnowflakeID `json:"item_ids" validate:"required,min=1"`
}

// CreateTransfer moves accountability of assigned items from one
// custodian to another. Every item must currently sit with the
// from-custodian; the whole batch is rejected otherwise.
func (c *TransferController) CreateTransfer(ctx *fiber.Ctx) error {

	if err := ctx.BodyParser(&transferInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(transferInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if _, err := time.Parse("2006-01-02", transferInput.TransferDate); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "transfer_date must be YYYY-MM-DD"})
	}

	// Validate the whole batch first.
	items := make([]models.InventoryItem, 0, len(transferInput.ItemIDs))
	for _, id := range transferInput.ItemIDs {
		var item models.InventoryItem
		if err := c.DB.First(&item, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": fmt.Sprintf("item %d not found", int64(id)),
				})
			}
			return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}
		if item.AssignmentStatus != models.AssignmentAssigned {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": fmt.Sprintf("%s is not assigned, issue it through a slip instead", item.PropertyNo),
			})
		}
		if item.Custodian != transferInput.FromCustodian {
			return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
				"error": fmt.Sprintf("%s is held by %s, not %s", item.PropertyNo, item.Custodian, transferInput.FromCustodian),
			})
		}
		items = append(items, item)
	}

	year := transferInput.TransferDate[:4]
	generator := services.NewSequenceGenerator(
		repositories.NewDocumentNumberSource(c.DB, &models.Transfer{}, "transfer_no"))
	transferNo, err := generator.NextNumber("PTR", year)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	userID := utils.UserIDFromLocals(ctx.Locals("userID"))
	now := time.Now()

	transfer := models.Transfer{
		TransferNo:    transferNo,
		FromCustodian: transferInput.FromCustodian,
		ToCustodian:   transferInput.ToCustodian,
		ToDesignation: transferInput.ToDesignation,
		ToOffice:      transferInput.ToOffice,
		TransferDate:  transferInput.TransferDate,
		Reason:        transferInput.Reason,
		ApprovedBy:    transferInput.ApprovedBy,
		Status:        models.TransferStatusCompleted,
		CreatedBy:     userID,
	}

	err = c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&transfer).Error; err != nil {
			return err
		}

		for _, item := range items {
			line := models.TransferItem{
				TransferID:  transfer.ID,
				ItemID:      item.ID,
				PropertyNo:  item.PropertyNo,
				Description: item.Description,
				Quantity:    item.Quantity,
				CreatedBy:   userID,
			}
			if err := tx.Create(&line).Error; err != nil {
				return err
			}

			updates := map[string]interface{}{
				"custodian":             transferInput.ToCustodian,
				"custodian_designation": transferInput.ToDesignation,
				"assigned_date":         &now,
				"updated_by":            userID,
			}
			if transferInput.ToOffice != "" {
				updates["office"] = transferInput.ToOffice
			}
			if err := tx.Model(&models.InventoryItem{}).
				Where("id = ?", item.ID).
				Updates(updates).Error; err != nil {
				return err
			}

			// Note the movement on the property card.
			var card models.PropertyCard
			if err := tx.Where("item_id = ?", item.ID).First(&card).Error; err != nil {
				return err
			}
			var last models.PropertyCardEntry
			balance := 0
			if err := tx.Where("card_id = ?", card.ID).
				Order("id DESC").First(&last).Error; err == nil {
				balance = last.BalanceQty
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			entry := models.PropertyCardEntry{
				CardID:       card.ID,
				EntryDate:    transferInput.TransferDate,
				Reference:    transferNo,
				IssueOfficer: transferInput.ApprovedBy,
				BalanceQty:   balance,
				TransferID:   transfer.ID,
				CreatedBy:    userID,
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	utils.InsertActivityLog(c.DB, models.ActivityLog{
		UserID:    userID,
		Action:    "CREATE_TRANSFER",
		Entity:    "transfer",
		EntityRef: transferNo,
		Detail: fmt.Sprintf("Transferred %d item(s) from %s to %s",
			len(items), transferInput.FromCustodian, transferInput.ToCustodian),
	})

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Transfer recorded",
		"data":    transfer,
	})
}

func (c *TransferController) GetAllTransfers(ctx *fiber.Ctx) error {
	var transfers []models.Transfer
	if err := c.DB.Order("created_at DESC").Find(&transfers).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "data": transfers})
}

func (c *TransferController) GetTransferDetail(ctx *fiber.Ctx) error {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid transfer id"})
	}

	var transfer models.Transfer
	if err := c.DB.First(&transfer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "transfer not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var lines []models.TransferItem
	if err := c.DB.Where("transfer_id = ?", id).Find(&lines).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"transfer": transfer, "items": lines},
	})
}
