package controllers

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/config"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/controllers/idgen"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/models"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/repositories"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/services"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/types"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/utils"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

type InventoryController struct {
	DB *gorm.DB
}

func NewInventoryController(DB *gorm.DB) *InventoryController {
	return &InventoryController{DB: DB}
}

var itemInput struct {
	Description        string  `json:"description" validate:"required,min=3"`
	Brand              string  `json:"brand"`
	ModelNo            string  `json:"model_no"`
	SerialNo           string  `json:"serial_no"`
	Quantity           int     `json:"quantity"`
	Uom                string  `json:"uom"`
	UnitCost           float64 `json:"unit_cost" validate:"required,gt=0"`
	Category           string  `json:"category"`
	Office             string  `json:"office"`
	AcquisitionDate    string  `json:"acquisition_date" validate:"required"`
	EstimatedLifeYears int     `json:"estimated_life_years"`
	Remarks            string  `json:"remarks"`
}

// CreateItem records a newly acquired item: it mints the property
// number for the item's value category, opens the property card and
// writes the opening receipt entry, all in one transaction.
func (c *InventoryController) CreateItem(ctx *fiber.Ctx) error {

	if err := ctx.BodyParser(&itemInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(itemInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if _, err := time.Parse("2006-01-02", itemInput.AcquisitionDate); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "acquisition_date must be YYYY-MM-DD"})
	}

	quantity := itemInput.Quantity
	if quantity < 1 {
		quantity = 1
	}

	valueCategory := models.ValueCategoryFor(itemInput.UnitCost)

	year := itemInput.AcquisitionDate[:4]
	generator := services.NewSequenceGenerator(repositories.NewPropertyNumberSource(c.DB))
	propertyNo, err := generator.NextNumber(models.PropertyNoPrefix(valueCategory), year)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	lifeYears := itemInput.EstimatedLifeYears
	if lifeYears <= 0 {
		lifeYears = services.EstimateUsefulLife(itemInput.Description, itemInput.UnitCost).Years
	}

	userID := utils.UserIDFromLocals(ctx.Locals("userID"))

	item := models.InventoryItem{
		ID:                 types.SnowflakeID(idgen.GenerateID()),
		PropertyNo:         propertyNo,
		Description:        itemInput.Description,
		Brand:              itemInput.Brand,
		ModelNo:            itemInput.ModelNo,
		SerialNo:           itemInput.SerialNo,
		Quantity:           quantity,
		Uom:                itemInput.Uom,
		UnitCost:           itemInput.UnitCost,
		TotalCost:          itemInput.UnitCost * float64(quantity),
		Category:           itemInput.Category,
		ValueCategory:      valueCategory,
		Condition:          models.ConditionServiceable,
		Status:             models.StatusActive,
		AssignmentStatus:   models.AssignmentAvailable,
		Office:             itemInput.Office,
		AcquisitionDate:    itemInput.AcquisitionDate,
		EstimatedLifeYears: lifeYears,
		Remarks:            itemInput.Remarks,
		CreatedBy:          userID,
	}

	err = c.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&item).Error; err != nil {
			return err
		}

		card := models.PropertyCard{
			ItemID:          item.ID,
			EntityName:      config.EntityName,
			FundCluster:     config.FundCluster,
			PropertyNo:      item.PropertyNo,
			Description:     item.Description,
			AcquisitionDate: item.AcquisitionDate,
			CreatedBy:       userID,
		}
		if err := tx.Create(&card).Error; err != nil {
			return err
		}

		opening := models.PropertyCardEntry{
			CardID:           card.ID,
			EntryDate:        item.AcquisitionDate,
			Reference:        "Acquisition",
			ReceiptQty:       quantity,
			ReceiptUnitCost:  item.UnitCost,
			ReceiptTotalCost: item.TotalCost,
			BalanceQty:       quantity,
			Amount:           item.TotalCost,
			CreatedBy:        userID,
		}
		return tx.Create(&opening).Error
	})

	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	utils.InsertActivityLog(c.DB, models.ActivityLog{
		UserID:    userID,
		Action:    "CREATE_ITEM",
		Entity:    "inventory_item",
		EntityRef: item.PropertyNo,
		Detail:    fmt.Sprintf("Registered %s (%s)", item.Description, item.ValueCategory),
	})

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Item registered",
		"data":    item,
	})
}

func (c *InventoryController) GetAllItems(ctx *fiber.Ctx) error {
	search := ctx.Query("search", "")
	page := ctx.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := ctx.QueryInt("limit", 50)
	if limit < 1 || limit > 500 {
		limit = 50
	}

	repo := repositories.NewInventoryRepository(c.DB)
	items, total, err := repo.GetAllItems(search, (page-1)*limit, limit)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{
		"success": true,
		"data":    items,
		"total":   total,
		"page":    page,
	})
}

func (c *InventoryController) GetItemByID(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid item id"})
	}

	var item models.InventoryItem
	if err := c.DB.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "item not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "data": item})
}

var itemUpdateInput struct {
	Description string  `json:"description"`
	Brand       string  `json:"brand"`
	ModelNo     string  `json:"model_no"`
	SerialNo    string  `json:"serial_no"`
	Category    string  `json:"category"`
	Office      string  `json:"office"`
	Condition   string  `json:"condition"`
	Remarks     string  `json:"remarks"`
	UnitCost    float64 `json:"unit_cost"`
}

// UpdateItem edits descriptive fields. Property number, value category
// and assignment state are never editable here; assignment moves only
// through slips, transfers and loss reports.
func (c *InventoryController) UpdateItem(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid item id"})
	}

	if err := ctx.BodyParser(&itemUpdateInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var item models.InventoryItem
	if err := c.DB.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "item not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	updates := map[string]interface{}{
		"updated_by": utils.UserIDFromLocals(ctx.Locals("userID")),
	}
	if itemUpdateInput.Description != "" {
		updates["description"] = itemUpdateInput.Description
	}
	if itemUpdateInput.Brand != "" {
		updates["brand"] = itemUpdateInput.Brand
	}
	if itemUpdateInput.ModelNo != "" {
		updates["model_no"] = itemUpdateInput.ModelNo
	}
	if itemUpdateInput.SerialNo != "" {
		updates["serial_no"] = itemUpdateInput.SerialNo
	}
	if itemUpdateInput.Category != "" {
		updates["category"] = itemUpdateInput.Category
	}
	if itemUpdateInput.Office != "" {
		updates["office"] = itemUpdateInput.Office
	}
	if itemUpdateInput.Condition != "" {
		updates["item_condition"] = itemUpdateInput.Condition
	}
	if itemUpdateInput.Remarks != "" {
		updates["remarks"] = itemUpdateInput.Remarks
	}
	if itemUpdateInput.UnitCost > 0 {
		// Cost corrections do not reclassify the item; the category was
		// fixed when the property number was minted.
		updates["unit_cost"] = itemUpdateInput.UnitCost
		updates["total_cost"] = itemUpdateInput.UnitCost * float64(item.Quantity)
	}

	if err := c.DB.Model(&item).Updates(updates).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "Item updated"})
}

func (c *InventoryController) DeleteItem(ctx *fiber.Ctx) error {
	id, err := strconv.ParseInt(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid item id"})
	}

	var item models.InventoryItem
	if err := c.DB.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "item not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if item.AssignmentStatus == models.AssignmentAssigned {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "item is assigned to a custodian, delete the slip first",
		})
	}

	userID := utils.UserIDFromLocals(ctx.Locals("userID"))
	if err := c.DB.Model(&item).Update("deleted_by", userID).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if err := c.DB.Delete(&item).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	utils.InsertActivityLog(c.DB, models.ActivityLog{
		UserID:    userID,
		Action:    "DELETE_ITEM",
		Entity:    "inventory_item",
		EntityRef: item.PropertyNo,
	})

	return ctx.JSON(fiber.Map{"success": true, "message": "Item deleted"})
}

// GetDashboard returns the headline counts for the landing page.
func (c *InventoryController) GetDashboard(ctx *fiber.Ctx) error {
	repo := repositories.NewInventoryRepository(c.DB)
	summary, err := repo.GetDashboardSummary()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "data": summary})
}

var estimateInput struct {
	Description string  `json:"description" validate:"required"`
	UnitCost    float64 `json:"unit_cost"`
}

// EstimateLife previews the useful-life estimate for a description and
// cost without saving anything. The intake form calls this as the user
// types.
func (c *InventoryController) EstimateLife(ctx *fiber.Ctx) error {
	if err := ctx.BodyParser(&estimateInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(estimateInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	estimate := services.EstimateUsefulLife(estimateInput.Description, estimateInput.UnitCost)
	return ctx.JSON(fiber.Map{"success": true, "data": estimate})
}

// ExportItems streams the full inventory register as an xlsx workbook.
func (c *InventoryController) ExportItems(ctx *fiber.Ctx) error {
	repo := repositories.NewInventoryRepository(c.DB)
	items, _, err := repo.GetAllItems(ctx.Query("search", ""), 0, 100000)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	f := excelize.NewFile()
	sheet := "Inventory"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{
		"Property No", "Description", "Brand", "Model", "Serial No",
		"Qty", "UOM", "Unit Cost", "Total Cost", "Value Category",
		"Condition", "Status", "Custodian", "Office", "Slip No",
		"Acquisition Date", "Est. Life (years)",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, h)
	}

	for row, item := range items {
		values := []interface{}{
			item.PropertyNo, item.Description, item.Brand, item.ModelNo,
			item.SerialNo, item.Quantity, item.Uom, item.UnitCost,
			item.TotalCost, item.ValueCategory, item.Condition,
			item.Status, item.Custodian, item.Office, item.SlipNo,
			item.AcquisitionDate, item.EstimatedLifeYears,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(sheet, cell, v)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	filename := fmt.Sprintf("inventory_%s.xlsx", time.Now().Format("20060102_150405"))
	ctx.Set("Content-Disposition", "attachment; filename="+filename)
	ctx.Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return ctx.Send(buf.Bytes())
}
