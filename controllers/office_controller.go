package controllers

import (
	"errors"
	"strconv"

	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/models"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/utils"

	"github.com/go-playground/validator"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type OfficeController struct {
	DB *gorm.DB
}

func NewOfficeController(DB *gorm.DB) *OfficeController {
	return &OfficeController{DB: DB}
}

var officeInput struct {
	Code string `json:"code" validate:"required,min=2"`
	Name string `json:"name" validate:"required,min=3"`
	Head string `json:"head"`
}

func (c *OfficeController) CreateOffice(ctx *fiber.Ctx) error {

	if err := ctx.BodyParser(&officeInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	validate := validator.New()
	if err := validate.Struct(officeInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	existing := models.Office{}
	c.DB.Where("code = ?", officeInput.Code).First(&existing)
	if existing.ID != 0 {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "office code already exists"})
	}

	office := models.Office{
		Code:      officeInput.Code,
		Name:      officeInput.Name,
		Head:      officeInput.Head,
		CreatedBy: utils.UserIDFromLocals(ctx.Locals("userID")),
	}
	if err := c.DB.Create(&office).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": "Office created",
		"data":    office,
	})
}

func (c *OfficeController) GetAllOffices(ctx *fiber.Ctx) error {
	var offices []models.Office
	if err := c.DB.Order("code ASC").Find(&offices).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "data": offices})
}

func (c *OfficeController) UpdateOffice(ctx *fiber.Ctx) error {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid office id"})
	}

	if err := ctx.BodyParser(&officeInput); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var office models.Office
	if err := c.DB.First(&office, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "office not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	updates := map[string]interface{}{
		"updated_by": utils.UserIDFromLocals(ctx.Locals("userID")),
	}
	if officeInput.Name != "" {
		updates["name"] = officeInput.Name
	}
	if officeInput.Head != "" {
		updates["head"] = officeInput.Head
	}

	if err := c.DB.Model(&office).Updates(updates).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "Office updated"})
}

func (c *OfficeController) DeleteOffice(ctx *fiber.Ctx) error {
	id, err := strconv.ParseUint(ctx.Params("id"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid office id"})
	}

	var office models.Office
	if err := c.DB.First(&office, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "office not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	var inUse int64
	if err := c.DB.Model(&models.InventoryItem{}).
		Where("office = ?", office.Name).
		Count(&inUse).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	if inUse > 0 {
		return ctx.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "office still has items on record",
		})
	}

	userID := utils.UserIDFromLocals(ctx.Locals("userID"))
	c.DB.Model(&office).Update("deleted_by", userID)
	if err := c.DB.Delete(&office).Error; err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "message": "Office deleted"})
}
