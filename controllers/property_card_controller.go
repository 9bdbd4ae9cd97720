package controllers

import (
	"errors"
	"strconv"

	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/repositories"
	"github.com/AzzmaincantCODE/semi-property-guardian-sub001/types"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type PropertyCardController struct {
	DB *gorm.DB
}

func NewPropertyCardController(DB *gorm.DB) *PropertyCardController {
	return &PropertyCardController{DB: DB}
}

func (c *PropertyCardController) GetAllCards(ctx *fiber.Ctx) error {
	repo := repositories.NewPropertyCardRepository(c.DB)
	cards, err := repo.GetAllCards()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "data": cards})
}

// GetCardByItem returns the full ledger of one item: the card header,
// every entry in order and the current balance.
func (c *PropertyCardController) GetCardByItem(ctx *fiber.Ctx) error {
	itemID, err := strconv.ParseInt(ctx.Params("itemId"), 10, 64)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid item id"})
	}

	repo := repositories.NewPropertyCardRepository(c.DB)
	card, err := repo.GetCardByItemID(types.SnowflakeID(itemID))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "property card not found"})
		}
		return ctx.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return ctx.JSON(fiber.Map{"success": true, "data": card})
}
