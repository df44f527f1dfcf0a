package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/reidocupim/internal/loyalty"
	"github.com/example/reidocupim/internal/models"
	"github.com/example/reidocupim/internal/utils"
)

// CatalogHandler manages the reward catalog and wheel prize resources.
type CatalogHandler struct {
	db *gorm.DB
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

// ListRewards returns active catalog products. When ?telefone= is
// given, each product carries the price for that customer's tier.
func (h *CatalogHandler) ListRewards(c *fiber.Ctx) error {
	var products []models.RewardProduct
	if err := h.db.Where("active = ?", true).Order("name asc").
		Find(&products).Error; err != nil {
		return err
	}

	phone := utils.NormalizePhone(c.Query("telefone"))
	if phone == "" {
		return c.JSON(fiber.Map{"success": true, "data": products})
	}

	var points models.PointsBalance
	tier := loyalty.Lowest()
	if err := h.db.Where("phone = ?", phone).First(&points).Error; err == nil {
		tier = loyalty.TierFor(points.QualifyingSpend)
	}

	type pricedProduct struct {
		models.RewardProduct
		PriceForTier int64 `json:"price_for_tier"`
	}
	priced := make([]pricedProduct, 0, len(products))
	for _, p := range products {
		priced = append(priced, pricedProduct{
			RewardProduct: p,
			PriceForTier: loyalty.ProductPrice(tier,
				p.PriceBronze, p.PricePrata, p.PriceOuro, p.PriceRei),
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": priced, "nivel": tier.Label})
}

// CreateReward persists a new catalog product.
func (h *CatalogHandler) CreateReward(c *fiber.Ctx) error {
	var payload models.RewardProduct
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if payload.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "name is required")
	}

	if err := h.db.Create(&payload).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payload})
}

// UpdateReward updates an existing catalog product.
func (h *CatalogHandler) UpdateReward(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var product models.RewardProduct
	if err := h.db.First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "reward product not found")
		}
		return err
	}

	var payload models.RewardProduct
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	payload.ID = product.ID
	payload.CreatedAt = product.CreatedAt
	if err := h.db.Save(&payload).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": payload})
}

// DeleteReward removes a catalog product.
func (h *CatalogHandler) DeleteReward(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.RewardProduct{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "reward product deleted"})
}

// ListWheelPrizes returns all wheel prizes, active or not.
func (h *CatalogHandler) ListWheelPrizes(c *fiber.Ctx) error {
	var prizes []models.WheelPrize
	if err := h.db.Order("created_at asc").Find(&prizes).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": prizes})
}

// CreateWheelPrize persists a new wheel prize.
func (h *CatalogHandler) CreateWheelPrize(c *fiber.Ctx) error {
	var payload models.WheelPrize
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if payload.Label == "" || payload.Type == "" {
		return fiber.NewError(fiber.StatusBadRequest, "label and type are required")
	}

	if err := h.db.Create(&payload).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": payload})
}

// UpdateWheelPrize updates an existing wheel prize.
func (h *CatalogHandler) UpdateWheelPrize(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var prize models.WheelPrize
	if err := h.db.First(&prize, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "wheel prize not found")
		}
		return err
	}

	var payload models.WheelPrize
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	payload.ID = prize.ID
	payload.CreatedAt = prize.CreatedAt
	if err := h.db.Save(&payload).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "data": payload})
}

// DeleteWheelPrize removes a wheel prize.
func (h *CatalogHandler) DeleteWheelPrize(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.WheelPrize{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"success": true, "message": "wheel prize deleted"})
}

// ListRedemptions returns paginated coupons for the admin panel.
func (h *CatalogHandler) ListRedemptions(c *fiber.Ctx) error {
	pg := utils.ParsePagination(c)
	query := h.db.Model(&models.Redemption{})

	if phone := utils.NormalizePhone(c.Query("telefone")); phone != "" {
		query = query.Where("phone = ?", phone)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return err
	}

	var items []models.Redemption
	if err := query.Order("created_at desc").
		Limit(pg.Limit).Offset(pg.Offset).
		Find(&items).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    items,
		"pagination": fiber.Map{
			"current_page":   pg.Page,
			"items_per_page": pg.Limit,
			"total_items":    total,
		},
	})
}
