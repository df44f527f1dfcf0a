package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/reidocupim/internal/models"
	"github.com/example/reidocupim/internal/services"
	"github.com/example/reidocupim/internal/utils"
)

// RedemptionHandler exposes the redemption and coupon endpoints.
type RedemptionHandler struct {
	redemption *services.RedemptionService
}

// NewRedemptionHandler constructs a RedemptionHandler.
func NewRedemptionHandler(redemption *services.RedemptionService) *RedemptionHandler {
	return &RedemptionHandler{redemption: redemption}
}

type redeemRequest struct {
	Phone     string  `json:"telefone"`
	PIN       string  `json:"pin"`
	Type      string  `json:"tipo"`
	Value     float64 `json:"valor"`
	ProductID string  `json:"produto_id"`
}

// Redeem debits a balance and issues a single-use coupon.
func (h *RedemptionHandler) Redeem(c *fiber.Ctx) error {
	var req redeemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Phone == "" || req.Type == "" {
		return fiber.NewError(fiber.StatusBadRequest, "telefone e tipo são obrigatórios")
	}
	if !utils.ValidPIN(req.PIN) {
		return fiber.NewError(fiber.StatusBadRequest, "PIN precisa ter exatamente 4 dígitos numéricos")
	}

	switch req.Type {
	case models.RewardPointsDiscount, models.RewardCashbackDebit:
		if req.Value <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "valor de desconto obrigatório")
		}
	case models.RewardProductItem:
		if req.ProductID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "produto_id obrigatório")
		}
	case models.RewardFreeShipping:
		// Fixed cost, no extra fields.
	default:
		return fiber.NewError(fiber.StatusBadRequest, "tipo de resgate desconhecido")
	}

	result, err := h.redemption.Redeem(c.Context(), services.RedeemInput{
		Phone:      req.Phone,
		PIN:        req.PIN,
		RewardType: req.Type,
		Value:      req.Value,
		ProductID:  req.ProductID,
	})
	if err != nil {
		return businessError(err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":    true,
		"codigo":     result.Code,
		"atualizado": result.Balance,
	})
}

// validateRequest carries the QR payload posted by the cashier camera
// client: the cupom and telefone query parameters of the scanned URL.
type validateRequest struct {
	Coupon string `json:"cupom"`
	Phone  string `json:"telefone"`
	Action string `json:"acao"`
}

// Validate inspects or consumes a coupon depending on acao.
func (h *RedemptionHandler) Validate(c *fiber.Ctx) error {
	var req validateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Coupon == "" || req.Phone == "" {
		return fiber.NewError(fiber.StatusBadRequest, "código do cupom e telefone obrigatórios")
	}

	var (
		info *services.CouponInfo
		err  error
	)
	switch req.Action {
	case "", "consultar":
		info, err = h.redemption.Inspect(c.Context(), req.Coupon, req.Phone)
	case "baixar":
		info, err = h.redemption.Consume(c.Context(), req.Coupon, req.Phone)
	default:
		return fiber.NewError(fiber.StatusBadRequest, "ação desconhecida")
	}
	if err != nil {
		return businessError(err)
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"valido":   true,
		"baixado":  req.Action == "baixar",
		"cupom":    info,
		"mensagem": info.Description,
	})
}
