package handlers

import (
	"fmt"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/reidocupim/internal/services"
)

// WebhookHandler receives purchase events from the POS.
type WebhookHandler struct {
	accrual *services.AccrualService
}

// NewWebhookHandler constructs a WebhookHandler.
func NewWebhookHandler(accrual *services.AccrualService) *WebhookHandler {
	return &WebhookHandler{accrual: accrual}
}

// posWebhookRequest tolerates the two field spellings the POS has been
// observed to send.
type posWebhookRequest struct {
	CustomerPhone string  `json:"customer_phone"`
	Telefone      string  `json:"telefone"`
	CustomerName  string  `json:"customer_name"`
	OrderTotal    float64 `json:"order_total"`
	ValorTotal    float64 `json:"valor_total"`
	OrderID       string  `json:"order_id"`
	IDPedido      string  `json:"id_pedido"`
	Source        string  `json:"source"`
	Origem        string  `json:"origem"`
}

// Purchase handles one POS purchase event.
func (h *WebhookHandler) Purchase(c *fiber.Ctx) error {
	var req posWebhookRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	phone := firstNonEmpty(req.CustomerPhone, req.Telefone)
	amount := req.OrderTotal
	if amount == 0 {
		amount = req.ValorTotal
	}
	orderID := firstNonEmpty(req.OrderID, req.IDPedido)
	source := strings.ToUpper(firstNonEmpty(req.Source, req.Origem, "POS"))

	if orderID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "order_id obrigatório")
	}

	result, err := h.accrual.Accrue(c.Context(), services.AccrualInput{
		Phone:        phone,
		CustomerName: req.CustomerName,
		Amount:       amount,
		ExternalID:   orderID,
		Source:       source,
	})
	if err != nil {
		log.Printf("[Webhook] accrual failed for order %s: %v", orderID, err)
		return err
	}

	if result.Skipped {
		return c.JSON(fiber.Map{"ok": true, "message": "pedido ignorado: " + result.SkipReason})
	}
	if result.Duplicate {
		return c.JSON(fiber.Map{"ok": true, "message": "pedido já processado"})
	}

	return c.JSON(fiber.Map{
		"ok":      true,
		"message": fmt.Sprintf("processado com sucesso para %s", result.Phone),
		"ganhos": fiber.Map{
			"pontos":   result.Earned.Points,
			"cashback": result.Earned.Cashback,
			"tickets":  result.Earned.Tickets,
			"novo_xp":  result.QualifyingSpend,
		},
		"nivel":        result.NewTier,
		"subiu_nivel":  result.TierChanged,
		"nivel_antigo": result.PreviousTier,
	})
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
