package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/reidocupim/internal/services"
)

// WheelHandler exposes the prize wheel endpoint.
type WheelHandler struct {
	wheel *services.WheelService
}

// NewWheelHandler constructs a WheelHandler.
func NewWheelHandler(wheel *services.WheelService) *WheelHandler {
	return &WheelHandler{wheel: wheel}
}

type spinRequest struct {
	Phone     string `json:"telefone"`
	StaffCode string `json:"senha_garcom"`
}

// Spin draws a prize for the customer.
func (h *WheelHandler) Spin(c *fiber.Ctx) error {
	var req spinRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.StaffCode == "" {
		return fiber.NewError(fiber.StatusBadRequest, "senha do garçom obrigatória")
	}

	result, err := h.wheel.Spin(c.Context(), req.Phone, req.StaffCode)
	if err != nil {
		return businessError(err)
	}

	return c.JSON(fiber.Map{
		"success":     true,
		"premio":      result.Prize,
		"faixa_usada": result.Bracket,
		"mensagem":    result.Message,
	})
}
