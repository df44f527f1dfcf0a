package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/example/reidocupim/internal/services"
	"github.com/example/reidocupim/internal/utils"
)

// CustomerHandler bundles signup, lookup and PIN reset endpoints.
type CustomerHandler struct {
	customer *services.CustomerService
}

// NewCustomerHandler constructs a CustomerHandler.
func NewCustomerHandler(customer *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customer: customer}
}

type signupRequest struct {
	Name      string `json:"nome"`
	Phone     string `json:"telefone"`
	BirthDate string `json:"data_nascimento"`
	PIN       string `json:"pin"`
}

// Signup creates a loyalty account.
func (h *CustomerHandler) Signup(c *fiber.Ctx) error {
	var req signupRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if len(req.Name) < 3 {
		return fiber.NewError(fiber.StatusBadRequest, "nome precisa ter pelo menos 3 letras")
	}
	phone := utils.NormalizePhone(req.Phone)
	if len(phone) != utils.PhoneLength {
		return fiber.NewError(fiber.StatusBadRequest, "telefone precisa ter 11 dígitos (DDD + número)")
	}
	if !utils.ValidPIN(req.PIN) {
		return fiber.NewError(fiber.StatusBadRequest, "PIN precisa ter exatamente 4 dígitos numéricos")
	}

	var birthDate *time.Time
	if req.BirthDate != "" {
		parsed, err := time.Parse("2006-01-02", req.BirthDate)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "data de nascimento inválida, use AAAA-MM-DD")
		}
		birthDate = &parsed
	}

	result, err := h.customer.Signup(c.Context(), services.SignupInput{
		Name:      req.Name,
		Phone:     phone,
		PIN:       req.PIN,
		BirthDate: birthDate,
	})
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":      true,
		"telefone":     result.Phone,
		"bonus_pontos": result.BonusPoints,
	})
}

// Lookup returns the balance snapshot for ?telefone=.
func (h *CustomerHandler) Lookup(c *fiber.Ctx) error {
	phone := utils.NormalizePhone(c.Query("telefone"))
	if phone == "" {
		return fiber.NewError(fiber.StatusBadRequest, "parâmetro telefone é obrigatório")
	}
	if len(phone) < 10 {
		return fiber.NewError(fiber.StatusBadRequest, "telefone deve ter pelo menos 10 dígitos")
	}

	view, err := h.customer.Lookup(c.Context(), phone)
	if err != nil {
		return businessError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": view})
}

type resetPINRequest struct {
	Phone     string `json:"telefone"`
	BirthDate string `json:"data_nascimento"`
	NewPIN    string `json:"novo_pin"`
}

// ResetPIN sets a new PIN using the birth date as a second factor.
func (h *CustomerHandler) ResetPIN(c *fiber.Ctx) error {
	var req resetPINRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	phone := utils.NormalizePhone(req.Phone)
	if len(phone) != utils.PhoneLength {
		return fiber.NewError(fiber.StatusBadRequest, "telefone inválido")
	}
	if req.BirthDate == "" {
		return fiber.NewError(fiber.StatusBadRequest, "data de nascimento obrigatória")
	}
	if !utils.ValidPIN(req.NewPIN) {
		return fiber.NewError(fiber.StatusBadRequest, "novo PIN precisa ter exatamente 4 dígitos numéricos")
	}

	if err := h.customer.ResetPIN(c.Context(), phone, req.BirthDate, req.NewPIN); err != nil {
		return businessError(err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "PIN redefinido com sucesso"})
}
