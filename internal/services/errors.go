package services

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Business-rule errors surfaced by the loyalty services. Handlers map
// these onto HTTP statuses; anything else is an internal error.
var (
	ErrCustomerNotFound  = errors.New("cliente não encontrado")
	ErrInvalidPIN        = errors.New("pin incorreto")
	ErrBirthDateMismatch = errors.New("data de nascimento incorreta")
	ErrDailyLimit        = errors.New("limite de um resgate por dia atingido")
	ErrCouponNotFound    = errors.New("cupom inválido ou não encontrado")
	ErrProductNotFound   = errors.New("produto de resgate não encontrado")
	ErrUnknownRewardType = errors.New("tipo de resgate desconhecido")
	ErrWheelMisconfig    = errors.New("roleta sem prêmios ativos")
	ErrInvalidStaffCode  = errors.New("senha do garçom incorreta")
)

// InsufficientBalanceError reports how far short the spendable balance
// fell, so the customer sees the exact gap.
type InsufficientBalanceError struct {
	Kind      string
	Needed    float64
	Available float64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("%s insuficiente: necessário %.2f, disponível %.2f",
		e.Kind, e.Needed, e.Available)
}

// Shortfall is the missing amount.
func (e *InsufficientBalanceError) Shortfall() float64 {
	return e.Needed - e.Available
}

// CouponUsedError carries the prior usage timestamp of a spent coupon.
type CouponUsedError struct {
	UsedAt string
}

func (e *CouponUsedError) Error() string {
	return "cupom já foi utilizado em " + e.UsedAt
}

func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "23505") || strings.Contains(msg, "duplicate key")
}
