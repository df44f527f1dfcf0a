package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/example/reidocupim/internal/services"
)

// businessError maps service-level errors onto HTTP statuses. Unknown
// errors pass through and become 500s in the fiber error handler.
func businessError(err error) error {
	var insufficient *services.InsufficientBalanceError
	if errors.As(err, &insufficient) {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("%s (faltam %.2f)", insufficient.Error(), insufficient.Shortfall()))
	}

	var used *services.CouponUsedError
	if errors.As(err, &used) {
		return fiber.NewError(fiber.StatusConflict, used.Error())
	}

	switch {
	case errors.Is(err, services.ErrCustomerNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrCouponNotFound),
		errors.Is(err, services.ErrProductNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrInvalidPIN),
		errors.Is(err, services.ErrInvalidStaffCode):
		return fiber.NewError(fiber.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrDailyLimit):
		return fiber.NewError(fiber.StatusTooManyRequests, err.Error())
	case errors.Is(err, services.ErrBirthDateMismatch),
		errors.Is(err, services.ErrUnknownRewardType):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	default:
		return err
	}
}
