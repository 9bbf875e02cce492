// Package apperrors defines the error taxonomy shared by services and
// handlers. Services wrap these sentinels with context via %w; handlers map
// them onto HTTP status codes with errors.Is.
package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

var (
	// ErrNotFound marks a referenced user, product, cart item, order,
	// delivery-details record or price-for-size that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks insufficient stock or a missing price for the
	// selected size. Callers must re-fetch state before retrying.
	ErrConflict = errors.New("conflict")

	// ErrForbidden marks a resource that does not belong to the
	// requesting user.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation marks malformed input, e.g. quantity < 1.
	ErrValidation = errors.New("validation failed")
)

// NotFound wraps ErrNotFound with a formatted message.
func NotFound(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNotFound)
}

// Conflict wraps ErrConflict with a formatted message.
func Conflict(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrConflict)
}

// Forbidden wraps ErrForbidden with a formatted message.
func Forbidden(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrForbidden)
}

// Validation wraps ErrValidation with a formatted message.
func Validation(format string, args ...interface{}) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrValidation)
}

// HTTPStatus maps an error to the fiber status code handlers should return.
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, ErrValidation):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}
