package apperr

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var (
	// ErrNotFound is returned for unknown staff, customer, grant or level ids.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when the caller lacks the role required for an administration call.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidArgument covers malformed scope names, unknown field names and bad level values.
	ErrInvalidArgument = errors.New("invalid argument")
)

// HTTPStatus maps an error chain onto the response code the API returns for it.
func HTTPStatus(err error) int {
	var fe *fiber.Error
	switch {
	case err == nil:
		return fiber.StatusOK
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return fiber.StatusForbidden
	case errors.Is(err, ErrInvalidArgument):
		return fiber.StatusBadRequest
	case errors.As(err, &fe):
		return fe.Code
	default:
		return fiber.StatusInternalServerError
	}
}
