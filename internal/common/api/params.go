package api

import (
	"fmt"
	"strconv"

	"staff-acl/internal/common/apperr"

	"github.com/gofiber/fiber/v2"
)

// ParamInt64 reads a required numeric path parameter.
func ParamInt64(c *fiber.Ctx, name string) (int64, error) {
	v, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%w: %s must be a positive integer", apperr.ErrInvalidArgument, name)
	}
	return v, nil
}

// QueryInt64 reads an optional numeric query parameter; absent yields nil.
func QueryInt64(c *fiber.Ctx, name string) (*int64, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return nil, fmt.Errorf("%w: %s must be a positive integer", apperr.ErrInvalidArgument, name)
	}
	return &v, nil
}

// Fail writes err as a JSON error body with the status apperr assigns to it.
func Fail(c *fiber.Ctx, err error) error {
	return c.Status(apperr.HTTPStatus(err)).JSON(fiber.Map{
		"error": err.Error(),
	})
}

// BadRequest is used when the request body cannot be decoded.
func BadRequest(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "Invalid request body",
	})
}
