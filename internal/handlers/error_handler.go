package handlers

import (
	"errors"

	"catalog/pkg/errs"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandler is the fiber error handler translating every error returned by a handler into
// a status code and JSON body:
//
//   - errs.ValidationError: 422 with a field -> message object
//   - *errs.Error: its status with {"message": ...}
//   - *fiber.Error: its code with {"message": ...}
//   - anything else: 500, logged
func ErrorHandler(c *fiber.Ctx, err error) error {
	var validationErr errs.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(validationErr)
	}

	var domainErr *errs.Error
	if errors.As(err, &domainErr) {
		return c.Status(domainErr.Status).JSON(fiber.Map{"message": domainErr.Message})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(fiber.Map{"message": fiberErr.Message})
	}

	log.Ctx(c.UserContext()).Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("unhandled error")
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "internal server error"})
}
