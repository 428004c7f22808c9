package handlers

import (
	stderrors "errors"

	"github.com/gofiber/fiber/v2"

	errs "github.com/jobdash/jobdash/internal/errors"
	"github.com/jobdash/jobdash/internal/logger"
)

// writeError maps the error taxonomy onto HTTP statuses: validation 400, remote 502, anything else 500
func writeError(c *fiber.Ctx, err error) error {
	msg := errs.UserMessage(err)
	switch {
	case errs.IsValidation(err):
		return c.Status(fiber.StatusBadRequest).JSON(errInvalidInput(msg))
	case errs.IsRemote(err):
		return c.Status(fiber.StatusBadGateway).JSON(errRemote(msg))
	default:
		logger.Errorf("unexpected handler error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(errServer(msg))
	}
}

// ErrorHandler is the fiber app's fallback for errors returned by handlers and routing
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if stderrors.As(err, &fe) {
		code = fe.Code
	}

	return c.Status(code).JSON(errGeneral(err.Error()))
}
