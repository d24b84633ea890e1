package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/glycare/internal/domain"
	"github.com/Alijeyrad/glycare/pkg/reqctx"
)

func ok(c fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"data": data})
}

func created(c fiber.Ctx, data any) error {
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": data})
}

func noContent(c fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}

func badRequest(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": msg})
}

func forbidden(c fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
}

func notFound(c fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": msg})
}

func internalError(c fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal server error"})
}

// fail maps the domain error taxonomy onto a response.
func fail(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return badRequest(c, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		return forbidden(c)
	default:
		slog.ErrorContext(c.Context(), "request failed",
			"request_id", reqctx.RequestIDFromContext(c.Context()),
			"path", c.Path(),
			"error", err,
		)
		return internalError(c)
	}
}
