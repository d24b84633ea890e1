package middleware

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/glycare/internal/domain"
	"github.com/Alijeyrad/glycare/pkg/reqctx"
)

const ParamPatientID = "pid"

// AccessChecker reports whether a doctor may see a patient. It returns an
// error wrapping domain.ErrForbidden or domain.ErrNotFound otherwise.
type AccessChecker interface {
	CanAccess(ctx context.Context, doctorID, patientID domain.ID) error
}

// CheckScope decides whether actor may reach records in scope. Patients
// only reach their own scope; doctors only reach their own patients.
func CheckScope(ctx context.Context, access AccessChecker, actor reqctx.Actor, scope domain.ID) error {
	switch {
	case actor.IsPatient():
		if domain.ID(actor.ID) != scope {
			return domain.ErrForbidden
		}
		return nil
	case actor.IsDoctor():
		return access.CanAccess(ctx, domain.ID(actor.ID), scope)
	default:
		return domain.ErrForbidden
	}
}

// PatientScope guards routes carrying a :pid parameter.
func PatientScope(access AccessChecker) fiber.Handler {
	return func(c fiber.Ctx) error {
		actor, ok := ActorFromFiber(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}

		err := CheckScope(c.Context(), access, actor, domain.ID(c.Params(ParamPatientID)))
		switch {
		case err == nil:
			return c.Next()
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "patient not found"})
		case errors.Is(err, domain.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
		default:
			return err
		}
	}
}
