package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/glycare/pkg/authorize"
)

// RequirePermission checks the actor's role against the policy for
// resource and action.
func RequirePermission(auth authorize.IAuthorization, resource authorize.Resource, action authorize.Action) fiber.Handler {
	return func(c fiber.Ctx) error {
		actor, ok := ActorFromFiber(c)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized"})
		}

		err := auth.MustEnforce(c.Context(), authorize.RoleFor(actor.Role), resource, action)
		switch {
		case err == nil:
			return c.Next()
		case errors.Is(err, authorize.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "forbidden"})
		default:
			return err
		}
	}
}
