package middleware

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/glycare/internal/session"
	"github.com/Alijeyrad/glycare/pkg/reqctx"
)

// Actor identifies the caller from the session headers. Requests without a
// valid role and id are rejected with 401.
func Actor() fiber.Handler {
	return func(c fiber.Ctx) error {
		s, err := session.New(c.Get(session.HeaderRole), c.Get(session.HeaderActorID))
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing or invalid session headers"})
		}

		c.SetContext(reqctx.WithActor(c.Context(), reqctx.Actor{
			Role: string(s.Role),
			ID:   s.ActorID.String(),
		}))
		return c.Next()
	}
}

// ActorFromFiber returns the actor stored by Actor.
func ActorFromFiber(c fiber.Ctx) (reqctx.Actor, bool) {
	return reqctx.ActorFromContext(c.Context())
}
