package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/glycare/internal/api/http/handler"
	"github.com/Alijeyrad/glycare/pkg/authorize"
)

func (r *Router) registerPatientRoutes(
	api fiber.Router,
	ph *handler.PatientHandler,
	scope fiber.Handler,
	requirePerm permFunc,
) {
	api.Get("/patients", requirePerm(authorize.ResourcePatient, authorize.ActionList), ph.List)
	api.Post("/patients", requirePerm(authorize.ResourcePatient, authorize.ActionCreate), ph.Create)
	api.Get("/patients/:pid", requirePerm(authorize.ResourcePatient, authorize.ActionRead), scope, ph.Get)
}
