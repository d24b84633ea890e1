package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/glycare/internal/api/http/handler"
	"github.com/Alijeyrad/glycare/internal/domain"
	"github.com/Alijeyrad/glycare/pkg/authorize"
)

// registerRecordRoutes mounts one collection. The resource name doubles as
// the URL segment.
func registerRecordRoutes[R domain.Record](
	api fiber.Router,
	res authorize.Resource,
	h *handler.RecordHandler[R],
	scope fiber.Handler,
	requirePerm permFunc,
) {
	kind := string(res)

	api.Get("/patients/:pid/"+kind, requirePerm(res, authorize.ActionList), scope, h.List)
	api.Post("/patients/:pid/"+kind, requirePerm(res, authorize.ActionCreate), scope, h.Create)
	api.Put("/"+kind+"/:id", requirePerm(res, authorize.ActionUpdate), h.Update)
	api.Delete("/"+kind+"/:id", requirePerm(res, authorize.ActionDelete), h.Delete)
}
