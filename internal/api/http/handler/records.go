package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/glycare/internal/api/http/middleware"
	"github.com/Alijeyrad/glycare/internal/domain"
	"github.com/Alijeyrad/glycare/internal/service/clinical"
)

// RecordHandler serves one record collection. Scope routes are guarded by
// middleware.PatientScope; item routes check the stored record's scope here
// because the URL does not carry it.
type RecordHandler[R domain.Record] struct {
	svc    clinical.Service[R]
	access middleware.AccessChecker
}

func NewRecordHandler[R domain.Record](svc clinical.Service[R], access middleware.AccessChecker) *RecordHandler[R] {
	return &RecordHandler[R]{svc: svc, access: access}
}

// GET /patients/:pid/<kind>
func (h *RecordHandler[R]) List(c fiber.Ctx) error {
	recs, err := h.svc.List(c.Context(), domain.ID(c.Params(middleware.ParamPatientID)))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, recs)
}

// POST /patients/:pid/<kind>
func (h *RecordHandler[R]) Create(c fiber.Ctx) error {
	var rec R
	if err := c.Bind().JSON(&rec); err != nil {
		return badRequest(c, "invalid request body")
	}

	out, err := h.svc.Create(c.Context(), domain.ID(c.Params(middleware.ParamPatientID)), rec)
	if err != nil {
		return fail(c, err)
	}
	return created(c, out)
}

// PUT /<kind>/:id
func (h *RecordHandler[R]) Update(c fiber.Ctx) error {
	id := domain.ID(c.Params("id"))
	if err := h.authorizeItem(c, id); err != nil {
		return fail(c, err)
	}

	var rec R
	if err := c.Bind().JSON(&rec); err != nil {
		return badRequest(c, "invalid request body")
	}

	out, err := h.svc.Update(c.Context(), id, rec)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, out)
}

// DELETE /<kind>/:id
func (h *RecordHandler[R]) Delete(c fiber.Ctx) error {
	id := domain.ID(c.Params("id"))
	if err := h.authorizeItem(c, id); err != nil {
		return fail(c, err)
	}

	if err := h.svc.Delete(c.Context(), id); err != nil {
		return fail(c, err)
	}
	return noContent(c)
}

func (h *RecordHandler[R]) authorizeItem(c fiber.Ctx, id domain.ID) error {
	existing, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return err
	}
	actor, _ := middleware.ActorFromFiber(c)
	return middleware.CheckScope(c.Context(), h.access, actor, existing.RecordScope())
}
