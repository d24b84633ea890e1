package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/glycare/internal/api/http/middleware"
	"github.com/Alijeyrad/glycare/internal/domain"
	"github.com/Alijeyrad/glycare/internal/service/patient"
)

type PatientHandler struct {
	svc patient.Service
}

func NewPatientHandler(svc patient.Service) *PatientHandler {
	return &PatientHandler{svc: svc}
}

// GET /patients
func (h *PatientHandler) List(c fiber.Ctx) error {
	actor, _ := middleware.ActorFromFiber(c)

	patients, err := h.svc.List(c.Context(), domain.ID(actor.ID))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, patients)
}

// POST /patients
func (h *PatientHandler) Create(c fiber.Ctx) error {
	actor, _ := middleware.ActorFromFiber(c)

	var req patient.CreatePatientRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	p, err := h.svc.Create(c.Context(), domain.ID(actor.ID), req)
	if err != nil {
		return fail(c, err)
	}
	return created(c, p)
}

// GET /patients/:pid
func (h *PatientHandler) Get(c fiber.Ctx) error {
	p, err := h.svc.Get(c.Context(), domain.ID(c.Params(middleware.ParamPatientID)))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, p)
}
