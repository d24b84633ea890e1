package router

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/Alijeyrad/glycare/config"
	"github.com/Alijeyrad/glycare/internal/api/http/handler"
	"github.com/Alijeyrad/glycare/internal/api/http/middleware"
	"github.com/Alijeyrad/glycare/internal/service/clinical"
	"github.com/Alijeyrad/glycare/internal/service/patient"
	"github.com/Alijeyrad/glycare/pkg/authorize"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg        *config.Config
	Auth       authorize.IAuthorization
	PatientSvc patient.Service
	Records    *clinical.Services
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

type permFunc func(authorize.Resource, authorize.Action) fiber.Handler

func (r *Router) Register(app *fiber.App) {
	r.registerSystemRoutes(app)

	requirePerm := func(res authorize.Resource, act authorize.Action) fiber.Handler {
		return middleware.RequirePermission(r.p.Auth, res, act)
	}
	scope := middleware.PatientScope(r.p.PatientSvc)

	api := app.Group("/api/v1", middleware.Actor())

	r.registerPatientRoutes(api, handler.NewPatientHandler(r.p.PatientSvc), scope, requirePerm)

	recs := r.p.Records
	registerRecordRoutes(api, authorize.ResourceBloodSugar, handler.NewRecordHandler(recs.BloodSugar, r.p.PatientSvc), scope, requirePerm)
	registerRecordRoutes(api, authorize.ResourceInsulin, handler.NewRecordHandler(recs.Insulin, r.p.PatientSvc), scope, requirePerm)
	registerRecordRoutes(api, authorize.ResourceExercise, handler.NewRecordHandler(recs.Exercise, r.p.PatientSvc), scope, requirePerm)
	registerRecordRoutes(api, authorize.ResourceDiet, handler.NewRecordHandler(recs.Diet, r.p.PatientSvc), scope, requirePerm)
	registerRecordRoutes(api, authorize.ResourceSymptom, handler.NewRecordHandler(recs.Symptoms, r.p.PatientSvc), scope, requirePerm)
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New())
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}
