package app

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/Alijeyrad/glycare/internal/service/clinical"
	"github.com/Alijeyrad/glycare/internal/service/patient"
	"github.com/Alijeyrad/glycare/internal/store"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvidePatientService,
		ProvideClinicalServices,
	),
)

func ProvidePatientService(tables *store.Tables, logger *slog.Logger) patient.Service {
	return patient.New(tables.Patients, logger)
}

func ProvideClinicalServices(tables *store.Tables, pub clinical.Publisher, logger *slog.Logger) *clinical.Services {
	return clinical.NewServices(tables, pub, logger)
}
