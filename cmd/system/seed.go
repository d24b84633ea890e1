package system

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/Alijeyrad/glycare/cmd/cmdutil"
	"github.com/Alijeyrad/glycare/internal/domain"
	"github.com/Alijeyrad/glycare/internal/service/clinical"
	"github.com/Alijeyrad/glycare/internal/service/patient"
	"github.com/Alijeyrad/glycare/internal/store"
)

const dateLayout = "2006-01-02"

func NewSeedCommand() *cobra.Command {
	var doctorID string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a demo doctor with patients and records into the SQL store",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdutil.ReadConfig(cmd)
			if err != nil {
				return err
			}
			if doctorID == "" {
				doctorID = cfg.Session.ActorID
			}
			if doctorID == "" {
				return fmt.Errorf("--doctor is required when session.actor_id is not set")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), serverTimeout(cfg))
			defer cancel()

			db, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			logger := slog.Default()
			if err := store.Migrate(ctx, db, logger); err != nil {
				return fmt.Errorf("failed to run migrations: %w", err)
			}

			tables := store.NewSQLTables(db)
			res, err := seedDemo(ctx,
				patient.New(tables.Patients, logger),
				clinical.NewServices(tables, nil, logger),
				domain.ID(doctorID),
				time.Now(),
			)
			if err != nil {
				return fmt.Errorf("failed to seed: %w", err)
			}

			fmt.Printf("Seeded %d patients and %d records for doctor %s.\n", len(res.Patients), res.Records, doctorID)
			for _, p := range res.Patients {
				fmt.Printf("  %s  %s\n", p.ID, p.DisplayName)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&doctorID, "doctor", "", "doctor id owning the demo patients (defaults to session.actor_id)")

	return cmd
}

type seedResult struct {
	Patients []domain.Patient
	Records  int
}

type demoPatient struct {
	name, label string
	readings    []float64
}

var demoPatients = []demoPatient{
	{name: "Sara Ahmadi", label: "Type 1", readings: []float64{65, 110, 142, 190, 128}},
	{name: "Reza Karimi", label: "Type 2", readings: []float64{98, 175, 181, 120}},
}

// seedDemo writes the demo data set. Records are dated backwards from now,
// one per day.
func seedDemo(ctx context.Context, patients patient.Service, svcs *clinical.Services, doctorID domain.ID, now time.Time) (seedResult, error) {
	var res seedResult

	for _, dp := range demoPatients {
		p, err := patients.Create(ctx, doctorID, patient.CreatePatientRequest{
			DisplayName:    dp.name,
			SecondaryLabel: dp.label,
		})
		if err != nil {
			return res, fmt.Errorf("create patient %q: %w", dp.name, err)
		}
		res.Patients = append(res.Patients, p)
		scope := p.ID

		for i, v := range dp.readings {
			at := now.AddDate(0, 0, -i)
			if _, err := svcs.BloodSugar.Create(ctx, scope, domain.BloodSugarMeasurement{
				Value:      v,
				MeasuredAt: at.Format(dateLayout) + " 08:00",
			}); err != nil {
				return res, err
			}
			res.Records++
		}

		if _, err := svcs.Insulin.Create(ctx, scope, domain.InsulinLogEntry{
			LogDate: now.Format(dateLayout),
			LogTime: "07:30",
			Dosage:  8,
			Note:    "before breakfast",
		}); err != nil {
			return res, err
		}
		res.Records++

		if _, err := svcs.Exercise.Create(ctx, scope, domain.PlanAssignment{
			Name:      "30 minute walk",
			Status:    domain.PlanActive,
			StartDate: now.AddDate(0, 0, -14).Format(dateLayout),
			EndDate:   now.AddDate(0, 0, 14).Format(dateLayout),
		}); err != nil {
			return res, err
		}
		res.Records++

		if _, err := svcs.Diet.Create(ctx, scope, domain.PlanAssignment{
			Name:      "Low glycemic breakfast",
			Status:    domain.PlanPending,
			StartDate: now.AddDate(0, 0, 7).Format(dateLayout),
		}); err != nil {
			return res, err
		}
		res.Records++

		if _, err := svcs.Symptoms.Create(ctx, scope, domain.SymptomReport{
			Description: "Dizziness after lunch",
			Severity:    "mild",
			ReportedAt:  now.AddDate(0, 0, -1).Format(dateLayout),
		}); err != nil {
			return res, err
		}
		res.Records++
	}

	return res, nil
}
