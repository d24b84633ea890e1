// Package dashboard composes the scalar statistics shown on a patient
// dashboard from four independently fetched collections.
package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/Alijeyrad/glycare/internal/domain"
	"github.com/Alijeyrad/glycare/internal/remote"
)

const tracerName = "github.com/Alijeyrad/glycare/internal/dashboard"

// Stats is a complete dashboard aggregate. It only exists once all four
// collections have been fetched.
type Stats struct {
	Scope            domain.ID
	ExerciseCount    int
	DietCount        int
	SymptomCount     int
	BloodSugarCount  int
	BloodSugarAlerts int
	LoadedAt         time.Time
}

// Sources are the collaborators the dashboard reads from.
type Sources struct {
	Exercise   remote.Lister[domain.PlanAssignment]
	Diet       remote.Lister[domain.PlanAssignment]
	Symptoms   remote.Lister[domain.SymptomReport]
	BloodSugar remote.Lister[domain.BloodSugarMeasurement]
}

func (s Sources) validate() error {
	if s.Exercise == nil || s.Diet == nil || s.Symptoms == nil || s.BloodSugar == nil {
		return fmt.Errorf("dashboard: all four sources are required")
	}
	return nil
}

type Service struct {
	src    Sources
	logger *slog.Logger
	tracer trace.Tracer
	now    func() time.Time
}

func New(src Sources, logger *slog.Logger) (*Service, error) {
	if err := src.validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		src:    src,
		logger: logger.With("component", "dashboard"),
		tracer: otel.Tracer(tracerName),
		now:    time.Now,
	}, nil
}

// FromClient wires the service to a remote client.
func FromClient(c *remote.Client, logger *slog.Logger) (*Service, error) {
	if c == nil {
		return nil, fmt.Errorf("dashboard: remote client is required")
	}
	return New(Sources{
		Exercise:   c.Exercise(),
		Diet:       c.Diet(),
		Symptoms:   c.Symptoms(),
		BloodSugar: c.BloodSugar(),
	}, logger)
}

// Load fetches the four collections concurrently and aggregates them. The
// first failure cancels the remaining fetches and voids the whole result.
func (s *Service) Load(ctx context.Context, scope domain.ID) (Stats, error) {
	if scope.IsZero() {
		return Stats{}, fmt.Errorf("%w: %w: scope id is required", ErrDashboardUnavailable, domain.ErrValidation)
	}

	ctx, span := s.tracer.Start(ctx, "dashboard.Load", trace.WithAttributes(attribute.String("scope", scope.String())))
	defer span.End()

	var (
		exercise []domain.PlanAssignment
		diet     []domain.PlanAssignment
		symptoms []domain.SymptomReport
		sugar    []domain.BloodSugarMeasurement
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		exercise, err = s.src.Exercise.List(gctx, scope)
		return wrap("exercise", err)
	})
	g.Go(func() (err error) {
		diet, err = s.src.Diet.List(gctx, scope)
		return wrap("diet", err)
	})
	g.Go(func() (err error) {
		symptoms, err = s.src.Symptoms.List(gctx, scope)
		return wrap("symptoms", err)
	})
	g.Go(func() (err error) {
		sugar, err = s.src.BloodSugar.List(gctx, scope)
		return wrap("blood sugar", err)
	})

	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "aggregate failed")
		s.logger.Error("dashboard load failed", "scope", scope, "error", err)
		return Stats{}, fmt.Errorf("%w: %w", ErrDashboardUnavailable, err)
	}

	stats := Stats{
		Scope:            scope,
		ExerciseCount:    len(exercise),
		DietCount:        len(diet),
		SymptomCount:     len(symptoms),
		BloodSugarCount:  len(sugar),
		BloodSugarAlerts: CountAlerts(sugar),
		LoadedAt:         s.now(),
	}
	span.SetAttributes(attribute.Int("blood_sugar.alerts", stats.BloodSugarAlerts))
	s.logger.Debug("dashboard loaded", "scope", scope,
		"exercise", stats.ExerciseCount, "diet", stats.DietCount,
		"symptoms", stats.SymptomCount, "alerts", stats.BloodSugarAlerts)
	return stats, nil
}

// CountAlerts counts out-of-range measurements.
func CountAlerts(ms []domain.BloodSugarMeasurement) int {
	n := 0
	for _, m := range ms {
		if m.OutOfRange() {
			n++
		}
	}
	return n
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("fetch %s: %w", what, err)
}
