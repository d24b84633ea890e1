// Package clinical serves one record collection per kind: validation,
// id assignment, persistence and change events.
package clinical

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Alijeyrad/glycare/internal/domain"
	"github.com/Alijeyrad/glycare/internal/store"
)

type Service[R domain.Record] interface {
	Kind() string
	List(ctx context.Context, scope domain.ID) ([]R, error)
	Get(ctx context.Context, id domain.ID) (R, error)
	// Create stamps scope onto rec and assigns a fresh id.
	Create(ctx context.Context, scope domain.ID, rec R) (R, error)
	// Update replaces the record stored under id. The record keeps its scope.
	Update(ctx context.Context, id domain.ID, rec R) (R, error)
	Delete(ctx context.Context, id domain.ID) error
}

type service[R domain.Record] struct {
	kind   domain.Kind[R]
	table  store.Table[R]
	pub    Publisher
	logger *slog.Logger
	now    func() time.Time
}

// New builds the service for one kind. pub may be nil, in which case no
// events are published.
func New[R domain.Record](kind domain.Kind[R], table store.Table[R], pub Publisher, logger *slog.Logger) Service[R] {
	if logger == nil {
		logger = slog.Default()
	}
	return &service[R]{
		kind:   kind,
		table:  table,
		pub:    pub,
		logger: logger.With("kind", kind.Name),
		now:    time.Now,
	}
}

func (s *service[R]) Kind() string { return s.kind.Name }

func (s *service[R]) List(ctx context.Context, scope domain.ID) ([]R, error) {
	if scope.IsZero() {
		return nil, fmt.Errorf("%w: scope is required", domain.ErrValidation)
	}
	return s.table.List(ctx, scope)
}

func (s *service[R]) Get(ctx context.Context, id domain.ID) (R, error) {
	rec, err := s.table.Get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return rec, ErrRecordNotFound
	}
	return rec, err
}

func (s *service[R]) Create(ctx context.Context, scope domain.ID, rec R) (R, error) {
	var zero R
	if !rec.RecordID().IsZero() {
		return zero, ErrIDNotAllowed
	}
	if body := rec.RecordScope(); !body.IsZero() && body != scope {
		return zero, ErrScopeMismatch
	}

	rec = s.kind.WithScope(rec, scope)
	if err := s.kind.Validate(rec); err != nil {
		return zero, err
	}
	rec = s.kind.WithID(rec, domain.ID(uuid.NewString()))

	if err := s.table.Insert(ctx, rec); err != nil {
		return zero, fmt.Errorf("create %s: %w", s.kind.Name, err)
	}
	s.publish(ctx, OpCreated, rec)
	return rec, nil
}

func (s *service[R]) Update(ctx context.Context, id domain.ID, rec R) (R, error) {
	var zero R
	existing, err := s.Get(ctx, id)
	if err != nil {
		return zero, err
	}
	if body := rec.RecordID(); !body.IsZero() && body != id {
		return zero, fmt.Errorf("%w: id in body does not match path", domain.ErrValidation)
	}
	if body := rec.RecordScope(); !body.IsZero() && body != existing.RecordScope() {
		return zero, ErrScopeMismatch
	}

	rec = s.kind.WithScope(s.kind.WithID(rec, id), existing.RecordScope())
	if err := s.kind.Validate(rec); err != nil {
		return zero, err
	}
	if err := s.table.Update(ctx, rec); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return zero, ErrRecordNotFound
		}
		return zero, fmt.Errorf("update %s: %w", s.kind.Name, err)
	}
	s.publish(ctx, OpUpdated, rec)
	return rec, nil
}

func (s *service[R]) Delete(ctx context.Context, id domain.ID) error {
	existing, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.table.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return ErrRecordNotFound
		}
		return fmt.Errorf("delete %s: %w", s.kind.Name, err)
	}
	s.publish(ctx, OpDeleted, existing)
	return nil
}

// publish is best effort: the mutation already happened, so a failed
// publish is logged and swallowed.
func (s *service[R]) publish(ctx context.Context, op Op, rec R) {
	if s.pub == nil {
		return
	}
	body, err := json.Marshal(rec)
	if err != nil {
		s.logger.ErrorContext(ctx, "marshal record event", "error", err)
		return
	}
	ev := Event{
		Kind:   s.kind.Name,
		Op:     op,
		Scope:  rec.RecordScope(),
		ID:     rec.RecordID(),
		At:     s.now().UTC(),
		Record: body,
	}
	data, err := json.Marshal(ev)
	if err != nil {
		s.logger.ErrorContext(ctx, "marshal record event", "error", err)
		return
	}
	if err := s.pub.Publish(ev.Subject(), data); err != nil {
		s.logger.WarnContext(ctx, "record event not published",
			"subject", ev.Subject(), "error", fmt.Errorf("%w: %w", ErrPublish, err))
	}
}

// Services bundles one Service per record collection.
type Services struct {
	BloodSugar Service[domain.BloodSugarMeasurement]
	Insulin    Service[domain.InsulinLogEntry]
	Exercise   Service[domain.PlanAssignment]
	Diet       Service[domain.PlanAssignment]
	Symptoms   Service[domain.SymptomReport]
}

func NewServices(tables *store.Tables, pub Publisher, logger *slog.Logger) *Services {
	return &Services{
		BloodSugar: New(domain.BloodSugar, tables.BloodSugar, pub, logger),
		Insulin:    New(domain.Insulin, tables.Insulin, pub, logger),
		Exercise:   New(domain.Exercise, tables.Exercise, pub, logger),
		Diet:       New(domain.Diet, tables.Diet, pub, logger),
		Symptoms:   New(domain.Symptom, tables.Symptoms, pub, logger),
	}
}
