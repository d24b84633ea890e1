// Package store persists clinical records for the reference API. Each
// record kind lives in its own Table, keyed by id and partitioned by scope.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/Alijeyrad/glycare/internal/domain"
)

var (
	// ErrNotFound wraps domain.ErrNotFound so handlers map it to 404.
	ErrNotFound  = fmt.Errorf("store: %w", domain.ErrNotFound)
	ErrDuplicate = errors.New("store: duplicate id")
)

// Table is the storage for one record kind.
type Table[R domain.Record] interface {
	// List returns every record in scope. Order is unspecified.
	List(ctx context.Context, scope domain.ID) ([]R, error)
	Get(ctx context.Context, id domain.ID) (R, error)
	Insert(ctx context.Context, rec R) error
	Update(ctx context.Context, rec R) error
	Delete(ctx context.Context, id domain.ID) error
}

// Tables groups one table per collection served by the API.
type Tables struct {
	Patients   Table[domain.Patient]
	BloodSugar Table[domain.BloodSugarMeasurement]
	Insulin    Table[domain.InsulinLogEntry]
	Exercise   Table[domain.PlanAssignment]
	Diet       Table[domain.PlanAssignment]
	Symptoms   Table[domain.SymptomReport]
}

func NewMemoryTables() *Tables {
	return &Tables{
		Patients:   NewMemoryTable[domain.Patient](),
		BloodSugar: NewMemoryTable[domain.BloodSugarMeasurement](),
		Insulin:    NewMemoryTable[domain.InsulinLogEntry](),
		Exercise:   NewMemoryTable[domain.PlanAssignment](),
		Diet:       NewMemoryTable[domain.PlanAssignment](),
		Symptoms:   NewMemoryTable[domain.SymptomReport](),
	}
}
