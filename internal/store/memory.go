package store

import (
	"context"
	"sync"

	"github.com/Alijeyrad/glycare/internal/domain"
)

// MemoryTable keeps records in insertion order behind a mutex.
type MemoryTable[R domain.Record] struct {
	mu    sync.RWMutex
	rows  map[domain.ID]R
	order []domain.ID
}

func NewMemoryTable[R domain.Record]() *MemoryTable[R] {
	return &MemoryTable[R]{rows: make(map[domain.ID]R)}
}

func (t *MemoryTable[R]) List(_ context.Context, scope domain.ID) ([]R, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]R, 0)
	for _, id := range t.order {
		if rec := t.rows[id]; rec.RecordScope() == scope {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (t *MemoryTable[R]) Get(_ context.Context, id domain.ID) (R, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rec, ok := t.rows[id]
	if !ok {
		var zero R
		return zero, ErrNotFound
	}
	return rec, nil
}

func (t *MemoryTable[R]) Insert(_ context.Context, rec R) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := rec.RecordID()
	if _, ok := t.rows[id]; ok {
		return ErrDuplicate
	}
	t.rows[id] = rec
	t.order = append(t.order, id)
	return nil
}

func (t *MemoryTable[R]) Update(_ context.Context, rec R) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := rec.RecordID()
	if _, ok := t.rows[id]; !ok {
		return ErrNotFound
	}
	t.rows[id] = rec
	return nil
}

func (t *MemoryTable[R]) Delete(_ context.Context, id domain.ID) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return ErrNotFound
	}
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			break
		}
	}
	return nil
}
