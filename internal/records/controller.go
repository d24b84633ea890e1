// Package records keeps one record collection in step with the selected
// scope and with the remote source of truth.
//
// Every fetch is tagged with the generation it was issued under. Selecting a
// scope, clearing it, and issuing a fetch all advance the generation, and a
// completion is applied only while its generation is still the latest. A
// response for a scope that is no longer selected, or one overtaken by a
// later refetch, is dropped.
//
// Mutations never patch the collection. A successful add, edit or remove is
// followed by a full refetch of the current scope.
package records

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Alijeyrad/glycare/internal/domain"
	"github.com/Alijeyrad/glycare/internal/remote"
)

type Option[R domain.Record] func(*Controller[R])

// WithLogger sets the logger; slog.Default() otherwise.
func WithLogger[R domain.Record](l *slog.Logger) Option[R] {
	return func(c *Controller[R]) { c.logger = l }
}

// WithObserver registers fn to receive a snapshot after every state write.
// fn runs on the goroutine that made the write and must not call back into
// the controller's mutating methods.
func WithObserver[R domain.Record](fn func(Snapshot[R])) Option[R] {
	return func(c *Controller[R]) { c.observer = fn }
}

// Controller owns the active collection for one record kind. It is safe for
// concurrent use; only its own completion handlers write the collection.
type Controller[R domain.Record] struct {
	src      remote.Source[R]
	kind     domain.Kind[R]
	logger   *slog.Logger
	observer func(Snapshot[R])

	mu         sync.Mutex
	state      State
	scope      domain.ID
	records    []R
	err        error
	generation uint64
	version    uint64

	notifyMu sync.Mutex
}

func New[R domain.Record](src remote.Source[R], kind domain.Kind[R], opts ...Option[R]) *Controller[R] {
	c := &Controller[R]{
		src:    src,
		kind:   kind,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.With("component", "records", "kind", kind.Name)
	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller[R]) Snapshot() Snapshot[R] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller[R]) snapshotLocked() Snapshot[R] {
	var recs []R
	if c.records != nil {
		recs = append(make([]R, 0, len(c.records)), c.records...)
	}
	return Snapshot[R]{
		State:      c.state,
		Scope:      c.scope,
		Records:    recs,
		Err:        c.err,
		Generation: c.generation,
		Version:    c.version,
	}
}

// Select makes scope current and fetches its collection. The call blocks for
// the duration of the fetch; other goroutines may select again meanwhile, in
// which case this call returns ErrSuperseded and its result is dropped.
func (c *Controller[R]) Select(ctx context.Context, scope domain.ID) error {
	if scope.IsZero() {
		return fmt.Errorf("%w: %s: scope id is required", domain.ErrValidation, c.kind.Name)
	}

	c.mu.Lock()
	if c.scope != scope {
		// A new scope never shows another scope's records.
		c.records = nil
	}
	c.scope = scope
	gen := c.beginFetchLocked()
	c.mu.Unlock()
	c.notify()

	return c.fetch(ctx, scope, gen)
}

// Clear returns the controller to Idle and discards the collection. Any
// in-flight fetch becomes stale.
func (c *Controller[R]) Clear() {
	c.mu.Lock()
	c.generation++
	c.scope = ""
	c.records = nil
	c.err = nil
	c.state = StateIdle
	c.version++
	c.mu.Unlock()
	c.notify()
}

// Refresh refetches the current scope.
func (c *Controller[R]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	scope := c.scope
	if scope.IsZero() {
		c.mu.Unlock()
		return ErrNoScope
	}
	gen := c.beginFetchLocked()
	c.mu.Unlock()
	c.notify()

	return c.fetch(ctx, scope, gen)
}

// Add creates rec under the current scope, then refetches. rec must not
// carry an ID.
func (c *Controller[R]) Add(ctx context.Context, rec R) error {
	scope, err := c.currentScope()
	if err != nil {
		return err
	}
	if !rec.RecordID().IsZero() {
		return fmt.Errorf("%w: %s: new record must not carry an id", domain.ErrValidation, c.kind.Name)
	}
	if err := c.checkScope(rec, scope); err != nil {
		return err
	}
	rec = c.kind.WithScope(rec, scope)

	if _, err := c.src.Create(ctx, rec); err != nil {
		c.logger.Error("add failed", "scope", scope, "error", err)
		return fmt.Errorf("add %s: %w", c.kind.Name, err)
	}
	return c.reconcile(ctx)
}

// Edit updates rec, which must carry an ID, then refetches.
func (c *Controller[R]) Edit(ctx context.Context, rec R) error {
	scope, err := c.currentScope()
	if err != nil {
		return err
	}
	if rec.RecordID().IsZero() {
		return fmt.Errorf("%w: %s: id is required", domain.ErrValidation, c.kind.Name)
	}
	if err := c.checkScope(rec, scope); err != nil {
		return err
	}
	rec = c.kind.WithScope(rec, scope)

	if _, err := c.src.Update(ctx, rec); err != nil {
		c.logger.Error("edit failed", "scope", scope, "id", rec.RecordID(), "error", err)
		return fmt.Errorf("edit %s %s: %w", c.kind.Name, rec.RecordID(), err)
	}
	return c.reconcile(ctx)
}

// Remove deletes the record with id, then refetches.
func (c *Controller[R]) Remove(ctx context.Context, id domain.ID) error {
	scope, err := c.currentScope()
	if err != nil {
		return err
	}
	if id.IsZero() {
		return fmt.Errorf("%w: %s: id is required", domain.ErrValidation, c.kind.Name)
	}

	if err := c.src.Delete(ctx, id); err != nil {
		c.logger.Error("remove failed", "scope", scope, "id", id, "error", err)
		return fmt.Errorf("remove %s %s: %w", c.kind.Name, id, err)
	}
	return c.reconcile(ctx)
}

// reconcile refetches after a successful mutation. A newer selection or a
// clear made meanwhile owns the collection now, so losing to it is not an
// error: the mutation itself went through.
func (c *Controller[R]) reconcile(ctx context.Context) error {
	err := c.Refresh(ctx)
	if errors.Is(err, ErrSuperseded) || errors.Is(err, ErrNoScope) {
		c.logger.Debug("post-mutation refetch overtaken", "error", err)
		return nil
	}
	return err
}

func (c *Controller[R]) currentScope() (domain.ID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.scope.IsZero() {
		return "", ErrNoScope
	}
	return c.scope, nil
}

// checkScope rejects a record stamped with a scope other than the selected
// one. An unstamped record is accepted and stamped by the caller.
func (c *Controller[R]) checkScope(rec R, scope domain.ID) error {
	if s := rec.RecordScope(); !s.IsZero() && s != scope {
		return fmt.Errorf("%w: %s: record belongs to scope %q, selected scope is %q",
			domain.ErrValidation, c.kind.Name, s, scope)
	}
	return nil
}

// beginFetchLocked advances the generation and enters Loading. The returned
// generation tags the fetch about to be issued.
func (c *Controller[R]) beginFetchLocked() uint64 {
	c.generation++
	c.state = StateLoading
	c.version++
	return c.generation
}

func (c *Controller[R]) fetch(ctx context.Context, scope domain.ID, gen uint64) error {
	recs, err := c.src.List(ctx, scope)

	c.mu.Lock()
	if gen != c.generation || scope != c.scope {
		current := c.generation
		c.mu.Unlock()
		c.logger.Debug("discarding stale fetch", "scope", scope, "generation", gen, "current_generation", current)
		return ErrSuperseded
	}

	if err != nil {
		// Keep whatever was visible before.
		c.state = StateError
		c.err = err
		c.version++
		c.mu.Unlock()
		c.logger.Error("fetch failed", "scope", scope, "generation", gen, "error", err)
		c.notify()
		return fmt.Errorf("fetch %s for %s: %w", c.kind.Name, scope, err)
	}

	c.records = SortNewestFirst(c.keepScope(scope, recs))
	c.state = StateReady
	c.err = nil
	c.version++
	c.mu.Unlock()
	c.notify()
	return nil
}

// keepScope drops records the server returned for a different scope.
func (c *Controller[R]) keepScope(scope domain.ID, recs []R) []R {
	out := make([]R, 0, len(recs))
	for _, r := range recs {
		if r.RecordScope() != scope {
			c.logger.Warn("dropping record from foreign scope", "scope", scope, "record_scope", r.RecordScope(), "id", r.RecordID())
			continue
		}
		out = append(out, r)
	}
	return out
}

func (c *Controller[R]) notify() {
	if c.observer == nil {
		return
	}
	c.notifyMu.Lock()
	defer c.notifyMu.Unlock()
	c.observer(c.Snapshot())
}
