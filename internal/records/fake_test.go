package records

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Alijeyrad/glycare/internal/domain"
)

var errBoom = fmt.Errorf("%w: connection reset", domain.ErrNetwork)

// fakeSource is an in-memory remote collection. Lists for a gated scope
// block until the gate is released.
type fakeSource[R domain.Record] struct {
	kind domain.Kind[R]

	mu      sync.Mutex
	rows    []R
	nextID  int
	gates   map[domain.ID]chan struct{}
	entered chan domain.ID

	failList   bool
	failCreate bool
	failUpdate bool
	failDelete bool

	// extra is appended to every List result, regardless of scope.
	extra []R
	calls int
}

func newFakeSource[R domain.Record](kind domain.Kind[R]) *fakeSource[R] {
	return &fakeSource[R]{
		kind:    kind,
		gates:   map[domain.ID]chan struct{}{},
		entered: make(chan domain.ID, 64),
	}
}

// gate makes the next List for scope block until the returned func is
// called. Earlier List notifications are discarded so waitEntered only sees
// calls made after gating.
func (f *fakeSource[R]) gate(scope domain.ID) func() {
drain:
	for {
		select {
		case <-f.entered:
		default:
			break drain
		}
	}

	ch := make(chan struct{})
	f.mu.Lock()
	f.gates[scope] = ch
	f.mu.Unlock()
	var once sync.Once
	return func() { once.Do(func() { close(ch) }) }
}

func (f *fakeSource[R]) List(ctx context.Context, scope domain.ID) ([]R, error) {
	f.mu.Lock()
	f.calls++
	gate := f.gates[scope]
	delete(f.gates, scope)
	f.mu.Unlock()

	select {
	case f.entered <- scope:
	default:
	}
	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failList {
		return nil, errBoom
	}
	var out []R
	for _, r := range f.rows {
		if r.RecordScope() == scope {
			out = append(out, r)
		}
	}
	return append(out, f.extra...), nil
}

func (f *fakeSource[R]) Create(ctx context.Context, r R) (R, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		var zero R
		return zero, errBoom
	}
	f.nextID++
	r = f.kind.WithID(r, domain.ID(fmt.Sprintf("r%d", f.nextID)))
	f.rows = append(f.rows, r)
	return r, nil
}

func (f *fakeSource[R]) Update(ctx context.Context, r R) (R, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failUpdate {
		var zero R
		return zero, errBoom
	}
	for i := range f.rows {
		if f.rows[i].RecordID() == r.RecordID() {
			f.rows[i] = r
			return r, nil
		}
	}
	var zero R
	return zero, domain.ErrNotFound
}

func (f *fakeSource[R]) Delete(ctx context.Context, id domain.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete {
		return errBoom
	}
	for i := range f.rows {
		if f.rows[i].RecordID() == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeSource[R]) seed(rows ...R) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range rows {
		f.nextID++
		if r.RecordID().IsZero() {
			r = f.kind.WithID(r, domain.ID(fmt.Sprintf("r%d", f.nextID)))
		}
		f.rows = append(f.rows, r)
	}
}

func isNetwork(err error) bool { return errors.Is(err, domain.ErrNetwork) }
