package records

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/Alijeyrad/glycare/internal/domain"
)

func bs(scope domain.ID, value float64, at string) domain.BloodSugarMeasurement {
	return domain.BloodSugarMeasurement{ScopeID: scope, Value: value, MeasuredAt: at}
}

func values(recs []domain.BloodSugarMeasurement) []float64 {
	var out []float64
	for _, r := range recs {
		out = append(out, r.Value)
	}
	return out
}

func newBloodSugar(t *testing.T) (*Controller[domain.BloodSugarMeasurement], *fakeSource[domain.BloodSugarMeasurement]) {
	t.Helper()
	src := newFakeSource(domain.BloodSugar)
	return New[domain.BloodSugarMeasurement](src, domain.BloodSugar), src
}

// waitEntered blocks until the fake has received a List for scope.
func waitEntered(t *testing.T, src *fakeSource[domain.BloodSugarMeasurement], scope domain.ID) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case got := <-src.entered:
			if got == scope {
				return
			}
		case <-deadline:
			t.Fatalf("List(%q) was never issued", scope)
		}
	}
}

func TestAddThenFetch_Scenario(t *testing.T) {
	ctx := context.Background()
	c, _ := newBloodSugar(t)

	if err := c.Select(ctx, "P1"); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if snap := c.Snapshot(); snap.State != StateReady || len(snap.Records) != 0 {
		t.Fatalf("initial snapshot = %+v", snap)
	}

	if err := c.Add(ctx, bs("", 200, "2024-05-01T08:00:00Z")); err != nil {
		t.Fatalf("Add(200) error = %v", err)
	}
	if got := values(c.Snapshot().Records); !reflect.DeepEqual(got, []float64{200}) {
		t.Fatalf("after first add = %v", got)
	}

	if err := c.Add(ctx, bs("", 50, "2024-05-01T12:00:00Z")); err != nil {
		t.Fatalf("Add(50) error = %v", err)
	}
	snap := c.Snapshot()
	if got := values(snap.Records); !reflect.DeepEqual(got, []float64{50, 200}) {
		t.Fatalf("after second add = %v, want [50 200]", got)
	}

	alerts := 0
	for _, r := range snap.Records {
		if r.ScopeID != "P1" {
			t.Errorf("record %q leaked from scope %q", r.ID, r.ScopeID)
		}
		if r.OutOfRange() {
			alerts++
		}
	}
	if alerts != 2 {
		t.Errorf("alert count = %d, want 2", alerts)
	}
}

func TestFetch_OrdersNewestFirst(t *testing.T) {
	c, src := newBloodSugar(t)
	src.seed(
		bs("P1", 100, "2024-01-02T00:00:00Z"),
		bs("P1", 101, "2024-01-05T00:00:00Z"),
		bs("P1", 102, "2024-01-03"),
		bs("P1", 103, "2024-01-05T00:00:00Z"), // tie with 101; server order kept
		bs("P1", 104, "garbage"),
	)

	if err := c.Select(context.Background(), "P1"); err != nil {
		t.Fatal(err)
	}
	recs := c.Snapshot().Records
	if got := values(recs); !reflect.DeepEqual(got, []float64{101, 103, 102, 100, 104}) {
		t.Fatalf("order = %v", got)
	}
	for i := 1; i < len(recs); i++ {
		if recs[i-1].Timestamp().Before(recs[i].Timestamp()) {
			t.Errorf("records %d and %d out of order", i-1, i)
		}
	}
}

func TestFetch_DropsForeignScope(t *testing.T) {
	c, src := newBloodSugar(t)
	src.seed(bs("P1", 120, "2024-01-01"))
	src.extra = []domain.BloodSugarMeasurement{{ID: "leak", ScopeID: "P2", Value: 90, MeasuredAt: "2024-01-02"}}

	if err := c.Select(context.Background(), "P1"); err != nil {
		t.Fatal(err)
	}
	recs := c.Snapshot().Records
	if len(recs) != 1 || recs[0].ScopeID != "P1" {
		t.Errorf("records = %+v", recs)
	}
}

func TestRemoveSoleRecord_YieldsEmptyCollection(t *testing.T) {
	ctx := context.Background()
	c, src := newBloodSugar(t)
	src.seed(bs("P1", 140, "2024-01-01"))

	if err := c.Select(ctx, "P1"); err != nil {
		t.Fatal(err)
	}
	id := c.Snapshot().Records[0].ID

	if err := c.Remove(ctx, id); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	snap := c.Snapshot()
	if snap.State != StateReady || snap.Err != nil {
		t.Errorf("state = %v err = %v, want ready", snap.State, snap.Err)
	}
	if len(snap.Records) != 0 {
		t.Errorf("records = %v, want empty", snap.Records)
	}
}

func TestEdit_Refetches(t *testing.T) {
	ctx := context.Background()
	c, src := newBloodSugar(t)
	src.seed(bs("P1", 140, "2024-01-01"))
	_ = c.Select(ctx, "P1")

	rec := c.Snapshot().Records[0]
	rec.Value = 145
	before := src.calls
	if err := c.Edit(ctx, rec); err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	if src.calls != before+1 {
		t.Errorf("edit issued %d lists, want exactly one refetch", src.calls-before)
	}
	if got := c.Snapshot().Records[0].Value; got != 145 {
		t.Errorf("value after edit = %v", got)
	}
}

func TestSelect_StaleResponseDiscarded(t *testing.T) {
	ctx := context.Background()
	c, src := newBloodSugar(t)
	src.seed(
		bs("A", 300, "2024-01-01"),
		bs("B", 100, "2024-01-01"),
		bs("B", 110, "2024-01-02"),
	)

	releaseA := src.gate("A")
	errA := make(chan error, 1)
	go func() { errA <- c.Select(ctx, "A") }()
	waitEntered(t, src, "A")

	releaseB := src.gate("B")
	errB := make(chan error, 1)
	go func() { errB <- c.Select(ctx, "B") }()
	waitEntered(t, src, "B")

	releaseB()
	if err := <-errB; err != nil {
		t.Fatalf("Select(B) error = %v", err)
	}
	releaseA()
	if err := <-errA; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("Select(A) error = %v, want ErrSuperseded", err)
	}

	snap := c.Snapshot()
	if snap.Scope != "B" || snap.State != StateReady {
		t.Fatalf("snapshot = %+v", snap)
	}
	if got := values(snap.Records); !reflect.DeepEqual(got, []float64{110, 100}) {
		t.Errorf("records = %v, want B's [110 100]", got)
	}
}

func TestSelect_StaleResponseArrivingFirst(t *testing.T) {
	ctx := context.Background()
	c, src := newBloodSugar(t)
	src.seed(bs("A", 300, "2024-01-01"), bs("B", 100, "2024-01-01"))

	releaseA := src.gate("A")
	errA := make(chan error, 1)
	go func() { errA <- c.Select(ctx, "A") }()
	waitEntered(t, src, "A")

	releaseB := src.gate("B")
	errB := make(chan error, 1)
	go func() { errB <- c.Select(ctx, "B") }()
	waitEntered(t, src, "B")

	// A resolves while B is still outstanding: nothing from A may show.
	releaseA()
	if err := <-errA; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("Select(A) error = %v, want ErrSuperseded", err)
	}
	if snap := c.Snapshot(); snap.State != StateLoading || len(snap.Records) != 0 {
		t.Fatalf("snapshot while B loading = %+v", snap)
	}

	releaseB()
	if err := <-errB; err != nil {
		t.Fatal(err)
	}
	if got := values(c.Snapshot().Records); !reflect.DeepEqual(got, []float64{100}) {
		t.Errorf("records = %v", got)
	}
}

func TestRefetch_LaterIssueWins(t *testing.T) {
	ctx := context.Background()
	c, src := newBloodSugar(t)
	src.seed(bs("P1", 100, "2024-01-01"))
	_ = c.Select(ctx, "P1")

	// The first refresh hangs; a second one is issued and completes after a
	// further write. The first must not overwrite the second's result.
	release := src.gate("P1")
	slow := make(chan error, 1)
	go func() { slow <- c.Refresh(ctx) }()
	waitEntered(t, src, "P1")

	src.seed(bs("P1", 150, "2024-01-02"))
	if err := c.Refresh(ctx); err != nil {
		t.Fatal(err)
	}
	release()
	if err := <-slow; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("slow refresh error = %v, want ErrSuperseded", err)
	}
	if got := values(c.Snapshot().Records); !reflect.DeepEqual(got, []float64{150, 100}) {
		t.Errorf("records = %v", got)
	}
}

func TestFetchFailure_RetainsPreviousCollection(t *testing.T) {
	ctx := context.Background()
	c, src := newBloodSugar(t)
	src.seed(bs("P1", 100, "2024-01-01"))
	_ = c.Select(ctx, "P1")

	src.failList = true
	err := c.Refresh(ctx)
	if !isNetwork(err) {
		t.Fatalf("Refresh() error = %v, want network failure", err)
	}
	snap := c.Snapshot()
	if snap.State != StateError || !isNetwork(snap.Err) {
		t.Errorf("state = %v err = %v", snap.State, snap.Err)
	}
	if got := values(snap.Records); !reflect.DeepEqual(got, []float64{100}) {
		t.Errorf("records = %v, want previous collection", got)
	}

	// Error --select--> Loading --success--> Ready
	src.failList = false
	if err := c.Select(ctx, "P1"); err != nil {
		t.Fatal(err)
	}
	if snap := c.Snapshot(); snap.State != StateReady || snap.Err != nil {
		t.Errorf("after recovery = %+v", snap)
	}
}

func TestMutationFailure_LeavesStateUntouched(t *testing.T) {
	ctx := context.Background()
	c, src := newBloodSugar(t)
	src.seed(bs("P1", 100, "2024-01-01"))
	_ = c.Select(ctx, "P1")
	before := c.Snapshot()
	rec := before.Records[0]

	src.failCreate, src.failUpdate, src.failDelete = true, true, true
	if err := c.Add(ctx, bs("", 90, "2024-01-02")); !isNetwork(err) {
		t.Errorf("Add() error = %v", err)
	}
	if err := c.Edit(ctx, rec); !isNetwork(err) {
		t.Errorf("Edit() error = %v", err)
	}
	if err := c.Remove(ctx, rec.ID); !isNetwork(err) {
		t.Errorf("Remove() error = %v", err)
	}

	after := c.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("snapshot changed on failed mutations:\nbefore %+v\nafter  %+v", before, after)
	}
}

func TestMutation_Validation(t *testing.T) {
	ctx := context.Background()
	c, _ := newBloodSugar(t)

	if err := c.Add(ctx, bs("", 90, "2024-01-01")); !errors.Is(err, ErrNoScope) || !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Add() without scope error = %v", err)
	}
	if err := c.Refresh(ctx); !errors.Is(err, ErrNoScope) {
		t.Errorf("Refresh() without scope error = %v", err)
	}
	if err := c.Select(ctx, ""); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("Select(\"\") error = %v", err)
	}

	_ = c.Select(ctx, "P1")
	tests := []struct {
		name string
		run  func() error
	}{
		{"add with id", func() error {
			return c.Add(ctx, domain.BloodSugarMeasurement{ID: "x", Value: 90, MeasuredAt: "2024-01-01"})
		}},
		{"add for other scope", func() error { return c.Add(ctx, bs("P2", 90, "2024-01-01")) }},
		{"edit without id", func() error { return c.Edit(ctx, bs("P1", 90, "2024-01-01")) }},
		{"remove without id", func() error { return c.Remove(ctx, "") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestClear(t *testing.T) {
	ctx := context.Background()
	c, src := newBloodSugar(t)
	src.seed(bs("P1", 100, "2024-01-01"))
	_ = c.Select(ctx, "P1")

	release := src.gate("P1")
	pending := make(chan error, 1)
	go func() { pending <- c.Refresh(ctx) }()
	waitEntered(t, src, "P1")

	c.Clear()
	release()
	if err := <-pending; !errors.Is(err, ErrSuperseded) {
		t.Fatalf("in-flight refresh error = %v, want ErrSuperseded", err)
	}
	snap := c.Snapshot()
	if snap.State != StateIdle || !snap.Scope.IsZero() || snap.Records != nil {
		t.Errorf("snapshot after Clear = %+v", snap)
	}
}

func TestObserver_SeesTransitions(t *testing.T) {
	ctx := context.Background()
	src := newFakeSource(domain.BloodSugar)
	var states []State
	var last uint64
	c := New[domain.BloodSugarMeasurement](src, domain.BloodSugar,
		WithObserver(func(s Snapshot[domain.BloodSugarMeasurement]) {
			if s.Version <= last {
				t.Errorf("observer got version %d after %d", s.Version, last)
			}
			last = s.Version
			states = append(states, s.State)
		}),
	)

	_ = c.Select(ctx, "P1")
	src.failList = true
	_ = c.Refresh(ctx)
	c.Clear()

	want := []State{StateLoading, StateReady, StateLoading, StateError, StateIdle}
	if !reflect.DeepEqual(states, want) {
		t.Errorf("states = %v, want %v", states, want)
	}
}

func TestAdd_ScopeChangedDuringRefetch(t *testing.T) {
	ctx := context.Background()
	c, src := newBloodSugar(t)
	src.seed(bs("B", 100, "2024-01-01"))
	if err := c.Select(ctx, "A"); err != nil {
		t.Fatal(err)
	}

	release := src.gate("A")
	added := make(chan error, 1)
	go func() { added <- c.Add(ctx, bs("", 200, "2024-01-02")) }()
	waitEntered(t, src, "A")

	if err := c.Select(ctx, "B"); err != nil {
		t.Fatalf("Select(B) error = %v", err)
	}
	release()

	if err := <-added; err != nil {
		t.Fatalf("Add error = %v, want nil once the record is stored", err)
	}
	src.mu.Lock()
	stored := len(src.rows)
	src.mu.Unlock()
	if stored != 2 {
		t.Errorf("rows on server = %d, want 2", stored)
	}

	snap := c.Snapshot()
	if snap.Scope != "B" || snap.State != StateReady {
		t.Fatalf("snapshot = %+v", snap)
	}
	if got := values(snap.Records); !reflect.DeepEqual(got, []float64{100}) {
		t.Errorf("records = %v, want B's [100]", got)
	}
}

func TestRemove_ClearedDuringRefetch(t *testing.T) {
	ctx := context.Background()
	c, src := newBloodSugar(t)
	src.seed(bs("A", 100, "2024-01-01"))
	if err := c.Select(ctx, "A"); err != nil {
		t.Fatal(err)
	}
	id := c.Snapshot().Records[0].ID

	release := src.gate("A")
	removed := make(chan error, 1)
	go func() { removed <- c.Remove(ctx, id) }()
	waitEntered(t, src, "A")

	c.Clear()
	release()

	if err := <-removed; err != nil {
		t.Fatalf("Remove error = %v, want nil", err)
	}
	if snap := c.Snapshot(); snap.State != StateIdle || len(snap.Records) != 0 {
		t.Errorf("snapshot = %+v, want idle and empty", snap)
	}
}
