package clinical

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/Alijeyrad/glycare/internal/domain"
	"github.com/Alijeyrad/glycare/internal/store"
	"github.com/Alijeyrad/glycare/pkg/logs"
)

type recordingPublisher struct {
	mu   sync.Mutex
	msgs map[string][]byte
	fail error
}

func (p *recordingPublisher) Publish(subject string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail != nil {
		return p.fail
	}
	if p.msgs == nil {
		p.msgs = make(map[string][]byte)
	}
	p.msgs[subject] = data
	return nil
}

func newBloodSugar(t *testing.T) (Service[domain.BloodSugarMeasurement], *recordingPublisher) {
	t.Helper()
	pub := &recordingPublisher{}
	svc := New(domain.BloodSugar, store.NewMemoryTable[domain.BloodSugarMeasurement](), pub, logs.Discard())
	return svc, pub
}

func TestCreate(t *testing.T) {
	svc, pub := newBloodSugar(t)
	ctx := context.Background()

	got, err := svc.Create(ctx, "p1", domain.BloodSugarMeasurement{Value: 200, MeasuredAt: "2024-03-01T08:00"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if got.ID.IsZero() || got.ScopeID != "p1" {
		t.Fatalf("Create() = %+v, want id assigned and scope p1", got)
	}

	raw, ok := pub.msgs["glycare.blood-sugar.created.p1"]
	if !ok {
		t.Fatalf("no event published, got subjects %v", pub.msgs)
	}
	var ev Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		t.Fatal(err)
	}
	if ev.ID != got.ID || ev.Op != OpCreated || ev.Kind != "blood-sugar" {
		t.Errorf("event = %+v", ev)
	}

	list, _ := svc.List(ctx, "p1")
	if len(list) != 1 || list[0] != got {
		t.Errorf("List() = %+v", list)
	}
}

func TestCreate_Rejects(t *testing.T) {
	svc, pub := newBloodSugar(t)
	ctx := context.Background()

	tests := []struct {
		name string
		rec  domain.BloodSugarMeasurement
		want error
	}{
		{"client id", domain.BloodSugarMeasurement{ID: "x", Value: 100, MeasuredAt: "2024-01-01"}, ErrIDNotAllowed},
		{"foreign scope", domain.BloodSugarMeasurement{ScopeID: "p2", Value: 100, MeasuredAt: "2024-01-01"}, ErrScopeMismatch},
		{"bad value", domain.BloodSugarMeasurement{Value: 0, MeasuredAt: "2024-01-01"}, domain.ErrValidation},
		{"bad time", domain.BloodSugarMeasurement{Value: 90, MeasuredAt: "yesterday"}, domain.ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, "p1", tt.rec); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
	if len(pub.msgs) != 0 {
		t.Errorf("events published for rejected creates: %v", pub.msgs)
	}
}

func TestUpdate(t *testing.T) {
	svc, pub := newBloodSugar(t)
	ctx := context.Background()
	created, _ := svc.Create(ctx, "p1", domain.BloodSugarMeasurement{Value: 90, MeasuredAt: "2024-03-01T08:00"})

	updated, err := svc.Update(ctx, created.ID, domain.BloodSugarMeasurement{Value: 250, MeasuredAt: "2024-03-01T08:00"})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.ID != created.ID || updated.ScopeID != "p1" || updated.Value != 250 {
		t.Errorf("Update() = %+v", updated)
	}
	if _, ok := pub.msgs["glycare.blood-sugar.updated.p1"]; !ok {
		t.Error("no update event")
	}

	if _, err := svc.Update(ctx, created.ID, domain.BloodSugarMeasurement{ScopeID: "p2", Value: 1, MeasuredAt: "2024-01-01"}); !errors.Is(err, ErrScopeMismatch) {
		t.Errorf("move scope: err = %v, want ErrScopeMismatch", err)
	}
	if _, err := svc.Update(ctx, "missing", updated); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing: err = %v, want not found", err)
	}
}

func TestDelete(t *testing.T) {
	svc, pub := newBloodSugar(t)
	ctx := context.Background()
	created, _ := svc.Create(ctx, "p1", domain.BloodSugarMeasurement{Value: 90, MeasuredAt: "2024-03-01T08:00"})

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok := pub.msgs["glycare.blood-sugar.deleted.p1"]; !ok {
		t.Error("no delete event")
	}
	if list, _ := svc.List(ctx, "p1"); len(list) != 0 {
		t.Errorf("List() after delete = %+v", list)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("second Delete() err = %v, want ErrRecordNotFound", err)
	}
}

func TestPublishFailureDoesNotFailMutation(t *testing.T) {
	pub := &recordingPublisher{fail: errors.New("nats down")}
	svc := New(domain.Symptom, store.NewMemoryTable[domain.SymptomReport](), pub, logs.Discard())

	if _, err := svc.Create(context.Background(), "p1", domain.SymptomReport{Description: "dizzy", ReportedAt: "2024-01-01"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
}

func TestNilPublisher(t *testing.T) {
	svc := New(domain.Exercise, store.NewMemoryTable[domain.PlanAssignment](), nil, nil)
	if _, err := svc.Create(context.Background(), "p1", domain.PlanAssignment{Name: "Walk", StartDate: "2024-01-01"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
}

func TestSubject(t *testing.T) {
	if got := Subject("blood-sugar", "*", "*"); got != "glycare.blood-sugar.*.*" {
		t.Errorf("Subject() = %q", got)
	}
}
