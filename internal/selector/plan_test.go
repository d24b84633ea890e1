package selector

import (
	"testing"

	"github.com/Alijeyrad/glycare/internal/domain"
)

func TestStatusGlyph(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"completed", GlyphCompleted},
		{"Completed", GlyphCompleted},
		{"ACTIVE", GlyphActive},
		{"pending", GlyphPending},
		{"archived", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := StatusGlyph(tt.status); got != tt.want {
			t.Errorf("StatusGlyph(%q) = %q, want %q", tt.status, got, tt.want)
		}
	}
}

func TestDateRange(t *testing.T) {
	open := domain.PlanAssignment{StartDate: "2024-01-01"}
	if got := DateRange(open); got != "2024-01-01" {
		t.Errorf("DateRange(open) = %q", got)
	}
	closed := domain.PlanAssignment{StartDate: "2024-01-01", EndDate: "2024-02-01"}
	if got := DateRange(closed); got != "2024-01-01 to 2024-02-01" {
		t.Errorf("DateRange(closed) = %q", got)
	}
}

func plans() []domain.PlanAssignment {
	return []domain.PlanAssignment{
		{ID: "x1", ScopeID: "p1", Name: "Morning walk", Status: "active", StartDate: "2024-01-01"},
		{ID: "x2", ScopeID: "p1", Name: "Swimming", Status: "Completed", StartDate: "2023-06-01", EndDate: "2023-09-01"},
	}
}

func TestPlanSelector_EditDeleteDoNotSelect(t *testing.T) {
	var selected, edited, deleted []domain.ID
	ps := NewPlanSelector(PlanHandlers{
		OnSelect: func(p domain.PlanAssignment) { selected = append(selected, p.ID) },
		OnEdit:   func(p domain.PlanAssignment) { edited = append(edited, p.ID) },
		OnDelete: func(p domain.PlanAssignment) { deleted = append(deleted, p.ID) },
	})
	if err := ps.SetItems(plans()); err != nil {
		t.Fatal(err)
	}

	if err := ps.Edit("x2"); err != nil {
		t.Fatalf("Edit() error = %v", err)
	}
	if err := ps.Delete("x2"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if len(selected) != 0 || !ps.SelectedID().IsZero() {
		t.Errorf("edit/delete triggered selection: %v", selected)
	}
	if len(edited) != 1 || len(deleted) != 1 {
		t.Errorf("edited=%v deleted=%v", edited, deleted)
	}

	if changed, err := ps.Click("x1"); err != nil || !changed {
		t.Fatalf("Click() = %v, %v", changed, err)
	}
	if len(selected) != 1 || selected[0] != "x1" {
		t.Errorf("selected = %v", selected)
	}
	if err := ps.Edit("nope"); err == nil {
		t.Error("Edit(unknown) should fail")
	}
}

func TestPlanSelector_Rows(t *testing.T) {
	ps := NewPlanSelector(PlanHandlers{})
	_ = ps.SetItems(plans())
	_, _ = ps.Click("x2")

	view := ps.Rows("")
	if view.NotFound || len(view.Rows) != 2 {
		t.Fatalf("Rows() = %+v", view)
	}
	r := view.Rows[1]
	if r.Glyph != GlyphCompleted || r.DateRange != "2023-06-01 to 2023-09-01" || !r.Selected {
		t.Errorf("row = %+v", r)
	}
	if view.Rows[0].Selected {
		t.Error("unselected row marked selected")
	}

	if v := ps.Rows("yoga"); !v.NotFound {
		t.Errorf("Rows(yoga) = %+v, want not-found", v)
	}
}
