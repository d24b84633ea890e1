package selector

import (
	"strings"

	"github.com/Alijeyrad/glycare/internal/domain"
)

// Status glyphs shown next to plan rows.
const (
	GlyphCompleted = "✓"
	GlyphActive    = "●"
	GlyphPending   = "○"
)

// StatusGlyph returns the glyph for a raw status string, or "" when the
// status is not recognized.
func StatusGlyph(status string) string {
	switch domain.ParsePlanStatus(status) {
	case domain.PlanCompleted:
		return GlyphCompleted
	case domain.PlanActive:
		return GlyphActive
	case domain.PlanPending:
		return GlyphPending
	default:
		return ""
	}
}

// DateRange formats the plan period. The end date is shown only when set.
func DateRange(p domain.PlanAssignment) string {
	if strings.TrimSpace(p.EndDate) == "" {
		return p.StartDate
	}
	return p.StartDate + " to " + p.EndDate
}

// PlanRow is one rendered row of the plan picker.
type PlanRow struct {
	Plan      domain.PlanAssignment
	Glyph     string
	DateRange string
	Selected  bool
}

type PlanView struct {
	Rows     []PlanRow
	NotFound bool
}

// PlanSelector is the picker over exercise or diet plan assignments. Row
// clicks select; the edit and delete controls act on a row without
// selecting it.
type PlanSelector struct {
	*Selector[domain.PlanAssignment]

	onEdit   func(domain.PlanAssignment)
	onDelete func(domain.PlanAssignment)
}

type PlanHandlers struct {
	OnSelect func(domain.PlanAssignment)
	OnEdit   func(domain.PlanAssignment)
	OnDelete func(domain.PlanAssignment)
}

func NewPlanSelector(h PlanHandlers) *PlanSelector {
	var opts []Option[domain.PlanAssignment]
	if h.OnSelect != nil {
		opts = append(opts, WithOnSelect(h.OnSelect))
	}
	return &PlanSelector{
		Selector: New(domain.PlanID, func(p domain.PlanAssignment) []string {
			return []string{p.Name, string(p.Status)}
		}, opts...),
		onEdit:   h.OnEdit,
		onDelete: h.OnDelete,
	}
}

func (ps *PlanSelector) Rows(query string) PlanView {
	items := ps.Filter(query)
	rows := make([]PlanRow, 0, len(items))
	for _, p := range items {
		rows = append(rows, PlanRow{
			Plan:      p,
			Glyph:     StatusGlyph(string(p.Status)),
			DateRange: DateRange(p),
			Selected:  ps.IsSelected(p.ID),
		})
	}
	return PlanView{Rows: rows, NotFound: len(rows) == 0}
}

// Click handles a click on the row body.
func (ps *PlanSelector) Click(id domain.ID) (bool, error) {
	return ps.Select(id)
}

// Edit handles the row's edit control. Selection is left alone.
func (ps *PlanSelector) Edit(id domain.ID) error {
	p, err := ps.lookup(id)
	if err != nil {
		return err
	}
	if ps.onEdit != nil {
		ps.onEdit(p)
	}
	return nil
}

// Delete handles the row's delete control. Selection is left alone.
func (ps *PlanSelector) Delete(id domain.ID) error {
	p, err := ps.lookup(id)
	if err != nil {
		return err
	}
	if ps.onDelete != nil {
		ps.onDelete(p)
	}
	return nil
}

func (ps *PlanSelector) lookup(id domain.ID) (domain.PlanAssignment, error) {
	i, ok := ps.index[id]
	if !ok {
		return domain.PlanAssignment{}, ErrNotFound
	}
	return ps.items[i], nil
}
