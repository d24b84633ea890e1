// Package printers renders client state for the terminal.
package printers

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/Alijeyrad/glycare/internal/dashboard"
	"github.com/Alijeyrad/glycare/internal/domain"
	"github.com/Alijeyrad/glycare/internal/selector"
)

type PrettyPrint struct {
	Out    io.Writer
	ShowID bool
}

func New(showID bool) *PrettyPrint {
	return &PrettyPrint{Out: color.Output, ShowID: showID}
}

var (
	bold  = color.New(color.Bold).SprintFunc()
	faint = color.New(color.Faint).SprintFunc()
	alert = color.New(color.FgHiRed, color.Bold).SprintFunc()
	ok    = color.New(color.FgGreen).SprintFunc()
	mark  = color.New(color.FgHiYellow).SprintFunc()
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// None prints the empty-collection marker.
func (pp *PrettyPrint) None(what string) {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprintf(pp.out(), " no %s found\n\n", what)
}

func (pp *PrettyPrint) table(header ...any) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	if pp.ShowID {
		header = append([]any{bold("ID")}, header...)
	}
	tbl.AddRow(header...)
	return tbl
}

func (pp *PrettyPrint) row(tbl *uitable.Table, id domain.ID, cells ...any) {
	if pp.ShowID {
		cells = append([]any{mark(id.String())}, cells...)
	}
	tbl.AddRow(cells...)
}

func (pp *PrettyPrint) flush(tbl *uitable.Table) {
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out())
}

// Patients prints a scope selector view. The selected entity is starred.
func (pp *PrettyPrint) Patients(v selector.View[domain.ScopedEntity], selected domain.ID) {
	pp.TitleWithCount("Patients", len(v.Items))
	if v.NotFound {
		pp.None("patients")
		return
	}
	tbl := pp.table("", bold("Name"), bold("Label"))
	for _, e := range v.Items {
		star := " "
		if !selected.IsZero() && e.ID == selected {
			star = mark("*")
		}
		pp.row(tbl, e.ID, star, e.DisplayName, faint(e.SecondaryLabel))
	}
	pp.flush(tbl)
}

// BloodSugar prints measurements, highlighting values outside [70, 180].
func (pp *PrettyPrint) BloodSugar(ms []domain.BloodSugarMeasurement) {
	pp.TitleWithCount("Blood sugar", len(ms))
	if len(ms) == 0 {
		pp.None("measurements")
		return
	}
	tbl := pp.table(bold("Measured at"), bold("mg/dL"), "")
	for _, m := range ms {
		pp.row(tbl, m.ID, m.MeasuredAt, Value(m), Flag(m))
	}
	pp.flush(tbl)
}

// Value formats a measurement, in red when it is out of range.
func Value(m domain.BloodSugarMeasurement) string {
	s := strconv.FormatFloat(m.Value, 'f', -1, 64)
	if m.OutOfRange() {
		return alert(s)
	}
	return ok(s)
}

// Flag names the direction of an out-of-range measurement.
func Flag(m domain.BloodSugarMeasurement) string {
	switch {
	case m.Value < domain.BloodSugarLow:
		return alert("LOW")
	case m.Value > domain.BloodSugarHigh:
		return alert("HIGH")
	default:
		return ""
	}
}

func (pp *PrettyPrint) Insulin(es []domain.InsulinLogEntry) {
	pp.TitleWithCount("Insulin", len(es))
	if len(es) == 0 {
		pp.None("insulin logs")
		return
	}
	tbl := pp.table(bold("Date"), bold("Time"), bold("Units"), bold("Note"))
	for _, e := range es {
		pp.row(tbl, e.ID, e.LogDate, e.LogTime, strconv.FormatFloat(e.Dosage, 'f', -1, 64), faint(e.Note))
	}
	pp.flush(tbl)
}

func (pp *PrettyPrint) Symptoms(ss []domain.SymptomReport) {
	pp.TitleWithCount("Symptoms", len(ss))
	if len(ss) == 0 {
		pp.None("symptoms")
		return
	}
	tbl := pp.table(bold("Reported at"), bold("Severity"), bold("Description"))
	for _, s := range ss {
		pp.row(tbl, s.ID, s.ReportedAt, s.Severity, s.Description)
	}
	pp.flush(tbl)
}

// Plans prints a plan selector view with status glyphs.
func (pp *PrettyPrint) Plans(title string, v selector.PlanView) {
	pp.TitleWithCount(title, len(v.Rows))
	if v.NotFound {
		pp.None("plans")
		return
	}
	tbl := pp.table("", bold("Name"), bold("Period"), bold("Status"))
	for _, r := range v.Rows {
		name := r.Plan.Name
		if r.Selected {
			name = mark(name)
		}
		pp.row(tbl, r.Plan.ID, r.Glyph, name, r.DateRange, faint(string(r.Plan.Status)))
	}
	pp.flush(tbl)
}

func (pp *PrettyPrint) Dashboard(s dashboard.Stats) {
	pp.Title("Dashboard")
	tbl := uitable.New()
	tbl.Separator = "  "
	alerts := ok(strconv.Itoa(s.BloodSugarAlerts))
	if s.BloodSugarAlerts > 0 {
		alerts = alert(strconv.Itoa(s.BloodSugarAlerts))
	}
	tbl.AddRow(bold("Exercise plans"), s.ExerciseCount)
	tbl.AddRow(bold("Diet plans"), s.DietCount)
	tbl.AddRow(bold("Symptoms"), s.SymptomCount)
	tbl.AddRow(bold("Blood sugar readings"), s.BloodSugarCount)
	tbl.AddRow(bold("Out of range"), alerts)
	tbl.AddRow(faint("loaded"), faint(s.LoadedAt.Format("2006-01-02 15:04:05")))
	pp.flush(tbl)
}
