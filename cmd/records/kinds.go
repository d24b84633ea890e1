package records

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"

	"github.com/Alijeyrad/glycare/cmd/cmdutil"
	"github.com/Alijeyrad/glycare/internal/domain"
	rc "github.com/Alijeyrad/glycare/internal/records"
	"github.com/Alijeyrad/glycare/internal/remote"
	"github.com/Alijeyrad/glycare/pkg/printers"
)

// fields holds every record field flag. Only the flags relevant to a kind
// are read, and on edit only the ones the user actually set.
type fields struct {
	value       float64
	measuredAt  string
	date        string
	time        string
	dosage      float64
	note        string
	name        string
	status      string
	start       string
	end         string
	description string
	severity    string
}

func (f *fields) register(fs *pflag.FlagSet) {
	fs.Float64Var(&f.value, "value", 0, "blood-sugar: value in mg/dL")
	fs.StringVar(&f.measuredAt, "at", "", "blood-sugar, symptoms: measured or reported at (YYYY-MM-DD HH:MM)")
	fs.StringVar(&f.date, "date", "", "insulin-logs: log date (YYYY-MM-DD)")
	fs.StringVar(&f.time, "time", "", "insulin-logs: log time (HH:MM)")
	fs.Float64Var(&f.dosage, "dosage", 0, "insulin-logs: units")
	fs.StringVar(&f.note, "note", "", "insulin-logs: free-text note")
	fs.StringVar(&f.name, "name", "", "plans: plan name")
	fs.StringVar(&f.status, "status", "", "plans: pending, active or completed")
	fs.StringVar(&f.start, "start", "", "plans: start date")
	fs.StringVar(&f.end, "end", "", "plans: end date")
	fs.StringVar(&f.description, "description", "", "symptoms: description")
	fs.StringVar(&f.severity, "severity", "", "symptoms: severity")
}

// binding ties one record kind to its remote resource, its field flags and
// its table renderer.
type binding[R domain.Record] struct {
	kind   domain.Kind[R]
	source func(*remote.Client) remote.Source[R]
	apply  func(R, *pflag.FlagSet, *fields) R
	render func(*printers.PrettyPrint, []R) error
}

// ops is a binding with the record type erased, so that kinds can sit in
// one table.
type ops struct {
	list   func(ctx context.Context, env *cmdutil.Env, scope domain.ID) error
	add    func(ctx context.Context, env *cmdutil.Env, scope domain.ID, fs *pflag.FlagSet, f *fields) error
	edit   func(ctx context.Context, env *cmdutil.Env, scope, id domain.ID, fs *pflag.FlagSet, f *fields) error
	remove func(ctx context.Context, env *cmdutil.Env, scope, id domain.ID) error
}

func (b binding[R]) controller(env *cmdutil.Env) *rc.Controller[R] {
	return rc.New(b.source(env.Client), b.kind, rc.WithLogger[R](env.Logger))
}

// show prints the controller's collection as of its last completed fetch.
func (b binding[R]) show(env *cmdutil.Env, c *rc.Controller[R]) error {
	return b.render(env.Printer, c.Snapshot().Records)
}

func (b binding[R]) ops() ops {
	return ops{
		list: func(ctx context.Context, env *cmdutil.Env, scope domain.ID) error {
			c := b.controller(env)
			if err := c.Select(ctx, scope); err != nil {
				return err
			}
			return b.show(env, c)
		},
		add: func(ctx context.Context, env *cmdutil.Env, scope domain.ID, fs *pflag.FlagSet, f *fields) error {
			c := b.controller(env)
			if err := c.Select(ctx, scope); err != nil {
				return err
			}
			var zero R
			rec := b.apply(zero, fs, f)
			if err := b.kind.Validate(b.kind.WithScope(rec, scope)); err != nil {
				return err
			}
			if err := c.Add(ctx, rec); err != nil {
				return err
			}
			return b.show(env, c)
		},
		edit: func(ctx context.Context, env *cmdutil.Env, scope, id domain.ID, fs *pflag.FlagSet, f *fields) error {
			c := b.controller(env)
			if err := c.Select(ctx, scope); err != nil {
				return err
			}
			current := c.Snapshot().Records
			i := slices.IndexFunc(current, func(r R) bool { return r.RecordID() == id })
			if i < 0 {
				return fmt.Errorf("%w: %s %s in scope %s", domain.ErrNotFound, b.kind.Name, id, scope)
			}
			rec := b.apply(current[i], fs, f)
			if err := b.kind.Validate(rec); err != nil {
				return err
			}
			if err := c.Edit(ctx, rec); err != nil {
				return err
			}
			return b.show(env, c)
		},
		remove: func(ctx context.Context, env *cmdutil.Env, scope, id domain.ID) error {
			c := b.controller(env)
			if err := c.Select(ctx, scope); err != nil {
				return err
			}
			if err := c.Remove(ctx, id); err != nil {
				return err
			}
			return b.show(env, c)
		},
	}
}

var bloodSugar = binding[domain.BloodSugarMeasurement]{
	kind: domain.BloodSugar,
	source: func(c *remote.Client) remote.Source[domain.BloodSugarMeasurement] {
		return c.BloodSugar()
	},
	apply: func(m domain.BloodSugarMeasurement, fs *pflag.FlagSet, f *fields) domain.BloodSugarMeasurement {
		if fs.Changed("value") {
			m.Value = f.value
		}
		if fs.Changed("at") {
			m.MeasuredAt = f.measuredAt
		}
		return m
	},
	render: func(pp *printers.PrettyPrint, ms []domain.BloodSugarMeasurement) error {
		pp.BloodSugar(ms)
		return nil
	},
}

var insulin = binding[domain.InsulinLogEntry]{
	kind: domain.Insulin,
	source: func(c *remote.Client) remote.Source[domain.InsulinLogEntry] {
		return c.Insulin()
	},
	apply: func(e domain.InsulinLogEntry, fs *pflag.FlagSet, f *fields) domain.InsulinLogEntry {
		if fs.Changed("date") {
			e.LogDate = f.date
		}
		if fs.Changed("time") {
			e.LogTime = f.time
		}
		if fs.Changed("dosage") {
			e.Dosage = f.dosage
		}
		if fs.Changed("note") {
			e.Note = f.note
		}
		return e
	},
	render: func(pp *printers.PrettyPrint, es []domain.InsulinLogEntry) error {
		pp.Insulin(es)
		return nil
	},
}

var symptoms = binding[domain.SymptomReport]{
	kind: domain.Symptom,
	source: func(c *remote.Client) remote.Source[domain.SymptomReport] {
		return c.Symptoms()
	},
	apply: func(s domain.SymptomReport, fs *pflag.FlagSet, f *fields) domain.SymptomReport {
		if fs.Changed("description") {
			s.Description = f.description
		}
		if fs.Changed("severity") {
			s.Severity = f.severity
		}
		if fs.Changed("at") {
			s.ReportedAt = f.measuredAt
		}
		return s
	},
	render: func(pp *printers.PrettyPrint, ss []domain.SymptomReport) error {
		pp.Symptoms(ss)
		return nil
	},
}

func applyPlan(p domain.PlanAssignment, fs *pflag.FlagSet, f *fields) domain.PlanAssignment {
	if fs.Changed("name") {
		p.Name = f.name
	}
	if fs.Changed("status") {
		p.Status = domain.ParsePlanStatus(f.status)
	}
	if fs.Changed("start") {
		p.StartDate = f.start
	}
	if fs.Changed("end") {
		p.EndDate = f.end
	}
	return p
}

var exercise = binding[domain.PlanAssignment]{
	kind: domain.Exercise,
	source: func(c *remote.Client) remote.Source[domain.PlanAssignment] {
		return c.Exercise()
	},
	apply: applyPlan,
	render: func(pp *printers.PrettyPrint, ps []domain.PlanAssignment) error {
		v, err := planView(ps)
		if err != nil {
			return err
		}
		pp.Plans("Exercise plans", v)
		return nil
	},
}

var diet = binding[domain.PlanAssignment]{
	kind: domain.Diet,
	source: func(c *remote.Client) remote.Source[domain.PlanAssignment] {
		return c.Diet()
	},
	apply: applyPlan,
	render: func(pp *printers.PrettyPrint, ps []domain.PlanAssignment) error {
		v, err := planView(ps)
		if err != nil {
			return err
		}
		pp.Plans("Diet plans", v)
		return nil
	},
}

// kinds maps the wire name of each record kind to its operations.
var kinds = map[string]ops{
	domain.BloodSugar.Name: bloodSugar.ops(),
	domain.Insulin.Name:    insulin.ops(),
	domain.Exercise.Name:   exercise.ops(),
	domain.Diet.Name:       diet.ops(),
	domain.Symptom.Name:    symptoms.ops(),
}

func kindNames() []string {
	names := make([]string, 0, len(kinds))
	for n := range kinds {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

func lookup(name string) (ops, error) {
	o, ok := kinds[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return ops{}, fmt.Errorf("%w: unknown record kind %q (one of %s)",
			domain.ErrValidation, name, strings.Join(kindNames(), ", "))
	}
	return o, nil
}
