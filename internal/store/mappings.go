package store

import "github.com/Alijeyrad/glycare/internal/domain"

const (
	typeText  = "text"
	typeFloat = "double precision"
)

var BloodSugarMapping = Mapping[domain.BloodSugarMeasurement]{
	Table: "blood_sugar_measurements",
	Columns: []Column{
		{"value", typeFloat},
		{"measured_at", typeText},
	},
	Values: func(m domain.BloodSugarMeasurement) []any {
		return []any{m.Value, m.MeasuredAt}
	},
	Scan: func(s Scanner) (domain.BloodSugarMeasurement, error) {
		var (
			m         domain.BloodSugarMeasurement
			id, scope string
		)
		err := s.Scan(&id, &scope, &m.Value, &m.MeasuredAt)
		m.ID, m.ScopeID = domain.ID(id), domain.ID(scope)
		return m, err
	},
}

var InsulinMapping = Mapping[domain.InsulinLogEntry]{
	Table: "insulin_logs",
	Columns: []Column{
		{"log_date", typeText},
		{"log_time", typeText},
		{"dosage", typeFloat},
		{"note", typeText},
	},
	Values: func(e domain.InsulinLogEntry) []any {
		return []any{e.LogDate, e.LogTime, e.Dosage, e.Note}
	},
	Scan: func(s Scanner) (domain.InsulinLogEntry, error) {
		var (
			e         domain.InsulinLogEntry
			id, scope string
		)
		err := s.Scan(&id, &scope, &e.LogDate, &e.LogTime, &e.Dosage, &e.Note)
		e.ID, e.ScopeID = domain.ID(id), domain.ID(scope)
		return e, err
	},
}

func planMapping(table string) Mapping[domain.PlanAssignment] {
	return Mapping[domain.PlanAssignment]{
		Table: table,
		Columns: []Column{
			{"name", typeText},
			{"status", typeText},
			{"start_date", typeText},
			{"end_date", typeText},
		},
		Values: func(p domain.PlanAssignment) []any {
			return []any{p.Name, string(p.Status), p.StartDate, p.EndDate}
		},
		Scan: func(s Scanner) (domain.PlanAssignment, error) {
			var (
				p                 domain.PlanAssignment
				id, scope, status string
			)
			err := s.Scan(&id, &scope, &p.Name, &status, &p.StartDate, &p.EndDate)
			p.ID, p.ScopeID = domain.ID(id), domain.ID(scope)
			p.Status = domain.ParsePlanStatus(status)
			return p, err
		},
	}
}

var (
	ExerciseMapping = planMapping("exercise_plans")
	DietMapping     = planMapping("diet_plans")
)

var SymptomMapping = Mapping[domain.SymptomReport]{
	Table: "symptom_reports",
	Columns: []Column{
		{"description", typeText},
		{"severity", typeText},
		{"reported_at", typeText},
	},
	Values: func(r domain.SymptomReport) []any {
		return []any{r.Description, r.Severity, r.ReportedAt}
	},
	Scan: func(s Scanner) (domain.SymptomReport, error) {
		var (
			r         domain.SymptomReport
			id, scope string
		)
		err := s.Scan(&id, &scope, &r.Description, &r.Severity, &r.ReportedAt)
		r.ID, r.ScopeID = domain.ID(id), domain.ID(scope)
		return r, err
	},
}

// PatientMapping stores the doctor in scope_id.
var PatientMapping = Mapping[domain.Patient]{
	Table: "patients",
	Columns: []Column{
		{"display_name", typeText},
		{"secondary_label", typeText},
		{"avatar", typeText},
	},
	Values: func(p domain.Patient) []any {
		return []any{p.DisplayName, p.SecondaryLabel, p.Avatar}
	},
	Scan: func(s Scanner) (domain.Patient, error) {
		var (
			p          domain.Patient
			id, doctor string
		)
		err := s.Scan(&id, &doctor, &p.DisplayName, &p.SecondaryLabel, &p.Avatar)
		p.ID, p.DoctorID = domain.ID(id), domain.ID(doctor)
		return p, err
	},
}
