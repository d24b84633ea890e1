package domain

import (
	"strings"
	"time"
)

type SymptomReport struct {
	ID          ID     `json:"id,omitempty"`
	ScopeID     ID     `json:"scope_id"`
	Description string `json:"description"`
	Severity    string `json:"severity,omitempty"`
	ReportedAt  string `json:"reported_at"`
}

func (s SymptomReport) RecordID() ID         { return s.ID }
func (s SymptomReport) RecordScope() ID      { return s.ScopeID }
func (s SymptomReport) Timestamp() time.Time { return timestampOrZero(s.ReportedAt) }

var Symptom = Kind[SymptomReport]{
	Name: "symptoms",
	WithID: func(s SymptomReport, id ID) SymptomReport {
		s.ID = id
		return s
	},
	WithScope: func(s SymptomReport, scope ID) SymptomReport {
		s.ScopeID = scope
		return s
	},
	Validate: func(s SymptomReport) error {
		if err := requireScope("symptoms", s.ScopeID); err != nil {
			return err
		}
		if strings.TrimSpace(s.Description) == "" {
			return validationErr("symptoms", "description is required")
		}
		return requireTimestamp("symptoms", "reported_at", s.ReportedAt)
	},
}
