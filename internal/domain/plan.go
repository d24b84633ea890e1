package domain

import (
	"strings"
	"time"
)

type PlanStatus string

const (
	PlanPending   PlanStatus = "pending"
	PlanActive    PlanStatus = "active"
	PlanCompleted PlanStatus = "completed"
	PlanUnknown   PlanStatus = "unknown"
)

// ParsePlanStatus matches case-insensitively; anything unrecognized is
// PlanUnknown.
func ParsePlanStatus(s string) PlanStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return PlanPending
	case "active":
		return PlanActive
	case "completed":
		return PlanCompleted
	default:
		return PlanUnknown
	}
}

// PlanAssignment is an exercise or diet plan assigned to a patient.
type PlanAssignment struct {
	ID        ID         `json:"id,omitempty"`
	ScopeID   ID         `json:"scope_id"`
	Name      string     `json:"name"`
	Status    PlanStatus `json:"status"`
	StartDate string     `json:"start_date"`
	EndDate   string     `json:"end_date,omitempty"`
}

func (p PlanAssignment) RecordID() ID         { return p.ID }
func (p PlanAssignment) RecordScope() ID      { return p.ScopeID }
func (p PlanAssignment) Timestamp() time.Time { return timestampOrZero(p.StartDate) }

// PlanID is the identity accessor used by the plan selector.
func PlanID(p PlanAssignment) ID { return p.ID }

func planKind(name string) Kind[PlanAssignment] {
	return Kind[PlanAssignment]{
		Name: name,
		WithID: func(p PlanAssignment, id ID) PlanAssignment {
			p.ID = id
			return p
		},
		WithScope: func(p PlanAssignment, scope ID) PlanAssignment {
			p.ScopeID = scope
			return p
		},
		Validate: func(p PlanAssignment) error {
			if err := requireScope(name, p.ScopeID); err != nil {
				return err
			}
			if strings.TrimSpace(p.Name) == "" {
				return validationErr(name, "name is required")
			}
			if err := requireTimestamp(name, "start_date", p.StartDate); err != nil {
				return err
			}
			if p.EndDate != "" {
				return requireTimestamp(name, "end_date", p.EndDate)
			}
			return nil
		},
	}
}

var (
	Exercise = planKind("exercise-plans")
	Diet     = planKind("diet-plans")
)
