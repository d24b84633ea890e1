package domain

import "time"

// Blood-sugar alert thresholds in mg/dL. The normal range [70, 180] is
// inclusive on both ends.
const (
	BloodSugarLow  = 70.0
	BloodSugarHigh = 180.0
)

// IsOutOfRange reports whether a blood-sugar value triggers an alert.
func IsOutOfRange(value float64) bool {
	return value > BloodSugarHigh || value < BloodSugarLow
}

type BloodSugarMeasurement struct {
	ID         ID      `json:"id,omitempty"`
	ScopeID    ID      `json:"scope_id"`
	Value      float64 `json:"value"`
	MeasuredAt string  `json:"measured_at"`
}

func (m BloodSugarMeasurement) RecordID() ID         { return m.ID }
func (m BloodSugarMeasurement) RecordScope() ID      { return m.ScopeID }
func (m BloodSugarMeasurement) Timestamp() time.Time { return timestampOrZero(m.MeasuredAt) }

// OutOfRange reports whether this measurement is an alert.
func (m BloodSugarMeasurement) OutOfRange() bool { return IsOutOfRange(m.Value) }

var BloodSugar = Kind[BloodSugarMeasurement]{
	Name: "blood-sugar",
	WithID: func(m BloodSugarMeasurement, id ID) BloodSugarMeasurement {
		m.ID = id
		return m
	},
	WithScope: func(m BloodSugarMeasurement, scope ID) BloodSugarMeasurement {
		m.ScopeID = scope
		return m
	},
	Validate: func(m BloodSugarMeasurement) error {
		if err := requireScope("blood-sugar", m.ScopeID); err != nil {
			return err
		}
		if m.Value <= 0 {
			return validationErr("blood-sugar", "value must be positive")
		}
		return requireTimestamp("blood-sugar", "measured_at", m.MeasuredAt)
	},
}
