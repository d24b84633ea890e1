package domain

import (
	"strings"
	"time"
)

type InsulinLogEntry struct {
	ID      ID      `json:"id,omitempty"`
	ScopeID ID      `json:"scope_id"`
	LogDate string  `json:"log_date"`
	LogTime string  `json:"log_time"`
	Dosage  float64 `json:"dosage"`
	Note    string  `json:"note,omitempty"`
}

func (e InsulinLogEntry) RecordID() ID    { return e.ID }
func (e InsulinLogEntry) RecordScope() ID { return e.ScopeID }

// Timestamp combines the log date and time. A missing time means midnight.
func (e InsulinLogEntry) Timestamp() time.Time { return timestampOrZero(e.when()) }

func (e InsulinLogEntry) when() string {
	if strings.TrimSpace(e.LogTime) == "" {
		return e.LogDate
	}
	return strings.TrimSpace(e.LogDate) + " " + strings.TrimSpace(e.LogTime)
}

var Insulin = Kind[InsulinLogEntry]{
	Name: "insulin-logs",
	WithID: func(e InsulinLogEntry, id ID) InsulinLogEntry {
		e.ID = id
		return e
	},
	WithScope: func(e InsulinLogEntry, scope ID) InsulinLogEntry {
		e.ScopeID = scope
		return e
	},
	Validate: func(e InsulinLogEntry) error {
		if err := requireScope("insulin-logs", e.ScopeID); err != nil {
			return err
		}
		if e.Dosage <= 0 {
			return validationErr("insulin-logs", "dosage must be positive")
		}
		if e.LogDate == "" {
			return validationErr("insulin-logs", "log_date is required")
		}
		return requireTimestamp("insulin-logs", "log_date/log_time", e.when())
	},
}
