package domain

import (
	"fmt"
	"time"
)

// Record is a clinical record belonging to exactly one scope and ordered by a
// single authoritative timestamp.
type Record interface {
	RecordID() ID
	RecordScope() ID
	Timestamp() time.Time
}

// Kind describes one record kind: how to stamp identity and scope onto a
// value and how to validate it before it is sent or stored.
type Kind[R Record] struct {
	// Name is the wire and event name, e.g. "blood-sugar".
	Name      string
	WithID    func(R, ID) R
	WithScope func(R, ID) R
	Validate  func(R) error
}

func validationErr(kind, msg string) error {
	return fmt.Errorf("%w: %s: %s", ErrValidation, kind, msg)
}

func requireScope(kind string, scope ID) error {
	if scope.IsZero() {
		return validationErr(kind, "scope_id is required")
	}
	return nil
}

func requireTimestamp(kind, field, value string) error {
	if value == "" {
		return validationErr(kind, field+" is required")
	}
	if _, err := ParseTimestamp(value); err != nil {
		return validationErr(kind, field+" is not a valid date/time")
	}
	return nil
}
