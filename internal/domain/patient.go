package domain

import (
	"strings"
	"time"
)

// Patient is a directory entry: the selectable entity plus the doctor whose
// list it belongs to. Its scope is the doctor.
type Patient struct {
	ScopedEntity
	DoctorID ID `json:"doctor_id"`
}

func (p Patient) RecordID() ID    { return p.ID }
func (p Patient) RecordScope() ID { return p.DoctorID }

// Timestamp is zero: directory entries have no clinical time.
func (p Patient) Timestamp() time.Time { return time.Time{} }

var Patients = Kind[Patient]{
	Name: "patients",
	WithID: func(p Patient, id ID) Patient {
		p.ID = id
		return p
	},
	WithScope: func(p Patient, doctor ID) Patient {
		p.DoctorID = doctor
		return p
	},
	Validate: func(p Patient) error {
		if p.DoctorID.IsZero() {
			return validationErr("patients", "doctor_id is required")
		}
		if strings.TrimSpace(p.DisplayName) == "" {
			return validationErr("patients", "display_name is required")
		}
		return nil
	},
}
