package domain

import (
	"encoding/json"
	"fmt"
)

// ID is an opaque identifier. Numeric identifiers travel as their decimal
// string form. The empty ID means "no entity".
type ID string

func (id ID) String() string { return string(id) }

// UnmarshalJSON accepts a JSON string or a JSON number. Numbers keep their
// literal decimal form, so 7 and "7" decode to the same ID.
func (id *ID) UnmarshalJSON(data []byte) error {
	switch {
	case string(data) == "null":
		*id = ""
		return nil
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: id must be a string or a number, got %s", ErrValidation, data)
	}
	*id = ID(n.String())
	return nil
}

// IsZero reports whether id is the empty identifier.
func (id ID) IsZero() bool { return id == "" }

// ScopedEntity is a selectable patient or doctor.
type ScopedEntity struct {
	ID             ID     `json:"id"`
	DisplayName    string `json:"display_name"`
	SecondaryLabel string `json:"secondary_label,omitempty"`
	Avatar         string `json:"avatar,omitempty"`
}

// EntityID is the identity accessor used by selectors over ScopedEntity.
func EntityID(e ScopedEntity) ID { return e.ID }
