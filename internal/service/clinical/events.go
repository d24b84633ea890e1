package clinical

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/Alijeyrad/glycare/internal/domain"
)

type Op string

const (
	OpCreated Op = "created"
	OpUpdated Op = "updated"
	OpDeleted Op = "deleted"
)

// SubjectPrefix namespaces every record event.
const SubjectPrefix = "glycare"

// Publisher is satisfied by *nats.Conn.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// Event is the payload published after each successful mutation.
type Event struct {
	Kind   string          `json:"kind"`
	Op     Op              `json:"op"`
	Scope  domain.ID       `json:"scope_id"`
	ID     domain.ID       `json:"id"`
	At     time.Time       `json:"at"`
	Record json.RawMessage `json:"record,omitempty"`
}

// Subject is glycare.<kind>.<op>.<scope>.
func (e Event) Subject() string {
	return Subject(e.Kind, e.Op, e.Scope.String())
}

// Subject builds an event subject; pass "*" for any token to subscribe.
func Subject(kind string, op Op, scope string) string {
	return fmt.Sprintf("%s.%s.%s.%s", SubjectPrefix, kind, op, scope)
}
