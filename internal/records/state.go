package records

import "github.com/Alijeyrad/glycare/internal/domain"

type State int

const (
	StateIdle State = iota
	StateLoading
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// Snapshot is a read-only copy of controller state.
type Snapshot[R domain.Record] struct {
	State State
	Scope domain.ID
	// Records is ordered by timestamp, newest first.
	Records []R
	// Err is the last fetch failure; set only in StateError.
	Err        error
	Generation uint64
	// Version increases on every state write. Observers use it to drop
	// snapshots delivered out of order.
	Version uint64
}
