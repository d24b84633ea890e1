// Package session carries the signed-in actor explicitly. Nothing in the
// client reads shared or global storage for it; callers construct a Session
// once and hand it to the remote client and the pages that need it.
package session

import (
	"fmt"
	"strings"

	"github.com/Alijeyrad/glycare/internal/domain"
)

type Role string

const (
	RoleDoctor  Role = "doctor"
	RolePatient Role = "patient"
)

// Session identifies who is using the client.
type Session struct {
	Role    Role
	ActorID domain.ID
}

func New(role string, actorID string) (Session, error) {
	s := Session{
		Role:    Role(strings.ToLower(strings.TrimSpace(role))),
		ActorID: domain.ID(strings.TrimSpace(actorID)),
	}
	return s, s.Validate()
}

func (s Session) Validate() error {
	if s.Role != RoleDoctor && s.Role != RolePatient {
		return fmt.Errorf("%w: unknown role %q", domain.ErrValidation, s.Role)
	}
	if s.ActorID.IsZero() {
		return fmt.Errorf("%w: actor id is required", domain.ErrValidation)
	}
	return nil
}

// ImplicitScope returns the fixed scope for patient sessions: a patient only
// ever sees their own records. Doctors have no implicit scope.
func (s Session) ImplicitScope() (domain.ID, bool) {
	if s.Role == RolePatient {
		return s.ActorID, true
	}
	return "", false
}

// Headers carrying the session on every remote call.
const (
	HeaderRole    = "X-Actor-Role"
	HeaderActorID = "X-Actor-Id"
)
