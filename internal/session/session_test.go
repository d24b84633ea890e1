package session

import (
	"errors"
	"testing"

	"github.com/Alijeyrad/glycare/internal/domain"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		role    string
		actor   string
		wantErr bool
	}{
		{"doctor", "doctor", "d1", false},
		{"patient mixed case", " Patient ", "p1", false},
		{"unknown role", "nurse", "n1", true},
		{"missing actor", "doctor", "  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.role, tt.actor)
			if (err != nil) != tt.wantErr {
				t.Fatalf("New() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, domain.ErrValidation) {
				t.Errorf("New() error = %v, want ErrValidation", err)
			}
		})
	}
}

func TestImplicitScope(t *testing.T) {
	p := Session{Role: RolePatient, ActorID: "p9"}
	if scope, ok := p.ImplicitScope(); !ok || scope != "p9" {
		t.Errorf("patient ImplicitScope() = %q, %v", scope, ok)
	}
	d := Session{Role: RoleDoctor, ActorID: "d1"}
	if _, ok := d.ImplicitScope(); ok {
		t.Error("doctor should have no implicit scope")
	}
}
