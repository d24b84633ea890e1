package cmdutil

import (
	"errors"
	"testing"

	"github.com/Alijeyrad/glycare/internal/domain"
	"github.com/Alijeyrad/glycare/internal/session"
)

func TestResolveScope(t *testing.T) {
	doctor := session.Session{Role: session.RoleDoctor, ActorID: "d1"}
	patient := session.Session{Role: session.RolePatient, ActorID: "p1"}

	tests := []struct {
		name    string
		session session.Session
		flag    string
		want    domain.ID
		wantErr error
	}{
		{name: "doctor names patient", session: doctor, flag: "p9", want: "p9"},
		{name: "doctor without patient", session: doctor, wantErr: domain.ErrValidation},
		{name: "patient implicit", session: patient, want: "p1"},
		{name: "patient names self", session: patient, flag: "p1", want: "p1"},
		{name: "patient names other", session: patient, flag: "p2", wantErr: domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveScope(tt.session, tt.flag)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("scope = %q, want %q", got, tt.want)
			}
		})
	}
}
