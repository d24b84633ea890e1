package middleware

import (
	"context"
	"errors"
	"testing"

	"github.com/Alijeyrad/glycare/internal/domain"
	"github.com/Alijeyrad/glycare/pkg/reqctx"
)

// ownedBy grants a doctor access to the listed patients only.
type ownedBy map[domain.ID]domain.ID

func (o ownedBy) CanAccess(_ context.Context, doctorID, patientID domain.ID) error {
	owner, ok := o[patientID]
	if !ok {
		return domain.ErrNotFound
	}
	if owner != doctorID {
		return domain.ErrForbidden
	}
	return nil
}

func TestCheckScope(t *testing.T) {
	access := ownedBy{"p1": "d1", "p2": "d2"}

	tests := []struct {
		name    string
		actor   reqctx.Actor
		scope   domain.ID
		wantErr error
	}{
		{name: "patient own scope", actor: reqctx.Actor{Role: "patient", ID: "p1"}, scope: "p1"},
		{name: "patient other scope", actor: reqctx.Actor{Role: "patient", ID: "p1"}, scope: "p2", wantErr: domain.ErrForbidden},
		{name: "doctor own patient", actor: reqctx.Actor{Role: "doctor", ID: "d1"}, scope: "p1"},
		{name: "doctor other patient", actor: reqctx.Actor{Role: "doctor", ID: "d1"}, scope: "p2", wantErr: domain.ErrForbidden},
		{name: "doctor unknown patient", actor: reqctx.Actor{Role: "doctor", ID: "d1"}, scope: "p9", wantErr: domain.ErrNotFound},
		{name: "unknown role", actor: reqctx.Actor{Role: "nurse", ID: "n1"}, scope: "p1", wantErr: domain.ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckScope(context.Background(), access, tt.actor, tt.scope)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
