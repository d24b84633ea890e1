// Package remote is the client side of the records API: one resource per
// record kind, each satisfying Source.
package remote

import (
	"context"

	"github.com/Alijeyrad/glycare/internal/domain"
)

// Lister is the read half of a remote collection. Server ordering is not
// guaranteed.
type Lister[R any] interface {
	List(ctx context.Context, scope domain.ID) ([]R, error)
}

// Source is the remote source of truth for one record kind.
type Source[R any] interface {
	Lister[R]
	// Create sends a record without an ID and returns it with the
	// server-assigned ID.
	Create(ctx context.Context, r R) (R, error)
	Update(ctx context.Context, r R) (R, error)
	Delete(ctx context.Context, id domain.ID) error
}
