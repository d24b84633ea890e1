package records

import (
	"slices"
	"time"

	"github.com/Alijeyrad/glycare/internal/domain"
)

// SortNewestFirst orders records by timestamp descending. Ties keep their
// incoming order. The input is not modified.
func SortNewestFirst[R domain.Record](in []R) []R {
	type keyed struct {
		ts  time.Time
		rec R
	}
	ks := make([]keyed, len(in))
	for i, r := range in {
		ks[i] = keyed{ts: r.Timestamp(), rec: r}
	}
	slices.SortStableFunc(ks, func(a, b keyed) int {
		return b.ts.Compare(a.ts)
	})

	out := make([]R, len(ks))
	for i, k := range ks {
		out[i] = k.rec
	}
	return out
}
