package records

import (
	"errors"
	"fmt"

	"github.com/Alijeyrad/glycare/internal/domain"
)

var (
	// ErrSuperseded is returned when a fetch completed after a newer fetch
	// or a scope change was issued; its result was discarded.
	ErrSuperseded = errors.New("records: fetch superseded by a newer request")

	ErrNoScope = fmt.Errorf("%w: no scope selected", domain.ErrValidation)
)
