package clinical

import (
	"errors"
	"fmt"

	"github.com/Alijeyrad/glycare/internal/domain"
)

var (
	ErrRecordNotFound = fmt.Errorf("record %w", domain.ErrNotFound)
	ErrScopeMismatch  = fmt.Errorf("%w: record belongs to a different patient", domain.ErrValidation)
	ErrIDNotAllowed   = fmt.Errorf("%w: new records must not carry an id", domain.ErrValidation)
	ErrPublish        = errors.New("publish record event")
)
