package patient

import (
	"fmt"

	"github.com/Alijeyrad/glycare/internal/domain"
)

var (
	ErrPatientNotFound = fmt.Errorf("patient %w", domain.ErrNotFound)
	ErrAccessDenied    = fmt.Errorf("%w: patient belongs to another doctor", domain.ErrForbidden)
)
