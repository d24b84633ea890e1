package remote

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/Alijeyrad/glycare/internal/domain"
)

// statusError maps a non-2xx response onto the domain error taxonomy.
func statusError(method, path string, status int, body []byte) error {
	if status >= 200 && status < 300 {
		return nil
	}

	msg := http.StatusText(status)
	var payload struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
		msg = payload.Error
	}

	var kind error
	switch {
	case status == http.StatusNotFound:
		kind = domain.ErrNotFound
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity || status == http.StatusConflict:
		kind = domain.ErrValidation
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		kind = domain.ErrForbidden
	default:
		kind = domain.ErrNetwork
	}
	return fmt.Errorf("%w: %s %s: %d %s", kind, method, path, status, msg)
}
