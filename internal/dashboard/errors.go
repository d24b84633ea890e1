package dashboard

import "errors"

// ErrDashboardUnavailable is the single dashboard-level failure reported when
// any of the underlying collections could not be fetched.
var ErrDashboardUnavailable = errors.New("dashboard statistics unavailable")
