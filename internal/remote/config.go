package remote

import (
	"time"

	"github.com/Alijeyrad/glycare/config"
)

// Config holds the client connection settings.
type Config struct {
	BaseURL        string
	TimeoutSeconds int
	UserAgent      string
}

// Timeout returns the per-request timeout as a duration
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// FromCentralConfig converts central config.ClientConfig to package Config
func FromCentralConfig(c config.ClientConfig) Config {
	return Config{
		BaseURL:        c.BaseURL,
		TimeoutSeconds: c.TimeoutSeconds,
		UserAgent:      c.UserAgent,
	}
}
