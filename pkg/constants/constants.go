// Package constants defines application-wide constants for timeouts and
// scheduling.
package constants

import "time"

// Time-related constants
const (
	// DefaultTimeout is the default timeout for request-scoped operations.
	DefaultTimeout = 30 * time.Second

	// GracefulShutdownTimeout is the timeout for graceful server shutdown.
	GracefulShutdownTimeout = 30 * time.Second

	// WebSocketPingInterval is the interval for inbox WebSocket ping/pong.
	WebSocketPingInterval = 60 * time.Second

	// DefaultSchedulerInterval is the expiry sweeper's default wake period,
	// used if configuration doesn't override it.
	DefaultSchedulerInterval = 60 * time.Second
)

// Defaults for configuration values, mirrored from internal/config.
const (
	// DefaultKeyExpiryMinutes is how long a submission's key survives
	// before the sweeper destroys it.
	DefaultKeyExpiryMinutes = 60

	// DefaultPowDifficulty is the default number of required leading hex
	// zeros in the proof-of-work challenge.
	DefaultPowDifficulty = 6
)
