package cooldown

import "time"

// =============================================================================
// Capacity Constants
// =============================================================================

const (
	// DefaultMaxEntries bounds the number of (command, user) pairs tracked at once.
	// The least recently used pair is evicted first when the bound is reached.
	DefaultMaxEntries = 10000

	// DefaultMaxCooldown is the longest cooldown the tracker retains entries for
	DefaultMaxCooldown = time.Hour
)

// =============================================================================
// Key Constants
// =============================================================================

const (
	// KeySeparator joins the command name and the user ID into a tracker key
	KeySeparator = ":"
)

// =============================================================================
// Error Message Format Strings (for ErrOnCooldown.Error())
// =============================================================================

const (
	// ErrFmtCooldownWithMinutes formats cooldown error with minutes and seconds
	ErrFmtCooldownWithMinutes = "Please wait %dm %ds before using /%s again."

	// ErrFmtCooldownSecondsOnly formats cooldown error with seconds only
	ErrFmtCooldownSecondsOnly = "Please wait %ds before using /%s again."
)

// =============================================================================
// Log Message Constants
// =============================================================================

const (
	// LogMsgCooldownRejected is logged when a command is rejected by its cooldown
	LogMsgCooldownRejected = "Command rejected by cooldown"

	// LogMsgCooldownClamped is logged when a cooldown exceeds the retention window
	LogMsgCooldownClamped = "Cooldown longer than tracker retention, clamping"
)

// =============================================================================
// Time Conversion Constants
// =============================================================================

const (
	// SecondsPerMinute is used for time duration calculations
	SecondsPerMinute = 60
)
