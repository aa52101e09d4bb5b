package cooldown

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/SpellcastersBot_Go/internal/metrics"
)

// Service tracks per-user command cooldowns in memory
type Service interface {
	// Check reports the remaining cooldown of a user's command.
	// Returns 0 when the command is allowed, in which case the use is recorded.
	Check(command, userID string, d time.Duration) time.Duration

	// Enforce is Check returning ErrOnCooldown when the command is not allowed
	Enforce(command, userID string, d time.Duration) error

	// Reset clears a user's cooldown for a command
	Reset(command, userID string)
}

// ErrOnCooldown is returned when a command is still on cooldown
type ErrOnCooldown struct {
	Command   string
	Remaining time.Duration
}

func (e ErrOnCooldown) Error() string {
	total := Seconds(e.Remaining)
	minutes := total / SecondsPerMinute
	seconds := total % SecondsPerMinute

	if minutes > 0 {
		return fmt.Sprintf(ErrFmtCooldownWithMinutes, minutes, seconds, e.Command)
	}
	return fmt.Sprintf(ErrFmtCooldownSecondsOnly, seconds, e.Command)
}

// Is allows errors.Is() to work with ErrOnCooldown
func (e ErrOnCooldown) Is(target error) bool {
	_, ok := target.(ErrOnCooldown)
	return ok
}

// Seconds rounds a remaining duration up to whole seconds
func Seconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int((d + time.Second - 1) / time.Second)
}

// Option configures the tracker
type Option func(*tracker)

// WithClock replaces the wall clock, for tests
func WithClock(now func() time.Time) Option {
	return func(t *tracker) { t.now = now }
}

// WithMaxEntries bounds the number of tracked (command, user) pairs
func WithMaxEntries(n int) Option {
	return func(t *tracker) { t.maxEntries = n }
}

// WithMaxCooldown sets how long entries may be retained
func WithMaxCooldown(d time.Duration) Option {
	return func(t *tracker) { t.maxCooldown = d }
}

type tracker struct {
	mu          sync.Mutex
	now         func() time.Time
	maxEntries  int
	maxCooldown time.Duration
	readyAt     *expirable.LRU[string, time.Time]
}

// NewService creates an in-memory cooldown tracker
func NewService(opts ...Option) Service {
	t := &tracker{
		now:         time.Now,
		maxEntries:  DefaultMaxEntries,
		maxCooldown: DefaultMaxCooldown,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.readyAt = expirable.NewLRU[string, time.Time](t.maxEntries, nil, t.maxCooldown)
	return t
}

func (t *tracker) Check(command, userID string, d time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	// Entries are evicted after maxCooldown, longer cooldowns could not be honored
	if t.maxCooldown > 0 && d > t.maxCooldown {
		slog.Warn(LogMsgCooldownClamped, "command", command, "cooldown", d, "max", t.maxCooldown)
		d = t.maxCooldown
	}

	key := command + KeySeparator + userID

	// Check and record must happen atomically per key
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.now()
	if readyAt, ok := t.readyAt.Get(key); ok && now.Before(readyAt) {
		remaining := readyAt.Sub(now)
		metrics.CooldownRejections.WithLabelValues(command).Inc()
		slog.Debug(LogMsgCooldownRejected, "command", command, "user_id", userID, "remaining", remaining)
		return remaining
	}

	t.readyAt.Add(key, now.Add(d))
	return 0
}

func (t *tracker) Enforce(command, userID string, d time.Duration) error {
	if remaining := t.Check(command, userID, d); remaining > 0 {
		return ErrOnCooldown{Command: command, Remaining: remaining}
	}
	return nil
}

func (t *tracker) Reset(command, userID string) {
	t.readyAt.Remove(command + KeySeparator + userID)
}
