package cooldown_test

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SpellcastersBot_Go/internal/cooldown"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTracker(t *testing.T) (cooldown.Service, *clock) {
	t.Helper()
	c := &clock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	return cooldown.NewService(cooldown.WithClock(c.Now)), c
}

func TestCheck(t *testing.T) {
	t.Run("first use is allowed", func(t *testing.T) {
		svc, _ := newTracker(t)
		assert.Zero(t, svc.Check("search", "u1", 3*time.Second))
	})

	t.Run("second use reports remaining time", func(t *testing.T) {
		svc, c := newTracker(t)
		require.Zero(t, svc.Check("search", "u1", 3*time.Second))

		c.Advance(time.Second)

		assert.Equal(t, 2*time.Second, svc.Check("search", "u1", 3*time.Second))
	})

	t.Run("rejection does not extend the cooldown", func(t *testing.T) {
		svc, c := newTracker(t)
		require.Zero(t, svc.Check("search", "u1", 3*time.Second))
		c.Advance(2 * time.Second)
		require.Equal(t, time.Second, svc.Check("search", "u1", 3*time.Second))

		c.Advance(time.Second)

		assert.Zero(t, svc.Check("search", "u1", 3*time.Second))
	})

	t.Run("users and commands are independent", func(t *testing.T) {
		svc, _ := newTracker(t)
		require.Zero(t, svc.Check("search", "u1", time.Minute))

		assert.Zero(t, svc.Check("search", "u2", time.Minute))
		assert.Zero(t, svc.Check("hero", "u1", time.Minute))
	})

	t.Run("zero duration never blocks", func(t *testing.T) {
		svc, _ := newTracker(t)
		assert.Zero(t, svc.Check("ping", "u1", 0))
		assert.Zero(t, svc.Check("ping", "u1", 0))
	})

	t.Run("reset clears the cooldown", func(t *testing.T) {
		svc, _ := newTracker(t)
		require.Zero(t, svc.Check("search", "u1", time.Minute))

		svc.Reset("search", "u1")

		assert.Zero(t, svc.Check("search", "u1", time.Minute))
	})
}

func TestCheck_ConcurrentUsesAllowOnce(t *testing.T) {
	svc, _ := newTracker(t)

	var allowed atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if svc.Check("random", "u1", time.Minute) == 0 {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), allowed.Load())
}

func TestCheck_CooldownClampedToRetention(t *testing.T) {
	c := &clock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc := cooldown.NewService(cooldown.WithClock(c.Now), cooldown.WithMaxCooldown(time.Minute))

	require.Zero(t, svc.Check("refresh", "u1", 5*time.Minute))

	c.Advance(30 * time.Second)
	assert.Equal(t, 30*time.Second, svc.Check("refresh", "u1", 5*time.Minute))

	c.Advance(31 * time.Second)
	assert.Zero(t, svc.Check("refresh", "u1", 5*time.Minute))
}

func TestEnforce(t *testing.T) {
	svc, c := newTracker(t)
	require.NoError(t, svc.Enforce("compare", "u1", 5*time.Second))

	c.Advance(1500 * time.Millisecond)
	err := svc.Enforce("compare", "u1", 5*time.Second)

	require.Error(t, err)
	assert.True(t, errors.Is(err, cooldown.ErrOnCooldown{}))
	var onCooldown cooldown.ErrOnCooldown
	require.True(t, errors.As(err, &onCooldown))
	assert.Equal(t, "compare", onCooldown.Command)
	assert.Equal(t, 3500*time.Millisecond, onCooldown.Remaining)
	assert.Equal(t, fmt.Sprintf(cooldown.ErrFmtCooldownSecondsOnly, 4, "compare"), err.Error())
}

// TestErrOnCooldown_Error tests the error message formatting
func TestErrOnCooldown_Error(t *testing.T) {
	tests := []struct {
		name string
		err  cooldown.ErrOnCooldown
		want string
	}{
		{
			name: "minutes and seconds",
			err:  cooldown.ErrOnCooldown{Command: "refresh", Remaining: 2*time.Minute + 30*time.Second},
			want: fmt.Sprintf(cooldown.ErrFmtCooldownWithMinutes, 2, 30, "refresh"),
		},
		{
			name: "seconds only",
			err:  cooldown.ErrOnCooldown{Command: "search", Remaining: 45 * time.Second},
			want: fmt.Sprintf(cooldown.ErrFmtCooldownSecondsOnly, 45, "search"),
		},
		{
			name: "fractions round up",
			err:  cooldown.ErrOnCooldown{Command: "search", Remaining: 100 * time.Millisecond},
			want: fmt.Sprintf(cooldown.ErrFmtCooldownSecondsOnly, 1, "search"),
		},
		{
			name: "zero remaining",
			err:  cooldown.ErrOnCooldown{Command: "ping"},
			want: fmt.Sprintf(cooldown.ErrFmtCooldownSecondsOnly, 0, "ping"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

// TestErrOnCooldown_Is tests the errors.Is() compatibility
func TestErrOnCooldown_Is(t *testing.T) {
	err := cooldown.ErrOnCooldown{Command: "test", Remaining: time.Minute}

	assert.True(t, errors.Is(err, cooldown.ErrOnCooldown{}))
	assert.False(t, errors.Is(err, errors.New("other error")))
}

func TestSeconds(t *testing.T) {
	assert.Equal(t, 0, cooldown.Seconds(-time.Second))
	assert.Equal(t, 0, cooldown.Seconds(0))
	assert.Equal(t, 1, cooldown.Seconds(time.Nanosecond))
	assert.Equal(t, 3, cooldown.Seconds(3*time.Second))
	assert.Equal(t, 4, cooldown.Seconds(3*time.Second+time.Millisecond))
}
