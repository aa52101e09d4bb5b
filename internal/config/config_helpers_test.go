package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEnvParser_Duration(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		set      bool
		expected time.Duration
		failed   bool
	}{
		{"unset", "", false, time.Minute, false},
		{"valid", "45s", true, 45 * time.Second, false},
		{"invalid", "later", true, time.Minute, true},
		{"unitless", "30", true, time.Minute, true},
		{"empty", "", true, time.Minute, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const key = "SPELLCASTERS_TEST_DURATION"
			if tt.set {
				t.Setenv(key, tt.value)
			}
			p := &envParser{}
			assert.Equal(t, tt.expected, p.duration(key, time.Minute))
			if tt.failed {
				assert.Equal(t, ErrMsgNotDuration, p.errs[key])
			} else {
				assert.Empty(t, p.errs)
			}
		})
	}
}

func TestEnvParser_Hours(t *testing.T) {
	const key = "SPELLCASTERS_TEST_HOURS"
	p := &envParser{}

	t.Setenv(key, "0.5")
	assert.Equal(t, 30*time.Minute, p.hours(key, time.Hour))

	t.Setenv(key, "12")
	assert.Equal(t, 12*time.Hour, p.hours(key, time.Hour))
	assert.Empty(t, p.errs)

	t.Setenv(key, "twelve")
	assert.Equal(t, time.Hour, p.hours(key, time.Hour))
	assert.Equal(t, ErrMsgNotNumber, p.errs[key])
}

func TestEnvParser_Numbers(t *testing.T) {
	const key = "SPELLCASTERS_TEST_NUMBER"

	t.Setenv(key, "42")
	p := &envParser{}
	assert.Equal(t, 42, p.integer(key, 1))
	assert.InDelta(t, 42.0, p.number(key, 1), 1e-9)
	assert.Empty(t, p.errs)

	t.Setenv(key, "0.3")
	p = &envParser{}
	assert.Equal(t, 1, p.integer(key, 1))
	assert.Equal(t, ErrMsgNotInteger, p.errs[key])
	assert.InDelta(t, 0.3, (&envParser{}).number(key, 1), 1e-9)

	t.Setenv(key, "abc")
	p = &envParser{}
	assert.InDelta(t, 1.0, p.number(key, 1), 1e-9)
	assert.Equal(t, ErrMsgNotNumber, p.errs[key])
}
