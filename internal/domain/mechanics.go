package domain

import (
	"encoding/json"
	"fmt"
)

// Stealth describes a stealth mechanic.
type Stealth struct {
	Duration *float64 `json:"duration,omitempty"`
	Notes    string   `json:"notes,omitempty"`
}

// Mechanics holds the recognized mechanic flags of a unit, spell or ability.
// Keys the upstream adds later land in Extra instead of being dropped.
type Mechanics struct {
	Features     []any    `json:"features,omitempty"`
	Pierce       bool     `json:"pierce,omitempty"`
	Stealth      *Stealth `json:"stealth,omitempty"`
	Cleave       bool     `json:"cleave,omitempty"`
	Homing       bool     `json:"homing,omitempty"`
	Knockback    bool     `json:"knockback,omitempty"`
	Interruption bool     `json:"interruption,omitempty"`

	Extra map[string]any `json:"-"`
}

var mechanicsKnownKeys = []string{"features", "pierce", "stealth", "cleave", "homing", "knockback", "interruption"}

// UnmarshalJSON decodes the known fields and keeps everything else in Extra.
func (m *Mechanics) UnmarshalJSON(data []byte) error {
	type plain Mechanics
	var known plain
	if err := json.Unmarshal(data, &known); err != nil {
		return fmt.Errorf("decode mechanics: %w", err)
	}
	extra, err := collectExtra(data, mechanicsKnownKeys)
	if err != nil {
		return err
	}
	*m = Mechanics(known)
	m.Extra = extra
	return nil
}

// MarshalJSON writes the known fields and the extension keys side by side.
func (m Mechanics) MarshalJSON() ([]byte, error) {
	type plain Mechanics
	return mergeExtra(plain(m), m.Extra)
}

// Has reports whether an extension key is present and truthy.
func (m *Mechanics) Has(key string) bool {
	if m == nil {
		return false
	}
	return truthy(m.Extra[key])
}

// Names lists the boolean flags that are set, in display order.
func (m *Mechanics) Names() []string {
	if m == nil {
		return nil
	}
	var out []string
	for _, f := range []struct {
		on   bool
		name string
	}{
		{m.Pierce, "Pierce"},
		{m.Cleave, "Cleave"},
		{m.Homing, "Homing"},
		{m.Knockback, "Knockback"},
		{m.Interruption, "Interruption"},
		{m.Stealth != nil, "Stealth"},
	} {
		if f.on {
			out = append(out, f.name)
		}
	}
	return out
}

// TitanMechanics holds titan-specific mechanics.
type TitanMechanics struct {
	Aura              []any `json:"aura,omitempty"`
	AutoCaptureAltars bool  `json:"auto_capture_altars,omitempty"`

	Extra map[string]any `json:"-"`
}

var titanMechanicsKnownKeys = []string{"aura", "auto_capture_altars"}

// UnmarshalJSON decodes the known fields and keeps everything else in Extra.
func (m *TitanMechanics) UnmarshalJSON(data []byte) error {
	type plain TitanMechanics
	var known plain
	if err := json.Unmarshal(data, &known); err != nil {
		return fmt.Errorf("decode titan mechanics: %w", err)
	}
	extra, err := collectExtra(data, titanMechanicsKnownKeys)
	if err != nil {
		return err
	}
	*m = TitanMechanics(known)
	m.Extra = extra
	return nil
}

// MarshalJSON writes the known fields and the extension keys side by side.
func (m TitanMechanics) MarshalJSON() ([]byte, error) {
	type plain TitanMechanics
	return mergeExtra(plain(m), m.Extra)
}

func collectExtra(data []byte, known []string) (map[string]any, error) {
	var all map[string]any
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("decode mechanics extensions: %w", err)
	}
	for _, k := range known {
		delete(all, k)
	}
	if len(all) == 0 {
		return nil, nil
	}
	return all, nil
}

func mergeExtra(known any, extra map[string]any) ([]byte, error) {
	base, err := json.Marshal(known)
	if err != nil {
		return nil, err
	}
	if len(extra) == 0 {
		return base, nil
	}
	var merged map[string]any
	if err := json.Unmarshal(base, &merged); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, exists := merged[k]; !exists {
			merged[k] = v
		}
	}
	return json.Marshal(merged)
}

func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0
	case string:
		return x != ""
	case []any:
		return len(x) > 0
	case map[string]any:
		return len(x) > 0
	default:
		return true
	}
}
