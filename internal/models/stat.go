// Package models defines the core domain entities for the parkpulse application.
// These models represent harvested historical wait-time patterns, live wait-time
// samples, calendar schedules, and the comparison records derived from them.
//
// Terminology (matching the wait-time source's own naming):
//   - Ride: a single attraction inside a land. Ride name is the join key
//     across every dataset (patterns, durations, heights, live samples).
//   - Hour bucket: a historical statistic keyed by a zero-padded "HH:00" label.
package models

import (
	"encoding/json"
	"fmt"
)

// Stat holds the numeric values extracted from one table row, keyed by
// positional name: "avg"/"max" for position-addressed tables, "value_1",
// "value_2", ... for header-addressed ones.
//
// The persisted form collapses single-value rows to a bare number, so Stat
// marshals a lone "value_1" as a scalar and accepts either shape on decode.
type Stat map[string]float64

// Avg returns the "avg" entry when present.
func (s Stat) Avg() (float64, bool) {
	v, ok := s["avg"]
	return v, ok
}

// Max returns the "max" entry when present.
func (s Stat) Max() (float64, bool) {
	v, ok := s["max"]
	return v, ok
}

// First returns the "value_1" entry when present. Rows persisted as bare
// scalars decode into "value_1", so this covers both shapes.
func (s Stat) First() (float64, bool) {
	v, ok := s["value_1"]
	return v, ok
}

// MarshalJSON emits a bare number for single-value rows and an object otherwise.
func (s Stat) MarshalJSON() ([]byte, error) {
	if len(s) == 1 {
		if v, ok := s["value_1"]; ok {
			return json.Marshal(v)
		}
	}
	return json.Marshal(map[string]float64(s))
}

// UnmarshalJSON accepts either a bare number (stored as "value_1") or an
// object of named values.
func (s *Stat) UnmarshalJSON(data []byte) error {
	var scalar float64
	if err := json.Unmarshal(data, &scalar); err == nil {
		*s = Stat{"value_1": scalar}
		return nil
	}

	var obj map[string]float64
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("stat must be a number or an object of numbers: %w", err)
	}
	*s = Stat(obj)
	return nil
}
