package models

import (
	"errors"
	"fmt"
	"regexp"
)

// hourKeyPattern matches the canonical hour-bucket key: two digits, ":00" suffix.
var hourKeyPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):00$`)

// HourKey formats an hour of day [0,23] as the canonical hour-bucket key,
// e.g. 9 -> "09:00". This is the only key format used for by_time_of_day
// lookups anywhere in the application.
func HourKey(hour int) string {
	return fmt.Sprintf("%02d:00", hour)
}

// IsHourKey reports whether s is a canonical hour-bucket key.
func IsHourKey(s string) bool {
	return hourKeyPattern.MatchString(s)
}

// RidePattern is the canonical per-attraction statistical record built from a
// prior collection pass. It holds four independent historical views plus
// special-event impact data. Records are read-only during analysis.
type RidePattern struct {
	RideID        int             `json:"ride_id"`
	RideName      string          `json:"ride_name"` // unique join key across all datasets
	Land          string          `json:"land,omitempty"`
	URL           string          `json:"url,omitempty"`
	ByYear        map[string]Stat `json:"by_year"`
	ByDayOfWeek   map[string]Stat `json:"by_day_of_week"`
	ByTimeOfDay   map[string]Stat `json:"by_time_of_day"` // keys are "HH:00"
	ByMonth       map[string]Stat `json:"by_month"`       // keys are "Jan".."Dec"
	SpecialEvents map[string]Stat `json:"special_events"`
}

// Validate checks that the record can serve as an analysis input.
func (p *RidePattern) Validate() error {
	if p.RideName == "" {
		return errors.New("ride name must not be empty")
	}
	for key := range p.ByTimeOfDay {
		if !IsHourKey(key) {
			return fmt.Errorf("by_time_of_day key %q is not a canonical hour key", key)
		}
	}
	return nil
}

// Ride identifies one attraction as listed by the wait-time endpoint.
type Ride struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Land string `json:"land"`
}

// DayRecord is one calendar date's harvested statistics: per-ride average and
// maximum waits, uptime percentages, crowd level and special-event markers.
type DayRecord struct {
	Date          string             `json:"date"`
	DayOfWeek     string             `json:"day_of_week"`
	URL           string             `json:"url"`
	CrowdLevel    *int               `json:"crowd_level"`
	SpecialEvents []string           `json:"special_events"`
	WaitAverage   map[string]int     `json:"wait_times_average"`
	WaitMax       map[string]int     `json:"wait_times_max"`
	Uptime        map[string]float64 `json:"ride_uptime"`
}
