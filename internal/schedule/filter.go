// Package schedule filters calendar schedule entries down to the times that
// are still upcoming relative to a reference instant, with a 15-minute grace
// window for shows that just started.
//
// Parsing is fail-open: a time string that does not parse is retained as-is
// rather than dropped, so format variance in the source never silently hides
// a legitimate schedule entry.
package schedule

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/alion8/parkpulse/internal/models"
)

// GraceWindow is the backward tolerance applied when deciding whether a
// scheduled time is still "upcoming".
const GraceWindow = 15 * time.Minute

var clockPattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*([ap]m)`)

// ParseClock parses a 12-hour wall-clock string like "8:30pm" or "10:00 AM"
// into 24-hour parts. 12pm stays 12, 12am becomes 0.
func ParseClock(s string) (hour, minute int, ok bool) {
	match := clockPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if match == nil {
		return 0, 0, false
	}

	hour, err := strconv.Atoi(match[1])
	if err != nil || hour < 1 || hour > 12 {
		return 0, 0, false
	}
	minute, err = strconv.Atoi(match[2])
	if err != nil || minute > 59 {
		return 0, 0, false
	}

	if match[3] == "pm" && hour != 12 {
		hour += 12
	} else if match[3] == "am" && hour == 12 {
		hour = 0
	}
	return hour, minute, true
}

// FilterUpcoming retains, per item, only the time strings whose same-day
// occurrence is not earlier than now minus the grace window. Items with no
// time strings pass through unchanged; items whose every time has elapsed are
// dropped; unparseable time strings are retained.
func FilterUpcoming(items []models.ScheduleItem, now time.Time) []models.ScheduleItem {
	cutoff := now.Add(-GraceWindow)

	var filtered []models.ScheduleItem
	for _, item := range items {
		if len(item.Times) == 0 {
			filtered = append(filtered, item)
			continue
		}

		var upcoming []string
		for _, timeStr := range item.Times {
			hour, minute, ok := ParseClock(timeStr)
			if !ok {
				upcoming = append(upcoming, timeStr) // fail-open
				continue
			}

			occurrence := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
			if !occurrence.Before(cutoff) {
				upcoming = append(upcoming, timeStr)
			}
		}

		if len(upcoming) == 0 {
			continue
		}

		kept := item
		kept.Times = upcoming
		filtered = append(filtered, kept)
	}

	return filtered
}

// FilterCalendar applies FilterUpcoming to every schedule list in the
// calendar snapshot, returning a filtered copy.
func FilterCalendar(cal models.Calendar, now time.Time) models.Calendar {
	out := cal
	out.Parks = make(map[string]models.ParkDay, len(cal.Parks))
	for name, day := range cal.Parks {
		day.Parades = FilterUpcoming(day.Parades, now)
		day.Nighttime = FilterUpcoming(day.Nighttime, now)
		out.Parks[name] = day
	}
	out.Characters = FilterUpcoming(cal.Characters, now)
	return out
}
