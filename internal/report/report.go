// Package report assembles the six JSON report artifacts produced by one
// analysis run. Artifacts are independent: a failed write degrades that
// artifact only. All files are UTF-8, two-space indented, and written
// atomically (tmp file + rename).
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/alion8/parkpulse/internal/analyze"
	"github.com/alion8/parkpulse/internal/models"
	"github.com/alion8/parkpulse/internal/patterns"
	"github.com/alion8/parkpulse/internal/schedule"
)

const timestampLayout = "2006-01-02 15:04:05"

// Writer produces the report artifacts for a single run. Every artifact
// carries the same run ID and timestamp.
type Writer struct {
	dir   string
	runID string
	now   time.Time
}

// New creates a writer rooted at the output directory, stamped with a fresh
// run ID.
func New(dir string, now time.Time) *Writer {
	return &Writer{
		dir:   dir,
		runID: uuid.New().String(),
		now:   now,
	}
}

// RunID returns the run correlation ID stamped into each artifact.
func (w *Writer) RunID() string {
	return w.runID
}

// HeightDisplay converts a height requirement in inches to its display form,
// e.g. 46 -> "3 ft 10 in", 36 -> "3 ft".
func HeightDisplay(inches int) string {
	feet := inches / 12
	remaining := inches % 12
	if remaining == 0 {
		return fmt.Sprintf("%d ft", feet)
	}
	return fmt.Sprintf("%d ft %d in", feet, remaining)
}

// anyHeight is the display form for rides with no height requirement.
const anyHeight = "Any Height"

// heightFields resolves the two height columns for a ride.
func heightFields(heights map[string]int, rideName string) (*int, string) {
	if inches, ok := heights[rideName]; ok {
		return &inches, HeightDisplay(inches)
	}
	return nil, anyHeight
}

// openWithWait filters comparisons down to open rides with a reported wait.
func openWithWait(comparisons []models.Comparison) []models.Comparison {
	var open []models.Comparison
	for _, c := range comparisons {
		if c.IsOpen && c.Actual != nil {
			open = append(open, c)
		}
	}
	return open
}

// ── current_waits.json ───────────────────────────────────────────────────

type rideWait struct {
	Name                    string `json:"name"`
	WaitTimeMinutes         int    `json:"wait_time_minutes"`
	Status                  string `json:"status"`
	RideDurationMinutes     *int   `json:"ride_duration_minutes,omitempty"`
	TotalTimeMinutes        *int   `json:"total_time_minutes,omitempty"`
	HeightRequirementInches *int   `json:"height_requirement_inches"`
	HeightRequirement       string `json:"height_requirement"`
}

type currentWaitsArtifact struct {
	RunID     string     `json:"run_id"`
	Timestamp string     `json:"timestamp"`
	DayOfWeek string     `json:"day_of_week"`
	Rides     []rideWait `json:"rides"`
}

// WriteCurrentWaits writes the open rides sorted by wait descending, with
// optional duration and height enrichment.
func (w *Writer) WriteCurrentWaits(comparisons []models.Comparison, durations, heights map[string]int) error {
	artifact := currentWaitsArtifact{
		RunID:     w.runID,
		Timestamp: w.now.Format(timestampLayout),
		DayOfWeek: w.now.Format("Monday"),
		Rides:     []rideWait{},
	}

	for _, c := range openWithWait(comparisons) {
		entry := rideWait{
			Name:            c.RideName,
			WaitTimeMinutes: *c.Actual,
			Status:          "OPEN",
		}
		if duration, ok := durations[c.RideName]; ok {
			d := duration
			total := *c.Actual + duration
			entry.RideDurationMinutes = &d
			entry.TotalTimeMinutes = &total
		}
		entry.HeightRequirementInches, entry.HeightRequirement = heightFields(heights, c.RideName)
		artifact.Rides = append(artifact.Rides, entry)
	}

	// Stable sort: ties preserve encounter order.
	sort.SliceStable(artifact.Rides, func(i, j int) bool {
		return artifact.Rides[i].WaitTimeMinutes > artifact.Rides[j].WaitTimeMinutes
	})

	return w.write("current_waits.json", artifact)
}

// ── ride_comparison.json ─────────────────────────────────────────────────

type comparisonRide struct {
	Name                    string  `json:"name"`
	ActualWaitMinutes       int     `json:"actual_wait_minutes"`
	PredictedWaitMinutes    float64 `json:"predicted_wait_minutes"`
	DifferenceMinutes       float64 `json:"difference_minutes"`
	CrowdStatus             string  `json:"crowd_status"`
	RideDurationMinutes     *int    `json:"ride_duration_minutes,omitempty"`
	HeightRequirementInches *int    `json:"height_requirement_inches"`
	HeightRequirement       string  `json:"height_requirement"`
}

type comparisonArtifact struct {
	RunID     string           `json:"run_id"`
	Timestamp string           `json:"timestamp"`
	Hour      int              `json:"hour"`
	Rides     []comparisonRide `json:"rides"`
}

// WriteComparison writes actual vs. predicted waits with per-ride crowd
// status, sorted by actual wait descending.
func (w *Writer) WriteComparison(comparisons []models.Comparison, durations, heights map[string]int) error {
	artifact := comparisonArtifact{
		RunID:     w.runID,
		Timestamp: w.now.Format(timestampLayout),
		Hour:      w.now.Hour(),
		Rides:     []comparisonRide{},
	}

	for _, c := range openWithWait(comparisons) {
		entry := comparisonRide{
			Name:                 c.RideName,
			ActualWaitMinutes:    *c.Actual,
			PredictedWaitMinutes: *c.Predicted,
			CrowdStatus:          c.CrowdStatus(),
		}
		if c.Difference != nil {
			entry.DifferenceMinutes = *c.Difference
		}
		if duration, ok := durations[c.RideName]; ok {
			d := duration
			entry.RideDurationMinutes = &d
		}
		entry.HeightRequirementInches, entry.HeightRequirement = heightFields(heights, c.RideName)
		artifact.Rides = append(artifact.Rides, entry)
	}

	sort.SliceStable(artifact.Rides, func(i, j int) bool {
		return artifact.Rides[i].ActualWaitMinutes > artifact.Rides[j].ActualWaitMinutes
	})

	return w.write("ride_comparison.json", artifact)
}

// ── best_times.json ──────────────────────────────────────────────────────

type hourAverage struct {
	Time               string  `json:"time"`
	AverageWaitMinutes float64 `json:"average_wait_minutes"`
}

type bestTimesRide struct {
	Name                      string        `json:"name"`
	CurrentWaitMinutes        *int          `json:"current_wait_minutes"`
	HistoricalAverageThisHour float64       `json:"historical_average_this_hour"`
	BestTimes                 []hourAverage `json:"best_times"`
	WorstTimes                []hourAverage `json:"worst_times"`
}

type bestTimesArtifact struct {
	RunID       string          `json:"run_id"`
	GeneratedAt string          `json:"generated_at"`
	Rides       []bestTimesRide `json:"rides"`
}

// WriteBestTimes writes the marquee attractions' three best and worst
// historical hours inside the operating window.
func (w *Writer) WriteBestTimes(marquee []string, comparisons []models.Comparison, store *patterns.Store, hours models.OperatingHours) error {
	artifact := bestTimesArtifact{
		RunID:       w.runID,
		GeneratedAt: w.now.Format(timestampLayout),
		Rides:       []bestTimesRide{},
	}

	byName := make(map[string]models.Comparison, len(comparisons))
	for _, c := range comparisons {
		byName[c.RideName] = c
	}

	for _, rideName := range marquee {
		c, ok := byName[rideName]
		if !ok || !c.IsOpen {
			continue
		}
		pattern, ok := store.Get(rideName)
		if !ok {
			continue
		}
		ranked := analyze.BestWorstHours(pattern, hours, w.now)
		if ranked == nil {
			continue
		}

		entry := bestTimesRide{
			Name:               rideName,
			CurrentWaitMinutes: c.Actual,
			BestTimes:          hourAverages(ranked.Best),
			WorstTimes:         hourAverages(ranked.Worst),
		}
		if c.Predicted != nil {
			entry.HistoricalAverageThisHour = *c.Predicted
		}
		artifact.Rides = append(artifact.Rides, entry)
	}

	return w.write("best_times.json", artifact)
}

func hourAverages(ranks []analyze.HourRank) []hourAverage {
	out := make([]hourAverage, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, hourAverage{
			Time:               models.HourKey(r.Hour),
			AverageWaitMinutes: r.Average,
		})
	}
	return out
}

// ── park_status.json ─────────────────────────────────────────────────────

type parkStatusArtifact struct {
	RunID                        string                `json:"run_id"`
	Timestamp                    string                `json:"timestamp"`
	DayOfWeek                    string                `json:"day_of_week"`
	ParkHours                    models.OperatingHours `json:"park_hours"`
	TotalRidesOpen               int                   `json:"total_rides_open"`
	TotalRidesClosed             int                   `json:"total_rides_closed"`
	AverageWaitTimeMinutes       float64               `json:"average_wait_time_minutes"`
	AverageHistoricalWaitMinutes float64               `json:"average_historical_wait_minutes"`
	CrowdLevel                   string                `json:"crowd_level"`
	CrowdDifferenceMinutes       float64               `json:"crowd_difference_minutes"`
	Recommendation               string                `json:"recommendation"`
}

// WriteParkStatus writes the park-wide overview and crowd classification.
func (w *Writer) WriteParkStatus(status analyze.ParkStatus) error {
	artifact := parkStatusArtifact{
		RunID:                        w.runID,
		Timestamp:                    w.now.Format(timestampLayout),
		DayOfWeek:                    w.now.Format("Monday"),
		ParkHours:                    status.Hours,
		TotalRidesOpen:               status.OpenCount,
		TotalRidesClosed:             status.ClosedCount,
		AverageWaitTimeMinutes:       status.AverageActual,
		AverageHistoricalWaitMinutes: status.AveragePredicted,
		CrowdLevel:                   status.CrowdLevel,
		CrowdDifferenceMinutes:       status.Difference,
		Recommendation:               status.Recommendation,
	}
	return w.write("park_status.json", artifact)
}

// ── best_options_now.json ────────────────────────────────────────────────

type bestOptionRide struct {
	Name                    string  `json:"name"`
	WaitTimeMinutes         int     `json:"wait_time_minutes"`
	PredictedWaitMinutes    float64 `json:"predicted_wait_minutes"`
	RideDurationMinutes     *int    `json:"ride_duration_minutes,omitempty"`
	TotalTimeMinutes        *int    `json:"total_time_minutes,omitempty"`
	HeightRequirementInches *int    `json:"height_requirement_inches"`
	HeightRequirement       string  `json:"height_requirement"`
}

type bestOptionsArtifact struct {
	RunID     string           `json:"run_id"`
	Timestamp string           `json:"timestamp"`
	Rides     []bestOptionRide `json:"rides"`
}

// WriteBestOptions writes the shortest-actual-wait open attractions, at most
// topOptions of them.
func (w *Writer) WriteBestOptions(comparisons []models.Comparison, durations, heights map[string]int, topOptions int) error {
	open := openWithWait(comparisons)
	sort.SliceStable(open, func(i, j int) bool {
		return *open[i].Actual < *open[j].Actual
	})
	if len(open) > topOptions {
		open = open[:topOptions]
	}

	artifact := bestOptionsArtifact{
		RunID:     w.runID,
		Timestamp: w.now.Format(timestampLayout),
		Rides:     []bestOptionRide{},
	}

	for _, c := range open {
		entry := bestOptionRide{
			Name:                 c.RideName,
			WaitTimeMinutes:      *c.Actual,
			PredictedWaitMinutes: *c.Predicted,
		}
		if duration, ok := durations[c.RideName]; ok {
			d := duration
			total := *c.Actual + duration
			entry.RideDurationMinutes = &d
			entry.TotalTimeMinutes = &total
		}
		entry.HeightRequirementInches, entry.HeightRequirement = heightFields(heights, c.RideName)
		artifact.Rides = append(artifact.Rides, entry)
	}

	return w.write("best_options_now.json", artifact)
}

// ── park_calendar.json ───────────────────────────────────────────────────

type calendarPark struct {
	Hours                  models.ParkHours      `json:"hours"`
	Parades                []models.ScheduleItem `json:"parades"`
	NighttimeEntertainment []models.ScheduleItem `json:"nighttime_entertainment"`
	SpecialEvents          []models.ScheduleItem `json:"special_events"`
	ClosedAttractions      []models.ScheduleItem `json:"closed_attractions"`
}

type calendarArtifact struct {
	RunID                  string                  `json:"run_id"`
	Date                   string                  `json:"date"`
	GeneratedAt            string                  `json:"generated_at"`
	Parks                  map[string]calendarPark `json:"parks"`
	CharacterMeetAndGreets []models.ScheduleItem   `json:"character_meet_and_greets"`
}

// WriteCalendar writes the calendar snapshot with every schedule list
// filtered down to upcoming times.
func (w *Writer) WriteCalendar(cal *models.Calendar) error {
	if cal == nil {
		return nil // no snapshot collected; artifact skipped
	}

	filtered := schedule.FilterCalendar(*cal, w.now)

	artifact := calendarArtifact{
		RunID:                  w.runID,
		Date:                   filtered.Date,
		GeneratedAt:            w.now.Format(timestampLayout),
		Parks:                  make(map[string]calendarPark, len(filtered.Parks)),
		CharacterMeetAndGreets: filtered.Characters,
	}
	if artifact.Date == "" {
		artifact.Date = w.now.Format("2006-01-02")
	}

	for name, day := range filtered.Parks {
		artifact.Parks[name] = calendarPark{
			Hours:                  day.Hours,
			Parades:                day.Parades,
			NighttimeEntertainment: day.Nighttime,
			SpecialEvents:          day.Events,
			ClosedAttractions:      day.ClosedAttractions,
		}
	}

	return w.write("park_calendar.json", artifact)
}

// write persists one artifact atomically under the output directory.
func (w *Writer) write(name string, v interface{}) error {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}

	path := filepath.Join(w.dir, name)
	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename %s: %w", name, err)
	}
	return nil
}
