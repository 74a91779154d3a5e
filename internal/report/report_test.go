package report

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alion8/parkpulse/internal/analyze"
	"github.com/alion8/parkpulse/internal/models"
	"github.com/alion8/parkpulse/internal/patterns"
)

var testInstant = time.Date(2026, 8, 24, 14, 0, 0, 0, time.UTC)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

func readArtifact(t *testing.T, dir, name string, out interface{}) {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		t.Fatalf("Failed to read %s: %v", name, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		t.Fatalf("%s is not valid JSON: %v", name, err)
	}
}

func testComparisons() []models.Comparison {
	return []models.Comparison{
		{RideName: "Space Mountain", Actual: intPtr(45), Predicted: floatPtr(40), Difference: floatPtr(5), IsOpen: true},
		{RideName: "Autopia", Actual: intPtr(15), Predicted: floatPtr(20), Difference: floatPtr(-5), IsOpen: true},
		{RideName: "Matterhorn Bobsleds", Actual: intPtr(45), Predicted: floatPtr(30), Difference: floatPtr(15), IsOpen: true},
		{RideName: "Haunted Mansion", Predicted: floatPtr(25), IsOpen: false},
	}
}

func TestHeightDisplay(t *testing.T) {
	tests := []struct {
		inches int
		want   string
	}{
		{46, "3 ft 10 in"},
		{42, "3 ft 6 in"},
		{36, "3 ft"},
		{40, "3 ft 4 in"},
	}
	for _, tt := range tests {
		if got := HeightDisplay(tt.inches); got != tt.want {
			t.Errorf("HeightDisplay(%d) = %q, want %q", tt.inches, got, tt.want)
		}
	}
}

func TestWriteCurrentWaits(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, testInstant)

	durations := map[string]int{"Space Mountain": 3}
	heights := map[string]int{"Space Mountain": 40}

	if err := w.WriteCurrentWaits(testComparisons(), durations, heights); err != nil {
		t.Fatalf("WriteCurrentWaits failed: %v", err)
	}

	var artifact struct {
		RunID     string `json:"run_id"`
		Timestamp string `json:"timestamp"`
		DayOfWeek string `json:"day_of_week"`
		Rides     []struct {
			Name              string `json:"name"`
			WaitTimeMinutes   int    `json:"wait_time_minutes"`
			Status            string `json:"status"`
			Duration          *int   `json:"ride_duration_minutes"`
			TotalTimeMinutes  *int   `json:"total_time_minutes"`
			HeightInches      *int   `json:"height_requirement_inches"`
			HeightRequirement string `json:"height_requirement"`
		} `json:"rides"`
	}
	readArtifact(t, dir, "current_waits.json", &artifact)

	if artifact.RunID != w.RunID() {
		t.Errorf("run_id = %q, want %q", artifact.RunID, w.RunID())
	}
	if artifact.Timestamp != "2026-08-24 14:00:00" {
		t.Errorf("Unexpected timestamp: %q", artifact.Timestamp)
	}
	if artifact.DayOfWeek != "Monday" {
		t.Errorf("Unexpected day: %q", artifact.DayOfWeek)
	}

	// Closed rides are excluded; open rides sort by wait descending with
	// stable ties (Space Mountain came first in the input).
	if len(artifact.Rides) != 3 {
		t.Fatalf("Expected 3 open rides, got %d", len(artifact.Rides))
	}
	if artifact.Rides[0].Name != "Space Mountain" || artifact.Rides[1].Name != "Matterhorn Bobsleds" {
		t.Errorf("Unexpected order: %q, %q", artifact.Rides[0].Name, artifact.Rides[1].Name)
	}
	if artifact.Rides[2].Name != "Autopia" {
		t.Errorf("Expected Autopia last, got %q", artifact.Rides[2].Name)
	}

	space := artifact.Rides[0]
	if space.TotalTimeMinutes == nil || *space.TotalTimeMinutes != 48 {
		t.Errorf("total_time_minutes = %v, want 48 (45 wait + 3 ride)", space.TotalTimeMinutes)
	}
	if space.HeightInches == nil || *space.HeightInches != 40 {
		t.Errorf("Unexpected height inches: %v", space.HeightInches)
	}

	autopia := artifact.Rides[2]
	if autopia.Duration != nil {
		t.Error("Ride without a known duration should omit the field")
	}
	if autopia.HeightInches != nil || autopia.HeightRequirement != "Any Height" {
		t.Errorf("Expected Any Height, got (%v, %q)", autopia.HeightInches, autopia.HeightRequirement)
	}
}

func TestWriteComparison(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, testInstant)

	if err := w.WriteComparison(testComparisons(), nil, nil); err != nil {
		t.Fatalf("WriteComparison failed: %v", err)
	}

	var artifact struct {
		Hour  int `json:"hour"`
		Rides []struct {
			Name        string  `json:"name"`
			Actual      int     `json:"actual_wait_minutes"`
			Predicted   float64 `json:"predicted_wait_minutes"`
			Difference  float64 `json:"difference_minutes"`
			CrowdStatus string  `json:"crowd_status"`
		} `json:"rides"`
	}
	readArtifact(t, dir, "ride_comparison.json", &artifact)

	if artifact.Hour != 14 {
		t.Errorf("hour = %d, want 14", artifact.Hour)
	}
	if len(artifact.Rides) != 3 {
		t.Fatalf("Expected 3 rides, got %d", len(artifact.Rides))
	}

	matterhorn := artifact.Rides[1]
	if matterhorn.Name != "Matterhorn Bobsleds" {
		t.Fatalf("Unexpected second ride: %q", matterhorn.Name)
	}
	if matterhorn.Difference != 15 || matterhorn.CrowdStatus != models.CrowdBusier {
		t.Errorf("Unexpected comparison: %+v", matterhorn)
	}
}

func TestWriteBestTimes(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, testInstant)

	store := patterns.NewStore([]models.RidePattern{{
		RideName: "Space Mountain",
		ByTimeOfDay: map[string]models.Stat{
			"09:00": {"avg": 15},
			"12:00": {"avg": 60},
			"14:00": {"avg": 45},
			"20:00": {"avg": 70},
		},
	}})
	hours := models.OperatingHours{Opening: 8, Closing: 24}
	marquee := []string{"Space Mountain", "Haunted Mansion", "Not In Sample"}

	if err := w.WriteBestTimes(marquee, testComparisons(), store, hours); err != nil {
		t.Fatalf("WriteBestTimes failed: %v", err)
	}

	var artifact struct {
		GeneratedAt string `json:"generated_at"`
		Rides       []struct {
			Name      string `json:"name"`
			Current   *int   `json:"current_wait_minutes"`
			BestTimes []struct {
				Time    string  `json:"time"`
				Average float64 `json:"average_wait_minutes"`
			} `json:"best_times"`
		} `json:"rides"`
	}
	readArtifact(t, dir, "best_times.json", &artifact)

	// Closed and unknown marquee rides are skipped.
	if len(artifact.Rides) != 1 {
		t.Fatalf("Expected 1 marquee ride, got %d", len(artifact.Rides))
	}

	space := artifact.Rides[0]
	if space.Name != "Space Mountain" || space.Current == nil || *space.Current != 45 {
		t.Errorf("Unexpected entry: %+v", space)
	}
	if len(space.BestTimes) != 3 || space.BestTimes[0].Time != "09:00" {
		t.Errorf("Unexpected best times: %+v", space.BestTimes)
	}
}

func TestWriteParkStatus(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, testInstant)

	status := analyze.ParkStatus{
		Hours:            models.OperatingHours{Opening: 8, Closing: 24, IsOpenNow: true},
		OpenCount:        30,
		ClosedCount:      5,
		AverageActual:    35.5,
		AveragePredicted: 28.2,
		Difference:       7.3,
		CrowdLevel:       models.ParkBusier,
		Recommendation:   "Consider visiting later or focus on low-wait attractions",
	}
	if err := w.WriteParkStatus(status); err != nil {
		t.Fatalf("WriteParkStatus failed: %v", err)
	}

	var artifact struct {
		ParkHours struct {
			Opening   int  `json:"opening"`
			Closing   int  `json:"closing"`
			IsOpenNow bool `json:"is_open_now"`
		} `json:"park_hours"`
		Open       int     `json:"total_rides_open"`
		Closed     int     `json:"total_rides_closed"`
		CrowdLevel string  `json:"crowd_level"`
		Difference float64 `json:"crowd_difference_minutes"`
	}
	readArtifact(t, dir, "park_status.json", &artifact)

	if artifact.ParkHours.Closing != 24 || !artifact.ParkHours.IsOpenNow {
		t.Errorf("Unexpected park hours: %+v", artifact.ParkHours)
	}
	if artifact.Open != 30 || artifact.Closed != 5 {
		t.Errorf("Unexpected counts: %d open, %d closed", artifact.Open, artifact.Closed)
	}
	if artifact.CrowdLevel != models.ParkBusier || artifact.Difference != 7.3 {
		t.Errorf("Unexpected classification: %q / %v", artifact.CrowdLevel, artifact.Difference)
	}
}

func TestWriteBestOptions(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, testInstant)

	durations := map[string]int{"Autopia": 5}
	if err := w.WriteBestOptions(testComparisons(), durations, nil, 2); err != nil {
		t.Fatalf("WriteBestOptions failed: %v", err)
	}

	var artifact struct {
		Rides []struct {
			Name             string `json:"name"`
			Wait             int    `json:"wait_time_minutes"`
			TotalTimeMinutes *int   `json:"total_time_minutes"`
		} `json:"rides"`
	}
	readArtifact(t, dir, "best_options_now.json", &artifact)

	// Shortest waits first, truncated to the configured count.
	if len(artifact.Rides) != 2 {
		t.Fatalf("Expected 2 rides, got %d", len(artifact.Rides))
	}
	if artifact.Rides[0].Name != "Autopia" || artifact.Rides[0].Wait != 15 {
		t.Errorf("Unexpected first option: %+v", artifact.Rides[0])
	}
	if artifact.Rides[0].TotalTimeMinutes == nil || *artifact.Rides[0].TotalTimeMinutes != 20 {
		t.Errorf("Unexpected total time: %v", artifact.Rides[0].TotalTimeMinutes)
	}
	// Stable tie between the two 45-minute rides keeps input order.
	if artifact.Rides[1].Name != "Space Mountain" {
		t.Errorf("Unexpected second option: %q", artifact.Rides[1].Name)
	}
}

func TestWriteCalendar(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, testInstant) // 2:00 PM

	cal := &models.Calendar{
		Date: "2026-08-24",
		Parks: map[string]models.ParkDay{
			"Disneyland Park": {
				Hours: models.ParkHours{Open: "08:00", Close: "00:00"},
				Parades: []models.ScheduleItem{
					{Name: "Magic Happens", Times: []string{"11:30am", "3:30pm"}},
				},
				Nighttime: []models.ScheduleItem{
					{Name: "Fireworks", Times: []string{"9:30pm"}},
				},
			},
		},
		Characters: []models.ScheduleItem{
			{Name: "Mickey Mouse", Times: []string{"10:00am"}},
		},
	}
	if err := w.WriteCalendar(cal); err != nil {
		t.Fatalf("WriteCalendar failed: %v", err)
	}

	var artifact struct {
		Date  string `json:"date"`
		Parks map[string]struct {
			Parades []struct {
				Name  string   `json:"name"`
				Times []string `json:"times"`
			} `json:"parades"`
			Nighttime []struct {
				Name string `json:"name"`
			} `json:"nighttime_entertainment"`
		} `json:"parks"`
		Characters []struct {
			Name string `json:"name"`
		} `json:"character_meet_and_greets"`
	}
	readArtifact(t, dir, "park_calendar.json", &artifact)

	day := artifact.Parks["Disneyland Park"]
	if len(day.Parades) != 1 {
		t.Fatalf("Expected the parade to survive, got %v", day.Parades)
	}
	// Only the upcoming showing remains at 2 PM.
	if len(day.Parades[0].Times) != 1 || day.Parades[0].Times[0] != "3:30pm" {
		t.Errorf("Unexpected parade times: %v", day.Parades[0].Times)
	}
	if len(day.Nighttime) != 1 {
		t.Errorf("Expected fireworks retained, got %v", day.Nighttime)
	}
	// The character's only time has elapsed, so the entry is dropped.
	if len(artifact.Characters) != 0 {
		t.Errorf("Expected no characters, got %v", artifact.Characters)
	}
}

func TestWriteCalendarNil(t *testing.T) {
	dir := t.TempDir()
	w := New(dir, testInstant)

	if err := w.WriteCalendar(nil); err != nil {
		t.Fatalf("WriteCalendar(nil) should be a no-op, got %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "park_calendar.json")); !os.IsNotExist(err) {
		t.Error("No artifact should be written without a snapshot")
	}
}
