package predict

import (
	"testing"
	"time"

	"github.com/alion8/parkpulse/internal/models"
	"github.com/alion8/parkpulse/internal/patterns"
)

// A Tuesday in June, 2:00 PM.
var testInstant = time.Date(2026, 6, 16, 14, 0, 0, 0, time.UTC)

func TestBlendAllSignals(t *testing.T) {
	pattern := &models.RidePattern{
		RideName:    "Space Mountain",
		ByTimeOfDay: map[string]models.Stat{"14:00": {"avg": 40}},
		ByMonth:     map[string]models.Stat{"Jun": {"value_1": 50}},
		ByDayOfWeek: map[string]models.Stat{"Tuesday": {"avg": 30}},
	}

	got := Blend(pattern, testInstant)
	if got == nil {
		t.Fatal("Expected a prediction")
	}

	// Hour average counted twice: mean(40, 40, 50, 30) = 40.0
	if *got != 40.0 {
		t.Errorf("Blend() = %v, want 40.0", *got)
	}
}

func TestBlendRounding(t *testing.T) {
	pattern := &models.RidePattern{
		RideName:    "Space Mountain",
		ByTimeOfDay: map[string]models.Stat{"14:00": {"avg": 33}},
		ByDayOfWeek: map[string]models.Stat{"Tuesday": {"avg": 34}},
	}

	got := Blend(pattern, testInstant)
	if got == nil {
		t.Fatal("Expected a prediction")
	}

	// mean(33, 33, 34) = 33.333... -> 33.3
	if *got != 33.3 {
		t.Errorf("Blend() = %v, want 33.3", *got)
	}
}

func TestBlendPartialSignals(t *testing.T) {
	// Only the month signal covers this instant.
	pattern := &models.RidePattern{
		RideName:    "Space Mountain",
		ByTimeOfDay: map[string]models.Stat{"09:00": {"avg": 20}},
		ByMonth:     map[string]models.Stat{"Jun": {"value_1": 55}},
	}

	got := Blend(pattern, testInstant)
	if got == nil {
		t.Fatal("Expected a prediction from the month signal alone")
	}
	if *got != 55.0 {
		t.Errorf("Blend() = %v, want 55.0", *got)
	}
}

func TestBlendNoSignals(t *testing.T) {
	pattern := &models.RidePattern{RideName: "Space Mountain"}

	if got := Blend(pattern, testInstant); got != nil {
		t.Errorf("Expected nil prediction, got %v", *got)
	}
}

func TestEnginePredict(t *testing.T) {
	store := patterns.NewStore([]models.RidePattern{{
		RideName:    "Matterhorn Bobsleds",
		ByTimeOfDay: map[string]models.Stat{"14:00": {"avg": 25}},
	}})
	engine := New(store)

	got := engine.Predict("Matterhorn Bobsleds", testInstant)
	if got == nil || *got != 25.0 {
		t.Errorf("Predict() = %v, want 25.0", got)
	}

	if got := engine.Predict("Unknown Ride", testInstant); got != nil {
		t.Errorf("Expected nil for unknown ride, got %v", *got)
	}
}

func TestRound1(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{33.333, 33.3},
		{33.36, 33.4},
		{-12.25, -12.3}, // rounds away from zero
		{0, 0},
	}
	for _, tt := range tests {
		if got := Round1(tt.in); got != tt.want {
			t.Errorf("Round1(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
