package queuetimes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alion8/parkpulse/internal/config"
)

func testPark(baseURL string) config.ParkConfig {
	return config.ParkConfig{
		ID:         16,
		APIBaseURL: baseURL,
		Timeout:    5 * time.Second,
	}
}

const waitTimesJSON = `{
  "lands": [
    {
      "name": "Tomorrowland",
      "rides": [
        {"id": 101, "name": "Space Mountain", "is_open": true, "wait_time": 45, "last_updated": "2026-08-24T19:00:00Z"},
        {"id": 102, "name": "Autopia", "is_open": false, "wait_time": 0, "last_updated": "2026-08-24T19:00:00Z"}
      ]
    }
  ],
  "rides": [
    {"id": 201, "name": "Disneyland Railroad", "is_open": true, "wait_time": 10, "last_updated": "2026-08-24T19:00:00Z"}
  ]
}`

func TestFetchSample(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/parks/16/queue_times.json" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(waitTimesJSON))
	}))
	defer server.Close()

	client := NewClient(testPark(server.URL))
	sample, err := client.FetchSample(context.Background())
	if err != nil {
		t.Fatalf("FetchSample failed: %v", err)
	}

	// Rides inside lands and top-level rides both appear.
	if len(sample) != 3 {
		t.Fatalf("Expected 3 rides, got %d", len(sample))
	}

	space := sample["Space Mountain"]
	if !space.IsOpen || space.WaitTime == nil || *space.WaitTime != 45 {
		t.Errorf("Unexpected Space Mountain status: %+v", space)
	}
	if sample["Autopia"].IsOpen {
		t.Error("Autopia should be closed")
	}
}

func TestFetchSampleHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(testPark(server.URL))
	if _, err := client.FetchSample(context.Background()); err == nil {
		t.Fatal("Expected error for 500 response")
	}
}

func TestFetchRidesCaching(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.Write([]byte(waitTimesJSON))
	}))
	defer server.Close()

	client := NewClient(testPark(server.URL))

	rides, err := client.FetchRides(context.Background())
	if err != nil {
		t.Fatalf("FetchRides failed: %v", err)
	}
	if len(rides) != 3 {
		t.Fatalf("Expected 3 rides, got %d", len(rides))
	}
	if rides[0].Land != "Tomorrowland" {
		t.Errorf("Expected land Tomorrowland, got %q", rides[0].Land)
	}
	if rides[2].Name != "Disneyland Railroad" || rides[2].Land != "" {
		t.Errorf("Unexpected top-level ride: %+v", rides[2])
	}

	// Second call hits the cache.
	if _, err := client.FetchRides(context.Background()); err != nil {
		t.Fatalf("Cached FetchRides failed: %v", err)
	}
	if requests != 1 {
		t.Errorf("Expected 1 request, got %d", requests)
	}
}

func TestParkHours(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>Park hours: 08:00-00:00</p></body></html>`))
	}))
	defer server.Close()

	client := NewClient(testPark(server.URL))
	now := time.Date(2026, 8, 24, 14, 0, 0, 0, time.UTC)
	hours := client.ParkHours(context.Background(), now)

	if hours.Opening != 8 {
		t.Errorf("Opening = %d, want 8", hours.Opening)
	}
	// A published midnight close maps to hour 24.
	if hours.Closing != 24 {
		t.Errorf("Closing = %d, want 24", hours.Closing)
	}
	if !hours.IsOpenNow {
		t.Error("2 PM should be inside an 8-24 window")
	}
}

func TestParkHoursFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := NewClient(testPark(server.URL))
	now := time.Date(2026, 8, 24, 3, 0, 0, 0, time.UTC)
	hours := client.ParkHours(context.Background(), now)

	if hours.Opening != 8 || hours.Closing != 24 {
		t.Errorf("Expected default 8-24 window, got %d-%d", hours.Opening, hours.Closing)
	}
	if hours.IsOpenNow {
		t.Error("3 AM should be outside the default window")
	}
}
