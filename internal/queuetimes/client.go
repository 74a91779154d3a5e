// Package queuetimes provides access to the wait-time JSON endpoint and the
// document pages carrying historical tables and calendar data.
//
// Failures are reported to the caller as errors; call sites substitute empty
// or default values rather than retrying, so a dead endpoint degrades one
// run's richness instead of aborting it.
package queuetimes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/alion8/parkpulse/internal/config"
	"github.com/alion8/parkpulse/internal/logger"
	"github.com/alion8/parkpulse/internal/models"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// Client provides access to the park's wait-time API and document pages.
// The ride list is fetched once and cached on the client; construct a fresh
// Client to force a refetch.
type Client struct {
	park       config.ParkConfig
	httpClient *http.Client

	ridesCache []models.Ride
}

// NewClient creates a new queue-times client
func NewClient(park config.ParkConfig) *Client {
	return &Client{
		park: park,
		httpClient: &http.Client{
			Timeout: park.Timeout,
		},
	}
}

// apiRide mirrors one ride entry of the wait-time endpoint
type apiRide struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	IsOpen      bool   `json:"is_open"`
	WaitTime    *int   `json:"wait_time"`
	LastUpdated string `json:"last_updated"`
}

// apiLand mirrors one land entry of the wait-time endpoint
type apiLand struct {
	Name  string    `json:"name"`
	Rides []apiRide `json:"rides"`
}

// waitTimesResponse mirrors the nested lands/rides payload. Some parks list
// rides outside any land; those appear in the top-level rides array.
type waitTimesResponse struct {
	Lands []apiLand `json:"lands"`
	Rides []apiRide `json:"rides"`
}

// FetchSample retrieves one live snapshot of every attraction's current wait
// minutes and open flag, keyed by ride name.
func (c *Client) FetchSample(ctx context.Context) (models.Sample, error) {
	var response waitTimesResponse
	if err := c.getJSON(ctx, c.park.WaitTimesURL(), &response); err != nil {
		return nil, fmt.Errorf("failed to fetch wait times: %w", err)
	}

	sample := make(models.Sample)
	record := func(r apiRide) {
		sample[r.Name] = models.RideStatus{
			WaitTime:    r.WaitTime,
			IsOpen:      r.IsOpen,
			LastUpdated: r.LastUpdated,
		}
	}
	for _, land := range response.Lands {
		for _, ride := range land.Rides {
			record(ride)
		}
	}
	for _, ride := range response.Rides {
		record(ride)
	}

	return sample, nil
}

// FetchRides retrieves the ride list (id, name, land) from the wait-time
// endpoint. The list is cached for the lifetime of the client.
func (c *Client) FetchRides(ctx context.Context) ([]models.Ride, error) {
	if c.ridesCache != nil {
		return c.ridesCache, nil
	}

	var response waitTimesResponse
	if err := c.getJSON(ctx, c.park.WaitTimesURL(), &response); err != nil {
		return nil, fmt.Errorf("failed to fetch ride list: %w", err)
	}

	var rides []models.Ride
	for _, land := range response.Lands {
		for _, ride := range land.Rides {
			rides = append(rides, models.Ride{ID: ride.ID, Name: ride.Name, Land: land.Name})
		}
	}
	for _, ride := range response.Rides {
		rides = append(rides, models.Ride{ID: ride.ID, Name: ride.Name})
	}

	c.ridesCache = rides
	return rides, nil
}

// FetchDocument retrieves a document page and parses it for table extraction.
func (c *Client) FetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	resp, err := c.doRequest(ctx, url, "text/html")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse document %s: %w", url, err)
	}
	return doc, nil
}

// hoursPattern matches published operating hours like "08:00-00:00".
var hoursPattern = regexp.MustCompile(`(\d{2}):(\d{2})-(\d{2}):(\d{2})`)

// Fallback operating window used when the calendar page yields no hours.
const (
	defaultOpeningHour = 8
	defaultClosingHour = 24
)

// ParkHours scrapes today's calendar page for the operating window. Any
// failure falls back to the default 08:00–24:00 window; this method never
// returns an error.
func (c *Client) ParkHours(ctx context.Context, now time.Time) models.OperatingHours {
	opening, closing := defaultOpeningHour, defaultClosingHour

	doc, err := c.FetchDocument(ctx, c.park.CalendarDateURL(now))
	if err != nil {
		logger.Warn("Failed to fetch calendar page, using default hours: %v", err)
	} else if match := hoursPattern.FindStringSubmatch(doc.Text()); match != nil {
		if o, ok := extractHour(match[1]); ok {
			opening = o
		}
		if cl, ok := extractHour(match[3]); ok {
			closing = cl
			if closing == 0 {
				closing = 24 // midnight close
			}
		}
	}

	return models.OperatingHours{
		Opening:   opening,
		Closing:   closing,
		IsOpenNow: now.Hour() >= opening && now.Hour() < closing,
	}
}

func extractHour(s string) (int, bool) {
	var h int
	if _, err := fmt.Sscanf(s, "%d", &h); err != nil || h < 0 || h > 24 {
		return 0, false
	}
	return h, true
}

// getJSON performs a GET request and decodes the JSON response body.
func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	resp, err := c.doRequest(ctx, url, "application/json")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}

// doRequest performs a single HTTP request. There is no retry: a failed
// request fails this item only, and the caller degrades to a default value.
func (c *Client) doRequest(ctx context.Context, url, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", accept)
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return resp, nil
}
