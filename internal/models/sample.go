package models

// RideStatus is one attraction's entry in a live wait-time snapshot.
// WaitTime is nil when the endpoint reports no figure; a closed ride's wait
// time is not meaningful even when present.
type RideStatus struct {
	WaitTime    *int   `json:"wait_time"`
	IsOpen      bool   `json:"is_open"`
	LastUpdated string `json:"last_updated"` // passed through as reported
}

// Sample is a full live snapshot keyed by ride name. It is fetched fresh each
// run and discarded after report generation.
type Sample map[string]RideStatus

// Crowd status labels for a single ride (actual vs. predicted, ±10 minutes).
const (
	CrowdNormal  = "NORMAL"
	CrowdBusier  = "BUSIER_THAN_USUAL"
	CrowdLighter = "LIGHTER_THAN_USUAL"
)

// Crowd level labels for the whole park (mean actual vs. mean predicted, ±5 minutes).
const (
	ParkNormal  = "NORMAL"
	ParkBusier  = "BUSIER_THAN_TYPICAL"
	ParkLighter = "LIGHTER_THAN_TYPICAL"
)

// Comparison pairs one open ride's live wait with its historical prediction.
// Difference = Actual − Predicted, defined only when both are present and the
// actual wait is positive.
type Comparison struct {
	RideName   string
	Actual     *int
	Predicted  *float64
	Difference *float64
	IsOpen     bool
}

// CrowdStatus classifies the comparison against the ±10 minute thresholds.
// The boundary itself (exactly ±10) is NORMAL.
func (c *Comparison) CrowdStatus() string {
	if c.Difference == nil {
		return CrowdNormal
	}
	switch {
	case *c.Difference > 10:
		return CrowdBusier
	case *c.Difference < -10:
		return CrowdLighter
	default:
		return CrowdNormal
	}
}

// OperatingHours is the park's operating window for ranking purposes, as a
// half-open hour interval [Opening, Closing). Closing 24 denotes midnight.
type OperatingHours struct {
	Opening   int  `json:"opening"`
	Closing   int  `json:"closing"`
	IsOpenNow bool `json:"is_open_now"`
}

// Contains reports whether the hour falls inside the operating window.
func (o OperatingHours) Contains(hour int) bool {
	return hour >= o.Opening && hour < o.Closing
}
