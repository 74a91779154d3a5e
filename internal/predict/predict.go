// Package predict blends an attraction's historical signals into a single
// expected-wait figure for a given instant.
//
// The blend is a deliberately simple heuristic, not a statistical estimator:
// the hour-of-day average is counted twice (it is the strongest predictor of
// wait), the month and day-of-week signals once each, and the result is the
// arithmetic mean rounded to one decimal. Signals are never weighted by
// recency or sample size. The double weighting is inherited tuning; keep it
// unless new evidence says otherwise.
package predict

import (
	"math"
	"time"

	"github.com/alion8/parkpulse/internal/models"
	"github.com/alion8/parkpulse/internal/patterns"
)

// Engine produces expected-wait figures from a read-only pattern store.
type Engine struct {
	store *patterns.Store
}

// New creates a prediction engine over the given store.
func New(store *patterns.Store) *Engine {
	return &Engine{store: store}
}

// Predict returns the expected wait in minutes for the ride at the given
// instant, or nil when no historical signal covers that time context.
func (e *Engine) Predict(rideName string, now time.Time) *float64 {
	pattern, ok := e.store.Get(rideName)
	if !ok {
		return nil
	}
	return Blend(pattern, now)
}

// Blend combines the pattern's signals relevant to the instant: hour-of-day
// average twice, month value once, day-of-week average once.
func Blend(pattern *models.RidePattern, now time.Time) *float64 {
	var observations []float64

	if stat, ok := pattern.ByTimeOfDay[models.HourKey(now.Hour())]; ok {
		if avg, ok := stat.Avg(); ok {
			observations = append(observations, avg, avg) // double weight
		}
	}

	if stat, ok := pattern.ByMonth[now.Format("Jan")]; ok {
		if v, ok := stat.First(); ok {
			observations = append(observations, v)
		}
	}

	if stat, ok := pattern.ByDayOfWeek[now.Format("Monday")]; ok {
		if avg, ok := stat.Avg(); ok {
			observations = append(observations, avg)
		}
	}

	if len(observations) == 0 {
		return nil
	}

	var sum float64
	for _, v := range observations {
		sum += v
	}
	mean := Round1(sum / float64(len(observations)))
	return &mean
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
