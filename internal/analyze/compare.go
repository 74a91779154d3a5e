// Package analyze compares live wait times against historical predictions and
// classifies crowd conditions at per-attraction and park-wide granularity. It
// also ranks an attraction's historical hours inside the park's operating
// window.
package analyze

import (
	"time"

	"github.com/alion8/parkpulse/internal/models"
	"github.com/alion8/parkpulse/internal/patterns"
	"github.com/alion8/parkpulse/internal/predict"
)

// Analyzer pairs the read-only pattern store with its prediction engine.
type Analyzer struct {
	store  *patterns.Store
	engine *predict.Engine
}

// New creates an analyzer over the given store and engine.
func New(store *patterns.Store, engine *predict.Engine) *Analyzer {
	return &Analyzer{store: store, engine: engine}
}

// Compare produces one comparison per attraction that has a prediction for
// the current time context. Rides absent from the live sample, or closed,
// carry a nil actual wait. The difference is defined only when the ride is
// open with a positive actual wait.
func (a *Analyzer) Compare(sample models.Sample, now time.Time) []models.Comparison {
	var comparisons []models.Comparison

	for _, rideName := range a.store.Names() {
		predicted := a.engine.Predict(rideName, now)
		if predicted == nil {
			continue
		}

		status := sample[rideName]

		var actual *int
		if status.IsOpen {
			actual = status.WaitTime
		}

		var difference *float64
		if actual != nil && *actual > 0 {
			d := predict.Round1(float64(*actual) - *predicted)
			difference = &d
		}

		comparisons = append(comparisons, models.Comparison{
			RideName:   rideName,
			Actual:     actual,
			Predicted:  predicted,
			Difference: difference,
			IsOpen:     status.IsOpen,
		})
	}

	return comparisons
}

// ParkStatus is the park-wide crowd assessment over all open attractions.
type ParkStatus struct {
	Hours            models.OperatingHours
	OpenCount        int
	ClosedCount      int
	AverageActual    float64
	AveragePredicted float64
	Difference       float64
	CrowdLevel       string
	Recommendation   string
}

// Park-wide recommendation strings attached to each crowd level.
const (
	recommendBusier  = "Consider visiting later or focus on low-wait attractions"
	recommendLighter = "Great time to visit! Take advantage of lower waits"
	recommendNormal  = "Normal crowds for this time of day"
)

// AssessPark computes the park-wide averages and crowd level. Closed
// attractions are excluded from all averaging; the classification thresholds
// are ±5 minutes on the mean actual-vs-predicted difference.
func AssessPark(comparisons []models.Comparison, hours models.OperatingHours) ParkStatus {
	status := ParkStatus{
		Hours:          hours,
		CrowdLevel:     models.ParkNormal,
		Recommendation: recommendNormal,
	}

	var sumActual, sumPredicted float64
	var nActual, nPredicted int

	for _, c := range comparisons {
		if !c.IsOpen {
			status.ClosedCount++
			continue
		}
		if c.Actual == nil {
			continue // open but no reported wait: counts toward neither total
		}
		status.OpenCount++

		if *c.Actual > 0 {
			sumActual += float64(*c.Actual)
			nActual++
		}
		if c.Predicted != nil && *c.Predicted > 0 {
			sumPredicted += *c.Predicted
			nPredicted++
		}
	}

	if nActual > 0 {
		status.AverageActual = predict.Round1(sumActual / float64(nActual))
	}
	if nPredicted > 0 {
		status.AveragePredicted = predict.Round1(sumPredicted / float64(nPredicted))
	}

	if nActual > 0 && nPredicted > 0 {
		status.Difference = predict.Round1(status.AverageActual - status.AveragePredicted)
		switch {
		case status.Difference > 5:
			status.CrowdLevel = models.ParkBusier
			status.Recommendation = recommendBusier
		case status.Difference < -5:
			status.CrowdLevel = models.ParkLighter
			status.Recommendation = recommendLighter
		}
	}

	return status
}
