package analyze

import (
	"sort"
	"time"

	"github.com/alion8/parkpulse/internal/models"
)

// HourRank is one hour bucket's historical average wait.
type HourRank struct {
	Hour    int
	Average float64
}

// BestWorst holds an attraction's three best and three worst hours inside the
// operating window, plus the typical wait for the current hour when known.
type BestWorst struct {
	Best           []HourRank
	Worst          []HourRank
	CurrentHour    int
	CurrentTypical *float64
}

// BestWorstHours ranks the attraction's hour-of-day view within the operating
// window [Opening, Closing). Buckets outside the window are never included,
// even when historical data exists for them (early-entry hours, for
// instance). Returns nil when the view is empty or nothing falls inside the
// window.
func BestWorstHours(pattern *models.RidePattern, hours models.OperatingHours, now time.Time) *BestWorst {
	if pattern == nil || len(pattern.ByTimeOfDay) == 0 {
		return nil
	}

	var ranks []HourRank
	for hour := 0; hour < 24; hour++ {
		if !hours.Contains(hour) {
			continue
		}
		stat, ok := pattern.ByTimeOfDay[models.HourKey(hour)]
		if !ok {
			continue
		}
		avg, ok := stat.Avg()
		if !ok {
			continue
		}
		ranks = append(ranks, HourRank{Hour: hour, Average: avg})
	}

	if len(ranks) == 0 {
		return nil
	}

	result := &BestWorst{CurrentHour: now.Hour()}

	for _, r := range ranks {
		if r.Hour == result.CurrentHour {
			avg := r.Average
			result.CurrentTypical = &avg
			break
		}
	}

	// ranks is built in hour order, so equal averages tie-break on hour.
	best := make([]HourRank, len(ranks))
	copy(best, ranks)
	sort.SliceStable(best, func(i, j int) bool { return best[i].Average < best[j].Average })

	worst := make([]HourRank, len(ranks))
	copy(worst, ranks)
	sort.SliceStable(worst, func(i, j int) bool { return worst[i].Average > worst[j].Average })

	result.Best = top3(best)
	result.Worst = top3(worst)
	return result
}

func top3(ranks []HourRank) []HourRank {
	if len(ranks) > 3 {
		return ranks[:3]
	}
	return ranks
}
