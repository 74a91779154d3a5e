// Command parkpulse runs one analysis pass: it samples the park's live wait
// times, compares them against the collected historical patterns, and writes
// the report artifacts. The pattern file is the only hard dependency; every
// other input degrades gracefully.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/alion8/parkpulse/internal/analyze"
	"github.com/alion8/parkpulse/internal/config"
	"github.com/alion8/parkpulse/internal/logger"
	"github.com/alion8/parkpulse/internal/models"
	"github.com/alion8/parkpulse/internal/patterns"
	"github.com/alion8/parkpulse/internal/predict"
	"github.com/alion8/parkpulse/internal/queuetimes"
	"github.com/alion8/parkpulse/internal/report"
)

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format)

	store, err := patterns.Load(cfg.Data.PatternsPath())
	if err != nil {
		logger.Error("No historical patterns available: %v", err)
		logger.Fatal("Run the collect command first to build %s", cfg.Data.PatternsPath())
	}
	logger.Info("Loaded patterns for %d attractions", store.Len())

	// Optional inputs: absence degrades the artifacts, never the run.
	durations, err := patterns.LoadDurations(cfg.Data.DurationsPath())
	if err != nil {
		logger.Warn("Failed to load ride durations: %v", err)
		durations = map[string]int{}
	}
	heights, err := patterns.LoadHeights(cfg.Data.HeightsPath())
	if err != nil {
		logger.Warn("Failed to load height requirements: %v", err)
		heights = map[string]int{}
	}
	calendar, err := patterns.LoadCalendar(cfg.Data.CalendarPath())
	if err != nil {
		logger.Warn("Failed to load calendar snapshot: %v", err)
		calendar = nil
	}

	now := time.Now()
	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.Park.Timeout)
	defer cancel()

	client := queuetimes.NewClient(cfg.Park)

	sample, err := client.FetchSample(ctx)
	if err != nil {
		logger.Warn("Live sample unavailable, reporting historical data only: %v", err)
		sample = models.Sample{}
	} else {
		logger.Info("Fetched live waits for %d attractions", len(sample))
	}

	hours := client.ParkHours(ctx, now)
	logger.Info("Operating window %02d:00-%02d:00 (open now: %v)",
		hours.Opening, hours.Closing, hours.IsOpenNow)

	analyzer := analyze.New(store, predict.New(store))
	comparisons := analyzer.Compare(sample, now)
	status := analyze.AssessPark(comparisons, hours)
	logger.Info("Park crowd level: %s (%d open, %d closed)",
		status.CrowdLevel, status.OpenCount, status.ClosedCount)

	writer := report.New(cfg.Reports.Dir, now)
	logger.Info("Writing reports to %s (run %s)", cfg.Reports.Dir, writer.RunID())

	writeArtifact := func(name string, err error) {
		if err != nil {
			logger.Warn("Failed to write %s: %v", name, err)
		}
	}
	writeArtifact("current waits", writer.WriteCurrentWaits(comparisons, durations, heights))
	writeArtifact("ride comparison", writer.WriteComparison(comparisons, durations, heights))
	writeArtifact("best times", writer.WriteBestTimes(cfg.Reports.MarqueeRides, comparisons, store, hours))
	writeArtifact("park status", writer.WriteParkStatus(status))
	writeArtifact("best options", writer.WriteBestOptions(comparisons, durations, heights, cfg.Reports.TopOptions))
	writeArtifact("park calendar", writer.WriteCalendar(calendar))

	logger.Info("Analysis run complete")
}
