// Command collect builds the persisted inputs that the analyzer consumes: the
// per-attraction pattern file, the duration and height tables, and the
// calendar snapshot. With -history it instead harvests per-date statistics
// over a date range. Scrape requests are paced by the configured delay; a
// failed page skips that item only.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/alion8/parkpulse/internal/config"
	"github.com/alion8/parkpulse/internal/extract"
	"github.com/alion8/parkpulse/internal/logger"
	"github.com/alion8/parkpulse/internal/models"
	"github.com/alion8/parkpulse/internal/patterns"
	"github.com/alion8/parkpulse/internal/queuetimes"
)

const dateLayout = "2006-01-02"

// parkAreas are the resort's two park areas as named on the calendar page.
var parkAreas = []string{"Disneyland Park", "Disney California Adventure"}

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	history := flag.Bool("history", false, "Collect per-date history instead of patterns")
	from := flag.String("from", "", "History start date (YYYY-MM-DD)")
	to := flag.String("to", "", "History end date (YYYY-MM-DD)")
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

	ctx := context.Background()
	client := queuetimes.NewClient(cfg.Park)

	if *history {
		start, end, err := historyRange(*from, *to, time.Now())
		if err != nil {
			logger.Fatal("Invalid history range: %v", err)
		}
		collectHistory(ctx, client, cfg, start, end)
		return
	}

	collectPatterns(ctx, client, cfg)
	collectStaticTables(cfg)
	collectCalendar(ctx, client, cfg, time.Now())

	logger.Info("Collection complete")
}

// collectPatterns fetches the ride list and one document page per ride,
// extracting the four historical views and special-event data.
func collectPatterns(ctx context.Context, client *queuetimes.Client, cfg *config.Config) {
	rides, err := client.FetchRides(ctx)
	if err != nil {
		logger.Warn("Failed to fetch ride list, skipping pattern collection: %v", err)
		return
	}
	logger.Info("Collecting patterns for %d rides", len(rides))

	var records []models.RidePattern
	for _, ride := range rides {
		url := cfg.Park.RideURL(ride.ID)
		doc, err := client.FetchDocument(ctx, url)
		if err != nil {
			logger.Warn("Failed to fetch page for %q: %v", ride.Name, err)
			time.Sleep(cfg.Park.RequestDelay)
			continue
		}

		record := models.RidePattern{
			RideID:        ride.ID,
			RideName:      ride.Name,
			Land:          ride.Land,
			URL:           url,
			ByYear:        extract.Table(doc, extract.ByHeader{Keyword: "Year"}),
			ByDayOfWeek:   extract.Table(doc, extract.ByPosition{Index: 3}),
			ByTimeOfDay:   extract.Table(doc, extract.ByPosition{Index: 5}),
			ByMonth:       extract.Table(doc, extract.ByHeader{Keyword: "Month"}),
			SpecialEvents: extract.Table(doc, extract.ByPosition{Index: 6}),
		}
		records = append(records, record)
		logger.Debug("Collected %q: %d hour buckets, %d months",
			ride.Name, len(record.ByTimeOfDay), len(record.ByMonth))

		time.Sleep(cfg.Park.RequestDelay)
	}

	if err := patterns.WriteJSON(cfg.Data.PatternsPath(), records); err != nil {
		logger.Error("Failed to write pattern file: %v", err)
		return
	}
	logger.Info("Wrote %d pattern records to %s", len(records), cfg.Data.PatternsPath())
}

// collectStaticTables persists the baked-in duration and height tables.
func collectStaticTables(cfg *config.Config) {
	if err := patterns.WriteJSON(cfg.Data.DurationsPath(), rideDurations); err != nil {
		logger.Error("Failed to write duration table: %v", err)
	} else {
		logger.Info("Wrote durations for %d rides", len(rideDurations))
	}
	if err := patterns.WriteJSON(cfg.Data.HeightsPath(), rideHeights); err != nil {
		logger.Error("Failed to write height table: %v", err)
	} else {
		logger.Info("Wrote height requirements for %d rides", len(rideHeights))
	}
}

// collectCalendar scrapes the daily-calendar and character-schedule pages into
// one snapshot. The snapshot is stored unfiltered; elapsed times are removed
// at report time.
func collectCalendar(ctx context.Context, client *queuetimes.Client, cfg *config.Config, now time.Time) {
	calDoc, err := client.FetchDocument(ctx, cfg.Park.CalendarURL)
	if err != nil {
		logger.Warn("Failed to fetch calendar page, using defaults: %v", err)
		calDoc = nil
	}

	events := extract.Events(calDoc)
	closures := extract.Closures(calDoc)

	cal := models.Calendar{
		Date:  now.Format(dateLayout),
		URL:   cfg.Park.CalendarURL,
		Parks: make(map[string]models.ParkDay, len(parkAreas)),
	}
	for _, park := range parkAreas {
		cal.Parks[park] = models.ParkDay{
			Hours:             extract.Hours(calDoc, park),
			Parades:           extract.Entertainment(calDoc, "parade"),
			Nighttime:         extract.Entertainment(calDoc, "nighttime"),
			Events:            events,
			ClosedAttractions: closures,
		}
	}

	time.Sleep(cfg.Park.RequestDelay)

	charDoc, err := client.FetchDocument(ctx, cfg.Park.CharacterURL)
	if err != nil {
		logger.Warn("Failed to fetch character schedule: %v", err)
		charDoc = nil
	}
	cal.Characters = extract.Characters(charDoc)

	if err := patterns.WriteJSON(cfg.Data.CalendarPath(), cal); err != nil {
		logger.Error("Failed to write calendar snapshot: %v", err)
		return
	}
	logger.Info("Wrote calendar snapshot for %s (%d character entries)",
		cal.Date, len(cal.Characters))
}

// historyRange resolves the -from/-to flags, defaulting to the seven days
// ending yesterday.
func historyRange(from, to string, now time.Time) (time.Time, time.Time, error) {
	yesterday := now.AddDate(0, 0, -1)
	start := yesterday.AddDate(0, 0, -6)
	end := yesterday

	var err error
	if from != "" {
		if start, err = time.Parse(dateLayout, from); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("bad -from date %q: %w", from, err)
		}
	}
	if to != "" {
		if end, err = time.Parse(dateLayout, to); err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("bad -to date %q: %w", to, err)
		}
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("-to %s precedes -from %s",
			end.Format(dateLayout), start.Format(dateLayout))
	}
	return start, end, nil
}

// crowdLevelPattern matches the calendar page's crowd-level percentage.
var crowdLevelPattern = regexp.MustCompile(`Crowd level (\d+)%`)

// historyMarkers are the special-event phrases recorded per history date.
var historyMarkers = []string{"Early Entry", "Holiday"}

// collectHistory harvests one DayRecord per date in [start, end] from the
// per-date calendar pages.
func collectHistory(ctx context.Context, client *queuetimes.Client, cfg *config.Config, start, end time.Time) {
	var records []models.DayRecord

	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		url := cfg.Park.CalendarDateURL(date)
		doc, err := client.FetchDocument(ctx, url)
		if err != nil {
			logger.Warn("Failed to fetch history for %s: %v", date.Format(dateLayout), err)
			time.Sleep(cfg.Park.RequestDelay)
			continue
		}

		records = append(records, dayRecord(doc, date, url))
		logger.Debug("Collected history for %s", date.Format(dateLayout))

		time.Sleep(cfg.Park.RequestDelay)
	}

	if err := patterns.WriteJSON(cfg.Data.HistoryPath(), records); err != nil {
		logger.Error("Failed to write history file: %v", err)
		return
	}
	logger.Info("Wrote %d history records to %s", len(records), cfg.Data.HistoryPath())
}

// dayRecord extracts one date's statistics from its calendar page: the first
// three tables carry average waits, maximum waits and uptime, keyed by ride.
func dayRecord(doc *goquery.Document, date time.Time, url string) models.DayRecord {
	record := models.DayRecord{
		Date:          date.Format(dateLayout),
		DayOfWeek:     date.Format("Monday"),
		URL:           url,
		SpecialEvents: []string{},
		WaitAverage:   intTable(extract.Table(doc, extract.ByPosition{Index: 0})),
		WaitMax:       intTable(extract.Table(doc, extract.ByPosition{Index: 1})),
		Uptime:        floatTable(extract.Table(doc, extract.ByPosition{Index: 2})),
	}

	text := doc.Text()
	if match := crowdLevelPattern.FindStringSubmatch(text); match != nil {
		if level, ok := extract.FirstNumber(match[1]); ok {
			l := int(level)
			record.CrowdLevel = &l
		}
	}
	lower := strings.ToLower(text)
	for _, marker := range historyMarkers {
		if strings.Contains(lower, strings.ToLower(marker)) {
			record.SpecialEvents = append(record.SpecialEvents, marker)
		}
	}

	return record
}

// intTable keeps each row's first numeric column as an integer.
func intTable(rows map[string]models.Stat) map[string]int {
	out := make(map[string]int, len(rows))
	for key, stat := range rows {
		if v, ok := stat.Avg(); ok {
			out[key] = int(v)
		}
	}
	return out
}

// floatTable keeps each row's first numeric column as-is.
func floatTable(rows map[string]models.Stat) map[string]float64 {
	out := make(map[string]float64, len(rows))
	for key, stat := range rows {
		if v, ok := stat.Avg(); ok {
			out[key] = v
		}
	}
	return out
}
