package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Park    ParkConfig    `mapstructure:"park"`
	Data    DataConfig    `mapstructure:"data"`
	Reports ReportsConfig `mapstructure:"reports"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// ParkConfig identifies the tracked park and the endpoints serving its data
type ParkConfig struct {
	ID           int           `mapstructure:"id"`
	APIBaseURL   string        `mapstructure:"api_base_url"`
	CalendarURL  string        `mapstructure:"calendar_url"`
	CharacterURL string        `mapstructure:"character_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	RequestDelay time.Duration `mapstructure:"request_delay"` // pacing between scrape requests
}

// DataConfig holds the persisted-input file locations
type DataConfig struct {
	Dir           string `mapstructure:"dir"`
	PatternsFile  string `mapstructure:"patterns_file"`
	DurationsFile string `mapstructure:"durations_file"`
	HeightsFile   string `mapstructure:"heights_file"`
	CalendarFile  string `mapstructure:"calendar_file"`
	HistoryFile   string `mapstructure:"history_file"`
}

// ReportsConfig holds report-generation settings
type ReportsConfig struct {
	Dir          string   `mapstructure:"dir"`
	MarqueeRides []string `mapstructure:"marquee_rides"` // shortlist for the best-times artifact
	TopOptions   int      `mapstructure:"top_options"`   // shortest-wait list length
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from file and environment variables. A missing
// config file is not an error: every setting has a baked-in default so both
// binaries run unconfigured.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("PARKPULSE")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	// Park defaults (Disneyland on queue-times.com)
	v.SetDefault("park.id", 16)
	v.SetDefault("park.api_base_url", "https://queue-times.com")
	v.SetDefault("park.calendar_url", "https://www.themeparkiq.com/disneyland/daily-calendar")
	v.SetDefault("park.character_url", "https://www.themeparkiq.com/disneyland/character/schedule")
	v.SetDefault("park.timeout", "30s")
	v.SetDefault("park.request_delay", "500ms")

	// Data defaults
	v.SetDefault("data.dir", "./data")
	v.SetDefault("data.patterns_file", "ride_patterns.json")
	v.SetDefault("data.durations_file", "ride_durations.json")
	v.SetDefault("data.heights_file", "ride_height_requirements.json")
	v.SetDefault("data.calendar_file", "park_calendar.json")
	v.SetDefault("data.history_file", "daily_history.json")

	// Reports defaults
	v.SetDefault("reports.dir", "./output")
	v.SetDefault("reports.top_options", 10)
	v.SetDefault("reports.marquee_rides", []string{
		"Star Wars: Rise of the Resistance",
		"Indiana Jones™ Adventure",
		"Space Mountain",
		"Matterhorn Bobsleds",
		"Haunted Mansion Holiday",
	})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// Validate checks that all configuration values are valid
func (c *Config) Validate() error {
	if c.Park.ID < 1 {
		return fmt.Errorf("park.id must be positive")
	}
	if c.Park.APIBaseURL == "" {
		return fmt.Errorf("park.api_base_url is required")
	}
	if c.Park.Timeout < 1*time.Second {
		return fmt.Errorf("park.timeout must be at least 1 second")
	}
	if c.Park.RequestDelay < 0 {
		return fmt.Errorf("park.request_delay must not be negative")
	}

	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir is required")
	}
	if c.Data.PatternsFile == "" {
		return fmt.Errorf("data.patterns_file is required")
	}

	if c.Reports.Dir == "" {
		return fmt.Errorf("reports.dir is required")
	}
	if c.Reports.TopOptions < 1 {
		return fmt.Errorf("reports.top_options must be at least 1")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[c.Logging.Format] {
		return fmt.Errorf("logging.format must be one of: json, text")
	}

	return nil
}

// PatternsPath is the location of the mandatory pattern file.
func (d DataConfig) PatternsPath() string {
	return filepath.Join(d.Dir, d.PatternsFile)
}

// DurationsPath is the location of the optional ride-duration table.
func (d DataConfig) DurationsPath() string {
	return filepath.Join(d.Dir, d.DurationsFile)
}

// HeightsPath is the location of the optional height-requirement table.
func (d DataConfig) HeightsPath() string {
	return filepath.Join(d.Dir, d.HeightsFile)
}

// CalendarPath is the location of the optional calendar snapshot.
func (d DataConfig) CalendarPath() string {
	return filepath.Join(d.Dir, d.CalendarFile)
}

// HistoryPath is the location of the collected daily-history file.
func (d DataConfig) HistoryPath() string {
	return filepath.Join(d.Dir, d.HistoryFile)
}

// WaitTimesURL is the JSON endpoint serving the park's live wait times.
func (p ParkConfig) WaitTimesURL() string {
	return fmt.Sprintf("%s/parks/%d/queue_times.json", p.APIBaseURL, p.ID)
}

// RideURL is the document page carrying one ride's historical tables.
func (p ParkConfig) RideURL(rideID int) string {
	return fmt.Sprintf("%s/en-US/parks/%d/rides/%d", p.APIBaseURL, p.ID, rideID)
}

// CalendarDateURL is the document page carrying one calendar date's tables
// and operating hours.
func (p ParkConfig) CalendarDateURL(t time.Time) string {
	return fmt.Sprintf("%s/en-US/parks/%d/calendar/%04d/%02d/%02d",
		p.APIBaseURL, p.ID, t.Year(), int(t.Month()), t.Day())
}
