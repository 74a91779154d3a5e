// Package patterns owns the persisted historical inputs: the per-attraction
// pattern records (mandatory) and the duration, height-requirement and
// calendar side tables (optional). Everything loaded here is read-only for
// the rest of the run.
package patterns

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/alion8/parkpulse/internal/logger"
	"github.com/alion8/parkpulse/internal/models"
)

// Store is an in-memory index of one pattern record per attraction, keyed by
// ride name. Built once per run; never mutated during analysis.
type Store struct {
	byName map[string]*models.RidePattern
	order  []string // ride names in file order, for deterministic iteration
}

// Load reads the pattern file and builds the store. The pattern file is the
// one mandatory input: a missing or unreadable file is an error, and the
// caller aborts the analysis with a pointer at the collection step.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern file: %w", err)
	}

	var records []models.RidePattern
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pattern file: %w", err)
	}

	return NewStore(records), nil
}

// NewStore indexes the records in order, skipping invalid entries and
// duplicates (first record wins).
func NewStore(records []models.RidePattern) *Store {
	s := &Store{byName: make(map[string]*models.RidePattern, len(records))}
	for i := range records {
		record := &records[i]
		if err := record.Validate(); err != nil {
			logger.Warn("Skipping invalid pattern record: %v", err)
			continue
		}
		if _, exists := s.byName[record.RideName]; exists {
			logger.Warn("Duplicate pattern record for %q, keeping the first", record.RideName)
			continue
		}
		s.byName[record.RideName] = record
		s.order = append(s.order, record.RideName)
	}
	return s
}

// Get returns the pattern record for a ride name.
func (s *Store) Get(rideName string) (*models.RidePattern, bool) {
	p, ok := s.byName[rideName]
	return p, ok
}

// Names returns all ride names in file order.
func (s *Store) Names() []string {
	return s.order
}

// Len returns the number of indexed attractions.
func (s *Store) Len() int {
	return len(s.order)
}

// LoadDurations reads the ride-duration table (minutes per ride). The file is
// a soft dependency: a missing file yields an empty table and no error.
func LoadDurations(path string) (map[string]int, error) {
	table := make(map[string]int)
	if err := readOptionalJSON(path, &table); err != nil {
		return nil, err
	}
	return table, nil
}

// LoadHeights reads the height-requirement table (inches per ride). Absence
// of an entry means "unknown", never zero. The file is a soft dependency.
func LoadHeights(path string) (map[string]int, error) {
	table := make(map[string]int)
	if err := readOptionalJSON(path, &table); err != nil {
		return nil, err
	}
	return table, nil
}

// LoadCalendar reads the persisted calendar snapshot. Returns (nil, nil) when
// no snapshot exists; the calendar artifact is simply skipped.
func LoadCalendar(path string) (*models.Calendar, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read calendar file: %w", err)
	}
	var cal models.Calendar
	if err := json.Unmarshal(data, &cal); err != nil {
		return nil, fmt.Errorf("failed to unmarshal calendar file: %w", err)
	}
	return &cal, nil
}

// readOptionalJSON decodes path into out, treating a missing file as empty.
func readOptionalJSON(path string, out interface{}) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", path, err)
	}
	return nil
}

// WriteJSON persists v as indented JSON with an atomic tmp+rename write,
// creating the parent directory when needed.
func WriteJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal data: %w", err)
	}

	tempPath := path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return fmt.Errorf("failed to rename file: %w", err)
	}
	return nil
}
