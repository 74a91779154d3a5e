// Package extract converts loosely-structured document tables into keyed
// numeric records. Tables are addressed through a pluggable Strategy (by
// header keyword or by fixed position) so that source-format drift can be
// absorbed by swapping strategies rather than patching index constants.
//
// Extraction is deliberately forgiving: non-numeric cells contribute nothing,
// malformed rows degrade to "no data", and the result is always a (possibly
// empty) mapping, never an error.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/alion8/parkpulse/internal/models"
)

// Strategy addresses one table in a parsed document and names its columns.
type Strategy interface {
	// Table selects the addressed table, if present.
	Table(doc *goquery.Document) (*goquery.Selection, bool)
	// ColumnKey names the i-th numeric column of a row (1-based).
	ColumnKey(i int) string
}

// ByPosition addresses a table by its index among all tables in the document.
// Columns carry the statistic names "avg" and "max" used by hour-of-day and
// day-of-week views.
type ByPosition struct {
	Index int
}

// Table returns the Index-th table in document order.
func (b ByPosition) Table(doc *goquery.Document) (*goquery.Selection, bool) {
	tables := doc.Find("table")
	if b.Index < 0 || b.Index >= tables.Length() {
		return nil, false
	}
	return tables.Eq(b.Index), true
}

// ColumnKey names the first numeric column "avg" and the second "max";
// further columns fall back to generic positional names.
func (b ByPosition) ColumnKey(i int) string {
	switch i {
	case 1:
		return "avg"
	case 2:
		return "max"
	default:
		return fmt.Sprintf("value_%d", i)
	}
}

// ByHeader addresses the first table whose header row contains the keyword
// (case-insensitive). Columns carry generic positional names.
type ByHeader struct {
	Keyword string
}

// Table returns the first table whose <th> text contains the keyword.
func (b ByHeader) Table(doc *goquery.Document) (*goquery.Selection, bool) {
	keyword := strings.ToLower(b.Keyword)
	var match *goquery.Selection

	doc.Find("table").EachWithBreak(func(_ int, table *goquery.Selection) bool {
		var header strings.Builder
		table.Find("th").Each(func(_ int, th *goquery.Selection) {
			header.WriteString(strings.TrimSpace(th.Text()))
			header.WriteString(" ")
		})
		if strings.Contains(strings.ToLower(header.String()), keyword) {
			match = table
			return false
		}
		return true
	})

	if match == nil {
		return nil, false
	}
	return match, true
}

// ColumnKey names columns "value_1", "value_2", ...
func (b ByHeader) ColumnKey(i int) string {
	return fmt.Sprintf("value_%d", i)
}

var numberPattern = regexp.MustCompile(`\d+(?:\.\d+)?`)

// FirstNumber returns the first numeric substring of s, if any.
func FirstNumber(s string) (float64, bool) {
	match := numberPattern.FindString(s)
	if match == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Table extracts the strategy's table into a mapping from each row's
// first-column label to the numeric values of its remaining columns. Row
// labels that are bare hours are canonicalized to "HH:00" keys. Rows that
// yield no numeric values contribute nothing.
func Table(doc *goquery.Document, strategy Strategy) map[string]models.Stat {
	records := make(map[string]models.Stat)
	if doc == nil {
		return records
	}

	table, ok := strategy.Table(doc)
	if !ok {
		return records
	}

	table.Find("tr").Each(func(rowIndex int, row *goquery.Selection) {
		if rowIndex == 0 {
			return // header row
		}

		cols := row.Find("td")
		if cols.Length() < 2 {
			return
		}

		key := strings.TrimSpace(cols.Eq(0).Text())
		if key == "" {
			return
		}

		values := make(models.Stat)
		for i := 1; i < cols.Length(); i++ {
			if v, ok := FirstNumber(strings.TrimSpace(cols.Eq(i).Text())); ok {
				values[strategy.ColumnKey(i)] = v
			}
		}
		if len(values) == 0 {
			return
		}

		records[canonicalKey(key)] = values
	})

	return records
}

// canonicalKey reformats purely numeric row labels in the hour range [0,23]
// as zero-padded "HH:00" hour-bucket keys. Other labels (day names, month
// abbreviations, years) pass through verbatim.
func canonicalKey(key string) string {
	hour, err := strconv.Atoi(key)
	if err != nil || hour < 0 || hour > 23 {
		return key
	}
	return models.HourKey(hour)
}
