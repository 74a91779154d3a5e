package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/alion8/parkpulse/internal/models"
	"github.com/alion8/parkpulse/internal/schedule"
)

// clockListPattern finds 12-hour wall-clock occurrences like "8:30 PM" inside
// free-form text.
var clockListPattern = regexp.MustCompile(`\d{1,2}:\d{2}\s*[AaPp][Mm]`)

// hoursRangePattern matches a published hours range like "8:00 AM - 12:00 AM".
var hoursRangePattern = regexp.MustCompile(`(\d{1,2}:\d{2}\s*[AaPp][Mm])\s*[-–]\s*(\d{1,2}:\d{2}\s*[AaPp][Mm])`)

// ClockTimes returns the normalized (lowercase, no inner space) wall-clock
// strings found in s, in order of appearance, deduplicated.
func ClockTimes(s string) []string {
	var times []string
	seen := make(map[string]bool)
	for _, match := range clockListPattern.FindAllString(s, -1) {
		normalized := strings.ToLower(strings.ReplaceAll(match, " ", ""))
		if seen[normalized] {
			continue
		}
		seen[normalized] = true
		times = append(times, normalized)
	}
	return times
}

// Hours extracts the named park's operating hours from a calendar document.
// It scans the document's text for an hours range appearing after the park
// name; when none is found the park's customary hours are assumed.
func Hours(doc *goquery.Document, parkName string) models.ParkHours {
	fallback := models.ParkHours{Open: "08:00", Close: "23:00"}
	if strings.Contains(strings.ToLower(parkName), "adventure") {
		fallback.Close = "21:00"
	}
	if doc == nil {
		return fallback
	}

	text := doc.Text()
	idx := strings.Index(strings.ToLower(text), strings.ToLower(parkName))
	if idx < 0 {
		return fallback
	}

	// Look in a bounded window after the park name so one park's hours are
	// not attributed to the other.
	window := text[idx:]
	if len(window) > 500 {
		window = window[:500]
	}

	match := hoursRangePattern.FindStringSubmatch(window)
	if match == nil {
		return fallback
	}

	openAt, ok := clockTo24(match[1])
	if !ok {
		return fallback
	}
	closeAt, ok := clockTo24(match[2])
	if !ok {
		return fallback
	}
	return models.ParkHours{Open: openAt, Close: closeAt}
}

func clockTo24(s string) (string, bool) {
	hour, minute, ok := schedule.ParseClock(s)
	if !ok {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), true
}

// maxAncestorDepth bounds the parent walk when pairing a link with its
// surrounding schedule text.
const maxAncestorDepth = 5

// Entertainment extracts the entertainment entries (parades, shows) whose
// surrounding markup mentions the section keyword. Show times are pulled from
// the text around each entry's link. When the keyword matches nothing, all
// entertainment entries are returned, so a heading rename degrades to an
// unsectioned list instead of an empty one.
func Entertainment(doc *goquery.Document, sectionKeyword string) []models.ScheduleItem {
	if doc == nil {
		return nil
	}

	all := scheduleLinks(doc, "/entertainment/")
	if sectionKeyword == "" {
		return all
	}

	keyword := strings.ToLower(sectionKeyword)
	var matched []models.ScheduleItem
	for _, item := range all {
		if strings.Contains(strings.ToLower(item.Location), keyword) ||
			strings.Contains(strings.ToLower(item.Name), keyword) {
			matched = append(matched, item)
		}
	}
	if matched != nil {
		return matched
	}
	return all
}

// Characters extracts the character meet-and-greet entries, deduplicated by
// character name.
func Characters(doc *goquery.Document) []models.ScheduleItem {
	if doc == nil {
		return nil
	}
	return scheduleLinks(doc, "/character/")
}

// scheduleLinks collects one ScheduleItem per distinct link whose href
// contains the marker, pairing each link with the times and location text
// found among its nearest ancestors.
func scheduleLinks(doc *goquery.Document, hrefMarker string) []models.ScheduleItem {
	var items []models.ScheduleItem
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href, _ := link.Attr("href")
		if !strings.Contains(href, hrefMarker) {
			return
		}

		name := strings.TrimSpace(link.Text())
		if name == "" || seen[name] {
			return
		}

		times, location := surroundingSchedule(link, name)
		seen[name] = true
		items = append(items, models.ScheduleItem{
			Name:     name,
			Location: location,
			Times:    times,
		})
	})

	return items
}

// surroundingSchedule walks up from the link until an ancestor's text carries
// wall-clock times, then derives the location from the leftover text.
func surroundingSchedule(link *goquery.Selection, name string) (times []string, location string) {
	node := link
	for depth := 0; depth < maxAncestorDepth; depth++ {
		node = node.Parent()
		if node.Length() == 0 {
			return nil, ""
		}

		text := node.Text()
		found := ClockTimes(text)
		if len(found) == 0 {
			continue
		}

		return found, locationFrom(text, name)
	}
	return nil, ""
}

// locationFrom pulls a short "at <place>" style location out of the schedule
// text, if one is present.
func locationFrom(text, name string) string {
	remainder := strings.TrimSpace(strings.Replace(text, name, "", 1))
	remainder = clockListPattern.ReplaceAllString(remainder, "")
	for _, line := range strings.Split(remainder, "\n") {
		line = strings.TrimSpace(strings.Trim(strings.TrimSpace(line), ",|•"))
		if line == "" {
			continue
		}
		if len(line) > 60 {
			continue
		}
		return line
	}
	return ""
}

// eventKeywords are the seasonal and special-event phrases recognized on the
// calendar page.
var eventKeywords = []string{
	"Halloween Time",
	"70th Anniversary",
	"Plaza de la Familia",
	"Holiday",
	"Festival",
	"Celebration",
}

// Events scans the document text for lines announcing seasonal or special
// events. Matching lines are kept verbatim as event names; very short or very
// long lines are noise and skipped.
func Events(doc *goquery.Document) []models.ScheduleItem {
	if doc == nil {
		return nil
	}

	var events []models.ScheduleItem
	seen := make(map[string]bool)

	for _, line := range strings.Split(doc.Text(), "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 10 || len(line) > 100 {
			continue
		}
		for _, keyword := range eventKeywords {
			if !strings.Contains(line, keyword) {
				continue
			}
			if seen[line] {
				break
			}
			seen[line] = true
			events = append(events, models.ScheduleItem{Name: line})
			break
		}
	}

	return events
}

// closureKeywords mark a line as announcing an attraction closure.
var closureKeywords = []string{"refurbishment", "closed for", "temporarily closed"}

// Closures scans the document text for attraction closure announcements.
func Closures(doc *goquery.Document) []models.ScheduleItem {
	if doc == nil {
		return nil
	}

	var closures []models.ScheduleItem
	seen := make(map[string]bool)

	for _, line := range strings.Split(doc.Text(), "\n") {
		line = strings.TrimSpace(line)
		if len(line) < 10 || len(line) > 120 {
			continue
		}
		lower := strings.ToLower(line)
		for _, keyword := range closureKeywords {
			if !strings.Contains(lower, keyword) {
				continue
			}
			if seen[line] {
				break
			}
			seen[line] = true
			closures = append(closures, models.ScheduleItem{Name: line})
			break
		}
	}

	return closures
}
