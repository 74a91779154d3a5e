package models

// ScheduleItem is one named calendar entry (parade, show, character
// meet-and-greet, event, closure). Times are wall-clock strings in 12-hour
// "H:MMam/pm" form, ordered as published; an item may carry none.
type ScheduleItem struct {
	Name     string   `json:"name"`
	Location string   `json:"location,omitempty"`
	Times    []string `json:"times,omitempty"`
}

// ParkHours holds a park area's published open and close times in 24-hour
// "HH:MM" form.
type ParkHours struct {
	Open  string `json:"open"`
	Close string `json:"close"`
}

// ParkDay is one park area's calendar for a single date.
type ParkDay struct {
	Hours             ParkHours      `json:"hours"`
	Parades           []ScheduleItem `json:"parades"`
	Nighttime         []ScheduleItem `json:"nighttime"`
	Events            []ScheduleItem `json:"events"`
	ClosedAttractions []ScheduleItem `json:"closed_attractions"`
}

// Calendar is the persisted calendar snapshot: hours, entertainment, events
// and closures per park area, plus character meet-and-greets shared across
// the resort.
type Calendar struct {
	Date       string             `json:"date"`
	URL        string             `json:"url,omitempty"`
	Parks      map[string]ParkDay `json:"parks"`
	Characters []ScheduleItem     `json:"character_meet_and_greets"`
}
