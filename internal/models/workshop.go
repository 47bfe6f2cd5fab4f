package models

import "fmt"

// WorkshopDuration is the day span a workshop runs for, inclusive on both
// ends. StartDay <= EndDay always holds for durations built from a schema.
type WorkshopDuration struct {
	StartDay int `json:"start_day"`
	EndDay   int `json:"end_day"`
}

// NumberOfDays returns the inclusive day count.
func (d WorkshopDuration) NumberOfDays() int {
	return d.EndDay - d.StartDay + 1
}

// Description renders the span for rosters: "Day 3" or "Days 1-4".
func (d WorkshopDuration) Description() string {
	if d.NumberOfDays() == 1 {
		return fmt.Sprintf("Day %d", d.StartDay)
	}
	return fmt.Sprintf("Days %d-%d", d.StartDay, d.EndDay)
}

// WorkshopSelection is one attendee's enrollment in one workshop instance.
// ChoiceNumber 1 is the primary enrollment; higher numbers are backups in
// increasing order.
type WorkshopSelection struct {
	ClassSelectionID string           `json:"class_selection_id"`
	WorkshopName     string           `json:"workshop_name"`
	FirstName        string           `json:"first_name"`
	LastName         string           `json:"last_name"`
	FullName         string           `json:"full_name"`
	ChoiceNumber     int              `json:"choice_number"`
	Duration         WorkshopDuration `json:"duration"`
	RegistrationID   int              `json:"registration_id"`
}

// Workshop is an aggregate offering: one leader teaching one named activity
// in one period for one duration. Aggregates live for a single import run.
type Workshop struct {
	Name            string              `json:"name"`
	Leader          string              `json:"leader"`
	Location        string              `json:"location"`
	Period          Period              `json:"period"`
	Duration        WorkshopDuration    `json:"duration"`
	IsMini          bool                `json:"is_mini"`
	MaxParticipants int                 `json:"max_participants"`
	MinAge          int                 `json:"min_age"`
	Selections      []WorkshopSelection `json:"selections"`
	Tags            []string            `json:"tags,omitempty"`
}

// Key is the deduplication identity. Two cells naming the same workshop and
// leader but a different period or duration produce distinct aggregates.
func (w *Workshop) Key() string {
	return WorkshopKey(w.Period, w.Name, w.Leader, w.Duration)
}

// WorkshopKey builds the four-part aggregate key without allocating a Workshop.
func WorkshopKey(period Period, name, leader string, duration WorkshopDuration) string {
	return fmt.Sprintf("%s|%s|%s|%d-%d", period.SheetName, name, leader, duration.StartDay, duration.EndDay)
}
