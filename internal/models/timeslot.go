package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// TimeOfDay is a wall-clock time expressed as minutes since midnight.
// Slot comparison only needs ordering, so the date component is dropped
// at the edge.
type TimeOfDay int

// ParseTimeOfDay parses "15:04" formatted input.
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", value)
	if err != nil {
		return 0, fmt.Errorf("parse time of day %q: %w", value, err)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// String renders the canonical "15:04" form.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", int(t)/60, int(t)%60)
}

// MarshalJSON encodes the time as its "15:04" string.
func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON accepts "15:04" strings.
func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// TimeSlot is one row of the user-edited event schedule. Period slots are
// expected to carry both times; the validator, not the type, enforces that.
type TimeSlot struct {
	ID        string     `json:"id"`
	Label     string     `json:"label"`
	StartTime *TimeOfDay `json:"start_time"`
	EndTime   *TimeOfDay `json:"end_time"`
	IsPeriod  bool       `json:"is_period"`
	Position  int        `json:"position"`
}

// ScheduleValidation is the verdict over a slot configuration. IsValid is
// the NOR of the two failure flags.
type ScheduleValidation struct {
	IsValid                  bool `json:"is_valid"`
	HasOverlappingTimeslots  bool `json:"has_overlapping_timeslots"`
	HasUnconfiguredTimeslots bool `json:"has_unconfigured_timeslots"`
}
