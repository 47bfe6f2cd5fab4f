package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkshopDuration(t *testing.T) {
	tests := []struct {
		start, end int
		days       int
		desc       string
	}{
		{1, 4, 4, "Days 1-4"},
		{1, 2, 2, "Days 1-2"},
		{3, 4, 2, "Days 3-4"},
		{2, 2, 1, "Day 2"},
	}
	for _, tt := range tests {
		d := WorkshopDuration{StartDay: tt.start, EndDay: tt.end}
		assert.Equal(t, tt.days, d.NumberOfDays())
		assert.Equal(t, tt.desc, d.Description())
	}
}

func TestWorkshopKey(t *testing.T) {
	period := NewPeriod("MorningFirstPeriod")
	duration := WorkshopDuration{StartDay: 1, EndDay: 4}

	w := &Workshop{Name: "Pottery", Leader: "John Smith", Period: period, Duration: duration}
	assert.Equal(t, "MorningFirstPeriod|Pottery|John Smith|1-4", w.Key())

	// Changing any key component yields a distinct key.
	assert.NotEqual(t, w.Key(), WorkshopKey(NewPeriod("AfternoonPeriod"), "Pottery", "John Smith", duration))
	assert.NotEqual(t, w.Key(), WorkshopKey(period, "Archery", "John Smith", duration))
	assert.NotEqual(t, w.Key(), WorkshopKey(period, "Pottery", "Jane Doe", duration))
	assert.NotEqual(t, w.Key(), WorkshopKey(period, "Pottery", "John Smith", WorkshopDuration{StartDay: 1, EndDay: 2}))
}

func TestAttendeeFullName(t *testing.T) {
	assert.Equal(t, "Bob Smith", Attendee{FirstName: "Bob", LastName: "Smith"}.FullName())
	assert.Equal(t, "Bob ", Attendee{FirstName: "Bob"}.FullName(), "trailing space is kept")
	assert.Equal(t, "BobSmith", FallbackID("Bob", "Smith"))
}
