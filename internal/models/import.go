package models

import "time"

// ImportResult is the product of one ingestion run: the full workshop
// collection plus summary counts. Rebuilt fresh on every import.
type ImportResult struct {
	ID             string      `json:"id"`
	EventName      string      `json:"event_name"`
	Workshops      []*Workshop `json:"workshops"`
	AttendeeCount  int         `json:"attendee_count"`
	SelectionCount int         `json:"selection_count"`
	Warnings       []string    `json:"warnings,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
}

// ImportSummary is the listing shape returned right after an upload.
type ImportSummary struct {
	ID             string    `json:"id"`
	EventName      string    `json:"event_name"`
	WorkshopCount  int       `json:"workshop_count"`
	AttendeeCount  int       `json:"attendee_count"`
	SelectionCount int       `json:"selection_count"`
	Warnings       []string  `json:"warnings,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Summary projects the result into its listing shape.
func (r *ImportResult) Summary() ImportSummary {
	return ImportSummary{
		ID:             r.ID,
		EventName:      r.EventName,
		WorkshopCount:  len(r.Workshops),
		AttendeeCount:  r.AttendeeCount,
		SelectionCount: r.SelectionCount,
		Warnings:       r.Warnings,
		CreatedAt:      r.CreatedAt,
	}
}
