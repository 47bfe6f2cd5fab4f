package dto

import (
	"time"

	"github.com/pinecrest/camp-roster-api/internal/models"
)

// ImportResponse is returned after a workbook upload is processed.
type ImportResponse struct {
	ID             string    `json:"id"`
	EventName      string    `json:"eventName"`
	AttendeeCount  int       `json:"attendeeCount"`
	SelectionCount int       `json:"selectionCount"`
	WorkshopCount  int       `json:"workshopCount"`
	Warnings       []string  `json:"warnings,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// WorkshopSummary flattens an aggregated workshop for listings.
type WorkshopSummary struct {
	Key            string `json:"key"`
	Name           string `json:"name"`
	Leader         string `json:"leader"`
	Period         string `json:"period"`
	Duration       string `json:"duration"`
	SelectionCount int    `json:"selectionCount"`
}

// NewImportResponse maps a stored result onto the API shape.
func NewImportResponse(result *models.ImportResult) ImportResponse {
	return ImportResponse{
		ID:             result.ID,
		EventName:      result.EventName,
		AttendeeCount:  result.AttendeeCount,
		SelectionCount: result.SelectionCount,
		WorkshopCount:  len(result.Workshops),
		Warnings:       result.Warnings,
		CreatedAt:      result.CreatedAt,
	}
}

// NewWorkshopSummaries maps aggregated workshops onto the listing shape.
func NewWorkshopSummaries(workshops []*models.Workshop) []WorkshopSummary {
	summaries := make([]WorkshopSummary, 0, len(workshops))
	for _, w := range workshops {
		summaries = append(summaries, WorkshopSummary{
			Key:            w.Key(),
			Name:           w.Name,
			Leader:         w.Leader,
			Period:         w.Period.DisplayName,
			Duration:       w.Duration.Description(),
			SelectionCount: len(w.Selections),
		})
	}
	return summaries
}
