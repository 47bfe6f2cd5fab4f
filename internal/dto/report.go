package dto

import "time"

// Report type and format values accepted by POST /reports.
const (
	ReportTypeRoster   = "roster"
	ReportTypeSchedule = "schedule"

	ReportFormatCSV = "csv"
	ReportFormatPDF = "pdf"
)

// GenerateReportRequest captures the POST /reports payload.
type GenerateReportRequest struct {
	ImportID string `json:"importId" binding:"required" validate:"required"`
	Type     string `json:"type" binding:"required" validate:"required,oneof=roster schedule"`
	Format   string `json:"format" binding:"required" validate:"required,oneof=csv pdf"`
	Force    bool   `json:"force"`
}

// ReportResponse is returned once a report file has been rendered.
type ReportResponse struct {
	ID        string    `json:"id"`
	ImportID  string    `json:"importId"`
	Type      string    `json:"type"`
	Format    string    `json:"format"`
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}
