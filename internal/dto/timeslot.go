package dto

// CreateTimeSlotRequest creates one schedule slot. Times use "15:04" form.
type CreateTimeSlotRequest struct {
	Label     string  `json:"label" binding:"required" validate:"required"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	IsPeriod  bool    `json:"is_period"`
	Position  int     `json:"position" validate:"gte=0"`
}

// UpdateTimeSlotRequest mutates an existing slot. Nil fields keep their
// current value; empty-string times clear the field.
type UpdateTimeSlotRequest struct {
	Label     *string `json:"label" validate:"omitempty,min=1"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	IsPeriod  *bool   `json:"is_period"`
	Position  *int    `json:"position" validate:"omitempty,gte=0"`
}

// ValidateDraftRequest carries unsaved slot edits for validation before
// persisting.
type ValidateDraftRequest struct {
	Slots []DraftTimeSlot `json:"slots" binding:"required"`
}

// DraftTimeSlot is one unsaved slot in a draft validation payload.
type DraftTimeSlot struct {
	Label     string  `json:"label"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	IsPeriod  bool    `json:"is_period"`
}
