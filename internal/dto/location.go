package dto

// CreateLocationRequest captures the POST /locations payload.
type CreateLocationRequest struct {
	Name     string `json:"name" binding:"required" validate:"required"`
	Capacity int    `json:"capacity" validate:"gte=0"`
	Notes    string `json:"notes"`
}

// UpdateLocationRequest captures the PUT /locations/:id payload.
type UpdateLocationRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1"`
	Capacity *int    `json:"capacity" validate:"omitempty,gte=0"`
	Notes    *string `json:"notes"`
}
