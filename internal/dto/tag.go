package dto

// CreateTagRequest captures the POST /tags payload.
type CreateTagRequest struct {
	Name  string `json:"name" binding:"required" validate:"required,min=1"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

// UpdateTagRequest captures the PUT /tags/:id payload.
type UpdateTagRequest struct {
	Name  *string `json:"name" validate:"omitempty,min=1"`
	Color *string `json:"color" validate:"omitempty,hexcolor"`
}
