package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pinecrest/camp-roster-api/internal/dto"
	"github.com/pinecrest/camp-roster-api/internal/service"
	appErrors "github.com/pinecrest/camp-roster-api/pkg/errors"
	"github.com/pinecrest/camp-roster-api/pkg/response"
)

// LocationHandler handles workshop location endpoints.
type LocationHandler struct {
	service *service.LocationService
}

// NewLocationHandler constructs a location handler.
func NewLocationHandler(svc *service.LocationService) *LocationHandler {
	return &LocationHandler{service: svc}
}

// List godoc
// @Summary List locations
// @Tags Locations
// @Produce json
// @Param search query string false "Filter by name"
// @Success 200 {object} response.Envelope
// @Router /locations [get]
func (h *LocationHandler) List(c *gin.Context) {
	locations, err := h.service.List(c.Request.Context(), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, locations)
}

// Get godoc
// @Summary Get location by id
// @Tags Locations
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {object} response.Envelope
// @Router /locations/{id} [get]
func (h *LocationHandler) Get(c *gin.Context) {
	location, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, location)
}

// Create godoc
// @Summary Create location
// @Tags Locations
// @Accept json
// @Produce json
// @Param payload body dto.CreateLocationRequest true "Location payload"
// @Success 201 {object} response.Envelope
// @Router /locations [post]
func (h *LocationHandler) Create(c *gin.Context) {
	var req dto.CreateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	location, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, location)
}

// Update godoc
// @Summary Update location
// @Tags Locations
// @Accept json
// @Produce json
// @Param id path string true "Location ID"
// @Param payload body dto.UpdateLocationRequest true "Location payload"
// @Success 200 {object} response.Envelope
// @Router /locations/{id} [put]
func (h *LocationHandler) Update(c *gin.Context) {
	var req dto.UpdateLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	location, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, location)
}

// Delete godoc
// @Summary Delete location
// @Tags Locations
// @Param id path string true "Location ID"
// @Success 204
// @Router /locations/{id} [delete]
func (h *LocationHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
