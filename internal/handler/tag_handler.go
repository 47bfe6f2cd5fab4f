package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pinecrest/camp-roster-api/internal/dto"
	"github.com/pinecrest/camp-roster-api/internal/service"
	appErrors "github.com/pinecrest/camp-roster-api/pkg/errors"
	"github.com/pinecrest/camp-roster-api/pkg/response"
)

// TagHandler handles workshop tag endpoints.
type TagHandler struct {
	service *service.TagService
}

// NewTagHandler constructs a tag handler.
func NewTagHandler(svc *service.TagService) *TagHandler {
	return &TagHandler{service: svc}
}

// List godoc
// @Summary List tags
// @Tags Tags
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /tags [get]
func (h *TagHandler) List(c *gin.Context) {
	tags, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, tags)
}

// Get godoc
// @Summary Get tag by id
// @Tags Tags
// @Produce json
// @Param id path string true "Tag ID"
// @Success 200 {object} response.Envelope
// @Router /tags/{id} [get]
func (h *TagHandler) Get(c *gin.Context) {
	tag, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, tag)
}

// Create godoc
// @Summary Create tag
// @Tags Tags
// @Accept json
// @Produce json
// @Param payload body dto.CreateTagRequest true "Tag payload"
// @Success 201 {object} response.Envelope
// @Router /tags [post]
func (h *TagHandler) Create(c *gin.Context) {
	var req dto.CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	tag, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, tag)
}

// Update godoc
// @Summary Update tag
// @Tags Tags
// @Accept json
// @Produce json
// @Param id path string true "Tag ID"
// @Param payload body dto.UpdateTagRequest true "Tag payload"
// @Success 200 {object} response.Envelope
// @Router /tags/{id} [put]
func (h *TagHandler) Update(c *gin.Context) {
	var req dto.UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	tag, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, tag)
}

// Delete godoc
// @Summary Delete tag
// @Tags Tags
// @Param id path string true "Tag ID"
// @Success 204
// @Router /tags/{id} [delete]
func (h *TagHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
