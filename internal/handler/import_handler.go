package handler

import (
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pinecrest/camp-roster-api/internal/dto"
	"github.com/pinecrest/camp-roster-api/internal/service"
	"github.com/pinecrest/camp-roster-api/internal/workbook"
	appErrors "github.com/pinecrest/camp-roster-api/pkg/errors"
	"github.com/pinecrest/camp-roster-api/pkg/response"
)

// ImportHandler handles workbook upload and import retrieval endpoints.
type ImportHandler struct {
	service       *service.ImportService
	schema        workbook.ImportSchema
	maxUploadSize int64
}

// NewImportHandler constructs an import handler.
func NewImportHandler(svc *service.ImportService, schema workbook.ImportSchema, maxUploadSize int64) *ImportHandler {
	if maxUploadSize <= 0 {
		maxUploadSize = 20 << 20
	}
	return &ImportHandler{service: svc, schema: schema, maxUploadSize: maxUploadSize}
}

// Upload godoc
// @Summary Import a registration workbook
// @Tags Imports
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Registration workbook (.xlsx)"
// @Success 201 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /imports [post]
func (h *ImportHandler) Upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "missing workbook file"))
		return
	}
	if ext := strings.ToLower(filepath.Ext(fileHeader.Filename)); ext != ".xlsx" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "only .xlsx workbooks are supported"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}
	defer file.Close() //nolint:errcheck

	wb, err := workbook.NewWorkbookFromReader(file)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "file is not a readable workbook"))
		return
	}

	result, err := h.service.Run(c.Request.Context(), wb, h.schema)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, dto.NewImportResponse(result))
}

// Get godoc
// @Summary Get a stored import summary
// @Tags Imports
// @Produce json
// @Param id path string true "Import ID"
// @Success 200 {object} response.Envelope
// @Router /imports/{id} [get]
func (h *ImportHandler) Get(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.NewImportResponse(result))
}

// Workshops godoc
// @Summary List aggregated workshops for an import
// @Tags Imports
// @Produce json
// @Param id path string true "Import ID"
// @Success 200 {object} response.Envelope
// @Router /imports/{id}/workshops [get]
func (h *ImportHandler) Workshops(c *gin.Context) {
	result, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	if c.Query("view") == "summary" {
		response.OK(c, dto.NewWorkshopSummaries(result.Workshops))
		return
	}
	response.OK(c, result.Workshops)
}
