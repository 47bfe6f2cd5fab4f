package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pinecrest/camp-roster-api/internal/dto"
	"github.com/pinecrest/camp-roster-api/internal/service"
	appErrors "github.com/pinecrest/camp-roster-api/pkg/errors"
	"github.com/pinecrest/camp-roster-api/pkg/response"
)

var reportContentTypes = map[string]string{
	"csv": "text/csv",
	"pdf": "application/pdf",
}

// ReportHandler handles report generation and signed downloads.
type ReportHandler struct {
	service *service.ReportService
}

// NewReportHandler constructs a report handler.
func NewReportHandler(svc *service.ReportService) *ReportHandler {
	return &ReportHandler{service: svc}
}

// Generate godoc
// @Summary Generate a roster or schedule report
// @Tags Reports
// @Accept json
// @Produce json
// @Param payload body dto.GenerateReportRequest true "Report request"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /reports [post]
func (h *ReportHandler) Generate(c *gin.Context) {
	var req dto.GenerateReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	report, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, report)
}

// Download godoc
// @Summary Download a generated report by signed token
// @Tags Reports
// @Produce octet-stream
// @Param token path string true "Signed download token"
// @Success 200 {file} binary
// @Router /reports/{token} [get]
func (h *ReportHandler) Download(c *gin.Context) {
	download, err := h.service.Download(c.Param("token"))
	if err != nil {
		response.Error(c, err)
		return
	}
	defer download.File.Close() //nolint:errcheck

	contentType, ok := reportContentTypes[download.Format]
	if !ok {
		contentType = "application/octet-stream"
	}
	modTime := time.Time{}
	if info, err := download.File.Stat(); err == nil {
		modTime = info.ModTime()
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", download.Filename))
	c.Header("Content-Type", contentType)
	http.ServeContent(c.Writer, c.Request, download.Filename, modTime, download.File)
}
