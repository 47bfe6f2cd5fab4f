package service

import (
	"context"
	"fmt"
	"os"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pinecrest/camp-roster-api/internal/dto"
	"github.com/pinecrest/camp-roster-api/internal/models"
	appErrors "github.com/pinecrest/camp-roster-api/pkg/errors"
	"github.com/pinecrest/camp-roster-api/pkg/export"
	"github.com/pinecrest/camp-roster-api/pkg/storage"
)

type reportSlotSource interface {
	List(ctx context.Context) ([]models.TimeSlot, error)
}

type reportFileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

type sectionedCSVRenderer interface {
	Render(data export.Dataset) ([]byte, error)
	RenderSections(sections []export.Section) ([]byte, error)
}

type sectionedPDFRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
	RenderSections(sections []export.Section, title string) ([]byte, error)
}

// ReportConfig tunes report generation.
type ReportConfig struct {
	APIPrefix string
}

// ReportDownload aggregates resolved download data.
type ReportDownload struct {
	File     *os.File
	Filename string
	Format   string
}

// ReportService builds roster and schedule datasets from a stored import
// result and renders them to downloadable files.
type ReportService struct {
	results   importResultStore
	slots     reportSlotSource
	storage   reportFileStorage
	signer    *storage.SignedURLSigner
	csv       sectionedCSVRenderer
	pdf       sectionedPDFRenderer
	validator *validator.Validate
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       ReportConfig
}

// NewReportService constructs a ReportService.
func NewReportService(results importResultStore, slots reportSlotSource, store reportFileStorage, signer *storage.SignedURLSigner, metrics *MetricsService, cfg ReportConfig, logger *zap.Logger) *ReportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		results:   results,
		slots:     slots,
		storage:   store,
		signer:    signer,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		validator: validator.New(),
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
	}
}

// Generate renders the requested report, stores the file, and returns a
// signed download URL. A schedule with overlapping or unconfigured periods
// blocks generation unless Force is set.
func (s *ReportService) Generate(ctx context.Context, req dto.GenerateReportRequest) (*dto.ReportResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid report request")
	}

	result, err := s.results.Get(ctx, req.ImportID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, fmt.Sprintf("import %s not found", req.ImportID))
	}

	slots, err := s.slots.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load time slots")
	}
	if !req.Force {
		if verdict := ValidateSlots(slots); !verdict.IsValid {
			return nil, appErrors.Clone(appErrors.ErrScheduleInvalid,
				"schedule has overlapping or unconfigured time slots; pass force to generate anyway")
		}
	}

	payload, title, err := s.render(req, result, slots)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render report")
	}

	reportID := uuid.NewString()
	filename := fmt.Sprintf("%s/%s-%s.%s", req.Type, req.Type, reportID, req.Format)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store report")
	}

	token, expiresAt, err := s.signer.Generate(reportID, relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign report url")
	}

	if deleted, err := s.storage.CleanupOlderThan(s.signer.TTL()); err != nil {
		s.logger.Warn("report cleanup failed", zap.Error(err))
	} else if len(deleted) > 0 {
		s.logger.Info("expired reports removed", zap.Int("count", len(deleted)))
	}

	s.metrics.RecordReport(req.Type, req.Format)
	s.logger.Info("report generated",
		zap.String("report_id", reportID),
		zap.String("import_id", req.ImportID),
		zap.String("type", req.Type),
		zap.String("format", req.Format),
		zap.String("title", title),
	)

	return &dto.ReportResponse{
		ID:        reportID,
		ImportID:  req.ImportID,
		Type:      req.Type,
		Format:    req.Format,
		URL:       fmt.Sprintf("%s/reports/%s", s.apiPrefix(), token),
		ExpiresAt: expiresAt,
	}, nil
}

// Download resolves a signed token to an open file handle.
func (s *ReportService) Download(token string) (*ReportDownload, error) {
	_, relPath, _, err := s.signer.Parse(token)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid or expired download token")
	}
	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "report file no longer available")
	}
	format := strings.TrimPrefix(strings.ToLower(path.Ext(relPath)), ".")
	return &ReportDownload{File: file, Filename: path.Base(relPath), Format: format}, nil
}

func (s *ReportService) render(req dto.GenerateReportRequest, result *models.ImportResult, slots []models.TimeSlot) ([]byte, string, error) {
	switch req.Type {
	case dto.ReportTypeRoster:
		title := fmt.Sprintf("%s workshop rosters", result.EventName)
		sections := rosterSections(result.Workshops)
		if req.Format == dto.ReportFormatPDF {
			payload, err := s.pdf.RenderSections(sections, title)
			return payload, title, err
		}
		payload, err := s.csv.RenderSections(sections)
		return payload, title, err
	case dto.ReportTypeSchedule:
		title := fmt.Sprintf("%s schedule", result.EventName)
		dataset := scheduleDataset(slots, result.Workshops)
		if req.Format == dto.ReportFormatPDF {
			payload, err := s.pdf.Render(dataset, title)
			return payload, title, err
		}
		payload, err := s.csv.Render(dataset)
		return payload, title, err
	default:
		return nil, "", fmt.Errorf("unsupported report type %s", req.Type)
	}
}

func (s *ReportService) apiPrefix() string {
	prefix := strings.TrimRight(s.cfg.APIPrefix, "/")
	if prefix == "" {
		prefix = "/api/v1"
	}
	return prefix
}

var rosterHeaders = []string{"Name", "Selection ID", "Choice", "Days"}

// rosterSections builds one table per aggregated workshop, in import order.
// An empty workshop list yields an empty but renderable report.
func rosterSections(workshops []*models.Workshop) []export.Section {
	sections := make([]export.Section, 0, len(workshops))
	for _, w := range workshops {
		heading := fmt.Sprintf("%s (%s) - %s, %s", w.Name, w.Leader, w.Period.DisplayName, w.Duration.Description())
		rows := make([]map[string]string, 0, len(w.Selections))
		for _, sel := range w.Selections {
			rows = append(rows, map[string]string{
				"Name":         sel.FullName,
				"Selection ID": sel.ClassSelectionID,
				"Choice":       strconv.Itoa(sel.ChoiceNumber),
				"Days":         sel.Duration.Description(),
			})
		}
		sections = append(sections, export.Section{
			Heading: heading,
			Data:    export.Dataset{Headers: rosterHeaders, Rows: rows},
		})
	}
	return sections
}

var scheduleHeaders = []string{"Time Slot", "Start", "End", "Kind", "Workshops"}

// scheduleDataset lists configured slots in position order. Period slots get
// a count of imported workshops whose period matches the slot label.
func scheduleDataset(slots []models.TimeSlot, workshops []*models.Workshop) export.Dataset {
	counts := make(map[string]int)
	for _, w := range workshops {
		counts[w.Period.DisplayName]++
	}
	rows := make([]map[string]string, 0, len(slots))
	for _, slot := range slots {
		row := map[string]string{
			"Time Slot": slot.Label,
			"Start":     timeOrEmpty(slot.StartTime),
			"End":       timeOrEmpty(slot.EndTime),
			"Kind":      slotKind(slot),
			"Workshops": "",
		}
		if slot.IsPeriod {
			row["Workshops"] = strconv.Itoa(counts[slot.Label])
		}
		rows = append(rows, row)
	}
	return export.Dataset{Headers: scheduleHeaders, Rows: rows}
}

func slotKind(slot models.TimeSlot) string {
	if slot.IsPeriod {
		return "Period"
	}
	return "Break"
}

func timeOrEmpty(t *models.TimeOfDay) string {
	if t == nil {
		return ""
	}
	return t.String()
}
