package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pinecrest/camp-roster-api/internal/models"
	"github.com/pinecrest/camp-roster-api/internal/workbook"
	appErrors "github.com/pinecrest/camp-roster-api/pkg/errors"
)

// importResultStore keeps completed imports available for report generation.
type importResultStore interface {
	Save(ctx context.Context, result *models.ImportResult) error
	Get(ctx context.Context, id string) (*models.ImportResult, error)
}

// ImportService runs the ingestion pipeline: roster load, per-period
// workshop aggregation, result storage. One call per uploaded workbook;
// every run builds fresh collections.
type ImportService struct {
	store   importResultStore
	metrics *MetricsService
	logger  *zap.Logger
}

// NewImportService constructs an ImportService.
func NewImportService(store importResultStore, metrics *MetricsService, logger *zap.Logger) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{store: store, metrics: metrics, logger: logger}
}

// Run ingests one workbook under the supplied schema.
//
// A missing roster sheet is the only fatal condition; the error lists the
// sheets that were present. A missing period sheet contributes zero
// workshops and is logged as a warning.
func (s *ImportService) Run(ctx context.Context, wb workbook.Workbook, schema workbook.ImportSchema) (*models.ImportResult, error) {
	rosterSheet, ok := wb.Sheet(schema.Roster.SheetName)
	if !ok {
		available := strings.Join(wb.SheetNames(), ", ")
		return nil, appErrors.Wrap(
			fmt.Errorf("workbook sheets: [%s]", available),
			appErrors.ErrSheetNotFound.Code,
			appErrors.ErrSheetNotFound.Status,
			fmt.Sprintf("roster sheet %q not found; workbook contains: %s", schema.Roster.SheetName, available),
		)
	}

	attendees := LoadAttendees(rosterSheet, schema.Roster)

	byKey := make(map[string]*models.Workshop)
	var workshops []*models.Workshop
	var warnings []string
	selectionCount := 0

	for _, periodSchema := range schema.Periods {
		sheet, ok := wb.Sheet(periodSchema.SheetName)
		if !ok {
			s.logger.Warn("period sheet missing, skipping",
				zap.String("sheet", periodSchema.SheetName))
			warnings = append(warnings, fmt.Sprintf("period sheet %q not found in workbook", periodSchema.SheetName))
			continue
		}
		selectionCount += collectWorkshops(sheet, periodSchema, attendees, byKey, &workshops)
	}

	result := &models.ImportResult{
		ID:             uuid.NewString(),
		EventName:      schema.EventName,
		Workshops:      workshops,
		AttendeeCount:  len(attendees),
		SelectionCount: selectionCount,
		Warnings:       warnings,
		CreatedAt:      time.Now().UTC(),
	}

	if s.store != nil {
		if err := s.store.Save(ctx, result); err != nil {
			s.logger.Warn("failed to store import result", zap.String("import_id", result.ID), zap.Error(err))
		}
	}
	if s.metrics != nil {
		s.metrics.RecordImport(len(workshops), selectionCount)
	}

	s.logger.Info("import complete",
		zap.String("import_id", result.ID),
		zap.Int("attendees", result.AttendeeCount),
		zap.Int("workshops", len(workshops)),
		zap.Int("selections", selectionCount))

	return result, nil
}

// Get returns a previously stored import result.
func (s *ImportService) Get(ctx context.Context, id string) (*models.ImportResult, error) {
	if s.store == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "import result not found")
	}
	result, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "import result not found")
	}
	return result, nil
}

// collectWorkshops walks one period sheet, appending selections to existing
// aggregates or creating new ones in first-encounter order. Returns the
// number of selections appended.
func collectWorkshops(
	sheet workbook.Sheet,
	schema workbook.PeriodSchema,
	attendees map[string]models.Attendee,
	byKey map[string]*models.Workshop,
	workshops *[]*models.Workshop,
) int {
	resolver := workbook.NewColumnResolver(sheet)
	period := models.NewPeriod(schema.SheetName)
	appended := 0

	for row := 2; row <= sheet.RowCount(); row++ {
		firstName, _ := schema.FirstName.Value(resolver, row)
		lastName, _ := schema.LastName.Value(resolver, row)

		selectionID, ok := schema.SelectionID.Value(resolver, row)
		if !ok {
			// The roster loader synthesizes the same id for blank cells,
			// so the join still holds.
			selectionID = models.FallbackID(firstName, lastName)
		}

		fullName := firstName + " " + lastName
		if attendee, found := attendees[selectionID]; found {
			firstName = attendee.FirstName
			lastName = attendee.LastName
			fullName = attendee.FullName()
		}

		for _, group := range schema.Groups {
			cellText, ok := group.Column.Value(resolver, row)
			if !ok {
				continue
			}
			name, leader := ParseWorkshopCell(cellText)
			if name == "" {
				continue
			}

			choiceRaw, _ := schema.ChoiceNumber.Value(resolver, row)
			choice := coerceChoiceNumber(choiceRaw)

			key := models.WorkshopKey(period, name, leader, group.Duration)
			w, exists := byKey[key]
			if !exists {
				w = &models.Workshop{
					Name:     name,
					Leader:   leader,
					Period:   period,
					Duration: group.Duration,
				}
				byKey[key] = w
				*workshops = append(*workshops, w)
			}

			registrationID, _ := strconv.Atoi(selectionID)
			w.Selections = append(w.Selections, models.WorkshopSelection{
				ClassSelectionID: selectionID,
				WorkshopName:     name,
				FirstName:        firstName,
				LastName:         lastName,
				FullName:         fullName,
				ChoiceNumber:     choice,
				Duration:         group.Duration,
				RegistrationID:   registrationID,
			})
			appended++
		}
	}

	return appended
}
