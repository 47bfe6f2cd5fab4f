package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pinecrest/camp-roster-api/internal/models"
	"github.com/pinecrest/camp-roster-api/internal/workbook"
	appErrors "github.com/pinecrest/camp-roster-api/pkg/errors"
)

type resultStoreStub struct {
	saved map[string]*models.ImportResult
	err   error
}

func (s *resultStoreStub) Save(ctx context.Context, result *models.ImportResult) error {
	if s.err != nil {
		return s.err
	}
	if s.saved == nil {
		s.saved = make(map[string]*models.ImportResult)
	}
	s.saved[result.ID] = result
	return nil
}

func (s *resultStoreStub) Get(ctx context.Context, id string) (*models.ImportResult, error) {
	if result, ok := s.saved[id]; ok {
		return result, nil
	}
	return nil, fmt.Errorf("not found")
}

func testSchema(periodSheets ...string) workbook.ImportSchema {
	schema := workbook.DefaultImportSchema()
	schema.Periods = nil
	for _, name := range periodSheets {
		schema.Periods = append(schema.Periods, workbook.PeriodSchema{
			SheetName:    name,
			SelectionID:  workbook.ColumnRef{Name: "ClassSelection_Id", Pattern: "ClassRegist_Id"},
			FirstName:    workbook.ColumnRef{Name: "FirstName"},
			LastName:     workbook.ColumnRef{Name: "LastName"},
			ChoiceNumber: workbook.ColumnRef{Name: "ChoiceNumber"},
			Groups: []workbook.ColumnGroup{
				{Column: workbook.ColumnRef{Name: "4DayWorkshop"}, Duration: models.WorkshopDuration{StartDay: 1, EndDay: 4}},
				{Column: workbook.ColumnRef{Name: "2DayWorkshopFirstHalf"}, Duration: models.WorkshopDuration{StartDay: 1, EndDay: 2}},
			},
		})
	}
	return schema
}

func rosterRows(rows ...[]string) [][]string {
	return append([][]string{{"ClassSelection_Id", "FirstName", "LastName", "Email", "Age"}}, rows...)
}

func periodRows(rows ...[]string) [][]string {
	return append([][]string{{"ClassSelection_Id", "FirstName", "LastName", "ChoiceNumber", "4DayWorkshop", "2DayWorkshopFirstHalf"}}, rows...)
}

func TestImportServiceRunEndToEnd(t *testing.T) {
	wb := workbook.NewMapWorkbook().
		AddSheet(workbook.RosterSheetName, rosterRows(
			[]string{"SEL001", "Alice", "Johnson", "alice@example.com", "14"},
		)).
		AddSheet("MorningFirstPeriod", periodRows(
			[]string{"SEL001", "Alice", "Johnson", "1", "Pottery (John Smith)", ""},
		))

	store := &resultStoreStub{}
	svc := NewImportService(store, nil, zap.NewNop())

	result, err := svc.Run(context.Background(), wb, testSchema("MorningFirstPeriod"))
	require.NoError(t, err)
	require.Len(t, result.Workshops, 1)

	w := result.Workshops[0]
	assert.Equal(t, "Pottery", w.Name)
	assert.Equal(t, "John Smith", w.Leader)
	assert.Equal(t, "MorningFirstPeriod", w.Period.SheetName)
	assert.Equal(t, "Morning First Period", w.Period.DisplayName)

	require.Len(t, w.Selections, 1)
	sel := w.Selections[0]
	assert.Equal(t, "Alice", sel.FirstName)
	assert.Equal(t, "Alice Johnson", sel.FullName)
	assert.Equal(t, 1, sel.ChoiceNumber)
	assert.Equal(t, models.WorkshopDuration{StartDay: 1, EndDay: 4}, sel.Duration)

	assert.Equal(t, 1, result.AttendeeCount)
	assert.Equal(t, 1, result.SelectionCount)
	assert.Len(t, store.saved, 1, "result is stored for report generation")
}

func TestImportServiceMissingRosterSheetIsFatal(t *testing.T) {
	wb := workbook.NewMapWorkbook().AddSheet("MorningFirstPeriod", periodRows())
	svc := NewImportService(nil, nil, zap.NewNop())

	_, err := svc.Run(context.Background(), wb, testSchema("MorningFirstPeriod"))
	require.Error(t, err)

	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrSheetNotFound.Code, appErr.Code)
	assert.Contains(t, appErr.Message, workbook.RosterSheetName)
	assert.Contains(t, appErr.Message, "MorningFirstPeriod", "error lists the sheets that were present")
}

func TestImportServiceMissingPeriodSheetIsNotFatal(t *testing.T) {
	wb := workbook.NewMapWorkbook().
		AddSheet(workbook.RosterSheetName, rosterRows(
			[]string{"SEL001", "Alice", "Johnson", "", ""},
		))
	svc := NewImportService(nil, nil, zap.NewNop())

	result, err := svc.Run(context.Background(), wb, testSchema("MorningFirstPeriod", "AfternoonPeriod"))
	require.NoError(t, err)
	assert.Empty(t, result.Workshops)
	assert.Len(t, result.Warnings, 2)
}

func TestImportServiceAggregationIsKeyStable(t *testing.T) {
	wb := workbook.NewMapWorkbook().
		AddSheet(workbook.RosterSheetName, rosterRows(
			[]string{"SEL001", "Alice", "Johnson", "", ""},
			[]string{"SEL002", "Bob", "Smith", "", ""},
			[]string{"SEL003", "Carol", "Nguyen", "", ""},
		)).
		AddSheet("MorningFirstPeriod", periodRows(
			// Same (period, name, leader, duration): one aggregate.
			[]string{"SEL001", "Alice", "Johnson", "1", "Pottery (John Smith)", ""},
			[]string{"SEL002", "Bob", "Smith", "2", "Pottery (John Smith)", ""},
			// Same name+leader but different duration: distinct aggregate.
			[]string{"SEL003", "Carol", "Nguyen", "1", "", "Pottery (John Smith)"},
		))

	svc := NewImportService(nil, nil, zap.NewNop())
	result, err := svc.Run(context.Background(), wb, testSchema("MorningFirstPeriod"))
	require.NoError(t, err)
	require.Len(t, result.Workshops, 2)

	fourDay := result.Workshops[0]
	assert.Len(t, fourDay.Selections, 2)
	assert.Equal(t, "Alice", fourDay.Selections[0].FirstName, "selections keep row order")
	assert.Equal(t, "Bob", fourDay.Selections[1].FirstName)
	assert.Equal(t, 2, fourDay.Selections[1].ChoiceNumber)

	twoDay := result.Workshops[1]
	assert.Equal(t, models.WorkshopDuration{StartDay: 1, EndDay: 2}, twoDay.Duration)
	assert.Len(t, twoDay.Selections, 1)

	assert.NotEqual(t, fourDay.Key(), twoDay.Key())
}

func TestImportServiceSamePairAcrossPeriodsStaysDistinct(t *testing.T) {
	wb := workbook.NewMapWorkbook().
		AddSheet(workbook.RosterSheetName, rosterRows(
			[]string{"SEL001", "Alice", "Johnson", "", ""},
		)).
		AddSheet("MorningFirstPeriod", periodRows(
			[]string{"SEL001", "Alice", "Johnson", "1", "Pottery (John Smith)", ""},
		)).
		AddSheet("AfternoonPeriod", periodRows(
			[]string{"SEL001", "Alice", "Johnson", "1", "Pottery (John Smith)", ""},
		))

	svc := NewImportService(nil, nil, zap.NewNop())
	result, err := svc.Run(context.Background(), wb, testSchema("MorningFirstPeriod", "AfternoonPeriod"))
	require.NoError(t, err)
	require.Len(t, result.Workshops, 2, "same name/leader in two periods are distinct aggregates")
	assert.NotEqual(t, result.Workshops[0].Key(), result.Workshops[1].Key())
}

func TestImportServiceFallbackIDJoinsPeriodRows(t *testing.T) {
	wb := workbook.NewMapWorkbook().
		AddSheet(workbook.RosterSheetName, rosterRows(
			[]string{"", "Bob", "Smith", "bob@example.com", "11"},
		)).
		AddSheet("MorningFirstPeriod", periodRows(
			[]string{"", "Bob", "Smith", "1", "Archery (Jane Doe)", ""},
		))

	svc := NewImportService(nil, nil, zap.NewNop())
	result, err := svc.Run(context.Background(), wb, testSchema("MorningFirstPeriod"))
	require.NoError(t, err)
	require.Len(t, result.Workshops, 1)

	sel := result.Workshops[0].Selections[0]
	assert.Equal(t, "BobSmith", sel.ClassSelectionID)
	assert.Equal(t, "Bob Smith", sel.FullName)
}

func TestImportServiceUnknownAttendeeUsesSheetNames(t *testing.T) {
	wb := workbook.NewMapWorkbook().
		AddSheet(workbook.RosterSheetName, rosterRows()).
		AddSheet("MorningFirstPeriod", periodRows(
			[]string{"SEL404", "Walkin", "Guest", "3", "Drama (A. Lee)", ""},
		))

	svc := NewImportService(nil, nil, zap.NewNop())
	result, err := svc.Run(context.Background(), wb, testSchema("MorningFirstPeriod"))
	require.NoError(t, err)
	require.Len(t, result.Workshops, 1)

	sel := result.Workshops[0].Selections[0]
	assert.Equal(t, "Walkin", sel.FirstName)
	assert.Equal(t, "Guest", sel.LastName)
	assert.Equal(t, 3, sel.ChoiceNumber)
}

func TestImportServiceSkipsBlankAndMalformedCells(t *testing.T) {
	wb := workbook.NewMapWorkbook().
		AddSheet(workbook.RosterSheetName, rosterRows(
			[]string{"SEL001", "Alice", "Johnson", "", ""},
		)).
		AddSheet("MorningFirstPeriod", periodRows(
			[]string{"SEL001", "Alice", "Johnson", "1", "   ", "no parens here"},
			[]string{"SEL001", "Alice", "Johnson", "oops", "Pottery (John Smith)", ""},
		))

	svc := NewImportService(nil, nil, zap.NewNop())
	result, err := svc.Run(context.Background(), wb, testSchema("MorningFirstPeriod"))
	require.NoError(t, err)
	require.Len(t, result.Workshops, 1)
	require.Len(t, result.Workshops[0].Selections, 1)
	assert.Equal(t, 1, result.Workshops[0].Selections[0].ChoiceNumber, "unparsable choice defaults to primary")
}

func TestImportServiceGetMissingResult(t *testing.T) {
	svc := NewImportService(&resultStoreStub{}, nil, zap.NewNop())
	_, err := svc.Get(context.Background(), "nope")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
