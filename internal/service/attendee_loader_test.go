package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinecrest/camp-roster-api/internal/workbook"
)

func rosterSheet(rows [][]string) workbook.Sheet {
	grid := append([][]string{{"ClassSelection_Id", "FirstName", "LastName", "Email", "Age"}}, rows...)
	wb := workbook.NewMapWorkbook().AddSheet(workbook.RosterSheetName, grid)
	sheet, _ := wb.Sheet(workbook.RosterSheetName)
	return sheet
}

func TestLoadAttendees(t *testing.T) {
	sheet := rosterSheet([][]string{
		{"SEL001", "Alice", "Johnson", "alice@example.com", "14"},
		{"SEL002", "Carol", "Nguyen", "", "12"},
	})

	attendees := LoadAttendees(sheet, workbook.DefaultImportSchema().Roster)
	require.Len(t, attendees, 2)

	alice := attendees["SEL001"]
	assert.Equal(t, "Alice", alice.FirstName)
	assert.Equal(t, "Johnson", alice.LastName)
	assert.Equal(t, "alice@example.com", alice.Email)
	assert.Equal(t, "14", alice.Age)
	assert.Equal(t, "Alice Johnson", alice.FullName())
}

func TestLoadAttendeesSynthesizesBlankID(t *testing.T) {
	sheet := rosterSheet([][]string{
		{"", "Bob", "Smith", "", ""},
	})

	attendees := LoadAttendees(sheet, workbook.DefaultImportSchema().Roster)
	require.Len(t, attendees, 1)

	bob, ok := attendees["BobSmith"]
	require.True(t, ok, "fallback id is firstName+lastName with no separator")
	assert.Equal(t, "BobSmith", bob.RegistrationID)
}

func TestLoadAttendeesSkipsNamelessRows(t *testing.T) {
	sheet := rosterSheet([][]string{
		{"SEL009", "", "", "ghost@example.com", ""},
		{"SEL010", "Dana", "", "", ""},
	})

	attendees := LoadAttendees(sheet, workbook.DefaultImportSchema().Roster)
	require.Len(t, attendees, 1)

	dana := attendees["SEL010"]
	assert.Equal(t, "Dana", dana.FirstName)
	assert.Equal(t, "Dana ", dana.FullName(), "missing last name keeps the trailing space")
}

func TestLoadAttendeesDuplicateIDOverwrites(t *testing.T) {
	sheet := rosterSheet([][]string{
		{"SEL001", "Alice", "Johnson", "", ""},
		{"SEL001", "Alicia", "Jones", "", ""},
	})

	attendees := LoadAttendees(sheet, workbook.DefaultImportSchema().Roster)
	require.Len(t, attendees, 1)
	assert.Equal(t, "Alicia", attendees["SEL001"].FirstName)
}

func TestLoadAttendeesPatternHeaderFallback(t *testing.T) {
	grid := [][]string{
		{"2024WinterAdventureClassRegist_Id", "FirstName", "LastName"},
		{"SEL777", "Eve", "Park"},
	}
	wb := workbook.NewMapWorkbook().AddSheet(workbook.RosterSheetName, grid)
	sheet, _ := wb.Sheet(workbook.RosterSheetName)

	attendees := LoadAttendees(sheet, workbook.DefaultImportSchema().Roster)
	require.Len(t, attendees, 1)
	assert.Equal(t, "Eve", attendees["SEL777"].FirstName)
}
