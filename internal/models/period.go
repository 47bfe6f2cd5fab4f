package models

import (
	"strings"
	"unicode"
)

// Period names one scheduling block of the event. SheetName is the workbook
// sheet the period's selections are read from; DisplayName is the
// human-readable form used on rosters.
type Period struct {
	SheetName   string `json:"sheet_name"`
	DisplayName string `json:"display_name"`
}

// NewPeriod derives the display name from the sheet name by splitting on
// capital letters: "MorningFirstPeriod" becomes "Morning First Period".
// Consecutive capitals each start their own word ("MorningAMSession" ->
// "Morning A M Session"); all-lowercase names pass through unchanged.
func NewPeriod(sheetName string) Period {
	return Period{SheetName: sheetName, DisplayName: splitCamelCase(sheetName)}
}

func splitCamelCase(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 4)
	for i, r := range name {
		if i > 0 && unicode.IsUpper(r) {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
