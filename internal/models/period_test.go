package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPeriodDisplayName(t *testing.T) {
	tests := []struct {
		sheetName string
		display   string
	}{
		{"MorningFirstPeriod", "Morning First Period"},
		{"AfternoonPeriod", "Afternoon Period"},
		{"MorningAMSession", "Morning A M Session"},
		{"morning", "morning"},
		{"A", "A"},
		{"", ""},
	}
	for _, tt := range tests {
		p := NewPeriod(tt.sheetName)
		assert.Equal(t, tt.sheetName, p.SheetName)
		assert.Equal(t, tt.display, p.DisplayName)
	}
}
