package workbook

import (
	"fmt"
	"os"

	"github.com/spf13/viper"

	"github.com/pinecrest/camp-roster-api/internal/models"
)

// RosterSheetName is the fixed sheet enumerating attendees. Its absence is
// the one fatal import condition.
const RosterSheetName = "ClassSelection"

// RosterSchema describes the roster sheet's columns.
type RosterSchema struct {
	SheetName      string    `mapstructure:"sheet_name" yaml:"sheet_name"`
	RegistrationID ColumnRef `mapstructure:"registration_id" yaml:"registration_id"`
	FirstName      ColumnRef `mapstructure:"first_name" yaml:"first_name"`
	LastName       ColumnRef `mapstructure:"last_name" yaml:"last_name"`
	Email          ColumnRef `mapstructure:"email" yaml:"email"`
	Age            ColumnRef `mapstructure:"age" yaml:"age"`
}

// ColumnGroup binds one workshop cell column to a fixed duration. A period
// sheet conventionally carries a 4-day group and two 2-day half groups.
type ColumnGroup struct {
	Column   ColumnRef               `mapstructure:"column" yaml:"column"`
	Duration models.WorkshopDuration `mapstructure:"duration" yaml:"duration"`
}

// PeriodSchema describes one period sheet: its selection-id join column,
// redundant attendee-name columns, choice number, and workshop column groups.
type PeriodSchema struct {
	SheetName    string        `mapstructure:"sheet_name" yaml:"sheet_name"`
	SelectionID  ColumnRef     `mapstructure:"selection_id" yaml:"selection_id"`
	FirstName    ColumnRef     `mapstructure:"first_name" yaml:"first_name"`
	LastName     ColumnRef     `mapstructure:"last_name" yaml:"last_name"`
	ChoiceNumber ColumnRef     `mapstructure:"choice_number" yaml:"choice_number"`
	Groups       []ColumnGroup `mapstructure:"groups" yaml:"groups"`
}

// ImportSchema is the externally supplied description of a workbook's shape.
// The pipeline treats it as opaque lookup data, never as embedded constants.
type ImportSchema struct {
	EventName string         `mapstructure:"event_name" yaml:"event_name"`
	Roster    RosterSchema   `mapstructure:"roster" yaml:"roster"`
	Periods   []PeriodSchema `mapstructure:"periods" yaml:"periods"`
}

// DefaultImportSchema returns the conventional camp workbook layout:
// a ClassSelection roster plus morning/afternoon period sheets, each with a
// 4-day group and first/second-half 2-day groups.
func DefaultImportSchema() ImportSchema {
	return ImportSchema{
		EventName: "Camp Registration",
		Roster: RosterSchema{
			SheetName:      RosterSheetName,
			RegistrationID: ColumnRef{Name: "ClassSelection_Id", Pattern: "ClassRegist_Id"},
			FirstName:      ColumnRef{Name: "FirstName"},
			LastName:       ColumnRef{Name: "LastName"},
			Email:          ColumnRef{Name: "Email"},
			Age:            ColumnRef{Name: "Age"},
		},
		Periods: []PeriodSchema{
			defaultPeriodSchema("MorningFirstPeriod"),
			defaultPeriodSchema("MorningSecondPeriod"),
			defaultPeriodSchema("AfternoonPeriod"),
		},
	}
}

func defaultPeriodSchema(sheetName string) PeriodSchema {
	return PeriodSchema{
		SheetName:    sheetName,
		SelectionID:  ColumnRef{Name: "ClassSelection_Id", Pattern: "ClassRegist_Id"},
		FirstName:    ColumnRef{Name: "FirstName"},
		LastName:     ColumnRef{Name: "LastName"},
		ChoiceNumber: ColumnRef{Name: "ChoiceNumber"},
		Groups: []ColumnGroup{
			{Column: ColumnRef{Name: "4DayWorkshop"}, Duration: models.WorkshopDuration{StartDay: 1, EndDay: 4}},
			{Column: ColumnRef{Name: "2DayWorkshopFirstHalf"}, Duration: models.WorkshopDuration{StartDay: 1, EndDay: 2}},
			{Column: ColumnRef{Name: "2DayWorkshopSecondHalf"}, Duration: models.WorkshopDuration{StartDay: 3, EndDay: 4}},
		},
	}
}

// LoadImportSchema reads a YAML schema description, falling back to the
// default layout when path is empty or the file does not exist.
func LoadImportSchema(path string) (ImportSchema, error) {
	if path == "" {
		return DefaultImportSchema(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultImportSchema(), nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return ImportSchema{}, fmt.Errorf("read import schema %s: %w", path, err)
	}

	schema := DefaultImportSchema()
	if err := v.Unmarshal(&schema); err != nil {
		return ImportSchema{}, fmt.Errorf("decode import schema %s: %w", path, err)
	}
	if schema.Roster.SheetName == "" {
		schema.Roster.SheetName = RosterSheetName
	}
	return schema, nil
}
