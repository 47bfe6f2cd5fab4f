package service

import (
	"github.com/pinecrest/camp-roster-api/internal/models"
	"github.com/pinecrest/camp-roster-api/internal/workbook"
)

// LoadAttendees reads the roster sheet into a lookup keyed by registration
// identifier.
//
// A blank id cell gets a synthesized id of first+last name with no
// separator; period sheets that reference the attendee must reproduce the
// same fallback. Rows with neither name resolvable are skipped. A later row
// with a duplicate id overwrites the earlier one.
func LoadAttendees(sheet workbook.Sheet, schema workbook.RosterSchema) map[string]models.Attendee {
	resolver := workbook.NewColumnResolver(sheet)
	attendees := make(map[string]models.Attendee)

	for row := 2; row <= sheet.RowCount(); row++ {
		firstName, _ := schema.FirstName.Value(resolver, row)
		lastName, _ := schema.LastName.Value(resolver, row)
		if firstName == "" && lastName == "" {
			continue
		}

		id, ok := schema.RegistrationID.Value(resolver, row)
		if !ok {
			id = models.FallbackID(firstName, lastName)
		}

		email, _ := schema.Email.Value(resolver, row)
		age, _ := schema.Age.Value(resolver, row)

		attendees[id] = models.Attendee{
			RegistrationID: id,
			FirstName:      firstName,
			LastName:       lastName,
			Email:          email,
			Age:            age,
		}
	}

	return attendees
}
