package models

// Attendee is one roster row from the registration workbook. Records are
// built once per import and never mutated afterwards.
type Attendee struct {
	RegistrationID string `json:"registration_id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Age            string `json:"age"`
}

// FullName joins first and last name with a single space. A missing last
// name leaves a trailing space; downstream formatting relies on that.
func (a Attendee) FullName() string {
	return a.FirstName + " " + a.LastName
}

// FallbackID synthesizes a registration identifier from the name columns.
// Roster rows and period-sheet rows must derive the identical value so the
// cross-reference still joins when the id cell is blank.
func FallbackID(firstName, lastName string) string {
	return firstName + lastName
}
