package service

import (
	"strconv"
	"strings"
)

// ParseWorkshopCell splits a period-sheet cell of the form
// "Workshop Name (Leader Name)" into its name/leader pair.
//
// Only the first '(' and the first ')' after it are honored. Malformed
// input (no parentheses, reversed parentheses, empty cell) degrades to two
// empty strings; the pipeline skips such cells rather than erroring.
func ParseWorkshopCell(cellText string) (name, leader string) {
	open := strings.Index(cellText, "(")
	if open < 0 {
		return "", ""
	}
	closeOffset := strings.Index(cellText[open+1:], ")")
	if closeOffset < 0 {
		return "", ""
	}
	closeIdx := open + 1 + closeOffset

	name = strings.TrimSpace(cellText[:open])
	leader = strings.TrimSpace(cellText[open+1 : closeIdx])
	return name, leader
}

// coerceChoiceNumber centralises the permissive numeric policy: a missing or
// unparsable choice number means a primary enrollment.
func coerceChoiceNumber(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
