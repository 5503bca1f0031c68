package attendance

import "strings"

// Record is one employee's attendance observations for one day as read from
// an attendance sheet.
type Record struct {
	RowNumber  int
	EmployeeID string
	Name       string
	Date       string
	FirstPunch Punch
	LastPunch  Punch
}

// NormalizeEmployeeID trims the identifier and drops the ".0" suffix that
// spreadsheet tools append to numeric codes.
func NormalizeEmployeeID(raw string) string {
	id := strings.TrimSpace(raw)
	if whole, ok := strings.CutSuffix(id, ".0"); ok && whole != "" && isDigits(whole) {
		return whole
	}
	return id
}

func isDigits(value string) bool {
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
