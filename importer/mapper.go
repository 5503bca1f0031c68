package importer

import (
	"fmt"

	"punchpay/attendance"
)

// MapAttendance converts one sheet row into an attendance record. Rows
// without an employee id are skipped (ok=false).
func MapAttendance(record Record) (*attendance.Record, bool, error) {
	employeeID := attendance.NormalizeEmployeeID(record.Get(employeeIDColumns...))
	if employeeID == "" {
		return nil, false, nil
	}

	firstPunch, err := parsePunchCell(record, "first punch", firstPunchColumns)
	if err != nil {
		return nil, false, err
	}
	lastPunch, err := parsePunchCell(record, "last punch", lastPunchColumns)
	if err != nil {
		return nil, false, err
	}

	return &attendance.Record{
		RowNumber:  record.RowNumber,
		EmployeeID: employeeID,
		Name:       record.Get(nameColumns...),
		Date:       record.Get(dateColumns...),
		FirstPunch: firstPunch,
		LastPunch:  lastPunch,
	}, true, nil
}

// checkAttendanceColumns rejects sheets that cannot be attendance exports.
func checkAttendanceColumns(records []Record, path string) error {
	if len(records) == 0 {
		return nil
	}
	first := records[0]
	if !first.Has(employeeIDColumns...) {
		return fmt.Errorf("%s: missing employee id column (expected one of %v)", path, employeeIDColumns)
	}
	if !first.Has(firstPunchColumns...) && !first.Has(lastPunchColumns...) {
		return fmt.Errorf("%s: missing punch columns (expected %q and %q)", path, firstPunchColumns[0], lastPunchColumns[0])
	}
	return nil
}
