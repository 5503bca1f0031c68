package importer

import (
	"fmt"

	"punchpay/attendance"
)

// Column aliases accepted in attendance and salary sheets.
var (
	employeeIDColumns = []string{"Emp Id", "Employee Id", "EmpId", "Emp Code", "Code"}
	nameColumns       = []string{"Name", "Employee Name"}
	dateColumns       = []string{"Date", "Attendance Date", "Day"}
	firstPunchColumns = []string{"First Punch", "Punch In", "In Time"}
	lastPunchColumns  = []string{"Last Punch", "Punch Out", "Out Time"}

	salaryIDColumns     = []string{"Code", "Emp Id", "Employee Id", "Emp Code"}
	salaryAmountColumns = []string{"Salary", "Monthly Salary", "Gross Salary"}
)

func parsePunchCell(record Record, column string, aliases []string) (attendance.Punch, error) {
	punch, err := attendance.ParsePunch(record.Get(aliases...))
	if err != nil {
		return attendance.Punch{}, fmt.Errorf("row %d: %s: %w", record.RowNumber, column, err)
	}
	return punch, nil
}
