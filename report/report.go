// Package report turns attendance records and their deductions into
// exportable tables.
package report

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"punchpay/attendance"
	"punchpay/deduction"
)

// Columns is the header of every exported report.
var Columns = []string{"Emp Id", "Name", "Date", "First Punch", "Last Punch", "Late Deduction", "Deduction Explanation"}

// Row is one charged employee-day.
type Row struct {
	Record attendance.Record
	Result deduction.Result
}

// Values returns the row as text cells in Columns order.
func (r Row) Values() []string {
	return []string{
		r.Record.EmployeeID,
		r.Record.Name,
		r.Record.Date,
		r.Record.FirstPunch.String(),
		r.Record.LastPunch.String(),
		r.Result.AmountText(),
		r.Result.Explanation,
	}
}

type Options struct {
	Workers int
	// SkipWithoutSalary drops employees with no stored salary before
	// computing instead of charging the flat no-salary deduction.
	SkipWithoutSalary bool
}

// Generate computes deductions for records and returns the charged rows.
func Generate(ctx context.Context, records []attendance.Record, salaries map[string]decimal.Decimal, options Options) ([]Row, error) {
	if options.SkipWithoutSalary {
		records = withSalary(records, salaries)
	}

	results, err := deduction.ComputeAll(ctx, records, salaries, options.Workers)
	if err != nil {
		return nil, fmt.Errorf("compute deductions: %w", err)
	}
	return Build(records, results)
}

// Build pairs records with their results and keeps only rows that carry a
// non-zero, non-absent deduction.
func Build(records []attendance.Record, results []deduction.Result) ([]Row, error) {
	if len(records) != len(results) {
		return nil, fmt.Errorf("got %d results for %d records", len(results), len(records))
	}

	rows := make([]Row, 0, len(records))
	for i, result := range results {
		if !result.Charged() {
			continue
		}
		rows = append(rows, Row{Record: records[i], Result: result})
	}
	return rows, nil
}

type Totals struct {
	Rows      int
	Employees int
	Amount    decimal.Decimal
}

func Summarize(rows []Row) Totals {
	employees := make(map[string]struct{}, len(rows))
	total := decimal.Zero
	for _, row := range rows {
		employees[row.Record.EmployeeID] = struct{}{}
		total = total.Add(row.Result.Amount)
	}
	return Totals{Rows: len(rows), Employees: len(employees), Amount: total}
}

func withSalary(records []attendance.Record, salaries map[string]decimal.Decimal) []attendance.Record {
	out := make([]attendance.Record, 0, len(records))
	for _, record := range records {
		if _, ok := salaries[record.EmployeeID]; ok {
			out = append(out, record)
		}
	}
	return out
}
