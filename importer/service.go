package importer

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"

	"punchpay/attendance"
	"punchpay/salary"
)

type Result struct {
	FilesProcessed int
	RowsRead       int
	RowsMapped     int
	RowsSkipped    int
	Records        []attendance.Record
}

// Run reads attendance sheets and maps every row. The first malformed row
// aborts the run.
func Run(paths []string, format string) (*Result, error) {
	result := &Result{Records: make([]attendance.Record, 0, 256)}
	for _, path := range paths {
		rows, err := readRows(path, format)
		if err != nil {
			return nil, err
		}
		if err := checkAttendanceColumns(rows, path); err != nil {
			return nil, err
		}

		result.FilesProcessed++
		result.RowsRead += len(rows)
		for _, row := range rows {
			record, ok, mapErr := MapAttendance(row)
			if mapErr != nil {
				return nil, fmt.Errorf("%s: %w", filepath.Base(path), mapErr)
			}
			if !ok || record == nil {
				result.RowsSkipped++
				continue
			}
			result.RowsMapped++
			result.Records = append(result.Records, *record)
		}
	}

	return result, nil
}

// ReadSalarySheet reads a secondary salary sheet into employee id -> monthly
// salary. Rows with an empty salary are ignored; later rows win.
func ReadSalarySheet(path, format string) (map[string]decimal.Decimal, error) {
	rows, err := readRows(path, format)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 && (!rows[0].Has(salaryIDColumns...) || !rows[0].Has(salaryAmountColumns...)) {
		return nil, fmt.Errorf("%s: salary sheet needs %q and %q columns", path, salaryIDColumns[0], salaryAmountColumns[0])
	}

	salaries := make(map[string]decimal.Decimal, len(rows))
	for _, row := range rows {
		employeeID := attendance.NormalizeEmployeeID(row.Get(salaryIDColumns...))
		rawAmount := row.Get(salaryAmountColumns...)
		if employeeID == "" || rawAmount == "" {
			continue
		}
		amount, err := salary.ParseAmount(rawAmount)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row.RowNumber, err)
		}
		salaries[employeeID] = amount
	}
	return salaries, nil
}

func readRows(path, format string) ([]Record, error) {
	sourceFormat, err := inferFormat(path, format)
	if err != nil {
		return nil, err
	}
	reader, err := ReaderForFormat(sourceFormat)
	if err != nil {
		return nil, err
	}
	return reader.Read(path)
}

func inferFormat(path string, format string) (string, error) {
	if strings.TrimSpace(format) != "" {
		return format, nil
	}

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch extension {
	case "csv":
		return "csv", nil
	case "xlsx", "xlsm":
		return "excel", nil
	default:
		return "", fmt.Errorf("unsupported file extension for %s", path)
	}
}

// SupportedExtension reports whether path has an extension Run can read.
func SupportedExtension(path string) bool {
	_, err := inferFormat(path, "")
	return err == nil
}
