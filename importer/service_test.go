package importer

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"punchpay/attendance"
)

func TestRun_ReadsAttendanceCSV(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "attendance.csv", strings.Join([]string{
		"Emp Id,Name,Date,Shift,First Punch,Last Punch,Total Break Hours",
		" 101 ,Asha,2026-03-02,General,11:10 AM,07:05 PM,0:45",
		"102,Ravi,2026-03-02,General,-,-,0:00",
		",,,,,,",
		"103.0,Meena,2026-03-02,General,03:40 PM,11:00 PM,0:30",
		",Total,,,,,",
	}, "\n"))

	result, err := Run([]string{path}, "")
	if err != nil {
		t.Fatalf("run import: %v", err)
	}
	if result.FilesProcessed != 1 || result.RowsRead != 4 || result.RowsMapped != 3 || result.RowsSkipped != 1 {
		t.Fatalf("unexpected counters: %+v", result)
	}

	first := result.Records[0]
	if first.EmployeeID != "101" || first.Name != "Asha" || first.Date != "2026-03-02" || first.RowNumber != 2 {
		t.Fatalf("unexpected first record: %+v", first)
	}
	if !first.FirstPunch.Valid() || first.FirstPunch.Hour() != 11 {
		t.Fatalf("unexpected first punch: %s", first.FirstPunch)
	}
	if result.Records[1].FirstPunch.Valid() || result.Records[1].LastPunch.Valid() {
		t.Fatalf("expected missing punches for absent row")
	}
	if result.Records[2].EmployeeID != "103" || result.Records[2].RowNumber != 5 {
		t.Fatalf("unexpected third record: %+v", result.Records[2])
	}
}

func TestRun_ReadsAttendanceExcel(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "attendance.xlsx")
	writeWorkbook(t, path, [][]string{
		{"Emp Id", "Name", "First Punch", "Last Punch"},
		{"7", "Kiran", "12:45 PM", "08:00 PM"},
		{"8", "Dev", "", "08:00 PM"},
	})

	result, err := Run([]string{path}, "")
	if err != nil {
		t.Fatalf("run import: %v", err)
	}
	if len(result.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(result.Records))
	}
	if got := result.Records[0].FirstPunch.String(); got != "12:45 PM" {
		t.Fatalf("unexpected punch: %s", got)
	}
	if result.Records[1].FirstPunch.Valid() {
		t.Fatalf("expected missing first punch")
	}
}

func TestRun_MalformedPunchReportsRow(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "attendance.csv", "Emp Id,Name,First Punch,Last Punch\n1,A,11:00 AM,07:00 PM\n2,B,25:99,07:00 PM\n")

	_, err := Run([]string{path}, "csv")
	var parseErr *attendance.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if !strings.Contains(err.Error(), "row 3") {
		t.Fatalf("expected row number in error, got %v", err)
	}
}

func TestRun_RejectsSheetWithoutAttendanceColumns(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "salaries.csv", "Code,Salary\n1,30000\n")
	if _, err := Run([]string{path}, ""); err == nil {
		t.Fatalf("expected column error")
	}
}

func TestRun_UnsupportedExtension(t *testing.T) {
	t.Parallel()

	if _, err := Run([]string{"attendance.pdf"}, ""); err == nil {
		t.Fatalf("expected extension error")
	}
	if SupportedExtension("a.xls") {
		t.Fatalf("legacy xls should not be supported")
	}
	if !SupportedExtension("A.XLSX") {
		t.Fatalf("expected xlsx to be supported")
	}
}

func TestReadSalarySheet(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "salaries.xlsx")
	writeWorkbook(t, path, [][]string{
		{"Code", "Name", "Salary"},
		{" 101 ", "Asha", "30,000"},
		{"102", "Ravi", ""},
		{"103", "Meena", "42000.50"},
	})

	salaries, err := ReadSalarySheet(path, "")
	if err != nil {
		t.Fatalf("read salary sheet: %v", err)
	}
	if len(salaries) != 2 {
		t.Fatalf("expected 2 salaries, got %d", len(salaries))
	}
	if got := salaries["101"].String(); got != "30000" {
		t.Fatalf("unexpected salary for 101: %s", got)
	}
	if got := salaries["103"].StringFixed(2); got != "42000.50" {
		t.Fatalf("unexpected salary for 103: %s", got)
	}
}

func TestReadSalarySheet_RejectsNegativeSalary(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "salaries.csv", "Code,Salary\n1,-5\n")
	if _, err := ReadSalarySheet(path, ""); err == nil {
		t.Fatalf("expected error for negative salary")
	}
}

func TestRecordGet_UsesNormalizedAliases(t *testing.T) {
	t.Parallel()

	record := Record{Values: map[string]string{normalizeHeader("EMP_ID"): " 55 "}}
	if got := record.Get("Emp Id"); got != "55" {
		t.Fatalf("unexpected value: %q", got)
	}
	if !record.Has("emp-id") || record.Has("Name") {
		t.Fatalf("unexpected Has result")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func writeWorkbook(t *testing.T, path string, rows [][]string) {
	t.Helper()
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	for r, row := range rows {
		for c, value := range row {
			cell, _ := excelize.CoordinatesToCellName(c+1, r+1)
			if err := file.SetCellValue(sheet, cell, value); err != nil {
				t.Fatalf("set cell %s: %v", cell, err)
			}
		}
	}
	if err := file.SaveAs(path); err != nil {
		t.Fatalf("save workbook: %v", err)
	}
}
