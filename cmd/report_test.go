package cmd

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"punchpay/config"
	"punchpay/salary"
	"punchpay/storage"
)

const testAttendanceCSV = `Emp Id,Name,Date,Shift,First Punch,Last Punch,Total Break Hours
1,Asha,2026-03-02,General,11:30 AM,07:00 PM,0:30
2,Bilal,2026-03-02,General,12:45 PM,08:00 PM,0:30
2,Bilal,2026-03-03,General,-,-,0:00
3,Chen,2026-03-02,General,11:00 AM,07:00 PM,0:30
`

func newTestConfig(t *testing.T, salaries ...salary.Record) *config.Config {
	t.Helper()

	cfg := config.Defaults()
	cfg.Database.Path = filepath.Join(t.TempDir(), "punchpay_test.db")

	store, err := storage.OpenSQLite(cfg.Database.Path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer store.Close()
	if _, err := store.UpsertSalaries(salaries); err != nil {
		t.Fatalf("seed salaries: %v", err)
	}
	return cfg
}

func writeTestFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestRunReport_WritesCSVAndPDF(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t,
		salary.Record{EmployeeID: "1", Name: "Asha", MonthlySalary: decimal.NewFromInt(72000)},
		salary.Record{EmployeeID: "2", Name: "Bilal", MonthlySalary: decimal.NewFromInt(72000)},
	)
	input := writeTestFile(t, "attendance.csv", testAttendanceCSV)
	outDir := t.TempDir()
	output := filepath.Join(outDir, "deductions.csv")
	pdf := filepath.Join(outDir, "deductions.pdf")

	totals, err := runReport(context.Background(), cfg, reportOptions{inputs: []string{input}, output: output, pdf: pdf})
	if err != nil {
		t.Fatalf("run report: %v", err)
	}
	if totals.Rows != 3 || totals.Amount.StringFixed(2) != "300.00" {
		t.Fatalf("unexpected totals: rows=%d amount=%s", totals.Rows, totals.Amount.StringFixed(2))
	}

	file, err := os.Open(output)
	if err != nil {
		t.Fatalf("open csv: %v", err)
	}
	defer file.Close()
	lines, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d", len(lines))
	}
	for _, line := range lines[1:] {
		if line[5] == "ABSENT" || line[5] == "0.00" {
			t.Fatalf("expected absent and zero rows to be filtered, got %v", line)
		}
	}

	if info, err := os.Stat(pdf); err != nil || info.Size() == 0 {
		t.Fatalf("expected non-empty pdf: %v", err)
	}
}

func TestRunReport_SkipWithoutSalary(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t,
		salary.Record{EmployeeID: "1", Name: "Asha", MonthlySalary: decimal.NewFromInt(72000)},
	)
	cfg.Report.SkipWithoutSalary = true
	input := writeTestFile(t, "attendance.csv", testAttendanceCSV)
	output := filepath.Join(t.TempDir(), "deductions.xlsx")

	totals, err := runReport(context.Background(), cfg, reportOptions{inputs: []string{input}, output: output})
	if err != nil {
		t.Fatalf("run report: %v", err)
	}
	if totals.Rows != 1 || totals.Employees != 1 {
		t.Fatalf("expected only the salaried employee, got %+v", totals)
	}
}

func TestRunReport_RejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)
	input := writeTestFile(t, "attendance.csv", testAttendanceCSV)

	_, err := runReport(context.Background(), cfg, reportOptions{
		inputs: []string{input},
		output: filepath.Join(t.TempDir(), "out.json"),
		format: "json",
	})
	if err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestRunReport_FailsOnMalformedPunch(t *testing.T) {
	t.Parallel()

	cfg := newTestConfig(t)
	input := writeTestFile(t, "attendance.csv", "Emp Id,Name,First Punch,Last Punch\n1,Asha,soon,07:00 PM\n")

	_, err := runReport(context.Background(), cfg, reportOptions{
		inputs: []string{input},
		output: filepath.Join(t.TempDir(), "out.csv"),
	})
	if err == nil {
		t.Fatalf("expected error for malformed punch")
	}
}
