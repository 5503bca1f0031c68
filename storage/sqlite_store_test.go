package storage

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"punchpay/salary"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := OpenSQLite(filepath.Join(t.TempDir(), "punchpay_test.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	return store
}

func TestSQLiteStore_UpsertAndGetSalary(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	if err := store.UpsertSalary(salary.Record{EmployeeID: "101", Name: "Asha", MonthlySalary: decimal.NewFromInt(30000)}); err != nil {
		t.Fatalf("upsert salary: %v", err)
	}

	record, found, err := store.GetSalary("101")
	if err != nil {
		t.Fatalf("get salary: %v", err)
	}
	if !found {
		t.Fatalf("expected salary to be found")
	}
	if record.Name != "Asha" || !record.MonthlySalary.Equal(decimal.NewFromInt(30000)) {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestSQLiteStore_GetSalaryMissing(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	_, found, err := store.GetSalary("nobody")
	if err != nil {
		t.Fatalf("get salary: %v", err)
	}
	if found {
		t.Fatalf("did not expect a salary")
	}
}

func TestSQLiteStore_LastWriteWins(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	first := salary.Record{EmployeeID: "7", Name: "Kiran", MonthlySalary: decimal.NewFromInt(20000)}
	second := salary.Record{EmployeeID: "7", Name: "Kiran R", MonthlySalary: decimal.RequireFromString("25500.75")}

	if err := store.UpsertSalary(first); err != nil {
		t.Fatalf("upsert first: %v", err)
	}
	if err := store.UpsertSalary(second); err != nil {
		t.Fatalf("upsert second: %v", err)
	}

	records, err := store.ListSalaries()
	if err != nil {
		t.Fatalf("list salaries: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 stored row, got %d", len(records))
	}
	if records[0].Name != "Kiran R" || records[0].MonthlySalary.StringFixed(2) != "25500.75" {
		t.Fatalf("unexpected stored record: %+v", records[0])
	}
}

func TestSQLiteStore_UpsertSalariesIsAtomic(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	_, err := store.UpsertSalaries([]salary.Record{
		{EmployeeID: "1", Name: "A", MonthlySalary: decimal.NewFromInt(10000)},
		{EmployeeID: "2", Name: "B", MonthlySalary: decimal.Zero},
	})
	if err == nil {
		t.Fatalf("expected validation error")
	}

	records, err := store.ListSalaries()
	if err != nil {
		t.Fatalf("list salaries: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected no rows after rejected batch, got %d", len(records))
	}

	written, err := store.UpsertSalaries([]salary.Record{
		{EmployeeID: "2", Name: "B", MonthlySalary: decimal.NewFromInt(12000)},
		{EmployeeID: "1", Name: "A", MonthlySalary: decimal.NewFromInt(10000)},
	})
	if err != nil {
		t.Fatalf("upsert salaries: %v", err)
	}
	if written != 2 {
		t.Fatalf("expected 2 written rows, got %d", written)
	}

	lookup, err := store.SalaryLookup()
	if err != nil {
		t.Fatalf("salary lookup: %v", err)
	}
	if len(lookup) != 2 || !lookup["2"].Equal(decimal.NewFromInt(12000)) {
		t.Fatalf("unexpected lookup: %v", lookup)
	}
}

func TestSQLiteStore_RejectsNonPositiveSalary(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	err := store.UpsertSalary(salary.Record{EmployeeID: "1", Name: "A", MonthlySalary: decimal.NewFromInt(-1)})
	if err == nil {
		t.Fatalf("expected error for negative salary")
	}
}
