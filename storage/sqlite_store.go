package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"punchpay/salary"
)

type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) ensureSchema() error {
	const schema = `
CREATE TABLE IF NOT EXISTS employee_salaries (
	emp_id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	salary REAL NOT NULL CHECK(salary > 0),
	updated_at TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

const upsertStmt = `
INSERT INTO employee_salaries (emp_id, name, salary, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(emp_id) DO UPDATE SET
	name = excluded.name,
	salary = excluded.salary,
	updated_at = excluded.updated_at;`

// UpsertSalary stores one salary. An existing row for the employee is
// replaced.
func (s *SQLiteStore) UpsertSalary(record salary.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	if _, err := s.db.Exec(upsertStmt, record.EmployeeID, record.Name, record.MonthlySalary, nowStamp()); err != nil {
		return fmt.Errorf("upsert salary %s: %w", record.EmployeeID, err)
	}
	return nil
}

// UpsertSalaries stores all records in one transaction and returns the number
// written. Nothing is written when any record is invalid.
func (s *SQLiteStore) UpsertSalaries(records []salary.Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	for _, record := range records {
		if err := record.Validate(); err != nil {
			return 0, err
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}

	stmt, err := tx.Prepare(upsertStmt)
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare upsert statement: %w", err)
	}
	defer stmt.Close()

	stamp := nowStamp()
	written := 0
	for _, record := range records {
		if _, err := stmt.Exec(record.EmployeeID, record.Name, record.MonthlySalary, stamp); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("upsert salary %s: %w", record.EmployeeID, err)
		}
		written++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit transaction: %w", err)
	}

	return written, nil
}

// GetSalary returns the stored salary for one employee. The second return
// value is false when none is on file.
func (s *SQLiteStore) GetSalary(employeeID string) (salary.Record, bool, error) {
	var record salary.Record
	err := s.db.QueryRow(
		`SELECT emp_id, name, salary FROM employee_salaries WHERE emp_id = ?;`,
		employeeID,
	).Scan(&record.EmployeeID, &record.Name, &record.MonthlySalary)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return salary.Record{}, false, nil
		}
		return salary.Record{}, false, fmt.Errorf("query salary %s: %w", employeeID, err)
	}
	return record, true, nil
}

func (s *SQLiteStore) ListSalaries() ([]salary.Record, error) {
	rows, err := s.db.Query(`SELECT emp_id, name, salary FROM employee_salaries ORDER BY emp_id;`)
	if err != nil {
		return nil, fmt.Errorf("query salaries: %w", err)
	}
	defer rows.Close()

	records := make([]salary.Record, 0, 64)
	for rows.Next() {
		var record salary.Record
		if err := rows.Scan(&record.EmployeeID, &record.Name, &record.MonthlySalary); err != nil {
			return nil, fmt.Errorf("scan salary: %w", err)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate salaries: %w", err)
	}

	return records, nil
}

// SalaryLookup returns every stored salary keyed by employee id.
func (s *SQLiteStore) SalaryLookup() (map[string]decimal.Decimal, error) {
	records, err := s.ListSalaries()
	if err != nil {
		return nil, err
	}
	lookup := make(map[string]decimal.Decimal, len(records))
	for _, record := range records {
		lookup[record.EmployeeID] = record.MonthlySalary
	}
	return lookup, nil
}

func nowStamp() string {
	return time.Now().UTC().Format(time.RFC3339)
}
