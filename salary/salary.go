package salary

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"punchpay/attendance"
)

// Record is the stored monthly salary of one employee.
type Record struct {
	EmployeeID    string          `validate:"required"`
	Name          string          `validate:"required"`
	MonthlySalary decimal.Decimal `validate:"gt=0,lte=1000000000000"`
}

var (
	ErrNonPositive = errors.New("salary must be greater than zero")
	ErrOutOfRange  = errors.New("salary exceeds the supported maximum")
)

// maxMonthlySalary keeps hourly rates finite and amounts printable.
var maxMonthlySalary = decimal.New(1, 12)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(field reflect.Value) any {
		if value, ok := field.Interface().(decimal.Decimal); ok {
			return value.InexactFloat64()
		}
		return nil
	}, decimal.Decimal{})
	return v
}

// Validate checks the record before it is persisted.
func (r Record) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid salary record for employee %q: %w", r.EmployeeID, err)
	}
	return nil
}

// ParseAmount reads a salary cell or form value. Thousands separators and a
// leading "Rs." are accepted.
func ParseAmount(raw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "Rs.")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)
	if cleaned == "" {
		return decimal.Decimal{}, fmt.Errorf("empty salary value")
	}

	amount, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("parse salary %q: %w", raw, err)
	}
	if !amount.IsPositive() {
		return decimal.Decimal{}, fmt.Errorf("parse salary %q: %w", raw, ErrNonPositive)
	}
	if amount.GreaterThan(maxMonthlySalary) {
		return decimal.Decimal{}, fmt.Errorf("parse salary %q: %w", raw, ErrOutOfRange)
	}
	return amount, nil
}

// ForEmployee builds the record for a roster employee. Attendance exports
// sometimes leave the name cell blank; the employee id stands in for it.
func ForEmployee(employee attendance.Employee, amount decimal.Decimal) Record {
	name := strings.TrimSpace(employee.Name)
	if name == "" {
		name = employee.ID
	}
	return Record{EmployeeID: employee.ID, Name: name, MonthlySalary: amount}
}

// MatchResult pairs roster employees with salaries from a salary sheet.
type MatchResult struct {
	Matched   []Record
	Unmatched []string
}

// Match looks up every roster employee in sheet by employee id. Names come
// from the roster, see ForEmployee.
func Match(roster []attendance.Employee, sheet map[string]decimal.Decimal) MatchResult {
	result := MatchResult{
		Matched:   make([]Record, 0, len(roster)),
		Unmatched: make([]string, 0),
	}
	for _, employee := range roster {
		amount, ok := sheet[employee.ID]
		if !ok {
			result.Unmatched = append(result.Unmatched, employee.ID)
			continue
		}
		result.Matched = append(result.Matched, ForEmployee(employee, amount))
	}
	return result
}
