// Package deduction computes late-arrival deductions for one employee-day.
package deduction

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"punchpay/attendance"
	"punchpay/internal/timeutil"
)

const (
	daysPerMonth    = 30
	paidHoursPerDay = 24
	lateRateFactor  = 2

	gracePeriod   = 15 * time.Minute
	flatLateLimit = 45 * time.Minute
	// flatBandHours is excluded from the proportional charge.
	flatBandHours = 0.75
)

var (
	flatNoSalary  = decimal.NewFromInt(50)
	flatNoPunch   = decimal.NewFromInt(25)
	flatLate      = decimal.NewFromInt(50)
	minProportion = decimal.NewFromInt(50)
)

var ErrInvalidSalary = errors.New("monthly salary must be greater than zero")

// Result is the deduction for one attendance record. Absent results carry
// no amount.
type Result struct {
	Amount      decimal.Decimal
	Absent      bool
	Explanation string
}

// AmountText renders the amount with two decimals, or ABSENT.
func (r Result) AmountText() string {
	if r.Absent {
		return "ABSENT"
	}
	return r.Amount.StringFixed(2)
}

// Charged reports whether the result should appear on a deduction report.
func (r Result) Charged() bool {
	return !r.Absent && !r.Amount.IsZero()
}

// HourlyRate spreads a monthly salary over 30 days of 24 paid hours.
func HourlyRate(monthlySalary decimal.Decimal) float64 {
	return monthlySalary.InexactFloat64() / (daysPerMonth * paidHoursPerDay)
}

// Compute applies the deduction rules to one record. A nil salary means the
// employee has no salary on file.
func Compute(record attendance.Record, monthlySalary *decimal.Decimal) (Result, error) {
	if monthlySalary == nil {
		return Result{Amount: flatNoSalary, Explanation: "no salary data available, flat deduction of 50"}, nil
	}
	if !monthlySalary.IsPositive() {
		return Result{}, fmt.Errorf("%w: got %s", ErrInvalidSalary, monthlySalary.String())
	}
	hourlyRate := HourlyRate(*monthlySalary)
	if math.IsInf(hourlyRate, 0) {
		return Result{}, fmt.Errorf("%w: got %s", ErrInvalidSalary, monthlySalary.String())
	}

	first, last := record.FirstPunch, record.LastPunch
	switch {
	case !first.Valid() && !last.Valid():
		return Result{Absent: true, Explanation: "absent, no punches recorded"}, nil
	case !first.Valid():
		return Result{Amount: flatNoPunch, Explanation: "no punch-in, flat deduction of 25"}, nil
	case !last.Valid():
		return Result{Amount: flatNoPunch, Explanation: "no punch-out, flat deduction of 25"}, nil
	}

	shift := AssignShift(first)
	delay := first.SinceMidnight() - shift.Start()

	if delay <= gracePeriod {
		return Result{Amount: decimal.Zero, Explanation: "no deduction, within grace period"}, nil
	}
	if delay <= flatLateLimit {
		return Result{Amount: flatLate, Explanation: "late by up to 45 minutes, flat deduction of 50"}, nil
	}

	hoursLate := timeutil.HoursFrom(delay) - flatBandHours
	amount := decimal.Max(minProportion, roundCents(hourlyRate*lateRateFactor*hoursLate))
	return Result{
		Amount: amount,
		Explanation: fmt.Sprintf(
			"late by %s, deduction %s (double salary rate for %.2f hours late)",
			timeutil.FormatElapsed(delay),
			amount.StringFixed(2),
			hoursLate,
		),
	}, nil
}

// roundCents rounds the exact binary value to cents, half to even.
func roundCents(value float64) decimal.Decimal {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return decimal.Zero
	}
	return decimal.RequireFromString(strconv.FormatFloat(value, 'f', 2, 64))
}

// ComputeAll evaluates records in parallel with at most workers goroutines.
// Results keep the input order. Salaries missing from the map are treated as
// not on file.
func ComputeAll(ctx context.Context, records []attendance.Record, salaries map[string]decimal.Decimal, workers int) ([]Result, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]Result, len(records))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, record := range records {
		if groupCtx.Err() != nil {
			break
		}
		group.Go(func() error {
			var salary *decimal.Decimal
			if value, ok := salaries[record.EmployeeID]; ok {
				salary = &value
			}
			result, err := Compute(record, salary)
			if err != nil {
				return fmt.Errorf("row %d (employee %s): %w", record.RowNumber, record.EmployeeID, err)
			}
			results[i] = result
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
