package summary

import (
	"fmt"
	"sort"
	"time"

	"github.com/voidshard/secretary/pkg/domain"

	"github.com/shopspring/decimal"
)

// Result holds both trailing totals and the snapshot they were computed from.
type Result struct {
	Weekly       decimal.Decimal
	Monthly      decimal.Decimal
	Transactions []domain.Transaction
}

// DateParseError is returned when a transaction carries a date we can't read.
type DateParseError struct {
	Index int
	Name  string
	Date  string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("transaction %d (%q) has malformed date %q: %v", e.Index, e.Name, e.Date, e.Err)
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}

// WeeklyTotal sums amounts dated on or after today minus 7 days.
func WeeklyTotal(txns []domain.Transaction, today time.Time) (decimal.Decimal, error) {
	return totalSince(txns, domain.Day(today).AddDate(0, 0, -7))
}

// MonthlyTotal sums amounts dated on or after today minus one calendar month.
func MonthlyTotal(txns []domain.Transaction, today time.Time) (decimal.Decimal, error) {
	return totalSince(txns, minusMonth(domain.Day(today)))
}

// Summarize computes both totals over a private copy of txns and returns it
// sorted newest first.
func Summarize(txns []domain.Transaction, today time.Time) (*Result, error) {
	snapshot := make([]domain.Transaction, len(txns))
	copy(snapshot, txns)

	weekly, err := WeeklyTotal(snapshot, today)
	if err != nil {
		return nil, err
	}
	monthly, err := MonthlyTotal(snapshot, today)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(snapshot, func(i, j int) bool {
		return snapshot[i].Date > snapshot[j].Date
	})

	return &Result{Weekly: weekly, Monthly: monthly, Transactions: snapshot}, nil
}

func totalSince(txns []domain.Transaction, cutoff time.Time) (decimal.Decimal, error) {
	total := decimal.Zero
	for i, t := range txns {
		day, err := time.Parse(domain.DateLayout, t.Date)
		if err != nil {
			return decimal.Zero, &DateParseError{Index: i, Name: t.Name, Date: t.Date, Err: err}
		}
		if !day.Before(cutoff) {
			total = total.Add(t.Amount)
		}
	}
	return total, nil
}

// minusMonth steps back one calendar month, clamping the day to the length of
// the target month (Mar 31 -> Feb 28).
func minusMonth(t time.Time) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month-1, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, time.UTC)
}
