package summary

import (
	"errors"
	"testing"
	"time"

	"github.com/voidshard/secretary/pkg/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC)

func txn(name string, amount string, daysAgo int) domain.Transaction {
	return domain.Transaction{
		Name:   name,
		Amount: decimal.RequireFromString(amount),
		Date:   today.AddDate(0, 0, -daysAgo).Format(domain.DateLayout),
	}
}

func TestEmpty(t *testing.T) {
	weekly, err := WeeklyTotal(nil, today)
	require.Nil(t, err)
	monthly, err := MonthlyTotal([]domain.Transaction{}, today)
	require.Nil(t, err)

	assert.True(t, weekly.IsZero())
	assert.True(t, monthly.IsZero())
}

func TestScenario(t *testing.T) {
	txns := []domain.Transaction{
		txn("a", "10", 1),
		txn("b", "20", 10),
		txn("c", "5", 40),
	}

	res, err := Summarize(txns, today)
	require.Nil(t, err)

	assert.Equal(t, "10", res.Weekly.String())
	assert.Equal(t, "30", res.Monthly.String())
}

func TestWindowBoundaries(t *testing.T) {
	txns := []domain.Transaction{
		txn("seven days ago", "1", 7),
		txn("eight days ago", "2", 8),
		{Name: "a month ago", Amount: decimal.NewFromInt(4), Date: "2026-09-15"},
		{Name: "a month and a day ago", Amount: decimal.NewFromInt(8), Date: "2026-09-14"},
	}

	weekly, err := WeeklyTotal(txns, today)
	require.Nil(t, err)
	monthly, err := MonthlyTotal(txns, today)
	require.Nil(t, err)

	assert.Equal(t, "1", weekly.String())
	assert.Equal(t, "7", monthly.String())
}

func TestWeeklyNeverExceedsMonthly(t *testing.T) {
	amounts := []string{"0", "3.50", "12.01", "99.99", "0.01", "250"}
	txns := []domain.Transaction{}
	for i := 0; i < 60; i++ {
		txns = append(txns, txn("t", amounts[i%len(amounts)], i))

		weekly, err := WeeklyTotal(txns, today)
		require.Nil(t, err)
		monthly, err := MonthlyTotal(txns, today)
		require.Nil(t, err)

		assert.True(t, weekly.LessThanOrEqual(monthly), "after %d txns: %s > %s", i+1, weekly, monthly)
	}
}

func TestMalformedDateAborts(t *testing.T) {
	txns := []domain.Transaction{
		txn("fine", "1", 1),
		{Name: "broken", Amount: decimal.NewFromInt(1), Date: "15/10/2026"},
	}

	_, err := Summarize(txns, today)

	var dpe *DateParseError
	require.True(t, errors.As(err, &dpe))
	assert.Equal(t, 1, dpe.Index)
	assert.Equal(t, "broken", dpe.Name)
	assert.Contains(t, err.Error(), "broken")
}

func TestSummarizeSortsCopy(t *testing.T) {
	txns := []domain.Transaction{
		txn("old", "1", 20),
		txn("new", "1", 0),
		txn("mid", "1", 5),
	}

	res, err := Summarize(txns, today)
	require.Nil(t, err)

	assert.Equal(t, "new", res.Transactions[0].Name)
	assert.Equal(t, "mid", res.Transactions[1].Name)
	assert.Equal(t, "old", res.Transactions[2].Name)
	assert.Equal(t, "old", txns[0].Name)
}

func TestMinusMonthClamps(t *testing.T) {
	cases := map[string]string{
		"2026-03-31": "2026-02-28",
		"2024-03-31": "2024-02-29",
		"2026-01-15": "2025-12-15",
		"2026-10-15": "2026-09-15",
	}

	for in, want := range cases {
		day, err := time.Parse(domain.DateLayout, in)
		require.Nil(t, err)
		assert.Equal(t, want, minusMonth(day).Format(domain.DateLayout), in)
	}
}
