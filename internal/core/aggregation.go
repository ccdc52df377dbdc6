package core

import (
	"time"

	"github.com/shopspring/decimal"
)

type (
	// Aggregation is the derived statistical summary of a batch of expense
	// records. It is recomputed on every request and never persisted.
	Aggregation struct {
		TotalAmount    decimal.Decimal            `json:"totalAmount"`
		CategoryTotals map[string]decimal.Decimal `json:"categoryTotals"`
		CategoryCounts map[string]int             `json:"categoryCounts"`
		TotalExpenses  int                        `json:"totalExpenses"`
		DateGroups     map[string]decimal.Decimal `json:"dateGroups"`
		Expenses       []AggregatedExpense        `json:"expenses"`
	}

	// AggregatedExpense is the normalized per-record view included in the
	// aggregation payload: amount, category, description and day-only date.
	AggregatedExpense struct {
		Amount      decimal.Decimal `json:"amount"`
		Category    string          `json:"category"`
		Description string          `json:"description"`
		Date        string          `json:"date"`
	}
)

// BuildAggregation reduces records into an Aggregation in one linear pass.
// Category keys are taken verbatim; callers supply canonical categories.
// Day grouping converts each record date to UTC before truncating to the
// calendar day, so a record groups under the same day no matter which
// offset the writing client used.
//
// Invariant: sum(CategoryTotals) == TotalAmount == sum(DateGroups).
func BuildAggregation(records []ExpenseRecord) Aggregation {
	agg := Aggregation{
		TotalAmount:    decimal.Zero,
		CategoryTotals: make(map[string]decimal.Decimal, len(records)),
		CategoryCounts: make(map[string]int, len(records)),
		DateGroups:     make(map[string]decimal.Decimal, len(records)),
		TotalExpenses:  len(records),
		Expenses:       make([]AggregatedExpense, 0, len(records)),
	}

	for _, r := range records {
		day := DayKey(r.Date)

		agg.TotalAmount = agg.TotalAmount.Add(r.Amount)
		agg.CategoryTotals[r.Category] = agg.CategoryTotals[r.Category].Add(r.Amount)
		agg.CategoryCounts[r.Category]++
		agg.DateGroups[day] = agg.DateGroups[day].Add(r.Amount)
		agg.Expenses = append(agg.Expenses, AggregatedExpense{
			Amount:      r.Amount,
			Category:    r.Category,
			Description: r.Description,
			Date:        day,
		})
	}

	return agg
}

// DayKey renders the calendar-day grouping key for a record date.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
