package core

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	InsightWarning InsightType = "warning"
	InsightInfo    InsightType = "info"
	InsightSuccess InsightType = "success"
	InsightTip     InsightType = "tip"
)

// DefaultCategory is assigned to records stored without a category.
const DefaultCategory = "Other"

type (
	InsightType string

	// ExpenseRecord is a single expense as sourced from the record store.
	// Records are immutable; the pipeline never writes them back.
	ExpenseRecord struct {
		ID          string
		Amount      decimal.Decimal
		Category    string
		Description string
		Date        time.Time
	}

	// Insight is one generated observation about spending behavior.
	// Ids are generation-scoped and never stable across calls.
	Insight struct {
		ID         string      `json:"id"`
		Type       InsightType `json:"type"`
		Title      string      `json:"title"`
		Message    string      `json:"message"`
		Action     string      `json:"action,omitempty"`
		Confidence float64     `json:"confidence"`
		AIAnswer   string      `json:"aiAnswer,omitempty"`
	}
)

var (
	ErrEmptyDescription = errors.New("empty description")
	ErrInvalidAmount    = errors.New("invalid amount")
	ErrZeroDate         = errors.New("date cannot be zero")
)

// Valid reports whether t is one of the four known insight types.
func (t InsightType) Valid() bool {
	switch t {
	case InsightWarning, InsightInfo, InsightSuccess, InsightTip:
		return true
	}
	return false
}

func (r ExpenseRecord) Validate() error {
	if len(strings.TrimSpace(r.Description)) == 0 {
		return ErrEmptyDescription
	}
	if len(r.Description) > 200 {
		return errors.New("description too long (max 200 characters)")
	}
	if r.Amount.Sign() <= 0 {
		return ErrInvalidAmount
	}
	if r.Date.IsZero() {
		return ErrZeroDate
	}
	return nil
}

// CategoryOrDefault returns the record's category, or DefaultCategory when
// the stored value is blank.
func (r ExpenseRecord) CategoryOrDefault() string {
	if strings.TrimSpace(r.Category) == "" {
		return DefaultCategory
	}
	return r.Category
}

// ParseAmount parses a stored decimal amount. Malformed values count as
// zero rather than poisoning downstream sums.
func ParseAmount(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
