package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestInsightTypeValid(t *testing.T) {
	for _, typ := range []InsightType{InsightWarning, InsightInfo, InsightSuccess, InsightTip} {
		if !typ.Valid() {
			t.Fatalf("%q should be valid", typ)
		}
	}
	if InsightType("note").Valid() {
		t.Fatalf("unknown type should be invalid")
	}
}

func TestExpenseRecordValidate(t *testing.T) {
	good := ExpenseRecord{
		Amount:      decimal.RequireFromString("10.00"),
		Description: "groceries",
		Category:    "Food",
		Date:        time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []ExpenseRecord{
		{Amount: decimal.Zero, Description: "a", Date: good.Date},
		{Amount: decimal.RequireFromString("-1"), Description: "a", Date: good.Date},
		{Amount: good.Amount, Description: "  ", Date: good.Date},
		{Amount: good.Amount, Description: "a"}, // zero date
	}
	for i, r := range bads {
		if err := r.Validate(); err == nil {
			t.Fatalf("case %d expected error", i)
		}
	}
}

func TestCategoryOrDefault(t *testing.T) {
	r := ExpenseRecord{Category: "  "}
	if got := r.CategoryOrDefault(); got != DefaultCategory {
		t.Fatalf("got %q, want %q", got, DefaultCategory)
	}
	r.Category = "Food"
	if got := r.CategoryOrDefault(); got != "Food" {
		t.Fatalf("got %q, want Food", got)
	}
}
