package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"spendsight/internal/core"
)

func add(t *testing.T, s *Store, user, amount string, date time.Time) {
	t.Helper()
	_, err := s.Append(context.Background(), user, core.ExpenseRecord{
		Amount:      decimal.RequireFromString(amount),
		Category:    "Food",
		Description: "d",
		Date:        date,
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
}

func TestListRecentOrderingAndWindow(t *testing.T) {
	s := New()
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	add(t, s, "u1", "1.00", base.AddDate(0, 0, -40)) // outside window
	add(t, s, "u1", "2.00", base.AddDate(0, 0, -2))
	add(t, s, "u1", "3.00", base.AddDate(0, 0, -1))
	add(t, s, "u2", "4.00", base) // other user

	got, err := s.ListRecent(context.Background(), "u1", base.AddDate(0, 0, -30), 50)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if !got[0].Date.After(got[1].Date) {
		t.Fatalf("records not newest-first: %v then %v", got[0].Date, got[1].Date)
	}
}

func TestListRecentLimit(t *testing.T) {
	s := New()
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		add(t, s, "u1", "1.00", base.Add(time.Duration(i)*time.Hour))
	}

	got, err := s.ListRecent(context.Background(), "u1", base.AddDate(0, 0, -1), 3)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	// Limit keeps the newest records.
	if !got[0].Date.Equal(base.Add(4 * time.Hour)) {
		t.Fatalf("newest record missing: %v", got[0].Date)
	}
}

func TestAppendValidates(t *testing.T) {
	s := New()
	_, err := s.Append(context.Background(), "u1", core.ExpenseRecord{
		Amount:      decimal.Zero,
		Description: "d",
		Date:        time.Now(),
	})
	if err == nil {
		t.Fatalf("expected validation error for zero amount")
	}
}
