package insights

import (
	"context"
	"errors"
	"testing"
)

func newTestCategorizer(t *testing.T, fc *fakeCompleter) *Categorizer {
	t.Helper()
	c, err := NewCategorizer(fc, "test-model", testLogger())
	if err != nil {
		t.Fatalf("NewCategorizer: %v", err)
	}
	return c
}

func TestCategorizeValidReply(t *testing.T) {
	fc := &fakeCompleter{reply: "Food"}
	c := newTestCategorizer(t, fc)

	if got := c.Categorize(context.Background(), "pizza margherita"); got != "Food" {
		t.Fatalf("got %q, want Food", got)
	}
	if fc.lastReq.Temperature != 0 || fc.lastReq.MaxTokens != 8 {
		t.Fatalf("params = %v/%d, want 0/8", fc.lastReq.Temperature, fc.lastReq.MaxTokens)
	}
}

func TestCategorizeUnknownReplyDefaults(t *testing.T) {
	fc := &fakeCompleter{reply: "Groceries and sundries"}
	c := newTestCategorizer(t, fc)

	if got := c.Categorize(context.Background(), "pizza"); got != "Other" {
		t.Fatalf("got %q, want Other", got)
	}
}

func TestCategorizeServiceErrorDefaults(t *testing.T) {
	fc := &fakeCompleter{err: errors.New("timeout")}
	c := newTestCategorizer(t, fc)

	if got := c.Categorize(context.Background(), "pizza"); got != "Other" {
		t.Fatalf("got %q, want Other", got)
	}
}

func TestCategorizeEmptyDescription(t *testing.T) {
	fc := &fakeCompleter{reply: "Food"}
	c := newTestCategorizer(t, fc)

	if got := c.Categorize(context.Background(), "   "); got != "Other" {
		t.Fatalf("got %q, want Other", got)
	}
	if fc.callCount() != 0 {
		t.Fatalf("blank descriptions must not reach the service")
	}
}

func TestCategorizeCachesByDescription(t *testing.T) {
	fc := &fakeCompleter{reply: "Transportation"}
	c := newTestCategorizer(t, fc)

	if got := c.Categorize(context.Background(), "uber downtown"); got != "Transportation" {
		t.Fatalf("got %q", got)
	}
	c.Wait()

	if got := c.Categorize(context.Background(), "uber downtown"); got != "Transportation" {
		t.Fatalf("got %q", got)
	}
	if fc.callCount() != 1 {
		t.Fatalf("calls = %d, want 1 (second lookup should hit the cache)", fc.callCount())
	}
}
