package insights

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"spendsight/internal/ai"
	"spendsight/internal/core"
	"spendsight/internal/log"
)

// fakeCompleter is a scriptable ai.Completer shared by the tests in this
// package.
type fakeCompleter struct {
	mu      sync.Mutex
	reply   string
	err     error
	calls   int
	lastReq ai.Request
}

func (f *fakeCompleter) Complete(_ context.Context, req ai.Request) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastReq = req
	return f.reply, f.err
}

func (f *fakeCompleter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testLogger() *log.Logger {
	return log.New(log.DefaultConfig())
}

func mustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

func testAgg() core.Aggregation {
	return core.BuildAggregation([]core.ExpenseRecord{
		{Amount: core.ParseAmount("12.50"), Category: "Food", Description: "lunch", Date: mustTime("2025-03-01T12:00:00Z")},
	})
}

const insightArray = `[
  {"type":"warning","title":"High Food Costs","message":"You spent a lot on food.","action":"Cook at home","confidence":0.9},
  {"type":"tip","title":"Savings Tip","message":"Try batch cooking.","action":"","confidence":0.7}
]`

func TestGenerateParsesReply(t *testing.T) {
	fc := &fakeCompleter{reply: insightArray}
	g := NewGenerator(fc, "test-model", testLogger())

	got, err := g.Generate(context.Background(), testAgg())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("len = %d, want 2", len(got))
	}
	if got[0].Type != core.InsightWarning || got[0].Title != "High Food Costs" {
		t.Fatalf("first insight wrong: %+v", got[0])
	}
	if got[1].Confidence != 0.7 {
		t.Fatalf("confidence = %v, want 0.7", got[1].Confidence)
	}
	if got[0].ID == "" || got[0].ID == got[1].ID {
		t.Fatalf("ids must be unique within a generation: %q vs %q", got[0].ID, got[1].ID)
	}
}

func TestGenerateFencedReplyParsesIdentically(t *testing.T) {
	plain := &fakeCompleter{reply: insightArray}
	fenced := &fakeCompleter{reply: "```json\n" + insightArray + "\n```"}

	g1 := NewGenerator(plain, "test-model", testLogger())
	g2 := NewGenerator(fenced, "test-model", testLogger())

	a, err := g1.Generate(context.Background(), testAgg())
	if err != nil {
		t.Fatalf("plain: %v", err)
	}
	b, err := g2.Generate(context.Background(), testAgg())
	if err != nil {
		t.Fatalf("fenced: %v", err)
	}
	if len(a) != len(b) {
		t.Fatalf("lengths differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i].Type != b[i].Type || a[i].Title != b[i].Title ||
			a[i].Message != b[i].Message || a[i].Confidence != b[i].Confidence {
			t.Fatalf("element %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestGenerateDefensiveDefaults(t *testing.T) {
	fc := &fakeCompleter{reply: `[
	  {"message":"no type or title"},
	  {"type":"shout","title":"Bad Type","confidence":"high"},
	  {"type":"success","title":"OK","confidence":1.7}
	]`}
	g := NewGenerator(fc, "test-model", testLogger())

	got, err := g.Generate(context.Background(), testAgg())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}

	if got[0].Type != core.InsightInfo || got[0].Title != "Insight" || got[0].Confidence != 0.8 {
		t.Fatalf("missing fields not defaulted: %+v", got[0])
	}
	if got[1].Type != core.InsightInfo || got[1].Confidence != 0.8 {
		t.Fatalf("invalid type/confidence not defaulted: %+v", got[1])
	}
	if got[2].Confidence != 0.8 {
		t.Fatalf("out-of-range confidence not defaulted: %+v", got[2])
	}
}

func TestGenerateInvalidJSONFallsBack(t *testing.T) {
	fc := &fakeCompleter{reply: "Sure! Here are some insights about your spending."}
	g := NewGenerator(fc, "test-model", testLogger())

	got, err := g.Generate(context.Background(), testAgg())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].ID != "fallback" || got[0].Type != core.InsightInfo || got[0].Title != "AI Unavailable" {
		t.Fatalf("fallback insight wrong: %+v", got[0])
	}
	if got[0].Confidence != 0.5 {
		t.Fatalf("fallback confidence = %v, want 0.5", got[0].Confidence)
	}
}

func TestGenerateServiceErrorFallsBack(t *testing.T) {
	fc := &fakeCompleter{err: errors.New("quota exceeded")}
	g := NewGenerator(fc, "test-model", testLogger())

	got, err := g.Generate(context.Background(), testAgg())
	if err != nil {
		t.Fatalf("service errors must not propagate, got %v", err)
	}
	if len(got) != 1 || got[0].ID != "fallback" {
		t.Fatalf("expected single fallback insight, got %+v", got)
	}
}

func TestGenerateRequestShape(t *testing.T) {
	fc := &fakeCompleter{reply: "[]"}
	g := NewGenerator(fc, "test-model", testLogger())

	if _, err := g.Generate(context.Background(), testAgg()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := fc.lastReq
	if req.Model != "test-model" {
		t.Fatalf("model = %q", req.Model)
	}
	if req.Temperature != 0.5 || req.MaxTokens != 1200 {
		t.Fatalf("params = %v/%d, want 0.5/1200", req.Temperature, req.MaxTokens)
	}
	if len(req.Messages) != 2 || req.Messages[0].Role != ai.RoleSystem || req.Messages[1].Role != ai.RoleUser {
		t.Fatalf("unexpected message turns: %+v", req.Messages)
	}
}

func TestRepairCompletion(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  [1]  ", "[1]"},
		{"```json\n[1]\n```", "[1]"},
		{"```\n[1]\n```", "[1]"},
		{"[1]", "[1]"},
	}
	for _, tc := range cases {
		if got := repairCompletion(tc.in); got != tc.want {
			t.Fatalf("repairCompletion(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
