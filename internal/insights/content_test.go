package insights

import (
	"testing"

	"spendsight/internal/core"
)

func TestDefaultContentTable(t *testing.T) {
	noData := DefaultInsights(ScenarioNoData)
	if len(noData) != 2 {
		t.Fatalf("no-data entries = %d, want 2", len(noData))
	}
	if noData[0].ID != "welcome-1" || noData[1].ID != "welcome-2" {
		t.Fatalf("onboarding ids wrong: %q, %q", noData[0].ID, noData[1].ID)
	}
	if noData[0].Confidence != 1.0 || noData[1].Confidence != 1.0 {
		t.Fatalf("onboarding confidence must be 1.0")
	}

	failed := DefaultInsights(ScenarioGenerationFailed)
	if len(failed) != 1 || failed[0].ID != "fallback" || failed[0].Type != core.InsightInfo {
		t.Fatalf("generation-failed entry wrong: %+v", failed)
	}

	total := DefaultInsights(ScenarioTotalFailure)
	if len(total) != 1 || total[0].Type != core.InsightWarning || total[0].Confidence != 0.5 {
		t.Fatalf("total-failure entry wrong: %+v", total)
	}
}

func TestDefaultInsightsReturnsCopies(t *testing.T) {
	a := DefaultInsights(ScenarioNoData)
	a[0].AIAnswer = "mutated"
	b := DefaultInsights(ScenarioNoData)
	if b[0].AIAnswer != "" {
		t.Fatalf("table entries must not be shared with callers")
	}
}
