package insights

import "spendsight/internal/core"

// Scenario keys the table of fixed fallback content. Every degraded path of
// the pipeline resolves to one of these rather than an inline literal.
type Scenario string

const (
	// ScenarioNoData covers users with an empty record window.
	ScenarioNoData Scenario = "no-data"
	// ScenarioGenerationFailed covers a failed or unparseable insight
	// completion.
	ScenarioGenerationFailed Scenario = "generation-failed"
	// ScenarioTotalFailure covers any unexpected error escaping the normal
	// path.
	ScenarioTotalFailure Scenario = "total-failure"
)

// AnswerUnavailable is the sentinel returned in place of a failed answer
// synthesis. Callers receive this exact string, never an error.
const AnswerUnavailable = "Unable to process right now."

var defaultContent = map[Scenario][]core.Insight{
	ScenarioNoData: {
		{
			ID:         "welcome-1",
			Type:       core.InsightInfo,
			Title:      "Welcome to spendsight!",
			Message:    "Start adding your expenses to get personalized AI insights about your spending patterns.",
			Action:     "Add your first expense",
			Confidence: 1.0,
		},
		{
			ID:         "welcome-2",
			Type:       core.InsightTip,
			Title:      "Track Regularly",
			Message:    "For best results, try to log expenses daily. This helps our AI provide more accurate insights.",
			Action:     "Set daily reminders",
			Confidence: 1.0,
		},
	},
	ScenarioGenerationFailed: {
		{
			ID:         "fallback",
			Type:       core.InsightInfo,
			Title:      "AI Unavailable",
			Message:    "Try again later.",
			Confidence: 0.5,
		},
	},
	ScenarioTotalFailure: {
		{
			ID:         "error-1",
			Type:       core.InsightWarning,
			Title:      "Insights Temporarily Unavailable",
			Message:    "We're having trouble analyzing your expenses right now. Please try again in a few minutes.",
			Action:     "Retry analysis",
			Confidence: 0.5,
		},
	},
}

// DefaultInsights returns a fresh copy of the fixed insights for a scenario.
// Callers may attach answers to the copy without touching the table.
func DefaultInsights(s Scenario) []core.Insight {
	src := defaultContent[s]
	out := make([]core.Insight, len(src))
	copy(out, src)
	return out
}
