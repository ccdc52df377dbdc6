package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"spendsight/internal/ai"
	"spendsight/internal/core"
	"spendsight/internal/log"
)

const answerSystemPrompt = "You are a financial advisor. Write a concise paragraph (maximum 6-7 lines) with actionable advice. Use paragraph format only - NO numbered lists, NO bullet points, NO markdown formatting, NO bold text, NO headings. Write in flowing sentences. Include specific amounts and timeframes when relevant. Be direct and practical."

const (
	answerTemperature = 0.6
	answerMaxTokens   = 150
	answerMaxLines    = 7
)

// The service is instructed to avoid markdown but is not guaranteed to
// comply; these patterns are the last line of defense before the
// presentation layer.
var (
	reBold     = regexp.MustCompile(`\*\*`)
	reHeading  = regexp.MustCompile(`#{1,6}\s`)
	reNumbered = regexp.MustCompile(`(?m)^\d+\.\s`)
	reBullet   = regexp.MustCompile(`(?m)^[-*+]\s`)
	reBlanks   = regexp.MustCompile(`\n{2,}`)
)

// Synthesizer expands one insight into a short narrative paragraph grounded
// on the same aggregation the insight was generated from. Any failure yields
// the AnswerUnavailable sentinel, never an error, so a broken completion
// call can only ever cost one insight its narrative.
type Synthesizer struct {
	completer ai.Completer
	model     string
	logger    *log.Logger
}

func NewSynthesizer(completer ai.Completer, model string, logger *log.Logger) *Synthesizer {
	return &Synthesizer{
		completer: completer,
		model:     model,
		logger:    logger.WithComponent(log.ComponentAnswers),
	}
}

// Synthesize returns a sanitized single-paragraph answer for the insight.
func (s *Synthesizer) Synthesize(ctx context.Context, ins core.Insight, agg core.Aggregation) (string, error) {
	question := buildQuestion(ins)

	payload, err := json.MarshalIndent(agg, "", "  ")
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to marshal aggregation for answer",
			log.FieldOperation, log.OpSynthesize, log.FieldError, err.Error())
		return AnswerUnavailable, nil
	}

	user := fmt.Sprintf("Expense Data: %s\n\nQuestion/Insight: %s\n\nProvide a concise paragraph analysis (6-7 lines maximum) with specific recommendations and potential savings. Write in paragraph format only - no lists, no bullets, no formatting.", payload, question)

	reply, err := s.completer.Complete(ctx, ai.Request{
		Model:       s.model,
		Temperature: answerTemperature,
		MaxTokens:   answerMaxTokens,
		Messages: []ai.Message{
			{Role: ai.RoleSystem, Content: answerSystemPrompt},
			{Role: ai.RoleUser, Content: user},
		},
	})
	if err != nil {
		s.logger.WarnContext(ctx, "Answer completion failed",
			log.FieldOperation, log.OpSynthesize,
			log.FieldInsightID, ins.ID, log.FieldError, err.Error())
		return AnswerUnavailable, nil
	}

	return sanitizeAnswer(reply), nil
}

// buildQuestion concatenates the insight's title, message and action into
// the question posed to the service. Action may be empty.
func buildQuestion(ins core.Insight) string {
	q := ins.Title + ": " + ins.Message
	if ins.Action != "" {
		q += " " + ins.Action
	}
	return q
}

// sanitizeAnswer strips residual markdown and flattens the reply to at most
// answerMaxLines lines; overflow is joined into one paragraph.
func sanitizeAnswer(reply string) string {
	answer := strings.TrimSpace(reply)
	answer = reBold.ReplaceAllString(answer, "")
	answer = reHeading.ReplaceAllString(answer, "")
	answer = reNumbered.ReplaceAllString(answer, "")
	answer = reBullet.ReplaceAllString(answer, "")
	answer = reBlanks.ReplaceAllString(answer, "\n")
	answer = strings.TrimSpace(answer)

	lines := strings.Split(answer, "\n")
	if len(lines) > answerMaxLines {
		answer = strings.TrimSpace(strings.Join(lines[:answerMaxLines], " "))
	}
	return answer
}
