package insights

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"spendsight/internal/ai"
	"spendsight/internal/core"
	"spendsight/internal/log"
)

const generatorSystemPrompt = `You are a financial AI analyst. Analyze expense data and return ONLY a valid JSON array of 3-4 insights. Each insight must have:
- type: "warning" (for high spending alerts), "success" (for positive patterns), "tip" (for savings opportunities), or "info" (for general information)
- title: A concise, actionable title (e.g., "High Transportation Costs", "Potential Savings on Food")
- message: A detailed summary with specific amounts, timeframes, and categories (e.g., "You spent $183 on Transportation in the last 4 days, with $133 on gas alone.")
- action: A specific, actionable suggestion (e.g., "Consider carpooling, public transport, or fuel-efficient routes to reduce gas expenses.")
- confidence: A number between 0.5 and 1.0

Return ONLY the JSON array, no markdown, no code blocks, no explanation.`

const (
	generatorTemperature = 0.5
	generatorMaxTokens   = 1200
)

// Generator turns an expense aggregation into a list of typed insights via
// the completion service. Service and parse failures degrade to the
// generation-failed content; the error return is reserved for failures that
// should route to the orchestrator's total-failure branch.
type Generator struct {
	completer ai.Completer
	model     string
	logger    *log.Logger
	now       func() time.Time
}

func NewGenerator(completer ai.Completer, model string, logger *log.Logger) *Generator {
	return &Generator{
		completer: completer,
		model:     model,
		logger:    logger.WithComponent(log.ComponentGenerator),
		now:       time.Now,
	}
}

// Generate returns an ordered, non-empty list of insights for agg.
func (g *Generator) Generate(ctx context.Context, agg core.Aggregation) ([]core.Insight, error) {
	payload, err := json.MarshalIndent(agg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal aggregation: %w", err)
	}

	reply, err := g.completer.Complete(ctx, ai.Request{
		Model:       g.model,
		Temperature: generatorTemperature,
		MaxTokens:   generatorMaxTokens,
		Messages: []ai.Message{
			{Role: ai.RoleSystem, Content: generatorSystemPrompt},
			{Role: ai.RoleUser, Content: "Analyze this expense data and generate financial insights:\n" + string(payload)},
		},
	})
	if err != nil {
		g.logger.WarnContext(ctx, "Insight completion failed, using fallback",
			log.FieldOperation, log.OpGenerate, log.FieldError, err.Error())
		return DefaultInsights(ScenarioGenerationFailed), nil
	}

	elements, err := decodeInsightArray(reply)
	if err != nil {
		g.logger.WarnContext(ctx, "Insight reply is not a JSON array, using fallback",
			log.FieldOperation, log.OpGenerate, log.FieldError, err.Error())
		return DefaultInsights(ScenarioGenerationFailed), nil
	}

	stamp := g.now().UnixMilli()
	out := make([]core.Insight, 0, len(elements))
	for i, el := range elements {
		ins := mapInsight(el)
		ins.ID = fmt.Sprintf("ai-%d-%d", stamp, i)
		out = append(out, ins)
	}

	g.logger.InfoContext(ctx, "Generated insights",
		log.FieldOperation, log.OpGenerate, "count", len(out))
	return out, nil
}

// repairCompletion strips the noise the service emits despite instructions:
// surrounding whitespace and fenced code-block markers, both the ```json and
// the bare ``` variants.
func repairCompletion(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

func decodeInsightArray(reply string) ([]map[string]any, error) {
	cleaned := repairCompletion(reply)
	if cleaned == "" {
		cleaned = "[]"
	}
	var elements []map[string]any
	if err := json.Unmarshal([]byte(cleaned), &elements); err != nil {
		return nil, err
	}
	return elements, nil
}

// mapInsight maps one raw array element to a typed Insight. Every field has
// a documented default so a single malformed field never discards the whole
// batch: type→info, title→"Insight", message/action→"", confidence→0.8.
func mapInsight(el map[string]any) core.Insight {
	ins := core.Insight{
		Type:       core.InsightInfo,
		Title:      "Insight",
		Confidence: 0.8,
	}
	if t, ok := el["type"].(string); ok && core.InsightType(t).Valid() {
		ins.Type = core.InsightType(t)
	}
	if title, ok := el["title"].(string); ok && title != "" {
		ins.Title = title
	}
	if msg, ok := el["message"].(string); ok {
		ins.Message = msg
	}
	if action, ok := el["action"].(string); ok {
		ins.Action = action
	}
	if c, ok := el["confidence"].(float64); ok && c >= 0 && c <= 1 {
		ins.Confidence = c
	}
	return ins
}
