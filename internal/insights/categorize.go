package insights

import (
	"context"
	"strings"

	"github.com/dgraph-io/ristretto"

	"spendsight/internal/ai"
	"spendsight/internal/core"
	"spendsight/internal/log"
)

const categorizeSystemPrompt = "Return only one category: Food, Transportation, Entertainment, Shopping, Bills, Healthcare, Other."

const categorizeMaxTokens = 8

// validCategories is the fixed set the service is constrained to; replies
// are matched verbatim against it.
var validCategories = []string{
	"Food",
	"Transportation",
	"Entertainment",
	"Shopping",
	"Bills",
	"Healthcare",
	core.DefaultCategory,
}

// Categorizer assigns one of the fixed categories to a free-text expense
// description. The call runs at temperature 0, so results are cached
// in-process keyed by description. Any failure falls back to "Other".
type Categorizer struct {
	completer ai.Completer
	model     string
	logger    *log.Logger
	cache     *ristretto.Cache
}

func NewCategorizer(completer ai.Completer, model string, logger *log.Logger) (*Categorizer, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     1_000,
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &Categorizer{
		completer: completer,
		model:     model,
		logger:    logger.WithComponent(log.ComponentCategorize),
		cache:     cache,
	}, nil
}

// Categorize returns a category from the fixed set for the description.
func (c *Categorizer) Categorize(ctx context.Context, description string) string {
	key := strings.TrimSpace(description)
	if key == "" {
		return core.DefaultCategory
	}

	if v, ok := c.cache.Get(key); ok {
		if cat, ok := v.(string); ok {
			return cat
		}
	}

	reply, err := c.completer.Complete(ctx, ai.Request{
		Model:       c.model,
		Temperature: 0,
		MaxTokens:   categorizeMaxTokens,
		Messages: []ai.Message{
			{Role: ai.RoleSystem, Content: categorizeSystemPrompt},
			{Role: ai.RoleUser, Content: key},
		},
	})
	if err != nil {
		c.logger.WarnContext(ctx, "Categorization failed, defaulting",
			log.FieldOperation, log.OpCategorize, log.FieldError, err.Error())
		return core.DefaultCategory
	}

	category := matchCategory(strings.TrimSpace(reply))
	c.cache.Set(key, category, 1)
	return category
}

// Wait blocks until pending cache writes are applied. Intended for tests.
func (c *Categorizer) Wait() {
	c.cache.Wait()
}

func matchCategory(s string) string {
	for _, v := range validCategories {
		if s == v {
			return v
		}
	}
	return core.DefaultCategory
}
