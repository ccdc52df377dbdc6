// Package anthropic adapts the Anthropic Messages API to the ai.Completer
// port.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"spendsight/internal/ai"
)

type Client struct {
	client sdk.Client
}

// New creates a client. An empty apiKey falls back to the SDK's own
// environment lookup (ANTHROPIC_API_KEY).
func New(apiKey string) *Client {
	var opts []option.RequestOption
	if apiKey != "" {
		opts = append(opts, option.WithAPIKey(apiKey))
	}
	return &Client{client: sdk.NewClient(opts...)}
}

// Complete implements ai.Completer. System-role turns are folded into the
// request's system prompt; everything else is sent as user turns.
func (c *Client) Complete(ctx context.Context, req ai.Request) (string, error) {
	var system []sdk.TextBlockParam
	var turns []sdk.MessageParam

	for _, m := range req.Messages {
		switch m.Role {
		case ai.RoleSystem:
			system = append(system, sdk.TextBlockParam{Text: m.Content})
		default:
			turns = append(turns, sdk.NewUserMessage(sdk.NewTextBlock(m.Content)))
		}
	}

	msg, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:       sdk.Model(req.Model),
		MaxTokens:   req.MaxTokens,
		Temperature: sdk.Float(req.Temperature),
		System:      system,
		Messages:    turns,
	})
	if err != nil {
		return "", fmt.Errorf("completion request: %w", err)
	}

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
