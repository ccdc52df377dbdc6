// Package ai defines the outbound port to the natural-language completion
// service. The service is an untrusted, possibly-failing black box: callers
// own prompt construction and every reply must be treated as free text.
package ai

import "context"

// Message roles understood by the completion service.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

type (
	// Message is one role-tagged turn of a completion request.
	Message struct {
		Role    string
		Content string
	}

	// Request describes a single text-completion call.
	Request struct {
		Model       string
		Messages    []Message
		Temperature float64
		MaxTokens   int64
	}

	// Completer produces one text completion per request, or an error on
	// transport/quota failure. Implementations must not retry.
	Completer interface {
		Complete(ctx context.Context, req Request) (string, error)
	}
)
