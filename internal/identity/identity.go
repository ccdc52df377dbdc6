// Package identity resolves session tokens to internal user ids.
package identity

import (
	"context"
	"errors"
)

// ErrUnauthenticated is returned when a session token maps to no user. It is
// the one pipeline failure that propagates to the caller.
var ErrUnauthenticated = errors.New("unauthenticated")

// Resolver maps the current caller's session to an internal user identity.
type Resolver interface {
	Resolve(ctx context.Context, token string) (userID string, err error)
}

// StaticResolver resolves against a fixed token table, typically loaded from
// configuration.
type StaticResolver struct {
	tokens map[string]string
}

func NewStaticResolver(tokens map[string]string) *StaticResolver {
	cp := make(map[string]string, len(tokens))
	for k, v := range tokens {
		cp[k] = v
	}
	return &StaticResolver{tokens: cp}
}

func (r *StaticResolver) Resolve(_ context.Context, token string) (string, error) {
	if userID, ok := r.tokens[token]; ok && userID != "" {
		return userID, nil
	}
	return "", ErrUnauthenticated
}
