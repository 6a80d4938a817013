package apiclient

import (
	"context"
	"strings"
)

// TokenGetter resolves the bearer token for an outgoing request
type TokenGetter func(ctx context.Context) (string, error)

type tokenKey struct{}

// WithToken stores a request-scoped bearer token on the context
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// TokenFromContext returns the token stored by WithToken
func TokenFromContext(ctx context.Context) string {
	token, _ := ctx.Value(tokenKey{}).(string)
	return token
}

// ContextToken reads the token placed on the context by the gateway
func ContextToken() TokenGetter {
	return func(ctx context.Context) (string, error) {
		return TokenFromContext(ctx), nil
	}
}

// StaticToken always returns the configured token
func StaticToken(token string) TokenGetter {
	token = strings.TrimSpace(token)
	return func(context.Context) (string, error) {
		return token, nil
	}
}

// ChainTokens returns the first non-empty token; getter errors stop the chain
func ChainTokens(getters ...TokenGetter) TokenGetter {
	return func(ctx context.Context) (string, error) {
		for _, get := range getters {
			if get == nil {
				continue
			}
			token, err := get(ctx)
			if err != nil {
				return "", err
			}
			if token != "" {
				return token, nil
			}
		}
		return "", nil
	}
}
