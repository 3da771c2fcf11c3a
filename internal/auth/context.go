package auth

import "context"

// ctxKey is unexported so no other package can collide with our context keys.
type ctxKey int

const tokenKey ctxKey = iota

// WithToken returns a child context carrying the request's bearer token.
// Called by the bearer-extraction middleware.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// TokenFromContext returns the bearer token stored by WithToken, if any.
func TokenFromContext(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(tokenKey).(string)
	if !ok || tok == "" {
		return "", false
	}
	return tok, true
}
