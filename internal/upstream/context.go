package upstream

import "context"

type tokenKey struct{}

// WithToken returns a context carrying the bearer token the client attaches
// to outbound requests. The auth middleware stores the session token here;
// the public certificate handler stores a guest token instead.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey{}, token)
}

// Token extracts the bearer token from the context, if any.
func Token(ctx context.Context) (string, bool) {
	tok, ok := ctx.Value(tokenKey{}).(string)
	return tok, ok && tok != ""
}
