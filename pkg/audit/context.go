package audit

import "context"

type contextKey struct{}

// WithClientIP stores the caller's address for audit entries.
func WithClientIP(ctx context.Context, ip string) context.Context {
	return context.WithValue(ctx, contextKey{}, ip)
}

// ClientIPFromContext returns the address stored by WithClientIP, or "".
func ClientIPFromContext(ctx context.Context) string {
	if ip, ok := ctx.Value(contextKey{}).(string); ok {
		return ip
	}
	return ""
}
