package requestid

import (
	"context"

	"github.com/google/uuid"
)

type contextKey struct{}

// Header is the HTTP header the request id is read from and echoed to.
const Header = "X-Request-ID"

func New() string {
	return uuid.NewString()
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// FromContext returns the request id stored in ctx, or "" if none was set.
func FromContext(ctx context.Context) string {
	if id, ok := ctx.Value(contextKey{}).(string); ok {
		return id
	}
	return ""
}
