// Package requestctx carries the acting user through request contexts.
package requestctx

import (
	"context"
	"strings"
)

type actorKey struct{}

// WithUserID returns ctx tagged with the acting user. Blank ids are stored
// as empty so callers can treat them as anonymous.
func WithUserID(ctx context.Context, userID string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, actorKey{}, strings.TrimSpace(userID))
}

// UserIDFromContext returns the acting user, or "" when none was set.
func UserIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	userID, _ := ctx.Value(actorKey{}).(string)
	return userID
}
