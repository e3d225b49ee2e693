package httpx

import "context"

type ctxKey string

const ctxKeyUserID ctxKey = "user_id"

// WithUserID records the authenticated user on ctx. Per-user rate limits
// key off it.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKeyUserID, userID)
}

// UserIDFromContext returns the authenticated user id, if any.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(ctxKeyUserID).(string)
	return id, ok && id != ""
}
