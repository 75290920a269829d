package httpx

import "context"

type ctxKey string

const (
	// CtxKeyUserID holds the authenticated user's ID as a string.
	CtxKeyUserID ctxKey = "user_id"
	// CtxKeyUser holds the full authenticated user record.
	CtxKeyUser ctxKey = "user"
)

// UserIDFromContext returns the authenticated user ID, or "" when the request
// is anonymous.
func UserIDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(CtxKeyUserID).(string); ok {
		return v
	}
	return ""
}
