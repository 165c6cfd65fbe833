package auth

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey int

const userIDKey ctxKey = iota

func WithUserID(ctx context.Context, userID int) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the user set by the auth middleware.
func UserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(userIDKey).(int)
	if !ok || userID <= 0 {
		return 0, false
	}
	return userID, true
}

// TokenFromRequest reads the session token from the Authorization header,
// with or without the Bearer scheme.
func TokenFromRequest(r *http.Request) string {
	token := strings.TrimSpace(r.Header.Get("Authorization"))
	if after, found := strings.CutPrefix(token, "Bearer "); found {
		return strings.TrimSpace(after)
	}
	return token
}
