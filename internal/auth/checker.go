package auth

import "context"

var _ Checker = (*LoginChecker)(nil)

type Checker interface {
	// LoggedUserID resolves a session token to its user, or fails with
	// ErrNotLoggedIn / ErrSessionExpired.
	LoggedUserID(ctx context.Context, token string) (int, error)
}
