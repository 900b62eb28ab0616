package identity

import (
	"context"
	"errors"
	"strings"
)

var ErrUnauthorized = errors.New("unauthorized")

// User is the authenticated caller as established by the auth middleware.
type User struct {
	UID   string
	Email string
	Name  string
}

// Verifier checks a bearer ID token and resolves the caller.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (User, error)
}

type ctxKey struct{ name string }

var ctxKeyUser = ctxKey{name: "currentUser"}

func WithUser(ctx context.Context, u User) context.Context {
	return context.WithValue(ctx, ctxKeyUser, u)
}

func UserFrom(ctx context.Context) (User, bool) {
	u, ok := ctx.Value(ctxKeyUser).(User)
	if !ok || strings.TrimSpace(u.UID) == "" {
		return User{}, false
	}
	return u, true
}
