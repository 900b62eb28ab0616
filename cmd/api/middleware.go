package main

import (
	"net/http"
	"strings"

	cartapp "github.com/ReactByHarsh/Apex-Perfumes/internal/cart/app"
	"github.com/ReactByHarsh/Apex-Perfumes/internal/identity"
)

const guestHeader = "X-Guest-Id"

// withAuth resolves an Authorization bearer token when present. A missing
// header is not an error here; guest cart routes work without one.
func (a *api) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" || a.verifier == nil {
			next.ServeHTTP(w, r)
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			a.writeError(w, r, identity.ErrUnauthorized)
			return
		}
		idToken := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
		if idToken == "" {
			a.writeError(w, r, identity.ErrUnauthorized)
			return
		}

		user, err := a.verifier.Verify(r.Context(), idToken)
		if err != nil {
			a.writeError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(identity.WithUser(r.Context(), user)))
	})
}

// requireAuth guards account-only routes.
func (a *api) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := identity.UserFrom(r.Context()); !ok {
			a.writeError(w, r, identity.ErrUnauthorized)
			return
		}
		next(w, r)
	}
}

// cartIdentity picks the account when authenticated, else the guest id from
// the request header. An absent identity is left zero for the service to
// reject.
func cartIdentity(r *http.Request) cartapp.Identity {
	if u, ok := identity.UserFrom(r.Context()); ok {
		return cartapp.Account(u.UID)
	}
	if gid := strings.TrimSpace(r.Header.Get(guestHeader)); gid != "" {
		return cartapp.Guest(gid)
	}
	return cartapp.Identity{}
}
