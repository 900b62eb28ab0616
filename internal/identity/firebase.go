package identity

import (
	"context"
	"fmt"
	"strings"

	firebase "firebase.google.com/go/v4"
	fbauth "firebase.google.com/go/v4/auth"
)

// FirebaseVerifier validates Firebase ID tokens issued to storefront users.
type FirebaseVerifier struct {
	client *fbauth.Client
}

func NewFirebaseVerifier(ctx context.Context, app *firebase.App) (*FirebaseVerifier, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return &FirebaseVerifier{client: client}, nil
}

func (v *FirebaseVerifier) Verify(ctx context.Context, idToken string) (User, error) {
	token, err := v.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return User{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	uid := strings.TrimSpace(token.UID)
	if uid == "" {
		return User{}, fmt.Errorf("%w: token has no uid", ErrUnauthorized)
	}

	u := User{UID: uid}
	if raw, ok := token.Claims["email"]; ok {
		if s, ok := raw.(string); ok {
			u.Email = strings.TrimSpace(s)
		}
	}
	if raw, ok := token.Claims["name"]; ok {
		if s, ok := raw.(string); ok {
			u.Name = strings.TrimSpace(s)
		}
	}
	return u, nil
}
