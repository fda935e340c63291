// Package identity adapts Firebase Auth to the service layer's
// IdentityProvider interface. Credential issuance, session cookies and
// password reset stay with Firebase.
package identity

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"

	"smartasset-backend/internal/domain"
)

type FirebaseProvider struct {
	client *auth.Client
}

func NewFirebaseProvider(ctx context.Context, app *firebase.App) (*FirebaseProvider, error) {
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return &FirebaseProvider{client: client}, nil
}

// VerifyIDToken validates the token signature and expiry and resolves the
// user record; the role is decided later by the auth service.
func (p *FirebaseProvider) VerifyIDToken(ctx context.Context, idToken string) (*domain.Principal, error) {
	token, err := p.client.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("verify id token: %w", err)
	}
	user, err := p.client.GetUser(ctx, token.UID)
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", token.UID, err)
	}
	return &domain.Principal{
		UID:         user.UID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
	}, nil
}

func (p *FirebaseProvider) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	params := (&auth.UserToCreate{}).
		Email(email).
		Password(password).
		DisplayName(displayName)
	user, err := p.client.CreateUser(ctx, params)
	if err != nil {
		return "", fmt.Errorf("create user: %w", err)
	}
	return user.UID, nil
}
