package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"smartasset-backend/internal/domain"
	"smartasset-backend/internal/security"
)

const testJWTSecret = "test-secret-that-is-at-least-32-chars-long"

func newAuthFixture() (*MockIdentityProvider, *MockSessionRepo, AuthService) {
	identity := new(MockIdentityProvider)
	sessionRepo := new(MockSessionRepo)
	tm := security.NewTokenManager(testJWTSecret, time.Hour, 24*time.Hour)
	svc := NewAuthService(identity, sessionRepo, tm, "admin@example.com", "assets", "@example.com", 24*time.Hour)
	return identity, sessionRepo, svc
}

func TestAuthService_EstablishSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Admin gets admin role", func(t *testing.T) {
		identity, sessionRepo, svc := newAuthFixture()
		identity.On("VerifyIDToken", ctx, "fb-token").Return(&domain.Principal{UID: "u1", Email: "Admin@Example.com"}, nil)
		sessionRepo.On("Create", ctx, mock.AnythingOfType("*domain.Session")).Return(nil)

		tokens, err := svc.EstablishSession(ctx, "fb-token")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleAdmin, tokens.Principal.Role)
		assert.NotEmpty(t, tokens.AccessToken)
		// Wire format is "<sessionID>.<jwt>".
		_, jwtPart, ok := strings.Cut(tokens.RefreshToken, ".")
		assert.True(t, ok)
		assert.NotEmpty(t, jwtPart)
	})

	t.Run("Everyone else is an employee", func(t *testing.T) {
		identity, sessionRepo, svc := newAuthFixture()
		identity.On("VerifyIDToken", ctx, "fb-token").Return(&domain.Principal{UID: "u2", Email: "assets+alice@example.com"}, nil)
		sessionRepo.On("Create", ctx, mock.Anything).Return(nil)

		tokens, err := svc.EstablishSession(ctx, "fb-token")
		require.NoError(t, err)
		assert.Equal(t, domain.RoleEmployee, tokens.Principal.Role)
		assert.Equal(t, "alice", tokens.Principal.DisplayName)
	})

	t.Run("Empty token", func(t *testing.T) {
		_, _, svc := newAuthFixture()
		_, err := svc.EstablishSession(ctx, "")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Verification failure", func(t *testing.T) {
		identity, _, svc := newAuthFixture()
		identity.On("VerifyIDToken", ctx, "bad").Return(nil, assert.AnError)

		_, err := svc.EstablishSession(ctx, "bad")
		assert.Error(t, err)
	})
}

func TestAuthService_Refresh(t *testing.T) {
	ctx := context.Background()

	// Establish a session first so we hold a real refresh token and its hash.
	identity, sessionRepo, svc := newAuthFixture()
	identity.On("VerifyIDToken", ctx, "fb-token").Return(&domain.Principal{Email: "assets+alice@example.com"}, nil)

	var stored *domain.Session
	sessionRepo.On("Create", ctx, mock.AnythingOfType("*domain.Session")).Run(func(args mock.Arguments) {
		s := args.Get(1).(*domain.Session)
		s.ID = "sess-1"
		stored = s
	}).Return(nil)

	tokens, err := svc.EstablishSession(ctx, "fb-token")
	require.NoError(t, err)
	sessionID, refreshJWT, ok := strings.Cut(tokens.RefreshToken, ".")
	require.True(t, ok)
	require.Equal(t, "sess-1", sessionID)

	t.Run("Success rotates the session", func(t *testing.T) {
		sessionRepo.On("GetByID", ctx, "sess-1").Return(stored, nil).Once()
		sessionRepo.On("Delete", ctx, "sess-1").Return(nil).Once()

		res, err := svc.Refresh(ctx, "sess-1", refreshJWT)
		require.NoError(t, err)
		assert.NotEmpty(t, res.AccessToken)
		assert.Equal(t, domain.RoleEmployee, res.Principal.Role)
		sessionRepo.AssertCalled(t, "Delete", ctx, "sess-1")
	})

	t.Run("Mismatched token hash", func(t *testing.T) {
		otherHash, err := security.HashToken("some-other-token")
		require.NoError(t, err)
		sessionRepo.On("GetByID", ctx, "sess-1").Return(&domain.Session{
			ID: "sess-1", TokenHash: otherHash, ExpiresAt: time.Now().Add(time.Hour),
		}, nil).Once()

		_, err = svc.Refresh(ctx, "sess-1", refreshJWT)
		assert.ErrorIs(t, err, security.ErrInvalidToken)
	})

	t.Run("Expired session record", func(t *testing.T) {
		matchingHash, err := security.HashToken(refreshJWT)
		require.NoError(t, err)
		sessionRepo.On("GetByID", ctx, "sess-1").Return(&domain.Session{
			ID: "sess-1", TokenHash: matchingHash, ExpiresAt: time.Now().Add(-time.Minute),
		}, nil).Once()
		sessionRepo.On("Delete", ctx, "sess-1").Return(nil).Once()

		_, err = svc.Refresh(ctx, "sess-1", refreshJWT)
		assert.ErrorIs(t, err, security.ErrExpiredToken)
	})

	t.Run("Access token is not a refresh token", func(t *testing.T) {
		_, err := svc.Refresh(ctx, "sess-1", tokens.AccessToken)
		assert.ErrorIs(t, err, security.ErrWrongTokenType)
	})
}

func TestAuthService_ProvisionEmployee(t *testing.T) {
	ctx := context.Background()

	t.Run("Success synthesizes plus-addressed email", func(t *testing.T) {
		identity, _, svc := newAuthFixture()
		identity.On("CreateUser", ctx, "assets+carol@example.com", "hunter22", "carol").Return("uid-9", nil)

		p, err := svc.ProvisionEmployee(ctx, "carol", "hunter22")
		require.NoError(t, err)
		assert.Equal(t, "uid-9", p.UID)
		assert.Equal(t, "assets+carol@example.com", p.Email)
		assert.Equal(t, domain.RoleEmployee, p.Role)
	})

	t.Run("Missing username", func(t *testing.T) {
		_, _, svc := newAuthFixture()
		_, err := svc.ProvisionEmployee(ctx, "", "hunter22")
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("Short password", func(t *testing.T) {
		_, _, svc := newAuthFixture()
		_, err := svc.ProvisionEmployee(ctx, "carol", "12345")
		assert.ErrorIs(t, err, ErrValidation)
	})
}
