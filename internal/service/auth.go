package service

import (
	"context"
	"fmt"
	"time"

	"smartasset-backend/internal/domain"
	"smartasset-backend/internal/logger"
	"smartasset-backend/internal/repository"
	"smartasset-backend/internal/security"
)

type authService struct {
	identity     IdentityProvider
	sessionRepo  repository.SessionRepository
	tokenManager security.TokenManager
	adminEmail   string
	baseUser     string
	emailDomain  string
	refreshTTL   time.Duration
}

func NewAuthService(
	identity IdentityProvider,
	sessionRepo repository.SessionRepository,
	tokenManager security.TokenManager,
	adminEmail, baseUser, emailDomain string,
	refreshTTL time.Duration,
) AuthService {
	return &authService{
		identity:     identity,
		sessionRepo:  sessionRepo,
		tokenManager: tokenManager,
		adminEmail:   adminEmail,
		baseUser:     baseUser,
		emailDomain:  emailDomain,
		refreshTTL:   refreshTTL,
	}
}

// EstablishSession turns a verified Firebase ID token into app session
// tokens. The role claim on the access token is the authorization boundary;
// any client-side redirect on top of it is cosmetic.
func (s *authService) EstablishSession(ctx context.Context, idToken string) (*SessionTokens, error) {
	if idToken == "" {
		return nil, fmt.Errorf("%w: id token is required", ErrValidation)
	}
	principal, err := s.identity.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	principal.Role = domain.RoleFor(principal.Email, s.adminEmail)
	if principal.DisplayName == "" {
		principal.DisplayName = domain.ShortName(principal.Email)
	}
	return s.issueTokens(ctx, *principal)
}

func (s *authService) Refresh(ctx context.Context, sessionID, refreshToken string) (*SessionTokens, error) {
	claims, err := s.tokenManager.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Type != security.TokenTypeRefresh {
		return nil, security.ErrWrongTokenType
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if !security.CompareToken(session.TokenHash, refreshToken) {
		return nil, security.ErrInvalidToken
	}
	if time.Now().After(session.ExpiresAt) {
		_ = s.sessionRepo.Delete(ctx, sessionID)
		return nil, security.ErrExpiredToken
	}

	// Rotate: the presented refresh token is spent.
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		logger.Warn("failed to delete rotated session", "session_id", sessionID, "error", err)
	}

	principal := domain.Principal{
		Email:       claims.Email,
		DisplayName: claims.Name,
		Role:        domain.RoleFor(claims.Email, s.adminEmail),
	}
	return s.issueTokens(ctx, principal)
}

func (s *authService) Logout(ctx context.Context, sessionID string) error {
	return s.sessionRepo.Delete(ctx, sessionID)
}

// ProvisionEmployee creates a Firebase login for a short username. The real
// address is plus-addressed onto the provisioning account; the username
// becomes the display name. Convenience only, not a security boundary.
func (s *authService) ProvisionEmployee(ctx context.Context, username, password string) (*domain.Principal, error) {
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrValidation)
	}
	if len(password) < 6 {
		return nil, fmt.Errorf("%w: password must be at least 6 characters", ErrValidation)
	}

	email := domain.SynthesizeEmail(s.baseUser, s.emailDomain, username)
	uid, err := s.identity.CreateUser(ctx, email, password, username)
	if err != nil {
		return nil, err
	}
	return &domain.Principal{
		UID:         uid,
		Email:       email,
		DisplayName: username,
		Role:        domain.RoleFor(email, s.adminEmail),
	}, nil
}

func (s *authService) issueTokens(ctx context.Context, principal domain.Principal) (*SessionTokens, error) {
	access, err := s.tokenManager.GenerateAccessToken(principal)
	if err != nil {
		return nil, err
	}
	refresh, err := s.tokenManager.GenerateRefreshToken(principal)
	if err != nil {
		return nil, err
	}

	hash, err := security.HashToken(refresh)
	if err != nil {
		return nil, err
	}
	session := &domain.Session{
		Email:     principal.Email,
		TokenHash: hash,
		ExpiresAt: time.Now().Add(s.refreshTTL),
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	return &SessionTokens{
		AccessToken:  access,
		RefreshToken: session.ID + "." + refresh,
		Principal:    principal,
	}, nil
}
