package service

import (
	"context"
	"errors"
	"time"

	"smartasset-backend/internal/domain"
)

// ErrValidation marks input problems caught before any backend call. The
// wrapped message is shown to the operator inline.
var ErrValidation = errors.New("validation failed")

// SessionTokens is what a successful login or refresh returns.
type SessionTokens struct {
	AccessToken  string           `json:"access_token"`
	RefreshToken string           `json:"refresh_token"`
	Principal    domain.Principal `json:"principal"`
}

type AuthService interface {
	// EstablishSession verifies a Firebase ID token, resolves the role by
	// the configured admin address and issues app session tokens.
	EstablishSession(ctx context.Context, idToken string) (*SessionTokens, error)
	Refresh(ctx context.Context, sessionID, refreshToken string) (*SessionTokens, error)
	Logout(ctx context.Context, sessionID string) error
	// ProvisionEmployee creates a Firebase user for a short username,
	// synthesizing the plus-addressed login email.
	ProvisionEmployee(ctx context.Context, username, password string) (*domain.Principal, error)
}

type AssetService interface {
	// List returns all assets ordered by assetId, each annotated with the
	// derived tracking state of its linked device.
	List(ctx context.Context) ([]domain.AssetWithTracking, error)
	Get(ctx context.Context, assetID string) (*domain.Asset, error)
	Create(ctx context.Context, asset *domain.Asset, actor domain.Principal) error
	Update(ctx context.Context, asset *domain.Asset, actor domain.Principal) error
	Delete(ctx context.Context, assetID string, actor domain.Principal) error
}

type BorrowService interface {
	Submit(ctx context.Context, requestedBy, assetID, startDate, endDate, reason string) (*domain.BorrowRequest, error)
	Approve(ctx context.Context, requestID string) (*domain.BorrowRequest, error)
	Reject(ctx context.Context, requestID, adminNote string) (*domain.BorrowRequest, error)
	Return(ctx context.Context, requestID string) (*domain.BorrowRequest, error)
	List(ctx context.Context) ([]domain.BorrowRequest, error)
	ListByRequester(ctx context.Context, email string) ([]domain.BorrowRequest, error)
}

type HistoryService interface {
	// Timeline merges explicit history entries with events derived from
	// borrow-request timestamps, newest first; events with an unresolved
	// timestamp sort before everything else.
	Timeline(ctx context.Context, assetID string) ([]domain.TimelineEvent, error)
}

type PresenceService interface {
	ListDevices(ctx context.Context) ([]domain.DevicePresence, error)
	GetDevice(ctx context.Context, deviceID string) (*domain.DevicePresence, error)
}

type EmailService interface {
	SendRequestSubmitted(ctx context.Context, adminEmail string, req *domain.BorrowRequest) error
	SendRequestDecision(ctx context.Context, toEmail string, req *domain.BorrowRequest) error
	SendGeofenceAlert(ctx context.Context, adminEmail, deviceName string, distanceMeters float64) error
	SendOverdueReminder(ctx context.Context, adminEmail string, req *domain.BorrowRequest) error
}

// IdentityProvider abstracts the external auth provider (Firebase Auth).
// Credential issuance, session persistence and password reset remain the
// provider's business.
type IdentityProvider interface {
	VerifyIDToken(ctx context.Context, idToken string) (*domain.Principal, error)
	CreateUser(ctx context.Context, email, password, displayName string) (uid string, err error)
}

// Clock lets tests pin "now" for presence derivation.
type Clock func() time.Time
