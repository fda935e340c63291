package repository

import (
	"context"
	"errors"
	"time"

	"smartasset-backend/internal/domain"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateAsset    = errors.New("asset id already exists")
	ErrDateConflict      = errors.New("asset is already booked for these dates")
	ErrInvalidTransition = errors.New("request status does not permit this transition")
)

// TransitionUpdate describes a borrow-request status change. Timestamps are
// server-assigned by the store, never taken from the caller's clock.
type TransitionUpdate struct {
	To              domain.RequestStatus
	AdminNote       string // written only when non-empty
	StampReviewedAt bool
	StampReturnedAt bool
}

type AssetRepository interface {
	// Create fails with ErrDuplicateAsset when a record with the same
	// assetId already exists. The check is atomic, not read-then-write.
	Create(ctx context.Context, asset *domain.Asset) error
	GetByID(ctx context.Context, assetID string) (*domain.Asset, error)
	// Update merge-writes the mutable fields; assetId is immutable.
	Update(ctx context.Context, asset *domain.Asset) error
	UpdateStatus(ctx context.Context, assetID string, status domain.AssetStatus) error
	Delete(ctx context.Context, assetID string) error
	// List returns all assets ordered by assetId ascending.
	List(ctx context.Context) ([]domain.Asset, error)
}

type BorrowRequestRepository interface {
	// CreateIfAvailable atomically checks every non-terminal request for the
	// same asset against the inclusive overlap predicate and creates the
	// request, or fails with ErrDateConflict.
	CreateIfAvailable(ctx context.Context, req *domain.BorrowRequest) error
	GetByID(ctx context.Context, id string) (*domain.BorrowRequest, error)
	// Transition re-reads the request inside a transaction, verifies its
	// status is one of allowedFrom (ErrInvalidTransition otherwise) and
	// applies the update.
	Transition(ctx context.Context, id string, allowedFrom []domain.RequestStatus, upd TransitionUpdate) (*domain.BorrowRequest, error)
	// List returns all requests ordered by createdAt descending.
	List(ctx context.Context) ([]domain.BorrowRequest, error)
	ListByRequester(ctx context.Context, email string) ([]domain.BorrowRequest, error)
	ListByAsset(ctx context.Context, assetID string) ([]domain.BorrowRequest, error)
	// ListOverdue returns Approved requests whose endDate is before the day
	// containing now.
	ListOverdue(ctx context.Context, now time.Time) ([]domain.BorrowRequest, error)
}

type HistoryRepository interface {
	// Append writes a new entry. Entries are never mutated or deleted.
	Append(ctx context.Context, entry *domain.HistoryEntry) error
	// ListByAsset returns entries for one asset ordered by timestamp
	// descending.
	ListByAsset(ctx context.Context, assetID string) ([]domain.HistoryEntry, error)
}

type DeviceLocationRepository interface {
	GetByID(ctx context.Context, deviceID string) (*domain.DeviceLocation, error)
	List(ctx context.Context) ([]domain.DeviceLocation, error)
}

type SessionRepository interface {
	Create(ctx context.Context, session *domain.Session) error
	GetByID(ctx context.Context, id string) (*domain.Session, error)
	Delete(ctx context.Context, id string) error
}
