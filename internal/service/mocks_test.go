package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"smartasset-backend/internal/domain"
	"smartasset-backend/internal/repository"
)

// MockAssetRepo
type MockAssetRepo struct {
	mock.Mock
}

func (m *MockAssetRepo) Create(ctx context.Context, asset *domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}
func (m *MockAssetRepo) GetByID(ctx context.Context, assetID string) (*domain.Asset, error) {
	args := m.Called(ctx, assetID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Asset), args.Error(1)
}
func (m *MockAssetRepo) Update(ctx context.Context, asset *domain.Asset) error {
	args := m.Called(ctx, asset)
	return args.Error(0)
}
func (m *MockAssetRepo) UpdateStatus(ctx context.Context, assetID string, status domain.AssetStatus) error {
	args := m.Called(ctx, assetID, status)
	return args.Error(0)
}
func (m *MockAssetRepo) Delete(ctx context.Context, assetID string) error {
	args := m.Called(ctx, assetID)
	return args.Error(0)
}
func (m *MockAssetRepo) List(ctx context.Context) ([]domain.Asset, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Asset), args.Error(1)
}

// MockBorrowRequestRepo
type MockBorrowRequestRepo struct {
	mock.Mock
}

func (m *MockBorrowRequestRepo) CreateIfAvailable(ctx context.Context, req *domain.BorrowRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockBorrowRequestRepo) GetByID(ctx context.Context, id string) (*domain.BorrowRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRequest), args.Error(1)
}
func (m *MockBorrowRequestRepo) Transition(ctx context.Context, id string, allowedFrom []domain.RequestStatus, upd repository.TransitionUpdate) (*domain.BorrowRequest, error) {
	args := m.Called(ctx, id, allowedFrom, upd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BorrowRequest), args.Error(1)
}
func (m *MockBorrowRequestRepo) List(ctx context.Context) ([]domain.BorrowRequest, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.BorrowRequest), args.Error(1)
}
func (m *MockBorrowRequestRepo) ListByRequester(ctx context.Context, email string) ([]domain.BorrowRequest, error) {
	args := m.Called(ctx, email)
	return args.Get(0).([]domain.BorrowRequest), args.Error(1)
}
func (m *MockBorrowRequestRepo) ListByAsset(ctx context.Context, assetID string) ([]domain.BorrowRequest, error) {
	args := m.Called(ctx, assetID)
	return args.Get(0).([]domain.BorrowRequest), args.Error(1)
}
func (m *MockBorrowRequestRepo) ListOverdue(ctx context.Context, now time.Time) ([]domain.BorrowRequest, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]domain.BorrowRequest), args.Error(1)
}

// MockHistoryRepo
type MockHistoryRepo struct {
	mock.Mock
}

func (m *MockHistoryRepo) Append(ctx context.Context, entry *domain.HistoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}
func (m *MockHistoryRepo) ListByAsset(ctx context.Context, assetID string) ([]domain.HistoryEntry, error) {
	args := m.Called(ctx, assetID)
	return args.Get(0).([]domain.HistoryEntry), args.Error(1)
}

// MockDeviceRepo
type MockDeviceRepo struct {
	mock.Mock
}

func (m *MockDeviceRepo) GetByID(ctx context.Context, deviceID string) (*domain.DeviceLocation, error) {
	args := m.Called(ctx, deviceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DeviceLocation), args.Error(1)
}
func (m *MockDeviceRepo) List(ctx context.Context) ([]domain.DeviceLocation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DeviceLocation), args.Error(1)
}

// MockSessionRepo
type MockSessionRepo struct {
	mock.Mock
}

func (m *MockSessionRepo) Create(ctx context.Context, session *domain.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}
func (m *MockSessionRepo) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}
func (m *MockSessionRepo) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendRequestSubmitted(ctx context.Context, adminEmail string, req *domain.BorrowRequest) error {
	args := m.Called(ctx, adminEmail, req)
	return args.Error(0)
}
func (m *MockEmailService) SendRequestDecision(ctx context.Context, toEmail string, req *domain.BorrowRequest) error {
	args := m.Called(ctx, toEmail, req)
	return args.Error(0)
}
func (m *MockEmailService) SendGeofenceAlert(ctx context.Context, adminEmail, deviceName string, distanceMeters float64) error {
	args := m.Called(ctx, adminEmail, deviceName, distanceMeters)
	return args.Error(0)
}
func (m *MockEmailService) SendOverdueReminder(ctx context.Context, adminEmail string, req *domain.BorrowRequest) error {
	args := m.Called(ctx, adminEmail, req)
	return args.Error(0)
}

// MockIdentityProvider
type MockIdentityProvider struct {
	mock.Mock
}

func (m *MockIdentityProvider) VerifyIDToken(ctx context.Context, idToken string) (*domain.Principal, error) {
	args := m.Called(ctx, idToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Principal), args.Error(1)
}
func (m *MockIdentityProvider) CreateUser(ctx context.Context, email, password, displayName string) (string, error) {
	args := m.Called(ctx, email, password, displayName)
	return args.String(0), args.Error(1)
}
