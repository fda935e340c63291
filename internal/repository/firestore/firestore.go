// Package firestore implements the repository interfaces on Cloud
// Firestore, the document store the asset tracker has always lived in.
// Collection and field names match the existing data exactly.
package firestore

import (
	cf "cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"smartasset-backend/internal/repository"
)

const (
	collAssets          = "assets"
	collBorrowRequests  = "borrowRequests"
	collAssetHistory    = "assetHistory"
	collDeviceLocations = "deviceLocations"
	collSessions        = "sessions"
)

// Store bundles the Firestore-backed repositories over one client.
type Store struct {
	Assets   repository.AssetRepository
	Requests repository.BorrowRequestRepository
	History  repository.HistoryRepository
	Devices  repository.DeviceLocationRepository
	Sessions repository.SessionRepository

	client *cf.Client
}

// NewStore creates all repositories backed by the given client.
func NewStore(client *cf.Client) *Store {
	return &Store{
		Assets:   &assetRepository{client: client},
		Requests: &borrowRequestRepository{client: client},
		History:  &historyRepository{client: client},
		Devices:  &deviceLocationRepository{client: client},
		Sessions: &sessionRepository{client: client},
		client:   client,
	}
}

// Client exposes the underlying client for snapshot watchers.
func (s *Store) Client() *cf.Client { return s.client }

// mapErr translates Firestore gRPC status codes into repository sentinels.
// Anything else is surfaced raw; the UI shows provider errors verbatim.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.NotFound:
			return repository.ErrNotFound
		case codes.AlreadyExists:
			return repository.ErrDuplicateAsset
		}
	}
	return err
}
