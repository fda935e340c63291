package firestore

import (
	"context"
	"fmt"

	cf "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"smartasset-backend/internal/domain"
)

// deviceLocationRepository reads the pings written by external device
// agents. This service never writes to deviceLocations.
type deviceLocationRepository struct {
	client *cf.Client
}

func (r *deviceLocationRepository) col() *cf.CollectionRef {
	return r.client.Collection(collDeviceLocations)
}

func decodeDevice(snap *cf.DocumentSnapshot) (*domain.DeviceLocation, error) {
	var dev domain.DeviceLocation
	if err := snap.DataTo(&dev); err != nil {
		return nil, fmt.Errorf("decode device location %s: %w", snap.Ref.ID, err)
	}
	dev.DeviceID = snap.Ref.ID
	return &dev, nil
}

func (r *deviceLocationRepository) GetByID(ctx context.Context, deviceID string) (*domain.DeviceLocation, error) {
	snap, err := r.col().Doc(deviceID).Get(ctx)
	if err != nil {
		return nil, mapErr(err)
	}
	return decodeDevice(snap)
}

func (r *deviceLocationRepository) List(ctx context.Context) ([]domain.DeviceLocation, error) {
	iter := r.col().Documents(ctx)
	defer iter.Stop()

	var devices []domain.DeviceLocation
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapErr(err)
		}
		dev, err := decodeDevice(snap)
		if err != nil {
			return nil, err
		}
		devices = append(devices, *dev)
	}
	return devices, nil
}
