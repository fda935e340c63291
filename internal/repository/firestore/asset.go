package firestore

import (
	"context"
	"fmt"

	cf "cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"smartasset-backend/internal/domain"
)

type assetRepository struct {
	client *cf.Client
}

func (r *assetRepository) col() *cf.CollectionRef {
	return r.client.Collection(collAssets)
}

// Create writes a new asset document keyed by assetId. Firestore's Create
// fails with AlreadyExists when the key is taken, so the duplicate check
// is atomic rather than read-then-write.
func (r *assetRepository) Create(ctx context.Context, asset *domain.Asset) error {
	if _, err := r.col().Doc(asset.AssetID).Create(ctx, asset); err != nil {
		return mapErr(err)
	}
	return nil
}

func (r *assetRepository) GetByID(ctx context.Context, assetID string) (*domain.Asset, error) {
	snap, err := r.col().Doc(assetID).Get(ctx)
	if err != nil {
		return nil, mapErr(err)
	}
	var asset domain.Asset
	if err := snap.DataTo(&asset); err != nil {
		return nil, fmt.Errorf("decode asset %s: %w", assetID, err)
	}
	if asset.AssetID == "" {
		asset.AssetID = snap.Ref.ID
	}
	return &asset, nil
}

// Update merge-writes the mutable fields of an existing asset. The document
// key (assetId) never changes.
func (r *assetRepository) Update(ctx context.Context, asset *domain.Asset) error {
	_, err := r.col().Doc(asset.AssetID).Set(ctx, map[string]interface{}{
		"assetId":  asset.AssetID,
		"name":     asset.Name,
		"category": asset.Category,
		"owner":    asset.Owner,
		"location": asset.Location,
		"status":   asset.Status,
		"deviceId": asset.DeviceID,
	}, cf.MergeAll)
	return mapErr(err)
}

func (r *assetRepository) UpdateStatus(ctx context.Context, assetID string, status domain.AssetStatus) error {
	_, err := r.col().Doc(assetID).Update(ctx, []cf.Update{
		{Path: "status", Value: status},
	})
	return mapErr(err)
}

func (r *assetRepository) Delete(ctx context.Context, assetID string) error {
	_, err := r.col().Doc(assetID).Delete(ctx)
	return mapErr(err)
}

func (r *assetRepository) List(ctx context.Context) ([]domain.Asset, error) {
	iter := r.col().OrderBy("assetId", cf.Asc).Documents(ctx)
	defer iter.Stop()

	var assets []domain.Asset
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapErr(err)
		}
		var asset domain.Asset
		if err := snap.DataTo(&asset); err != nil {
			return nil, fmt.Errorf("decode asset %s: %w", snap.Ref.ID, err)
		}
		if asset.AssetID == "" {
			asset.AssetID = snap.Ref.ID
		}
		assets = append(assets, asset)
	}
	return assets, nil
}
