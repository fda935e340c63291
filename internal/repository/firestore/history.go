package firestore

import (
	"context"
	"fmt"

	cf "cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"smartasset-backend/internal/domain"
)

type historyRepository struct {
	client *cf.Client
}

func (r *historyRepository) col() *cf.CollectionRef {
	return r.client.Collection(collAssetHistory)
}

func (r *historyRepository) Append(ctx context.Context, entry *domain.HistoryEntry) error {
	ref := r.col().Doc(uuid.NewString())
	if _, err := ref.Create(ctx, entry); err != nil {
		return mapErr(err)
	}
	entry.ID = ref.ID
	return nil
}

func (r *historyRepository) ListByAsset(ctx context.Context, assetID string) ([]domain.HistoryEntry, error) {
	iter := r.col().
		Where("assetId", "==", assetID).
		OrderBy("timestamp", cf.Desc).
		Documents(ctx)
	defer iter.Stop()

	var entries []domain.HistoryEntry
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapErr(err)
		}
		var entry domain.HistoryEntry
		if err := snap.DataTo(&entry); err != nil {
			return nil, fmt.Errorf("decode history entry %s: %w", snap.Ref.ID, err)
		}
		entry.ID = snap.Ref.ID
		entries = append(entries, entry)
	}
	return entries, nil
}
