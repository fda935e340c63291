package firestore

import (
	"context"
	"fmt"
	"time"

	cf "cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"smartasset-backend/internal/domain"
	"smartasset-backend/internal/repository"
)

type borrowRequestRepository struct {
	client *cf.Client
}

func (r *borrowRequestRepository) col() *cf.CollectionRef {
	return r.client.Collection(collBorrowRequests)
}

func decodeRequest(snap *cf.DocumentSnapshot) (*domain.BorrowRequest, error) {
	var req domain.BorrowRequest
	if err := snap.DataTo(&req); err != nil {
		return nil, fmt.Errorf("decode borrow request %s: %w", snap.Ref.ID, err)
	}
	req.ID = snap.Ref.ID
	return &req, nil
}

// CreateIfAvailable runs the availability check and the write in one
// transaction: every existing request for the asset that is not already
// Rejected or Returned is tested against the inclusive overlap predicate.
// Two concurrent submissions for overlapping dates cannot both commit;
// the later cascade onto the asset document is still a separate write.
func (r *borrowRequestRepository) CreateIfAvailable(ctx context.Context, req *domain.BorrowRequest) error {
	ref := r.col().Doc(uuid.NewString())
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *cf.Transaction) error {
		iter := tx.Documents(r.col().Where("assetId", "==", req.AssetID))
		defer iter.Stop()
		for {
			snap, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				return err
			}
			existing, err := decodeRequest(snap)
			if err != nil {
				return err
			}
			if existing.Status.IsTerminal() {
				continue
			}
			if domain.DatesOverlap(req.StartDate, req.EndDate, existing.StartDate, existing.EndDate) {
				return repository.ErrDateConflict
			}
		}
		return tx.Create(ref, req)
	})
	if err != nil {
		return mapErr(err)
	}
	req.ID = ref.ID
	return nil
}

func (r *borrowRequestRepository) GetByID(ctx context.Context, id string) (*domain.BorrowRequest, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapErr(err)
	}
	return decodeRequest(snap)
}

// Transition applies a conditional status change. The request is re-read
// inside the transaction so a concurrent transition cannot slip a request
// out of an allowed state between check and write.
func (r *borrowRequestRepository) Transition(ctx context.Context, id string, allowedFrom []domain.RequestStatus, upd repository.TransitionUpdate) (*domain.BorrowRequest, error) {
	ref := r.col().Doc(id)
	var result *domain.BorrowRequest
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *cf.Transaction) error {
		snap, err := tx.Get(ref)
		if err != nil {
			return err
		}
		req, err := decodeRequest(snap)
		if err != nil {
			return err
		}
		if !statusAllowed(req.Status, allowedFrom) {
			return repository.ErrInvalidTransition
		}

		updates := []cf.Update{{Path: "status", Value: upd.To}}
		if upd.AdminNote != "" {
			updates = append(updates, cf.Update{Path: "adminNote", Value: upd.AdminNote})
		}
		if upd.StampReviewedAt {
			updates = append(updates, cf.Update{Path: "reviewedAt", Value: cf.ServerTimestamp})
		}
		if upd.StampReturnedAt {
			updates = append(updates, cf.Update{Path: "returnedAt", Value: cf.ServerTimestamp})
		}
		if err := tx.Update(ref, updates); err != nil {
			return err
		}

		now := time.Now()
		req.Status = upd.To
		if upd.AdminNote != "" {
			req.AdminNote = upd.AdminNote
		}
		if upd.StampReviewedAt {
			req.ReviewedAt = &now
		}
		if upd.StampReturnedAt {
			req.ReturnedAt = &now
		}
		result = req
		return nil
	})
	if err != nil {
		return nil, mapErr(err)
	}
	return result, nil
}

func statusAllowed(s domain.RequestStatus, allowed []domain.RequestStatus) bool {
	for _, a := range allowed {
		if s == a {
			return true
		}
	}
	return false
}

func (r *borrowRequestRepository) List(ctx context.Context) ([]domain.BorrowRequest, error) {
	return r.collect(r.col().OrderBy("createdAt", cf.Desc).Documents(ctx))
}

func (r *borrowRequestRepository) ListByRequester(ctx context.Context, email string) ([]domain.BorrowRequest, error) {
	q := r.col().Where("requestedBy", "==", email).OrderBy("createdAt", cf.Desc)
	return r.collect(q.Documents(ctx))
}

func (r *borrowRequestRepository) ListByAsset(ctx context.Context, assetID string) ([]domain.BorrowRequest, error) {
	return r.collect(r.col().Where("assetId", "==", assetID).Documents(ctx))
}

// ListOverdue returns Approved requests whose inclusive endDate has passed.
func (r *borrowRequestRepository) ListOverdue(ctx context.Context, now time.Time) ([]domain.BorrowRequest, error) {
	today := now.UTC().Format(domain.DateLayout)
	q := r.col().
		Where("status", "==", domain.RequestStatusApproved).
		Where("endDate", "<", today)
	return r.collect(q.Documents(ctx))
}

func (r *borrowRequestRepository) collect(iter *cf.DocumentIterator) ([]domain.BorrowRequest, error) {
	defer iter.Stop()
	var reqs []domain.BorrowRequest
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, mapErr(err)
		}
		req, err := decodeRequest(snap)
		if err != nil {
			return nil, err
		}
		reqs = append(reqs, *req)
	}
	return reqs, nil
}
