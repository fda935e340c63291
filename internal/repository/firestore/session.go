package firestore

import (
	"context"
	"fmt"

	cf "cloud.google.com/go/firestore"
	"github.com/google/uuid"

	"smartasset-backend/internal/domain"
)

type sessionRepository struct {
	client *cf.Client
}

func (r *sessionRepository) col() *cf.CollectionRef {
	return r.client.Collection(collSessions)
}

func (r *sessionRepository) Create(ctx context.Context, session *domain.Session) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	if _, err := r.col().Doc(session.ID).Create(ctx, session); err != nil {
		return mapErr(err)
	}
	return nil
}

func (r *sessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	snap, err := r.col().Doc(id).Get(ctx)
	if err != nil {
		return nil, mapErr(err)
	}
	var s domain.Session
	if err := snap.DataTo(&s); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", snap.Ref.ID, err)
	}
	s.ID = snap.Ref.ID
	return &s, nil
}

func (r *sessionRepository) Delete(ctx context.Context, id string) error {
	_, err := r.col().Doc(id).Delete(ctx)
	return mapErr(err)
}
