package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartasset-backend/internal/domain"
)

func TestHistoryService_Timeline(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	at := func(offset time.Duration) *time.Time {
		ts := base.Add(offset)
		return &ts
	}

	t.Run("Merges and sorts descending", func(t *testing.T) {
		historyRepo := new(MockHistoryRepo)
		requestRepo := new(MockBorrowRequestRepo)
		svc := NewHistoryService(historyRepo, requestRepo)

		historyRepo.On("ListByAsset", ctx, "AST-001").Return([]domain.HistoryEntry{
			{AssetID: "AST-001", Action: domain.HistoryActionAdded, Detail: "Drill added to inventory", Timestamp: base},
		}, nil)
		requestRepo.On("ListByAsset", ctx, "AST-001").Return([]domain.BorrowRequest{
			{
				ID: "req-1", AssetID: "AST-001", RequestedBy: "assets+alice@example.com",
				StartDate: "2026-03-02", EndDate: "2026-03-04",
				Status: domain.RequestStatusReturned,
				CreatedAt: base.Add(time.Hour), ReviewedAt: at(2 * time.Hour), ReturnedAt: at(3 * time.Hour),
			},
		}, nil)

		events, err := svc.Timeline(ctx, "AST-001")
		require.NoError(t, err)
		require.Len(t, events, 4)

		// Newest first: Returned, Approved, Requested, Added.
		assert.Equal(t, "Returned", events[0].Action)
		assert.Equal(t, "Returned by alice", events[0].Detail)
		assert.Equal(t, "Approved", events[1].Action)
		assert.Equal(t, "Requested", events[2].Action)
		assert.Equal(t, "Requested by alice · 2026-03-02 → 2026-03-04", events[2].Detail)
		assert.Equal(t, "Added", events[3].Action)
	})

	t.Run("Pending server timestamps sort first", func(t *testing.T) {
		historyRepo := new(MockHistoryRepo)
		requestRepo := new(MockBorrowRequestRepo)
		svc := NewHistoryService(historyRepo, requestRepo)

		historyRepo.On("ListByAsset", ctx, "AST-001").Return([]domain.HistoryEntry{
			{AssetID: "AST-001", Action: domain.HistoryActionAdded, Detail: "added", Timestamp: base},
		}, nil)
		requestRepo.On("ListByAsset", ctx, "AST-001").Return([]domain.BorrowRequest{
			// CreatedAt not resolved yet.
			{ID: "req-1", AssetID: "AST-001", RequestedBy: "x@example.com", Status: domain.RequestStatusPending},
		}, nil)

		events, err := svc.Timeline(ctx, "AST-001")
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "Requested", events[0].Action)
		assert.Nil(t, events[0].When)
	})

	t.Run("Rejected request derives a note detail", func(t *testing.T) {
		historyRepo := new(MockHistoryRepo)
		requestRepo := new(MockBorrowRequestRepo)
		svc := NewHistoryService(historyRepo, requestRepo)

		historyRepo.On("ListByAsset", ctx, "AST-001").Return([]domain.HistoryEntry{}, nil)
		requestRepo.On("ListByAsset", ctx, "AST-001").Return([]domain.BorrowRequest{
			{
				ID: "req-1", AssetID: "AST-001", RequestedBy: "assets+bob@example.com",
				Status: domain.RequestStatusRejected, AdminNote: "audit week",
				CreatedAt: base, ReviewedAt: at(time.Hour),
			},
		}, nil)

		events, err := svc.Timeline(ctx, "AST-001")
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "Rejected", events[0].Action)
		assert.Equal(t, "Request by bob rejected: audit week", events[0].Detail)
	})
}
