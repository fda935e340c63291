package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"smartasset-backend/internal/domain"
	"smartasset-backend/internal/repository"
)

type historyService struct {
	historyRepo repository.HistoryRepository
	requestRepo repository.BorrowRequestRepository
}

func NewHistoryService(historyRepo repository.HistoryRepository, requestRepo repository.BorrowRequestRepository) HistoryService {
	return &historyService{historyRepo: historyRepo, requestRepo: requestRepo}
}

// Timeline merges explicit history entries with events derived from
// borrow-request timestamps. Sorted descending by event time; events whose
// timestamp has not resolved yet ("just happened") sort first.
func (s *historyService) Timeline(ctx context.Context, assetID string) ([]domain.TimelineEvent, error) {
	entries, err := s.historyRepo.ListByAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	requests, err := s.requestRepo.ListByAsset(ctx, assetID)
	if err != nil {
		return nil, err
	}

	var events []domain.TimelineEvent
	for _, e := range entries {
		ev := domain.TimelineEvent{Action: string(e.Action), Detail: e.Detail}
		if !e.Timestamp.IsZero() {
			ts := e.Timestamp
			ev.When = &ts
		}
		events = append(events, ev)
	}
	for _, r := range requests {
		events = append(events, deriveRequestEvents(r)...)
	}

	sort.SliceStable(events, func(i, j int) bool {
		a, b := events[i].When, events[j].When
		if a == nil {
			return b != nil // nil timestamps first
		}
		if b == nil {
			return false
		}
		return a.After(*b)
	})
	return events, nil
}

func deriveRequestEvents(r domain.BorrowRequest) []domain.TimelineEvent {
	who := domain.ShortName(r.RequestedBy)
	var events []domain.TimelineEvent

	requested := domain.TimelineEvent{
		Action: "Requested",
		Detail: fmt.Sprintf("Requested by %s · %s → %s", who, r.StartDate, r.EndDate),
	}
	if !r.CreatedAt.IsZero() {
		ts := r.CreatedAt
		requested.When = &ts
	}
	events = append(events, requested)

	switch r.Status {
	case domain.RequestStatusApproved:
		events = append(events, reviewEvent("Approved", fmt.Sprintf("Approved for %s", who), r.ReviewedAt))
	case domain.RequestStatusRejected:
		detail := fmt.Sprintf("Request by %s rejected", who)
		if r.AdminNote != "" {
			detail += ": " + r.AdminNote
		}
		events = append(events, reviewEvent("Rejected", detail, r.ReviewedAt))
	case domain.RequestStatusReturned:
		// A returned request was approved first.
		events = append(events, reviewEvent("Approved", fmt.Sprintf("Approved for %s", who), r.ReviewedAt))
		events = append(events, reviewEvent("Returned", fmt.Sprintf("Returned by %s", who), r.ReturnedAt))
	}
	return events
}

func reviewEvent(action, detail string, when *time.Time) domain.TimelineEvent {
	ev := domain.TimelineEvent{Action: action, Detail: detail}
	if when != nil && !when.IsZero() {
		ts := *when
		ev.When = &ts
	}
	return ev
}
