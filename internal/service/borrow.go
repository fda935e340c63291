package service

import (
	"context"
	"fmt"
	"time"

	"smartasset-backend/internal/domain"
	"smartasset-backend/internal/logger"
	"smartasset-backend/internal/repository"
)

type borrowService struct {
	requestRepo repository.BorrowRequestRepository
	assetRepo   repository.AssetRepository
	historyRepo repository.HistoryRepository
	emailSvc    EmailService
	adminEmail  string
}

func NewBorrowService(
	requestRepo repository.BorrowRequestRepository,
	assetRepo repository.AssetRepository,
	historyRepo repository.HistoryRepository,
	emailSvc EmailService,
	adminEmail string,
) BorrowService {
	return &borrowService{
		requestRepo: requestRepo,
		assetRepo:   assetRepo,
		historyRepo: historyRepo,
		emailSvc:    emailSvc,
		adminEmail:  adminEmail,
	}
}

// Submit validates the request and writes it with status Pending. The
// availability check against existing non-terminal requests runs inside the
// repository transaction.
func (s *borrowService) Submit(ctx context.Context, requestedBy, assetID, startDate, endDate, reason string) (*domain.BorrowRequest, error) {
	if assetID == "" || startDate == "" || endDate == "" {
		return nil, fmt.Errorf("%w: Asset ID, Start Date, and End Date are required", ErrValidation)
	}
	start, err := time.Parse(domain.DateLayout, startDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date %q", ErrValidation, startDate)
	}
	end, err := time.Parse(domain.DateLayout, endDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end date %q", ErrValidation, endDate)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date cannot be earlier than start date", ErrValidation)
	}

	// The request must be for an asset that exists.
	if _, err := s.assetRepo.GetByID(ctx, assetID); err != nil {
		return nil, err
	}

	req := &domain.BorrowRequest{
		AssetID:     assetID,
		RequestedBy: requestedBy,
		StartDate:   startDate,
		EndDate:     endDate,
		Reason:      reason,
		Status:      domain.RequestStatusPending,
	}
	if err := s.requestRepo.CreateIfAvailable(ctx, req); err != nil {
		return nil, err
	}

	if err := s.emailSvc.SendRequestSubmitted(ctx, s.adminEmail, req); err != nil {
		logger.Warn("failed to notify admin of new request", "request_id", req.ID, "error", err)
	}
	return req, nil
}

// Approve moves a Pending request to Approved and cascades "On loan" onto
// the asset. The cascade spans three documents and is not atomic; a crash
// between writes can leave the asset and request status inconsistent.
func (s *borrowService) Approve(ctx context.Context, requestID string) (*domain.BorrowRequest, error) {
	req, err := s.requestRepo.Transition(ctx, requestID,
		domain.AllowedFrom(domain.RequestStatusApproved),
		repository.TransitionUpdate{To: domain.RequestStatusApproved, StampReviewedAt: true})
	if err != nil {
		return nil, err
	}

	s.cascadeAssetStatus(ctx, req.AssetID, domain.AssetStatusOnLoan)
	s.appendHistory(ctx, req.AssetID, domain.HistoryActionBorrowed,
		fmt.Sprintf("Approved for %s · %s → %s", domain.ShortName(req.RequestedBy), req.StartDate, req.EndDate))
	s.notifyRequester(ctx, req)
	return req, nil
}

// Reject works from Pending or Approved; Rejected and Returned are terminal.
func (s *borrowService) Reject(ctx context.Context, requestID, adminNote string) (*domain.BorrowRequest, error) {
	req, err := s.requestRepo.Transition(ctx, requestID,
		domain.AllowedFrom(domain.RequestStatusRejected),
		repository.TransitionUpdate{To: domain.RequestStatusRejected, AdminNote: adminNote, StampReviewedAt: true})
	if err != nil {
		return nil, err
	}

	s.cascadeAssetStatus(ctx, req.AssetID, domain.AssetStatusAvailable)
	detail := fmt.Sprintf("Request by %s rejected", domain.ShortName(req.RequestedBy))
	if adminNote != "" {
		detail += ": " + adminNote
	}
	s.appendHistory(ctx, req.AssetID, domain.HistoryActionRejected, detail)
	s.notifyRequester(ctx, req)
	return req, nil
}

func (s *borrowService) Return(ctx context.Context, requestID string) (*domain.BorrowRequest, error) {
	req, err := s.requestRepo.Transition(ctx, requestID,
		domain.AllowedFrom(domain.RequestStatusReturned),
		repository.TransitionUpdate{To: domain.RequestStatusReturned, StampReturnedAt: true})
	if err != nil {
		return nil, err
	}

	s.cascadeAssetStatus(ctx, req.AssetID, domain.AssetStatusAvailable)
	s.appendHistory(ctx, req.AssetID, domain.HistoryActionReturned,
		fmt.Sprintf("Returned by %s", domain.ShortName(req.RequestedBy)))
	return req, nil
}

func (s *borrowService) List(ctx context.Context) ([]domain.BorrowRequest, error) {
	return s.requestRepo.List(ctx)
}

func (s *borrowService) ListByRequester(ctx context.Context, email string) ([]domain.BorrowRequest, error) {
	return s.requestRepo.ListByRequester(ctx, email)
}

func (s *borrowService) cascadeAssetStatus(ctx context.Context, assetID string, status domain.AssetStatus) {
	if err := s.assetRepo.UpdateStatus(ctx, assetID, status); err != nil {
		logger.Error("failed to cascade asset status", "asset_id", assetID, "status", status, "error", err)
	}
}

func (s *borrowService) appendHistory(ctx context.Context, assetID string, action domain.HistoryAction, detail string) {
	entry := &domain.HistoryEntry{AssetID: assetID, Action: action, Detail: detail}
	if err := s.historyRepo.Append(ctx, entry); err != nil {
		logger.Error("failed to write history", "asset_id", assetID, "action", action, "error", err)
	}
}

func (s *borrowService) notifyRequester(ctx context.Context, req *domain.BorrowRequest) {
	if err := s.emailSvc.SendRequestDecision(ctx, req.RequestedBy, req); err != nil {
		logger.Warn("failed to notify requester", "request_id", req.ID, "error", err)
	}
}
