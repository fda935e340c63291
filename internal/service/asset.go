package service

import (
	"context"
	"fmt"
	"time"

	"smartasset-backend/internal/domain"
	"smartasset-backend/internal/logger"
	"smartasset-backend/internal/repository"
	"smartasset-backend/internal/track"
)

type assetService struct {
	assetRepo   repository.AssetRepository
	deviceRepo  repository.DeviceLocationRepository
	historyRepo repository.HistoryRepository
	liveWindow  time.Duration
	now         Clock
}

func NewAssetService(
	assetRepo repository.AssetRepository,
	deviceRepo repository.DeviceLocationRepository,
	historyRepo repository.HistoryRepository,
	liveWindow time.Duration,
	now Clock,
) AssetService {
	if now == nil {
		now = time.Now
	}
	return &assetService{
		assetRepo:   assetRepo,
		deviceRepo:  deviceRepo,
		historyRepo: historyRepo,
		liveWindow:  liveWindow,
		now:         now,
	}
}

// List joins assets with the latest device pings. Linkage is by the asset's
// deviceId field matched against the deviceLocations document key; an asset
// without a deviceId is "Not linked" no matter how much tracking data
// exists.
func (s *assetService) List(ctx context.Context) ([]domain.AssetWithTracking, error) {
	assets, err := s.assetRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	devices, err := s.deviceRepo.List(ctx)
	if err != nil {
		// Tracking is an overlay; the asset table still renders without it.
		logger.Warn("device locations unavailable, rendering assets without tracking", "error", err)
		devices = nil
	}
	byID := make(map[string]domain.DeviceLocation, len(devices))
	for _, d := range devices {
		byID[d.DeviceID] = d
	}

	now := s.now()
	rows := make([]domain.AssetWithTracking, 0, len(assets))
	for _, a := range assets {
		row := domain.AssetWithTracking{Asset: a, Tracking: domain.TrackingNotLinked}
		if a.DeviceID != "" {
			dev, ok := byID[a.DeviceID]
			switch {
			case !ok:
				row.Tracking = domain.TrackingNoSignal
			case track.IsLive(now, dev.Timestamp, s.liveWindow):
				row.Tracking = domain.TrackingLive
				ts := dev.Timestamp
				row.LastSeen = &ts
			default:
				row.Tracking = domain.TrackingLastSeen
				ts := dev.Timestamp
				row.LastSeen = &ts
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *assetService) Get(ctx context.Context, assetID string) (*domain.Asset, error) {
	return s.assetRepo.GetByID(ctx, assetID)
}

func (s *assetService) Create(ctx context.Context, asset *domain.Asset, actor domain.Principal) error {
	if err := validateAsset(asset); err != nil {
		return err
	}
	if err := s.assetRepo.Create(ctx, asset); err != nil {
		return err
	}
	s.appendHistory(ctx, asset.AssetID, domain.HistoryActionAdded,
		fmt.Sprintf("%s added to inventory", asset.Name))
	return nil
}

func (s *assetService) Update(ctx context.Context, asset *domain.Asset, actor domain.Principal) error {
	if err := validateAsset(asset); err != nil {
		return err
	}
	// Load first so editing a missing asset fails with not-found instead of
	// silently creating it.
	if _, err := s.assetRepo.GetByID(ctx, asset.AssetID); err != nil {
		return err
	}
	if err := s.assetRepo.Update(ctx, asset); err != nil {
		return err
	}
	s.appendHistory(ctx, asset.AssetID, domain.HistoryActionEdited,
		fmt.Sprintf("%s updated", asset.Name))
	return nil
}

// Delete appends the Removed entry before the hard delete, so the history
// survives the record.
func (s *assetService) Delete(ctx context.Context, assetID string, actor domain.Principal) error {
	asset, err := s.assetRepo.GetByID(ctx, assetID)
	if err != nil {
		return err
	}
	s.appendHistory(ctx, assetID, domain.HistoryActionRemoved,
		fmt.Sprintf("Asset %s (%s) permanently removed", assetID, asset.Name))
	return s.assetRepo.Delete(ctx, assetID)
}

func (s *assetService) appendHistory(ctx context.Context, assetID string, action domain.HistoryAction, detail string) {
	entry := &domain.HistoryEntry{AssetID: assetID, Action: action, Detail: detail}
	if err := s.historyRepo.Append(ctx, entry); err != nil {
		logger.Error("failed to write history", "asset_id", assetID, "action", action, "error", err)
	}
}

func validateAsset(asset *domain.Asset) error {
	if asset.AssetID == "" || asset.Name == "" {
		return fmt.Errorf("%w: Asset ID and Name are required", ErrValidation)
	}
	if !domain.ValidAssetStatus(asset.Status) {
		return fmt.Errorf("%w: unknown status %q", ErrValidation, asset.Status)
	}
	return nil
}
