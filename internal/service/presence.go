package service

import (
	"context"
	"time"

	"smartasset-backend/internal/domain"
	"smartasset-backend/internal/repository"
	"smartasset-backend/internal/track"
)

type presenceService struct {
	deviceRepo repository.DeviceLocationRepository
	liveWindow time.Duration
	fence      track.Geofence
	now        Clock
}

func NewPresenceService(deviceRepo repository.DeviceLocationRepository, liveWindow time.Duration, fence track.Geofence, now Clock) PresenceService {
	if now == nil {
		now = time.Now
	}
	return &presenceService{
		deviceRepo: deviceRepo,
		liveWindow: liveWindow,
		fence:      fence,
		now:        now,
	}
}

func (s *presenceService) ListDevices(ctx context.Context) ([]domain.DevicePresence, error) {
	devices, err := s.deviceRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]domain.DevicePresence, 0, len(devices))
	for _, d := range devices {
		out = append(out, s.derive(d, now))
	}
	return out, nil
}

func (s *presenceService) GetDevice(ctx context.Context, deviceID string) (*domain.DevicePresence, error) {
	d, err := s.deviceRepo.GetByID(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	p := s.derive(*d, s.now())
	return &p, nil
}

func (s *presenceService) derive(d domain.DeviceLocation, now time.Time) domain.DevicePresence {
	return domain.DevicePresence{
		DeviceLocation: d,
		Live:           track.IsLive(now, d.Timestamp, s.liveWindow),
		LastSeenLabel:  track.TimeAgo(now, d.Timestamp),
		InsideGeofence: s.fence.Contains(d.Lat, d.Lng),
	}
}
