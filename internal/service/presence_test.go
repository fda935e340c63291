package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartasset-backend/internal/domain"
	"smartasset-backend/internal/track"
)

func TestPresenceService_ListDevices(t *testing.T) {
	ctx := context.Background()
	fence := track.Geofence{CenterLat: 1.3560, CenterLng: 103.9700, RadiusMeters: 6000}

	deviceRepo := new(MockDeviceRepo)
	svc := NewPresenceService(deviceRepo, track.DefaultLiveWindow, fence, func() time.Time { return fixedNow })

	deviceRepo.On("List", ctx).Return([]domain.DeviceLocation{
		{DeviceID: "dev-1", Lat: 1.3560, Lng: 103.9700, Timestamp: fixedNow.Add(-30 * time.Second)},
		{DeviceID: "dev-2", Lat: 1.4560, Lng: 103.9700, Timestamp: fixedNow.Add(-3 * time.Hour)},
	}, nil)

	devices, err := svc.ListDevices(ctx)
	require.NoError(t, err)
	require.Len(t, devices, 2)

	assert.True(t, devices[0].Live)
	assert.Equal(t, "Just now", devices[0].LastSeenLabel)
	assert.True(t, devices[0].InsideGeofence)

	assert.False(t, devices[1].Live)
	assert.Equal(t, "3 hrs ago", devices[1].LastSeenLabel)
	assert.False(t, devices[1].InsideGeofence)
}

func TestPresenceService_GetDevice(t *testing.T) {
	ctx := context.Background()
	fence := track.Geofence{CenterLat: 1.3560, CenterLng: 103.9700, RadiusMeters: 6000}

	deviceRepo := new(MockDeviceRepo)
	svc := NewPresenceService(deviceRepo, track.DefaultLiveWindow, fence, func() time.Time { return fixedNow })

	deviceRepo.On("GetByID", ctx, "dev-1").Return(&domain.DeviceLocation{
		DeviceID: "dev-1", Lat: 1.3560, Lng: 103.9700, Label: "Van 3",
		Timestamp: fixedNow.Add(-2 * time.Minute),
	}, nil)

	d, err := svc.GetDevice(ctx, "dev-1")
	require.NoError(t, err)
	// Exactly at the live window boundary counts as live.
	assert.True(t, d.Live)
	assert.Equal(t, "Van 3", d.DisplayName())
}
