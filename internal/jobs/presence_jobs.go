package jobs

import (
	"context"
	"time"

	"smartasset-backend/internal/logger"
	"smartasset-backend/internal/track"
)

// SweepDevicePresence re-derives device presence and alerts the admin when
// a live device crosses outside the geofence. An alert fires once per
// exit; re-entry re-arms it.
func (jr *JobRunner) SweepDevicePresence() {
	jr.runWithRecovery("SweepDevicePresence", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		devices, err := jr.services.Presence.ListDevices(ctx)
		if err != nil {
			logger.Error("Presence sweep failed to list devices", "error", err)
			return
		}

		fence := jr.config.Geofence
		for _, d := range devices {
			if !d.Live {
				// A stale ping is not a geofence signal.
				continue
			}
			if d.InsideGeofence {
				if jr.outside[d.DeviceID] {
					logger.Info("Device re-entered geofence", "device", d.DeviceID)
				}
				jr.outside[d.DeviceID] = false
				continue
			}
			if jr.outside[d.DeviceID] {
				continue
			}
			jr.outside[d.DeviceID] = true

			distance := track.HaversineMeters(fence.CenterLat, fence.CenterLng, d.Lat, d.Lng)
			logger.Warn("Device left geofence", "device", d.DeviceID, "distance_m", distance)
			if err := jr.services.Email.SendGeofenceAlert(ctx, jr.config.Auth.AdminEmail, d.DisplayName(), distance); err != nil {
				logger.Error("Failed to send geofence alert", "device", d.DeviceID, "error", err)
			}
		}
	})
}

// MarkOverdueLoans reminds the admin about Approved requests whose loan
// period has ended without a return.
func (jr *JobRunner) MarkOverdueLoans() {
	jr.runWithRecovery("MarkOverdueLoans", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		overdue, err := jr.store.Requests.ListOverdue(ctx, time.Now().UTC())
		if err != nil {
			logger.Error("Failed to list overdue loans", "error", err)
			return
		}
		if len(overdue) == 0 {
			logger.Info("No overdue loans")
			return
		}

		for i := range overdue {
			req := &overdue[i]
			logger.Warn("Loan overdue", "request", req.ID, "asset", req.AssetID, "end_date", req.EndDate)
			if err := jr.services.Email.SendOverdueReminder(ctx, jr.config.Auth.AdminEmail, req); err != nil {
				logger.Error("Failed to send overdue reminder", "request", req.ID, "error", err)
			}
		}
	})
}
