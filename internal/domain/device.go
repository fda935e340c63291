package domain

import "time"

// DeviceLocation is the last GPS ping of a tracked device. Documents are
// written by external device agents and are read-only from this service;
// the document key is the hardware device ID.
type DeviceLocation struct {
	DeviceID      string    `json:"device_id" firestore:"-"`
	Lat           float64   `json:"lat" firestore:"lat"`
	Lng           float64   `json:"lng" firestore:"lng"`
	BatteryPct    *float64  `json:"battery_pct,omitempty" firestore:"batteryPct"`
	BatteryStatus string    `json:"battery_status,omitempty" firestore:"batteryStatus"`
	BatteryTempC  *float64  `json:"battery_temp_c,omitempty" firestore:"batteryTempC"`
	Label         string    `json:"label,omitempty" firestore:"label"`
	Timestamp     time.Time `json:"timestamp" firestore:"timestamp"`
}

// DisplayName returns the label shown on the map, falling back to the
// hardware ID.
func (d *DeviceLocation) DisplayName() string {
	if d.Label != "" {
		return d.Label
	}
	return "Device " + d.DeviceID
}

// DevicePresence is a device location annotated with derived state.
type DevicePresence struct {
	DeviceLocation
	Live           bool   `json:"live"`
	LastSeenLabel  string `json:"last_seen_label"`
	InsideGeofence bool   `json:"inside_geofence"`
}
