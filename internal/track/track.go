// Package track derives display state from device position reports:
// liveness against a freshness window, coarse relative-time labels, and a
// point-in-circle geofence test. Everything here is pure.
package track

import (
	"fmt"
	"math"
	"time"
)

// DefaultLiveWindow is how recently a device must have reported to count as
// live. The boundary is inclusive: an age of exactly the window is live.
const DefaultLiveWindow = 2 * time.Minute

// earthRadiusMeters is the mean Earth radius used by the haversine formula.
const earthRadiusMeters = 6371000.0

// IsLive reports whether lastSeen is within window of now (inclusive).
func IsLive(now, lastSeen time.Time, window time.Duration) bool {
	age := now.Sub(lastSeen)
	return age >= 0 && age <= window
}

// TimeAgo renders a coarse relative label for lastSeen.
func TimeAgo(now, lastSeen time.Time) string {
	age := now.Sub(lastSeen)
	if age < 0 {
		age = 0
	}
	switch {
	case age < 10*time.Second:
		return "Just now"
	case age < time.Minute:
		return fmt.Sprintf("%ds ago", int(age.Seconds()))
	case age < time.Hour:
		return plural(int(age.Minutes()), "min")
	case age < 24*time.Hour:
		return plural(int(age.Hours()), "hr")
	default:
		return plural(int(age.Hours()/24), "day")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}

// HaversineMeters computes the great-circle distance between two
// coordinates: a = sin²(Δlat/2) + cos(lat1)·cos(lat2)·sin²(Δlng/2),
// d = 2·R·atan2(√a, √(1−a)).
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	return 2 * earthRadiusMeters * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// Geofence is a fixed circular zone. A point at exactly RadiusMeters from
// the center is inside.
type Geofence struct {
	CenterLat    float64
	CenterLng    float64
	RadiusMeters float64
}

// Contains reports whether (lat, lng) lies inside the fence.
func (g Geofence) Contains(lat, lng float64) bool {
	return HaversineMeters(g.CenterLat, g.CenterLng, lat, lng) <= g.RadiusMeters
}
