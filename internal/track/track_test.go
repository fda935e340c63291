package track

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsLive(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	t.Run("Fresh ping is live", func(t *testing.T) {
		assert.True(t, IsLive(now, now.Add(-30*time.Second), DefaultLiveWindow))
	})

	t.Run("Exactly at the window is live", func(t *testing.T) {
		assert.True(t, IsLive(now, now.Add(-2*time.Minute), DefaultLiveWindow))
	})

	t.Run("One second past the window is stale", func(t *testing.T) {
		assert.False(t, IsLive(now, now.Add(-2*time.Minute-time.Second), DefaultLiveWindow))
	})

	t.Run("Future timestamp is not live", func(t *testing.T) {
		assert.False(t, IsLive(now, now.Add(5*time.Second), DefaultLiveWindow))
	})
}

func TestTimeAgo(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		age  time.Duration
		want string
	}{
		{"under ten seconds", 3 * time.Second, "Just now"},
		{"seconds", 45 * time.Second, "45s ago"},
		{"one minute", 1 * time.Minute, "1 min ago"},
		{"minutes", 30 * time.Minute, "30 mins ago"},
		{"one hour", 1 * time.Hour, "1 hr ago"},
		{"hours", 5 * time.Hour, "5 hrs ago"},
		{"one day", 25 * time.Hour, "1 day ago"},
		{"days", 72 * time.Hour, "3 days ago"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, TimeAgo(now, now.Add(-tc.age)))
		})
	}

	t.Run("Future timestamp clamps to just now", func(t *testing.T) {
		assert.Equal(t, "Just now", TimeAgo(now, now.Add(time.Minute)))
	})
}

func TestHaversineMeters(t *testing.T) {
	t.Run("Zero distance at the same point", func(t *testing.T) {
		assert.Equal(t, 0.0, HaversineMeters(1.3560, 103.9700, 1.3560, 103.9700))
	})

	t.Run("Known distance", func(t *testing.T) {
		// Roughly 1 degree of latitude ≈ 111.2 km.
		d := HaversineMeters(1.0, 103.0, 2.0, 103.0)
		assert.InDelta(t, 111195, d, 200)
	})
}

func TestGeofenceContains(t *testing.T) {
	fence := Geofence{CenterLat: 1.3560, CenterLng: 103.9700, RadiusMeters: 6000}

	t.Run("Center is inside", func(t *testing.T) {
		assert.True(t, fence.Contains(1.3560, 103.9700))
	})

	t.Run("Point near the edge is inside", func(t *testing.T) {
		// ~5.56 km north of center.
		assert.True(t, fence.Contains(1.4060, 103.9700))
	})

	t.Run("Point beyond the radius is outside", func(t *testing.T) {
		// ~11 km north of center.
		assert.False(t, fence.Contains(1.4560, 103.9700))
	})
}
