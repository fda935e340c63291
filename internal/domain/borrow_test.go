package domain

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to RequestStatus
		want     bool
	}{
		{RequestStatusPending, RequestStatusApproved, true},
		{RequestStatusPending, RequestStatusRejected, true},
		{RequestStatusPending, RequestStatusReturned, false},
		{RequestStatusApproved, RequestStatusRejected, true},
		{RequestStatusApproved, RequestStatusReturned, true},
		{RequestStatusApproved, RequestStatusApproved, false},
		{RequestStatusRejected, RequestStatusApproved, false},
		{RequestStatusRejected, RequestStatusReturned, false},
		{RequestStatusReturned, RequestStatusApproved, false},
		{RequestStatusReturned, RequestStatusRejected, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, CanTransition(tc.from, tc.to),
			"transition %s -> %s", tc.from, tc.to)
	}
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, RequestStatusPending.IsTerminal())
	assert.False(t, RequestStatusApproved.IsTerminal())
	assert.True(t, RequestStatusRejected.IsTerminal())
	assert.True(t, RequestStatusReturned.IsTerminal())
}

func TestAllowedFrom(t *testing.T) {
	assert.ElementsMatch(t, []RequestStatus{RequestStatusPending}, AllowedFrom(RequestStatusApproved))
	assert.ElementsMatch(t, []RequestStatus{RequestStatusPending, RequestStatusApproved}, AllowedFrom(RequestStatusRejected))
	assert.ElementsMatch(t, []RequestStatus{RequestStatusApproved}, AllowedFrom(RequestStatusReturned))
	assert.Empty(t, AllowedFrom(RequestStatusPending))
}

func TestDatesOverlap(t *testing.T) {
	t.Run("Disjoint ranges", func(t *testing.T) {
		assert.False(t, DatesOverlap("2026-03-01", "2026-03-05", "2026-03-06", "2026-03-10"))
		assert.False(t, DatesOverlap("2026-03-06", "2026-03-10", "2026-03-01", "2026-03-05"))
	})

	t.Run("Shared boundary day conflicts", func(t *testing.T) {
		assert.True(t, DatesOverlap("2026-03-01", "2026-03-05", "2026-03-05", "2026-03-10"))
		assert.True(t, DatesOverlap("2026-03-05", "2026-03-10", "2026-03-01", "2026-03-05"))
	})

	t.Run("Containment conflicts", func(t *testing.T) {
		assert.True(t, DatesOverlap("2026-03-02", "2026-03-03", "2026-03-01", "2026-03-10"))
		assert.True(t, DatesOverlap("2026-03-01", "2026-03-10", "2026-03-02", "2026-03-03"))
	})

	t.Run("Identical single day conflicts", func(t *testing.T) {
		assert.True(t, DatesOverlap("2026-03-05", "2026-03-05", "2026-03-05", "2026-03-05"))
	})

	t.Run("Malformed dates never conflict", func(t *testing.T) {
		assert.False(t, DatesOverlap("not-a-date", "2026-03-05", "2026-03-01", "2026-03-10"))
		assert.False(t, DatesOverlap("2026-03-01", "2026-03-05", "2026-03-01", ""))
	})
}

// Random intervals against a day-number reference implementation.
func TestDatesOverlap_Random(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	day := func(n int) string { return base.AddDate(0, 0, n).Format(DateLayout) }

	for i := 0; i < 500; i++ {
		ns, es := rng.Intn(60), rng.Intn(60)
		ne := ns + rng.Intn(14)
		ee := es + rng.Intn(14)

		want := ns <= ee && ne >= es
		got := DatesOverlap(day(ns), day(ne), day(es), day(ee))
		assert.Equal(t, want, got, "[%d,%d] vs [%d,%d]", ns, ne, es, ee)
	}
}
