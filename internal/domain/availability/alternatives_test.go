package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/staynest/service-booking/internal/domain/booking"
	"github.com/staynest/service-booking/internal/domain/listing"
)

func TestFindAlternatives_EarliestFirstWithinWindow(t *testing.T) {
	now := day(2026, 1, 1)
	original := mustRange(t, day(2026, 6, 10), day(2026, 6, 13))

	alts := FindAlternatives(original, now, 10000, nil)

	require.Len(t, alts, MaxAlternatives)
	// Fully free calendar: the earliest candidates are at the window's
	// left edge, 30 days before the requested check-in.
	assert.Equal(t, day(2026, 5, 11), alts[0].CheckIn)
	assert.Equal(t, day(2026, 5, 12), alts[1].CheckIn)
	assert.Equal(t, day(2026, 5, 13), alts[2].CheckIn)

	for _, alt := range alts {
		assert.Equal(t, 3, listing.DateRange{CheckIn: alt.CheckIn, CheckOut: alt.CheckOut}.Days(),
			"alternatives keep the original duration")
		assert.Equal(t, int64(30000), alt.PriceTotalCents)
	}
}

func TestFindAlternatives_SkipsDatesBeforeToday(t *testing.T) {
	now := time.Date(2026, 6, 5, 15, 0, 0, 0, time.UTC)
	original := mustRange(t, day(2026, 6, 10), day(2026, 6, 12))

	alts := FindAlternatives(original, now, 10000, nil)

	require.NotEmpty(t, alts)
	assert.Equal(t, day(2026, 6, 5), alts[0].CheckIn,
		"a stay starting today is still offered")
	for _, alt := range alts {
		assert.False(t, alt.CheckIn.Before(day(2026, 6, 5)))
	}
}

func TestFindAlternatives_DodgeActiveBookings(t *testing.T) {
	now := day(2026, 6, 1)
	original := mustRange(t, day(2026, 6, 10), day(2026, 6, 13))

	occupied := []*booking.Booking{
		testBooking(t, booking.StatusConfirmed, day(2026, 6, 1), day(2026, 6, 12)),
		testBooking(t, booking.StatusPending, day(2026, 6, 14), day(2026, 6, 18)),
	}

	alts := FindAlternatives(original, now, 10000, occupied)

	require.NotEmpty(t, alts)
	for _, alt := range alts {
		candidate := listing.DateRange{CheckIn: alt.CheckIn, CheckOut: alt.CheckOut}
		for _, b := range occupied {
			assert.False(t, candidate.Overlaps(b.Range()),
				"alternative %s overlaps booking %s", candidate, b.Range())
		}
	}
	// First free 3-day slot after the June 1-12 block, dodging June 14-18.
	assert.Equal(t, day(2026, 6, 18), alts[0].CheckIn)
}

func TestFindAlternatives_NoneWhenWindowIsFull(t *testing.T) {
	now := day(2026, 6, 1)
	original := mustRange(t, day(2026, 6, 10), day(2026, 6, 12))

	// One long booking swallows the entire search window.
	blocker := testBooking(t, booking.StatusConfirmed, day(2026, 5, 1), day(2026, 8, 1))

	alts := FindAlternatives(original, now, 10000, []*booking.Booking{blocker})
	assert.Empty(t, alts)
}

func TestFindAlternatives_InactiveBookingsDoNotBlock(t *testing.T) {
	now := day(2026, 1, 1)
	original := mustRange(t, day(2026, 6, 10), day(2026, 6, 12))

	cancelled := testBooking(t, booking.StatusCancelled, day(2026, 5, 1), day(2026, 8, 1))

	alts := FindAlternatives(original, now, 10000, []*booking.Booking{cancelled})
	require.Len(t, alts, MaxAlternatives)
	assert.Equal(t, day(2026, 5, 11), alts[0].CheckIn)
}
