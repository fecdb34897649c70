package application

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/staynest/service-booking/internal/common/domain"
	bookingDomain "github.com/staynest/service-booking/internal/domain/booking"
	listingDomain "github.com/staynest/service-booking/internal/domain/listing"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func newAvailabilityServiceUnderTest(t *testing.T) (*AvailabilityService, *fakeListingRepo, *fakeBookingRepo) {
	t.Helper()
	listings := newFakeListingRepo()
	bookings := newFakeBookingRepo()
	svc := NewAvailabilityService(listings, bookings, zap.NewNop())
	return svc, listings, bookings
}

func seedBookingAt(t *testing.T, repo *fakeBookingRepo, listingID, hostID uuid.UUID, status bookingDomain.BookingStatus, checkIn, checkOut time.Time) {
	t.Helper()
	stay := listingDomain.DateRange{CheckIn: checkIn, CheckOut: checkOut}
	now := time.Now().UTC()
	bk := bookingDomain.Reconstruct(
		uuid.New(), "RS-SEEDED",
		listingID, hostID, uuid.New(),
		checkIn, checkOut,
		stay.Days(), 2, int64(stay.Days())*10000, "USD",
		status, bookingDomain.PaymentPending,
		nil, "", 1, now, now,
	)
	require.NoError(t, repo.Save(context.Background(), bk))
}

func TestCheckAvailability_FreeCalendar(t *testing.T) {
	svc, listings, _ := newAvailabilityServiceUnderTest(t)
	lst := seedTestListing(t, listings, 10000, 2)

	now := day(2025, 5, 1)
	report, err := svc.CheckAvailability(
		context.Background(), lst.ID(),
		day(2025, 6, 1), day(2025, 6, 4),
		2, now,
	)
	require.NoError(t, err)

	assert.True(t, report.IsAvailable)
	assert.Equal(t, 3, report.NumberOfDays)
	assert.Equal(t, int64(30000), report.BasePriceCents)
	assert.Empty(t, report.Reasons)
	assert.Empty(t, report.Alternatives, "available reports skip enrichment")
	assert.Nil(t, report.Occupancy)
}

func TestCheckAvailability_ValidationFailuresComeFirst(t *testing.T) {
	svc, listings, _ := newAvailabilityServiceUnderTest(t)
	lst := seedTestListing(t, listings, 10000, 2)
	now := day(2025, 5, 1)

	_, err := svc.CheckAvailability(context.Background(), lst.ID(),
		day(2025, 6, 4), day(2025, 6, 1), 2, now)
	assert.Equal(t, domain.KindInvertedRange, domain.KindOf(err))

	_, err = svc.CheckAvailability(context.Background(), lst.ID(),
		day(2025, 6, 1), day(2025, 6, 4), 3, now)
	assert.Equal(t, domain.KindCapacityExceeded, domain.KindOf(err))

	// A guest count of zero means the caller did not ask about capacity.
	_, err = svc.CheckAvailability(context.Background(), lst.ID(),
		day(2025, 6, 1), day(2025, 6, 4), 0, now)
	assert.NoError(t, err)

	_, err = svc.CheckAvailability(context.Background(), uuid.New(),
		day(2025, 6, 1), day(2025, 6, 4), 2, now)
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}

func TestCheckAvailability_ConflictEnrichment(t *testing.T) {
	svc, listings, bookings := newAvailabilityServiceUnderTest(t)
	lst := seedTestListing(t, listings, 10000, 4)
	now := day(2025, 5, 1)

	// Occupy the requested dates and part of the trailing window.
	seedBookingAt(t, bookings, lst.ID(), lst.HostID(), bookingDomain.StatusConfirmed,
		day(2025, 6, 1), day(2025, 6, 5))
	seedBookingAt(t, bookings, lst.ID(), lst.HostID(), bookingDomain.StatusCompleted,
		day(2025, 4, 1), day(2025, 4, 21))

	report, err := svc.CheckAvailability(
		context.Background(), lst.ID(),
		day(2025, 6, 2), day(2025, 6, 6),
		2, now,
	)
	require.NoError(t, err)

	assert.False(t, report.IsAvailable)
	require.Len(t, report.BookingConflicts, 1)

	require.NotEmpty(t, report.Alternatives)
	for _, alt := range report.Alternatives {
		candidate := listingDomain.DateRange{CheckIn: alt.CheckIn, CheckOut: alt.CheckOut}
		blocker := listingDomain.DateRange{CheckIn: day(2025, 6, 1), CheckOut: day(2025, 6, 5)}
		assert.False(t, candidate.Overlaps(blocker))
		assert.False(t, alt.CheckIn.Before(day(2025, 5, 1)))
	}

	require.NotNil(t, report.Occupancy)
	// The completed April stay (20 days) and the confirmed June stay
	// (4 days) both check in within the 92-day trailing window.
	assert.Equal(t, 26, report.Occupancy.OccupancyRate)
	assert.Equal(t, 2, report.Occupancy.BookingsInWindow)
}

func TestCheckAvailability_BlackoutConflict(t *testing.T) {
	svc, listings, _ := newAvailabilityServiceUnderTest(t)
	lst := seedTestListing(t, listings, 10000, 4)
	require.NoError(t, lst.AddBlackout(listingDomain.BlackoutWindow{
		StartDate: day(2025, 6, 3),
		EndDate:   day(2025, 6, 10),
		Reason:    "repainting",
	}))
	require.NoError(t, listings.Update(context.Background(), lst))

	report, err := svc.CheckAvailability(
		context.Background(), lst.ID(),
		day(2025, 6, 1), day(2025, 6, 4),
		2, day(2025, 5, 1),
	)
	require.NoError(t, err)

	assert.False(t, report.IsAvailable)
	require.Len(t, report.BlackoutConflicts, 1)
	assert.Contains(t, report.Reasons[0], "repainting")
}
