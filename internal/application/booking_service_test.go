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
	listingDomain "github.com/staynest/service-booking/internal/domain/listing"
)

func newBookingServiceUnderTest(t *testing.T) (*BookingService, *fakeListingRepo, *fakeBookingRepo) {
	t.Helper()
	listings := newFakeListingRepo()
	bookings := newFakeBookingRepo()
	svc := NewBookingService(bookings, listings, nil, zap.NewNop())
	return svc, listings, bookings
}

func seedTestListing(t *testing.T, repo *fakeListingRepo, pricePerDayCents int64, maxGuests int) *listingDomain.Listing {
	t.Helper()
	lst, err := listingDomain.NewListing(uuid.New(), "Canal House", "", "Amsterdam", "NL", pricePerDayCents, maxGuests)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), lst))
	return lst
}

func futureDate(daysAhead int) string {
	return time.Now().UTC().AddDate(0, 0, daysAhead).Format("2006-01-02")
}

func TestCreateBooking_HappyPath(t *testing.T) {
	svc, listings, _ := newBookingServiceUnderTest(t)
	lst := seedTestListing(t, listings, 10000, 2)
	guestID := uuid.New()

	dto, err := svc.CreateBooking(context.Background(), guestID, CreateBookingRequest{
		ListingID:      lst.ID(),
		CheckIn:        futureDate(30),
		CheckOut:       futureDate(33),
		NumberOfGuests: 2,
	})
	require.NoError(t, err)

	assert.Equal(t, "pending", dto.Status)
	assert.Equal(t, "pending", dto.PaymentStatus)
	assert.Equal(t, 3, dto.NumberOfDays)
	assert.Equal(t, int64(30000), dto.TotalPriceCents)
	assert.Equal(t, lst.HostID(), dto.HostID)
	assert.Equal(t, guestID, dto.GuestID)
	assert.NotEmpty(t, dto.BookingNumber)
}

func TestCreateBooking_RejectsBadDates(t *testing.T) {
	svc, listings, _ := newBookingServiceUnderTest(t)
	lst := seedTestListing(t, listings, 10000, 2)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ListingID:      lst.ID(),
		CheckIn:        "next tuesday",
		CheckOut:       futureDate(33),
		NumberOfGuests: 1,
	})
	assert.Equal(t, domain.KindInvalidFormat, domain.KindOf(err))

	_, err = svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ListingID:      lst.ID(),
		CheckIn:        futureDate(33),
		CheckOut:       futureDate(30),
		NumberOfGuests: 1,
	})
	assert.Equal(t, domain.KindInvertedRange, domain.KindOf(err))

	_, err = svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ListingID:      lst.ID(),
		CheckIn:        futureDate(-2),
		CheckOut:       futureDate(3),
		NumberOfGuests: 1,
	})
	assert.Equal(t, domain.KindPastCheckIn, domain.KindOf(err))
}

func TestCreateBooking_RejectsOverCapacity(t *testing.T) {
	svc, listings, _ := newBookingServiceUnderTest(t)
	lst := seedTestListing(t, listings, 10000, 4)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ListingID:      lst.ID(),
		CheckIn:        futureDate(30),
		CheckOut:       futureDate(33),
		NumberOfGuests: 5,
	})
	assert.Equal(t, domain.KindCapacityExceeded, domain.KindOf(err))
}

func TestCreateBooking_RejectsOverlap(t *testing.T) {
	svc, listings, _ := newBookingServiceUnderTest(t)
	lst := seedTestListing(t, listings, 10000, 4)

	_, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ListingID:      lst.ID(),
		CheckIn:        futureDate(30),
		CheckOut:       futureDate(34),
		NumberOfGuests: 2,
	})
	require.NoError(t, err)

	_, err = svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ListingID:      lst.ID(),
		CheckIn:        futureDate(32),
		CheckOut:       futureDate(36),
		NumberOfGuests: 2,
	})
	assert.Equal(t, domain.KindConflict, domain.KindOf(err))

	// Back-to-back with the existing stay is allowed.
	_, err = svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ListingID:      lst.ID(),
		CheckIn:        futureDate(34),
		CheckOut:       futureDate(37),
		NumberOfGuests: 2,
	})
	assert.NoError(t, err)
}

func TestCreateBooking_ListingSwitchedOff(t *testing.T) {
	svc, listings, _ := newBookingServiceUnderTest(t)
	lst := seedTestListing(t, listings, 10000, 4)
	lst.SetAvailable(false)
	require.NoError(t, listings.Update(context.Background(), lst))

	_, err := svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ListingID:      lst.ID(),
		CheckIn:        futureDate(30),
		CheckOut:       futureDate(33),
		NumberOfGuests: 2,
	})
	assert.Equal(t, domain.KindListingInactive, domain.KindOf(err))
}

func TestBookingLifecycle_ThroughService(t *testing.T) {
	svc, listings, _ := newBookingServiceUnderTest(t)
	lst := seedTestListing(t, listings, 10000, 4)
	guestID := uuid.New()

	created, err := svc.CreateBooking(context.Background(), guestID, CreateBookingRequest{
		ListingID:      lst.ID(),
		CheckIn:        futureDate(30),
		CheckOut:       futureDate(33),
		NumberOfGuests: 2,
	})
	require.NoError(t, err)

	// The guest cannot confirm.
	_, err = svc.ConfirmBooking(context.Background(), guestID, created.ID)
	assert.Equal(t, domain.KindUnauthorized, domain.KindOf(err))

	confirmed, err := svc.ConfirmBooking(context.Background(), lst.HostID(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "confirmed", confirmed.Status)
	assert.Equal(t, created.Version+1, confirmed.Version)

	completed, err := svc.CompleteBooking(context.Background(), lst.HostID(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "completed", completed.Status)

	// Terminal state rejects further transitions.
	_, err = svc.CancelBooking(context.Background(), guestID, created.ID, "")
	assert.Equal(t, domain.KindIllegalTransition, domain.KindOf(err))
}

func TestCancelBooking_ThroughService(t *testing.T) {
	svc, listings, _ := newBookingServiceUnderTest(t)
	lst := seedTestListing(t, listings, 10000, 4)
	guestID := uuid.New()

	created, err := svc.CreateBooking(context.Background(), guestID, CreateBookingRequest{
		ListingID:      lst.ID(),
		CheckIn:        futureDate(30),
		CheckOut:       futureDate(33),
		NumberOfGuests: 2,
	})
	require.NoError(t, err)

	cancelled, err := svc.CancelBooking(context.Background(), guestID, created.ID, "plans changed")
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)
	assert.Equal(t, "plans changed", cancelled.CancelNote)
	require.NotNil(t, cancelled.CancelledAt)

	// The freed dates are immediately bookable again.
	_, err = svc.CreateBooking(context.Background(), uuid.New(), CreateBookingRequest{
		ListingID:      lst.ID(),
		CheckIn:        futureDate(30),
		CheckOut:       futureDate(33),
		NumberOfGuests: 2,
	})
	assert.NoError(t, err)
}

func TestTransitionBooking_Dispatcher(t *testing.T) {
	svc, listings, _ := newBookingServiceUnderTest(t)
	lst := seedTestListing(t, listings, 10000, 4)
	guestID := uuid.New()

	created, err := svc.CreateBooking(context.Background(), guestID, CreateBookingRequest{
		ListingID:      lst.ID(),
		CheckIn:        futureDate(30),
		CheckOut:       futureDate(33),
		NumberOfGuests: 2,
	})
	require.NoError(t, err)

	_, err = svc.TransitionBooking(context.Background(), guestID, created.ID, "teleported", "")
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = svc.TransitionBooking(context.Background(), lst.HostID(), created.ID, "pending", "")
	assert.Equal(t, domain.KindIllegalTransition, domain.KindOf(err))

	dto, err := svc.TransitionBooking(context.Background(), lst.HostID(), created.ID, "confirmed", "")
	require.NoError(t, err)
	assert.Equal(t, "confirmed", dto.Status)
}

func TestPaymentRecording_ThroughService(t *testing.T) {
	svc, listings, bookings := newBookingServiceUnderTest(t)
	lst := seedTestListing(t, listings, 10000, 4)
	guestID := uuid.New()

	created, err := svc.CreateBooking(context.Background(), guestID, CreateBookingRequest{
		ListingID:      lst.ID(),
		CheckIn:        futureDate(30),
		CheckOut:       futureDate(33),
		NumberOfGuests: 2,
	})
	require.NoError(t, err)

	require.NoError(t, svc.RecordPaymentCaptured(context.Background(), created.ID))
	bk, err := bookings.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "paid", string(bk.PaymentStatus()))

	// Capturing twice is an illegal payment transition.
	err = svc.RecordPaymentCaptured(context.Background(), created.ID)
	assert.Equal(t, domain.KindIllegalTransition, domain.KindOf(err))

	require.NoError(t, svc.RecordPaymentRefunded(context.Background(), created.ID))
	bk, err = bookings.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "refunded", string(bk.PaymentStatus()))
}

func TestGetBookingStats(t *testing.T) {
	svc, listings, _ := newBookingServiceUnderTest(t)
	lst := seedTestListing(t, listings, 10000, 4)
	guestID := uuid.New()

	first, err := svc.CreateBooking(context.Background(), guestID, CreateBookingRequest{
		ListingID:      lst.ID(),
		CheckIn:        futureDate(30),
		CheckOut:       futureDate(33),
		NumberOfGuests: 2,
	})
	require.NoError(t, err)
	_, err = svc.CreateBooking(context.Background(), guestID, CreateBookingRequest{
		ListingID:      lst.ID(),
		CheckIn:        futureDate(40),
		CheckOut:       futureDate(43),
		NumberOfGuests: 2,
	})
	require.NoError(t, err)

	_, err = svc.ConfirmBooking(context.Background(), lst.HostID(), first.ID)
	require.NoError(t, err)

	stats, err := svc.GetBookingStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), stats.TotalBookings)
	assert.Equal(t, int64(1), stats.ByStatus["pending"])
	assert.Equal(t, int64(1), stats.ByStatus["confirmed"])
}
