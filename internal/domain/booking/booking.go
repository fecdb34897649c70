package booking

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/staynest/service-booking/internal/common/domain"
	"github.com/staynest/service-booking/internal/domain/listing"
)

const bookingNumberChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CancellationNotice is the minimum lead time before check-in for a
// guest-initiated cancellation.
const CancellationNotice = 24 * time.Hour

// Booking is the aggregate root for a reservation of a listing.
type Booking struct {
	id              uuid.UUID
	bookingNumber   string
	listingID       uuid.UUID
	hostID          uuid.UUID
	guestID         uuid.UUID
	checkIn         time.Time
	checkOut        time.Time
	numberOfDays    int
	numberOfGuests  int
	totalPriceCents int64
	currency        string
	status          BookingStatus
	paymentStatus   PaymentStatus
	cancelledAt     *time.Time
	cancelNote      string
	version         int64
	createdAt       time.Time
	updatedAt       time.Time
}

// generateBookingNumber creates a booking number in the format "RS-XXXXXX".
func generateBookingNumber() (string, error) {
	result := make([]byte, 6)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(bookingNumberChars))))
		if err != nil {
			return "", fmt.Errorf("failed to generate booking number: %w", err)
		}
		result[i] = bookingNumberChars[n.Int64()]
	}
	return "RS-" + string(result), nil
}

// NewBooking creates a new Booking aggregate with status=pending.
// numberOfDays and totalPrice are derived here and frozen thereafter.
func NewBooking(
	listingID, hostID, guestID uuid.UUID,
	checkIn, checkOut time.Time,
	numberOfGuests int,
	pricePerDayCents int64,
) (*Booking, error) {
	if listingID == uuid.Nil {
		return nil, domain.NewValidationError("listing ID is required")
	}
	if hostID == uuid.Nil {
		return nil, domain.NewValidationError("host ID is required")
	}
	if guestID == uuid.Nil {
		return nil, domain.NewValidationError("guest ID is required")
	}
	if numberOfGuests <= 0 {
		return nil, domain.NewValidationError("number of guests must be positive")
	}
	if pricePerDayCents <= 0 {
		return nil, domain.NewValidationError("price per day must be positive")
	}

	stay, err := listing.NewDateRange(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	bookingNumber, err := generateBookingNumber()
	if err != nil {
		return nil, err
	}

	days := stay.Days()
	now := time.Now().UTC()
	return &Booking{
		id:              uuid.New(),
		bookingNumber:   bookingNumber,
		listingID:       listingID,
		hostID:          hostID,
		guestID:         guestID,
		checkIn:         stay.CheckIn,
		checkOut:        stay.CheckOut,
		numberOfDays:    days,
		numberOfGuests:  numberOfGuests,
		totalPriceCents: int64(days) * pricePerDayCents,
		currency:        "USD",
		status:          StatusPending,
		paymentStatus:   PaymentPending,
		version:         1,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	bookingNumber string,
	listingID, hostID, guestID uuid.UUID,
	checkIn, checkOut time.Time,
	numberOfDays, numberOfGuests int,
	totalPriceCents int64,
	currency string,
	status BookingStatus,
	paymentStatus PaymentStatus,
	cancelledAt *time.Time,
	cancelNote string,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:              id,
		bookingNumber:   bookingNumber,
		listingID:       listingID,
		hostID:          hostID,
		guestID:         guestID,
		checkIn:         checkIn,
		checkOut:        checkOut,
		numberOfDays:    numberOfDays,
		numberOfGuests:  numberOfGuests,
		totalPriceCents: totalPriceCents,
		currency:        currency,
		status:          status,
		paymentStatus:   paymentStatus,
		cancelledAt:     cancelledAt,
		cancelNote:      cancelNote,
		version:         version,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

// --- Getters ---

func (b *Booking) ID() uuid.UUID                { return b.id }
func (b *Booking) BookingNumber() string        { return b.bookingNumber }
func (b *Booking) ListingID() uuid.UUID         { return b.listingID }
func (b *Booking) HostID() uuid.UUID            { return b.hostID }
func (b *Booking) GuestID() uuid.UUID           { return b.guestID }
func (b *Booking) CheckIn() time.Time           { return b.checkIn }
func (b *Booking) CheckOut() time.Time          { return b.checkOut }
func (b *Booking) NumberOfDays() int            { return b.numberOfDays }
func (b *Booking) NumberOfGuests() int          { return b.numberOfGuests }
func (b *Booking) TotalPriceCents() int64       { return b.totalPriceCents }
func (b *Booking) Currency() string             { return b.currency }
func (b *Booking) Status() BookingStatus        { return b.status }
func (b *Booking) PaymentStatus() PaymentStatus { return b.paymentStatus }
func (b *Booking) CancelledAt() *time.Time      { return b.cancelledAt }
func (b *Booking) CancelNote() string           { return b.cancelNote }
func (b *Booking) Version() int64               { return b.version }
func (b *Booking) CreatedAt() time.Time         { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time         { return b.updatedAt }

// Range returns the stay as a half-open DateRange.
func (b *Booking) Range() listing.DateRange {
	return listing.DateRange{CheckIn: b.checkIn, CheckOut: b.checkOut}
}

// --- Behavior ---

// Confirm transitions the booking from pending to confirmed. Only the
// listing host may confirm.
func (b *Booking) Confirm(actorID uuid.UUID) error {
	if actorID != b.hostID {
		return domain.NewUnauthorizedError("only the listing host can confirm a booking")
	}
	if !b.status.CanTransitionTo(StatusConfirmed) {
		return domain.NewIllegalTransitionError(string(b.status), string(StatusConfirmed))
	}
	b.status = StatusConfirmed
	b.updatedAt = time.Now().UTC()
	return nil
}

// Complete transitions the booking from confirmed to completed. Only
// the listing host may complete.
func (b *Booking) Complete(actorID uuid.UUID) error {
	if actorID != b.hostID {
		return domain.NewUnauthorizedError("only the listing host can complete a booking")
	}
	if !b.status.CanTransitionTo(StatusCompleted) {
		return domain.NewIllegalTransitionError(string(b.status), string(StatusCompleted))
	}
	b.status = StatusCompleted
	b.updatedAt = time.Now().UTC()
	return nil
}

// Cancel transitions the booking to cancelled. Only the guest who
// created the booking may cancel, and only up to 24 hours before
// check-in.
func (b *Booking) Cancel(actorID uuid.UUID, now time.Time, reason string) error {
	if actorID != b.guestID {
		return domain.NewUnauthorizedError("only the booking guest can cancel")
	}
	if !b.status.CanBeCancelled() {
		return domain.NewIllegalTransitionError(string(b.status), string(StatusCancelled))
	}
	if now.After(b.checkIn.Add(-CancellationNotice)) {
		return domain.NewError(domain.KindCancellationWindowClosed,
			"bookings can only be cancelled at least 24 hours before check-in")
	}
	cancelled := now.UTC()
	b.status = StatusCancelled
	b.cancelNote = reason
	b.cancelledAt = &cancelled
	b.updatedAt = cancelled
	return nil
}

// ApplyTransition moves the booking to the target status on behalf of
// the given actor, enforcing both the transition table and transition
// authority in one place.
func (b *Booking) ApplyTransition(actorID uuid.UUID, target BookingStatus, now time.Time) error {
	switch target {
	case StatusConfirmed:
		return b.Confirm(actorID)
	case StatusCompleted:
		return b.Complete(actorID)
	case StatusCancelled:
		return b.Cancel(actorID, now, "")
	default:
		return domain.NewIllegalTransitionError(string(b.status), string(target))
	}
}

// MarkPaid records a successful payment. Either booking party may
// record it, but the flag only moves forward.
func (b *Booking) MarkPaid(actorID uuid.UUID) error {
	if actorID != b.guestID && actorID != b.hostID {
		return domain.NewUnauthorizedError("only booking participants can update payment status")
	}
	if !b.paymentStatus.CanTransitionTo(PaymentPaid) {
		return domain.NewIllegalTransitionError(string(b.paymentStatus), string(PaymentPaid))
	}
	b.paymentStatus = PaymentPaid
	b.updatedAt = time.Now().UTC()
	return nil
}

// MarkRefunded records a refund of a paid booking.
func (b *Booking) MarkRefunded(actorID uuid.UUID) error {
	if actorID != b.guestID && actorID != b.hostID {
		return domain.NewUnauthorizedError("only booking participants can update payment status")
	}
	if !b.paymentStatus.CanTransitionTo(PaymentRefunded) {
		return domain.NewIllegalTransitionError(string(b.paymentStatus), string(PaymentRefunded))
	}
	b.paymentStatus = PaymentRefunded
	b.updatedAt = time.Now().UTC()
	return nil
}

// IncrementVersion bumps the version for optimistic locking.
func (b *Booking) IncrementVersion() {
	b.version++
	b.updatedAt = time.Now().UTC()
}
