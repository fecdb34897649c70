package booking

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// BookingRepository defines the persistence contract for booking aggregates.
type BookingRepository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindByNumber retrieves a booking by its human-readable booking number.
	FindByNumber(ctx context.Context, number string) (*Booking, error)

	// FindActiveForListing retrieves pending and confirmed bookings for a
	// listing whose stay overlaps the given half-open window. Used for
	// conflict detection and alternative-date search.
	FindActiveForListing(ctx context.Context, listingID uuid.UUID, windowStart, windowEnd time.Time) ([]*Booking, error)

	// FindHistoryForListing retrieves confirmed and completed bookings
	// whose check-in date falls inside [windowStart, windowEnd]. Used by
	// the occupancy estimator.
	FindHistoryForListing(ctx context.Context, listingID uuid.UUID, windowStart, windowEnd time.Time) ([]*Booking, error)

	// FindByGuestID retrieves bookings created by a specific guest with pagination.
	FindByGuestID(ctx context.Context, guestID uuid.UUID, page, limit int) ([]*Booking, int64, error)

	// FindByHostID retrieves bookings on a specific host's listings with pagination.
	FindByHostID(ctx context.Context, hostID uuid.UUID, page, limit int) ([]*Booking, int64, error)

	// ListAll retrieves all bookings with pagination (admin).
	ListAll(ctx context.Context, page, limit int) ([]*Booking, int64, error)

	// CountByStatus returns booking counts grouped by status (admin).
	CountByStatus(ctx context.Context) (map[string]int64, error)

	// Save persists a new booking.
	Save(ctx context.Context, booking *Booking) error

	// Update persists changes to an existing booking with optimistic locking.
	Update(ctx context.Context, booking *Booking) error
}
