package application

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/staynest/service-booking/internal/common/domain"
	bookingDomain "github.com/staynest/service-booking/internal/domain/booking"
	listingDomain "github.com/staynest/service-booking/internal/domain/listing"
)

// fakeListingRepo is an in-memory ListingRepository for unit tests.
type fakeListingRepo struct {
	mu       sync.Mutex
	listings map[uuid.UUID]*listingDomain.Listing
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{listings: make(map[uuid.UUID]*listingDomain.Listing)}
}

func (r *fakeListingRepo) FindByID(_ context.Context, id uuid.UUID) (*listingDomain.Listing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lst, ok := r.listings[id]
	if !ok {
		return nil, domain.NewNotFoundError("Listing", id.String())
	}
	return lst, nil
}

func (r *fakeListingRepo) FindByHostID(_ context.Context, hostID uuid.UUID, _, _ int) ([]*listingDomain.Listing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*listingDomain.Listing
	for _, lst := range r.listings {
		if lst.IsOwnedBy(hostID) {
			out = append(out, lst)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeListingRepo) ListAll(_ context.Context, _, _ int) ([]*listingDomain.Listing, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*listingDomain.Listing, 0, len(r.listings))
	for _, lst := range r.listings {
		out = append(out, lst)
	}
	return out, int64(len(out)), nil
}

func (r *fakeListingRepo) Save(_ context.Context, l *listingDomain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.listings[l.ID()] = l
	return nil
}

func (r *fakeListingRepo) Update(_ context.Context, l *listingDomain.Listing) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.listings[l.ID()]; !ok {
		return domain.NewNotFoundError("Listing", l.ID().String())
	}
	r.listings[l.ID()] = l
	return nil
}

// fakeBookingRepo is an in-memory BookingRepository for unit tests.
type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[uuid.UUID]*bookingDomain.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*bookingDomain.Booking)}
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bk, ok := r.bookings[id]
	if !ok {
		return nil, domain.NewNotFoundError("Booking", id.String())
	}
	return bk, nil
}

func (r *fakeBookingRepo) FindByNumber(_ context.Context, number string) (*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, bk := range r.bookings {
		if bk.BookingNumber() == number {
			return bk, nil
		}
	}
	return nil, domain.NewNotFoundError("Booking", number)
}

func (r *fakeBookingRepo) FindActiveForListing(_ context.Context, listingID uuid.UUID, windowStart, windowEnd time.Time) ([]*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	window := listingDomain.DateRange{CheckIn: windowStart, CheckOut: windowEnd}
	var out []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if bk.ListingID() != listingID || !bk.Status().IsActive() {
			continue
		}
		if window.Overlaps(bk.Range()) {
			out = append(out, bk)
		}
	}
	return out, nil
}

func (r *fakeBookingRepo) FindHistoryForListing(_ context.Context, listingID uuid.UUID, windowStart, windowEnd time.Time) ([]*bookingDomain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if bk.ListingID() != listingID {
			continue
		}
		if bk.Status() != bookingDomain.StatusConfirmed && bk.Status() != bookingDomain.StatusCompleted {
			continue
		}
		in := bk.CheckIn()
		if in.Before(windowStart) || in.After(windowEnd) {
			continue
		}
		out = append(out, bk)
	}
	return out, nil
}

func (r *fakeBookingRepo) FindByGuestID(_ context.Context, guestID uuid.UUID, _, _ int) ([]*bookingDomain.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if bk.GuestID() == guestID {
			out = append(out, bk)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) FindByHostID(_ context.Context, hostID uuid.UUID, _, _ int) ([]*bookingDomain.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*bookingDomain.Booking
	for _, bk := range r.bookings {
		if bk.HostID() == hostID {
			out = append(out, bk)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) ListAll(_ context.Context, _, _ int) ([]*bookingDomain.Booking, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*bookingDomain.Booking, 0, len(r.bookings))
	for _, bk := range r.bookings {
		out = append(out, bk)
	}
	return out, int64(len(out)), nil
}

func (r *fakeBookingRepo) CountByStatus(_ context.Context) (map[string]int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int64)
	for _, bk := range r.bookings {
		counts[string(bk.Status())]++
	}
	return counts, nil
}

func (r *fakeBookingRepo) Save(_ context.Context, bk *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.bookings[bk.ID()] = bk
	return nil
}

func (r *fakeBookingRepo) Update(_ context.Context, bk *bookingDomain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[bk.ID()]; !ok {
		return domain.NewNotFoundError("Booking", bk.ID().String())
	}
	r.bookings[bk.ID()] = bk
	return nil
}
