package availability

import (
	"time"

	"github.com/staynest/service-booking/internal/domain/booking"
	"github.com/staynest/service-booking/internal/domain/listing"
)

// Alternative-date search bounds.
const (
	AlternativeSearchRadiusDays = 30
	MaxAlternatives             = 3
)

// FindAlternatives scans candidate start dates day by day across a
// ±30-day window around the original check-in, earliest first, and
// returns up to three same-duration stays free of active-booking
// overlaps. Candidates starting before today are skipped. The booking
// set is expected to cover the whole search window; it is fetched once
// by the caller, not per candidate.
func FindAlternatives(
	original listing.DateRange,
	now time.Time,
	pricePerDayCents int64,
	activeBookings []*booking.Booking,
) []Alternative {
	duration := original.Days()
	earliest := startOfDay(now)

	windowStart := original.CheckIn.AddDate(0, 0, -AlternativeSearchRadiusDays)
	windowEnd := original.CheckIn.AddDate(0, 0, AlternativeSearchRadiusDays)

	alternatives := make([]Alternative, 0, MaxAlternatives)
	for start := windowStart; !start.After(windowEnd); start = start.AddDate(0, 0, 1) {
		if start.Before(earliest) {
			continue
		}

		candidate := listing.DateRange{
			CheckIn:  start,
			CheckOut: start.AddDate(0, 0, duration),
		}
		if hasActiveOverlap(candidate, activeBookings) {
			continue
		}

		alternatives = append(alternatives, Alternative{
			CheckIn:         candidate.CheckIn,
			CheckOut:        candidate.CheckOut,
			PriceTotalCents: int64(duration) * pricePerDayCents,
		})
		if len(alternatives) == MaxAlternatives {
			break
		}
	}

	return alternatives
}

func hasActiveOverlap(candidate listing.DateRange, bookings []*booking.Booking) bool {
	for _, b := range bookings {
		if !b.Status().IsActive() {
			continue
		}
		if candidate.Overlaps(b.Range()) {
			return true
		}
	}
	return false
}
