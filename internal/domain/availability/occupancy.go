package availability

import (
	"math"
	"time"

	"github.com/staynest/service-booking/internal/domain/booking"
)

// OccupancyWindowMonths is the length of the trailing demand window.
const OccupancyWindowMonths = 3

// EstimateOccupancy computes the share of days in the trailing
// three-month window before checkIn that were covered by confirmed or
// completed bookings, and buckets it into a coarse popularity tier.
func EstimateOccupancy(checkIn time.Time, history []*booking.Booking) Occupancy {
	windowStart := checkIn.AddDate(0, -OccupancyWindowMonths, 0)
	windowDays := int(checkIn.Sub(windowStart).Hours() / 24)
	if windowDays <= 0 {
		return Occupancy{PopularityScore: PopularityLow}
	}

	bookedDays := 0
	count := 0
	for _, b := range history {
		if b.Status() != booking.StatusConfirmed && b.Status() != booking.StatusCompleted {
			continue
		}
		in := b.CheckIn()
		if in.Before(windowStart) || in.After(checkIn) {
			continue
		}
		bookedDays += b.Range().Days()
		count++
	}

	rate := int(math.Round(float64(bookedDays) / float64(windowDays) * 100))

	return Occupancy{
		OccupancyRate:    rate,
		PopularityScore:  popularityTier(rate),
		BookingsInWindow: count,
	}
}

func popularityTier(rate int) string {
	switch {
	case rate <= 40:
		return PopularityLow
	case rate <= 70:
		return PopularityMedium
	default:
		return PopularityHigh
	}
}
