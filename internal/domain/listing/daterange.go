package listing

import (
	"fmt"
	"time"

	"github.com/staynest/service-booking/internal/common/domain"
)

// DateRange is a half-open [CheckIn, CheckOut) stay interval. The
// checkout day is excluded so a departure can share a calendar day
// with another stay's arrival.
type DateRange struct {
	CheckIn  time.Time `json:"check_in"`
	CheckOut time.Time `json:"check_out"`
}

// NewDateRange creates a DateRange, rejecting inverted or empty ranges.
func NewDateRange(checkIn, checkOut time.Time) (DateRange, error) {
	if !checkIn.Before(checkOut) {
		return DateRange{}, domain.NewError(domain.KindInvertedRange,
			"check-in date must be before check-out date")
	}
	return DateRange{CheckIn: checkIn.UTC(), CheckOut: checkOut.UTC()}, nil
}

// Overlaps reports whether two half-open ranges intersect. Adjacent
// ranges sharing a boundary do not overlap.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.CheckIn.Before(other.CheckOut) && r.CheckOut.After(other.CheckIn)
}

// Days returns the stay length, rounding partial days up.
func (r DateRange) Days() int {
	hours := r.CheckOut.Sub(r.CheckIn).Hours()
	days := int(hours / 24)
	if hours > float64(days)*24 {
		days++
	}
	return days
}

// String renders the range for conflict explanations.
func (r DateRange) String() string {
	return fmt.Sprintf("[%s, %s)", r.CheckIn.Format("2006-01-02"), r.CheckOut.Format("2006-01-02"))
}

// BlackoutWindow is a host-declared period during which the listing
// cannot be booked, independent of actual bookings. Windows may
// overlap each other.
type BlackoutWindow struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Reason    string    `json:"reason,omitempty"`
}

// Range returns the window as a half-open DateRange.
func (w BlackoutWindow) Range() DateRange {
	return DateRange{CheckIn: w.StartDate, CheckOut: w.EndDate}
}
