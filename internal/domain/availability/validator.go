package availability

import (
	"fmt"
	"time"

	"github.com/staynest/service-booking/internal/common/domain"
)

// MaxAdvanceBookingDays bounds how far ahead a stay may begin.
const MaxAdvanceBookingDays = 365

// DateLayout is the wire format for stay dates.
const DateLayout = "2006-01-02"

// ParseStayDates parses check-in/check-out date strings, failing with
// an invalid-format error on either.
func ParseStayDates(checkInStr, checkOutStr string) (time.Time, time.Time, error) {
	checkIn, err := time.Parse(DateLayout, checkInStr)
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewError(domain.KindInvalidFormat,
			fmt.Sprintf("invalid check-in date %q, expected YYYY-MM-DD", checkInStr))
	}
	checkOut, err := time.Parse(DateLayout, checkOutStr)
	if err != nil {
		return time.Time{}, time.Time{}, domain.NewError(domain.KindInvalidFormat,
			fmt.Sprintf("invalid check-out date %q, expected YYYY-MM-DD", checkOutStr))
	}
	return checkIn.UTC(), checkOut.UTC(), nil
}

// ValidateRange applies the stay-range rules in order, returning the
// first failure: inverted range, check-in in the past, check-in too
// far in the future.
func ValidateRange(checkIn, checkOut, now time.Time) error {
	if !checkIn.Before(checkOut) {
		return domain.NewError(domain.KindInvertedRange,
			"check-in date must be before check-out date")
	}
	if checkIn.Before(startOfDay(now)) {
		return domain.NewError(domain.KindPastCheckIn,
			"check-in date cannot be in the past")
	}
	if checkIn.After(now.AddDate(0, 0, MaxAdvanceBookingDays)) {
		return domain.NewError(domain.KindTooFarInFuture,
			fmt.Sprintf("check-in date cannot be more than %d days ahead", MaxAdvanceBookingDays))
	}
	return nil
}

// ValidateCapacity checks the requested guest count against the
// listing's capacity. A capacity of zero means unspecified and passes.
func ValidateCapacity(requestedGuests, maxGuests int) error {
	if maxGuests > 0 && requestedGuests > maxGuests {
		return domain.NewError(domain.KindCapacityExceeded,
			fmt.Sprintf("requested %d guests but listing accommodates at most %d", requestedGuests, maxGuests)).
			WithDetail("requested_guests", requestedGuests).
			WithDetail("max_guests", maxGuests)
	}
	return nil
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
