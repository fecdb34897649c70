package availability

import (
	"fmt"

	"github.com/staynest/service-booking/internal/domain/booking"
	"github.com/staynest/service-booking/internal/domain/listing"
)

// Analyze cross-references a requested stay against the listing's
// blackout windows and its active bookings, collecting every overlap
// rather than stopping at the first so callers can explain the full
// picture. Completed and cancelled bookings never conflict.
func Analyze(lst *listing.Listing, stay listing.DateRange, activeBookings []*booking.Booking) Report {
	report := Report{
		Reasons:           []string{},
		BlackoutConflicts: []Conflict{},
		BookingConflicts:  []Conflict{},
		NumberOfDays:      stay.Days(),
		BasePriceCents:    int64(stay.Days()) * lst.PricePerDayCents(),
	}

	for _, w := range lst.Blackouts() {
		if stay.Overlaps(w.Range()) {
			reason := fmt.Sprintf("host has blocked %s", w.Range())
			if w.Reason != "" {
				reason = fmt.Sprintf("host has blocked %s: %s", w.Range(), w.Reason)
			}
			report.BlackoutConflicts = append(report.BlackoutConflicts, Conflict{
				Source: SourceBlackout,
				Range:  w.Range(),
				Reason: reason,
			})
			report.Reasons = append(report.Reasons, reason)
		}
	}

	for _, b := range activeBookings {
		if !b.Status().IsActive() {
			continue
		}
		if stay.Overlaps(b.Range()) {
			id := b.ID()
			reason := fmt.Sprintf("an existing %s booking occupies %s", b.Status(), b.Range())
			report.BookingConflicts = append(report.BookingConflicts, Conflict{
				Source:    SourceBooking,
				Range:     b.Range(),
				Reason:    reason,
				BookingID: &id,
			})
			report.Reasons = append(report.Reasons, reason)
		}
	}

	if !lst.IsAvailable() {
		report.Reasons = append(report.Reasons, "listing is not currently accepting bookings")
	}

	report.IsAvailable = len(report.BlackoutConflicts) == 0 &&
		len(report.BookingConflicts) == 0 &&
		lst.IsAvailable()

	return report
}
