// Package availability implements the booking availability and
// conflict-resolution engine: request validation, conflict analysis
// against host blackouts and active bookings, alternative-date search
// and occupancy estimation. All functions are pure computations over
// already-fetched listing and booking snapshots.
package availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/staynest/service-booking/internal/domain/listing"
)

// ConflictSource identifies what a requested stay collided with.
type ConflictSource string

const (
	SourceBlackout ConflictSource = "blackout"
	SourceBooking  ConflictSource = "booking"
)

// Conflict describes one interval overlapping the requested stay.
type Conflict struct {
	Source    ConflictSource    `json:"source"`
	Range     listing.DateRange `json:"range"`
	Reason    string            `json:"reason"`
	BookingID *uuid.UUID        `json:"booking_id,omitempty"`
}

// Report is the full availability verdict for a requested stay.
type Report struct {
	IsAvailable       bool       `json:"is_available"`
	Reasons           []string   `json:"reasons"`
	BlackoutConflicts []Conflict `json:"blackout_conflicts"`
	BookingConflicts  []Conflict `json:"booking_conflicts"`
	NumberOfDays      int        `json:"number_of_days"`
	BasePriceCents    int64      `json:"base_price_cents"`
}

// Alternative is a bookable same-duration stay near the original request.
type Alternative struct {
	CheckIn         time.Time `json:"check_in"`
	CheckOut        time.Time `json:"check_out"`
	PriceTotalCents int64     `json:"price_total_cents"`
}

// Occupancy summarizes historical demand for a listing over the
// trailing window ending at the requested check-in.
type Occupancy struct {
	OccupancyRate    int    `json:"occupancy_rate"`
	PopularityScore  string `json:"popularity_score"`
	BookingsInWindow int    `json:"total_bookings_in_window"`
}

// Popularity tiers.
const (
	PopularityLow    = "Low"
	PopularityMedium = "Medium"
	PopularityHigh   = "High"
)
