package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/staynest/service-booking/internal/domain/availability"
	bookingDomain "github.com/staynest/service-booking/internal/domain/booking"
	listingDomain "github.com/staynest/service-booking/internal/domain/listing"
)

// AvailabilityReportDTO is the response for an availability check. When
// the requested dates are unavailable it carries alternative stays and
// an occupancy snapshot so callers can explain and suggest.
type AvailabilityReportDTO struct {
	ListingID         uuid.UUID                  `json:"listing_id"`
	CheckIn           time.Time                  `json:"check_in"`
	CheckOut          time.Time                  `json:"check_out"`
	IsAvailable       bool                       `json:"is_available"`
	Reasons           []string                   `json:"reasons"`
	BlackoutConflicts []availability.Conflict    `json:"blackout_conflicts"`
	BookingConflicts  []availability.Conflict    `json:"booking_conflicts"`
	NumberOfDays      int                        `json:"number_of_days"`
	BasePriceCents    int64                      `json:"base_price_cents"`
	Alternatives      []availability.Alternative `json:"alternatives,omitempty"`
	Occupancy         *availability.Occupancy    `json:"occupancy,omitempty"`
}

// AvailabilityService answers availability questions by fetching the
// listing and booking snapshots once and running the pure engine over
// them.
type AvailabilityService struct {
	listings listingDomain.ListingRepository
	bookings bookingDomain.BookingRepository
	logger   *zap.Logger
}

// NewAvailabilityService creates a new AvailabilityService.
func NewAvailabilityService(
	listings listingDomain.ListingRepository,
	bookings bookingDomain.BookingRepository,
	logger *zap.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		listings: listings,
		bookings: bookings,
		logger:   logger,
	}
}

// CheckAvailability validates the request, analyzes conflicts and, when
// the dates are unavailable, enriches the report with alternative
// stays and an occupancy snapshot.
func (s *AvailabilityService) CheckAvailability(
	ctx context.Context,
	listingID uuid.UUID,
	checkIn, checkOut time.Time,
	numberOfGuests int,
	now time.Time,
) (*AvailabilityReportDTO, error) {
	if err := availability.ValidateRange(checkIn, checkOut, now); err != nil {
		return nil, err
	}

	lst, err := s.listings.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if numberOfGuests > 0 {
		if err := availability.ValidateCapacity(numberOfGuests, lst.MaxGuests()); err != nil {
			return nil, err
		}
	}

	stay, err := listingDomain.NewDateRange(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	active, err := s.bookings.FindActiveForListing(ctx, listingID, stay.CheckIn, stay.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("failed to load active bookings: %w", err)
	}

	report := availability.Analyze(lst, stay, active)

	dto := &AvailabilityReportDTO{
		ListingID:         listingID,
		CheckIn:           stay.CheckIn,
		CheckOut:          stay.CheckOut,
		IsAvailable:       report.IsAvailable,
		Reasons:           report.Reasons,
		BlackoutConflicts: report.BlackoutConflicts,
		BookingConflicts:  report.BookingConflicts,
		NumberOfDays:      report.NumberOfDays,
		BasePriceCents:    report.BasePriceCents,
	}

	if report.IsAvailable {
		return dto, nil
	}

	// One fetch covering the whole ±30-day search window plus the stay
	// duration, so candidates are tested in memory.
	searchStart := stay.CheckIn.AddDate(0, 0, -availability.AlternativeSearchRadiusDays)
	searchEnd := stay.CheckIn.AddDate(0, 0, availability.AlternativeSearchRadiusDays+report.NumberOfDays)
	windowBookings, err := s.bookings.FindActiveForListing(ctx, listingID, searchStart, searchEnd)
	if err != nil {
		s.logger.Warn("failed to load bookings for alternative search",
			zap.String("listing_id", listingID.String()),
			zap.Error(err),
		)
	} else {
		dto.Alternatives = availability.FindAlternatives(stay, now, lst.PricePerDayCents(), windowBookings)
	}

	historyStart := stay.CheckIn.AddDate(0, -availability.OccupancyWindowMonths, 0)
	history, err := s.bookings.FindHistoryForListing(ctx, listingID, historyStart, stay.CheckIn)
	if err != nil {
		s.logger.Warn("failed to load booking history for occupancy",
			zap.String("listing_id", listingID.String()),
			zap.Error(err),
		)
	} else {
		occ := availability.EstimateOccupancy(stay.CheckIn, history)
		dto.Occupancy = &occ
	}

	return dto, nil
}
