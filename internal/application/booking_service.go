package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/staynest/service-booking/internal/common/domain"
	"github.com/staynest/service-booking/internal/common/kafka"
	"github.com/staynest/service-booking/internal/domain/availability"
	bookingDomain "github.com/staynest/service-booking/internal/domain/booking"
	listingDomain "github.com/staynest/service-booking/internal/domain/listing"
	"github.com/staynest/service-booking/internal/events"
)

// CreateBookingRequest holds the data needed to create a new booking.
// Dates travel as YYYY-MM-DD strings and are validated here.
type CreateBookingRequest struct {
	ListingID      uuid.UUID `json:"listing_id" binding:"required"`
	CheckIn        string    `json:"check_in" binding:"required"`
	CheckOut       string    `json:"check_out" binding:"required"`
	NumberOfGuests int       `json:"number_of_guests" binding:"required"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID              uuid.UUID  `json:"id"`
	BookingNumber   string     `json:"booking_number"`
	ListingID       uuid.UUID  `json:"listing_id"`
	HostID          uuid.UUID  `json:"host_id"`
	GuestID         uuid.UUID  `json:"guest_id"`
	CheckIn         time.Time  `json:"check_in"`
	CheckOut        time.Time  `json:"check_out"`
	NumberOfDays    int        `json:"number_of_days"`
	NumberOfGuests  int        `json:"number_of_guests"`
	TotalPriceCents int64      `json:"total_price_cents"`
	Currency        string     `json:"currency"`
	Status          string     `json:"status"`
	PaymentStatus   string     `json:"payment_status"`
	CancelledAt     *time.Time `json:"cancelled_at,omitempty"`
	CancelNote      string     `json:"cancel_note,omitempty"`
	Version         int64      `json:"version"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// BookingService is the application service orchestrating booking use cases.
type BookingService struct {
	bookings bookingDomain.BookingRepository
	listings listingDomain.ListingRepository
	locks    *listingLocks
	producer *kafka.Producer
	logger   *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.BookingRepository,
	listings listingDomain.ListingRepository,
	producer *kafka.Producer,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings: bookings,
		listings: listings,
		locks:    newListingLocks(),
		producer: producer,
		logger:   logger,
	}
}

// CreateBooking creates a new pending booking for the given guest. The
// conflict check and the insert run under a per-listing lock so two
// overlapping requests cannot both commit.
func (s *BookingService) CreateBooking(ctx context.Context, guestID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	checkIn, checkOut, err := availability.ParseStayDates(req.CheckIn, req.CheckOut)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if err := availability.ValidateRange(checkIn, checkOut, now); err != nil {
		return nil, err
	}

	lst, err := s.listings.FindByID(ctx, req.ListingID)
	if err != nil {
		return nil, err
	}

	if err := availability.ValidateCapacity(req.NumberOfGuests, lst.MaxGuests()); err != nil {
		return nil, err
	}

	stay, err := listingDomain.NewDateRange(checkIn, checkOut)
	if err != nil {
		return nil, err
	}

	release := s.locks.Acquire(lst.ID())
	defer release()

	active, err := s.bookings.FindActiveForListing(ctx, lst.ID(), stay.CheckIn, stay.CheckOut)
	if err != nil {
		return nil, fmt.Errorf("failed to load active bookings: %w", err)
	}

	report := availability.Analyze(lst, stay, active)
	if !report.IsAvailable {
		if !lst.IsAvailable() {
			return nil, domain.NewError(domain.KindListingInactive,
				"listing is not currently accepting bookings")
		}
		return nil, domain.NewConflictError("requested dates are not available").
			WithDetail("reasons", report.Reasons)
	}

	bk, err := bookingDomain.NewBooking(
		lst.ID(),
		lst.HostID(),
		guestID,
		stay.CheckIn,
		stay.CheckOut,
		req.NumberOfGuests,
		lst.PricePerDayCents(),
	)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Save(ctx, bk); err != nil {
		return nil, fmt.Errorf("failed to save booking: %w", err)
	}

	s.publishBookingCreated(ctx, bk)

	result := toBookingDTO(bk)
	return &result, nil
}

// ConfirmBooking transitions a pending booking to confirmed on behalf
// of the listing host.
func (s *BookingService) ConfirmBooking(ctx context.Context, actorID, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := bk.Confirm(actorID); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}

	evt := events.BookingConfirmedEvent{
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		ListingID:     bk.ListingID(),
		HostID:        bk.HostID(),
		GuestID:       bk.GuestID(),
		OccurredAt:    time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingConfirmed, evt)

	result := toBookingDTO(bk)
	return &result, nil
}

// CompleteBooking transitions a confirmed booking to completed on
// behalf of the listing host.
func (s *BookingService) CompleteBooking(ctx context.Context, actorID, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := bk.Complete(actorID); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}

	evt := events.BookingCompletedEvent{
		BookingID:       bk.ID(),
		BookingNumber:   bk.BookingNumber(),
		ListingID:       bk.ListingID(),
		HostID:          bk.HostID(),
		GuestID:         bk.GuestID(),
		TotalPriceCents: bk.TotalPriceCents(),
		Currency:        bk.Currency(),
		OccurredAt:      time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCompleted, evt)

	result := toBookingDTO(bk)
	return &result, nil
}

// CancelBooking cancels a booking on behalf of its guest, subject to
// the 24-hour cancellation window.
func (s *BookingService) CancelBooking(ctx context.Context, actorID, bookingID uuid.UUID, reason string) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := bk.Cancel(actorID, time.Now().UTC(), reason); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}

	evt := events.BookingCancelledEvent{
		BookingID:     bk.ID(),
		BookingNumber: bk.BookingNumber(),
		ListingID:     bk.ListingID(),
		CancelledBy:   actorID,
		Reason:        reason,
		OccurredAt:    time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCancelled, evt)

	result := toBookingDTO(bk)
	return &result, nil
}

// TransitionBooking moves a booking to the named target status on
// behalf of the given actor, enforcing the transition table and
// transition authority.
func (s *BookingService) TransitionBooking(ctx context.Context, actorID, bookingID uuid.UUID, target, reason string) (*BookingDTO, error) {
	status, err := bookingDomain.ParseBookingStatus(target)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	switch status {
	case bookingDomain.StatusConfirmed:
		return s.ConfirmBooking(ctx, actorID, bookingID)
	case bookingDomain.StatusCompleted:
		return s.CompleteBooking(ctx, actorID, bookingID)
	case bookingDomain.StatusCancelled:
		return s.CancelBooking(ctx, actorID, bookingID, reason)
	default:
		bk, err := s.bookings.FindByID(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		return nil, domain.NewIllegalTransitionError(string(bk.Status()), target)
	}
}

// MarkPaymentPaid records a successful payment on a booking.
func (s *BookingService) MarkPaymentPaid(ctx context.Context, actorID, bookingID uuid.UUID) (*BookingDTO, error) {
	return s.updatePayment(ctx, bookingID, func(bk *bookingDomain.Booking) error {
		return bk.MarkPaid(actorID)
	})
}

// MarkPaymentRefunded records a refund on a paid booking.
func (s *BookingService) MarkPaymentRefunded(ctx context.Context, actorID, bookingID uuid.UUID) (*BookingDTO, error) {
	return s.updatePayment(ctx, bookingID, func(bk *bookingDomain.Booking) error {
		return bk.MarkRefunded(actorID)
	})
}

// RecordPaymentCaptured applies a payment-service capture event to the
// booking's payment flag, acting on behalf of the guest.
func (s *BookingService) RecordPaymentCaptured(ctx context.Context, bookingID uuid.UUID) error {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}
	_, err = s.MarkPaymentPaid(ctx, bk.GuestID(), bookingID)
	return err
}

// RecordPaymentRefunded applies a payment-service refund event to the
// booking's payment flag, acting on behalf of the host.
func (s *BookingService) RecordPaymentRefunded(ctx context.Context, bookingID uuid.UUID) error {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return err
	}
	_, err = s.MarkPaymentRefunded(ctx, bk.HostID(), bookingID)
	return err
}

func (s *BookingService) updatePayment(ctx context.Context, bookingID uuid.UUID, apply func(*bookingDomain.Booking) error) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := apply(bk); err != nil {
		return nil, err
	}

	bk.IncrementVersion()
	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}

	result := toBookingDTO(bk)
	return &result, nil
}

// GetBooking retrieves a single booking by ID.
func (s *BookingService) GetBooking(ctx context.Context, bookingID uuid.UUID) (*BookingDTO, error) {
	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	result := toBookingDTO(bk)
	return &result, nil
}

// GetGuestBookings retrieves paginated bookings created by a guest.
func (s *BookingService) GetGuestBookings(ctx context.Context, guestID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.bookings.FindByGuestID(ctx, guestID, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// GetHostBookings retrieves paginated bookings on a host's listings.
func (s *BookingService) GetHostBookings(ctx context.Context, hostID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDTO], error) {
	bookings, total, err := s.bookings.FindByHostID(ctx, hostID, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toBookingDTOs(bookings), total, page, limit)
	return &result, nil
}

// --- Admin methods ---

// BookingStatsDTO holds booking statistics for the admin dashboard.
type BookingStatsDTO struct {
	TotalBookings int64            `json:"total_bookings"`
	ByStatus      map[string]int64 `json:"by_status"`
}

// ListAllBookings returns a paginated list of all bookings (admin).
func (s *BookingService) ListAllBookings(ctx context.Context, page, limit int) ([]BookingDTO, int64, error) {
	bookings, total, err := s.bookings.ListAll(ctx, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list bookings: %w", err)
	}
	return toBookingDTOs(bookings), total, nil
}

// GetBookingStats returns aggregate booking statistics (admin).
func (s *BookingService) GetBookingStats(ctx context.Context) (*BookingStatsDTO, error) {
	counts, err := s.bookings.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking stats: %w", err)
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	return &BookingStatsDTO{
		TotalBookings: total,
		ByStatus:      counts,
	}, nil
}

// --- Helpers ---

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:              bk.ID(),
		BookingNumber:   bk.BookingNumber(),
		ListingID:       bk.ListingID(),
		HostID:          bk.HostID(),
		GuestID:         bk.GuestID(),
		CheckIn:         bk.CheckIn(),
		CheckOut:        bk.CheckOut(),
		NumberOfDays:    bk.NumberOfDays(),
		NumberOfGuests:  bk.NumberOfGuests(),
		TotalPriceCents: bk.TotalPriceCents(),
		Currency:        bk.Currency(),
		Status:          string(bk.Status()),
		PaymentStatus:   string(bk.PaymentStatus()),
		CancelledAt:     bk.CancelledAt(),
		CancelNote:      bk.CancelNote(),
		Version:         bk.Version(),
		CreatedAt:       bk.CreatedAt(),
		UpdatedAt:       bk.UpdatedAt(),
	}
}

func toBookingDTOs(bookings []*bookingDomain.Booking) []BookingDTO {
	dtos := make([]BookingDTO, len(bookings))
	for i, bk := range bookings {
		dtos[i] = toBookingDTO(bk)
	}
	return dtos
}

func (s *BookingService) publishBookingCreated(ctx context.Context, bk *bookingDomain.Booking) {
	evt := events.BookingCreatedEvent{
		BookingID:       bk.ID(),
		BookingNumber:   bk.BookingNumber(),
		ListingID:       bk.ListingID(),
		HostID:          bk.HostID(),
		GuestID:         bk.GuestID(),
		CheckIn:         bk.CheckIn(),
		CheckOut:        bk.CheckOut(),
		NumberOfGuests:  bk.NumberOfGuests(),
		TotalPriceCents: bk.TotalPriceCents(),
		Currency:        bk.Currency(),
		OccurredAt:      time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingCreated, evt)
}

func (s *BookingService) publishEvent(ctx context.Context, topic, eventType string, data interface{}) {
	if s.producer == nil {
		return
	}

	cloudEvent, err := kafka.NewCloudEvent("service-booking", eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.producer.PublishEvent(ctx, topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}
