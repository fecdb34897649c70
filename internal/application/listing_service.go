package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/staynest/service-booking/internal/common/domain"
	"github.com/staynest/service-booking/internal/domain/availability"
	listingDomain "github.com/staynest/service-booking/internal/domain/listing"
)

// CreateListingRequest is the request DTO for creating a listing.
type CreateListingRequest struct {
	Title            string `json:"title" binding:"required"`
	Description      string `json:"description"`
	City             string `json:"city"`
	Country          string `json:"country"`
	PricePerDayCents int64  `json:"price_per_day_cents" binding:"required"`
	MaxGuests        int    `json:"max_guests"`
}

// UpdateListingRequest is the request DTO for updating a listing.
type UpdateListingRequest struct {
	Title            string `json:"title"`
	Description      string `json:"description"`
	City             string `json:"city"`
	Country          string `json:"country"`
	PricePerDayCents int64  `json:"price_per_day_cents"`
	MaxGuests        int    `json:"max_guests"`
}

// BlackoutRequest is the request DTO for adding or removing a blackout window.
type BlackoutRequest struct {
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
	Reason    string `json:"reason"`
}

// ListingDTO is the API response representation of a listing.
type ListingDTO struct {
	ID               uuid.UUID                      `json:"id"`
	HostID           uuid.UUID                      `json:"host_id"`
	Title            string                         `json:"title"`
	Description      string                         `json:"description,omitempty"`
	City             string                         `json:"city,omitempty"`
	Country          string                         `json:"country,omitempty"`
	PricePerDayCents int64                          `json:"price_per_day_cents"`
	MaxGuests        int                            `json:"max_guests"`
	IsAvailable      bool                           `json:"is_available"`
	Blackouts        []listingDomain.BlackoutWindow `json:"blackouts"`
	Version          int64                          `json:"version"`
	CreatedAt        time.Time                      `json:"created_at"`
	UpdatedAt        time.Time                      `json:"updated_at"`
}

// ListingService implements use cases for listing management.
type ListingService struct {
	repo   listingDomain.ListingRepository
	logger *zap.Logger
}

// NewListingService creates a new ListingService.
func NewListingService(repo listingDomain.ListingRepository, logger *zap.Logger) *ListingService {
	return &ListingService{repo: repo, logger: logger}
}

// CreateListing creates a new listing for the given host.
func (s *ListingService) CreateListing(ctx context.Context, hostID uuid.UUID, req CreateListingRequest) (*ListingDTO, error) {
	lst, err := listingDomain.NewListing(
		hostID,
		req.Title, req.Description, req.City, req.Country,
		req.PricePerDayCents,
		req.MaxGuests,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Save(ctx, lst); err != nil {
		s.logger.Error("failed to create listing", zap.Error(err))
		return nil, fmt.Errorf("failed to create listing: %w", err)
	}

	s.logger.Info("listing created",
		zap.String("listing_id", lst.ID().String()),
		zap.String("host_id", hostID.String()),
	)

	result := toListingDTO(lst)
	return &result, nil
}

// UpdateListing applies partial updates to a listing owned by the host.
func (s *ListingService) UpdateListing(ctx context.Context, hostID, listingID uuid.UUID, req UpdateListingRequest) (*ListingDTO, error) {
	lst, err := s.ownedListing(ctx, hostID, listingID)
	if err != nil {
		return nil, err
	}

	if err := lst.Update(req.Title, req.Description, req.City, req.Country, req.PricePerDayCents, req.MaxGuests); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, lst); err != nil {
		return nil, err
	}

	result := toListingDTO(lst)
	return &result, nil
}

// AddBlackout records a host-declared unavailable window on a listing.
func (s *ListingService) AddBlackout(ctx context.Context, hostID, listingID uuid.UUID, req BlackoutRequest) (*ListingDTO, error) {
	start, end, err := availability.ParseStayDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	lst, err := s.ownedListing(ctx, hostID, listingID)
	if err != nil {
		return nil, err
	}

	if err := lst.AddBlackout(listingDomain.BlackoutWindow{
		StartDate: start,
		EndDate:   end,
		Reason:    req.Reason,
	}); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, lst); err != nil {
		return nil, err
	}

	result := toListingDTO(lst)
	return &result, nil
}

// RemoveBlackout deletes a blackout window matching the given dates.
func (s *ListingService) RemoveBlackout(ctx context.Context, hostID, listingID uuid.UUID, req BlackoutRequest) (*ListingDTO, error) {
	start, end, err := availability.ParseStayDates(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	lst, err := s.ownedListing(ctx, hostID, listingID)
	if err != nil {
		return nil, err
	}

	if !lst.RemoveBlackout(start, end) {
		return nil, domain.NewNotFoundError("Blackout window", fmt.Sprintf("%s to %s", req.StartDate, req.EndDate))
	}

	if err := s.repo.Update(ctx, lst); err != nil {
		return nil, err
	}

	result := toListingDTO(lst)
	return &result, nil
}

// SetAvailability toggles the master availability switch on a listing.
func (s *ListingService) SetAvailability(ctx context.Context, hostID, listingID uuid.UUID, available bool) (*ListingDTO, error) {
	lst, err := s.ownedListing(ctx, hostID, listingID)
	if err != nil {
		return nil, err
	}

	lst.SetAvailable(available)

	if err := s.repo.Update(ctx, lst); err != nil {
		return nil, err
	}

	result := toListingDTO(lst)
	return &result, nil
}

// GetListing retrieves a single listing by ID.
func (s *ListingService) GetListing(ctx context.Context, listingID uuid.UUID) (*ListingDTO, error) {
	lst, err := s.repo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	result := toListingDTO(lst)
	return &result, nil
}

// GetHostListings retrieves paginated listings for a specific host.
func (s *ListingService) GetHostListings(ctx context.Context, hostID uuid.UUID, page, limit int) (*domain.PaginatedResult[ListingDTO], error) {
	listings, total, err := s.repo.FindByHostID(ctx, hostID, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toListingDTOs(listings), total, page, limit)
	return &result, nil
}

// ListListings retrieves all listings with pagination.
func (s *ListingService) ListListings(ctx context.Context, page, limit int) (*domain.PaginatedResult[ListingDTO], error) {
	listings, total, err := s.repo.ListAll(ctx, page, limit)
	if err != nil {
		return nil, err
	}
	result := domain.NewPaginatedResult(toListingDTOs(listings), total, page, limit)
	return &result, nil
}

func (s *ListingService) ownedListing(ctx context.Context, hostID, listingID uuid.UUID) (*listingDomain.Listing, error) {
	lst, err := s.repo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	if !lst.IsOwnedBy(hostID) {
		return nil, domain.NewForbiddenError("listing does not belong to this host")
	}
	return lst, nil
}

func toListingDTO(lst *listingDomain.Listing) ListingDTO {
	return ListingDTO{
		ID:               lst.ID(),
		HostID:           lst.HostID(),
		Title:            lst.Title(),
		Description:      lst.Description(),
		City:             lst.City(),
		Country:          lst.Country(),
		PricePerDayCents: lst.PricePerDayCents(),
		MaxGuests:        lst.MaxGuests(),
		IsAvailable:      lst.IsAvailable(),
		Blackouts:        lst.Blackouts(),
		Version:          lst.Version(),
		CreatedAt:        lst.CreatedAt(),
		UpdatedAt:        lst.UpdatedAt(),
	}
}

func toListingDTOs(listings []*listingDomain.Listing) []ListingDTO {
	dtos := make([]ListingDTO, len(listings))
	for i, lst := range listings {
		dtos[i] = toListingDTO(lst)
	}
	return dtos
}
