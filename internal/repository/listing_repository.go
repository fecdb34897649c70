package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/staynest/service-booking/internal/common/domain"
	listingDomain "github.com/staynest/service-booking/internal/domain/listing"
)

// ListingModel is the GORM model for the listings table. Blackout
// windows are stored as a jsonb document since they are always read
// and written with their listing.
type ListingModel struct {
	ID               uuid.UUID       `gorm:"type:uuid;primaryKey"`
	HostID           uuid.UUID       `gorm:"type:uuid;index;not null"`
	Title            string          `gorm:"not null;size:200"`
	Description      string          `gorm:"size:2000"`
	City             string          `gorm:"size:100;index"`
	Country          string          `gorm:"size:100"`
	PricePerDayCents int64           `gorm:"not null"`
	MaxGuests        int             `gorm:"not null;default:0"`
	IsAvailable      bool            `gorm:"not null;default:true"`
	Blackouts        json.RawMessage `gorm:"type:jsonb"`
	Version          int64           `gorm:"not null;default:1"`
	CreatedAt        time.Time       `gorm:"not null"`
	UpdatedAt        time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ListingModel) TableName() string {
	return "listings"
}

// GormListingRepository is the GORM-based implementation of ListingRepository.
type GormListingRepository struct {
	db *gorm.DB
}

// NewGormListingRepository creates a new GormListingRepository.
func NewGormListingRepository(db *gorm.DB) *GormListingRepository {
	return &GormListingRepository{db: db}
}

// FindByID retrieves a listing by its unique identifier.
func (r *GormListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*listingDomain.Listing, error) {
	var model ListingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Listing", id.String())
		}
		return nil, fmt.Errorf("failed to find listing by ID: %w", err)
	}
	return toDomainListing(&model)
}

// FindByHostID retrieves listings belonging to a specific host with pagination.
func (r *GormListingRepository) FindByHostID(ctx context.Context, hostID uuid.UUID, page, limit int) ([]*listingDomain.Listing, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&ListingModel{}).Where("host_id = ?", hostID).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count host listings: %w", err)
	}

	var models []ListingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Where("host_id = ?", hostID).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find host listings: %w", err)
	}

	listings, err := toDomainListings(models)
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// ListAll retrieves all listings with pagination.
func (r *GormListingRepository) ListAll(ctx context.Context, page, limit int) ([]*listingDomain.Listing, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&ListingModel{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count listings: %w", err)
	}

	var models []ListingModel
	offset := (page - 1) * limit
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list listings: %w", err)
	}

	listings, err := toDomainListings(models)
	if err != nil {
		return nil, 0, err
	}
	return listings, total, nil
}

// Save persists a new listing.
func (r *GormListingRepository) Save(ctx context.Context, l *listingDomain.Listing) error {
	model, err := toListingModel(l)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to save listing: %w", err)
	}
	return nil
}

// Update persists changes to an existing listing with optimistic locking.
func (r *GormListingRepository) Update(ctx context.Context, l *listingDomain.Listing) error {
	model, err := toListingModel(l)
	if err != nil {
		return err
	}

	expectedVersion := l.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&ListingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"title":               model.Title,
			"description":         model.Description,
			"city":                model.City,
			"country":             model.Country,
			"price_per_day_cents": model.PricePerDayCents,
			"max_guests":          model.MaxGuests,
			"is_available":        model.IsAvailable,
			"blackouts":           model.Blackouts,
			"version":             model.Version,
			"updated_at":          model.UpdatedAt,
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update listing: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return domain.NewConflictError("listing was modified by another transaction")
	}

	return nil
}

// --- Conversion Helpers ---

func toListingModel(l *listingDomain.Listing) (*ListingModel, error) {
	blackoutsJSON, err := json.Marshal(l.Blackouts())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal blackout windows: %w", err)
	}

	return &ListingModel{
		ID:               l.ID(),
		HostID:           l.HostID(),
		Title:            l.Title(),
		Description:      l.Description(),
		City:             l.City(),
		Country:          l.Country(),
		PricePerDayCents: l.PricePerDayCents(),
		MaxGuests:        l.MaxGuests(),
		IsAvailable:      l.IsAvailable(),
		Blackouts:        blackoutsJSON,
		Version:          l.Version(),
		CreatedAt:        l.CreatedAt(),
		UpdatedAt:        l.UpdatedAt(),
	}, nil
}

func toDomainListing(m *ListingModel) (*listingDomain.Listing, error) {
	var blackouts []listingDomain.BlackoutWindow
	if len(m.Blackouts) > 0 {
		if err := json.Unmarshal(m.Blackouts, &blackouts); err != nil {
			return nil, fmt.Errorf("failed to unmarshal blackout windows: %w", err)
		}
	}

	return listingDomain.Reconstruct(
		m.ID,
		m.HostID,
		m.Title,
		m.Description,
		m.City,
		m.Country,
		m.PricePerDayCents,
		m.MaxGuests,
		m.IsAvailable,
		blackouts,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toDomainListings(models []ListingModel) ([]*listingDomain.Listing, error) {
	listings := make([]*listingDomain.Listing, len(models))
	for i, m := range models {
		l, err := toDomainListing(&m)
		if err != nil {
			return nil, err
		}
		listings[i] = l
	}
	return listings, nil
}
