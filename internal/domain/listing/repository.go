package listing

import (
	"context"

	"github.com/google/uuid"
)

// ListingRepository defines the persistence contract for listing aggregates.
type ListingRepository interface {
	// FindByID retrieves a listing by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Listing, error)

	// FindByHostID retrieves listings belonging to a specific host with pagination.
	FindByHostID(ctx context.Context, hostID uuid.UUID, page, limit int) ([]*Listing, int64, error)

	// ListAll retrieves all listings with pagination.
	ListAll(ctx context.Context, page, limit int) ([]*Listing, int64, error)

	// Save persists a new listing.
	Save(ctx context.Context, l *Listing) error

	// Update persists changes to an existing listing with optimistic locking.
	Update(ctx context.Context, l *Listing) error
}
