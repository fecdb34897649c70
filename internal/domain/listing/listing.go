package listing

import (
	"time"

	"github.com/google/uuid"

	"github.com/staynest/service-booking/internal/common/domain"
)

// Listing is the aggregate root for a bookable property.
type Listing struct {
	id               uuid.UUID
	hostID           uuid.UUID
	title            string
	description      string
	city             string
	country          string
	pricePerDayCents int64
	maxGuests        int
	isAvailable      bool
	blackouts        []BlackoutWindow
	version          int64
	createdAt        time.Time
	updatedAt        time.Time
}

// NewListing creates a new available listing with validated fields.
// maxGuests of zero means the host did not specify a capacity.
func NewListing(
	hostID uuid.UUID,
	title, description, city, country string,
	pricePerDayCents int64,
	maxGuests int,
) (*Listing, error) {
	if hostID == uuid.Nil {
		return nil, domain.NewValidationError("host ID is required")
	}
	if title == "" {
		return nil, domain.NewValidationError("listing title is required")
	}
	if pricePerDayCents <= 0 {
		return nil, domain.NewValidationError("price per day must be positive")
	}
	if maxGuests < 0 {
		return nil, domain.NewValidationError("guest capacity cannot be negative")
	}

	now := time.Now().UTC()
	return &Listing{
		id:               uuid.New(),
		hostID:           hostID,
		title:            title,
		description:      description,
		city:             city,
		country:          country,
		pricePerDayCents: pricePerDayCents,
		maxGuests:        maxGuests,
		isAvailable:      true,
		version:          1,
		createdAt:        now,
		updatedAt:        now,
	}, nil
}

// Reconstruct rebuilds a Listing from persistence data (no validation).
func Reconstruct(
	id, hostID uuid.UUID,
	title, description, city, country string,
	pricePerDayCents int64,
	maxGuests int,
	isAvailable bool,
	blackouts []BlackoutWindow,
	version int64,
	createdAt, updatedAt time.Time,
) *Listing {
	return &Listing{
		id:               id,
		hostID:           hostID,
		title:            title,
		description:      description,
		city:             city,
		country:          country,
		pricePerDayCents: pricePerDayCents,
		maxGuests:        maxGuests,
		isAvailable:      isAvailable,
		blackouts:        blackouts,
		version:          version,
		createdAt:        createdAt,
		updatedAt:        updatedAt,
	}
}

// --- Getters ---

func (l *Listing) ID() uuid.UUID           { return l.id }
func (l *Listing) HostID() uuid.UUID       { return l.hostID }
func (l *Listing) Title() string           { return l.title }
func (l *Listing) Description() string     { return l.description }
func (l *Listing) City() string            { return l.city }
func (l *Listing) Country() string         { return l.country }
func (l *Listing) PricePerDayCents() int64 { return l.pricePerDayCents }
func (l *Listing) MaxGuests() int          { return l.maxGuests }
func (l *Listing) IsAvailable() bool       { return l.isAvailable }
func (l *Listing) Version() int64          { return l.version }
func (l *Listing) CreatedAt() time.Time    { return l.createdAt }
func (l *Listing) UpdatedAt() time.Time    { return l.updatedAt }

// Blackouts returns a copy of the host-declared blackout windows.
func (l *Listing) Blackouts() []BlackoutWindow {
	out := make([]BlackoutWindow, len(l.blackouts))
	copy(out, l.blackouts)
	return out
}

// --- Behavior ---

// IsOwnedBy checks if the listing belongs to the given host.
func (l *Listing) IsOwnedBy(hostID uuid.UUID) bool {
	return l.hostID == hostID
}

// HasCapacityLimit reports whether the host specified a guest capacity.
func (l *Listing) HasCapacityLimit() bool {
	return l.maxGuests > 0
}

// Update applies partial updates to the listing details.
func (l *Listing) Update(title, description, city, country string, pricePerDayCents int64, maxGuests int) error {
	if pricePerDayCents < 0 {
		return domain.NewValidationError("price per day cannot be negative")
	}
	if maxGuests < 0 {
		return domain.NewValidationError("guest capacity cannot be negative")
	}
	if title != "" {
		l.title = title
	}
	if description != "" {
		l.description = description
	}
	if city != "" {
		l.city = city
	}
	if country != "" {
		l.country = country
	}
	if pricePerDayCents > 0 {
		l.pricePerDayCents = pricePerDayCents
	}
	if maxGuests > 0 {
		l.maxGuests = maxGuests
	}
	l.touch()
	return nil
}

// AddBlackout records a host-declared unavailable window. Overlapping
// windows are permitted; no deduplication is performed.
func (l *Listing) AddBlackout(w BlackoutWindow) error {
	if _, err := NewDateRange(w.StartDate, w.EndDate); err != nil {
		return err
	}
	l.blackouts = append(l.blackouts, w)
	l.touch()
	return nil
}

// RemoveBlackout deletes the first blackout window matching the given
// start and end dates. Returns false if no window matched.
func (l *Listing) RemoveBlackout(startDate, endDate time.Time) bool {
	for i, w := range l.blackouts {
		if w.StartDate.Equal(startDate) && w.EndDate.Equal(endDate) {
			l.blackouts = append(l.blackouts[:i], l.blackouts[i+1:]...)
			l.touch()
			return true
		}
	}
	return false
}

// SetAvailable toggles the master availability switch.
func (l *Listing) SetAvailable(available bool) {
	l.isAvailable = available
	l.touch()
}

func (l *Listing) touch() {
	l.version++
	l.updatedAt = time.Now().UTC()
}
