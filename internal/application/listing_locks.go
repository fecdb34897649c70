package application

import (
	"sync"

	"github.com/google/uuid"
)

// listingLocks serializes booking creation per listing so the conflict
// check and the insert run as one unit within this process. Without it
// two concurrent requests for overlapping dates could both pass the
// conflict check and both commit.
type listingLocks struct {
	mu    sync.Mutex
	locks map[uuid.UUID]*sync.Mutex
}

func newListingLocks() *listingLocks {
	return &listingLocks{locks: make(map[uuid.UUID]*sync.Mutex)}
}

// Acquire locks the mutex for the given listing and returns its
// release function.
func (l *listingLocks) Acquire(listingID uuid.UUID) func() {
	l.mu.Lock()
	m, ok := l.locks[listingID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[listingID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
