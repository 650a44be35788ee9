package index

import (
	"sync/atomic"

	"github.com/complianceworks/sanctions-screening-backend/internal/domain/errors"
)

// Store holds the active index snapshot behind a single swappable
// reference. Readers never block and never observe a half-built index:
// writers build a complete snapshot off to the side, then Swap publishes it
// in one atomic step.
type Store struct {
	active atomic.Pointer[Index]
}

// NewStore creates an empty store. Until the first Swap, Active fails with
// INDEX_UNAVAILABLE and every screening call fails closed.
func NewStore() *Store {
	return &Store{}
}

// Active returns the current snapshot, or an IndexUnavailableError when no
// list has been loaded yet.
func (s *Store) Active() (*Index, error) {
	ix := s.active.Load()
	if ix == nil {
		return nil, errors.NewIndexUnavailableError()
	}
	return ix, nil
}

// Swap atomically publishes a new snapshot and returns the one it replaced
// (nil on first load). The old snapshot stays valid for readers still
// holding it.
func (s *Store) Swap(ix *Index) *Index {
	return s.active.Swap(ix)
}

// Loaded reports whether any snapshot has been published
func (s *Store) Loaded() bool {
	return s.active.Load() != nil
}
