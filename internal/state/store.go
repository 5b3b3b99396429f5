package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/ghscout/internal/github"
)

// Snapshot represents the latest data available to the UI.
type Snapshot struct {
	Search   Search
	Detail   Detail
	Featured Featured
	Rate     RateLimit
	Version  uint64 // incremented on every change
}

// Store coordinates concurrent updates to the snapshot and tells a single
// listener when something changed.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
	changes  chan struct{}
	ready    bool
}

// NewStore returns a store seeded with an empty search using pageSize.
func NewStore(pageSize int) *Store {
	s := &Store{}
	s.snapshot.Search = NewSearch(pageSize)
	s.ready = true
	return s
}

// Changes returns a channel that receives a value after one or more updates.
// Notifications coalesce; readers should call Snapshot after each receive.
func (s *Store) Changes() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.changesLocked()
}

// UpdateSearch replaces the search state with fn(current).
func (s *Store) UpdateSearch(fn func(Search) Search) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initLocked()
	s.snapshot.Search = fn(s.snapshot.Search)
	s.notifyLocked()
}

// UpdateDetail replaces the detail state with fn(current).
func (s *Store) UpdateDetail(fn func(Detail) Detail) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initLocked()
	s.snapshot.Detail = fn(s.snapshot.Detail)
	s.notifyLocked()
}

// SetFeatured replaces the featured users.
func (s *Store) SetFeatured(f Featured) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initLocked()
	f.Users = cloneUsers(f.Users)
	s.snapshot.Featured = f
	s.notifyLocked()
}

// UpdateRateLimit records a rate limit poll. When err is non-nil the previous
// limits are kept but the error is recorded for visibility.
func (s *Store) UpdateRateLimit(limits *github.RateLimits, authenticated bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.initLocked()

	rate := &s.snapshot.Rate
	rate.Authenticated = authenticated
	rate.LastUpdated = time.Now()
	if err != nil {
		rate.LastError = err
		rate.ConsecutiveFailures++
		s.notifyLocked()
		return
	}
	if limits != nil {
		rate.Limits = *limits
		rate.HasLimits = true
	}
	rate.LastError = nil
	rate.ConsecutiveFailures = 0
	s.notifyLocked()
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if !s.ready && snap.Search.PageSize == 0 {
		snap.Search = NewSearch(0)
	}
	snap.Search = snap.Search.clone()
	snap.Detail.LastError = cloneErr(snap.Detail.LastError)
	snap.Featured.Users = cloneUsers(snap.Featured.Users)
	snap.Rate.LastError = cloneErr(snap.Rate.LastError)
	return snap
}

func (s *Store) initLocked() {
	if s.ready {
		return
	}
	if s.snapshot.Search.PageSize == 0 {
		s.snapshot.Search = NewSearch(0)
	}
	s.ready = true
}

func (s *Store) changesLocked() chan struct{} {
	if s.changes == nil {
		s.changes = make(chan struct{}, 1)
	}
	return s.changes
}

func (s *Store) notifyLocked() {
	s.snapshot.Version++
	select {
	case s.changesLocked() <- struct{}{}:
	default:
	}
}

func cloneErr(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w", err)
}
