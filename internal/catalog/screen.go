package catalog

import (
	"sync"

	"github.com/navatui/nava/internal/domain"
)

// ScreenState is the lifecycle of one list screen's visible state.
type ScreenState int

const (
	ScreenIdle    ScreenState = iota // Nothing requested yet
	ScreenLoading                    // A fetch is in flight
	ScreenLoaded                     // Items (possibly none) are showing
	ScreenErrored                    // Last fetch failed, retry offered
)

func (s ScreenState) String() string {
	switch s {
	case ScreenIdle:
		return "idle"
	case ScreenLoading:
		return "loading"
	case ScreenLoaded:
		return "loaded"
	case ScreenErrored:
		return "errored"
	default:
		return "unknown"
	}
}

// ScreenSession serializes fetch results onto one screen's visible state.
// Begin hands out a sequence number per fetch; only the result carrying
// the latest issued sequence may commit, so a slow response can never
// overwrite a newer one. In-flight requests are not cancelled, their
// results are simply discarded on arrival.
type ScreenSession struct {
	mu     sync.Mutex
	latest uint64
	state  ScreenState
	items  []domain.ContentItem
	err    error
}

// NewScreenSession creates a session in the idle state.
func NewScreenSession() *ScreenSession {
	return &ScreenSession{}
}

// Begin registers a new fetch: the screen enters loading and every
// previously issued sequence becomes stale immediately. The returned
// sequence must be passed to Commit with the fetch's outcome.
func (s *ScreenSession) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest++
	s.state = ScreenLoading
	return s.latest
}

// Commit applies a fetch outcome when seq is still the latest issued
// sequence and reports whether it was applied. Stale outcomes change
// nothing, success or failure alike.
func (s *ScreenSession) Commit(seq uint64, items []domain.ContentItem, err error) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq != s.latest {
		return false
	}
	if err != nil {
		s.state = ScreenErrored
		s.items = nil
		s.err = err
		return true
	}
	s.state = ScreenLoaded
	s.items = items
	s.err = nil
	return true
}

// Snapshot returns the current visible state
func (s *ScreenSession) Snapshot() (ScreenState, []domain.ContentItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state, s.items, s.err
}

// State returns the current lifecycle state
func (s *ScreenSession) State() ScreenState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}
