package state

import (
	"sync"

	"github.com/Rogerxyz26/kingsturnier/internal/tournament"
)

// Mock is an in-memory Store for testing. It is safe for concurrent use.
type Mock struct {
	mu        sync.Mutex
	saved     *tournament.State
	SaveErr   error
	saveCalls int
}

// NewMock creates a new mock instance, optionally pre-seeded with a state.
func NewMock(seed *tournament.State) *Mock {
	return &Mock{saved: seed}
}

func (m *Mock) Load() (*tournament.State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		return nil, false
	}
	return m.saved.Clone(), true
}

func (m *Mock) Save(s *tournament.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveCalls++
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.saved = s.Clone()
	return nil
}

// SaveCalls returns how often Save was called.
func (m *Mock) SaveCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saveCalls
}

// Saved returns a copy of the last saved state, or nil.
func (m *Mock) Saved() *tournament.State {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.saved == nil {
		return nil
	}
	return m.saved.Clone()
}
