package notifier

import (
	"sync"

	"github.com/Rogerxyz26/kingsturnier/internal/tournament"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	StateChangedCalls int
	MatchResolvedCalls []struct {
		Rec        tournament.MatchRecord
		WinnerName string
		LoserName  string
	}
	TournamentFinalizedCalls []struct {
		Entry     *tournament.ArchiveEntry
		Standings []tournament.Row
	}
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) StateChanged() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.StateChangedCalls++
}

func (m *Mock) MatchResolved(rec tournament.MatchRecord, winnerName, loserName string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MatchResolvedCalls = append(m.MatchResolvedCalls, struct {
		Rec        tournament.MatchRecord
		WinnerName string
		LoserName  string
	}{rec, winnerName, loserName})
}

func (m *Mock) TournamentFinalized(entry *tournament.ArchiveEntry, standings []tournament.Row) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.TournamentFinalizedCalls = append(m.TournamentFinalizedCalls, struct {
		Entry     *tournament.ArchiveEntry
		Standings []tournament.Row
	}{entry, standings})
}

// StateChanges returns how often StateChanged fired.
func (m *Mock) StateChanges() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.StateChangedCalls
}
