package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                   sync.Mutex
	matchesResolved      int
	matchesCancelled     int
	tournamentsFinalized int
	matchDurations       []float64
	notifSent            int
	notifFailed          int
	startupTime          float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		matchDurations: make([]float64, 0),
	}
}

func (m *Mock) IncMatchesResolved() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesResolved++
}

func (m *Mock) IncMatchesCancelled() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesCancelled++
}

func (m *Mock) IncTournamentsFinalized() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tournamentsFinalized++
}

func (m *Mock) ObserveMatchDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchDurations = append(m.matchDurations, seconds)
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

func (m *Mock) SetStartupTime(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = seconds
}

// MatchesResolvedCount returns the number of times IncMatchesResolved was called.
func (m *Mock) MatchesResolvedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesResolved
}

// MatchesCancelledCount returns the number of times IncMatchesCancelled was called.
func (m *Mock) MatchesCancelledCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesCancelled
}

// TournamentsFinalizedCount returns the number of times IncTournamentsFinalized was called.
func (m *Mock) TournamentsFinalizedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tournamentsFinalized
}

// MatchDurations returns the observed match durations.
func (m *Mock) MatchDurations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.matchDurations...)
}

// NotifSentCount returns the number of times IncNotifSent was called.
func (m *Mock) NotifSentCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent
}

// NotifFailedCount returns the number of times IncNotifFailed was called.
func (m *Mock) NotifFailedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed
}

// StartupTime returns the last value passed to SetStartupTime.
func (m *Mock) StartupTime() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.startupTime
}
