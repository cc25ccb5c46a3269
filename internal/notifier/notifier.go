package notifier

import (
	"github.com/Rogerxyz26/kingsturnier/internal/tournament"
)

// Notifier defines a high-level interface for reacting to tournament events.
// This decouples the engine from the specific notification provider (e.g., Slack).
type Notifier interface {
	// StateChanged fires after every successful mutation. It carries no
	// payload; interested parties re-read whatever state they need.
	StateChanged()
	// MatchResolved fires when a winner has been chosen at a table.
	MatchResolved(rec tournament.MatchRecord, winnerName, loserName string)
	// TournamentFinalized fires when a tournament is archived, with the
	// final standings of that tournament.
	TournamentFinalized(entry *tournament.ArchiveEntry, standings []tournament.Row)
}

// Noop is a Notifier that does nothing. The engine falls back to it when no
// provider is configured.
type Noop struct{}

func (Noop) StateChanged()                                                   {}
func (Noop) MatchResolved(tournament.MatchRecord, string, string)            {}
func (Noop) TournamentFinalized(*tournament.ArchiveEntry, []tournament.Row)  {}

// Multi fans events out to several notifiers in order.
type Multi []Notifier

func (m Multi) StateChanged() {
	for _, n := range m {
		n.StateChanged()
	}
}

func (m Multi) MatchResolved(rec tournament.MatchRecord, winnerName, loserName string) {
	for _, n := range m {
		n.MatchResolved(rec, winnerName, loserName)
	}
}

func (m Multi) TournamentFinalized(entry *tournament.ArchiveEntry, standings []tournament.Row) {
	for _, n := range m {
		n.TournamentFinalized(entry, standings)
	}
}
