package state

import "github.com/Rogerxyz26/kingsturnier/internal/tournament"

// Store persists the whole application state tree as one snapshot.
type Store interface {
	// Load returns the previously saved state. The second return is false
	// when nothing usable is stored: missing row, undecodable payload or an
	// unknown schema version all fall back to a fresh default state, never
	// to an error (a broken snapshot must not take the application down).
	Load() (*tournament.State, bool)
	// Save writes the snapshot through. Called after every mutation.
	Save(s *tournament.State) error
}
