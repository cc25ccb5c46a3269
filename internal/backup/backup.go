// Package backup serializes the whole application state into a portable,
// version-tagged JSON envelope and validates such envelopes on the way back
// in. A failed import never touches the live state.
package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Rogerxyz26/kingsturnier/internal/tournament"
)

// FormatVersion tags exported envelopes. Imports with any other version are
// rejected rather than migrated; there is only one format so far.
const FormatVersion = 1

// ErrInvalidBackup marks payloads that are not a recognizable backup. The
// wrapped detail is safe to show to the operator.
var ErrInvalidBackup = errors.New("invalid backup")

// Envelope is the on-disk backup format.
type Envelope struct {
	Version   int               `json:"version"`
	CreatedAt time.Time         `json:"createdAt"`
	State     *tournament.State `json:"state"`
}

// Export renders the state as an indented JSON envelope.
func Export(st *tournament.State, now time.Time) ([]byte, error) {
	env := Envelope{
		Version:   FormatVersion,
		CreatedAt: now.UTC(),
		State:     st,
	}
	data, err := json.MarshalIndent(env, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode backup: %w", err)
	}
	return data, nil
}

// Import parses and validates a backup payload. The returned state is fully
// detached and shape-repaired; nothing is applied anywhere.
func Import(data []byte) (*tournament.State, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var env Envelope
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: not a JSON backup envelope: %v", ErrInvalidBackup, err)
	}
	if env.Version != FormatVersion {
		return nil, fmt.Errorf("%w: unsupported format version %d", ErrInvalidBackup, env.Version)
	}
	if env.State == nil {
		return nil, fmt.Errorf("%w: envelope has no state object", ErrInvalidBackup)
	}
	if err := validate(env.State); err != nil {
		return nil, err
	}
	env.State.EnsureShape()
	return env.State, nil
}

// validate rejects state trees that would violate the core invariants
// before they ever reach the engine.
func validate(st *tournament.State) error {
	seen := make(map[string]bool, len(st.Players))
	for _, p := range st.Players {
		if p == nil || p.ID == "" {
			return fmt.Errorf("%w: player entry without an id", ErrInvalidBackup)
		}
		if p.Name == "" {
			return fmt.Errorf("%w: player %s has no name", ErrInvalidBackup, p.ID)
		}
		if seen[p.ID] {
			return fmt.Errorf("%w: duplicate player id %s", ErrInvalidBackup, p.ID)
		}
		seen[p.ID] = true
	}

	if t := st.Tournament; t != nil {
		for id, s := range t.StatsByID {
			if s == nil {
				return fmt.Errorf("%w: stats entry for %s is empty", ErrInvalidBackup, id)
			}
			if s.Wins < 0 || s.Losses < 0 || s.Games != s.Wins+s.Losses {
				return fmt.Errorf("%w: inconsistent stats for %s", ErrInvalidBackup, id)
			}
		}
	}

	if st.Archive != nil {
		for _, e := range st.Archive.Tournaments {
			if e == nil || e.ID == "" {
				return fmt.Errorf("%w: archive entry without an id", ErrInvalidBackup)
			}
		}
	}
	return nil
}
