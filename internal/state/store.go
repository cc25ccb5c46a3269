package state

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/Rogerxyz26/kingsturnier/internal/tournament"
)

// SchemaVersion tags every stored snapshot. Payloads with a different
// version are ignored on load rather than guessed at.
const SchemaVersion = 1

// snapshotKey is the single row under which the current state lives.
const snapshotKey = "current"

// store persists snapshots into the snapshots table as msgpack blobs.
type store struct {
	db *sql.DB
	mu sync.Mutex
}

// New creates a new snapshot Store backed by the given database.
func New(db *sql.DB) Store {
	return &store{db: db}
}

func (s *store) Load() (*tournament.State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var version int
	var payload []byte
	err := s.db.QueryRow(
		"SELECT version, payload FROM snapshots WHERE key = ?", snapshotKey,
	).Scan(&version, &payload)
	if err == sql.ErrNoRows {
		return nil, false
	}
	if err != nil {
		log.Warn("Failed to read state snapshot, starting fresh", "error", err)
		return nil, false
	}
	if version != SchemaVersion {
		log.Warn("Stored snapshot has unknown schema version, starting fresh", "version", version, "want", SchemaVersion)
		return nil, false
	}

	var st tournament.State
	if err := msgpack.Unmarshal(payload, &st); err != nil {
		log.Warn("Failed to decode state snapshot, starting fresh", "error", err)
		return nil, false
	}
	st.EnsureShape()
	return &st, true
}

func (s *store) Save(st *tournament.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload, err := msgpack.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode state snapshot: %w", err)
	}

	_, err = s.db.Exec(`
		INSERT INTO snapshots (key, version, saved_at, payload)
		VALUES (?, ?, strftime('%s','now'), ?)
		ON CONFLICT(key) DO UPDATE SET
			version = excluded.version,
			saved_at = excluded.saved_at,
			payload = excluded.payload;
	`, snapshotKey, SchemaVersion, payload)
	if err != nil {
		return fmt.Errorf("failed to write state snapshot: %w", err)
	}
	return nil
}
