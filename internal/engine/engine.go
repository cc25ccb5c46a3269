// Package engine owns the application state tree and runs every mutation
// through the same pipeline: apply, re-sync the waitlist, auto-fill free
// tables, persist, notify. A single mutex serializes operations, so no
// caller ever observes a half-applied mutation.
package engine

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Rogerxyz26/kingsturnier/internal/metrics"
	"github.com/Rogerxyz26/kingsturnier/internal/notifier"
	"github.com/Rogerxyz26/kingsturnier/internal/state"
	"github.com/Rogerxyz26/kingsturnier/internal/tournament"
)

// Engine is the tournament lifecycle controller.
type Engine struct {
	mu       sync.Mutex
	state    *tournament.State
	store    state.Store
	notifier notifier.Notifier
	metrics  metrics.Metrics
	now      func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the wall clock, used by tests to pin timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New loads the persisted state (or starts from a default tree when nothing
// usable is stored) and returns a ready Engine.
func New(store state.Store, n notifier.Notifier, m metrics.Metrics, opts ...Option) *Engine {
	e := &Engine{
		store:    store,
		notifier: n,
		metrics:  m,
		now:      time.Now,
	}
	if e.notifier == nil {
		e.notifier = notifier.Noop{}
	}
	for _, opt := range opts {
		opt(e)
	}

	if st, ok := store.Load(); ok {
		e.state = st
		log.Info("Loaded persisted state", "players", len(st.Players), "archived", len(st.Archive.Tournaments))
	} else {
		e.state = tournament.NewState()
		log.Info("No usable persisted state, starting fresh")
	}
	e.state.SyncWaitlist()
	return e
}

func (e *Engine) nowMs() int64 {
	return e.now().UnixMilli()
}

// commit finishes every successful mutation: waitlist sync, auto-fill,
// write-through persistence, change notification — in that order.
func (e *Engine) commit() {
	e.state.SyncWaitlist()
	e.state.AutoFill()
	if err := e.store.Save(e.state); err != nil {
		log.Error("Failed to persist state", "error", err)
	}
	e.notifier.StateChanged()
}

func logRejected(op string, err error) {
	if errors.Is(err, tournament.ErrInvalidTransition) {
		log.Warn("Rejected transition", "op", op, "reason", err)
	}
}

/* ---------- player registry ---------- */

// AddPlayer registers a new, inactive player. Names are unique
// case-insensitively.
func (e *Engine) AddPlayer(name string) (tournament.Player, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, err := e.state.AddPlayer(name, e.nowMs())
	if err != nil {
		return tournament.Player{}, err
	}
	log.Info("Added player", "player", p.Name, "id", p.ID)
	e.commit()
	return *p, nil
}

// RenamePlayer changes a player's display name, rejecting collisions with
// any other registered name.
func (e *Engine) RenamePlayer(id, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.state.RenamePlayer(id, name); err != nil {
		return err
	}
	e.commit()
	return nil
}

// DeletePlayer removes a player entirely: registry, waitlist, any seated
// match (both occupants) and the current stats entry. Historical match
// records keep the id and resolve to a placeholder name.
func (e *Engine) DeletePlayer(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.state.RemovePlayer(id); err != nil {
		return err
	}
	log.Info("Deleted player", "id", id)
	e.commit()
	return nil
}

// SetPlayerActive toggles seating eligibility. Deactivating a seated player
// clears that table's match immediately, with no history recorded.
func (e *Engine) SetPlayerActive(id string, active bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.state.SetPlayerActive(id, active); err != nil {
		return err
	}
	e.commit()
	return nil
}

/* ---------- tournament lifecycle ---------- */

// StartTournament moves the tournament to live, preserving in-flight
// matches. Fails with a validation error below two active players.
func (e *Engine) StartTournament() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.state.StartAuto(e.nowMs()); err != nil {
		return err
	}
	log.Info("Tournament started", "id", e.state.Tournament.ID)
	e.commit()
	return nil
}

// ResetTournament discards the working tournament and starts a fresh one in
// the setup phase. Players are retained.
func (e *Engine) ResetTournament() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.ResetTournament()
	log.Info("Tournament reset", "id", e.state.Tournament.ID)
	e.commit()
}

// FinalizeTournament archives the working tournament and recomputes the
// lifetime standings. Returns the new archive entry.
func (e *Engine) FinalizeTournament() (*tournament.ArchiveEntry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	entry := e.state.Finalize(e.nowMs())
	e.metrics.IncTournamentsFinalized()

	standings := tournament.RankStats(entry.Snapshot.StatsByID, e.state.PlayerName)
	e.notifier.TournamentFinalized(entry.Clone(), standings)

	log.Info("Tournament finalized", "id", entry.ID, "participants", entry.ParticipantsCount, "champion", e.state.PlayerName(entry.ChampionID))
	e.commit()
	return entry.Clone(), nil
}

// RenameTournament sets the working tournament's display name.
func (e *Engine) RenameTournament(name string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Tournament.Name = strings.TrimSpace(name)
	e.commit()
}

// SetTableCount reconfigures the table count (clamped to the supported
// range), keeping in-range tables and their matches.
func (e *Engine) SetTableCount(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.SetTableCount(n)
	e.commit()
}

// SetAutoFill toggles automatic seating from the waitlist.
func (e *Engine) SetAutoFill(enabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Tournament.AutoFill = enabled
	e.commit()
}

// SetTableEnabled enables or disables a table. Disabling clears its match;
// the occupants are not explicitly re-queued — the sync pass that follows
// every mutation re-adds any active, unseated player anyway, which keeps
// disable and cancel observably equivalent.
func (e *Engine) SetTableEnabled(tableID string, enabled bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.state.SetTableEnabled(tableID, enabled); err != nil {
		return err
	}
	e.commit()
	return nil
}

/* ---------- match state machine ---------- */

// StartMatch begins play on a table.
func (e *Engine) StartMatch(tableID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.state.StartMatch(tableID, e.nowMs()); err != nil {
		logRejected("start match", err)
		return err
	}
	e.commit()
	return nil
}

// StopMatch ends play and waits for the operator to pick the winner.
func (e *Engine) StopMatch(tableID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.state.StopMatch(tableID, e.nowMs()); err != nil {
		logRejected("stop match", err)
		return err
	}
	e.commit()
	return nil
}

// ChooseWinner resolves a match, updates stats and history, and frees the
// table for the next waitlist pair.
func (e *Engine) ChooseWinner(tableID, winnerID string) (tournament.MatchRecord, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	rec, err := e.state.ChooseWinner(tableID, winnerID, e.nowMs())
	if err != nil {
		logRejected("choose winner", err)
		return tournament.MatchRecord{}, err
	}

	loserID := rec.AID
	if loserID == rec.WinnerID {
		loserID = rec.BID
	}
	e.metrics.IncMatchesResolved()
	e.metrics.ObserveMatchDuration(float64(rec.DurationMs) / 1000)
	e.notifier.MatchResolved(rec, e.state.PlayerName(rec.WinnerID), e.state.PlayerName(loserID))

	log.Info("Match resolved", "table", tableID, "winner", e.state.PlayerName(rec.WinnerID), "duration_ms", rec.DurationMs)
	e.commit()
	return rec, nil
}

// CancelMatch clears a table without recording anything.
func (e *Engine) CancelMatch(tableID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.state.CancelMatch(tableID); err != nil {
		logRejected("cancel match", err)
		return err
	}
	e.metrics.IncMatchesCancelled()
	e.commit()
	return nil
}

/* ---------- waitlist ---------- */

// ReorderWaitlist moves a waiting player to the given position. Manual order
// is the seating priority and survives subsequent syncs.
func (e *Engine) ReorderWaitlist(playerID string, index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.state.ReorderWaitlist(playerID, index); err != nil {
		return err
	}
	e.commit()
	return nil
}

/* ---------- archive ---------- */

// SetArchiveIncluded toggles an archived tournament in or out of the
// lifetime standings.
func (e *Engine) SetArchiveIncluded(id string, included bool) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.state.SetArchiveIncluded(id, included); err != nil {
		return err
	}
	e.commit()
	return nil
}

// RenameArchiveEntry updates an archived tournament's name.
func (e *Engine) RenameArchiveEntry(id, name string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.state.RenameArchiveEntry(id, name); err != nil {
		return err
	}
	e.commit()
	return nil
}

// DeleteArchiveEntry removes an archived tournament and recomputes the
// lifetime standings without it.
func (e *Engine) DeleteArchiveEntry(id string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.state.DeleteArchiveEntry(id); err != nil {
		return err
	}
	e.commit()
	return nil
}

/* ---------- assets ---------- */

// SetAsset stores a cosmetic binary asset (venue logo and the like) in the
// state tree so it travels with backups.
func (e *Engine) SetAsset(key string, data []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.state.SetAsset(key, data); err != nil {
		return err
	}
	e.commit()
	return nil
}

// Asset returns a stored asset.
func (e *Engine) Asset(key string) ([]byte, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	data, ok := e.state.Assets[key]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), data...), true
}

/* ---------- backup ---------- */

// ExportState deep-copies the whole state tree for backup export.
func (e *Engine) ExportState() *tournament.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// ReplaceState swaps in an imported state wholesale. The caller validates
// the payload first; by the time this runs the import is committed to.
func (e *Engine) ReplaceState(st *tournament.State) {
	e.mu.Lock()
	defer e.mu.Unlock()

	st.EnsureShape()
	e.state = st
	log.Info("State replaced from backup", "players", len(st.Players), "archived", len(st.Archive.Tournaments))
	e.commit()
}

/* ---------- reads ---------- */

// Snapshot returns a deep copy of the state tree.
func (e *Engine) Snapshot() *tournament.State {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := e.state.Clone()
	now := e.nowMs()
	for _, tb := range snap.Tournament.Tables {
		m := tb.Match
		if m != nil && m.StartAt > 0 && m.Status != tournament.StatusIdle {
			m.ElapsedMs = now - m.StartAt
		}
	}
	return snap
}

// Standings returns the current tournament's ranked rows.
func (e *Engine) Standings() []tournament.Row {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Standings()
}

// Lifetime returns the cross-tournament standings.
func (e *Engine) Lifetime() []tournament.LifetimeRow {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.LifetimeStandings()
}

// Players returns all registered players.
func (e *Engine) Players() []tournament.Player {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]tournament.Player, len(e.state.Players))
	for i, p := range e.state.Players {
		out[i] = *p
	}
	return out
}

// ArchiveEntries returns the archived tournaments, newest first.
func (e *Engine) ArchiveEntries() []*tournament.ArchiveEntry {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]*tournament.ArchiveEntry, len(e.state.Archive.Tournaments))
	for i, entry := range e.state.Archive.Tournaments {
		out[i] = entry.Clone()
	}
	return out
}

// Profile is a player's current-tournament view: counters plus their most
// recent matches.
type Profile struct {
	Player tournament.Player        `json:"player"`
	Stats  tournament.Stats         `json:"stats"`
	Quote  float64                  `json:"quote"`
	Recent []tournament.MatchRecord `json:"recent"`
}

// recentMatchLimit caps the profile history.
const recentMatchLimit = 30

// PlayerProfile assembles the profile for one player.
func (e *Engine) PlayerProfile(id string) (Profile, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	p := e.state.PlayerByID(id)
	if p == nil {
		return Profile{}, fmt.Errorf("%w: no such player %s", tournament.ErrNotFound, id)
	}

	prof := Profile{Player: *p}
	if st, ok := e.state.Tournament.StatsByID[id]; ok {
		prof.Stats = *st
	}
	games := prof.Stats.Games
	if games == 0 {
		games = prof.Stats.Wins + prof.Stats.Losses
	}
	if games > 0 {
		prof.Quote = float64(prof.Stats.Wins) / float64(games)
	}

	for _, rec := range e.state.Tournament.Matches {
		if rec.AID == id || rec.BID == id {
			prof.Recent = append(prof.Recent, rec)
			if len(prof.Recent) == recentMatchLimit {
				break
			}
		}
	}
	return prof, nil
}
