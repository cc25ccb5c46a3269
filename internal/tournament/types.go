package tournament

import (
	"fmt"

	"github.com/google/uuid"
)

// Phase is the lifecycle phase of a tournament.
type Phase string

const (
	PhaseSetup    Phase = "setup"
	PhaseLive     Phase = "live"
	PhaseFinished Phase = "finished"
)

// MatchStatus is the state of a seated match on a table.
type MatchStatus string

const (
	StatusIdle        MatchStatus = "idle"
	StatusRunning     MatchStatus = "running"
	StatusAwaitWinner MatchStatus = "await_winner"
)

const (
	// MinTableCount and MaxTableCount bound the venue's table configuration.
	MinTableCount = 1
	MaxTableCount = 4

	// DefaultTableCount is used for freshly created tournaments.
	DefaultTableCount = 4
)

// Player is a registered player. Players are created inactive and only
// eligible for seating while active.
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Active    bool   `json:"active"`
	CreatedAt int64  `json:"createdAt"`
}

// Stats holds a player's win/loss counters for a single tournament.
// Games is always Wins + Losses.
type Stats struct {
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Games  int `json:"games"`
}

// ActiveMatch is a pair of players seated at a table. It exists from seating
// until a winner is chosen, the match is cancelled, or a participant leaves.
type ActiveMatch struct {
	TableID string      `json:"tableId"`
	Phase   Phase       `json:"phase"`
	AID     string      `json:"aId"`
	BID     string      `json:"bId"`
	Status  MatchStatus `json:"status"`
	StartAt int64       `json:"startAt,omitempty"`
	AwaitAt int64       `json:"awaitAt,omitempty"`

	// ElapsedMs is computed at read time for running matches; it is never
	// persisted as truth, StartAt is.
	ElapsedMs int64 `json:"elapsedMs,omitempty"`
}

// Table identity is positional: table_1..table_N. Changing the table count
// keeps tables whose index is still in range, match included.
type Table struct {
	ID      string       `json:"id"`
	Label   string       `json:"label"`
	Enabled bool         `json:"enabled"`
	Match   *ActiveMatch `json:"match,omitempty"`
}

// MatchRecord is an immutable history entry for a resolved match. Records
// keep player ids even after the player is deleted.
type MatchRecord struct {
	ID         string `json:"id"`
	At         int64  `json:"at"`
	Phase      Phase  `json:"phase"`
	TableLabel string `json:"tableLabel"`
	TableID    string `json:"tableId"`
	AID        string `json:"aId"`
	BID        string `json:"bId"`
	WinnerID   string `json:"winnerId"`
	DurationMs int64  `json:"durationMs"`
}

// Tournament is the single working tournament. Matches are stored in
// reverse-chronological order.
type Tournament struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Phase      Phase             `json:"phase"`
	StartedAt  int64             `json:"startedAt,omitempty"`
	EndedAt    int64             `json:"endedAt,omitempty"`
	TableCount int               `json:"tableCount"`
	AutoFill   bool              `json:"autoFill"`
	Tables     []*Table          `json:"tables"`
	Waitlist   []string          `json:"waitlist"`
	Matches    []MatchRecord     `json:"matches"`
	StatsByID  map[string]*Stats `json:"statsById"`
}

// TournamentSnapshot is the frozen part of an archive entry.
type TournamentSnapshot struct {
	Matches   []MatchRecord     `json:"matches"`
	StatsByID map[string]*Stats `json:"statsById"`
	Name      string            `json:"name"`
}

// ArchiveEntry is the durable record of one finalized tournament.
// IncludedInOverall controls whether it feeds the lifetime standings.
type ArchiveEntry struct {
	ID                string             `json:"id"`
	Name              string             `json:"name"`
	EndedAt           int64              `json:"endedAt"`
	ParticipantsCount int                `json:"participantsCount"`
	ChampionID        string             `json:"championId,omitempty"`
	IncludedInOverall bool               `json:"includedInOverall"`
	Snapshot          TournamentSnapshot `json:"snapshot"`
}

// LifetimeStats aggregates a player's results over all included archive
// entries. It is a derived cache, fully recomputable at any time.
type LifetimeStats struct {
	Wins                  int `json:"wins"`
	Losses                int `json:"losses"`
	Games                 int `json:"games"`
	TournamentsPlayed     int `json:"tournamentsPlayed"`
	TotalTournamentPoints int `json:"totalTournamentPoints"`
}

// Archive holds finalized tournaments (newest first) and the lifetime cache.
type Archive struct {
	Tournaments  []*ArchiveEntry           `json:"tournaments"`
	LifetimeByID map[string]*LifetimeStats `json:"lifetimeById"`
}

// State is the whole application state tree. It is owned by a single Engine;
// nothing mutates it concurrently.
type State struct {
	Players    []*Player         `json:"players"`
	Tournament *Tournament       `json:"tournament"`
	Archive    *Archive          `json:"archive"`
	Assets     map[string][]byte `json:"assets,omitempty"`
}

// NewState returns an empty state with a fresh setup-phase tournament.
func NewState() *State {
	s := &State{
		Players: []*Player{},
		Archive: &Archive{
			Tournaments:  []*ArchiveEntry{},
			LifetimeByID: map[string]*LifetimeStats{},
		},
		Assets: map[string][]byte{},
	}
	s.Tournament = newTournament()
	s.EnsureShape()
	return s
}

func newTournament() *Tournament {
	return &Tournament{
		ID:         uuid.NewString(),
		Phase:      PhaseSetup,
		TableCount: DefaultTableCount,
		AutoFill:   true,
		Tables:     []*Table{},
		Waitlist:   []string{},
		Matches:    []MatchRecord{},
		StatsByID:  map[string]*Stats{},
	}
}

// EnsureShape repairs nil collections and rebuilds the table list so that
// tables table_1..table_N exist, preserving tables still in range. Loaded or
// imported snapshots pass through here before any operation touches them.
func (s *State) EnsureShape() {
	if s.Players == nil {
		s.Players = []*Player{}
	}
	if s.Archive == nil {
		s.Archive = &Archive{}
	}
	if s.Archive.Tournaments == nil {
		s.Archive.Tournaments = []*ArchiveEntry{}
	}
	if s.Archive.LifetimeByID == nil {
		s.Archive.LifetimeByID = map[string]*LifetimeStats{}
	}
	if s.Assets == nil {
		s.Assets = map[string][]byte{}
	}
	if s.Tournament == nil {
		s.Tournament = newTournament()
	}
	t := s.Tournament
	if t.Waitlist == nil {
		t.Waitlist = []string{}
	}
	if t.Matches == nil {
		t.Matches = []MatchRecord{}
	}
	if t.StatsByID == nil {
		t.StatsByID = map[string]*Stats{}
	}
	t.TableCount = ClampTableCount(t.TableCount)
	t.rebuildTables()
}

// ClampTableCount bounds n to the supported table range.
func ClampTableCount(n int) int {
	if n < MinTableCount {
		return MinTableCount
	}
	if n > MaxTableCount {
		return MaxTableCount
	}
	return n
}

// rebuildTables regenerates the positional table list for the current
// TableCount. Tables whose index survives keep their enabled flag and any
// in-progress match; out-of-range tables are dropped with whatever they held.
func (t *Tournament) rebuildTables() {
	existing := make(map[string]*Table, len(t.Tables))
	for _, tb := range t.Tables {
		existing[tb.ID] = tb
	}
	next := make([]*Table, 0, t.TableCount)
	for i := 1; i <= t.TableCount; i++ {
		id := TableID(i)
		if old, ok := existing[id]; ok {
			next = append(next, old)
			continue
		}
		next = append(next, &Table{
			ID:      id,
			Label:   fmt.Sprintf("Table %d", i),
			Enabled: true,
		})
	}
	t.Tables = next
}

// TableID returns the positional identity for table index i (1-based).
func TableID(i int) string {
	return fmt.Sprintf("table_%d", i)
}

// TableByID returns the table with the given id, or nil.
func (t *Tournament) TableByID(id string) *Table {
	for _, tb := range t.Tables {
		if tb.ID == id {
			return tb
		}
	}
	return nil
}

// PlayerByID returns the registered player with the given id, or nil.
func (s *State) PlayerByID(id string) *Player {
	for _, p := range s.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// UnknownPlayerName is rendered for ids whose player has been deleted.
const UnknownPlayerName = "—"

// PlayerName resolves a player id to its display name. Deleted players in
// historical match records resolve to UnknownPlayerName.
func (s *State) PlayerName(id string) string {
	if p := s.PlayerByID(id); p != nil {
		return p.Name
	}
	return UnknownPlayerName
}

// EnsureStats guarantees a stats entry exists for the given player id.
func (t *Tournament) EnsureStats(id string) *Stats {
	st, ok := t.StatsByID[id]
	if !ok {
		st = &Stats{}
		t.StatsByID[id] = st
	}
	return st
}

// ActivePlayers returns the players currently eligible for seating.
func (s *State) ActivePlayers() []*Player {
	var out []*Player
	for _, p := range s.Players {
		if p.Active {
			out = append(out, p)
		}
	}
	return out
}

// SeatedIDs returns the set of player ids currently seated at any table.
func (t *Tournament) SeatedIDs() map[string]bool {
	seated := make(map[string]bool)
	for _, tb := range t.Tables {
		if tb.Match == nil {
			continue
		}
		if tb.Match.AID != "" {
			seated[tb.Match.AID] = true
		}
		if tb.Match.BID != "" {
			seated[tb.Match.BID] = true
		}
	}
	return seated
}

// Clone deep-copies the whole state tree. Archive snapshots and HTTP reads
// rely on this to hand out data untethered from the live tree.
func (s *State) Clone() *State {
	out := &State{
		Players: make([]*Player, len(s.Players)),
		Assets:  make(map[string][]byte, len(s.Assets)),
	}
	for i, p := range s.Players {
		cp := *p
		out.Players[i] = &cp
	}
	for k, v := range s.Assets {
		out.Assets[k] = append([]byte(nil), v...)
	}
	out.Tournament = s.Tournament.clone()
	out.Archive = &Archive{
		Tournaments:  make([]*ArchiveEntry, len(s.Archive.Tournaments)),
		LifetimeByID: cloneLifetime(s.Archive.LifetimeByID),
	}
	for i, e := range s.Archive.Tournaments {
		out.Archive.Tournaments[i] = e.Clone()
	}
	return out
}

func (t *Tournament) clone() *Tournament {
	ct := *t
	ct.Tables = make([]*Table, len(t.Tables))
	for i, tb := range t.Tables {
		ctb := *tb
		if tb.Match != nil {
			m := *tb.Match
			ctb.Match = &m
		}
		ct.Tables[i] = &ctb
	}
	ct.Waitlist = append([]string(nil), t.Waitlist...)
	ct.Matches = append([]MatchRecord(nil), t.Matches...)
	ct.StatsByID = cloneStats(t.StatsByID)
	return &ct
}

func cloneStats(in map[string]*Stats) map[string]*Stats {
	out := make(map[string]*Stats, len(in))
	for k, v := range in {
		cv := *v
		out[k] = &cv
	}
	return out
}

func cloneLifetime(in map[string]*LifetimeStats) map[string]*LifetimeStats {
	out := make(map[string]*LifetimeStats, len(in))
	for k, v := range in {
		cv := *v
		out[k] = &cv
	}
	return out
}
