package tournament

import "strings"

// Finalize snapshots the current tournament into a new archive entry
// (prepended, included in the overall standings by default), marks the
// tournament finished and recomputes the lifetime cache. The champion is the
// top-ranked player, or nobody when no games were played; the participant
// count is the number of currently active players, not of players with games.
func (s *State) Finalize(nowMs int64) *ArchiveEntry {
	t := s.Tournament

	rows := s.Standings()
	championID := ""
	if len(rows) > 0 {
		championID = rows[0].PlayerID
	}

	entry := &ArchiveEntry{
		ID:                t.ID,
		Name:              t.Name,
		EndedAt:           nowMs,
		ParticipantsCount: len(s.ActivePlayers()),
		ChampionID:        championID,
		IncludedInOverall: true,
		Snapshot: TournamentSnapshot{
			Matches:   append([]MatchRecord(nil), t.Matches...),
			StatsByID: cloneStats(t.StatsByID),
			Name:      t.Name,
		},
	}
	s.Archive.Tournaments = append([]*ArchiveEntry{entry}, s.Archive.Tournaments...)
	s.RecomputeLifetime()

	t.Phase = PhaseFinished
	t.EndedAt = nowMs
	return entry
}

// RecomputeLifetime rebuilds the lifetime cache from scratch over every
// archive entry that is included in the overall standings. For an entry with
// R ranked rows the row at index idx earns R-idx tournament points (winner R,
// last 1); wins, losses and games accumulate as-is; tournamentsPlayed counts
// entries in which the player actually played a game.
func (s *State) RecomputeLifetime() {
	life := map[string]*LifetimeStats{}
	get := func(id string) *LifetimeStats {
		ls, ok := life[id]
		if !ok {
			ls = &LifetimeStats{}
			life[id] = ls
		}
		return ls
	}

	for _, entry := range s.Archive.Tournaments {
		if !entry.IncludedInOverall {
			continue
		}
		rows := RankStats(entry.Snapshot.StatsByID, s.PlayerName)
		for idx, r := range rows {
			ls := get(r.PlayerID)
			ls.Wins += r.Wins
			ls.Losses += r.Losses
			ls.Games += r.Games
			if pts := len(rows) - idx; pts > 0 {
				ls.TotalTournamentPoints += pts
			}
		}
		for _, r := range rows {
			if r.Games > 0 {
				get(r.PlayerID).TournamentsPlayed++
			}
		}
	}

	s.Archive.LifetimeByID = life
}

// Clone deep-copies an archive entry.
func (e *ArchiveEntry) Clone() *ArchiveEntry {
	ce := *e
	ce.Snapshot = TournamentSnapshot{
		Matches:   append([]MatchRecord(nil), e.Snapshot.Matches...),
		StatsByID: cloneStats(e.Snapshot.StatsByID),
		Name:      e.Snapshot.Name,
	}
	return &ce
}

// ArchiveEntryByID returns the archived tournament with the given id, or nil.
func (s *State) ArchiveEntryByID(id string) *ArchiveEntry {
	for _, e := range s.Archive.Tournaments {
		if e.ID == id {
			return e
		}
	}
	return nil
}

// SetArchiveIncluded flips an entry's participation in the overall standings
// and recomputes the lifetime cache.
func (s *State) SetArchiveIncluded(id string, included bool) error {
	e := s.ArchiveEntryByID(id)
	if e == nil {
		return notFoundf("no archived tournament %s", id)
	}
	e.IncludedInOverall = included
	s.RecomputeLifetime()
	return nil
}

// DeleteArchiveEntry removes an archived tournament for good and recomputes
// the lifetime cache.
func (s *State) DeleteArchiveEntry(id string) error {
	for i, e := range s.Archive.Tournaments {
		if e.ID == id {
			s.Archive.Tournaments = append(s.Archive.Tournaments[:i], s.Archive.Tournaments[i+1:]...)
			s.RecomputeLifetime()
			return nil
		}
	}
	return notFoundf("no archived tournament %s", id)
}

// RenameArchiveEntry updates an archived tournament's display name.
func (s *State) RenameArchiveEntry(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return validationf("tournament name must not be empty")
	}
	e := s.ArchiveEntryByID(id)
	if e == nil {
		return notFoundf("no archived tournament %s", id)
	}
	e.Name = name
	return nil
}
