package tournament

// StartAuto moves the tournament into the live phase. It requires at least
// two active players, otherwise nothing changes. StartedAt is stamped only
// the first time; restarting a stopped tournament keeps the original stamp.
// Tables holding a running or await_winner match survive; idle and empty
// tables are cleared so the scheduler can reseat from the waitlist.
func (s *State) StartAuto(nowMs int64) error {
	if len(s.ActivePlayers()) < 2 {
		return validationf("at least 2 active players are required to start")
	}

	t := s.Tournament
	t.Phase = PhaseLive
	if t.StartedAt == 0 {
		t.StartedAt = nowMs
	}
	t.EndedAt = 0

	s.SyncWaitlist()
	for _, tb := range t.Tables {
		if tb.Match != nil && (tb.Match.Status == StatusRunning || tb.Match.Status == StatusAwaitWinner) {
			continue
		}
		tb.Match = nil
	}
	return nil
}

// ResetTournament replaces the working tournament with a fresh setup-phase
// one. Players survive; stats, matches, tables and waitlist do not.
func (s *State) ResetTournament() {
	s.Tournament = newTournament()
	s.EnsureShape()
}

// SetTableEnabled flips a table's availability. Disabling forcibly clears
// its match; the occupants are only re-added because the next waitlist sync
// picks up any active, unseated player.
func (s *State) SetTableEnabled(tableID string, enabled bool) error {
	tb := s.Tournament.TableByID(tableID)
	if tb == nil {
		return notFoundf("no such table %s", tableID)
	}
	tb.Enabled = enabled
	if !enabled {
		tb.Match = nil
	}
	return nil
}

// SetAsset stores a cosmetic binary asset under the given key.
func (s *State) SetAsset(key string, data []byte) error {
	if key == "" {
		return validationf("asset key must not be empty")
	}
	s.Assets[key] = append([]byte(nil), data...)
	return nil
}

// SetTableCount reconfigures the number of tables, clamped to the supported
// range. Tables still in range keep their state, match included; tables
// beyond the new count are dropped together with whatever match they held.
func (s *State) SetTableCount(n int) {
	s.Tournament.TableCount = ClampTableCount(n)
	s.Tournament.rebuildTables()
}
