package tournament

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// AutoFill seats waitlist pairs onto free enabled tables, front of the list
// first. Tables fill in their fixed positional order: table_1 before table_2
// and so on. There is no rotation, so with equal inputs table 1 always fills
// first. A no-op while auto-fill is disabled.
func (s *State) AutoFill() {
	t := s.Tournament
	if !t.AutoFill {
		return
	}

	s.SyncWaitlist()

	for _, tb := range t.Tables {
		if !tb.Enabled || tb.Match != nil {
			continue
		}
		if len(t.Waitlist) < 2 {
			break
		}
		aID, bID := t.Waitlist[0], t.Waitlist[1]
		t.Waitlist = t.Waitlist[2:]
		tb.Match = &ActiveMatch{
			TableID: tb.ID,
			Phase:   t.Phase,
			AID:     aID,
			BID:     bID,
			Status:  StatusIdle,
		}
		t.EnsureStats(aID)
		t.EnsureStats(bID)
		log.Debug("seated match", "table", tb.ID, "a", aID, "b", bID)
	}
}

// StartMatch moves an idle match to running and stamps its start time.
// Valid only from idle; anything else is a rejected transition.
func (s *State) StartMatch(tableID string, nowMs int64) error {
	tb := s.Tournament.TableByID(tableID)
	if tb == nil {
		return notFoundf("no such table %s", tableID)
	}
	if tb.Match == nil {
		return transitionf("cannot start: %s has no seated match", tableID)
	}
	if tb.Match.Status != StatusIdle {
		return transitionf("cannot start: match on %s is %s", tableID, tb.Match.Status)
	}
	tb.Match.Status = StatusRunning
	tb.Match.StartAt = nowMs
	tb.Match.AwaitAt = 0
	return nil
}

// StopMatch moves a running match to await_winner. The clock keeps counting:
// the recorded duration runs until a winner is actually chosen.
func (s *State) StopMatch(tableID string, nowMs int64) error {
	tb := s.Tournament.TableByID(tableID)
	if tb == nil {
		return notFoundf("no such table %s", tableID)
	}
	if tb.Match == nil {
		return transitionf("cannot stop: %s has no seated match", tableID)
	}
	if tb.Match.Status != StatusRunning {
		return transitionf("cannot stop: match on %s is %s", tableID, tb.Match.Status)
	}
	tb.Match.Status = StatusAwaitWinner
	tb.Match.AwaitAt = nowMs
	return nil
}

// ChooseWinner resolves an await_winner match: the winner gains a win, the
// other seat a loss, both gain a game; an immutable MatchRecord is prepended
// to the history; the table clears and both participants rejoin the back of
// the waitlist while still active.
func (s *State) ChooseWinner(tableID, winnerID string, nowMs int64) (MatchRecord, error) {
	t := s.Tournament
	tb := t.TableByID(tableID)
	if tb == nil {
		return MatchRecord{}, notFoundf("no such table %s", tableID)
	}
	if tb.Match == nil {
		return MatchRecord{}, transitionf("cannot resolve: %s has no seated match", tableID)
	}
	m := tb.Match
	if m.Status != StatusAwaitWinner {
		return MatchRecord{}, transitionf("cannot resolve: match on %s is %s", tableID, m.Status)
	}
	if winnerID != m.AID && winnerID != m.BID {
		return MatchRecord{}, validationf("player %s is not seated on %s", winnerID, tableID)
	}

	loserID := m.AID
	if winnerID == m.AID {
		loserID = m.BID
	}
	var durationMs int64
	if m.StartAt > 0 {
		durationMs = nowMs - m.StartAt
	}

	winner := t.EnsureStats(winnerID)
	winner.Wins++
	winner.Games++
	loser := t.EnsureStats(loserID)
	loser.Losses++
	loser.Games++

	rec := MatchRecord{
		ID:         uuid.NewString(),
		At:         nowMs,
		Phase:      t.Phase,
		TableLabel: tb.Label,
		TableID:    tb.ID,
		AID:        m.AID,
		BID:        m.BID,
		WinnerID:   winnerID,
		DurationMs: durationMs,
	}
	t.Matches = append([]MatchRecord{rec}, t.Matches...)

	tb.Match = nil
	s.requeueIfActive(winnerID)
	s.requeueIfActive(loserID)
	return rec, nil
}

// CancelMatch clears a table from any match state. No stats are touched and
// no history is written; both participants rejoin the back of the waitlist
// while still active.
func (s *State) CancelMatch(tableID string) error {
	tb := s.Tournament.TableByID(tableID)
	if tb == nil {
		return notFoundf("no such table %s", tableID)
	}
	if tb.Match == nil {
		return transitionf("cannot cancel: %s has no seated match", tableID)
	}
	aID, bID := tb.Match.AID, tb.Match.BID
	tb.Match = nil
	s.requeueIfActive(aID)
	s.requeueIfActive(bID)
	return nil
}

// clearSeatsOf wipes any match the given player is seated in, both occupants
// included. No history is recorded; the displaced opponent is not explicitly
// re-queued and gets picked back up by the next waitlist sync.
func (s *State) clearSeatsOf(playerID string) {
	for _, tb := range s.Tournament.Tables {
		if tb.Match == nil {
			continue
		}
		if tb.Match.AID == playerID || tb.Match.BID == playerID {
			log.Warn("clearing match: seated player left", "table", tb.ID, "player", playerID)
			tb.Match = nil
		}
	}
}
