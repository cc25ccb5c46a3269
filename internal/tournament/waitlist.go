package tournament

import (
	"github.com/thoas/go-funk"
)

// SyncWaitlist rebuilds the waitlist from the current active set and table
// occupancy. Existing entries keep their relative order so that manual
// reordering survives incidental syncs; any active, unseated player missing
// from the list is appended in registration order.
//
// Idempotent: calling it twice without an intervening mutation yields an
// identical waitlist.
func (s *State) SyncWaitlist() {
	t := s.Tournament

	active := make(map[string]bool)
	for _, p := range s.Players {
		if p.Active {
			active[p.ID] = true
		}
	}
	seated := t.SeatedIDs()

	kept := make([]string, 0, len(t.Waitlist))
	for _, id := range t.Waitlist {
		if active[id] && !seated[id] {
			kept = append(kept, id)
		}
	}
	t.Waitlist = kept

	for _, p := range s.Players {
		if !p.Active || seated[p.ID] {
			continue
		}
		if !funk.ContainsString(t.Waitlist, p.ID) {
			t.Waitlist = append(t.Waitlist, p.ID)
		}
	}
}

// ReorderWaitlist moves the given player to position index (clamped to the
// list bounds). The new order is the seating priority.
func (s *State) ReorderWaitlist(playerID string, index int) error {
	wl := s.Tournament.Waitlist
	from := funk.IndexOfString(wl, playerID)
	if from == -1 {
		return notFoundf("player %s is not on the waitlist", playerID)
	}
	wl = append(wl[:from], wl[from+1:]...)
	if index < 0 {
		index = 0
	}
	if index > len(wl) {
		index = len(wl)
	}
	wl = append(wl[:index], append([]string{playerID}, wl[index:]...)...)
	s.Tournament.Waitlist = wl
	return nil
}

// removeFromWaitlist strips a single player id from the waitlist.
func (t *Tournament) removeFromWaitlist(playerID string) {
	t.Waitlist = funk.FilterString(t.Waitlist, func(id string) bool {
		return id != playerID
	})
}

// requeueIfActive pushes a player to the back of the waitlist if they are
// still active and not already listed. Used when a table clears.
func (s *State) requeueIfActive(playerID string) {
	p := s.PlayerByID(playerID)
	if p == nil || !p.Active {
		return
	}
	if !funk.ContainsString(s.Tournament.Waitlist, playerID) {
		s.Tournament.Waitlist = append(s.Tournament.Waitlist, playerID)
	}
}
