package tournament

import (
	"strings"

	"github.com/google/uuid"
)

// AddPlayer registers a new player. Players start inactive; names are unique
// case-insensitively.
func (s *State) AddPlayer(name string, nowMs int64) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationf("player name must not be empty")
	}
	if s.PlayerByName(name) != nil {
		return nil, validationf("a player named %q already exists", name)
	}
	p := &Player{
		ID:        uuid.NewString(),
		Name:      name,
		Active:    false,
		CreatedAt: nowMs,
	}
	s.Players = append(s.Players, p)
	return p, nil
}

// RenamePlayer changes a display name, rejecting collisions with any other
// registered name.
func (s *State) RenamePlayer(id, name string) error {
	p := s.PlayerByID(id)
	if p == nil {
		return notFoundf("no such player %s", id)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return validationf("player name must not be empty")
	}
	if other := s.PlayerByName(name); other != nil && other.ID != id {
		return validationf("a player named %q already exists", name)
	}
	p.Name = name
	return nil
}

// RemovePlayer deletes a player: registry entry, waitlist spot, any seated
// match (both occupants) and the current stats entry. Match history keeps
// the id; name lookups for it resolve to UnknownPlayerName.
func (s *State) RemovePlayer(id string) error {
	idx := -1
	for i, p := range s.Players {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return notFoundf("no such player %s", id)
	}
	s.Players = append(s.Players[:idx], s.Players[idx+1:]...)
	s.RemoveFromPlay(id)
	delete(s.Tournament.StatsByID, id)
	return nil
}

// SetPlayerActive toggles seating eligibility. Deactivating a seated player
// clears that table's match immediately.
func (s *State) SetPlayerActive(id string, active bool) error {
	p := s.PlayerByID(id)
	if p == nil {
		return notFoundf("no such player %s", id)
	}
	p.Active = active
	if !active {
		s.RemoveFromPlay(id)
	}
	return nil
}

// RemoveFromPlay strips a player out of the waitlist and clears any match
// they are seated in. Stats and history are untouched.
func (s *State) RemoveFromPlay(id string) {
	s.Tournament.removeFromWaitlist(id)
	s.clearSeatsOf(id)
}

// PlayerByName returns the player with the given name (case-insensitive),
// or nil.
func (s *State) PlayerByName(name string) *Player {
	for _, p := range s.Players {
		if strings.EqualFold(p.Name, name) {
			return p
		}
	}
	return nil
}
