package table

import (
	"tableside/pkg/deck"
)

// Status is the server-reported lifecycle stage of a hand
type Status int

// status constants, matching the server's wire values
const (
	StatusUnknown Status = iota
	StatusInProgress
	StatusDone
)

func (s Status) String() string {
	switch s {
	case StatusInProgress:
		return "in progress"
	case StatusDone:
		return "done"
	}

	return "unknown"
}

// Stakes is the blind configuration for a table.
// The big blind doubles as the minimum bet and the bet increment.
type Stakes struct {
	SmallBlind int
	BigBlind   int
}

// Options is the table configuration announced by the server
type Options struct {
	Buyin  int
	Stakes Stakes
}

// Seat is a table position and its occupant.
// Cards are only present once the server has revealed them.
type Seat struct {
	ID         string
	Chips      int
	ChipsInPot int
	Cards      []*deck.Card `json:",omitempty"`
}

// Occupied returns true if a player is sitting in the seat
func (s Seat) Occupied() bool {
	return s.ID != ""
}

// State is the authoritative table snapshot pushed by the server.
// All monetary amounts are integers in cents.
type State struct {
	Status  Status
	Seats   []Seat
	Active  Seat
	Pot     int
	Owed    int
	Cards   []*deck.Card `json:",omitempty"`
	Options Options
}

// Seat returns the occupied seat with the given player ID
func (s *State) Seat(id string) (Seat, bool) {
	if id == "" {
		return Seat{}, false
	}

	for _, seat := range s.Seats {
		if seat.ID == id {
			return seat, true
		}
	}

	return Seat{}, false
}

// Player is the hero's private view of themselves.
// Cards are the hole cards, always visible to the hero.
type Player struct {
	ID         string
	Chips      int
	ChipsInPot int
	Cards      []*deck.Card `json:",omitempty"`
	SittingOut bool
}
