package table

import (
	"tableside/pkg/action"
)

// Legality is everything the hero may currently do, derived from a single
// snapshot. It is recomputed from scratch after every push; nothing in here
// survives a state replacement.
type Legality struct {
	// MyTurn is true when the hero is the active seat
	MyTurn bool

	// CheckCall is Call when there is a bet to match, otherwise Check
	CheckCall    action.Type
	CanCheckCall bool

	// BetRaise is Raise when there is a bet to match, otherwise Bet
	BetRaise    action.Type
	CanBetRaise bool

	CanFold  bool
	CanAllIn bool

	// CallAmount is what the hero owes to call (0 when checking)
	CallAmount int

	// bet bounds; a chosen amount is clamped to [MinBet, MaxBet] and
	// snapped down to a multiple of BetStep before submission
	MinBet  int
	MaxBet  int
	BetStep int
}

// Evaluate derives the hero's legality from the current snapshot.
// It is a pure function: no caching, no mutation of its inputs.
//
// A hero whose seat cannot be found in the state has no legal actions.
// Betting more is only offered while the hero can cover the full owed
// amount, matching the server's affordability rule.
func Evaluate(state *State, hero *Player) Legality {
	var leg Legality
	if state == nil || hero == nil {
		return leg
	}

	stakes := state.Options.Stakes
	leg.MinBet = stakes.BigBlind
	leg.BetStep = stakes.BigBlind
	leg.MaxBet = hero.Chips

	if state.Owed != 0 {
		leg.CheckCall = action.Call
		leg.BetRaise = action.Raise
		leg.CallAmount = state.Owed
	} else {
		leg.CheckCall = action.Check
		leg.BetRaise = action.Bet
	}

	if _, found := state.Seat(hero.ID); !found {
		return leg
	}

	if !state.Active.Occupied() || state.Active.ID != hero.ID {
		return leg
	}

	leg.MyTurn = true
	leg.CanFold = true
	leg.CanCheckCall = true

	canCover := state.Owed <= hero.Chips
	leg.CanBetRaise = canCover
	leg.CanAllIn = canCover

	return leg
}

// Legal returns true if the given action may be submitted right now
func (l Legality) Legal(t action.Type) bool {
	switch t {
	case action.Fold:
		return l.CanFold
	case action.Check, action.Call:
		return l.CanCheckCall && t == l.CheckCall
	case action.Bet, action.Raise:
		return l.CanBetRaise && t == l.BetRaise
	case action.AllIn:
		return l.CanAllIn
	}

	return false
}

// Actions returns the legal actions in presentation order
func (l Legality) Actions() []action.Type {
	if !l.MyTurn {
		return nil
	}

	actions := make([]action.Type, 0, 4)
	if l.CanCheckCall {
		actions = append(actions, l.CheckCall)
	}
	if l.CanBetRaise {
		actions = append(actions, l.BetRaise)
	}
	if l.CanAllIn {
		actions = append(actions, action.AllIn)
	}
	if l.CanFold {
		actions = append(actions, action.Fold)
	}

	return actions
}

// ClampBet forces a requested bet into the legal range: clamped to
// [MinBet, MaxBet] and snapped down to a multiple of BetStep. Amounts
// below the big blind are never permitted, even when less is owed.
func (l Legality) ClampBet(bet int) int {
	if l.MinBet <= 0 || l.BetStep <= 0 {
		return bet
	}

	if bet > l.MaxBet {
		bet = l.MaxBet
	}

	bet -= bet % l.BetStep
	if bet < l.MinBet {
		bet = l.MinBet
	}

	return bet
}
