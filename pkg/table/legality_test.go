package table

import (
	"testing"

	"tableside/pkg/action"

	"github.com/stretchr/testify/assert"
)

func testState() *State {
	return &State{
		Status: StatusInProgress,
		Seats: []Seat{
			{ID: "alice", Chips: 500, ChipsInPot: 20},
			{ID: "bob", Chips: 1980, ChipsInPot: 20},
		},
		Active: Seat{ID: "alice"},
		Pot:    40,
		Options: Options{
			Stakes: Stakes{SmallBlind: 10, BigBlind: 20},
		},
	}
}

func TestEvaluate_turn(t *testing.T) {
	a := assert.New(t)
	state := testState()
	hero := &Player{ID: "alice", Chips: 500}

	leg := Evaluate(state, hero)
	a.True(leg.MyTurn)
	a.Equal([]action.Type{action.Check, action.Bet, action.AllIn, action.Fold}, leg.Actions())

	leg = Evaluate(state, &Player{ID: "bob", Chips: 1980})
	a.False(leg.MyTurn)
	a.Nil(leg.Actions())
	a.False(leg.Legal(action.Fold))
	a.False(leg.Legal(action.Check))
}

func TestEvaluate_noActiveSeat(t *testing.T) {
	a := assert.New(t)
	state := testState()
	state.Active = Seat{}
	hero := &Player{ID: "alice", Chips: 500}

	leg := Evaluate(state, hero)
	a.False(leg.MyTurn)
	a.Nil(leg.Actions())

	state.Seats = nil
	leg = Evaluate(state, hero)
	a.False(leg.MyTurn)
	a.Nil(leg.Actions())
}

func TestEvaluate_heroSeatMissing(t *testing.T) {
	a := assert.New(t)
	state := testState()
	// the server thinks it's carol's turn, but carol has no seat
	state.Active = Seat{ID: "carol"}

	leg := Evaluate(state, &Player{ID: "carol", Chips: 500})
	a.False(leg.MyTurn)
	a.Nil(leg.Actions())
	a.False(leg.Legal(action.Fold))
}

func TestEvaluate_nilInputs(t *testing.T) {
	a := assert.New(t)
	a.Equal(Legality{}, Evaluate(nil, &Player{ID: "alice"}))
	a.Equal(Legality{}, Evaluate(testState(), nil))
}

func TestEvaluate_checkVsCall(t *testing.T) {
	a := assert.New(t)
	state := testState()
	hero := &Player{ID: "alice", Chips: 500}

	leg := Evaluate(state, hero)
	a.Equal(action.Check, leg.CheckCall)
	a.Equal(action.Bet, leg.BetRaise)
	a.Equal(0, leg.CallAmount)
	a.True(leg.Legal(action.Check))
	a.False(leg.Legal(action.Call))
	a.True(leg.Legal(action.Bet))
	a.False(leg.Legal(action.Raise))

	state.Owed = 60
	leg = Evaluate(state, hero)
	a.Equal(action.Call, leg.CheckCall)
	a.Equal(action.Raise, leg.BetRaise)
	a.Equal(60, leg.CallAmount)
	a.True(leg.Legal(action.Call))
	a.False(leg.Legal(action.Check))
	a.True(leg.Legal(action.Raise))
	a.False(leg.Legal(action.Bet))
}

func TestEvaluate_affordability(t *testing.T) {
	a := assert.New(t)
	state := testState()
	state.Owed = 600
	hero := &Player{ID: "alice", Chips: 500}

	// owed more than the stack: call and fold remain, betting more does not
	leg := Evaluate(state, hero)
	a.True(leg.MyTurn)
	a.True(leg.CanCheckCall)
	a.False(leg.CanBetRaise)
	a.False(leg.CanAllIn)
	a.Equal([]action.Type{action.Call, action.Fold}, leg.Actions())

	state.Owed = 500
	leg = Evaluate(state, hero)
	a.True(leg.CanBetRaise)
	a.True(leg.CanAllIn)
}

func TestLegality_ClampBet(t *testing.T) {
	a := assert.New(t)
	leg := Legality{MinBet: 20, MaxBet: 500, BetStep: 20}

	a.Equal(20, leg.ClampBet(0))
	a.Equal(20, leg.ClampBet(19))
	a.Equal(20, leg.ClampBet(20))
	a.Equal(20, leg.ClampBet(39))
	a.Equal(40, leg.ClampBet(40))
	a.Equal(460, leg.ClampBet(470))
	a.Equal(500, leg.ClampBet(500))
	a.Equal(500, leg.ClampBet(505))
	a.Equal(500, leg.ClampBet(9999))

	// unknown bounds leave the amount alone
	a.Equal(37, Legality{}.ClampBet(37))
}
