package room

import (
	"errors"
	"testing"

	"tableside/pkg/action"
	"tableside/pkg/table"
	"tableside/pkg/wire"

	"github.com/stretchr/testify/assert"
)

type sendRecorder struct {
	messages []wire.ClientMessage
	err      error
}

func (r *sendRecorder) send(msg wire.ClientMessage) error {
	if r.err != nil {
		return r.err
	}

	r.messages = append(r.messages, msg)
	return nil
}

func pushState(c *Composer, state *table.State, hero *table.Player) {
	c.ObservePush(state, table.Evaluate(state, hero))
}

func inProgressState(owed int) *table.State {
	return &table.State{
		Status: table.StatusInProgress,
		Seats: []table.Seat{
			{ID: "alice", Chips: 500},
			{ID: "bob", Chips: 500},
		},
		Active: table.Seat{ID: "alice"},
		Owed:   owed,
		Options: table.Options{
			Stakes: table.Stakes{SmallBlind: 10, BigBlind: 20},
		},
	}
}

func doneState() *table.State {
	state := inProgressState(0)
	state.Status = table.StatusDone
	return state
}

func TestComposer_declareReady(t *testing.T) {
	a := assert.New(t)
	rec := &sendRecorder{}
	c := NewComposer(rec.send)
	a.Equal(PhaseNotReady, c.Phase())

	a.NoError(c.DeclareReady())
	a.Equal(PhaseReadyWaiting, c.Phase())
	a.Equal([]wire.ClientMessage{wire.Ready()}, rec.messages)

	a.Equal(ErrAlreadyReady, c.DeclareReady())
	a.Len(rec.messages, 1)

	// the first push activates the table
	pushState(c, inProgressState(0), &table.Player{ID: "alice", Chips: 500})
	a.Equal(PhaseActive, c.Phase())
}

func TestComposer_declareReadySendFailure(t *testing.T) {
	a := assert.New(t)
	boom := errors.New("boom")
	c := NewComposer((&sendRecorder{err: boom}).send)

	a.Equal(boom, c.DeclareReady())
	a.Equal(PhaseNotReady, c.Phase())
}

func TestComposer_readinessResetsOnceOnDoneEdge(t *testing.T) {
	a := assert.New(t)
	rec := &sendRecorder{}
	c := NewComposer(rec.send)
	hero := &table.Player{ID: "alice", Chips: 500}

	a.NoError(c.DeclareReady())

	// IN_PROGRESS, DONE, DONE: exactly one reset, on the first edge
	pushState(c, inProgressState(0), hero)
	a.Equal(PhaseActive, c.Phase())

	pushState(c, doneState(), hero)
	a.Equal(PhaseNotReady, c.Phase())

	pushState(c, doneState(), hero)
	a.Equal(PhaseNotReady, c.Phase())

	// re-declaring between two DONE pushes must stick: the repeated DONE
	// is not an edge and must not reset again
	a.NoError(c.DeclareReady())
	a.Equal(PhaseReadyWaiting, c.Phase())

	pushState(c, doneState(), hero)
	a.Equal(PhaseActive, c.Phase())
}

func TestComposer_noResetOnFirstDonePush(t *testing.T) {
	a := assert.New(t)
	c := NewComposer((&sendRecorder{}).send)
	hero := &table.Player{ID: "alice", Chips: 500}

	a.NoError(c.DeclareReady())

	// a session that joins mid-showdown sees DONE first; that is not an
	// in-progress to done edge
	pushState(c, doneState(), hero)
	a.Equal(PhaseActive, c.Phase())
}

func TestComposer_sitOut(t *testing.T) {
	a := assert.New(t)
	rec := &sendRecorder{}
	c := NewComposer(rec.send)

	a.NoError(c.DeclareReady())
	a.NoError(c.SitOut())
	a.Equal(PhaseNotReady, c.Phase())
	a.Equal([]wire.ClientMessage{wire.Ready(), wire.SitOut()}, rec.messages)
}

func TestComposer_buyIn(t *testing.T) {
	a := assert.New(t)
	rec := &sendRecorder{}
	c := NewComposer(rec.send)

	a.NoError(c.BuyIn())
	a.Equal(PhaseReadyWaiting, c.Phase())
	a.Equal([]wire.ClientMessage{wire.BuyIn()}, rec.messages)

	a.Equal(ErrAlreadyReady, c.BuyIn())
}

func TestComposer_pendingBet(t *testing.T) {
	a := assert.New(t)
	rec := &sendRecorder{}
	c := NewComposer(rec.send)
	hero := &table.Player{ID: "alice", Chips: 500}

	a.NoError(c.DeclareReady())
	a.Equal(0, c.PendingBet())

	// defaults to the big blind on the first push
	pushState(c, inProgressState(0), hero)
	a.Equal(20, c.PendingBet())

	c.SetPendingBet(470)
	a.Equal(460, c.PendingBet())

	c.SetPendingBet(9999)
	a.Equal(500, c.PendingBet())

	c.SetPendingBet(3)
	a.Equal(20, c.PendingBet())

	// a push re-clamps whatever is pending
	c.SetPendingBet(500)
	smaller := inProgressState(0)
	pushState(c, smaller, &table.Player{ID: "alice", Chips: 300})
	a.Equal(300, c.PendingBet())
}

func TestComposer_submit(t *testing.T) {
	a := assert.New(t)
	rec := &sendRecorder{}
	c := NewComposer(rec.send)
	hero := &table.Player{ID: "alice", Chips: 500}

	a.NoError(c.DeclareReady())
	pushState(c, inProgressState(0), hero)
	rec.messages = nil

	c.SetPendingBet(40)
	a.NoError(c.Submit(action.Bet))
	a.Equal([]wire.ClientMessage{wire.NewPlayerAction(action.Bet, 40)}, rec.messages)

	// the pending amount resets to the minimum legal bet, not zero
	a.Equal(20, c.PendingBet())

	rec.messages = nil
	a.NoError(c.Submit(action.Check))
	a.NoError(c.Submit(action.AllIn))
	a.NoError(c.Submit(action.Fold))
	a.Equal([]wire.ClientMessage{
		wire.NewPlayerAction(action.Check, 0),
		wire.NewPlayerAction(action.AllIn, 0),
		wire.NewPlayerAction(action.Fold, 0),
	}, rec.messages)
}

func TestComposer_submitCallAndRaise(t *testing.T) {
	a := assert.New(t)
	rec := &sendRecorder{}
	c := NewComposer(rec.send)
	hero := &table.Player{ID: "alice", Chips: 500}

	a.NoError(c.DeclareReady())
	pushState(c, inProgressState(60), hero)
	rec.messages = nil

	// with a bet outstanding the intents flip to call and raise
	a.EqualError(c.Submit(action.Check), "Check is not a legal action right now")
	a.EqualError(c.Submit(action.Bet), "Bet is not a legal action right now")

	c.SetPendingBet(120)
	a.NoError(c.Submit(action.Call))
	a.NoError(c.Submit(action.Raise))
	a.Equal([]wire.ClientMessage{
		wire.NewPlayerAction(action.Call, 0),
		wire.NewPlayerAction(action.Raise, 120),
	}, rec.messages)
}

func TestComposer_submitRefusals(t *testing.T) {
	a := assert.New(t)
	rec := &sendRecorder{}
	c := NewComposer(rec.send)

	// nothing may be submitted before a table exists
	a.Equal(ErrNotPlaying, c.Submit(action.Fold))

	a.NoError(c.DeclareReady())
	a.Equal(ErrNotPlaying, c.Submit(action.Fold))

	// out of turn: bob is active, nothing is legal for alice
	state := inProgressState(0)
	state.Active = table.Seat{ID: "bob"}
	pushState(c, state, &table.Player{ID: "alice", Chips: 500})

	a.EqualError(c.Submit(action.Fold), "Fold is not a legal action right now")
	a.Len(rec.messages, 1) // just the ready

	// owed more than the stack: betting more is off the table
	state = inProgressState(600)
	pushState(c, state, &table.Player{ID: "alice", Chips: 500})
	a.EqualError(c.Submit(action.Raise), "Raise is not a legal action right now")
	a.EqualError(c.Submit(action.AllIn), "All In is not a legal action right now")
	a.NoError(c.Submit(action.Call))
}
