package room

import (
	"errors"
	"fmt"

	"tableside/pkg/action"
	"tableside/pkg/table"
	"tableside/pkg/wire"
)

// Phase is the local interaction phase
type Phase int

// phase constants
const (
	PhaseNotReady Phase = iota
	PhaseReadyWaiting
	PhaseActive
)

func (p Phase) String() string {
	switch p {
	case PhaseNotReady:
		return "not ready"
	case PhaseReadyWaiting:
		return "ready, waiting"
	case PhaseActive:
		return "active"
	}

	return "unknown"
}

// ErrAlreadyReady is returned when readiness is declared twice
var ErrAlreadyReady = errors.New("readiness already declared")

// ErrNotPlaying is returned when an action is submitted with no hand running
var ErrNotPlaying = errors.New("no hand is being played")

// Composer turns user gestures into wire messages. It holds the local half
// of the interaction state: readiness and the pending bet. Table existence
// and legality are server-pushed and arrive through ObservePush; the two
// state machines communicate only through those transition triggers.
type Composer struct {
	phase      Phase
	pendingBet int
	prevStatus table.Status
	legality   table.Legality
	send       func(wire.ClientMessage) error
}

// NewComposer returns a composer that transmits through send
func NewComposer(send func(wire.ClientMessage) error) *Composer {
	return &Composer{send: send}
}

// Phase returns the current interaction phase
func (c *Composer) Phase() Phase {
	return c.phase
}

// PendingBet returns the amount queued for the next bet or raise
func (c *Composer) PendingBet() int {
	return c.pendingBet
}

// DeclareReady sends the readiness declaration for the next hand
func (c *Composer) DeclareReady() error {
	if c.phase != PhaseNotReady {
		return ErrAlreadyReady
	}

	if err := c.send(wire.Ready()); err != nil {
		return err
	}

	c.phase = PhaseReadyWaiting
	return nil
}

// SitOut tells the server to deal the hero out of the next hand
func (c *Composer) SitOut() error {
	if err := c.send(wire.SitOut()); err != nil {
		return err
	}

	c.phase = PhaseNotReady
	return nil
}

// BuyIn asks for a fresh stack and declares readiness. The caller is
// responsible for checking that the hero is actually allowed to rebuy.
func (c *Composer) BuyIn() error {
	if c.phase != PhaseNotReady {
		return ErrAlreadyReady
	}

	if err := c.send(wire.BuyIn()); err != nil {
		return err
	}

	c.phase = PhaseReadyWaiting
	return nil
}

// ObservePush advances the phase machine on every accepted table-state push.
// Readiness resets only on an in-progress to done edge; a repeated done
// push must not reset a phase that was already reset.
func (c *Composer) ObservePush(state *table.State, leg table.Legality) {
	prev := c.prevStatus
	c.prevStatus = state.Status
	c.legality = leg

	if prev == table.StatusInProgress && state.Status == table.StatusDone {
		c.phase = PhaseNotReady
	} else if c.phase == PhaseReadyWaiting {
		c.phase = PhaseActive
	}

	if c.pendingBet == 0 {
		c.pendingBet = state.Options.Stakes.BigBlind
	}
	c.pendingBet = leg.ClampBet(c.pendingBet)
}

// SetPendingBet queues an amount for the next bet or raise, clamped to the
// current bounds
func (c *Composer) SetPendingBet(chips int) {
	c.pendingBet = c.legality.ClampBet(chips)
}

// Submit sends the chosen action if it is legal right now. Bets and raises
// carry the pending amount; afterwards the pending amount resets to the
// minimum legal bet, not to zero.
func (c *Composer) Submit(t action.Type) error {
	if c.phase != PhaseActive {
		return ErrNotPlaying
	}

	if !c.legality.Legal(t) {
		return fmt.Errorf("%s is not a legal action right now", t)
	}

	var amount int
	if t.HasAmount() {
		amount = c.legality.ClampBet(c.pendingBet)
	}

	if err := c.send(wire.NewPlayerAction(t, amount)); err != nil {
		return err
	}

	if t.HasAmount() {
		c.pendingBet = c.legality.MinBet
	}

	return nil
}
