package ui

import (
	"fmt"
	"strings"

	"tableside/pkg/deck"
	"tableside/pkg/room"
	"tableside/pkg/table"

	"github.com/pterm/pterm"
)

// Dollars formats a cent amount for display
func Dollars(cents int) string {
	return fmt.Sprintf("$%.2f", float64(cents)/100)
}

// Cards formats a set of cards for display
func Cards(cards []*deck.Card) string {
	if len(cards) == 0 {
		return "--"
	}

	parts := make([]string, len(cards))
	for i, card := range cards {
		parts[i] = card.Display()
	}

	return strings.Join(parts, " ")
}

// Renderer draws snapshots and notices to the terminal. It implements
// room.Observer and only ever reads the snapshot it is handed.
type Renderer struct{}

// NewRenderer returns a terminal renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Notice prints a transient announcement
func (r *Renderer) Notice(text string) {
	pterm.Info.Println(text)
}

// StateChanged redraws the table from a fresh snapshot
func (r *Renderer) StateChanged(snapshot room.Snapshot) {
	switch snapshot.Connection {
	case room.StateConnecting:
		pterm.Info.Println("Please wait, connecting to the card room...")
		return
	case room.StateError:
		pterm.Error.Println("Sorry, the connection to the card room was lost. Please start over.")
		return
	case room.StateClosed:
		return
	}

	if snapshot.Table == nil {
		if snapshot.Phase == room.PhaseReadyWaiting {
			pterm.Info.Println("Waiting for other players...")
		} else {
			pterm.Info.Println("Connected. Type \"ready\" when you want to play.")
		}
		return
	}

	r.renderTable(snapshot)
}

func (r *Renderer) renderTable(snapshot room.Snapshot) {
	panels := make([]pterm.Panel, 0, len(snapshot.Table.Seats))
	for _, seat := range snapshot.Table.Seats {
		panels = append(panels, pterm.Panel{Data: formatSeat(seat, snapshot)})
	}

	board := pterm.Panel{Data: formatBoard(snapshot)}
	_ = pterm.DefaultPanel.WithPanels([][]pterm.Panel{panels, {board}}).Render()

	pterm.Println(promptLine(snapshot))
}

// formatSeat renders one seat. An unoccupied seat renders empty rather
// than erroring; other players' cards only show once the server reveals
// them, while the hero always sees their own.
func formatSeat(seat table.Seat, snapshot room.Snapshot) string {
	if !seat.Occupied() {
		return "(empty)"
	}

	name := seat.ID
	if snapshot.Table.Active.ID == seat.ID {
		name = "* " + name
	}

	cards := seat.Cards
	if snapshot.Player != nil && snapshot.Player.ID == seat.ID {
		cards = snapshot.Player.Cards
	}

	return fmt.Sprintf(
		"%s\nIN POT: %s\nSTACK: %s\n%s",
		name,
		Dollars(seat.ChipsInPot),
		Dollars(seat.Chips),
		Cards(cards),
	)
}

// formatBoard renders the community cards with either the pot or, once
// the hand is over, the result announcement in its place
func formatBoard(snapshot room.Snapshot) string {
	center := "POT: " + Dollars(snapshot.Table.Pot)
	if snapshot.Result != "" {
		center = snapshot.Result
	}

	return Cards(snapshot.Table.Cards) + "\n" + center
}

// promptLine tells the hero what they can do right now
func promptLine(snapshot room.Snapshot) string {
	leg := snapshot.Legality

	if !leg.MyTurn {
		if snapshot.Table.Active.Occupied() {
			return fmt.Sprintf("It is %s's turn...", snapshot.Table.Active.ID)
		}
		return "Waiting for the next hand..."
	}

	labels := make([]string, 0, 4)
	for _, t := range leg.Actions() {
		label := strings.ToLower(t.String())
		if t == leg.CheckCall && leg.CallAmount > 0 {
			label = fmt.Sprintf("%s (%s)", label, Dollars(leg.CallAmount))
		}
		if t.HasAmount() {
			label = fmt.Sprintf("%s <amount> (pending %s)", label, Dollars(snapshot.PendingBet))
		}
		labels = append(labels, label)
	}

	return "Your turn: " + strings.Join(labels, ", ")
}
