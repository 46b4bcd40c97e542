package action

import (
	"encoding/json"
	"fmt"
)

// Type is a betting action a player can submit.
// The numeric values are the wire encoding and must not be reordered.
type Type int

// action constants
const (
	Fold Type = iota
	Check
	Call
	Bet
	Raise
	AllIn
)

var allowedTypes = map[Type]bool{
	Fold:  true,
	Check: true,
	Call:  true,
	Bet:   true,
	Raise: true,
	AllIn: true,
}

// FromInt returns an action type for the given wire value
func FromInt(i int) (Type, error) {
	if _, ok := allowedTypes[Type(i)]; ok {
		return Type(i), nil
	}

	return 0, fmt.Errorf("unknown action for identifier: %d", i)
}

func (t Type) String() string {
	switch t {
	case Fold:
		return "Fold"
	case Check:
		return "Check"
	case Call:
		return "Call"
	case Bet:
		return "Bet"
	case Raise:
		return "Raise"
	case AllIn:
		return "All In"
	}

	panic("unknown action")
}

// IsValid returns true if the action is permitted
func (t Type) IsValid() bool {
	_, ok := allowedTypes[t]
	return ok
}

// HasAmount returns true if the action carries a chip amount on the wire
func (t Type) HasAmount() bool {
	return t == Bet || t == Raise
}

// MarshalJSON encodes the action type as its wire value
func (t Type) MarshalJSON() ([]byte, error) {
	return json.Marshal(int(t))
}

// LogMessage returns a message formatted for the table log
func (t Type) LogMessage(amount int) string {
	switch t {
	case Fold:
		return "folded"
	case Check:
		return "checked"
	case Call:
		return "called"
	case Bet:
		return fmt.Sprintf("bet ${%d}", amount)
	case Raise:
		return fmt.Sprintf("raised to ${%d}", amount)
	case AllIn:
		return "went all in"
	}

	return ""
}
