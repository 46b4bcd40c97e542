package wire

import (
	"encoding/json"
	"fmt"

	"tableside/pkg/action"
	"tableside/pkg/table"
)

// MessageType is the integer tag identifying a wire message.
// The values are shared with the server and must not be reordered.
type MessageType int

// message type constants
const (
	MessageTypeUnknown MessageType = iota
	MessageTypeHello
	MessageTypeReady
	MessageTypeSitOut
	MessageTypeBuyIn
	MessageTypeTableState
	MessageTypePlayerAction
	MessageTypeIllegalAction
	MessageTypePlayerConnected
	MessageTypePlayerDisconnected
)

func (m MessageType) String() string {
	switch m {
	case MessageTypeHello:
		return "hello"
	case MessageTypeReady:
		return "ready"
	case MessageTypeSitOut:
		return "sit-out"
	case MessageTypeBuyIn:
		return "buy-in"
	case MessageTypeTableState:
		return "table-state"
	case MessageTypePlayerAction:
		return "player-action"
	case MessageTypeIllegalAction:
		return "illegal-action"
	case MessageTypePlayerConnected:
		return "player-connected"
	case MessageTypePlayerDisconnected:
		return "player-disconnected"
	}

	return fmt.Sprintf("unknown(%d)", int(m))
}

// Action is a betting action in its wire form
type Action struct {
	Type  action.Type
	Chips int
}

// MarshalJSON encodes the action, omitting Chips for action types that
// carry no amount. Encoding is deterministic: the same action always
// produces the same bytes.
func (a Action) MarshalJSON() ([]byte, error) {
	if a.Type.HasAmount() {
		return json.Marshal(struct {
			Type  action.Type
			Chips int
		}{a.Type, a.Chips})
	}

	return json.Marshal(struct {
		Type action.Type
	}{a.Type})
}

// PlayerAction announces an action taken by some player at the table
type PlayerAction struct {
	Type     action.Type
	Chips    int
	PlayerID string `json:"PlayerId"`
}

// ServerMessage is the envelope for every inbound frame
type ServerMessage struct {
	Type         MessageType
	PlayerID     string        `json:"PlayerId,omitempty"`
	TableState   *table.State  `json:",omitempty"`
	PlayerState  *table.Player `json:",omitempty"`
	PlayerAction *PlayerAction `json:",omitempty"`
	Result       string        `json:",omitempty"`
}

// ClientMessage is the envelope for every outbound frame
type ClientMessage struct {
	Type   MessageType
	Action *Action `json:",omitempty"`
}

// DecodeServerMessage decodes an inbound frame. A decode error means the
// whole frame must be dropped; prior state is never touched by a frame
// that fails here.
func DecodeServerMessage(data []byte) (*ServerMessage, error) {
	var msg ServerMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("could not decode server message: %w", err)
	}

	switch msg.Type {
	case MessageTypeTableState, MessageTypeIllegalAction:
		if msg.TableState == nil || msg.PlayerState == nil {
			return nil, fmt.Errorf("%s message is missing its state payload", msg.Type)
		}
	}

	return &msg, nil
}

// EncodeClientMessage encodes an outbound frame
func EncodeClientMessage(msg ClientMessage) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("could not encode %s message: %w", msg.Type, err)
	}

	return data, nil
}

// Ready returns the readiness declaration
func Ready() ClientMessage {
	return ClientMessage{Type: MessageTypeReady}
}

// SitOut returns the sit-out declaration for the next hand
func SitOut() ClientMessage {
	return ClientMessage{Type: MessageTypeSitOut}
}

// BuyIn returns the buy-back-in request for a broke player
func BuyIn() ClientMessage {
	return ClientMessage{Type: MessageTypeBuyIn}
}

// NewPlayerAction returns a player-action message. Chips is ignored for
// action types that carry no amount.
func NewPlayerAction(t action.Type, chips int) ClientMessage {
	return ClientMessage{
		Type:   MessageTypePlayerAction,
		Action: &Action{Type: t, Chips: chips},
	}
}
