package room

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"tableside/pkg/action"
	"tableside/pkg/table"
	"tableside/pkg/wire"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const writeWait = time.Second * 10

// ErrNotConnected is returned when a message is sent before the server's
// hello or after the connection is gone
var ErrNotConnected = errors.New("the session is not connected")

// ConnectionState is the lifecycle state of the server connection
type ConnectionState int

// connection state constants
const (
	StateConnecting ConnectionState = iota
	StateConnected
	StateError
	StateClosed
)

func (s ConnectionState) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateError:
		return "error"
	case StateClosed:
		return "closed"
	}

	return "unknown"
}

// Snapshot is the read-only view handed to the presentation layer after
// every accepted message. Legality is recomputed from scratch for each
// snapshot, never carried over from the previous one.
type Snapshot struct {
	Connection ConnectionState
	Table      *table.State
	Player     *table.Player
	Result     string
	Legality   table.Legality
	Phase      Phase
	PendingBet int
}

// Observer receives presentation events. Calls arrive from the session's
// read loop, one at a time, in message-arrival order. An observer must not
// call back into the session from inside a callback; the snapshot it is
// handed is self-contained.
type Observer interface {
	// StateChanged delivers a fresh snapshot after an accepted message
	StateChanged(snapshot Snapshot)

	// Notice delivers a transient human-readable announcement
	Notice(text string)
}

// Endpoint returns the connect URL for a table and player
func Endpoint(baseURL, tableID, playerID string) string {
	return fmt.Sprintf("%s/connect/%s/%s", baseURL, tableID, playerID)
}

// Session owns the persistent connection to the card room. All inbound
// traffic is handled by the read loop in arrival order with no buffering
// beyond the transport's own; a later push always wins wholesale. Sends
// are fire-and-forget: the next table-state push is the implicit ack.
type Session struct {
	id       string
	conn     *websocket.Conn
	send     chan wire.ClientMessage
	done     chan struct{}
	closeSnd sync.Once
	log      logrus.FieldLogger

	mu       sync.Mutex
	state    ConnectionState
	err      error
	store    *table.Store
	composer *Composer
	observer Observer
}

// NewSession returns a session in the connecting state. The observer may
// be nil for a headless session.
func NewSession(observer Observer) *Session {
	s := &Session{
		id:       uuid.New().String(),
		send:     make(chan wire.ClientMessage, 256),
		done:     make(chan struct{}),
		state:    StateConnecting,
		store:    table.NewStore(),
		observer: observer,
	}

	s.log = logrus.WithField("session", s.id)
	s.composer = NewComposer(s.enqueue)
	return s
}

// Dial establishes the websocket connection and starts the read and write
// loops. The session stays in the connecting state until the server's
// hello arrives. A dial failure is terminal; there is no retry.
func (s *Session) Dial(ctx context.Context, url string) error {
	dialer := websocket.Dialer{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
	}

	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		err = fmt.Errorf("could not connect to %s: %w", url, err)
		s.fail(err)
		close(s.done)
		return err
	}

	s.log.WithField("url", url).Debug("connection established")
	s.conn = conn
	go s.writeLoop()
	go s.readLoop()
	return nil
}

// Done is closed once the session is finished, either by Close or by a
// transport failure
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Err returns the terminal transport error, if any
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// State returns the connection lifecycle state
func (s *Session) State() ConnectionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns the current presentation view
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// DeclareReady declares the hero ready for the next hand
func (s *Session) DeclareReady() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.composer.DeclareReady()
}

// SitOut tells the server to deal the hero out of the next hand
func (s *Session) SitOut() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.composer.SitOut()
}

// BuyIn requests a fresh stack. Only allowed between hands when the hero
// is out of chips.
func (s *Session) BuyIn() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	state := s.store.State()
	hero := s.store.Player()
	if state == nil || hero == nil || state.Status != table.StatusDone || hero.Chips > 0 {
		return errors.New("buying back in is only allowed between hands when you are out of chips")
	}

	return s.composer.BuyIn()
}

// SubmitAction submits a betting action chosen by the user
func (s *Session) SubmitAction(t action.Type) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.composer.Submit(t)
}

// SetPendingBet queues the amount for the next bet or raise
func (s *Session) SetPendingBet(chips int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.composer.SetPendingBet(chips)
}

// PendingBet returns the amount queued for the next bet or raise
func (s *Session) PendingBet() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.composer.PendingBet()
}

// Close tears the session down. The table snapshot is dropped and the
// connection is closed with a normal close frame.
func (s *Session) Close() {
	s.mu.Lock()
	if s.state == StateClosed {
		s.mu.Unlock()
		return
	}

	s.state = StateClosed
	s.store.Clear()
	s.mu.Unlock()

	s.closeSnd.Do(func() {
		close(s.send)
	})
}

// enqueue queues an outbound message for the write loop. Sending is only
// valid while connected; anything earlier is rejected rather than lost
// silently. Callers hold s.mu.
func (s *Session) enqueue(msg wire.ClientMessage) error {
	if s.state != StateConnected {
		return ErrNotConnected
	}

	select {
	case s.send <- msg:
		return nil
	default:
		return errors.New("the send buffer is full")
	}
}

func (s *Session) readLoop() {
	defer close(s.done)

	for {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			s.fail(fmt.Errorf("connection lost: %w", err))
			return
		}

		s.handleMessage(data)
	}
}

func (s *Session) writeLoop() {
	defer func() {
		_ = s.conn.Close()
	}()

	for msg := range s.send {
		data, err := wire.EncodeClientMessage(msg)
		if err != nil {
			s.log.WithError(err).Error("could not encode message")
			continue
		}

		s.log.WithField("message", string(data)).Trace("sending message")

		_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			s.log.WithError(err).Error("could not write message")
			return
		}
	}

	// channel closed; say goodbye
	_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// handleMessage processes one inbound frame. A malformed frame is dropped
// and logged, leaving all prior state untouched; an unrecognised tag is
// ignored so newer servers don't break older clients.
func (s *Session) handleMessage(data []byte) {
	msg, err := wire.DecodeServerMessage(data)
	if err != nil {
		s.log.WithError(err).Warn("dropping malformed message")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch msg.Type {
	case wire.MessageTypeHello:
		s.log.Debug("server greeting received")
		if s.state == StateConnecting {
			s.state = StateConnected
		}
		s.notifyLocked()

	case wire.MessageTypeTableState, wire.MessageTypeIllegalAction:
		if msg.Type == wire.MessageTypeIllegalAction {
			s.noticeLocked("that action was not allowed")
		}

		s.store.Replace(msg.TableState, msg.PlayerState, msg.Result)
		s.composer.ObservePush(msg.TableState, table.Evaluate(msg.TableState, msg.PlayerState))
		s.notifyLocked()

	case wire.MessageTypePlayerConnected:
		s.noticeLocked(fmt.Sprintf("%s has entered the game", msg.PlayerID))

	case wire.MessageTypePlayerDisconnected:
		s.noticeLocked(fmt.Sprintf("lost connection to %s, they will sit out until they return", msg.PlayerID))

	case wire.MessageTypePlayerAction:
		if msg.PlayerAction != nil && msg.PlayerAction.Type.IsValid() {
			s.noticeLocked(fmt.Sprintf("%s %s", msg.PlayerAction.PlayerID, msg.PlayerAction.Type.LogMessage(msg.PlayerAction.Chips)))
		}

	default:
		s.log.WithField("type", int(msg.Type)).Debug("received unrecognised message type")
	}
}

// fail records a terminal transport error. A session that was closed on
// purpose stays closed.
func (s *Session) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateClosed || s.state == StateError {
		return
	}

	s.state = StateError
	s.err = err
	s.log.WithError(err).Error("session failed")
	s.notifyLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	return Snapshot{
		Connection: s.state,
		Table:      s.store.State(),
		Player:     s.store.Player(),
		Result:     s.store.Result(),
		Legality:   table.Evaluate(s.store.State(), s.store.Player()),
		Phase:      s.composer.Phase(),
		PendingBet: s.composer.PendingBet(),
	}
}

func (s *Session) notifyLocked() {
	if s.observer == nil {
		return
	}

	s.observer.StateChanged(s.snapshotLocked())
}

func (s *Session) noticeLocked(text string) {
	if s.observer == nil {
		return
	}

	s.observer.Notice(text)
}
