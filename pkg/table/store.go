package table

// Store holds the latest authoritative snapshot of table, hero, and result
// state. Each push replaces the triple wholesale; fields are never patched,
// and nothing older than the last push is retained. Ownership note: the
// stored values are written only by the connection's read loop and are
// treated as immutable once stored.
type Store struct {
	state  *State
	player *Player
	result string
}

// NewStore returns an empty store
func NewStore() *Store {
	return &Store{}
}

// Replace swaps in a new snapshot, discarding the previous one
func (s *Store) Replace(state *State, player *Player, result string) {
	s.state = state
	s.player = player
	s.result = result
}

// Clear drops the snapshot. Used on connection teardown.
func (s *Store) Clear() {
	s.state = nil
	s.player = nil
	s.result = ""
}

// State returns the current table state, or nil before the first push
func (s *Store) State() *State {
	return s.state
}

// Player returns the hero's state, or nil before the first push
func (s *Store) Player() *Player {
	return s.player
}

// Result returns the outcome announcement, or "" while a hand is running
func (s *Store) Result() string {
	return s.result
}
