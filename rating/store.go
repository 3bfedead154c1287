package rating

import (
	"sync"
)

// Mode selects how Rate treats a movie the user already rated.
type Mode string

const (
	// ModeAppend removes only the identical (movie, value) pair before adding,
	// so re-rating at a different value leaves two entries for the movie.
	ModeAppend Mode = "append"
	// ModeReplace removes every entry for the movie before adding.
	ModeReplace Mode = "replace"
)

type Option func(s *Store)

func WithMode(m Mode) Option {
	return func(s *Store) {
		s.mode = m
	}
}

// entrySet keeps insertion order so iteration is reproducible.
type entrySet struct {
	entries []Entry
	index   map[Entry]struct{}
}

func newEntrySet() *entrySet {
	return &entrySet{index: make(map[Entry]struct{})}
}

func (s *entrySet) add(e Entry) {
	if _, ok := s.index[e]; ok {
		return
	}
	s.index[e] = struct{}{}
	s.entries = append(s.entries, e)
}

func (s *entrySet) discard(match func(Entry) bool) {
	kept := s.entries[:0]
	for _, e := range s.entries {
		if match(e) {
			delete(s.index, e)
			continue
		}
		kept = append(kept, e)
	}
	s.entries = kept
}

// Store maps user ids to their rating sets. Users iterate in insertion order.
// Writes take the exclusive lock, reads and snapshots the shared one.
type Store struct {
	mu    sync.RWMutex
	mode  Mode
	users map[int]*entrySet
	order []int
}

// NewStore builds the per-user rating sets from raw rows.
func NewStore(records []Record, opts ...Option) *Store {
	s := &Store{
		mode:  ModeAppend,
		users: make(map[int]*entrySet),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, r := range records {
		s.userSet(r.UserID).add(Entry{MovieID: r.MovieID, Value: r.Value})
	}
	return s
}

// userSet must be called with the write lock held or during construction.
func (s *Store) userSet(userID int) *entrySet {
	set, ok := s.users[userID]
	if !ok {
		set = newEntrySet()
		s.users[userID] = set
		s.order = append(s.order, userID)
	}
	return set
}

func (s *Store) Mode() Mode {
	return s.mode
}

// EnsureUser creates an empty profile for a new user and reports whether it did.
func (s *Store) EnsureUser(userID int) (bool, error) {
	if userID <= 0 {
		return false, ErrInvalidUser
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[userID]; ok {
		return false, nil
	}
	s.userSet(userID)
	return true, nil
}

func (s *Store) HasUser(userID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.users[userID]
	return ok
}

// MaxUserID returns the highest known user id, 0 for an empty store.
func (s *Store) MaxUserID() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	highest := 0
	for _, id := range s.order {
		if id > highest {
			highest = id
		}
	}
	return highest
}

// Users returns user ids in insertion order.
func (s *Store) Users() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]int(nil), s.order...)
}

// Entries returns a copy of the user's rating set. Unknown users have none.
func (s *Store) Entries(userID int) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, ok := s.users[userID]
	if !ok {
		return nil
	}
	return append([]Entry(nil), set.entries...)
}

// Rate records a rating for the user, creating the profile when needed.
func (s *Store) Rate(userID, movieID int, value float64) error {
	if userID <= 0 {
		return ErrInvalidUser
	}
	if err := ValidateValue(value); err != nil {
		return err
	}

	entry := Entry{MovieID: movieID, Value: value}

	s.mu.Lock()
	defer s.mu.Unlock()

	set := s.userSet(userID)
	switch s.mode {
	case ModeReplace:
		set.discard(func(e Entry) bool { return e.MovieID == movieID })
	default:
		set.discard(func(e Entry) bool { return e == entry })
	}
	set.add(entry)
	return nil
}

// Snapshot copies every user's rating set under one read lock.
func (s *Store) Snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := &Snapshot{
		order:   append([]int(nil), s.order...),
		ratings: make(map[int][]Entry, len(s.users)),
	}
	for id, set := range s.users {
		snap.ratings[id] = append([]Entry(nil), set.entries...)
	}
	return snap
}

// Snapshot is a read-only, point-in-time view of a Store.
type Snapshot struct {
	order   []int
	ratings map[int][]Entry
}

// Users returns user ids in the store's insertion order.
func (s *Snapshot) Users() []int {
	return s.order
}

func (s *Snapshot) Entries(userID int) []Entry {
	return s.ratings[userID]
}
