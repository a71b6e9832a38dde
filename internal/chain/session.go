package chain

import (
	"time"

	"github.com/google/uuid"
)

// Session is the mutable state of one game: the chain built so far, the
// words already used, streak counters and per-word memoization caches.
// It is owned by the caller and passed into validator methods, so
// concurrent games never share state.
type Session struct {
	ID            string
	Words         []string
	CurrentStreak int
	MaxStreak     int
	TerminalWords []string
	StartedAt     time.Time

	used       map[string]struct{}
	branchMemo map[string]float64
	nextMemo   map[string][]string
}

// NewSession creates an empty session for a new game
func NewSession() *Session {
	return &Session{
		ID:         uuid.NewString(),
		StartedAt:  time.Now(),
		used:       make(map[string]struct{}),
		branchMemo: make(map[string]float64),
		nextMemo:   make(map[string][]string),
	}
}

// LastWord returns the chain's final word, or "" for an empty chain
func (s *Session) LastWord() string {
	if len(s.Words) == 0 {
		return ""
	}
	return s.Words[len(s.Words)-1]
}

// IsUsed reports whether a word has already been played this session
func (s *Session) IsUsed(word string) bool {
	_, ok := s.used[word]
	return ok
}

// append records a validated word and bumps the streak counters
func (s *Session) append(word string, terminal bool) {
	s.Words = append(s.Words, word)
	s.used[word] = struct{}{}
	s.CurrentStreak++
	if s.CurrentStreak > s.MaxStreak {
		s.MaxStreak = s.CurrentStreak
	}
	if terminal {
		s.TerminalWords = append(s.TerminalWords, word)
	}
}

// Reset clears the chain, the used-word set, streak counters, the
// terminal-word log and both memoization caches. Call it at the start of
// every new game.
func (s *Session) Reset() {
	s.Words = nil
	s.CurrentStreak = 0
	s.MaxStreak = 0
	s.TerminalWords = nil
	s.used = make(map[string]struct{})
	s.branchMemo = make(map[string]float64)
	s.nextMemo = make(map[string][]string)
}
