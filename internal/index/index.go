package index

import (
	"math/rand"
	"regexp"
	"strings"
	"sync"
)

// wordPattern matches canonicalized words: lowercase letters only
var wordPattern = regexp.MustCompile(`^[a-z]+$`)

// terminalCombos are two-letter endings with no English continuation.
// This is a fixed heuristic pre-filter; the authoritative terminal test
// is an empty next-word bucket, and the two can disagree on rare words.
var terminalCombos = map[string]struct{}{
	"bb": {}, "bk": {}, "bt": {}, "cd": {}, "cs": {}, "dd": {},
	"fj": {}, "gg": {}, "gj": {}, "hh": {}, "hq": {}, "jj": {},
	"jx": {}, "kk": {}, "kq": {}, "lq": {}, "mj": {}, "mx": {},
	"pp": {}, "pq": {}, "qj": {}, "qq": {}, "qv": {}, "qx": {},
	"qz": {}, "tt": {}, "vv": {}, "vx": {}, "wx": {}, "xj": {},
	"xx": {}, "yy": {}, "zx": {}, "zz": {},
}

// Index is the authoritative in-memory word dictionary: exact membership
// plus two-letter prefix and suffix buckets for chain moves.
type Index struct {
	mu        sync.RWMutex
	words     map[string]struct{}
	prefixMap map[string]map[string]struct{}
	suffixMap map[string]map[string]struct{}

	minLength int
	maxLength int
}

// New creates an empty index enforcing the given word length bounds
func New(minLength, maxLength int) *Index {
	idx := &Index{
		minLength: minLength,
		maxLength: maxLength,
	}
	idx.resetLocked()
	return idx
}

// resetLocked reinitializes all maps. Callers must hold the write lock,
// except during construction.
func (idx *Index) resetLocked() {
	idx.words = make(map[string]struct{})
	idx.prefixMap = make(map[string]map[string]struct{})
	idx.suffixMap = make(map[string]map[string]struct{})
}

// Normalize canonicalizes a word for storage and comparison
func Normalize(word string) string {
	return strings.ToLower(strings.TrimSpace(word))
}

// Prefix returns the two-letter chain-linking prefix of a word, or ""
// if the word is too short
func Prefix(word string) string {
	word = Normalize(word)
	if len(word) < 2 {
		return ""
	}
	return word[:2]
}

// Suffix returns the two-letter chain-linking suffix of a word, or ""
// if the word is too short
func Suffix(word string) string {
	word = Normalize(word)
	if len(word) < 2 {
		return ""
	}
	return word[len(word)-2:]
}

// validFormat reports whether a canonicalized word is storable
func (idx *Index) validFormat(word string) bool {
	if len(word) < idx.minLength || len(word) > idx.maxLength {
		return false
	}
	return wordPattern.MatchString(word)
}

// AddWord inserts a word into the index. Malformed words are silently
// dropped. Re-adding an existing word is a no-op, so the invariant that
// membership in words, prefixMap and suffixMap always agree holds after
// every call.
func (idx *Index) AddWord(word string) {
	word = Normalize(word)
	if !idx.validFormat(word) {
		return
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, exists := idx.words[word]; exists {
		return
	}

	idx.words[word] = struct{}{}

	prefix := word[:2]
	if idx.prefixMap[prefix] == nil {
		idx.prefixMap[prefix] = make(map[string]struct{})
	}
	idx.prefixMap[prefix][word] = struct{}{}

	suffix := word[len(word)-2:]
	if idx.suffixMap[suffix] == nil {
		idx.suffixMap[suffix] = make(map[string]struct{})
	}
	idx.suffixMap[suffix][word] = struct{}{}
}

// IsValidWord reports whether the word is in the dictionary
func (idx *Index) IsValidWord(word string) bool {
	word = Normalize(word)
	if word == "" {
		return false
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	_, ok := idx.words[word]
	return ok
}

// IsValidChain reports whether next may legally follow prev: the last
// two letters of prev must equal the first two letters of next
func (idx *Index) IsValidChain(prev, next string) bool {
	s := Suffix(prev)
	p := Prefix(next)
	if s == "" || p == "" {
		return false
	}
	return s == p
}

// IsTerminalWord reports whether the word's ending is on the static
// terminal-combo list. See the note on terminalCombos.
func (idx *Index) IsTerminalWord(word string) bool {
	s := Suffix(word)
	if s == "" {
		return false
	}
	_, ok := terminalCombos[s]
	return ok
}

// ValidNextWords returns every known word that can follow the given word
func (idx *Index) ValidNextWords(word string) []string {
	s := Suffix(word)
	if s == "" {
		return nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return collect(idx.prefixMap[s])
}

// ValidPreviousWords returns every known word the given word could follow
func (idx *Index) ValidPreviousWords(word string) []string {
	p := Prefix(word)
	if p == "" {
		return nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return collect(idx.suffixMap[p])
}

// WordsWithPrefix returns every known word starting with the given
// prefix. Prefixes longer than two letters filter the two-letter bucket.
func (idx *Index) WordsWithPrefix(prefix string) []string {
	prefix = Normalize(prefix)
	if len(prefix) < 2 {
		return nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	bucket := idx.prefixMap[prefix[:2]]
	if len(prefix) == 2 {
		return collect(bucket)
	}

	var out []string
	for w := range bucket {
		if strings.HasPrefix(w, prefix) {
			out = append(out, w)
		}
	}
	return out
}

// RandomWord picks a uniform-random word within the given length bounds.
// ok is false when no word qualifies.
func (idx *Index) RandomWord(minLength, maxLength int) (string, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	var pool []string
	for w := range idx.words {
		if len(w) >= minLength && len(w) <= maxLength {
			pool = append(pool, w)
		}
	}
	if len(pool) == 0 {
		return "", false
	}
	return pool[rand.Intn(len(pool))], true
}

// WordCount returns the number of words currently indexed
func (idx *Index) WordCount() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return len(idx.words)
}

// Clear wipes the index back to its empty state
func (idx *Index) Clear() {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.resetLocked()
}

func collect(bucket map[string]struct{}) []string {
	if len(bucket) == 0 {
		return nil
	}
	out := make([]string, 0, len(bucket))
	for w := range bucket {
		out = append(out, w)
	}
	return out
}
