package chain

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"wordchain/internal/index"
	"wordchain/internal/models"
)

// Dictionary is the loader's read surface, as the validator sees it
type Dictionary interface {
	Contains(ctx context.Context, word string) (bool, error)
	NextWords(ctx context.Context, word string) ([]string, error)
	IsTerminalCombo(word string) bool
}

const (
	// Branching-factor thresholds for difficulty classification.
	easyThreshold   = 15
	mediumThreshold = 7

	// A next word at or below this branching factor is a dead end risk.
	deadEndThreshold = 3

	// Recursive branching samples are capped to the first few candidates.
	branchSampleSize = 3

	branchingDepth      = 2
	maxAlternativePaths = 5
	maxHints            = 3
)

// rareLetters are worth bonus points and signal constrained positions
var rareLetters = []string{"q", "z", "x", "j"}

// Validator enforces the chain rule and derives difficulty signals. It
// holds no per-game state; every method takes the caller's Session.
type Validator struct {
	dict          Dictionary
	minWordLength int
}

// NewValidator creates a validator over the given dictionary
func NewValidator(dict Dictionary, minWordLength int) *Validator {
	if minWordLength < 2 {
		minWordLength = 2
	}
	return &Validator{dict: dict, minWordLength: minWordLength}
}

// ValidateNextWord checks a candidate against the session's chain. Rule
// checks run in a fixed order and short-circuit on the first failure:
// length, dictionary membership, duplicate, chain rule. Failures come
// back as a result value, never an error; errors are reserved for an
// unready or unreachable dictionary. On success the candidate is
// appended to the chain and the streak counters advance.
func (v *Validator) ValidateNextWord(ctx context.Context, s *Session, candidate string) (models.ValidationResult, error) {
	word := index.Normalize(candidate)
	result := models.ValidationResult{Word: word}

	if len(word) < v.minWordLength {
		result.Reason = models.ReasonTooShort
		return result, nil
	}

	known, err := v.dict.Contains(ctx, word)
	if err != nil {
		return result, err
	}
	if !known {
		result.Reason = models.ReasonNotInDictionary
		return result, nil
	}

	if s.IsUsed(word) {
		result.Reason = models.ReasonAlreadyUsed
		return result, nil
	}

	if last := s.LastWord(); last != "" {
		if !strings.HasPrefix(word, index.Suffix(last)) {
			result.Reason = models.ReasonChainRule
			return result, nil
		}
	}

	next, err := v.FindPossibleNextWords(ctx, s, word)
	if err != nil {
		return result, err
	}
	factor, err := v.CalculateBranchingFactor(ctx, s, word, branchingDepth)
	if err != nil {
		return result, err
	}

	result.Valid = true
	result.BranchingFactor = factor
	result.NextWordCount = len(next)
	result.IsTerminal = len(next) == 0
	result.PathDifficulty = classifyDifficulty(factor)
	result.RareLetters = rareLettersIn(word)
	if result.PathDifficulty == models.DifficultyHard {
		result.Hints = hintPreviews(next)
	}

	s.append(word, result.IsTerminal)
	return result, nil
}

// FindPossibleNextWords returns the dictionary's next-word bucket minus
// the session's used words. Results are memoized for the session's
// lifetime; Reset invalidates them.
func (v *Validator) FindPossibleNextWords(ctx context.Context, s *Session, word string) ([]string, error) {
	word = index.Normalize(word)
	if cached, ok := s.nextMemo[word]; ok {
		return cached, nil
	}

	bucket, err := v.dict.NextWords(ctx, word)
	if err != nil {
		return nil, err
	}

	possible := make([]string, 0, len(bucket))
	for _, w := range bucket {
		if w != word && !s.IsUsed(w) {
			possible = append(possible, w)
		}
	}
	sort.Strings(possible)

	s.nextMemo[word] = possible
	return possible, nil
}

// CalculateBranchingFactor estimates how open the position after a word
// is. At depth 1 it is the immediate next-word count; deeper levels add
// a bounded recursive sample (the first few candidates only) and
// normalize by depth * 2. It is a heuristic difficulty signal, not an
// exact reachability count.
func (v *Validator) CalculateBranchingFactor(ctx context.Context, s *Session, word string, depth int) (float64, error) {
	word = index.Normalize(word)
	memoKey := fmt.Sprintf("%s@%d", word, depth)
	if cached, ok := s.branchMemo[memoKey]; ok {
		return cached, nil
	}

	factor, err := v.branching(ctx, s, word, depth)
	if err != nil {
		return 0, err
	}

	s.branchMemo[memoKey] = factor
	return factor, nil
}

func (v *Validator) branching(ctx context.Context, s *Session, word string, depth int) (float64, error) {
	next, err := v.FindPossibleNextWords(ctx, s, word)
	if err != nil {
		return 0, err
	}
	if depth <= 1 {
		return float64(len(next)), nil
	}

	total := float64(len(next))
	sample := next
	if len(sample) > branchSampleSize {
		sample = sample[:branchSampleSize]
	}
	for _, w := range sample {
		sub, err := v.branching(ctx, s, w, depth-1)
		if err != nil {
			return 0, err
		}
		total += sub
	}
	return total / float64(depth*2), nil
}

// FindDeadEndWords collects next words whose branching factor is at or
// below the dead-end threshold, looking depth levels ahead. Players get
// warned before playing into them.
func (v *Validator) FindDeadEndWords(ctx context.Context, s *Session, word string, depth int) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string

	var walk func(word string, depth int) error
	walk = func(word string, depth int) error {
		if depth <= 0 {
			return nil
		}
		next, err := v.FindPossibleNextWords(ctx, s, word)
		if err != nil {
			return err
		}
		for i, w := range next {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}

			factor, err := v.branching(ctx, s, w, 1)
			if err != nil {
				return err
			}
			if factor <= deadEndThreshold {
				out = append(out, w)
			}
			// Bound the fan-out the same way branching sampling does.
			if i < branchSampleSize {
				if err := walk(w, depth-1); err != nil {
					return err
				}
			}
		}
		return nil
	}

	if err := walk(index.Normalize(word), depth); err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

// FindAlternativePaths explores continuations of the current chain up to
// the given depth, skipping words already in the chain or on the path
// being built. Discovery stops after a handful of paths to bound cost.
func (v *Validator) FindAlternativePaths(ctx context.Context, s *Session, depth int) ([][]string, error) {
	last := s.LastWord()
	if last == "" {
		return nil, nil
	}

	var paths [][]string
	path := []string{last}
	onPath := map[string]struct{}{last: {}}

	var walk func(word string, depth int) error
	walk = func(word string, depth int) error {
		if len(paths) >= maxAlternativePaths || depth <= 0 {
			return nil
		}
		next, err := v.FindPossibleNextWords(ctx, s, word)
		if err != nil {
			return err
		}
		for _, w := range next {
			if _, ok := onPath[w]; ok {
				continue
			}
			path = append(path, w)
			onPath[w] = struct{}{}

			candidate := make([]string, len(path))
			copy(candidate, path)
			paths = append(paths, candidate)

			if len(paths) < maxAlternativePaths {
				if err := walk(w, depth-1); err != nil {
					return err
				}
			}

			path = path[:len(path)-1]
			delete(onPath, w)
			if len(paths) >= maxAlternativePaths {
				break
			}
		}
		return nil
	}

	if err := walk(last, depth); err != nil {
		return nil, err
	}
	return paths, nil
}

// ChainStats aggregates statistics over the session's whole chain
func (v *Validator) ChainStats(ctx context.Context, s *Session) (models.ChainStats, error) {
	stats := models.ChainStats{
		Length:           len(s.Words),
		CurrentStreak:    s.CurrentStreak,
		MaxStreak:        s.MaxStreak,
		TerminalWords:    append([]string(nil), s.TerminalWords...),
		BranchingFactors: make(map[string]float64, len(s.Words)),
	}

	letters := make(map[rune]struct{})
	rare := make(map[string]struct{})
	var totalLength int
	var factorSum float64

	for _, w := range s.Words {
		totalLength += len(w)
		if len(w) > len(stats.LongestWord) {
			stats.LongestWord = w
		}
		for _, r := range w {
			letters[r] = struct{}{}
		}
		for _, l := range rareLettersIn(w) {
			rare[l] = struct{}{}
		}

		factor, err := v.CalculateBranchingFactor(ctx, s, w, branchingDepth)
		if err != nil {
			return models.ChainStats{}, err
		}
		stats.BranchingFactors[w] = factor
		factorSum += factor
	}

	stats.UniqueLetters = len(letters)
	for l := range rare {
		stats.RareLetters = append(stats.RareLetters, l)
	}
	sort.Strings(stats.RareLetters)

	if len(s.Words) > 0 {
		stats.AverageLength = float64(totalLength) / float64(len(s.Words))
		stats.PathDifficulty = classifyDifficulty(factorSum / float64(len(s.Words)))
	}
	return stats, nil
}

// ResetUsedWords clears the session back to a fresh game
func (v *Validator) ResetUsedWords(s *Session) {
	s.Reset()
}

// classifyDifficulty maps a branching factor onto a difficulty tier
func classifyDifficulty(factor float64) models.Difficulty {
	switch {
	case factor >= easyThreshold:
		return models.DifficultyEasy
	case factor >= mediumThreshold:
		return models.DifficultyMedium
	default:
		return models.DifficultyHard
	}
}

// rareLettersIn returns the rare letters occurring in a word, in rare-set order
func rareLettersIn(word string) []string {
	var out []string
	for _, l := range rareLetters {
		if strings.Contains(word, l) {
			out = append(out, l)
		}
	}
	return out
}

// hintPreviews truncates the first few next words into previews that
// nudge without giving the whole word away
func hintPreviews(next []string) []string {
	n := len(next)
	if n > maxHints {
		n = maxHints
	}
	hints := make([]string, 0, n)
	for _, w := range next[:n] {
		if len(w) <= 3 {
			hints = append(hints, w[:1]+strings.Repeat("*", len(w)-1))
			continue
		}
		hints = append(hints, w[:3]+strings.Repeat("*", len(w)-3))
	}
	return hints
}
