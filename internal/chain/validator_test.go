package chain

import (
	"context"
	"errors"
	"testing"

	"wordchain/internal/index"
	"wordchain/internal/models"
)

// fakeDict serves a fixed word set without any loading machinery.
type fakeDict struct {
	idx *index.Index
	err error
}

func newFakeDict(words ...string) *fakeDict {
	idx := index.New(2, 15)
	for _, w := range words {
		idx.AddWord(w)
	}
	return &fakeDict{idx: idx}
}

func (d *fakeDict) Contains(_ context.Context, word string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	return d.idx.IsValidWord(word), nil
}

func (d *fakeDict) NextWords(_ context.Context, word string) ([]string, error) {
	if d.err != nil {
		return nil, d.err
	}
	return d.idx.ValidNextWords(word), nil
}

func (d *fakeDict) IsTerminalCombo(word string) bool {
	return d.idx.IsTerminalWord(word)
}

func validate(t *testing.T, v *Validator, s *Session, word string) models.ValidationResult {
	t.Helper()
	result, err := v.ValidateNextWord(context.Background(), s, word)
	if err != nil {
		t.Fatalf("ValidateNextWord(%q) errored: %v", word, err)
	}
	return result
}

func TestValidateNextWordCheckOrder(t *testing.T) {
	dict := newFakeDict("puzzle", "lethal", "legal", "alliance", "cat")
	v := NewValidator(dict, 2)

	tests := []struct {
		name       string
		chain      []string
		candidate  string
		wantValid  bool
		wantReason models.FailReason
	}{
		{
			name:      "first word needs no chain check",
			candidate: "puzzle",
			wantValid: true,
		},
		{
			name:      "valid continuation",
			chain:     []string{"puzzle"},
			candidate: "lethal",
			wantValid: true,
		},
		{
			name:       "too short",
			candidate:  "a",
			wantReason: models.ReasonTooShort,
		},
		{
			name:       "unknown word",
			candidate:  "xyzzy",
			wantReason: models.ReasonNotInDictionary,
		},
		{
			name:       "duplicate is reported as duplicate, not dictionary",
			chain:      []string{"cat"},
			candidate:  "cat",
			wantReason: models.ReasonAlreadyUsed,
		},
		{
			name:       "chain rule: lethal ends in al, legal does not start with it",
			chain:      []string{"puzzle", "lethal"},
			candidate:  "legal",
			wantReason: models.ReasonChainRule,
		},
		{
			name:      "chain rule: alliance is the valid continuation",
			chain:     []string{"puzzle", "lethal"},
			candidate: "alliance",
			wantValid: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession()
			for _, w := range tt.chain {
				if r := validate(t, v, s, w); !r.Valid {
					t.Fatalf("setup word %q rejected: %+v", w, r)
				}
			}

			result := validate(t, v, s, tt.candidate)
			if result.Valid != tt.wantValid {
				t.Errorf("Valid = %v, want %v (%+v)", result.Valid, tt.wantValid, result)
			}
			if result.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", result.Reason, tt.wantReason)
			}
		})
	}
}

func TestValidateNextWordCaseInsensitive(t *testing.T) {
	dict := newFakeDict("puzzle", "lethal")
	v := NewValidator(dict, 2)
	s := NewSession()

	if r := validate(t, v, s, "PUZZLE"); !r.Valid {
		t.Fatalf("uppercase submission rejected: %+v", r)
	}
	if r := validate(t, v, s, "Lethal"); !r.Valid {
		t.Fatalf("mixed-case continuation rejected: %+v", r)
	}
}

func TestValidateNextWordSideEffects(t *testing.T) {
	dict := newFakeDict("puzzle", "lethal", "alliance")
	v := NewValidator(dict, 2)
	s := NewSession()

	validate(t, v, s, "puzzle")
	validate(t, v, s, "lethal")

	if len(s.Words) != 2 || s.LastWord() != "lethal" {
		t.Errorf("chain = %v", s.Words)
	}
	if s.CurrentStreak != 2 || s.MaxStreak != 2 {
		t.Errorf("streaks = %d/%d, want 2/2", s.CurrentStreak, s.MaxStreak)
	}
}

func TestResetAllowsReuse(t *testing.T) {
	dict := newFakeDict("puzzle", "lethal")
	v := NewValidator(dict, 2)
	s := NewSession()

	validate(t, v, s, "puzzle")
	if r := validate(t, v, s, "puzzle"); r.Reason != models.ReasonAlreadyUsed {
		t.Fatalf("duplicate not rejected: %+v", r)
	}

	v.ResetUsedWords(s)
	if r := validate(t, v, s, "puzzle"); !r.Valid {
		t.Errorf("word rejected after reset: %+v", r)
	}
}

func TestValidateNextWordPropagatesDictionaryErrors(t *testing.T) {
	dict := newFakeDict("puzzle")
	dict.err = errors.New("dictionary not initialized")
	v := NewValidator(dict, 2)

	_, err := v.ValidateNextWord(context.Background(), NewSession(), "puzzle")
	if err == nil {
		t.Error("infrastructure failure surfaced as a validation result")
	}
}

func TestTerminalDetection(t *testing.T) {
	// Nothing starts with "zz", so buzz is terminal.
	dict := newFakeDict("puzzle", "buzz")
	v := NewValidator(dict, 2)
	s := NewSession()

	result := validate(t, v, s, "buzz")
	if !result.Valid {
		t.Fatalf("buzz rejected: %+v", result)
	}
	if !result.IsTerminal {
		t.Error("buzz not flagged terminal despite empty next bucket")
	}
	if len(s.TerminalWords) != 1 || s.TerminalWords[0] != "buzz" {
		t.Errorf("TerminalWords = %v", s.TerminalWords)
	}
}

func TestFindPossibleNextWordsExcludesUsed(t *testing.T) {
	dict := newFakeDict("puzzle", "lethal", "legal")
	v := NewValidator(dict, 2)
	s := NewSession()
	ctx := context.Background()

	validate(t, v, s, "lethal") // lethal is now used

	// Memoized before lethal was used would be wrong; fresh session sees it.
	s2 := NewSession()
	next, err := v.FindPossibleNextWords(ctx, s2, "puzzle")
	if err != nil {
		t.Fatalf("FindPossibleNextWords failed: %v", err)
	}
	if len(next) != 2 {
		t.Errorf("fresh session next = %v, want legal and lethal", next)
	}

	next, err = v.FindPossibleNextWords(ctx, s, "puzzle")
	if err != nil {
		t.Fatalf("FindPossibleNextWords failed: %v", err)
	}
	if len(next) != 1 || next[0] != "legal" {
		t.Errorf("next = %v, want [legal]", next)
	}
}

func TestBranchingFactorDepthOne(t *testing.T) {
	dict := newFakeDict("puzzle", "lethal", "legal", "lemon")
	v := NewValidator(dict, 2)
	s := NewSession()

	factor, err := v.CalculateBranchingFactor(context.Background(), s, "puzzle", 1)
	if err != nil {
		t.Fatalf("CalculateBranchingFactor failed: %v", err)
	}
	if factor != 3 {
		t.Errorf("depth-1 factor = %v, want 3 (immediate next words)", factor)
	}
}

func TestBranchingFactorDeepIsNormalized(t *testing.T) {
	dict := newFakeDict("puzzle", "lethal", "legal", "lemon", "alliance", "onion")
	v := NewValidator(dict, 2)
	s := NewSession()
	ctx := context.Background()

	shallow, err := v.CalculateBranchingFactor(ctx, s, "puzzle", 1)
	if err != nil {
		t.Fatalf("CalculateBranchingFactor failed: %v", err)
	}
	deep, err := v.CalculateBranchingFactor(ctx, s, "puzzle", 2)
	if err != nil {
		t.Fatalf("CalculateBranchingFactor failed: %v", err)
	}

	// Depth 2 divides by depth*2; with sparse continuations the deep
	// estimate must come in below the raw immediate count.
	if deep >= shallow {
		t.Errorf("deep factor %v not below shallow %v", deep, shallow)
	}
}

func TestRareLettersAndHints(t *testing.T) {
	// quartz contains q and z and has exactly one continuation.
	dict := newFakeDict("quartz", "tzar")
	v := NewValidator(dict, 2)
	s := NewSession()

	result := validate(t, v, s, "quartz")
	if !result.Valid {
		t.Fatalf("quartz rejected: %+v", result)
	}
	if len(result.RareLetters) != 2 {
		t.Errorf("RareLetters = %v, want q and z", result.RareLetters)
	}
	if result.PathDifficulty != models.DifficultyHard {
		t.Errorf("PathDifficulty = %v, want hard", result.PathDifficulty)
	}
	if len(result.Hints) != 1 || result.Hints[0] != "tza*" {
		t.Errorf("Hints = %v, want [tza*]", result.Hints)
	}
}

func TestFindDeadEndWords(t *testing.T) {
	// "lethal" leads to "alone"; alone's suffix "ne" has nothing, so it
	// is a dead end. "legal" leads to a rich "al" bucket.
	dict := newFakeDict("puzzle", "lethal", "alone", "legal", "alto", "tofu")
	v := NewValidator(dict, 2)
	s := NewSession()

	deadEnds, err := v.FindDeadEndWords(context.Background(), s, "puzzle", 2)
	if err != nil {
		t.Fatalf("FindDeadEndWords failed: %v", err)
	}

	found := false
	for _, w := range deadEnds {
		if w == "alone" {
			found = true
		}
	}
	if !found {
		t.Errorf("dead ends %v missing alone", deadEnds)
	}
}

func TestFindAlternativePaths(t *testing.T) {
	dict := newFakeDict("puzzle", "lethal", "legal", "alliance", "alto", "cello")
	v := NewValidator(dict, 2)
	s := NewSession()
	ctx := context.Background()

	// Empty chain has no starting point.
	paths, err := v.FindAlternativePaths(ctx, s, 3)
	if err != nil || paths != nil {
		t.Fatalf("paths from empty chain = %v, %v", paths, err)
	}

	validate(t, v, s, "puzzle")
	paths, err = v.FindAlternativePaths(ctx, s, 3)
	if err != nil {
		t.Fatalf("FindAlternativePaths failed: %v", err)
	}
	if len(paths) == 0 || len(paths) > 5 {
		t.Fatalf("found %d paths, want between 1 and 5", len(paths))
	}
	for _, p := range paths {
		if p[0] != "puzzle" {
			t.Errorf("path %v does not start at the chain's last word", p)
		}
		seen := map[string]int{}
		for _, w := range p {
			seen[w]++
			if seen[w] > 1 {
				t.Errorf("path %v revisits %q", p, w)
			}
		}
	}
}

func TestChainStats(t *testing.T) {
	dict := newFakeDict("puzzle", "lethal", "alliance")
	v := NewValidator(dict, 2)
	s := NewSession()
	ctx := context.Background()

	validate(t, v, s, "puzzle")
	validate(t, v, s, "lethal")
	validate(t, v, s, "alliance")

	stats, err := v.ChainStats(ctx, s)
	if err != nil {
		t.Fatalf("ChainStats failed: %v", err)
	}

	if stats.Length != 3 {
		t.Errorf("Length = %d, want 3", stats.Length)
	}
	if stats.LongestWord != "alliance" {
		t.Errorf("LongestWord = %q", stats.LongestWord)
	}
	wantAvg := float64(len("puzzle")+len("lethal")+len("alliance")) / 3
	if stats.AverageLength != wantAvg {
		t.Errorf("AverageLength = %v, want %v", stats.AverageLength, wantAvg)
	}
	if len(stats.RareLetters) != 1 || stats.RareLetters[0] != "z" {
		t.Errorf("RareLetters = %v, want [z]", stats.RareLetters)
	}
	if len(stats.BranchingFactors) != 3 {
		t.Errorf("BranchingFactors = %v, want one per word", stats.BranchingFactors)
	}
	if stats.MaxStreak != 3 {
		t.Errorf("MaxStreak = %d, want 3", stats.MaxStreak)
	}
}
