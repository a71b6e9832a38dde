package puzzle

import (
	"context"

	"wordchain/internal/chain"
	"wordchain/internal/models"
)

// maxPaths caps discovery: three valid paths are enough to price a
// puzzle, so the search stops early rather than exhaust the graph. The
// shortest discovered path is therefore not guaranteed to be globally
// shortest.
const maxPaths = 3

// Finder searches for valid word chains between two words
type Finder struct {
	validator *chain.Validator
}

// NewFinder creates a path finder over the given validator
func NewFinder(v *chain.Validator) *Finder {
	return &Finder{validator: v}
}

// FindPaths performs a bounded breadth-first expansion from start,
// recording every frontier path that reaches target. Paths never
// revisit their own words, and no path grows beyond maxDepth moves.
func (f *Finder) FindPaths(ctx context.Context, start, target string, maxDepth int) ([][]string, error) {
	// A throwaway session: path search must not see or touch any game's
	// used-word state, and the memoized next-word lookups stay local.
	search := chain.NewSession()

	frontier := [][]string{{start}}
	var found [][]string

	for len(frontier) > 0 && len(found) < maxPaths {
		var next [][]string

		for _, path := range frontier {
			if len(path)-1 >= maxDepth {
				continue
			}
			last := path[len(path)-1]

			candidates, err := f.validator.FindPossibleNextWords(ctx, search, last)
			if err != nil {
				return nil, err
			}

			for _, w := range candidates {
				if containsWord(path, w) {
					continue
				}
				extended := make([]string, len(path), len(path)+1)
				copy(extended, path)
				extended = append(extended, w)

				if w == target {
					found = append(found, extended)
					if len(found) >= maxPaths {
						return found, nil
					}
					continue
				}
				next = append(next, extended)
			}
		}
		frontier = next
	}
	return found, nil
}

// ParForPath maps a path's move count onto par and difficulty
func ParForPath(path []string) (int, models.Difficulty) {
	moves := len(path) - 1
	switch {
	case moves <= 3:
		return 3, models.DifficultyEasy
	case moves <= 5:
		return 5, models.DifficultyMedium
	default:
		return 7, models.DifficultyHard
	}
}

func containsWord(path []string, word string) bool {
	for _, w := range path {
		if w == word {
			return true
		}
	}
	return false
}
