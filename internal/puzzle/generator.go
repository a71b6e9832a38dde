package puzzle

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"wordchain/internal/models"
)

// WordPicker is the slice of the dictionary the generator needs
type WordPicker interface {
	RandomWord(minLength, maxLength int) (string, bool)
	IsTerminalCombo(word string) bool
}

// GenerationError reports that no start/target pair yielded a valid
// path within the search bound
type GenerationError struct {
	Date     string
	Attempts int
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("no valid puzzle found for %s after %d word pairs", e.Date, e.Attempts)
}

// Generator materializes one DailyPuzzle per calendar day
type Generator struct {
	finder   *Finder
	words    WordPicker
	maxDepth int
	maxPairs int
}

// NewGenerator creates a puzzle generator. maxDepth bounds each path
// search; maxPairs bounds how many start/target pairs are tried.
func NewGenerator(finder *Finder, words WordPicker, maxDepth, maxPairs int) *Generator {
	if maxDepth <= 0 {
		maxDepth = 6
	}
	if maxPairs <= 0 {
		maxPairs = 10
	}
	return &Generator{finder: finder, words: words, maxDepth: maxDepth, maxPairs: maxPairs}
}

// Generate picks random word pairs until one admits at least one valid
// chain, then derives par and difficulty from the shortest discovered
// path. Pairs whose start word ends in a terminal combination are
// skipped outright: no chain can leave them.
func (g *Generator) Generate(ctx context.Context, date time.Time) (*models.DailyPuzzle, error) {
	day := date.Format("2006-01-02")

	for attempt := 0; attempt < g.maxPairs; attempt++ {
		start, ok := g.words.RandomWord(4, 8)
		if !ok {
			break
		}
		if g.words.IsTerminalCombo(start) {
			continue
		}
		target, ok := g.words.RandomWord(4, 10)
		if !ok || target == start {
			continue
		}

		paths, err := g.finder.FindPaths(ctx, start, target, g.maxDepth)
		if err != nil {
			return nil, fmt.Errorf("path search for %s -> %s: %w", start, target, err)
		}
		if len(paths) == 0 {
			log.Printf("puzzle: no path %s -> %s within depth %d, trying another pair", start, target, g.maxDepth)
			continue
		}

		shortest := paths[0]
		for _, p := range paths[1:] {
			if len(p) < len(shortest) {
				shortest = p
			}
		}
		par, difficulty := ParForPath(shortest)

		return &models.DailyPuzzle{
			ID:          uuid.NewString(),
			Date:        day,
			StartWord:   start,
			TargetWord:  target,
			ParMoves:    par,
			Difficulty:  difficulty,
			Paths:       paths,
			GeneratedAt: time.Now().UTC(),
		}, nil
	}

	return nil, &GenerationError{Date: day, Attempts: g.maxPairs}
}
