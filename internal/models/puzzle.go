package models

import "time"

// DailyPuzzle is an immutable puzzle materialized once per calendar day
type DailyPuzzle struct {
	ID         string     `json:"id"`
	Date       string     `json:"date"` // YYYY-MM-DD
	StartWord  string     `json:"startWord"`
	TargetWord string     `json:"targetWord"`
	ParMoves   int        `json:"parMoves"`
	Difficulty Difficulty `json:"difficulty"`

	// Every valid move sequence found at generation time within the
	// search bound. Each path starts at StartWord and ends at TargetWord.
	Paths [][]string `json:"paths"`

	GeneratedAt time.Time `json:"generatedAt"`
}

// ShortestPath returns the discovered path with the fewest moves, or nil
// if generation found none
func (p *DailyPuzzle) ShortestPath() []string {
	var shortest []string
	for _, path := range p.Paths {
		if shortest == nil || len(path) < len(shortest) {
			shortest = path
		}
	}
	return shortest
}
