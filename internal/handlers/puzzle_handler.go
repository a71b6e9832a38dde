package handlers

import (
	"net/http"
	"sync"
	"time"

	"wordchain/internal/models"
	"wordchain/internal/puzzle"
)

// PuzzleHandler serves the daily puzzle, generating it at most once per
// calendar day
type PuzzleHandler struct {
	generator *puzzle.Generator

	mu      sync.Mutex
	current *models.DailyPuzzle
}

// NewPuzzleHandler creates a puzzle handler
func NewPuzzleHandler(generator *puzzle.Generator) *PuzzleHandler {
	return &PuzzleHandler{generator: generator}
}

// Daily handles GET /api/puzzle/daily
func (h *PuzzleHandler) Daily(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	day := now.Format("2006-01-02")

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.current == nil || h.current.Date != day {
		p, err := h.generator.Generate(r.Context(), now)
		if err != nil {
			if _, ok := err.(*puzzle.GenerationError); ok {
				respondWithError(w, http.StatusServiceUnavailable, "no puzzle available today", "puzzle generation failed", err)
				return
			}
			respondEngineError(w, err)
			return
		}
		h.current = p
	}

	// The full solution set stays server-side; clients get the frame.
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"id":         h.current.ID,
		"date":       h.current.Date,
		"startWord":  h.current.StartWord,
		"targetWord": h.current.TargetWord,
		"parMoves":   h.current.ParMoves,
		"difficulty": h.current.Difficulty,
	})
}
