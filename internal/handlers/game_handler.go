package handlers

import (
	"encoding/json"
	"net/http"

	"wordchain/internal/chain"
	"wordchain/internal/models"
)

// GameHandler serves chain-session endpoints
type GameHandler struct {
	validator *chain.Validator
	sessions  *SessionRegistry
}

// NewGameHandler creates a game handler
func NewGameHandler(validator *chain.Validator, sessions *SessionRegistry) *GameHandler {
	return &GameHandler{validator: validator, sessions: sessions}
}

// CreateSession handles POST /api/session
func (h *GameHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	s := h.sessions.Create()
	respondJSON(w, http.StatusCreated, SessionResponse{
		ID:    s.ID,
		Words: []string{},
	})
}

// SubmitWord handles POST /api/session/{id}/word
func (h *GameHandler) SubmitWord(w http.ResponseWriter, r *http.Request) {
	var req SubmitWordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}

	var result models.ValidationResult
	var valErr error
	found := h.sessions.With(r.PathValue("id"), func(s *chain.Session) {
		result, valErr = h.validator.ValidateNextWord(r.Context(), s, req.Word)
	})
	if !found {
		respondWithError(w, http.StatusNotFound, "session not found", "", nil)
		return
	}
	if valErr != nil {
		respondEngineError(w, valErr)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// Stats handles GET /api/session/{id}/stats
func (h *GameHandler) Stats(w http.ResponseWriter, r *http.Request) {
	var stats models.ChainStats
	var statsErr error
	found := h.sessions.With(r.PathValue("id"), func(s *chain.Session) {
		stats, statsErr = h.validator.ChainStats(r.Context(), s)
	})
	if !found {
		respondWithError(w, http.StatusNotFound, "session not found", "", nil)
		return
	}
	if statsErr != nil {
		respondEngineError(w, statsErr)
		return
	}

	respondJSON(w, http.StatusOK, stats)
}

// Reset handles POST /api/session/{id}/reset
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var resp SessionResponse
	found := h.sessions.With(r.PathValue("id"), func(s *chain.Session) {
		h.validator.ResetUsedWords(s)
		resp = SessionResponse{ID: s.ID, Words: []string{}}
	})
	if !found {
		respondWithError(w, http.StatusNotFound, "session not found", "", nil)
		return
	}

	respondJSON(w, http.StatusOK, resp)
}

// Alternatives handles GET /api/session/{id}/alternatives
func (h *GameHandler) Alternatives(w http.ResponseWriter, r *http.Request) {
	var paths [][]string
	var pathErr error
	found := h.sessions.With(r.PathValue("id"), func(s *chain.Session) {
		paths, pathErr = h.validator.FindAlternativePaths(r.Context(), s, 3)
	})
	if !found {
		respondWithError(w, http.StatusNotFound, "session not found", "", nil)
		return
	}
	if pathErr != nil {
		respondEngineError(w, pathErr)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"paths": paths})
}
