package handlers

import (
	"encoding/json"
	"net/http"

	"wordchain/internal/cache"
	"wordchain/internal/loader"
	"wordchain/internal/scoring"
)

// DictionaryHandler serves word lookups, scoring and health endpoints
type DictionaryHandler struct {
	loader *loader.Loader
	cache  *cache.TieredCache
	scorer *scoring.Engine
}

// NewDictionaryHandler creates a dictionary handler
func NewDictionaryHandler(l *loader.Loader, c *cache.TieredCache, scorer *scoring.Engine) *DictionaryHandler {
	return &DictionaryHandler{loader: l, cache: c, scorer: scorer}
}

// Words handles GET /api/words/{prefix}
func (h *DictionaryHandler) Words(w http.ResponseWriter, r *http.Request) {
	prefix := r.PathValue("prefix")
	if len(prefix) < 2 {
		respondWithError(w, http.StatusBadRequest, "prefix must be at least two letters", "", nil)
		return
	}

	words, err := h.loader.GetWordsWithPrefix(r.Context(), prefix)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, WordsResponse{
		Prefix: prefix,
		Words:  words,
		Count:  len(words),
	})
}

// Score handles POST /api/score
func (h *DictionaryHandler) Score(w http.ResponseWriter, r *http.Request) {
	var req ScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body", "", err)
		return
	}
	if len(req.Chain) == 0 {
		respondWithError(w, http.StatusBadRequest, "chain is required", "", nil)
		return
	}

	breakdown := h.scorer.CalculateScore(scoring.Request{
		Chain:           req.Chain,
		MoveTimes:       req.MoveTimes,
		TerminalWords:   req.TerminalWords,
		Mode:            req.Mode,
		ParMoves:        req.ParMoves,
		SolveTime:       req.SolveTime,
		InvalidAttempts: req.InvalidAttempts,
		HintsUsed:       req.HintsUsed,
		PowerUpsUsed:    req.PowerUpsUsed,
	})

	respondJSON(w, http.StatusOK, breakdown)
}

// Health handles GET /healthz
func (h *DictionaryHandler) Health(w http.ResponseWriter, r *http.Request) {
	status := http.StatusOK
	dictStatus := h.loader.Status()
	if dictStatus != loader.StatusReady {
		status = http.StatusServiceUnavailable
	}

	respondJSON(w, status, StatusResponse{
		Status:           http.StatusText(status),
		DictionaryStatus: dictStatus.String(),
		Cache:            h.cache.Analytics(),
	})
}
