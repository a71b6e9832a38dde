package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"wordchain/internal/loader"
)

func respondWithError(w http.ResponseWriter, status int, userMsg, logMsg string, err error) {
	if err != nil {
		if logMsg == "" {
			logMsg = userMsg
		}
		log.Printf("%s: %v", logMsg, err)
	}

	respondJSON(w, status, map[string]string{"error": userMsg})
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// respondEngineError maps infrastructure failures onto status codes. An
// unready dictionary is a 503 so clients know to retry, never an empty
// word list.
func respondEngineError(w http.ResponseWriter, err error) {
	if errors.Is(err, loader.ErrNotInitialized) {
		respondWithError(w, http.StatusServiceUnavailable, "dictionary not ready", "", err)
		return
	}
	var loadErr *loader.PrefixLoadError
	if errors.As(err, &loadErr) {
		respondWithError(w, http.StatusBadGateway, "dictionary temporarily unavailable", "prefix load failed", err)
		return
	}
	respondWithError(w, http.StatusInternalServerError, "internal error", "", err)
}
