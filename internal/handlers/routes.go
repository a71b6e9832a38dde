package handlers

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes wires every engine endpoint onto the mux
func RegisterRoutes(mux *http.ServeMux, game *GameHandler, puzzles *PuzzleHandler, dict *DictionaryHandler) {
	mux.HandleFunc("POST /api/session", game.CreateSession)
	mux.HandleFunc("POST /api/session/{id}/word", game.SubmitWord)
	mux.HandleFunc("GET /api/session/{id}/stats", game.Stats)
	mux.HandleFunc("POST /api/session/{id}/reset", game.Reset)
	mux.HandleFunc("GET /api/session/{id}/alternatives", game.Alternatives)

	mux.HandleFunc("GET /api/puzzle/daily", puzzles.Daily)

	mux.HandleFunc("GET /api/words/{prefix}", dict.Words)
	mux.HandleFunc("POST /api/score", dict.Score)
	mux.HandleFunc("GET /healthz", dict.Health)

	mux.Handle("GET /metrics", promhttp.Handler())
}
