package handlers

import (
	"wordchain/internal/models"
)

// SubmitWordRequest is the body of POST /api/session/{id}/word
type SubmitWordRequest struct {
	Word string `json:"word"`
}

// SessionResponse describes a chain session to the client
type SessionResponse struct {
	ID            string   `json:"id"`
	Words         []string `json:"words"`
	CurrentStreak int      `json:"currentStreak"`
	MaxStreak     int      `json:"maxStreak"`
}

// WordsResponse is the body of GET /api/words/{prefix}
type WordsResponse struct {
	Prefix string   `json:"prefix"`
	Words  []string `json:"words"`
	Count  int      `json:"count"`
}

// ScoreRequest is the body of POST /api/score
type ScoreRequest struct {
	Chain           []string        `json:"chain"`
	MoveTimes       []float64       `json:"moveTimes"`
	TerminalWords   []string        `json:"terminalWords"`
	Mode            models.GameMode `json:"mode"`
	ParMoves        int             `json:"parMoves"`
	SolveTime       float64         `json:"solveTime"`
	InvalidAttempts int             `json:"invalidAttempts"`
	HintsUsed       int             `json:"hintsUsed"`
	PowerUpsUsed    []string        `json:"powerUpsUsed"`
}

// StatusResponse is the body of GET /healthz
type StatusResponse struct {
	Status           string                `json:"status"`
	DictionaryStatus string                `json:"dictionaryStatus"`
	Cache            models.CacheAnalytics `json:"cache"`
}
