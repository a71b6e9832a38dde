package models

// GameMode selects which chain-completion bonuses apply
type GameMode string

const (
	ModeClassic GameMode = "classic"
	ModeDaily   GameMode = "daily"
)

// WordScore is the per-word component breakdown
type WordScore struct {
	Word          string `json:"word"`
	Base          int    `json:"base"`
	LengthBonus   int    `json:"lengthBonus"`
	RareBonus     int    `json:"rareBonus"`
	StreakBonus   int    `json:"streakBonus"`
	SpeedBonus    int    `json:"speedBonus"`
	TerminalBonus int    `json:"terminalBonus"`
	Total         int    `json:"total"`
}

// ScoreBreakdown is the full result of scoring a chain. It is derived
// data, recomputed from chain and timing inputs; nothing here persists
// between games.
type ScoreBreakdown struct {
	WordScores       []WordScore `json:"wordScores"`
	StreakMultiplier float64     `json:"streakMultiplier"`
	DailyBonus       int         `json:"dailyBonus"`
	Penalties        int         `json:"penalties"`
	Total            int         `json:"total"`
}
