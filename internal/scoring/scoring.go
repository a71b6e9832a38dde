package scoring

import (
	"strings"

	"wordchain/internal/models"
)

// Point constants. Tuning these changes game balance, nothing else.
const (
	basePoints           = 10
	lengthBaseline       = 4
	lengthBonusPerLetter = 2
	rareLetterBonus      = 15

	speedThresholdSeconds = 5.0
	speedBonus            = 5

	streakBonusPerWord   = 2
	streakWindow         = 5
	streakMultiplierStep = 0.5

	terminalBonus = 25

	dailyCompletionBonus  = 50
	dailyUnderParPerMove  = 10
	dailyFastSolveBonus   = 30
	dailyFastSolveSeconds = 60.0
	dailyRareLetterBonus  = 5

	invalidAttemptPenalty = 5
	hintPenalty           = 10
	powerUpPenalty        = 15
)

const rareLetterSet = "qzxj"

// Request carries everything a score is computed from. The breakdown is
// a pure function of these fields; no state survives between games.
type Request struct {
	Chain []string

	// MoveTimes holds seconds elapsed per chain word, aligned with
	// Chain. The start word's entry is ignored.
	MoveTimes []float64

	// TerminalWords are the chain words that ended with no legal next move.
	TerminalWords []string

	Mode     models.GameMode
	ParMoves int

	// SolveTime is total seconds for the whole chain, used by the daily
	// fast-solve bonus.
	SolveTime float64

	InvalidAttempts int
	HintsUsed       int
	PowerUpsUsed    []string
}

// Engine computes score breakdowns. It is stateless; the streak
// accumulator lives on the stack of each CalculateScore call.
type Engine struct{}

// NewEngine creates a scoring engine
func NewEngine() *Engine {
	return &Engine{}
}

// CalculateWordScore scores a single word given its elapsed move time,
// terminal status and the current quick-move streak length
func (e *Engine) CalculateWordScore(word string, moveTime float64, isTerminal bool, streak int) models.WordScore {
	word = strings.ToLower(word)
	ws := models.WordScore{Word: word, Base: basePoints}

	if extra := len(word) - lengthBaseline; extra > 0 {
		ws.LengthBonus = extra * lengthBonusPerLetter
	}
	ws.RareBonus = countRareLetters(word) * rareLetterBonus

	if streak > 0 {
		multiplier := 1 + streakMultiplierStep*float64(streak/streakWindow)
		ws.StreakBonus = int(float64(streak*streakBonusPerWord) * multiplier)
	}
	if moveTime > 0 && moveTime < speedThresholdSeconds {
		ws.SpeedBonus = speedBonus
	}
	if isTerminal {
		ws.TerminalBonus = terminalBonus
	}

	ws.Total = ws.Base + ws.LengthBonus + ws.RareBonus + ws.StreakBonus + ws.SpeedBonus + ws.TerminalBonus
	return ws
}

// CalculateScore scores a whole chain. Every word past the start word
// earns points; daily-mode bonuses are added once at chain completion;
// penalties are flat per-occurrence deductions and the total never goes
// below zero.
func (e *Engine) CalculateScore(req Request) models.ScoreBreakdown {
	terminal := make(map[string]struct{}, len(req.TerminalWords))
	for _, w := range req.TerminalWords {
		terminal[strings.ToLower(w)] = struct{}{}
	}

	breakdown := models.ScoreBreakdown{StreakMultiplier: 1}

	streak := 0
	for i := 1; i < len(req.Chain); i++ {
		word := strings.ToLower(req.Chain[i])

		var moveTime float64
		if i < len(req.MoveTimes) {
			moveTime = req.MoveTimes[i]
		}
		if moveTime > 0 && moveTime < speedThresholdSeconds {
			streak++
		} else {
			streak = 0
		}

		_, isTerminal := terminal[word]
		ws := e.CalculateWordScore(word, moveTime, isTerminal, streak)
		breakdown.WordScores = append(breakdown.WordScores, ws)
		breakdown.Total += ws.Total

		if m := 1 + streakMultiplierStep*float64(streak/streakWindow); m > breakdown.StreakMultiplier {
			breakdown.StreakMultiplier = m
		}
	}

	if req.Mode == models.ModeDaily {
		breakdown.DailyBonus = e.dailyBonus(req)
		breakdown.Total += breakdown.DailyBonus
	}

	breakdown.Penalties = req.InvalidAttempts*invalidAttemptPenalty +
		req.HintsUsed*hintPenalty +
		len(req.PowerUpsUsed)*powerUpPenalty
	breakdown.Total -= breakdown.Penalties

	if breakdown.Total < 0 {
		breakdown.Total = 0
	}
	return breakdown
}

// dailyBonus sums the chain-completion bonuses that only daily mode pays
func (e *Engine) dailyBonus(req Request) int {
	bonus := dailyCompletionBonus

	moves := len(req.Chain) - 1
	if req.ParMoves > 0 && moves < req.ParMoves {
		bonus += (req.ParMoves - moves) * dailyUnderParPerMove
	}
	if req.SolveTime > 0 && req.SolveTime < dailyFastSolveSeconds {
		bonus += dailyFastSolveBonus
	}

	rare := 0
	for _, w := range req.Chain {
		rare += countRareLetters(strings.ToLower(w))
	}
	bonus += rare * dailyRareLetterBonus

	return bonus
}

func countRareLetters(word string) int {
	count := 0
	for _, r := range word {
		if strings.ContainsRune(rareLetterSet, r) {
			count++
		}
	}
	return count
}
