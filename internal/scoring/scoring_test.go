package scoring

import (
	"testing"

	"wordchain/internal/models"
)

func TestCalculateWordScore(t *testing.T) {
	e := NewEngine()

	tests := []struct {
		name       string
		word       string
		moveTime   float64
		isTerminal bool
		streak     int
		check      func(t *testing.T, ws models.WordScore)
	}{
		{
			name:     "quiz earns rare and speed bonuses",
			word:     "quiz",
			moveTime: 2,
			streak:   1,
			check: func(t *testing.T, ws models.WordScore) {
				if ws.RareBonus == 0 {
					t.Error("quiz (q, z) earned no rare-letter bonus")
				}
				if ws.RareBonus != 2*rareLetterBonus {
					t.Errorf("RareBonus = %d, want %d", ws.RareBonus, 2*rareLetterBonus)
				}
				if ws.SpeedBonus == 0 {
					t.Error("2s move earned no speed bonus")
				}
				if ws.LengthBonus != 0 {
					t.Errorf("four-letter word earned length bonus %d", ws.LengthBonus)
				}
			},
		},
		{
			name:     "long word earns length bonus",
			word:     "alliance",
			moveTime: 10,
			check: func(t *testing.T, ws models.WordScore) {
				if ws.LengthBonus != 4*lengthBonusPerLetter {
					t.Errorf("LengthBonus = %d, want %d", ws.LengthBonus, 4*lengthBonusPerLetter)
				}
				if ws.SpeedBonus != 0 {
					t.Error("slow move earned a speed bonus")
				}
				if ws.RareBonus != 0 {
					t.Error("alliance earned a rare-letter bonus")
				}
			},
		},
		{
			name:       "terminal word earns flat bonus",
			word:       "buzz",
			moveTime:   10,
			isTerminal: true,
			check: func(t *testing.T, ws models.WordScore) {
				if ws.TerminalBonus != terminalBonus {
					t.Errorf("TerminalBonus = %d, want %d", ws.TerminalBonus, terminalBonus)
				}
			},
		},
		{
			name:     "five-word streak raises the multiplier",
			word:     "cat",
			moveTime: 2,
			streak:   5,
			check: func(t *testing.T, ws models.WordScore) {
				want := int(float64(5*streakBonusPerWord) * 1.5)
				if ws.StreakBonus != want {
					t.Errorf("StreakBonus = %d, want %d", ws.StreakBonus, want)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := e.CalculateWordScore(tt.word, tt.moveTime, tt.isTerminal, tt.streak)
			if ws.Base != basePoints {
				t.Errorf("Base = %d, want %d", ws.Base, basePoints)
			}
			wantTotal := ws.Base + ws.LengthBonus + ws.RareBonus + ws.StreakBonus + ws.SpeedBonus + ws.TerminalBonus
			if ws.Total != wantTotal {
				t.Errorf("Total = %d, want sum of components %d", ws.Total, wantTotal)
			}
			tt.check(t, ws)
		})
	}
}

func TestCalculateScoreSkipsStartWord(t *testing.T) {
	e := NewEngine()
	b := e.CalculateScore(Request{
		Chain:     []string{"puzzle", "lethal"},
		MoveTimes: []float64{0, 3},
		Mode:      models.ModeClassic,
	})

	if len(b.WordScores) != 1 {
		t.Fatalf("WordScores = %v, want only the continuation scored", b.WordScores)
	}
	if b.WordScores[0].Word != "lethal" {
		t.Errorf("scored %q, want lethal", b.WordScores[0].Word)
	}
}

func TestCalculateScoreIsReproducible(t *testing.T) {
	e := NewEngine()
	req := Request{
		Chain:         []string{"puzzle", "lethal", "alliance", "cezve"},
		MoveTimes:     []float64{0, 2, 3, 9},
		TerminalWords: []string{"cezve"},
		Mode:          models.ModeDaily,
		ParMoves:      5,
		SolveTime:     40,
		HintsUsed:     1,
	}

	first := e.CalculateScore(req)
	second := e.CalculateScore(req)

	if first.Total != second.Total || first.DailyBonus != second.DailyBonus {
		t.Errorf("identical inputs scored differently: %+v vs %+v", first, second)
	}
}

func TestCalculateScoreStreakResetOnSlowMove(t *testing.T) {
	e := NewEngine()
	b := e.CalculateScore(Request{
		Chain:     []string{"aa", "ab", "bc", "cd"},
		MoveTimes: []float64{0, 2, 20, 2},
		Mode:      models.ModeClassic,
	})

	// ab: streak 1, bc: slow resets to 0, cd: streak 1 again.
	if b.WordScores[0].StreakBonus == 0 {
		t.Error("first quick move earned no streak bonus")
	}
	if b.WordScores[1].StreakBonus != 0 {
		t.Error("slow move kept its streak bonus")
	}
	if b.WordScores[2].StreakBonus != b.WordScores[0].StreakBonus {
		t.Error("streak did not restart after the slow move")
	}
}

func TestCalculateScoreDailyBonuses(t *testing.T) {
	e := NewEngine()

	req := Request{
		Chain:     []string{"puzzle", "lethal", "alliance"},
		MoveTimes: []float64{0, 10, 10},
		ParMoves:  5,
		SolveTime: 30,
	}

	classic := e.CalculateScore(req)
	req.Mode = models.ModeDaily
	daily := e.CalculateScore(req)

	if classic.DailyBonus != 0 {
		t.Errorf("classic mode paid a daily bonus of %d", classic.DailyBonus)
	}

	// Completion 50, under par by 3 moves, fast solve, one rare z.
	want := dailyCompletionBonus + 3*dailyUnderParPerMove + dailyFastSolveBonus + dailyRareLetterBonus
	if daily.DailyBonus != want {
		t.Errorf("DailyBonus = %d, want %d", daily.DailyBonus, want)
	}
	if daily.Total != classic.Total+want {
		t.Errorf("Total = %d, want classic total %d plus bonus %d", daily.Total, classic.Total, want)
	}
}

func TestCalculateScorePenaltiesAndFloor(t *testing.T) {
	e := NewEngine()
	b := e.CalculateScore(Request{
		Chain:           []string{"aa", "ab"},
		MoveTimes:       []float64{0, 10},
		Mode:            models.ModeClassic,
		InvalidAttempts: 2,
		HintsUsed:       1,
		PowerUpsUsed:    []string{"skip", "reveal"},
	})

	wantPenalties := 2*invalidAttemptPenalty + hintPenalty + 2*powerUpPenalty
	if b.Penalties != wantPenalties {
		t.Errorf("Penalties = %d, want %d", b.Penalties, wantPenalties)
	}
	// 10 base - 50 penalties floors at zero.
	if b.Total != 0 {
		t.Errorf("Total = %d, want floor at 0", b.Total)
	}
}
