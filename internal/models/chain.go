package models

// Difficulty classifies how constrained a position or puzzle is
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// FailReason identifies which validation rule a candidate word broke
type FailReason string

const (
	ReasonTooShort        FailReason = "too_short"
	ReasonNotInDictionary FailReason = "not_in_dictionary"
	ReasonAlreadyUsed     FailReason = "already_used"
	ReasonChainRule       FailReason = "chain_rule"
)

// ValidationResult is the outcome of checking a candidate word against a
// chain. Rule failures are reported here as values, never as errors:
// invalid input is an expected case, and the caller drives feedback from
// the reason.
type ValidationResult struct {
	Valid  bool       `json:"valid"`
	Word   string     `json:"word"`
	Reason FailReason `json:"reason,omitempty"`

	// Populated only on success.
	BranchingFactor float64    `json:"branchingFactor,omitempty"`
	NextWordCount   int        `json:"nextWordCount,omitempty"`
	IsTerminal      bool       `json:"isTerminal,omitempty"`
	PathDifficulty  Difficulty `json:"pathDifficulty,omitempty"`
	RareLetters     []string   `json:"rareLetters,omitempty"`
	Hints           []string   `json:"hints,omitempty"`
}

// ChainStats aggregates statistics over a whole chain
type ChainStats struct {
	Length           int                `json:"length"`
	UniqueLetters    int                `json:"uniqueLetters"`
	RareLetters      []string           `json:"rareLetters"`
	AverageLength    float64            `json:"averageLength"`
	LongestWord      string             `json:"longestWord"`
	CurrentStreak    int                `json:"currentStreak"`
	MaxStreak        int                `json:"maxStreak"`
	TerminalWords    []string           `json:"terminalWords"`
	BranchingFactors map[string]float64 `json:"branchingFactors"`
	PathDifficulty   Difficulty         `json:"pathDifficulty"`
}
