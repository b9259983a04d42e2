package engine

import (
	"strings"
	"time"

	"golang.org/x/exp/constraints"
)

// Search algorithm variants
type Algorithm int

const (
	AlgorithmSimple Algorithm = iota
	AlgorithmMinimax
	AlgorithmNegamax
	AlgorithmNegascout
	AlgorithmDeepSearch
	AlgorithmEvaluationOnly
	AlgorithmRandom
)

var algorithmNames = [...]string{
	AlgorithmSimple:         "simple",
	AlgorithmMinimax:        "minimax",
	AlgorithmNegamax:        "negamax",
	AlgorithmNegascout:      "negascout",
	AlgorithmDeepSearch:     "deep_search",
	AlgorithmEvaluationOnly: "evaluation_only",
	AlgorithmRandom:         "random",
}

func (a Algorithm) String() string {
	if a < 0 || int(a) >= len(algorithmNames) {
		return algorithmNames[AlgorithmSimple]
	}
	return algorithmNames[a]
}

// ParseAlgorithm maps a variant name to an Algorithm. Unknown names give AlgorithmSimple and ok == false.
func ParseAlgorithm(name string) (Algorithm, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "simple_search":
		return AlgorithmSimple, true
	case "iterative", "iterative_deepening", "deepsearch":
		return AlgorithmDeepSearch, true
	case "pvs":
		return AlgorithmNegascout, true
	}
	for i, n := range algorithmNames {
		if n == name {
			return Algorithm(i), true
		}
	}
	return AlgorithmSimple, false
}

const MaxSearchDepth = 64
const MaxQuiescenceDepth = 16
const DefaultQuiescenceDepth = 5
const DefaultSearchDepth = 4
const DefaultMaxDepth = 32

type SearchConfig struct {
	Algorithm Algorithm
	// Depth for the fixed-depth variants
	Depth int
	// Depth limit for iterative deepening
	MaxDepth             int
	UseMoveOrdering      bool
	UseQuiescence        bool
	QuiescenceDepth      int
	UseBook              bool
	StrictDrawPrevention bool
	// Per-move limit; zero means no limit unless a clock is supplied
	MoveTime time.Duration
}

func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		Algorithm:       AlgorithmDeepSearch,
		Depth:           DefaultSearchDepth,
		MaxDepth:        DefaultMaxDepth,
		UseMoveOrdering: true,
		UseQuiescence:   true,
		QuiescenceDepth: DefaultQuiescenceDepth,
	}
}

// Normalize fills unset depths with their defaults and clamps the config into the range the
// search can run safely. It reports whether anything had to be corrected; filling in a
// default is not a correction.
func (c *SearchConfig) Normalize() bool {
	if c.MaxDepth == 0 {
		c.MaxDepth = clamp(c.Depth, 1, MaxSearchDepth)
	}
	if c.QuiescenceDepth == 0 && c.UseQuiescence {
		c.QuiescenceDepth = DefaultQuiescenceDepth
	}

	orig := *c
	if c.Algorithm < AlgorithmSimple || c.Algorithm > AlgorithmRandom {
		c.Algorithm = AlgorithmSimple
	}
	c.Depth = clamp(c.Depth, 0, MaxSearchDepth)
	c.MaxDepth = clamp(c.MaxDepth, 1, MaxSearchDepth)
	c.QuiescenceDepth = clamp(c.QuiescenceDepth, 0, MaxQuiescenceDepth)
	if c.MoveTime < 0 {
		c.MoveTime = 0
	}
	return *c != orig
}

// Static evaluation configuration, read-only during search.
type EvaluationConfig struct {
	Ruleset         string
	Weights         EvalWeights
	UsePST          bool
	PSTWeight       float64
	ScoringModifier float64
	PhaseAware      bool
}

// NewEvaluationConfig builds the config for a named ruleset.
// Unknown names fall back to DefaultRuleset and report ok == false.
func NewEvaluationConfig(ruleset string) (EvaluationConfig, bool) {
	ruleset, weights, ok := lookupRuleset(ruleset)
	cfg := EvaluationConfig{
		Ruleset:         ruleset,
		Weights:         weights,
		UsePST:          true,
		PSTWeight:       1.0,
		ScoringModifier: 1.0,
		PhaseAware:      true,
	}
	if ruleset == NullRuleset {
		cfg.UsePST = false
	}
	return cfg, ok
}

func DefaultEvaluationConfig() EvaluationConfig {
	cfg, _ := NewEvaluationConfig(DefaultRuleset)
	return cfg
}

// Clock state as supplied by the UCI "go" command
type ClockState struct {
	WhiteTime time.Duration
	BlackTime time.Duration
	WhiteInc  time.Duration
	BlackInc  time.Duration
	MovesToGo int
	MoveTime  time.Duration
	Depth     int
	Infinite  bool
}

func clamp[T constraints.Ordered](v, low, high T) T {
	if v < low {
		return low
	}
	if v > high {
		return high
	}
	return v
}
