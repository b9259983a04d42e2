package engine

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/clanpj/pichu/board"
)

// Where the chosen move came from
const (
	SourceSearch   = "search"
	SourceBook     = "book"
	SourceRandom   = "random"
	SourceFallback = "fallback"
	SourceNone     = "none"
)

// SearchInfo is the diagnostic record of the last search.
type SearchInfo struct {
	BestMove board.Move
	// Side-relative score of the best move
	Score   float64
	Depth   int
	Nodes   uint64
	QNodes  uint64
	TTHits  uint64
	Cutoffs uint64
	PV      []board.Move
	Elapsed time.Duration
	Source  string
	GameID  string
}

func PerC(n uint64, N uint64) string {
	if N == 0 {
		return fmt.Sprintf("%d [-]", n)
	}
	return fmt.Sprintf("%d [%.2f%%]", n, float64(n)/float64(N)*100)
}

func (si SearchInfo) PVString() string {
	return strings.Join(lo.Map(si.PV, func(m board.Move, _ int) string { return m.String() }), " ")
}

// Nodes per second; Nodes already includes quiescence nodes
func (si SearchInfo) NPS() uint64 {
	if si.Elapsed <= 0 {
		return 0
	}
	return uint64(float64(si.Nodes) / si.Elapsed.Seconds())
}

func (si SearchInfo) MarshalZerologObject(e *zerolog.Event) {
	e.Str("move", si.BestMove.String()).
		Float64("score", si.Score).
		Int("depth", si.Depth).
		Uint64("nodes", si.Nodes).
		Str("qnodes", PerC(si.QNodes, si.Nodes)).
		Uint64("tt-hits", si.TTHits).
		Uint64("cutoffs", si.Cutoffs).
		Str("pv", si.PVString()).
		Dur("elapsed", si.Elapsed).
		Str("source", si.Source)
	if si.GameID != "" {
		e.Str("game", si.GameID)
	}
}
