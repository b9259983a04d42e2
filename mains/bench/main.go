// Runs a small tactical suite in parallel, one engine per problem

package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/clanpj/pichu/board"
	"github.com/clanpj/pichu/engine"
)

type problemT struct {
	Name  string
	FEN   string
	Best  []string // any of these passes
	Avoid []string // none of these may be played
}

var suite = []problemT{
	{Name: "back rank", FEN: "6k1/5ppp/8/8/8/8/5PPP/4R1K1 w - - 0 1", Best: []string{"e1e8"}},
	{Name: "back rank black", FEN: "4r1k1/5ppp/8/8/8/8/5PPP/6K1 b - - 0 1", Best: []string{"e8e1"}},
	{Name: "scholar's mate", FEN: "r1bqkb1r/pppp1ppp/2n2n2/4p2Q/2B1P3/8/PPPP1PPP/RNB1K1NR w KQkq - 4 4", Best: []string{"h5f7"}},
	{Name: "hanging queen", FEN: "4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1", Best: []string{"e4d5"}},
	{Name: "poisoned pawn", FEN: "4k3/8/3p4/4p3/8/8/7Q/4K3 w - - 0 1", Avoid: []string{"h2e5"}},
	{Name: "stalemate trap", FEN: "k7/p1K5/P7/8/8/8/7B/8 w - - 0 1", Best: []string{"c7d6"}},
}

type resultT struct {
	problem problemT
	move    string
	info    engine.SearchInfo
}

func (r resultT) passed() bool {
	if lo.Contains(r.problem.Avoid, r.move) {
		return false
	}
	return len(r.problem.Best) == 0 || lo.Contains(r.problem.Best, r.move)
}

func runSuite(problems []problemT, evalCfg engine.EvaluationConfig, searchCfg engine.SearchConfig, logger zerolog.Logger) ([]resultT, error) {
	results := make([]resultT, len(problems))
	var g errgroup.Group
	g.SetLimit(runtime.NumCPU())
	for i, problem := range problems {
		i, problem := i, problem
		g.Go(func() error {
			pos, err := board.FromFEN(problem.FEN)
			if err != nil {
				return fmt.Errorf("%s: %w", problem.Name, err)
			}
			// Engines are single-threaded; each goroutine owns one
			e := engine.NewEngine(evalCfg, searchCfg, engine.WithLogger(logger.With().Str("problem", problem.Name).Logger()))
			e.Reset(pos)
			move := e.Search(pos, nil)
			results[i] = resultT{problem: problem, move: move.String(), info: e.LastSearchInfo()}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func main() {
	algorithm := flag.String("algorithm", "deep_search", "search algorithm")
	depth := flag.Int("depth", 4, "search depth")
	moveTime := flag.Duration("movetime", 2*time.Second, "time limit per problem")
	ruleset := flag.String("ruleset", engine.DefaultRuleset, "evaluation ruleset")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel).With().Timestamp().Logger()

	evalCfg, ok := engine.NewEvaluationConfig(*ruleset)
	if !ok {
		logger.Warn().Str("ruleset", *ruleset).Msg("unknown ruleset, using default")
	}
	searchCfg := engine.DefaultSearchConfig()
	if searchCfg.Algorithm, ok = engine.ParseAlgorithm(*algorithm); !ok {
		logger.Warn().Str("algorithm", *algorithm).Msg("unknown algorithm, using simple")
	}
	searchCfg.Depth, searchCfg.MaxDepth = *depth, *depth
	searchCfg.StrictDrawPrevention = true
	searchCfg.MoveTime = *moveTime

	start := time.Now()
	results, err := runSuite(suite, evalCfg, searchCfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("suite failed")
	}
	for _, r := range results {
		status := "FAIL"
		if r.passed() {
			status = "ok"
		}
		fmt.Printf("%-4s %-16s %-6s depth %d score %.2f nodes %d pv %s\n",
			status, r.problem.Name, r.move, r.info.Depth, r.info.Score, r.info.Nodes, r.info.PVString())
	}
	passed := lo.CountBy(results, resultT.passed)
	nodes := lo.SumBy(results, func(r resultT) uint64 { return r.info.Nodes })
	fmt.Printf("%d/%d passed, %d nodes in %v\n", passed, len(results), nodes, time.Since(start).Round(time.Millisecond))
}
