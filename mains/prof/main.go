package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/pkg/profile"
	"github.com/rs/zerolog"

	"github.com/clanpj/pichu/board"
	"github.com/clanpj/pichu/engine"
)

var VersionString = "0.1 Pichu " + "CPU " + runtime.GOOS + "-" + runtime.GOARCH

// Position and fixed-depth config for the profiled search
func setup(fen string, algorithm string, depth int) (*board.Position, engine.SearchConfig, error) {
	searchCfg := engine.DefaultSearchConfig()
	pos, err := board.FromFEN(fen)
	if err != nil {
		return nil, searchCfg, err
	}
	var ok bool
	if searchCfg.Algorithm, ok = engine.ParseAlgorithm(algorithm); !ok {
		return nil, searchCfg, fmt.Errorf("unknown algorithm %q", algorithm)
	}
	searchCfg.Depth = depth
	searchCfg.MaxDepth = depth
	return pos, searchCfg, nil
}

func main() {
	fen := flag.String("fen", board.Startpos, "position to search")
	depth := flag.Int("depth", 6, "fixed search depth")
	algorithm := flag.String("algorithm", "negascout", "search algorithm")
	mem := flag.Bool("mem", false, "memory profile instead of cpu")
	flag.Parse()

	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// Fatal exits without running defers, so everything that can fail happens before the profile starts
	pos, searchCfg, err := setup(*fen, *algorithm, *depth)
	if err != nil {
		logger.Fatal().Err(err).Msg("bad arguments")
	}

	mode := profile.CPUProfile
	if *mem {
		mode = profile.MemProfile
	}
	defer profile.Start(mode, profile.ProfilePath(".")).Stop()

	fmt.Println("Starting...", VersionString)
	e := engine.NewEngine(engine.DefaultEvaluationConfig(), searchCfg, engine.WithLogger(logger))
	e.Reset(pos)
	bestMove := e.Search(pos, nil)
	info := e.LastSearchInfo()

	fmt.Println("info string nodes:", info.Nodes, "q-nodes:", engine.PerC(info.QNodes, info.Nodes),
		"cutoffs:", engine.PerC(info.Cutoffs, info.Nodes), "tt-hits:", engine.PerC(info.TTHits, info.Nodes))
	fmt.Println("info depth", info.Depth, "score", info.Score, "nodes", info.Nodes,
		"time", info.Elapsed.Milliseconds(), "nps", info.NPS(), "pv", info.PVString())
	fmt.Println("bestmove", bestMove.String())
}
