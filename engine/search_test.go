package engine

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/clanpj/pichu/board"
)

// Exactly one white move (Kd6, blocking the bishop) leaves black a move
var oneWayOutOfStalemate = "k7/p1K5/P7/8/8/8/7B/8 w - - 0 1"

func searchConfig(algorithm Algorithm, depth int) SearchConfig {
	cfg := DefaultSearchConfig()
	cfg.Algorithm = algorithm
	cfg.Depth = depth
	cfg.MaxDepth = depth
	return cfg
}

func TestMateInOneAllAlgorithms(t *testing.T) {
	tests := []struct {
		fen  string
		mate string
	}{
		{mateInOne, "e1e8"},
		{"4r1k1/8/8/8/8/8/5PPP/6K1 b - - 0 1", "e8e1"},
	}
	algorithms := []Algorithm{
		AlgorithmSimple, AlgorithmMinimax, AlgorithmNegamax, AlgorithmNegascout,
		AlgorithmDeepSearch, AlgorithmEvaluationOnly,
	}
	for _, test := range tests {
		for _, algorithm := range algorithms {
			for _, depth := range []int{1, 2, 3} {
				pos := mustFEN(t, test.fen)
				e := NewEngine(DefaultEvaluationConfig(), searchConfig(algorithm, depth))
				move := e.Search(pos, nil)
				if move.String() != test.mate {
					t.Errorf("%s depth %d: expected %s, got %s for %s", algorithm, depth, test.mate, move.String(), test.fen)
				}
			}
		}
	}
}

func TestSearchLeavesPositionUnchanged(t *testing.T) {
	fens := []string{board.Startpos, middleGame, mateInOne, oneWayOutOfStalemate,
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1"}
	for _, algorithm := range []Algorithm{AlgorithmMinimax, AlgorithmNegascout, AlgorithmDeepSearch, AlgorithmRandom} {
		for _, fen := range fens {
			pos := mustFEN(t, fen)
			key, before := pos.Key(), pos.FEN()
			move := NewEngine(DefaultEvaluationConfig(), searchConfig(algorithm, 2)).Search(pos, nil)
			if pos.Key() != key || pos.FEN() != before {
				t.Errorf("%s: search changed the position from %s to %s", algorithm, before, pos.FEN())
			}
			if !pos.IsLegal(move) {
				t.Errorf("%s: illegal move %s for %s", algorithm, move.String(), fen)
			}
		}
	}
}

func TestNoMoveWhenGameOver(t *testing.T) {
	for _, fen := range []string{whiteInCheckmate, whiteInStalemate, blackInCheckmate, blackInStalemate} {
		e := NewEngine(DefaultEvaluationConfig(), DefaultSearchConfig())
		if move := e.Search(mustFEN(t, fen), nil); move != board.NoMove {
			t.Errorf("Expected NoMove for %s, got %s", fen, move.String())
		}
	}
}

func TestStrictDrawPrevention(t *testing.T) {
	pos := mustFEN(t, oneWayOutOfStalemate)
	escape := mustMove(t, pos, "c7d6")

	cfg := searchConfig(AlgorithmRandom, 1)
	cfg.StrictDrawPrevention = true
	e := NewEngine(DefaultEvaluationConfig(), cfg)
	for i := 0; i < 20; i++ {
		if move := e.Search(pos, nil); move != escape {
			t.Fatalf("Expected the only non-stalemating move %s, got %s", escape.String(), move.String())
		}
	}

	// All moves score 0 here, so evaluation_only picks the first; prevention must still find the escape
	nullCfg, _ := NewEvaluationConfig(NullRuleset)
	cfg = searchConfig(AlgorithmEvaluationOnly, 1)
	cfg.StrictDrawPrevention = true
	if move := NewEngine(nullCfg, cfg).Search(pos, nil); move != escape {
		t.Errorf("Expected %s with draw prevention, got %s", escape.String(), move.String())
	}
}

func TestDrawPreventionKeepsForcedDraw(t *testing.T) {
	pos := mustFEN(t, oneWayOutOfStalemate)
	drawing := mustMove(t, pos, "c7c8")
	e := newTestEngine()
	if move := e.preventDraw(pos, []board.Move{drawing}, drawing); move != drawing {
		t.Errorf("Expected the drawing move when nothing else is legal, got %s", move.String())
	}
	escape := mustMove(t, pos, "c7d6")
	if move := e.preventDraw(pos, pos.LegalMoves(), escape); move != escape {
		t.Errorf("Expected a non-drawing move to be kept, got %s", move.String())
	}
}

func TestIterativeDeepeningKeepsWinningCapture(t *testing.T) {
	pos := mustFEN(t, "4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	capture := mustMove(t, pos, "e4d5")

	var depths []SearchInfo
	cfg := searchConfig(AlgorithmDeepSearch, 4)
	e := NewEngine(DefaultEvaluationConfig(), cfg, WithInfoHandler(func(info SearchInfo) {
		depths = append(depths, info)
	}))
	if move := e.Search(pos, nil); move != capture {
		t.Errorf("Expected %s, got %s", capture.String(), move.String())
	}
	if len(depths) != 4 {
		t.Fatalf("Expected 4 completed depths, got %d", len(depths))
	}
	for i, info := range depths {
		if info.Depth != i+1 {
			t.Errorf("Expected depth %d, got %d", i+1, info.Depth)
		}
		if len(info.PV) == 0 || info.PV[0] != capture {
			t.Errorf("depth %d: expected the PV to start with the capture, got %s", info.Depth, info.PVString())
		}
		if i > 0 && info.Nodes < depths[i-1].Nodes {
			t.Errorf("depth %d: node count went backwards", info.Depth)
		}
	}
}

func TestQuiescenceChangesScore(t *testing.T) {
	// Qxe5+ wins a pawn but d6 takes back the queen
	fen := "4k3/8/3p4/4p3/8/8/7Q/4K3 w - - 0 1"

	search := func(useQuiescence bool) (board.Move, float64) {
		cfg := searchConfig(AlgorithmNegamax, 1)
		cfg.UseQuiescence = useQuiescence
		e := NewEngine(materialOnlyConfig(), cfg)
		move := e.Search(mustFEN(t, fen), nil)
		return move, e.LastSearchInfo().Score
	}

	flatMove, flatScore := search(false)
	quietMove, quietScore := search(true)
	if flatMove.String() != "h2e5" {
		t.Errorf("Without quiescence expected the greedy h2e5, got %s", flatMove.String())
	}
	if quietMove.String() == "h2e5" {
		t.Errorf("With quiescence the queen sacrifice should be avoided")
	}
	if flatScore == quietScore {
		t.Errorf("Expected quiescence to change the score, both %f", flatScore)
	}
}

func TestStopFallsBackToRandomMove(t *testing.T) {
	pos := board.NewPosition()
	e := NewEngine(DefaultEvaluationConfig(), DefaultSearchConfig())
	move := e.Search(pos, func() bool { return true })
	if !pos.IsLegal(move) {
		t.Fatalf("Expected a legal fallback move, got %s", move.String())
	}
	if info := e.LastSearchInfo(); info.Source != SourceFallback {
		t.Errorf("Expected source %q, got %q", SourceFallback, info.Source)
	}
}

func TestTimedSearch(t *testing.T) {
	cfg := DefaultSearchConfig()
	cfg.MaxDepth = MaxSearchDepth
	cfg.MoveTime = 200 * time.Millisecond
	e := NewEngine(DefaultEvaluationConfig(), cfg)

	pos := mustFEN(t, middleGame)
	start := time.Now()
	move := e.Search(pos, nil)
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("Search overran its 200ms budget: %v", elapsed)
	}
	if !pos.IsLegal(move) {
		t.Errorf("Expected a legal move, got %s", move.String())
	}
	if info := e.LastSearchInfo(); info.Depth < 1 || info.Source != SourceSearch {
		t.Errorf("Expected at least one completed depth from search, got depth %d source %q", info.Depth, info.Source)
	}
}

func TestSearchClockDepth(t *testing.T) {
	e := NewEngine(DefaultEvaluationConfig(), DefaultSearchConfig())
	e.SearchClock(board.NewPosition(), ClockState{Depth: 2}, nil)
	if info := e.LastSearchInfo(); info.Depth != 2 {
		t.Errorf("Expected depth 2, got %d", info.Depth)
	}
}

type fixedBook struct{ move string }

func (b fixedBook) Lookup(pos *board.Position) (board.Move, bool) {
	move, err := pos.ParseMove(b.move)
	return move, err == nil
}

func TestBookShortCircuit(t *testing.T) {
	cfg := DefaultSearchConfig()
	cfg.UseBook = true
	e := NewEngine(DefaultEvaluationConfig(), cfg, WithBook(fixedBook{"a2a3"}))
	pos := board.NewPosition()
	if move := e.Search(pos, nil); move.String() != "a2a3" {
		t.Errorf("Expected the book move a2a3, got %s", move.String())
	}
	if info := e.LastSearchInfo(); info.Source != SourceBook || info.Nodes != 0 {
		t.Errorf("Expected a book move without search, got source %q nodes %d", info.Source, info.Nodes)
	}

	// Book moves that are not legal here are ignored
	e = NewEngine(DefaultEvaluationConfig(), cfg, WithBook(fixedBook{"e2e5"}))
	if move := e.Search(pos, nil); !pos.IsLegal(move) {
		t.Errorf("Expected a legal searched move, got %s", move.String())
	}
}

func TestEvaluateMove(t *testing.T) {
	e := NewEngine(materialOnlyConfig(), DefaultSearchConfig())
	pos := mustFEN(t, "4k3/8/8/3q4/4P3/8/8/4K3 w - - 0 1")
	key := pos.Key()

	if got := e.EvaluateMove(pos, mustMove(t, pos, "e4d5")); got != 1 {
		t.Errorf("Expected +1 after winning the queen, got %f", got)
	}
	illegal := mustMove(t, board.NewPosition(), "e2e4")
	if got := e.EvaluateMove(pos, illegal); got != IllegalMovePenalty {
		t.Errorf("Expected IllegalMovePenalty, got %f", got)
	}
	if pos.Key() != key {
		t.Errorf("EvaluateMove changed the position")
	}
}

func TestEvaluatePositionUsesEngineSide(t *testing.T) {
	e := NewEngine(materialOnlyConfig(), DefaultSearchConfig())
	pos := mustFEN(t, blackDownAQueen)
	e.Reset(pos)
	if got := e.EvaluatePosition(pos); got != -9 {
		t.Errorf("Expected -9 for black, got %f", got)
	}
	if got := e.EvaluatePositionFromPerspective(pos, board.White); got != 9 {
		t.Errorf("Expected 9 for white, got %f", got)
	}
}

func TestResetClearsTables(t *testing.T) {
	e := NewEngine(DefaultEvaluationConfig(), searchConfig(AlgorithmNegascout, 3))
	pos := board.NewPosition()
	e.Search(pos, nil)
	if e.tt.Len() == 0 {
		t.Fatalf("Expected the search to fill the transposition table")
	}
	id := e.GameID()
	e.Reset(pos)
	if e.tt.Len() != 0 || e.history != (HistoryTableT{}) || e.killers != (KillerMoveTableT{}) {
		t.Errorf("Expected Reset to clear every table")
	}
	if e.GameID() == id {
		t.Errorf("Expected a new game id after Reset")
	}
}

func TestLastSearchInfo(t *testing.T) {
	e := NewEngine(DefaultEvaluationConfig(), searchConfig(AlgorithmNegascout, 3))
	pos := mustFEN(t, middleGame)
	move := e.Search(pos, nil)
	info := e.LastSearchInfo()
	if info.BestMove != move || info.Nodes == 0 || info.Depth != 3 || info.GameID == "" {
		t.Errorf("Unexpected search info %+v", info)
	}
	if len(info.PV) == 0 || info.PV[0] != move {
		t.Errorf("Expected the PV to start with the best move, got %q", info.PVString())
	}
	if info.QNodes > info.Nodes {
		t.Errorf("Quiescence nodes %d exceed total nodes %d", info.QNodes, info.Nodes)
	}
}

func TestPackageSearch(t *testing.T) {
	cfg := searchConfig(AlgorithmNegamax, 2)
	move := Search(mustFEN(t, mateInOne), board.White, DefaultEvaluationConfig(), cfg, nil)
	if move.String() != "e1e8" {
		t.Errorf("Expected e1e8, got %s", move.String())
	}
}

func TestSearchLogsEvents(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)
	e := NewEngine(DefaultEvaluationConfig(), searchConfig(AlgorithmDeepSearch, 2), WithLogger(logger))
	e.Search(board.NewPosition(), nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	for _, event := range []string{"search-start", "depth-complete", "search-done"} {
		if !lo.ContainsBy(lines, func(line string) bool { return strings.Contains(line, `"message":"`+event+`"`) }) {
			t.Errorf("Expected a %s event in the log", event)
		}
	}
}

func TestUnknownAlgorithmFallsBack(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultSearchConfig()
	cfg.Algorithm = Algorithm(99)
	e := NewEngine(DefaultEvaluationConfig(), cfg, WithLogger(zerolog.New(&buf)))
	if e.SearchConfig().Algorithm != AlgorithmSimple {
		t.Errorf("Expected fallback to %s, got %s", AlgorithmSimple, e.SearchConfig().Algorithm)
	}
	if !strings.Contains(buf.String(), "config-fallback") {
		t.Errorf("Expected a config-fallback warning")
	}
	if move := e.Search(board.NewPosition(), nil); move == board.NoMove {
		t.Errorf("Expected a move from the fallback algorithm")
	}
}
