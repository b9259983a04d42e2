package engine

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/clanpj/pichu/board"
)

const (
	MateScore = 100000.0
	DrawScore = 0.0
	// Returned by EvaluateMove for moves outside the legal set; never selected
	IllegalMovePenalty = -1000000.0

	infinity = 1.0e9
	// PVS null window width; finer than any meaningful eval difference
	nullWindow = 0.01
)

func IsMateScore(score float64) bool {
	return math.Abs(score) >= MateScore-MaxPly
}

// Opening book capability consumed by the engine
type BookT interface {
	Lookup(pos *board.Position) (board.Move, bool)
}

type Option func(*Engine)

func WithLogger(logger zerolog.Logger) Option {
	return func(e *Engine) { e.logger = logger }
}

func WithBook(book BookT) Option {
	return func(e *Engine) { e.book = book }
}

func WithTTCapacity(capacity int) Option {
	return func(e *Engine) { e.ttCapacity = capacity }
}

// Called with the running SearchInfo after every completed depth
func WithInfoHandler(handler func(SearchInfo)) Option {
	return func(e *Engine) { e.onInfo = handler }
}

// Engine owns all mutable search state. It is not safe for concurrent use;
// run one Engine per goroutine.
type Engine struct {
	evalCfg   EvaluationConfig
	searchCfg SearchConfig
	evaluator *Evaluator

	tt         *TranspositionTable
	ttCapacity int
	killers    KillerMoveTableT
	history    HistoryTableT
	pv         pvTableT
	timer      *TimeManager
	book       BookT
	logger     zerolog.Logger
	onInfo     func(SearchInfo)

	gameID string
	side   board.Color

	// Per-search state
	cfg     SearchConfig
	stop    func() bool
	stopped bool
	nodes   uint64
	qnodes  uint64
	cutoffs uint64
	info    SearchInfo
}

func NewEngine(evalCfg EvaluationConfig, searchCfg SearchConfig, opts ...Option) *Engine {
	e := &Engine{
		logger:     zerolog.Nop(),
		ttCapacity: DefaultTTCapacity,
		timer:      NewTimeManager(),
	}
	for _, opt := range opts {
		opt(e)
	}

	requested := searchCfg.Algorithm
	if searchCfg.Normalize() {
		e.logger.Warn().Stringer("algorithm", requested).Stringer("using", searchCfg.Algorithm).
			Int("depth", searchCfg.Depth).Int("max-depth", searchCfg.MaxDepth).
			Int("q-depth", searchCfg.QuiescenceDepth).Msg("config-fallback")
	}
	if evalCfg.Weights == (EvalWeights{}) && evalCfg.Ruleset != NullRuleset {
		cfg, ok := NewEvaluationConfig(evalCfg.Ruleset)
		if !ok {
			e.logger.Warn().Str("ruleset", evalCfg.Ruleset).Str("using", cfg.Ruleset).Msg("config-fallback")
		}
		evalCfg = cfg
	}
	if evalCfg.ScoringModifier == 0 {
		evalCfg.ScoringModifier = 1.0
	}

	e.evalCfg = evalCfg
	e.searchCfg = searchCfg
	e.evaluator = NewEvaluator(evalCfg, e.logger)
	e.tt = NewTranspositionTable(e.ttCapacity)
	e.gameID = uuid.NewString()
	return e
}

func (e *Engine) SearchConfig() SearchConfig { return e.searchCfg }

func (e *Engine) EvaluationConfig() EvaluationConfig { return e.evalCfg }

func (e *Engine) GameID() string { return e.gameID }

// Reset prepares for a new game from pos: all tables are cleared and the engine
// takes the side to move.
func (e *Engine) Reset(pos *board.Position) {
	e.tt.Clear()
	e.killers.Clear()
	e.history.Clear()
	e.side = pos.SideToMove()
	e.gameID = uuid.NewString()
	e.info = SearchInfo{}
	e.logger.Debug().Str("game", e.gameID).Stringer("side", e.side).Msg("reset")
}

// Search is the one-shot entry point: a fresh engine configured for side searches pos.
func Search(pos *board.Position, side board.Color, evalCfg EvaluationConfig, searchCfg SearchConfig, stop func() bool) board.Move {
	e := NewEngine(evalCfg, searchCfg)
	e.side = side
	return e.Search(pos, stop)
}

// Search returns the best move for the side to move in pos, or NoMove iff there are no legal moves.
// stop may be nil; it is polled at every node.
func (e *Engine) Search(pos *board.Position, stop func() bool) board.Move {
	return e.SearchClock(pos, ClockState{MoveTime: e.searchCfg.MoveTime}, stop)
}

// SearchClock is Search with a time budget allocated from clock.
func (e *Engine) SearchClock(pos *board.Position, clock ClockState, stop func() bool) board.Move {
	e.cfg = e.searchCfg
	if clock.Depth > 0 {
		e.cfg.Depth = clamp(clock.Depth, 1, MaxSearchDepth)
		e.cfg.MaxDepth = e.cfg.Depth
	}
	e.stop = stop
	e.stopped = false
	e.nodes, e.qnodes, e.cutoffs = 0, 0, 0
	e.killers.Clear()
	e.pv.clear(0)
	hits0 := e.tt.Hits
	e.info = SearchInfo{BestMove: board.NoMove, Source: SourceNone, GameID: e.gameID}

	budget := e.timer.AllocateTime(clock, pos)
	e.timer.Start(budget)
	key := pos.Key()

	move := e.selectMove(pos, budget)

	e.info.BestMove = move
	e.info.Nodes = e.nodes
	e.info.QNodes = e.qnodes
	e.info.Cutoffs = e.cutoffs
	e.info.TTHits = e.tt.Hits - hits0
	e.info.Elapsed = e.timer.Elapsed()
	if pos.Key() != key {
		// Unbalanced push/pop would corrupt the caller's game
		e.logger.Error().Str("fen", pos.FEN()).Msg("position-changed-by-search")
	}
	e.logger.Info().Object("info", e.info).Msg("search-done")
	return move
}

func (e *Engine) selectMove(pos *board.Position, budget time.Duration) board.Move {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		return board.NoMove
	}

	if e.cfg.UseBook && e.book != nil {
		if move, ok := e.book.Lookup(pos); ok && pos.IsLegal(move) {
			e.info.Source = SourceBook
			e.info.PV = []board.Move{move}
			e.logger.Info().Str("game", e.gameID).Str("move", move.String()).Msg("book-move")
			return move
		}
	}

	e.logger.Info().Str("game", e.gameID).Stringer("algorithm", e.cfg.Algorithm).
		Int("depth", e.cfg.Depth).Int("max-depth", e.cfg.MaxDepth).
		Dur("budget", budget).Str("fen", pos.FEN()).Msg("search-start")

	move := e.runAlgorithm(pos, moves)

	if move == board.NoMove || !pos.IsLegal(move) {
		move = moves[frand.Intn(len(moves))]
		e.info.Source = SourceFallback
		e.info.PV = []board.Move{move}
		e.logger.Warn().Str("game", e.gameID).Str("move", move.String()).Msg("fallback-random-move")
	}

	if e.cfg.StrictDrawPrevention {
		move = e.preventDraw(pos, moves, move)
	}
	return move
}

func (e *Engine) runAlgorithm(pos *board.Position, moves []board.Move) board.Move {
	algorithm := e.cfg.Algorithm
	switch algorithm {
	case AlgorithmMinimax, AlgorithmNegamax, AlgorithmNegascout:
		if e.cfg.Depth == 0 {
			algorithm = AlgorithmSimple
		}
	}

	switch algorithm {
	case AlgorithmRandom:
		e.info.Source = SourceRandom
		return moves[frand.Intn(len(moves))]
	case AlgorithmDeepSearch:
		return e.deepSearch(pos)
	}

	e.info.Source = SourceSearch
	depth := e.cfg.Depth
	if algorithm == AlgorithmSimple || algorithm == AlgorithmEvaluationOnly {
		depth = 1
	}
	move, score, _ := e.searchRoot(pos, algorithm, depth, board.NoMove)
	if move == board.NoMove {
		return move
	}
	e.info.Score = score
	e.info.Depth = depth
	e.info.PV = e.pv.line(0)
	e.reportDepth()
	return move
}

// Iterative deepening over PVS. Only completed iterations count.
func (e *Engine) deepSearch(pos *board.Position) board.Move {
	e.info.Source = SourceSearch
	moves := pos.LegalMoves()
	if len(moves) == 1 {
		e.info.PV = []board.Move{moves[0]}
		return moves[0]
	}

	bestMove := board.NoMove
	for depth := 1; depth <= e.cfg.MaxDepth; depth++ {
		if depth > 1 && e.timer.ShouldStop(e.info.Depth, e.nodes) {
			break
		}
		move, score, complete := e.searchRoot(pos, AlgorithmNegascout, depth, bestMove)
		if !complete {
			// A partial first iteration still beats a random move
			if bestMove == board.NoMove && move != board.NoMove {
				bestMove = move
				e.info.Score = score
				e.info.PV = e.pv.line(0)
			}
			break
		}
		bestMove = move
		e.info.Score = score
		e.info.Depth = depth
		e.info.PV = e.pv.line(0)
		e.tt.Store(pos.Key(), depth, move, score)
		e.reportDepth()

		if IsMateScore(score) {
			break
		}
	}
	return bestMove
}

func (e *Engine) reportDepth() {
	e.info.Nodes = e.nodes
	e.info.QNodes = e.qnodes
	e.info.Cutoffs = e.cutoffs
	e.info.Elapsed = e.timer.Elapsed()
	e.logger.Debug().Int("depth", e.info.Depth).Float64("score", e.info.Score).
		Uint64("nodes", e.nodes).Str("pv", e.info.PVString()).Msg("depth-complete")
	if e.onInfo != nil {
		e.onInfo(e.info)
	}
}

func drawsAfter(pos *board.Position, move board.Move) bool {
	pos.Push(move)
	defer pos.Pop()
	return pos.IsStalemate() || pos.IsInsufficientMaterial() || pos.IsRepetition(board.DrawRepetitions)
}

// Swap a drawing move for a random non-drawing alternative, if there is one
func (e *Engine) preventDraw(pos *board.Position, moves []board.Move, chosen board.Move) board.Move {
	if !drawsAfter(pos, chosen) {
		return chosen
	}
	alternatives := lo.Filter(moves, func(move board.Move, _ int) bool {
		return move != chosen && !drawsAfter(pos, move)
	})
	if len(alternatives) == 0 {
		return chosen
	}
	move := alternatives[frand.Intn(len(alternatives))]
	e.logger.Info().Str("game", e.gameID).Str("drawing", chosen.String()).Str("move", move.String()).Msg("draw-prevention")
	e.info.PV = []board.Move{move}
	return move
}

// EvaluatePosition scores pos for the side this engine plays.
func (e *Engine) EvaluatePosition(pos *board.Position) float64 {
	return e.evaluator.EvaluateFromPerspective(pos, e.side)
}

func (e *Engine) EvaluatePositionFromPerspective(pos *board.Position, side board.Color) float64 {
	return e.evaluator.EvaluateFromPerspective(pos, side)
}

// EvaluateMove scores the position after move for the side making it.
// Moves outside the legal set get IllegalMovePenalty and pos is left untouched.
func (e *Engine) EvaluateMove(pos *board.Position, move board.Move) float64 {
	mover := pos.SideToMove()
	if err := pos.PushLegal(move); err != nil {
		return IllegalMovePenalty
	}
	defer pos.Pop()
	return e.evaluator.EvaluateFromPerspective(pos, mover)
}

func (e *Engine) LastSearchInfo() SearchInfo {
	info := e.info
	info.PV = append([]board.Move(nil), e.info.PV...)
	return info
}
