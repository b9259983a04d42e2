package engine

import (
	"github.com/clanpj/pichu/board"
)

// Triangular principal variation table; row ply holds the best line from that ply
type pvTableT struct {
	lines [MaxPly + 1][MaxPly + 1]board.Move
	lens  [MaxPly + 1]int
}

func (pv *pvTableT) clear(ply int) { pv.lens[ply] = 0 }

// New best move at ply: the line is move followed by the child's line
func (pv *pvTableT) update(ply int, move board.Move) {
	pv.lines[ply][0] = move
	n := copy(pv.lines[ply][1:], pv.lines[ply+1][:pv.lens[ply+1]])
	pv.lens[ply] = n + 1
}

func (pv *pvTableT) line(ply int) []board.Move {
	return append([]board.Move(nil), pv.lines[ply][:pv.lens[ply]]...)
}

// Stop is sticky for the rest of the search
func (e *Engine) pollStop() bool {
	if !e.stopped && ((e.stop != nil && e.stop()) || e.timer.ShouldStop(0, e.nodes)) {
		e.stopped = true
	}
	return e.stopped
}

// Static evaluation from the side to move's point of view
func (e *Engine) staticScore(pos *board.Position) float64 {
	return e.evaluator.EvaluateFromPerspective(pos, pos.SideToMove())
}

// Mate, stalemate, repetition and dead positions.
// The root itself is never scored as a repetition draw.
func terminalScore(pos *board.Position, moves []board.Move, ply int) (float64, bool) {
	if len(moves) == 0 {
		if pos.InCheck() {
			// Nearer mates score higher
			return -MateScore + float64(ply), true
		}
		return DrawScore, true
	}
	if ply > 0 && (pos.IsRepetition(board.DrawRepetitions) || pos.IsInsufficientMaterial()) {
		return DrawScore, true
	}
	return 0, false
}

// Horizon node: quiescence if enabled, else a static evaluation
func (e *Engine) leaf(pos *board.Position, ply int, alpha, beta float64) float64 {
	if e.cfg.UseQuiescence && e.cfg.QuiescenceDepth > 0 {
		return e.quiesce(pos, e.cfg.QuiescenceDepth, ply, alpha, beta)
	}
	return e.evalLeaf(pos, ply)
}

func (e *Engine) evalLeaf(pos *board.Position, ply int) float64 {
	e.nodes++
	e.pv.clear(ply)
	if e.pollStop() {
		return e.staticScore(pos)
	}
	if score, ok := terminalScore(pos, pos.LegalMoves(), ply); ok {
		return score
	}
	return e.staticScore(pos)
}

// Return the best score attainable through negamax with alpha-beta from the given position.
// Score is from the mover's perspective; fail-soft.
// With pvs set, every move after the first is tried with a null window first.
func (e *Engine) negamax(pos *board.Position, depth int, ply int, alpha float64, beta float64, pvs bool) float64 {
	if depth <= 0 {
		return e.leaf(pos, ply, alpha, beta)
	}

	e.nodes++
	e.pv.clear(ply)

	if e.pollStop() || ply >= MaxPly-1 {
		return e.staticScore(pos)
	}

	if ply > 0 && (pos.IsRepetition(board.DrawRepetitions) || pos.IsInsufficientMaterial()) {
		return DrawScore
	}

	key := pos.Key()
	if _, score, ok := e.tt.Lookup(key, depth); ok {
		return score
	}

	moves := pos.LegalMoves()
	if score, ok := terminalScore(pos, moves, ply); ok {
		return score
	}

	hashMove := e.tt.HashMove(key)
	if e.cfg.UseMoveOrdering {
		moves = e.OrderMoves(pos, moves, hashMove, ply)
	} else {
		moves = moveToFront(moves, hashMove)
	}

	origAlpha := alpha
	bestMove := board.NoMove
	bestScore := -infinity

	for i, move := range moves {
		quiet := !pos.IsCapture(move) && !pos.IsPromotion(move)
		piece := pos.MovedPiece(move)

		pos.Push(move)
		var score float64
		if pvs && i > 0 {
			score = -e.negamax(pos, depth-1, ply+1, -alpha-nullWindow, -alpha, true)
			if alpha < score && score < beta && !e.stopped {
				score = -e.negamax(pos, depth-1, ply+1, -beta, -alpha, true)
			}
		} else {
			score = -e.negamax(pos, depth-1, ply+1, -beta, -alpha, pvs)
		}
		pos.Pop()

		if e.stopped {
			if bestMove == board.NoMove {
				bestScore = score
			}
			break
		}

		// Strictly > so the earliest of equal moves wins
		if score > bestScore {
			bestScore, bestMove = score, move
			if score > alpha {
				alpha = score
				e.pv.update(ply, move)
			}
		}

		if alpha >= beta {
			e.cutoffs++
			if quiet {
				e.killers.Add(move, ply)
				e.history.Add(piece, move, depth)
			}
			break
		}
	}

	// Entries carry no bound type, so only scores inside the window are stored
	if !e.stopped && origAlpha < bestScore && bestScore < beta {
		e.tt.Store(key, depth, bestMove, bestScore)
	}
	return bestScore
}

// Score of the root child just pushed, relative to the root mover.
// Children are searched at depth-1 inside the root window [alpha, beta].
func (e *Engine) rootChildScore(pos *board.Position, algorithm Algorithm, depth int, first bool, alpha, beta float64) float64 {
	switch algorithm {
	case AlgorithmEvaluationOnly:
		return -e.evalLeaf(pos, 1)
	case AlgorithmSimple:
		return -e.leaf(pos, 1, -beta, -alpha)
	case AlgorithmMinimax:
		return e.minimaxChild(pos, depth, alpha, beta)
	case AlgorithmNegascout:
		if first {
			return -e.negamax(pos, depth-1, 1, -beta, -alpha, true)
		}
		score := -e.negamax(pos, depth-1, 1, -alpha-nullWindow, -alpha, true)
		if alpha < score && score < beta && !e.stopped {
			score = -e.negamax(pos, depth-1, 1, -beta, -alpha, true)
		}
		return score
	}
	return -e.negamax(pos, depth-1, 1, -beta, -alpha, false)
}

// Root move selection for every variant except random. Alpha is shared across root siblings.
// complete is false if the search was stopped before every root move was scored; the result
// is then the best of the moves that were.
func (e *Engine) searchRoot(pos *board.Position, algorithm Algorithm, depth int, hashMove board.Move) (board.Move, float64, bool) {
	e.pv.clear(0)
	moves := pos.LegalMoves()
	if e.cfg.UseMoveOrdering {
		moves = e.OrderMoves(pos, moves, hashMove, 0)
	} else {
		moves = moveToFront(moves, hashMove)
	}

	alpha, beta := -infinity, infinity
	bestMove := board.NoMove
	bestScore := -infinity

	for i, move := range moves {
		pos.Push(move)
		score := e.rootChildScore(pos, algorithm, depth, i == 0, alpha, beta)
		pos.Pop()

		if e.stopped {
			return bestMove, bestScore, false
		}

		if bestMove == board.NoMove || score > bestScore {
			bestScore, bestMove = score, move
			e.pv.update(0, move)
			alpha = max(alpha, score)
		}
	}
	return bestMove, bestScore, true
}

func moveToFront(moves []board.Move, move board.Move) []board.Move {
	if move == board.NoMove {
		return moves
	}
	for i, m := range moves {
		if m == move {
			ordered := make([]board.Move, 0, len(moves))
			ordered = append(ordered, move)
			ordered = append(ordered, moves[:i]...)
			return append(ordered, moves[i+1:]...)
		}
	}
	return moves
}
