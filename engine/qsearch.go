package engine

import (
	"github.com/clanpj/pichu/board"
)

// Quiescence search - differs from full search as follows:
//   - we only look at captures, promotions and checking moves
//   - we stand pat: the static eval is a lower bound on the node's score, since the mover
//     can usually decline every forcing move
//   - depth is capped at qDepthToGo so long check sequences terminate
//
// Score is from the mover's perspective; fail-soft.
func (e *Engine) quiesce(pos *board.Position, qDepthToGo int, ply int, alpha float64, beta float64) float64 {
	e.nodes++
	e.qnodes++
	e.pv.clear(ply)

	if e.pollStop() {
		return e.staticScore(pos)
	}

	moves := pos.LegalMoves()
	if score, ok := terminalScore(pos, moves, ply); ok {
		return score
	}

	standPat := e.staticScore(pos)
	if qDepthToGo <= 0 || ply >= MaxPly-1 {
		return standPat
	}
	if standPat >= beta {
		e.cutoffs++
		return standPat
	}
	alpha = max(alpha, standPat)
	bestScore := standPat

	forcing := forcingMoves(pos, moves)
	if e.cfg.UseMoveOrdering {
		forcing = e.OrderMoves(pos, forcing, board.NoMove, ply)
	}

	for _, move := range forcing {
		pos.Push(move)
		score := -e.quiesce(pos, qDepthToGo-1, ply+1, -beta, -alpha)
		pos.Pop()

		if e.stopped {
			break
		}

		if score > bestScore {
			bestScore = score
			if score > alpha {
				alpha = score
				e.pv.update(ply, move)
			}
		}
		if alpha >= beta {
			e.cutoffs++
			break
		}
	}

	return bestScore
}
