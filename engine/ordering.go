// Move ordering for alpha-beta: hash move, mates, checks, MVV-LVA captures, promotions, killers, history

package engine

import (
	"sort"

	"github.com/samber/lo"

	"github.com/clanpj/pichu/board"
)

const (
	CheckmateOrderBonus = 1000000
	CheckOrderBonus     = 100000
	CaptureOrderBonus   = 10000
	PromotionOrderBonus = 9000
	KillerOrderBonus    = 5000
)

// MVV-LVA piece values; the king only ever appears as an aggressor
var orderVals = [board.NPieces]int{0, 1, 3, 3, 5, 9, 20}

type scoredMove struct {
	move  board.Move
	score int
}

// Ordering score of a single move, excluding the hash move priority
func (e *Engine) moveOrderScore(pos *board.Position, move board.Move, ply int) int {
	score := 0
	if pos.GivesCheck(move) {
		if pos.GivesCheckmate(move) {
			score += CheckmateOrderBonus
		} else {
			score += CheckOrderBonus
		}
	}
	quiet := true
	if victim := pos.CapturedPiece(move); victim != board.Nothing {
		aggressor := pos.MovedPiece(move)
		score += CaptureOrderBonus + 10*orderVals[victim] - orderVals[aggressor]
		quiet = false
	}
	if pos.IsPromotion(move) {
		score += PromotionOrderBonus
		quiet = false
	}
	if quiet {
		if e.killers.IsKiller(move, ply) {
			score += KillerOrderBonus
		} else {
			score += e.history.Value(pos.MovedPiece(move), move)
		}
	}
	return score
}

// OrderMoves returns the moves sorted best first. The hash move, if present, always comes first;
// the rest are sorted by descending score with ties kept in generation order.
func (e *Engine) OrderMoves(pos *board.Position, moves []board.Move, hashMove board.Move, ply int) []board.Move {
	ordered := make([]board.Move, 0, len(moves))
	scored := make([]scoredMove, 0, len(moves))
	for _, move := range moves {
		if move == hashMove && hashMove != board.NoMove {
			ordered = append(ordered, move)
			continue
		}
		scored = append(scored, scoredMove{move: move, score: e.moveOrderScore(pos, move, ply)})
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].score > scored[j].score })
	for _, sm := range scored {
		ordered = append(ordered, sm.move)
	}
	return ordered
}

// Captures, promotions and checks for quiescence search
func forcingMoves(pos *board.Position, moves []board.Move) []board.Move {
	return lo.Filter(moves, func(move board.Move, _ int) bool {
		return pos.IsCapture(move) || pos.IsPromotion(move) || pos.GivesCheck(move)
	})
}
