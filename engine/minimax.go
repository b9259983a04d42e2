package engine

import (
	"github.com/clanpj/pichu/board"
)

// Return the best score attainable through minimax from the given position.
// Score is given from white's perspective: White maximises and Black minimises.
// This is a view onto the negamax core, not a second search.
func (e *Engine) minimax(pos *board.Position, depth int, ply int, alpha float64, beta float64) float64 {
	if pos.SideToMove() == board.White {
		return e.negamax(pos, depth, ply, alpha, beta, false)
	}
	return -e.negamax(pos, depth, ply, -beta, -alpha, false)
}

// Minimax score of the root child just pushed, relative to the root mover.
// The root window [alpha, beta] is side-relative and is mapped to white's perspective here.
func (e *Engine) minimaxChild(pos *board.Position, depth int, alpha, beta float64) float64 {
	// The child is to move, so the root mover is its opponent
	if pos.SideToMove() == board.Black {
		// White at the root maximises
		return e.minimax(pos, depth-1, 1, alpha, beta)
	}
	// Black at the root minimises the white score
	return -e.minimax(pos, depth-1, 1, -beta, -alpha)
}
