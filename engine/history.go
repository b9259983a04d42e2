// History heuristic: quiet moves that cut off anywhere in the tree are tried earlier everywhere

package engine

import (
	"github.com/clanpj/pichu/board"
)

// piece x from x to -> accumulated depth^2 of the cutoffs it caused
type HistoryTableT [board.NPieces][64][64]int

func (ht *HistoryTableT) Add(piece board.Piece, move board.Move, depth int) {
	if int(piece) >= board.NPieces || depth <= 0 {
		return
	}
	ht[piece][move.From()][move.To()] += depth * depth
}

func (ht *HistoryTableT) Value(piece board.Piece, move board.Move) int {
	if int(piece) >= board.NPieces {
		return 0
	}
	return ht[piece][move.From()][move.To()]
}

func (ht *HistoryTableT) Clear() {
	*ht = HistoryTableT{}
}
