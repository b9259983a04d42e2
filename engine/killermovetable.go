// Killer-move heuristic: the quiet moves that most recently caused a beta cut at each ply

package engine

import (
	"github.com/clanpj/pichu/board"
)

const NKillersPerPly = 2

// Deep enough for full-depth search plus the quiescence extension
const MaxPly = MaxSearchDepth + MaxQuiescenceDepth + 1

type KillerMoveTableT [MaxPly][NKillersPerPly]board.Move

// Install a new killer move
func (kt *KillerMoveTableT) Add(move board.Move, ply int) {
	if move == board.NoMove || ply < 0 || ply >= MaxPly {
		return
	}

	plyKillers := &kt[ply]

	moveIndex := 0
	for ; moveIndex < NKillersPerPly; moveIndex++ {
		if plyKillers[moveIndex] == move {
			break
		}
	}

	// Shift down to make space for the new move at the front
	for i := moveIndex; 0 < i; i-- {
		if i < NKillersPerPly {
			plyKillers[i] = plyKillers[i-1]
		}
	}

	plyKillers[0] = move
}

func (kt *KillerMoveTableT) IsKiller(move board.Move, ply int) bool {
	if move == board.NoMove || ply < 0 || ply >= MaxPly {
		return false
	}
	for _, killer := range kt[ply] {
		if killer == move {
			return true
		}
	}
	return false
}

// Killers at the given ply, most recent first
func (kt *KillerMoveTableT) Killers(ply int) [NKillersPerPly]board.Move {
	if ply < 0 || ply >= MaxPly {
		return [NKillersPerPly]board.Move{}
	}
	return kt[ply]
}

func (kt *KillerMoveTableT) Clear() {
	*kt = KillerMoveTableT{}
}
