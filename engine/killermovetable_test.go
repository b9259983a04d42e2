package engine

import (
	"testing"

	"github.com/clanpj/pichu/board"
)

const (
	killer1 board.Move = 0x0c1c
	killer2 board.Move = 0x0d1d
	killer3 board.Move = 0x0e1e
)

func TestKillerMoveTable(t *testing.T) {
	var kt KillerMoveTableT

	kt.Add(killer1, 3)
	kt.Add(killer2, 3)
	if got := kt.Killers(3); got != [NKillersPerPly]board.Move{killer2, killer1} {
		t.Errorf("Expected most recent first, got %v", got)
	}

	// Re-adding a killer promotes it without duplicating
	kt.Add(killer1, 3)
	if got := kt.Killers(3); got != [NKillersPerPly]board.Move{killer1, killer2} {
		t.Errorf("Expected %v promoted, got %v", killer1, got)
	}

	// The oldest drops off the end
	kt.Add(killer3, 3)
	if kt.IsKiller(killer2, 3) || !kt.IsKiller(killer3, 3) || !kt.IsKiller(killer1, 3) {
		t.Errorf("Expected %v to be evicted, got %v", killer2, kt.Killers(3))
	}

	if kt.IsKiller(killer1, 4) {
		t.Errorf("Killers must not leak across plies")
	}
	kt.Add(killer1, MaxPly)
	kt.Add(board.NoMove, 5)
	if kt.IsKiller(board.NoMove, 5) || kt.Killers(-1) != ([NKillersPerPly]board.Move{}) {
		t.Errorf("Expected out of range plies and NoMove to be ignored")
	}

	kt.Clear()
	if kt.IsKiller(killer1, 3) {
		t.Errorf("Expected an empty table after Clear")
	}
}

func TestHistoryTable(t *testing.T) {
	var ht HistoryTableT
	ht.Add(board.Knight, killer1, 2)
	ht.Add(board.Knight, killer1, 3)
	if got := ht.Value(board.Knight, killer1); got != 13 {
		t.Errorf("Expected 2^2 + 3^2 = 13, got %d", got)
	}
	if got := ht.Value(board.Bishop, killer1); got != 0 {
		t.Errorf("History is per piece, got %d for a bishop", got)
	}
	ht.Add(board.Knight, killer2, 0)
	if got := ht.Value(board.Knight, killer2); got != 0 {
		t.Errorf("Expected depth 0 cutoffs to be ignored, got %d", got)
	}
	ht.Clear()
	if got := ht.Value(board.Knight, killer1); got != 0 {
		t.Errorf("Expected 0 after Clear, got %d", got)
	}
}
