package engine

import (
	"math"
	"testing"

	"github.com/clanpj/pichu/board"
)

func TestPSTMirrorsForBlack(t *testing.T) {
	for piece := board.Pawn; piece <= board.King; piece++ {
		for sq := uint8(0); sq < 64; sq++ {
			for _, phase := range []float64{0, 0.3, 1} {
				white := PSTValue(piece, sq, board.White, phase)
				black := PSTValue(piece, sq^56, board.Black, phase)
				if white != black {
					t.Fatalf("piece %d square %d phase %.1f: white %f, mirrored black %f", piece, sq, phase, white, black)
				}
			}
		}
	}
}

func TestPSTPhaseInterpolation(t *testing.T) {
	const g1 = 6
	if got := PSTValue(board.King, g1, board.White, 0); got != float64(kingPosVals[g1]) {
		t.Errorf("opening king: expected %d, got %f", kingPosVals[g1], got)
	}
	if got := PSTValue(board.King, g1, board.White, 1); got != float64(kingEndgamePosVals[g1]) {
		t.Errorf("endgame king: expected %d, got %f", kingEndgamePosVals[g1], got)
	}
	mid := (float64(kingPosVals[g1]) + float64(kingEndgamePosVals[g1])) / 2
	if got := PSTValue(board.King, g1, board.White, 0.5); math.Abs(got-mid) > epsilon {
		t.Errorf("half-way king: expected %f, got %f", mid, got)
	}
	// Knights have no endgame table
	const e4 = 28
	if PSTValue(board.Knight, e4, board.White, 0) != PSTValue(board.Knight, e4, board.White, 1) {
		t.Errorf("knight value should not depend on phase")
	}
	if got := PSTValue(board.Nothing, e4, board.White, 0); got != 0 {
		t.Errorf("empty square: expected 0, got %f", got)
	}
}

func TestBoardPSTScoreStartpos(t *testing.T) {
	pos := board.NewPosition()
	if got := BoardPSTScore(pos, 0); got != 0 {
		t.Errorf("Expected symmetric start position to score 0, got %f", got)
	}
	// 1. e4 should improve white's table score
	pos.Push(mustMove(t, pos, "e2e4"))
	if got := BoardPSTScore(pos, 0); got <= 0 {
		t.Errorf("Expected e4 to gain table score, got %f", got)
	}
}

func TestGamePhase(t *testing.T) {
	tests := []struct {
		fen  string
		want float64
	}{
		{board.Startpos, 0},
		{"4k3/8/8/8/8/8/8/4K3 w - - 0 1", 1},
		// Two queens of 78 pawns of material left
		{"3qk3/8/8/8/8/8/8/3QK3 w - - 0 1", 1 - 18.0/78},
	}
	for _, test := range tests {
		if got := GamePhase(mustFEN(t, test.fen)); math.Abs(got-test.want) > epsilon {
			t.Errorf("GamePhase(%s): expected %f, got %f", test.fen, test.want, got)
		}
	}
}

func mustMove(t *testing.T, pos *board.Position, uci string) board.Move {
	t.Helper()
	move, err := pos.ParseMove(uci)
	if err != nil {
		t.Fatalf("ParseMove(%q): %v", uci, err)
	}
	return move
}
