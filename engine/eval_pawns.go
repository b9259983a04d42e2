// Pawn structure terms

package engine

import (
	"github.com/clanpj/pichu/board"
)

// Passed pawn bonus by rank from the pawn owner's point of view
var passedPawnRankBonus = [8]float64{
	0.0,
	0.10,
	0.15,
	0.25,
	0.40,
	0.60,
	0.90,
	0.0}

func adjacentFiles(file uint8) uint64 {
	mask := board.FileMask(file)
	return board.E(mask) | board.W(mask)
}

// Squares on the pawn's rank and every rank behind it
func ranksBehind(color board.Color, sq uint8) uint64 {
	rank := board.RankMask(board.Rank(sq))
	if color == board.White {
		return board.SFill(rank)
	}
	return board.NFill(rank)
}

func doubledPawnsTerm(s *evalState, color board.Color) float64 {
	pawns := s.pos.Pieces(color, board.Pawn)
	doubled := 0
	for file := uint8(0); file < 8; file++ {
		if n := board.PopCount(pawns & board.FileMask(file)); n > 1 {
			doubled += n - 1
		}
	}
	return -float64(doubled)
}

func isolatedPawnsTerm(s *evalState, color board.Color) float64 {
	pawns := s.pos.Pieces(color, board.Pawn)
	isolated := 0
	for bb := pawns; bb != 0; {
		sq := board.PopSquare(&bb)
		if pawns&adjacentFiles(board.File(sq)) == 0 {
			isolated++
		}
	}
	return -float64(isolated)
}

// A backward pawn has no friendly pawn beside or behind it on an adjacent file,
// and its stop square is covered by an enemy pawn.
func backwardPawnsTerm(s *evalState, color board.Color) float64 {
	pawns := s.pos.Pieces(color, board.Pawn)
	enemyPawnAttacks := board.PawnAttacks(color.Other(), s.pos.Pieces(color.Other(), board.Pawn))
	backward := 0
	for bb := pawns; bb != 0; {
		sq := board.PopSquare(&bb)
		if pawns&adjacentFiles(board.File(sq))&ranksBehind(color, sq) != 0 {
			continue
		}
		stop := board.N(board.SquareBit(sq))
		if color == board.Black {
			stop = board.S(board.SquareBit(sq))
		}
		if stop&enemyPawnAttacks != 0 {
			backward++
		}
	}
	return -float64(backward)
}

func passedPawns(s *evalState, color board.Color) uint64 {
	enemyScope := board.PawnScope(color.Other(), s.pos.Pieces(color.Other(), board.Pawn))
	return s.pos.Pieces(color, board.Pawn) &^ enemyScope
}

func passedPawnsTerm(s *evalState, color board.Color) float64 {
	eval := 0.0
	for passed := passedPawns(s, color); passed != 0; {
		sq := board.PopSquare(&passed)
		eval += passedPawnRankBonus[board.RelativeRank(color, sq)]
	}
	return eval
}

// One point per wing where we have more pawns than the opponent
func pawnMajorityTerm(s *evalState, color board.Color) float64 {
	own := s.pos.Pieces(color, board.Pawn)
	opp := s.pos.Pieces(color.Other(), board.Pawn)
	majorities := 0
	for _, wing := range []uint64{board.QueenSideBits, board.KingSideBits} {
		if board.PopCount(own&wing) > board.PopCount(opp&wing) {
			majorities++
		}
	}
	return float64(majorities)
}
