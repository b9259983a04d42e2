// Tactical terms: captures, hanging pieces, special moves and mate threats

package engine

import (
	"github.com/clanpj/pichu/board"
)

// Enemy pieces we attack (kings excluded)
func attackedEnemies(s *evalState, color board.Color) uint64 {
	opp := color.Other()
	return s.attacked(color) & s.pos.Occupied(opp) &^ s.pos.Pieces(opp, board.King)
}

func captureTerm(s *evalState, color board.Color) float64 {
	return float64(board.PopCount(attackedEnemies(s, color)))
}

func hangingEnemyTerm(s *evalState, color board.Color) float64 {
	return float64(board.PopCount(attackedEnemies(s, color) &^ s.attacked(color.Other())))
}

func hangingOwnTerm(s *evalState, color board.Color) float64 {
	return -float64(board.PopCount(attackedEnemies(s, color.Other()) &^ s.attacked(color)))
}

func enPassantTerm(s *evalState, color board.Color) float64 {
	if !s.toMove(color) {
		return 0
	}
	ep, ok := s.pos.EnPassant()
	if !ok {
		return 0
	}
	if board.PawnAttacks(color, s.pos.Pieces(color, board.Pawn))&board.SquareBit(ep) != 0 {
		return 1
	}
	return 0
}

// Pawns on the seventh with a free promotion square
func promotionTerm(s *evalState, color board.Color) float64 {
	pawns := s.pos.Pieces(color, board.Pawn)
	var promoting uint64
	if color == board.White {
		promoting = board.N(pawns & board.RankMask(6))
	} else {
		promoting = board.S(pawns & board.RankMask(1))
	}
	return float64(board.PopCount(promoting &^ s.pos.All()))
}

// One point if the side to move (us) has a mate in one
func mateThreatTerm(s *evalState, color board.Color) float64 {
	if !s.toMove(color) {
		return 0
	}
	for _, move := range s.moves() {
		if s.pos.GivesCheckmate(move) {
			return 1
		}
	}
	return 0
}
