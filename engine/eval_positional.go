// Positional terms: king safety, piece placement, files, castling and mobility.
// Piece influence disregards pinning and moving into check.

package engine

import (
	"github.com/clanpj/pichu/board"
)

// Bishops seeing at least this many squares earn the vision bonus
const bishopVisionThreshold = 7

// Home squares from White's point of view
const (
	minorHomeSquares uint64 = 0x0000000000000066 // b1, c1, f1, g1
	queenHomeSquare  uint8  = 3                  // d1
)

// castledSquares are the king squares that look castled, from White's point of view (b1, c1, g1, h1)
const castledSquares uint64 = 0x00000000000000c6

// Mirror a White-relative mask for the given color
func relativeMask(color board.Color, mask uint64) uint64 {
	if color == board.White {
		return mask
	}
	mirrored := uint64(0)
	for mask != 0 {
		mirrored |= board.SquareBit(board.PopSquare(&mask) ^ 56)
	}
	return mirrored
}

func forward(color board.Color, bb uint64) uint64 {
	if color == board.White {
		return board.N(bb)
	}
	return board.S(bb)
}

// Up to three friendly pawns on the two ranks in front of the king
func pawnShieldTerm(s *evalState, color board.Color) float64 {
	king := s.pos.Pieces(color, board.King)
	near := forward(color, king)
	near |= board.E(near) | board.W(near)
	zone := near | forward(color, near)
	shield := board.PopCount(s.pos.Pieces(color, board.Pawn) & zone)
	if shield > 3 {
		shield = 3
	}
	return float64(shield)
}

func kingAttackTerm(s *evalState, color board.Color) float64 {
	kingZone := board.KingAttacks(s.pos.KingSquare(color.Other()))
	return float64(board.PopCount(s.attacked(color) & kingZone))
}

// Friendly pieces defended by another friendly piece
func coordinationTerm(s *evalState, color board.Color) float64 {
	pieces := s.pos.Occupied(color) &^ s.pos.Pieces(color, board.King)
	return float64(board.PopCount(s.attacked(color) & pieces))
}

func centerControlTerm(s *evalState, color board.Color) float64 {
	return float64(board.PopCount(s.attacked(color)&board.CenterBits) + board.PopCount(s.pos.Occupied(color)&board.CenterBits))
}

func bishopPairTerm(s *evalState, color board.Color) float64 {
	if board.PopCount(s.pos.Pieces(color, board.Bishop)) >= 2 {
		return 1
	}
	return 0
}

func knightPairTerm(s *evalState, color board.Color) float64 {
	if board.PopCount(s.pos.Pieces(color, board.Knight)) >= 2 {
		return 1
	}
	return 0
}

func bishopVisionTerm(s *evalState, color board.Color) float64 {
	seeing := 0
	for bishops := s.pos.Pieces(color, board.Bishop); bishops != 0; {
		sq := board.PopSquare(&bishops)
		if board.PopCount(board.BishopAttacks(sq, s.pos.All())) >= bishopVisionThreshold {
			seeing++
		}
	}
	return float64(seeing)
}

// Rooks defending each other along a rank or file
func rookCoordinationTerm(s *evalState, color board.Color) float64 {
	rooks := s.pos.Pieces(color, board.Rook)
	if board.PopCount(rooks) < 2 {
		return 0
	}
	for bb := rooks; bb != 0; {
		sq := board.PopSquare(&bb)
		if board.RookAttacks(sq, s.pos.All())&rooks != 0 {
			return 1
		}
	}
	return 0
}

func stackedRooksTerm(s *evalState, color board.Color) float64 {
	rooks := s.pos.Pieces(color, board.Rook)
	for file := uint8(0); file < 8; file++ {
		if board.PopCount(rooks&board.FileMask(file)) >= 2 {
			return 1
		}
	}
	return 0
}

func rookSeventhTerm(s *evalState, color board.Color) float64 {
	seventh := board.RankMask(6)
	if color == board.Black {
		seventh = board.RankMask(1)
	}
	return float64(board.PopCount(s.pos.Pieces(color, board.Rook) & seventh))
}

func isCastled(s *evalState, color board.Color) bool {
	return s.pos.Pieces(color, board.King)&relativeMask(color, castledSquares) != 0
}

func castledTerm(s *evalState, color board.Color) float64 {
	if isCastled(s, color) {
		return 1
	}
	return 0
}

func castlingRightsLostTerm(s *evalState, color board.Color) float64 {
	kingside, queenside := s.pos.CastleRights(color)
	if !kingside && !queenside && !isCastled(s, color) {
		return -1
	}
	return 0
}

func castlingRightsTerm(s *evalState, color board.Color) float64 {
	kingside, queenside := s.pos.CastleRights(color)
	rights := 0
	if kingside {
		rights++
	}
	if queenside {
		rights++
	}
	return float64(rights)
}

// Squares within mask reachable by each non-pawn, non-king piece
func pieceMobility(s *evalState, color board.Color, mask uint64) int {
	own := s.pos.Occupied(color)
	pieces := own &^ (s.pos.Pieces(color, board.Pawn) | s.pos.Pieces(color, board.King))
	total := 0
	for pieces != 0 {
		moves := s.pos.AttacksFrom(board.PopSquare(&pieces)) &^ own
		total += board.PopCount(moves & mask)
	}
	return total
}

func mobilityTerm(s *evalState, color board.Color) float64 {
	return float64(pieceMobility(s, color, ^uint64(0)))
}

// Mobility into squares the enemy pawns cover
func mobilityPawnAttackTerm(s *evalState, color board.Color) float64 {
	enemyPawnAttacks := board.PawnAttacks(color.Other(), s.pos.Pieces(color.Other(), board.Pawn))
	return -float64(pieceMobility(s, color, enemyPawnAttacks))
}

func undevelopedMinors(s *evalState, color board.Color) int {
	minors := s.pos.Pieces(color, board.Knight) | s.pos.Pieces(color, board.Bishop)
	return board.PopCount(minors & relativeMask(color, minorHomeSquares))
}

// Minor pieces still at home while the king can still castle
func undevelopedTerm(s *evalState, color board.Color) float64 {
	kingside, queenside := s.pos.CastleRights(color)
	if !kingside && !queenside {
		return 0
	}
	return -float64(undevelopedMinors(s, color))
}

func earlyQueenTerm(s *evalState, color board.Color) float64 {
	queens := s.pos.Pieces(color, board.Queen)
	home := board.SquareBit(queenHomeSquare)
	if color == board.Black {
		home = board.SquareBit(queenHomeSquare ^ 56)
	}
	if queens != 0 && queens&home == 0 && undevelopedMinors(s, color) >= 2 {
		return -1
	}
	return 0
}

// Knights on the 4th to 6th rank, defended by a pawn and out of reach of enemy pawns
func knightOutpostTerm(s *evalState, color board.Color) float64 {
	ownPawnAttacks := board.PawnAttacks(color, s.pos.Pieces(color, board.Pawn))
	enemyPawns := s.pos.Pieces(color.Other(), board.Pawn)
	enemyReach := board.NFill(board.WPawnAttacks(enemyPawns))
	if color == board.White {
		enemyReach = board.SFill(board.BPawnAttacks(enemyPawns))
	}
	outposts := 0
	for knights := s.pos.Pieces(color, board.Knight); knights != 0; {
		sq := board.PopSquare(&knights)
		rank := board.RelativeRank(color, sq)
		bit := board.SquareBit(sq)
		if rank >= 3 && rank <= 5 && ownPawnAttacks&bit != 0 && enemyReach&bit == 0 {
			outposts++
		}
	}
	return float64(outposts)
}

func heavyPieces(s *evalState, color board.Color) uint64 {
	return s.pos.Pieces(color, board.Rook) | s.pos.Pieces(color, board.Queen)
}

func openFileTerm(s *evalState, color board.Color) float64 {
	allPawns := s.pos.Pieces(board.White, board.Pawn) | s.pos.Pieces(board.Black, board.Pawn)
	open := ^board.FileFill(allPawns)
	return float64(board.PopCount(heavyPieces(s, color) & open))
}

func semiOpenFileTerm(s *evalState, color board.Color) float64 {
	ownFiles := board.FileFill(s.pos.Pieces(color, board.Pawn))
	enemyFiles := board.FileFill(s.pos.Pieces(color.Other(), board.Pawn))
	return float64(board.PopCount(heavyPieces(s, color) &^ ownFiles & enemyFiles))
}

// King on a file without a friendly pawn
func exposedKingTerm(s *evalState, color board.Color) float64 {
	kingFile := board.FileMask(board.File(s.pos.KingSquare(color)))
	if s.pos.Pieces(color, board.Pawn)&kingFile == 0 {
		return -1
	}
	return 0
}
