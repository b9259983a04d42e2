// Piece-square tables, centipawns from White's point of view.
// Index 0 is a1, index 63 is h8. Black looks up the rank-mirrored square.

package engine

import (
	"github.com/clanpj/pichu/board"
)

// Stolen from SunFish (tables inverted to reflect dragon pos ordering)
var pawnPosVals = [64]int8{
	0, 0, 0, 0, 0, 0, 0, 0,
	-31, 8, -7, -37, -36, -14, 3, -31,
	-22, 9, 5, -11, -10, -2, 3, -19,
	-26, 3, 10, 9, 6, 1, 0, -23,
	-17, 16, -2, 15, 14, 0, 15, -13,
	7, 29, 21, 44, 40, 31, 44, 7,
	78, 83, 86, 73, 102, 82, 85, 90,
	0, 0, 0, 0, 0, 0, 0, 0}

var knightPosVals = [64]int8{
	-74, -23, -26, -24, -19, -35, -22, -69,
	-23, -15, 2, 0, 2, 0, -23, -20,
	-18, 10, 13, 22, 18, 15, 11, -14,
	-1, 5, 31, 21, 22, 35, 2, 0,
	24, 24, 45, 37, 33, 41, 25, 17,
	10, 67, 1, 74, 73, 27, 62, -2,
	-3, -6, 100, -36, 4, 62, -4, -14,
	-66, -53, -75, -75, -10, -55, -58, -70}

var bishopPosVals = [64]int8{
	-7, 2, -15, -12, -14, -15, -10, -10,
	19, 20, 11, 6, 7, 6, 20, 16,
	14, 25, 24, 15, 8, 25, 20, 15,
	13, 10, 17, 23, 17, 16, 0, 7,
	25, 17, 20, 34, 26, 25, 15, 10,
	-9, 39, -32, 41, 52, -10, 28, -14,
	-11, 20, 35, -42, -39, 31, 2, -22,
	-59, -78, -82, -76, -23, -107, -37, -50}

var rookPosVals = [64]int8{
	-30, -24, -18, 5, -2, -18, -31, -32,
	-53, -38, -31, -26, -29, -43, -44, -53,
	-42, -28, -42, -25, -25, -35, -26, -46,
	-28, -35, -16, -21, -13, -29, -46, -30,
	0, 5, 16, 13, 18, -4, -9, -6,
	19, 35, 28, 33, 45, 27, 25, 15,
	55, 29, 56, 67, 55, 62, 34, 60,
	35, 29, 33, 4, 37, 33, 56, 50}

var queenPosVals = [64]int8{
	-39, -30, -31, -13, -31, -36, -34, -42,
	-36, -18, 0, -19, -15, -15, -21, -38,
	-30, -6, -13, -11, -16, -11, -16, -27,
	-14, -15, -2, -5, -1, -10, -20, -22,
	1, -16, 22, 17, 25, 20, -13, -6,
	-2, 43, 32, 60, 72, 63, 43, 2,
	14, 32, 60, -10, 20, 76, 57, 24,
	6, 1, -8, -104, 69, 24, 88, 26}

var kingPosVals = [64]int8{
	17, 30, -3, -14, 6, -1, 40, 18,
	-4, 3, -14, -50, -57, -18, 13, 4,
	-47, -42, -43, -79, -64, -32, -29, -32,
	-55, -43, -52, -28, -51, -47, -8, -50,
	-55, 50, 11, -4, -19, 13, 0, -49,
	-62, 12, -57, 44, -67, 28, 37, -31,
	-32, 10, 55, 56, 56, 55, 10, 3,
	4, 54, 47, -99, -99, 60, 83, -62}

// Advanced pawns matter more once the pieces are off
var pawnEndgamePosVals = [64]int8{
	0, 0, 0, 0, 0, 0, 0, 0,
	-10, -10, -10, -10, -10, -10, -10, -10,
	-5, -5, -5, -5, -5, -5, -5, -5,
	5, 5, 5, 5, 5, 5, 5, 5,
	20, 20, 20, 20, 20, 20, 20, 20,
	40, 40, 40, 40, 40, 40, 40, 40,
	80, 80, 80, 80, 80, 80, 80, 80,
	0, 0, 0, 0, 0, 0, 0, 0}

// From - https://chessprogramming.wikispaces.com/Simplified+evaluation+function - (tables inverted to reflect dragon pos ordering)
var kingEndgamePosVals = [64]int8{
	-50, -30, -30, -30, -30, -30, -30, -50,
	-30, -30, 0, 0, 0, 0, -30, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 30, 40, 40, 30, -10, -30,
	-30, -10, 20, 30, 30, 20, -10, -30,
	-30, -20, -10, 0, 0, -10, -20, -30,
	-50, -40, -30, -20, -20, -30, -40, -50}

var middlegamePosVals = [board.NPieces]*[64]int8{
	nil,
	&pawnPosVals,
	&knightPosVals,
	&bishopPosVals,
	&rookPosVals,
	&queenPosVals,
	&kingPosVals}

// PSTValue returns the table value in centipawns for a piece of the given color on sq.
// Pawn and king values are interpolated by phase (0 opening, 1 bare kings).
func PSTValue(piece board.Piece, sq uint8, color board.Color, phase float64) float64 {
	if piece == board.Nothing || int(piece) >= board.NPieces || sq > 63 {
		return 0
	}
	if color == board.Black {
		sq ^= 56
	}
	mg := float64(middlegamePosVals[piece][sq])
	switch piece {
	case board.Pawn:
		return mg*(1-phase) + float64(pawnEndgamePosVals[sq])*phase
	case board.King:
		return mg*(1-phase) + float64(kingEndgamePosVals[sq])*phase
	}
	return mg
}

// PSTScore is the sum of the table values of all pieces of the given color, in pawns.
func PSTScore(pos *board.Position, color board.Color, phase float64) float64 {
	cp := 0.0
	for piece := board.Pawn; piece <= board.King; piece++ {
		pieces := pos.Pieces(color, piece)
		for pieces != 0 {
			cp += PSTValue(piece, board.PopSquare(&pieces), color, phase)
		}
	}
	return cp / 100
}

// Board-wide table score, White positive
func BoardPSTScore(pos *board.Position, phase float64) float64 {
	return PSTScore(pos, board.White, phase) - PSTScore(pos, board.Black, phase)
}

// Non-king material on a full board, in pawns
const startingMaterial = 78.0

// GamePhase estimates how endgame-like the position is from the remaining non-king material:
// 0.0 with all pieces on the board, 1.0 with bare kings.
func GamePhase(pos *board.Position) float64 {
	material := materialCp(pos, board.White) + materialCp(pos, board.Black)
	return clamp(1-float64(material)/100/startingMaterial, 0.0, 1.0)
}
