// Bitboard utilities
// Note bit 0 (low bit) is square A1, bit 63 (hi bit) is square H8

package board

import "math/bits"

const A uint64 = 0x0101010101010101
const H uint64 = 0x8080808080808080

const Rank1Bits uint64 = 0x00000000000000ff
const Rank8Bits uint64 = 0xff00000000000000

// Light squares (a1 is dark)
const LightSquares uint64 = 0x55aa55aa55aa55aa
const DarkSquares uint64 = ^LightSquares

// d4, e4, d5, e5
const CenterBits uint64 = 0x0000001818000000

const QueenSideBits uint64 = 0x0f0f0f0f0f0f0f0f
const KingSideBits uint64 = 0xf0f0f0f0f0f0f0f0

func N(bb uint64) uint64 { return bb << 8 }

func S(bb uint64) uint64 { return bb >> 8 }

func W(bb uint64) uint64 { return (bb & ^A) >> 1 }

func E(bb uint64) uint64 { return (bb & ^H) << 1 }

func NFill(bb uint64) uint64 {
	fill := bb
	fill = fill | (fill << 8)
	fill = fill | (fill << 16)
	fill = fill | (fill << 32)
	return fill
}

func SFill(bb uint64) uint64 {
	fill := bb
	fill = fill | (fill >> 8)
	fill = fill | (fill >> 16)
	fill = fill | (fill >> 32)
	return fill
}

// All squares on the files of the given pieces
func FileFill(bb uint64) uint64 { return NFill(bb) | SFill(bb) }

// Squares in front of white pawns on the same and adjacent files
func WPawnScope(wPawns uint64) uint64 {
	n := N(wPawns)
	return NFill(n | W(n) | E(n))
}

// Squares in front of black pawns on the same and adjacent files
func BPawnScope(bPawns uint64) uint64 {
	s := S(bPawns)
	return SFill(s | W(s) | E(s))
}

func WPawnAttacks(wPawns uint64) uint64 {
	n := N(wPawns)
	return W(n) | E(n)
}

func BPawnAttacks(bPawns uint64) uint64 {
	s := S(bPawns)
	return W(s) | E(s)
}

func PawnAttacks(color Color, pawns uint64) uint64 {
	if color == White {
		return WPawnAttacks(pawns)
	}
	return BPawnAttacks(pawns)
}

func PawnScope(color Color, pawns uint64) uint64 {
	if color == White {
		return WPawnScope(pawns)
	}
	return BPawnScope(pawns)
}

func Rank(sq uint8) uint8 { return sq >> 3 }

func File(sq uint8) uint8 { return sq & 7 }

// Rank from the given color's point of view (0 is the home rank)
func RelativeRank(color Color, sq uint8) uint8 {
	if color == White {
		return Rank(sq)
	}
	return 7 - Rank(sq)
}

func FileMask(file uint8) uint64 { return A << file }

func RankMask(rank uint8) uint64 { return Rank1Bits << (8 * rank) }

func SquareBit(sq uint8) uint64 { return uint64(1) << sq }

func PopCount(bb uint64) int { return bits.OnesCount64(bb) }

// Pop the lowest set square off the bitboard
func PopSquare(bb *uint64) uint8 {
	sq := uint8(bits.TrailingZeros64(*bb))
	*bb &= *bb - 1
	return sq
}

// Masks for attacks
// In order: knight on A1, B1, C1, ... F8, G8, H8
var knightMasks = [64]uint64{
	0x0000000000020400, 0x0000000000050800, 0x00000000000a1100, 0x0000000000142200,
	0x0000000000284400, 0x0000000000508800, 0x0000000000a01000, 0x0000000000402000,
	0x0000000002040004, 0x0000000005080008, 0x000000000a110011, 0x0000000014220022,
	0x0000000028440044, 0x0000000050880088, 0x00000000a0100010, 0x0000000040200020,
	0x0000000204000402, 0x0000000508000805, 0x0000000a1100110a, 0x0000001422002214,
	0x0000002844004428, 0x0000005088008850, 0x000000a0100010a0, 0x0000004020002040,
	0x0000020400040200, 0x0000050800080500, 0x00000a1100110a00, 0x0000142200221400,
	0x0000284400442800, 0x0000508800885000, 0x0000a0100010a000, 0x0000402000204000,
	0x0002040004020000, 0x0005080008050000, 0x000a1100110a0000, 0x0014220022140000,
	0x0028440044280000, 0x0050880088500000, 0x00a0100010a00000, 0x0040200020400000,
	0x0204000402000000, 0x0508000805000000, 0x0a1100110a000000, 0x1422002214000000,
	0x2844004428000000, 0x5088008850000000, 0xa0100010a0000000, 0x4020002040000000,
	0x0400040200000000, 0x0800080500000000, 0x1100110a00000000, 0x2200221400000000,
	0x4400442800000000, 0x8800885000000000, 0x100010a000000000, 0x2000204000000000,
	0x0004020000000000, 0x0008050000000000, 0x00110a0000000000, 0x0022140000000000,
	0x0044280000000000, 0x0088500000000000, 0x0010a00000000000, 0x0020400000000000}

var kingMasks = [64]uint64{
	0x0000000000000302, 0x0000000000000705, 0x0000000000000e0a, 0x0000000000001c14,
	0x0000000000003828, 0x0000000000007050, 0x000000000000e0a0, 0x000000000000c040,
	0x0000000000030203, 0x0000000000070507, 0x00000000000e0a0e, 0x00000000001c141c,
	0x0000000000382838, 0x0000000000705070, 0x0000000000e0a0e0, 0x0000000000c040c0,
	0x0000000003020300, 0x0000000007050700, 0x000000000e0a0e00, 0x000000001c141c00,
	0x0000000038283800, 0x0000000070507000, 0x00000000e0a0e000, 0x00000000c040c000,
	0x0000000302030000, 0x0000000705070000, 0x0000000e0a0e0000, 0x0000001c141c0000,
	0x0000003828380000, 0x0000007050700000, 0x000000e0a0e00000, 0x000000c040c00000,
	0x0000030203000000, 0x0000070507000000, 0x00000e0a0e000000, 0x00001c141c000000,
	0x0000382838000000, 0x0000705070000000, 0x0000e0a0e0000000, 0x0000c040c0000000,
	0x0003020300000000, 0x0007050700000000, 0x000e0a0e00000000, 0x001c141c00000000,
	0x0038283800000000, 0x0070507000000000, 0x00e0a0e000000000, 0x00c040c000000000,
	0x0302030000000000, 0x0705070000000000, 0x0e0a0e0000000000, 0x1c141c0000000000,
	0x3828380000000000, 0x7050700000000000, 0xe0a0e00000000000, 0xc040c00000000000,
	0x0203000000000000, 0x0507000000000000, 0x0a0e000000000000, 0x141c000000000000,
	0x2838000000000000, 0x5070000000000000, 0xa0e0000000000000, 0x40c0000000000000}

func KnightAttacks(sq uint8) uint64 { return knightMasks[sq] }

func KingAttacks(sq uint8) uint64 { return kingMasks[sq] }

// Sliding attacks stop at (and include) the first occupied square in each direction.
func slide(sq uint8, occupied uint64, df int, dr int) uint64 {
	attacks := uint64(0)
	f, r := int(File(sq)), int(Rank(sq))
	for {
		f += df
		r += dr
		if f < 0 || f > 7 || r < 0 || r > 7 {
			break
		}
		bit := uint64(1) << uint(r*8+f)
		attacks |= bit
		if occupied&bit != 0 {
			break
		}
	}
	return attacks
}

func BishopAttacks(sq uint8, occupied uint64) uint64 {
	return slide(sq, occupied, 1, 1) | slide(sq, occupied, -1, 1) | slide(sq, occupied, 1, -1) | slide(sq, occupied, -1, -1)
}

func RookAttacks(sq uint8, occupied uint64) uint64 {
	return slide(sq, occupied, 1, 0) | slide(sq, occupied, -1, 0) | slide(sq, occupied, 0, 1) | slide(sq, occupied, 0, -1)
}

func QueenAttacks(sq uint8, occupied uint64) uint64 {
	return BishopAttacks(sq, occupied) | RookAttacks(sq, occupied)
}
