// Position wraps the dragontoothmg board with push/pop discipline and the game state
// that dragontoothmg keeps to itself (castling rights, en-passant square, repetition history).

package board

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	dragon "github.com/dylhunn/dragontoothmg"
)

type Color uint8

const (
	White Color = iota
	Black
	NColors
)

func (c Color) Other() Color { return c ^ 1 }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

type Piece = dragon.Piece

const (
	Nothing Piece = dragon.Nothing
	Pawn    Piece = dragon.Pawn
	Knight  Piece = dragon.Knight
	Bishop  Piece = dragon.Bishop
	Rook    Piece = dragon.Rook
	Queen   Piece = dragon.Queen
	King    Piece = dragon.King
	NPieces       = 7
)

type Move = dragon.Move

const NoMove Move = 0

const Startpos = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

var (
	ErrInvalidFEN  = errors.New("board: invalid fen")
	ErrIllegalMove = errors.New("board: illegal move")
)

// Castling rights bits
const (
	castleWK uint8 = 1 << iota
	castleWQ
	castleBK
	castleBQ
)

const noEnPassant int8 = -1

type undoT struct {
	unapply   func()
	castle    uint8
	enPassant int8
}

type Position struct {
	b         dragon.Board
	castle    uint8
	enPassant int8
	stack     []undoT
	// Zobrist keys of every position in the game so far, including the current one
	history []uint64
}

func NewPosition() *Position {
	p, err := FromFEN(Startpos)
	if err != nil {
		panic(err)
	}
	return p
}

// FromFEN parses a FEN string. Missing castling, en-passant and clock fields default to "- - 0 1".
func FromFEN(fen string) (*Position, error) {
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return nil, fmt.Errorf("%w: %q needs at least placement and side to move", ErrInvalidFEN, fen)
	}
	defaults := []string{"-", "-", "0", "1"}
	for len(fields) < 6 {
		fields = append(fields, defaults[len(fields)-2])
	}
	fields = fields[:6]

	if err := validatePlacement(fields[0]); err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidFEN, fen, err)
	}
	if fields[1] != "w" && fields[1] != "b" {
		return nil, fmt.Errorf("%w: %q: bad side to move %q", ErrInvalidFEN, fen, fields[1])
	}
	castle, err := parseCastling(fields[2])
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidFEN, fen, err)
	}
	enPassant := noEnPassant
	if fields[3] != "-" {
		sq, err := ParseSquare(fields[3])
		if err != nil || (Rank(sq) != 2 && Rank(sq) != 5) {
			return nil, fmt.Errorf("%w: %q: bad en-passant square %q", ErrInvalidFEN, fen, fields[3])
		}
		enPassant = int8(sq)
	}
	for _, clock := range fields[4:] {
		if n, err := strconv.Atoi(clock); err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %q: bad move clock %q", ErrInvalidFEN, fen, clock)
		}
	}

	p := &Position{
		b:         dragon.ParseFen(strings.Join(fields, " ")),
		castle:    castle,
		enPassant: enPassant,
	}
	p.history = append(p.history, p.b.Hash())
	return p, nil
}

// FromMoves replays a sequence of UCI moves from the given FEN, recording the repetition history.
func FromMoves(fen string, uciMoves []string) (*Position, error) {
	p, err := FromFEN(fen)
	if err != nil {
		return nil, err
	}
	for _, s := range uciMoves {
		move, err := p.ParseMove(s)
		if err != nil {
			return nil, err
		}
		p.Push(move)
	}
	// The replayed moves are history, not something a search should unwind
	p.stack = p.stack[:0]
	return p, nil
}

func validatePlacement(placement string) error {
	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("expected 8 ranks, got %d", len(ranks))
	}
	kings := map[rune]int{}
	for i, rank := range ranks {
		width := 0
		for _, c := range rank {
			switch {
			case c >= '1' && c <= '8':
				width += int(c - '0')
			case strings.ContainsRune("pnbrqkPNBRQK", c):
				width++
				if c == 'k' || c == 'K' {
					kings[c]++
				}
			default:
				return fmt.Errorf("bad piece %q in rank %d", c, 8-i)
			}
		}
		if width != 8 {
			return fmt.Errorf("rank %d has %d squares", 8-i, width)
		}
	}
	if kings['K'] != 1 || kings['k'] != 1 {
		return fmt.Errorf("expected one king per side, got %d white and %d black", kings['K'], kings['k'])
	}
	return nil
}

func parseCastling(s string) (uint8, error) {
	if s == "-" {
		return 0, nil
	}
	castle := uint8(0)
	for _, c := range s {
		switch c {
		case 'K':
			castle |= castleWK
		case 'Q':
			castle |= castleWQ
		case 'k':
			castle |= castleBK
		case 'q':
			castle |= castleBQ
		default:
			return 0, fmt.Errorf("bad castling rights %q", s)
		}
	}
	return castle, nil
}

// ParseSquare converts algebraic notation (e.g. "e4") to a square index.
func ParseSquare(s string) (uint8, error) {
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return 0, fmt.Errorf("bad square %q", s)
	}
	return (s[1]-'1')*8 + (s[0] - 'a'), nil
}

func SquareString(sq uint8) string {
	return string([]byte{'a' + File(sq), '1' + Rank(sq)})
}

// ParseMove finds the legal move with the given UCI notation.
func (p *Position) ParseMove(s string) (Move, error) {
	s = strings.ToLower(s)
	for _, move := range p.LegalMoves() {
		if move.String() == s {
			return move, nil
		}
	}
	return NoMove, fmt.Errorf("%w: %s in %s", ErrIllegalMove, s, p.FEN())
}

// Push applies the move. Every Push must be matched by a Pop.
func (p *Position) Push(move Move) {
	undo := undoT{castle: p.castle, enPassant: p.enPassant}

	from, to := move.From(), move.To()
	moved, _ := p.PieceAt(from)
	p.castle &^= castleLoss[from] | castleLoss[to]
	p.enPassant = noEnPassant
	if moved == Pawn && (to == from+16 || from == to+16) {
		p.enPassant = int8((from + to) / 2)
	}

	undo.unapply = p.b.Apply(move)
	p.stack = append(p.stack, undo)
	p.history = append(p.history, p.b.Hash())
}

// Pop takes back the last pushed move. Popping an empty stack is a no-op.
func (p *Position) Pop() {
	n := len(p.stack)
	if n == 0 {
		return
	}
	undo := p.stack[n-1]
	p.stack = p.stack[:n-1]
	p.history = p.history[:len(p.history)-1]

	undo.unapply()
	p.castle = undo.castle
	p.enPassant = undo.enPassant
}

// PushLegal applies the move only if it is legal; otherwise the board is untouched.
func (p *Position) PushLegal(move Move) error {
	if !p.IsLegal(move) {
		return fmt.Errorf("%w: %s in %s", ErrIllegalMove, move.String(), p.FEN())
	}
	p.Push(move)
	return nil
}

// Squares whose king or rook moving (or being captured) loses castling rights
var castleLoss = func() (loss [64]uint8) {
	loss[4] = castleWK | castleWQ
	loss[0] = castleWQ
	loss[7] = castleWK
	loss[60] = castleBK | castleBQ
	loss[56] = castleBQ
	loss[63] = castleBK
	return
}()

// Number of moves pushed since construction
func (p *Position) Ply() int { return len(p.stack) }

func (p *Position) SideToMove() Color {
	if p.b.Wtomove {
		return White
	}
	return Black
}

// Key is the canonical position identity (zobrist hash).
func (p *Position) Key() uint64 { return p.b.Hash() }

func (p *Position) HalfmoveClock() int { return int(p.b.Halfmoveclock) }

func (p *Position) FullmoveNumber() int { return int(p.b.Fullmoveno) }

func (p *Position) LegalMoves() []Move { return p.b.GenerateLegalMoves() }

func (p *Position) IsLegal(move Move) bool {
	if move == NoMove {
		return false
	}
	for _, legal := range p.LegalMoves() {
		if legal == move {
			return true
		}
	}
	return false
}

func (p *Position) InCheck() bool { return p.b.OurKingInCheck() }

func (p *Position) IsCheckmate() bool {
	return p.InCheck() && len(p.LegalMoves()) == 0
}

func (p *Position) IsStalemate() bool {
	return !p.InCheck() && len(p.LegalMoves()) == 0
}

// IsRepetition reports whether the current position has occurred at least n times in the game.
func (p *Position) IsRepetition(n int) bool {
	key := p.Key()
	count := 0
	for i := len(p.history) - 1; i >= 0; i-- {
		if p.history[i] == key {
			count++
			if count >= n {
				return true
			}
		}
	}
	return false
}

func (p *Position) IsInsufficientMaterial() bool {
	w, b := &p.b.White, &p.b.Black
	if w.Pawns|w.Rooks|w.Queens|b.Pawns|b.Rooks|b.Queens != 0 {
		return false
	}
	minors := bits.OnesCount64(w.Knights | w.Bishops | b.Knights | b.Bishops)
	if minors <= 1 {
		return true
	}
	// Lone bishops on the same square color
	if w.Knights|b.Knights == 0 && bits.OnesCount64(w.Bishops) == 1 && bits.OnesCount64(b.Bishops) == 1 {
		bishops := w.Bishops | b.Bishops
		return bishops&LightSquares == bishops || bishops&DarkSquares == bishops
	}
	return false
}

const DrawRepetitions = 3

func (p *Position) IsDraw() bool {
	return p.IsStalemate() || p.IsInsufficientMaterial() || p.IsRepetition(DrawRepetitions)
}

func (p *Position) IsGameOver() bool {
	return len(p.LegalMoves()) == 0 || p.IsInsufficientMaterial() || p.IsRepetition(DrawRepetitions)
}

func (p *Position) bitboards(color Color) *dragon.Bitboards {
	if color == White {
		return &p.b.White
	}
	return &p.b.Black
}

func (p *Position) Pieces(color Color, piece Piece) uint64 {
	bbs := p.bitboards(color)
	switch piece {
	case Pawn:
		return bbs.Pawns
	case Knight:
		return bbs.Knights
	case Bishop:
		return bbs.Bishops
	case Rook:
		return bbs.Rooks
	case Queen:
		return bbs.Queens
	case King:
		return bbs.Kings
	}
	return 0
}

func (p *Position) Occupied(color Color) uint64 { return p.bitboards(color).All }

func (p *Position) All() uint64 { return p.b.White.All | p.b.Black.All }

// PieceAt returns the piece and its color; Nothing if the square is empty.
func (p *Position) PieceAt(sq uint8) (Piece, Color) {
	bit := SquareBit(sq)
	color := White
	if p.b.Black.All&bit != 0 {
		color = Black
	} else if p.b.White.All&bit == 0 {
		return Nothing, White
	}
	bbs := p.bitboards(color)
	switch {
	case bbs.Pawns&bit != 0:
		return Pawn, color
	case bbs.Knights&bit != 0:
		return Knight, color
	case bbs.Bishops&bit != 0:
		return Bishop, color
	case bbs.Rooks&bit != 0:
		return Rook, color
	case bbs.Queens&bit != 0:
		return Queen, color
	case bbs.Kings&bit != 0:
		return King, color
	}
	return Nothing, color
}

func (p *Position) KingSquare(color Color) uint8 {
	return uint8(bits.TrailingZeros64(p.bitboards(color).Kings))
}

func (p *Position) CastleRights(color Color) (kingside bool, queenside bool) {
	if color == White {
		return p.castle&castleWK != 0, p.castle&castleWQ != 0
	}
	return p.castle&castleBK != 0, p.castle&castleBQ != 0
}

// EnPassant returns the en-passant target square, if any.
func (p *Position) EnPassant() (uint8, bool) {
	if p.enPassant == noEnPassant {
		return 0, false
	}
	return uint8(p.enPassant), true
}

func (p *Position) MovedPiece(move Move) Piece {
	piece, _ := p.PieceAt(move.From())
	return piece
}

// CapturedPiece returns the piece taken by the move, including en-passant captures.
func (p *Position) CapturedPiece(move Move) Piece {
	to := move.To()
	piece, color := p.PieceAt(to)
	if piece != Nothing {
		if color == p.SideToMove() {
			return Nothing
		}
		return piece
	}
	if ep, ok := p.EnPassant(); ok && to == ep && p.MovedPiece(move) == Pawn && File(move.From()) != File(to) {
		return Pawn
	}
	return Nothing
}

func (p *Position) IsCapture(move Move) bool { return p.CapturedPiece(move) != Nothing }

func (p *Position) IsPromotion(move Move) bool { return move.Promote() != Nothing }

func (p *Position) GivesCheck(move Move) bool {
	p.Push(move)
	defer p.Pop()
	return p.InCheck()
}

func (p *Position) GivesCheckmate(move Move) bool {
	p.Push(move)
	defer p.Pop()
	return p.IsCheckmate()
}

// Attacks returns every square attacked by the given color.
func (p *Position) Attacks(color Color) uint64 {
	attacks := PawnAttacks(color, p.Pieces(color, Pawn))
	pieces := p.Occupied(color) &^ p.Pieces(color, Pawn)
	for pieces != 0 {
		attacks |= p.AttacksFrom(PopSquare(&pieces))
	}
	return attacks
}

// AttacksFrom returns the squares attacked by the piece on sq (empty if none).
func (p *Position) AttacksFrom(sq uint8) uint64 {
	piece, color := p.PieceAt(sq)
	switch piece {
	case Pawn:
		return PawnAttacks(color, SquareBit(sq))
	case Knight:
		return KnightAttacks(sq)
	case Bishop:
		return BishopAttacks(sq, p.All())
	case Rook:
		return RookAttacks(sq, p.All())
	case Queen:
		return QueenAttacks(sq, p.All())
	case King:
		return KingAttacks(sq)
	}
	return 0
}

var fenPieces = [NColors][NPieces]byte{
	{'.', 'P', 'N', 'B', 'R', 'Q', 'K'},
	{'.', 'p', 'n', 'b', 'r', 'q', 'k'}}

func (p *Position) FEN() string {
	var sb strings.Builder
	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			piece, color := p.PieceAt(uint8(rank*8 + file))
			if piece == Nothing {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(fenPieces[color][piece])
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if p.b.Wtomove {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	castling := ""
	for i, c := range "KQkq" {
		if p.castle&(1<<uint(i)) != 0 {
			castling += string(c)
		}
	}
	if castling == "" {
		castling = "-"
	}
	sb.WriteString(castling)

	if ep, ok := p.EnPassant(); ok {
		sb.WriteString(" " + SquareString(ep))
	} else {
		sb.WriteString(" -")
	}
	fmt.Fprintf(&sb, " %d %d", p.b.Halfmoveclock, p.b.Fullmoveno)
	return sb.String()
}

func (p *Position) String() string { return p.FEN() }
