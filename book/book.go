// Package book is an immutable opening book: position key -> weighted replies.
package book

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"lukechampine.com/frand"

	"github.com/clanpj/pichu/board"
)

var ErrIllegalBookMove = errors.New("book: illegal move")

type Reply struct {
	Move   string
	Weight int
}

// One book position: the FEN (start position if empty) after playing Line, and the replies from there.
type Entry struct {
	FEN     string
	Line    []string
	Replies []Reply
}

type weightedMove struct {
	move   board.Move
	weight int
}

// Book is safe for concurrent lookups once built.
type Book struct {
	positions map[uint64][]weightedMove
}

// New validates every line and reply against the move generator.
// Entries reaching the same position are merged.
func New(entries []Entry) (*Book, error) {
	b := &Book{positions: make(map[uint64][]weightedMove, len(entries))}
	for _, entry := range entries {
		fen := entry.FEN
		if fen == "" {
			fen = board.Startpos
		}
		pos, err := board.FromMoves(fen, entry.Line)
		if err != nil {
			return nil, fmt.Errorf("%w: line %v: %w", ErrIllegalBookMove, entry.Line, err)
		}
		key := pos.Key()
		for _, reply := range entry.Replies {
			move, err := pos.ParseMove(reply.Move)
			if err != nil {
				return nil, fmt.Errorf("%w: reply %s after %v: %w", ErrIllegalBookMove, reply.Move, entry.Line, err)
			}
			if reply.Weight <= 0 {
				continue
			}
			b.positions[key] = append(b.positions[key], weightedMove{move, reply.Weight})
		}
	}
	return b, nil
}

func (b *Book) Len() int { return len(b.positions) }

// Lookup picks a reply for pos with probability proportional to its weight.
func (b *Book) Lookup(pos *board.Position) (board.Move, bool) {
	replies := b.positions[pos.Key()]
	total := lo.SumBy(replies, func(r weightedMove) int { return r.weight })
	if total == 0 {
		return board.NoMove, false
	}
	n := frand.Intn(total)
	for _, r := range replies {
		if n < r.weight {
			return r.move, true
		}
		n -= r.weight
	}
	return board.NoMove, false
}

// Replies lists the book moves for pos in insertion order.
func (b *Book) Replies(pos *board.Position) []board.Move {
	return lo.Map(b.positions[pos.Key()], func(r weightedMove, _ int) board.Move { return r.move })
}
