// Transposition table for main search.
// Bounded LRU: entries live in an arena slice, threaded on an intrusive doubly linked
// recency list, with a map from zobrist key to arena index.
// Entries carry no bound type, so a stored score is trusted as-is at any window.

package engine

import (
	"github.com/clanpj/pichu/board"
)

const DefaultTTCapacity = 1000000

const nilIndex int32 = -1

type ttEntry struct {
	key   uint64
	score float64
	move  board.Move
	depth int16
	// Recency list links, head is most recently touched
	prev, next int32
}

type TranspositionTable struct {
	entries  []ttEntry
	index    map[uint64]int32
	head     int32
	tail     int32
	capacity int

	Hits   uint64
	Misses uint64
}

func NewTranspositionTable(capacity int) *TranspositionTable {
	if capacity <= 0 {
		capacity = DefaultTTCapacity
	}
	tt := &TranspositionTable{capacity: capacity}
	tt.Clear()
	return tt
}

func (tt *TranspositionTable) Clear() {
	tt.entries = tt.entries[:0]
	tt.index = make(map[uint64]int32)
	tt.head, tt.tail = nilIndex, nilIndex
	tt.Hits, tt.Misses = 0, 0
}

func (tt *TranspositionTable) Len() int { return len(tt.entries) }

func (tt *TranspositionTable) Capacity() int { return tt.capacity }

func (tt *TranspositionTable) unlink(i int32) {
	e := &tt.entries[i]
	if e.prev != nilIndex {
		tt.entries[e.prev].next = e.next
	} else {
		tt.head = e.next
	}
	if e.next != nilIndex {
		tt.entries[e.next].prev = e.prev
	} else {
		tt.tail = e.prev
	}
	e.prev, e.next = nilIndex, nilIndex
}

func (tt *TranspositionTable) pushFront(i int32) {
	e := &tt.entries[i]
	e.prev = nilIndex
	e.next = tt.head
	if tt.head != nilIndex {
		tt.entries[tt.head].prev = i
	}
	tt.head = i
	if tt.tail == nilIndex {
		tt.tail = i
	}
}

func (tt *TranspositionTable) touch(i int32) {
	if tt.head == i {
		return
	}
	tt.unlink(i)
	tt.pushFront(i)
}

// Lookup returns the stored move and score if the entry was searched at least depth plies deep.
func (tt *TranspositionTable) Lookup(key uint64, depth int) (board.Move, float64, bool) {
	i, ok := tt.index[key]
	if !ok {
		tt.Misses++
		return board.NoMove, 0, false
	}
	tt.touch(i)
	e := &tt.entries[i]
	if int(e.depth) < depth {
		tt.Misses++
		return board.NoMove, 0, false
	}
	tt.Hits++
	return e.move, e.score, true
}

// HashMove returns the stored best move at any depth, for move ordering.
func (tt *TranspositionTable) HashMove(key uint64) board.Move {
	i, ok := tt.index[key]
	if !ok {
		return board.NoMove
	}
	tt.touch(i)
	return tt.entries[i].move
}

// Store replaces an existing entry only with a deeper one, or an equally deep one with a better score.
// When full, the least recently touched entry is evicted.
func (tt *TranspositionTable) Store(key uint64, depth int, move board.Move, score float64) {
	if i, ok := tt.index[key]; ok {
		e := &tt.entries[i]
		if depth > int(e.depth) || (depth == int(e.depth) && score > e.score) {
			e.depth, e.move, e.score = int16(depth), move, score
		}
		tt.touch(i)
		return
	}

	var i int32
	if len(tt.entries) < tt.capacity {
		tt.entries = append(tt.entries, ttEntry{})
		i = int32(len(tt.entries) - 1)
	} else {
		// Recycle the least recently used slot
		i = tt.tail
		tt.unlink(i)
		delete(tt.index, tt.entries[i].key)
	}
	tt.entries[i] = ttEntry{key: key, score: score, move: move, depth: int16(depth), prev: nilIndex, next: nilIndex}
	tt.index[key] = i
	tt.pushFront(i)
}
