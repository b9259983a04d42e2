package engine

import (
	"math"
	"testing"
	"time"

	"github.com/clanpj/pichu/board"
)

// Time manager with a hand-cranked clock
func newFakeTimeManager() (*TimeManager, *time.Time) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	tm := NewTimeManager()
	tm.now = func() time.Time { return now }
	return tm, &now
}

func TestAllocateTimeBlitz(t *testing.T) {
	tm := NewTimeManager()
	clock := ClockState{WhiteTime: 5 * time.Second, BlackTime: 5 * time.Second, WhiteInc: 5 * time.Second, BlackInc: 5 * time.Second}
	budget := tm.AllocateTime(clock, board.NewPosition())
	if budget < 100*time.Millisecond || budget > 500*time.Millisecond {
		t.Errorf("Expected a budget in [0.1s, 0.5s], got %v", budget)
	}
}

func TestAllocateTimeBlitzNoIncrement(t *testing.T) {
	tm := NewTimeManager()
	clock := ClockState{WhiteTime: 5 * time.Second, BlackTime: 5 * time.Second}
	// 5s / 40 * 0.8 sits right on the 100ms floor
	budget := tm.AllocateTime(clock, board.NewPosition())
	if budget < 100*time.Millisecond || budget > 500*time.Millisecond {
		t.Errorf("Expected a budget in [0.1s, 0.5s], got %v", budget)
	}
}

func TestAllocateTimeFlaggedMover(t *testing.T) {
	tm := NewTimeManager()
	pos := board.NewPosition()
	// The opponent's clock is running, so an empty or negative mover clock is not "no clock"
	for _, remaining := range []time.Duration{0, -200 * time.Millisecond, 50 * time.Millisecond} {
		clock := ClockState{WhiteTime: remaining, BlackTime: time.Minute}
		got := tm.AllocateTime(clock, pos)
		if got == InfiniteTime || got <= 0 || got > 100*time.Millisecond {
			t.Errorf("wtime %v: expected a small bounded budget, got %v", remaining, got)
		}
	}
	clock := ClockState{BlackTime: time.Minute}
	if got := tm.AllocateTime(clock, pos); got != time.Millisecond {
		t.Errorf("Expected the 1ms minimum with no time left, got %v", got)
	}
}

func TestAllocateTimeFixedControls(t *testing.T) {
	tm := NewTimeManager()
	pos := board.NewPosition()
	if got := tm.AllocateTime(ClockState{MoveTime: 1500 * time.Millisecond, WhiteTime: time.Minute}, pos); got != 1500*time.Millisecond {
		t.Errorf("movetime: expected 1.5s, got %v", got)
	}
	if got := tm.AllocateTime(ClockState{Infinite: true, WhiteTime: time.Minute}, pos); got != InfiniteTime {
		t.Errorf("infinite: expected InfiniteTime, got %v", got)
	}
	if got := tm.AllocateTime(ClockState{Depth: 6, WhiteTime: time.Minute}, pos); got != InfiniteTime {
		t.Errorf("depth: expected InfiniteTime, got %v", got)
	}
	if got := tm.AllocateTime(ClockState{}, pos); got != InfiniteTime {
		t.Errorf("no clock: expected InfiniteTime, got %v", got)
	}
}

func TestAllocateTimeUsesMoverClock(t *testing.T) {
	tm := NewTimeManager()
	pos := mustFEN(t, "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	clock := ClockState{WhiteTime: 10 * time.Minute, BlackTime: 20 * time.Second}
	// Black's clock: 20s / 40 * 0.8 (full board) = 400ms, under the 2s cap
	if got := tm.AllocateTime(clock, pos); got != 400*time.Millisecond {
		t.Errorf("Expected 400ms from black's clock, got %v", got)
	}
}

func TestAllocateTimeBounds(t *testing.T) {
	tm := NewTimeManager()
	pos := board.NewPosition()

	// Never more than 10% of a long clock
	clock := ClockState{WhiteTime: 10 * time.Second, MovesToGo: 1}
	if got := tm.AllocateTime(clock, pos); got > time.Second {
		t.Errorf("Expected at most 10%% of 10s, got %v", got)
	}
	// Emergency: at most 5% under 10s
	clock = ClockState{WhiteTime: 4 * time.Second, MovesToGo: 1}
	if got := tm.AllocateTime(clock, pos); got > 200*time.Millisecond {
		t.Errorf("Expected at most 5%% of 4s, got %v", got)
	}
	// Floor of 100ms while there is room for it
	clock = ClockState{WhiteTime: 3 * time.Second, MovesToGo: 100}
	if got := tm.AllocateTime(clock, pos); got != 100*time.Millisecond {
		t.Errorf("Expected the 100ms floor, got %v", got)
	}
	// Nearly flagged: a sliver of what is left
	clock = ClockState{WhiteTime: 500 * time.Millisecond}
	if got := tm.AllocateTime(clock, pos); got <= 0 || got >= 500*time.Millisecond {
		t.Errorf("Expected a small positive budget, got %v", got)
	}
}

func TestComplexityFactor(t *testing.T) {
	// Start: 20 moves, 32 pieces
	if got := complexityFactor(board.NewPosition()); got != 0.8 {
		t.Errorf("start position: expected 0.8, got %f", got)
	}
	// Bare kings: fewer than 10 moves, fewer than 10 pieces
	if got := complexityFactor(mustFEN(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1")); math.Abs(got-0.84) > epsilon {
		t.Errorf("bare kings: expected 0.84, got %f", got)
	}
}

func TestShouldStop(t *testing.T) {
	tm, now := newFakeTimeManager()
	tm.Start(time.Second)

	*now = now.Add(40 * time.Millisecond)
	if tm.ShouldStop(3, 0) {
		t.Errorf("Never stop before the minimum think time")
	}
	*now = now.Add(760 * time.Millisecond) // 800ms
	if tm.ShouldStop(0, 0) {
		t.Errorf("Should not stop mid first iteration at 80%%")
	}
	if !tm.ShouldStop(1, 0) {
		t.Errorf("Should not start a new iteration past 80%%")
	}
	*now = now.Add(200 * time.Millisecond) // 1s
	if !tm.ShouldStop(0, 0) {
		t.Errorf("Should stop once the allocation is used")
	}
	if tm.TimeRemaining() != 0 {
		t.Errorf("Expected no time remaining, got %v", tm.TimeRemaining())
	}

	tm.Start(InfiniteTime)
	*now = now.Add(time.Hour)
	if tm.ShouldStop(10, 1<<40) {
		t.Errorf("Infinite searches never stop on time")
	}
	if tm.TimeRemaining() != InfiniteTime {
		t.Errorf("Expected infinite time remaining")
	}
}

func TestShouldStopTinyBudget(t *testing.T) {
	tm, now := newFakeTimeManager()
	tm.Start(10 * time.Millisecond)
	*now = now.Add(30 * time.Millisecond)
	if tm.ShouldStop(0, 0) {
		t.Errorf("Never stop before the minimum think time, even past a tiny budget")
	}
	*now = now.Add(20 * time.Millisecond)
	if !tm.ShouldStop(0, 0) {
		t.Errorf("Expected a stop at 50ms")
	}
}
