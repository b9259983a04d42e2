// Time management: per-move budget from the clock and position complexity

package engine

import (
	"math"
	"time"

	"github.com/clanpj/pichu/board"
)

// Budget meaning "no time limit"
const InfiniteTime = time.Duration(math.MaxInt64)

const (
	MinAllocation       = 100 * time.Millisecond
	MinThinkTime        = 50 * time.Millisecond
	SafetyMargin        = time.Second
	EmergencyThreshold  = 10 * time.Second
	suddenDeathMoves    = 40
	incrementUsage      = 0.8
	maxRemainingShare   = 0.10
	emergencyShare      = 0.05
	hardMaxFactor       = 1.2
	newDepthCutoffShare = 0.8
)

type TimeManager struct {
	start     time.Time
	allocated time.Duration
	now       func() time.Time
}

func NewTimeManager() *TimeManager {
	return &TimeManager{allocated: InfiniteTime, now: time.Now}
}

// Complexity multiplier for the position, clamped to [0.3, 2.5]
func complexityFactor(pos *board.Position) float64 {
	factor := 1.0
	nMoves := len(pos.LegalMoves())
	if nMoves > 35 {
		factor *= 1.3
	} else if nMoves < 10 {
		factor *= 0.7
	}
	if pos.InCheck() {
		factor *= 1.4
	}
	nPieces := board.PopCount(pos.All())
	if nPieces > 20 {
		factor *= 0.8
	} else if nPieces < 10 {
		factor *= 1.2
	}
	return clamp(factor, 0.3, 2.5)
}

// AllocateTime returns the budget for the side to move.
// Fixed move time is returned as-is; fixed depth and infinite searches get InfiniteTime.
func (tm *TimeManager) AllocateTime(clock ClockState, pos *board.Position) time.Duration {
	if clock.MoveTime > 0 {
		return clock.MoveTime
	}
	if clock.Infinite || clock.Depth > 0 {
		return InfiniteTime
	}

	if clock.WhiteTime == 0 && clock.BlackTime == 0 && clock.WhiteInc == 0 && clock.BlackInc == 0 {
		// No clock at all
		return InfiniteTime
	}
	remaining, inc := clock.WhiteTime, clock.WhiteInc
	if pos.SideToMove() == board.Black {
		remaining, inc = clock.BlackTime, clock.BlackInc
	}

	movesToGo := suddenDeathMoves
	if clock.MovesToGo > 0 {
		movesToGo = clock.MovesToGo
	}
	base := float64(remaining)/float64(movesToGo) + incrementUsage*float64(inc)
	alloc := time.Duration(base * complexityFactor(pos))

	upper := min(time.Duration(float64(remaining)*maxRemainingShare), remaining-SafetyMargin)
	if remaining < EmergencyThreshold {
		upper = min(upper, time.Duration(float64(remaining)*emergencyShare))
	}
	if upper < MinAllocation {
		// Too little left for the usual floor: take a sliver of what remains
		return max(time.Duration(float64(remaining)*emergencyShare), time.Millisecond)
	}
	return clamp(alloc, MinAllocation, upper)
}

// Start the clock on a new budget
func (tm *TimeManager) Start(budget time.Duration) {
	tm.start = tm.now()
	tm.allocated = budget
}

func (tm *TimeManager) Elapsed() time.Duration { return tm.now().Sub(tm.start) }

func (tm *TimeManager) Allocated() time.Duration { return tm.allocated }

func (tm *TimeManager) TimeRemaining() time.Duration {
	if tm.allocated == InfiniteTime {
		return InfiniteTime
	}
	return max(tm.allocated-tm.Elapsed(), 0)
}

// ShouldStop reports whether the search should stop. completedDepth > 0 means at least one
// full iteration is done, so a new one is not started past 80% of the budget.
func (tm *TimeManager) ShouldStop(completedDepth int, nodes uint64) bool {
	if tm.allocated == InfiniteTime {
		return false
	}
	elapsed := tm.Elapsed()
	if elapsed < MinThinkTime {
		return false
	}
	hardMax := time.Duration(float64(tm.allocated) * hardMaxFactor)
	if elapsed >= tm.allocated || elapsed >= hardMax {
		return true
	}
	return completedDepth > 0 && elapsed >= time.Duration(float64(tm.allocated)*newDepthCutoffShare)
}
