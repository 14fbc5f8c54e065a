package game

import (
	"time"

	"github.com/vovakirdan/tui-outpost/internal/economy"
)

// FrameResult summarizes what one frame changed.
type FrameResult struct {
	Frame         uint64
	Events        int         // Events drained from the queue
	Transition    *Transition // Committed screen change, if any
	Moves         MoveResult
	Ticked        bool // Whether an economy step ran
	ExitRequested bool
}

// Frame runs one frame: drain q, commit the staged transition, resolve
// movement, then run the economy step if the tick interval has elapsed.
func (g *Game) Frame(now time.Time, q *EventQueue) FrameResult {
	g.frames++
	res := FrameResult{Frame: g.frames}

	res.Events = g.ProcessEvents(q)
	res.Transition = g.Reconcile()
	res.Moves = g.reconcileMovement()
	res.Ticked = g.checkTick(now)
	res.ExitRequested = g.exitRequested

	g.checkInvariants()
	return res
}

// reconcileMovement applies pending steps while embarked and discards
// them otherwise.
func (g *Game) reconcileMovement() MoveResult {
	if g.screen != ScreenEmbark {
		g.session.clearPending()
		return MoveResult{}
	}
	res := g.session.applyMovement()
	if res.Blocked > 0 {
		g.logger.Debug("move blocked", "x", g.session.PlayerX, "y", g.session.PlayerY)
	}
	return res
}

// checkTick runs the economy step when the scheduler says one is due.
func (g *Game) checkTick(now time.Time) bool {
	if !g.ticker.Check(now) {
		return false
	}
	g.economyStep()
	return true
}

// economyStep applies one tick of passive income. It only runs at base;
// embarked ticks have no economic effect.
func (g *Game) economyStep() {
	g.ticks++

	if !g.location.IsBase() {
		return
	}

	g.accumulate(economy.Energy, g.cfg.Economy.EnergyRegen)

	// Each circle produces one square per tick
	if circles := g.peek(economy.Circles).Cur; circles > 0 {
		g.accumulate(economy.Squares, circles)
	}
}
