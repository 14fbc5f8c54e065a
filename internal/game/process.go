package game

import (
	"fmt"
	"math"

	"github.com/vovakirdan/tui-outpost/internal/economy"
	"github.com/vovakirdan/tui-outpost/internal/world"
)

// ProcessEvents drains q in arrival order and applies each event.
// Screen changes are only staged here; Reconcile commits them.
// Returns the number of events consumed.
func (g *Game) ProcessEvents(q *EventQueue) int {
	n := 0
	for {
		ev, ok := q.Pop()
		if !ok {
			return n
		}
		g.apply(ev)
		n++
	}
}

// apply handles a single event.
func (g *Game) apply(ev Event) {
	switch ev := ev.(type) {
	case RequestEmbark:
		g.requestEmbark(ev.Location)
	case KeyAction:
		g.keyAction(ev.Direction)
	case RequestReturnToBase:
		g.stage(transition{to: ScreenIdle})
	case Quit:
		g.exitRequested = true
	case ResizeViewport:
		g.resize(ev.Width, ev.Height)
	case SurveySurroundings:
		g.survey()
	case BuyCircle:
		g.buyCircle(ev.Amount)
	case nil:
		g.logger.Warn("dropping nil event")
	default:
		g.logger.Warn("dropping unknown event", "type", fmt.Sprintf("%T", ev))
	}
}

// requestEmbark stages travel to loc. Only valid embark sites are staged.
func (g *Game) requestEmbark(loc world.Location) {
	params, ok := loc.Embark()
	if !ok {
		g.logger.Warn("dropping embark request for non-embark location", "location", loc)
		return
	}
	if !params.Valid() {
		g.logger.Warn("dropping embark request with degenerate dimensions", "location", loc)
		return
	}
	g.stage(transition{to: ScreenEmbark, location: loc})
}

// keyAction sets the pending step for one axis. Steps requested at base
// are consumed as no-ops on the next reconciliation.
func (g *Game) keyAction(d Direction) {
	dx, dy, ok := d.Delta()
	if !ok {
		g.logger.Warn("dropping unhandled direction", "direction", d)
		return
	}
	if dx != 0 {
		g.session.PendingDX = dx
	}
	if dy != 0 {
		g.session.PendingDY = dy
	}
}

func (g *Game) resize(w, h float64) {
	if !(w > 0 && h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		g.logger.Warn("dropping invalid viewport size", "width", w, "height", h)
		return
	}
	g.viewportW, g.viewportH = w, h
}

// survey spends energy to scout a new site. Without enough energy it does
// nothing.
func (g *Game) survey() {
	cost := g.cfg.Economy.SurveyCost
	if !g.ledger.Has(economy.Energy, cost) {
		g.logger.Debug("not enough energy to survey", "cost", cost, "energy", g.peek(economy.Energy).Cur)
		return
	}

	g.accumulate(economy.Energy, -cost)
	loc := g.generateLocation()
	g.scouted = append(g.scouted, loc)

	g.logger.Info("surveying surroundings", "found", loc, "scouted", len(g.scouted))
}

// generateLocation produces the site found by a survey.
// All sites currently share the configured default parameters.
func (g *Game) generateLocation() world.Location {
	return world.EmbarkAt(g.defaultParams())
}

func (g *Game) buyCircle(amount float64) {
	if !(amount > 0) || math.IsInf(amount, 0) {
		g.logger.Warn("dropping invalid circle purchase", "amount", amount)
		return
	}
	g.accumulate(economy.Circles, amount)
}
