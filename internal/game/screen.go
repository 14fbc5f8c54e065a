package game

import (
	"fmt"

	"github.com/vovakirdan/tui-outpost/internal/world"
)

// ScreenState is the top-level mode of the game.
type ScreenState int

const (
	ScreenIdle ScreenState = iota
	ScreenEmbark
)

// String returns a human-readable name for the screen state.
func (s ScreenState) String() string {
	switch s {
	case ScreenIdle:
		return "Idle"
	case ScreenEmbark:
		return "Embark"
	default:
		return "Unknown"
	}
}

// transition is a requested screen change, held until Reconcile.
type transition struct {
	to       ScreenState
	location world.Location // set when to == ScreenEmbark
}

// Transition describes a committed screen change.
type Transition struct {
	From     ScreenState
	To       ScreenState
	Location world.Location // location after the commit
}

// Leaving reports whether the transition ended an embark.
func (t Transition) Leaving() bool {
	return t.From == ScreenEmbark
}

// Entering reports whether the transition started an embark.
func (t Transition) Entering() bool {
	return t.To == ScreenEmbark
}

// stage records a requested transition. A newer request replaces an
// uncommitted older one.
func (g *Game) stage(t transition) {
	if g.staged != nil {
		g.logger.Debug("replacing staged transition", "old", g.staged.to, "new", t.to)
	}
	g.staged = &t
}

// Staged reports the screen state waiting to be committed, if any.
func (g *Game) Staged() (ScreenState, bool) {
	if g.staged == nil {
		return 0, false
	}
	return g.staged.to, true
}

// Reconcile commits the staged transition, if any, and returns it.
// It is the only place the screen state and session change together.
func (g *Game) Reconcile() *Transition {
	if g.staged == nil {
		return nil
	}
	t := *g.staged
	g.staged = nil

	from := g.screen
	switch t.to {
	case ScreenEmbark:
		g.commitEmbark(t.location)
	case ScreenIdle:
		g.commitIdle()
	default:
		panic(fmt.Sprintf("game: unknown staged screen %v", t.to))
	}

	return &Transition{From: from, To: g.screen, Location: g.location}
}

// commitEmbark travels to loc and generates a fresh map, even when loc is
// the site already being visited.
func (g *Game) commitEmbark(loc world.Location) {
	params, ok := loc.Embark()
	if !ok {
		panic(fmt.Sprintf("game: embark committed with non-embark location %v", loc))
	}
	tilemap, err := world.Generate(params)
	if err != nil {
		panic(fmt.Sprintf("game: embark committed with invalid location: %v", err))
	}

	g.logger.Info("beginning embark", "location", loc)

	g.location = loc
	g.session = newSession(params)
	g.session.TileMap = &tilemap
	g.screen = ScreenEmbark
}

// commitIdle returns to base and discards the embark session.
func (g *Game) commitIdle() {
	g.logger.Info("returning to base", "from", g.location)

	g.location = world.AtBase()
	g.session = newSession(g.defaultParams())
	g.screen = ScreenIdle
}

// checkInvariants panics if the screen state and session disagree.
func (g *Game) checkInvariants() {
	switch g.screen {
	case ScreenEmbark:
		if g.location.IsBase() {
			panic("game: embark screen while at base")
		}
		if g.session.TileMap == nil {
			panic("game: embark screen without a tilemap")
		}
		g.session.mustBeOnMap()
	case ScreenIdle:
		if !g.location.IsBase() {
			panic(fmt.Sprintf("game: idle screen at %v", g.location))
		}
		if g.session.TileMap != nil {
			panic("game: idle screen with a tilemap")
		}
	}
}
