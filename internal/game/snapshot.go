package game

import (
	"github.com/vovakirdan/tui-outpost/internal/economy"
	"github.com/vovakirdan/tui-outpost/internal/world"
)

// ResourceView is a named ledger entry in a snapshot.
type ResourceView struct {
	Name string
	economy.Resource
}

// Snapshot is a read-only copy of the game state for renderers and tests.
// It shares no memory with the Game.
type Snapshot struct {
	Frame uint64
	Ticks uint64

	Screen   ScreenState
	Location world.Location
	Staged   bool

	Resources []ResourceView
	Scouted   []world.Location

	PlayerX int
	PlayerY int
	TileMap *world.TileMap // nil at base

	ViewportW float64
	ViewportH float64

	SurveyCost    float64
	CanSurvey     bool
	ExitRequested bool
}

// Snapshot captures the current game state.
func (g *Game) Snapshot() Snapshot {
	resources := make([]ResourceView, 0, g.ledger.Len())
	for _, name := range g.ledger.Names() {
		resources = append(resources, ResourceView{Name: name, Resource: g.peek(name)})
	}

	scouted := make([]world.Location, len(g.scouted))
	copy(scouted, g.scouted)

	var tilemap *world.TileMap
	if g.session.TileMap != nil {
		m := g.session.TileMap.Clone()
		tilemap = &m
	}

	return Snapshot{
		Frame:         g.frames,
		Ticks:         g.ticks,
		Screen:        g.screen,
		Location:      g.location,
		Staged:        g.staged != nil,
		Resources:     resources,
		Scouted:       scouted,
		PlayerX:       g.session.PlayerX,
		PlayerY:       g.session.PlayerY,
		TileMap:       tilemap,
		ViewportW:     g.viewportW,
		ViewportH:     g.viewportH,
		SurveyCost:    g.cfg.Economy.SurveyCost,
		CanSurvey:     g.ledger.Has(economy.Energy, g.cfg.Economy.SurveyCost),
		ExitRequested: g.exitRequested,
	}
}

// Resource returns the named resource from the snapshot.
func (s Snapshot) Resource(name string) (economy.Resource, bool) {
	for _, r := range s.Resources {
		if r.Name == name {
			return r.Resource, true
		}
	}
	return economy.Resource{}, false
}
