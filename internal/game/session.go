package game

import (
	"fmt"

	"github.com/vovakirdan/tui-outpost/internal/world"
)

// Step is a pending one-tile move on one axis: -1, +1, or 0 for none.
type Step int8

// Session is the per-visit state of an embark.
// TileMap is nil exactly while at base.
type Session struct {
	PlayerX   int
	PlayerY   int
	PendingDX Step
	PendingDY Step
	TileMap   *world.TileMap
}

// newSession returns an idle session with the player at the center of p.
func newSession(p world.EmbarkParams) Session {
	x, y := p.Center()
	return Session{PlayerX: x, PlayerY: y}
}

// MoveResult counts the axis steps applied or rejected in one pass.
type MoveResult struct {
	Moved   int
	Blocked int
}

// Add returns the sum of two results.
func (r MoveResult) Add(o MoveResult) MoveResult {
	return MoveResult{Moved: r.Moved + o.Moved, Blocked: r.Blocked + o.Blocked}
}

// applyMovement resolves pending steps against the tilemap. The x axis is
// evaluated first and the y axis from the resulting column, so the player
// never ends a pass on a wall. Pending steps are always cleared.
func (s *Session) applyMovement() MoveResult {
	var res MoveResult
	defer s.clearPending()

	if s.PendingDX == 0 && s.PendingDY == 0 {
		return res
	}
	s.mustBeOnMap()

	if s.PendingDX != 0 {
		if s.tryMove(s.PlayerX+int(s.PendingDX), s.PlayerY) {
			res.Moved++
		} else {
			res.Blocked++
		}
	}
	if s.PendingDY != 0 {
		if s.tryMove(s.PlayerX, s.PlayerY+int(s.PendingDY)) {
			res.Moved++
		} else {
			res.Blocked++
		}
	}
	return res
}

// tryMove commits (x, y) when it is a passable tile of the map.
func (s *Session) tryMove(x, y int) bool {
	tile, ok := s.TileMap.At(x, y)
	if !ok || !tile.Passable() {
		return false
	}
	s.PlayerX, s.PlayerY = x, y
	return true
}

func (s *Session) clearPending() {
	s.PendingDX, s.PendingDY = 0, 0
}

// mustBeOnMap panics if the session has no map or the player is off it.
func (s *Session) mustBeOnMap() {
	if s.TileMap == nil {
		panic("game: movement without a tilemap")
	}
	if !s.TileMap.InBounds(s.PlayerX, s.PlayerY) {
		panic(fmt.Sprintf("game: player (%d, %d) outside %dx%d tilemap",
			s.PlayerX, s.PlayerY, s.TileMap.Cols(), s.TileMap.Rows()))
	}
}
