package world

import (
	"errors"
	"fmt"
	"math/rand"
)

// ErrDegenerateDims is returned for sites narrower or shorter than two
// tiles, with non-finite dimensions, or larger than MaxTiles.
var ErrDegenerateDims = errors.New("world: embark dimensions out of range")

// Generate builds the tilemap for a site. It is a pure function of p: the
// same parameters always produce an identical map.
//
// Current policy is a single room: Wall on the four edges, Empty inside.
// Requires p.Valid().
func Generate(p EmbarkParams) (TileMap, error) {
	if !p.Valid() {
		return TileMap{}, fmt.Errorf("%w: got %gx%g", ErrDegenerateDims, p.Width, p.Height)
	}

	m := TileMap{
		Width:  p.Width,
		Height: p.Height,
		Tiles:  make([]Tile, p.Cols()*p.Rows()),
	}

	// All randomness must come from the site seed.
	rng := rand.New(rand.NewSource(p.Seed))
	buildRoom(&m, rng)

	return m, nil
}

// MustGenerate is like Generate but panics on invalid parameters.
func MustGenerate(p EmbarkParams) TileMap {
	m, err := Generate(p)
	if err != nil {
		panic(err)
	}
	return m
}

// buildRoom fills m with a bordered room. rng is unused by this layout.
func buildRoom(m *TileMap, _ *rand.Rand) {
	cols, rows := m.Cols(), m.Rows()
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			tile := TileEmpty
			if x == 0 || y == 0 || x == cols-1 || y == rows-1 {
				tile = TileWall
			}
			m.Tiles[y*cols+x] = tile
		}
	}
}
