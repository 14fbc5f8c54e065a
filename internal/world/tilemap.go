package world

// Tile is the kind of a single map cell.
type Tile uint8

const (
	TileEmpty Tile = iota
	TileWall
)

// String returns a human-readable name for the tile.
func (t Tile) String() string {
	switch t {
	case TileEmpty:
		return "Empty"
	case TileWall:
		return "Wall"
	default:
		return "Unknown"
	}
}

// Passable reports whether the player may stand on the tile.
func (t Tile) Passable() bool {
	return t == TileEmpty
}

// Glyph returns the character used to draw the tile.
func (t Tile) Glyph() rune {
	switch t {
	case TileWall:
		return '#'
	case TileEmpty:
		return '.'
	default:
		return '?'
	}
}

// TileMap is a rectangular grid of tiles.
// Tiles are stored in row-major order: index = y*Cols() + x.
type TileMap struct {
	Width  float64
	Height float64
	Tiles  []Tile // length Cols()*Rows()
}

// Cols returns the number of tile columns.
func (m TileMap) Cols() int {
	return int(m.Width)
}

// Rows returns the number of tile rows.
func (m TileMap) Rows() int {
	return int(m.Height)
}

// InBounds returns true if (x, y) addresses a tile of the map.
func (m TileMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.Cols() && y >= 0 && y < m.Rows()
}

// Index converts a coordinate to a flat index. The second result is false
// for coordinates outside the map.
func (m TileMap) Index(x, y int) (int, bool) {
	if !m.InBounds(x, y) {
		return 0, false
	}
	i := y*m.Cols() + x
	if i >= len(m.Tiles) {
		return 0, false
	}
	return i, true
}

// At returns the tile at (x, y). Out-of-bounds coordinates report false.
func (m TileMap) At(x, y int) (Tile, bool) {
	i, ok := m.Index(x, y)
	if !ok {
		return TileWall, false
	}
	return m.Tiles[i], true
}

// Clone returns a deep copy of the map.
func (m TileMap) Clone() TileMap {
	tiles := make([]Tile, len(m.Tiles))
	copy(tiles, m.Tiles)
	return TileMap{
		Width:  m.Width,
		Height: m.Height,
		Tiles:  tiles,
	}
}

// Equal reports whether two maps have the same dimensions and tiles.
func (m TileMap) Equal(other TileMap) bool {
	if m.Width != other.Width || m.Height != other.Height || len(m.Tiles) != len(other.Tiles) {
		return false
	}
	for i := range m.Tiles {
		if m.Tiles[i] != other.Tiles[i] {
			return false
		}
	}
	return true
}

// CountByTile returns how many cells hold each tile kind.
func (m TileMap) CountByTile() map[Tile]int {
	counts := make(map[Tile]int)
	for _, t := range m.Tiles {
		counts[t]++
	}
	return counts
}

// Lines renders the map as glyphs, one string per row.
func (m TileMap) Lines() []string {
	lines := make([]string, 0, m.Rows())
	for y := 0; y < m.Rows(); y++ {
		row := make([]rune, m.Cols())
		for x := range row {
			t, _ := m.At(x, y)
			row[x] = t.Glyph()
		}
		lines = append(lines, string(row))
	}
	return lines
}
