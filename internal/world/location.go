// Package world describes explorable sites and generates their tilemaps.
// It has no dependency on the game loop or the terminal.
package world

import (
	"fmt"
	"math"
)

// Default embark dimensions, in tiles.
const (
	DefaultWidth  = 100.0
	DefaultHeight = 100.0
)

// MaxTiles bounds the number of tiles in one site.
const MaxTiles = 1 << 24

// EmbarkParams describes one explorable site. It is a plain value and is
// copied wherever it is needed; nothing mutates it after creation.
type EmbarkParams struct {
	Seed   int64
	Width  float64
	Height float64
}

// DefaultEmbarkParams returns the parameters used for freshly surveyed sites.
func DefaultEmbarkParams() EmbarkParams {
	return EmbarkParams{
		Seed:   0,
		Width:  DefaultWidth,
		Height: DefaultHeight,
	}
}

// Cols returns the width truncated to a whole number of tiles.
func (p EmbarkParams) Cols() int {
	return int(p.Width)
}

// Rows returns the height truncated to a whole number of tiles.
func (p EmbarkParams) Rows() int {
	return int(p.Height)
}

// Center returns the tile at the middle of the site, each coordinate
// truncated toward zero.
func (p EmbarkParams) Center() (int, int) {
	return int(p.Width / 2), int(p.Height / 2)
}

// Valid reports whether the generator accepts these parameters: both
// dimensions finite and at least 2, and at most MaxTiles tiles in total.
func (p EmbarkParams) Valid() bool {
	if !(p.Width >= 2 && p.Height >= 2) || math.IsInf(p.Width, 0) || math.IsInf(p.Height, 0) {
		return false
	}
	// Compare in float64; Cols()*Rows() may overflow before the check
	return math.Floor(p.Width)*math.Floor(p.Height) <= MaxTiles
}

func (p EmbarkParams) String() string {
	return fmt.Sprintf("seed=%d %gx%g", p.Seed, p.Width, p.Height)
}

// LocationKind distinguishes the home base from an embark site.
type LocationKind int

const (
	KindAtBase LocationKind = iota
	KindEmbark
)

// String returns a human-readable name for the kind.
func (k LocationKind) String() string {
	switch k {
	case KindAtBase:
		return "AtBase"
	case KindEmbark:
		return "Embark"
	default:
		return "Unknown"
	}
}

// Location is either the home base or an embark site. Build it with AtBase
// or EmbarkAt so that == compares locations structurally.
type Location struct {
	Kind   LocationKind
	Params EmbarkParams // zero for AtBase
}

// AtBase returns the home location.
func AtBase() Location {
	return Location{Kind: KindAtBase}
}

// EmbarkAt returns the embark location for the given parameters.
func EmbarkAt(p EmbarkParams) Location {
	return Location{Kind: KindEmbark, Params: p}
}

// IsBase reports whether l is the home location.
func (l Location) IsBase() bool {
	return l.Kind == KindAtBase
}

// Embark returns the site parameters and true for an embark location.
func (l Location) Embark() (EmbarkParams, bool) {
	if l.Kind != KindEmbark {
		return EmbarkParams{}, false
	}
	return l.Params, true
}

func (l Location) String() string {
	switch l.Kind {
	case KindAtBase:
		return "AtBase"
	case KindEmbark:
		return fmt.Sprintf("Embark(%s)", l.Params)
	default:
		return fmt.Sprintf("Location(%d)", int(l.Kind))
	}
}
