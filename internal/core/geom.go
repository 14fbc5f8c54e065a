// Package core provides small, dependency-free primitives shared by the
// simulation and the terminal layer: clamping, rectangles and a colored
// screen buffer.
package core

// Rect is an axis-aligned rectangle in tile or cell coordinates.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate just past the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate just past the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Contains returns true if the point (x, y) is inside this rectangle.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Center returns the center point of the rectangle.
func (r Rect) Center() (int, int) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Camera returns a view of size viewW x viewH over a world of size
// worldW x worldH, centered on (fx, fy) and shifted so it stays inside the
// world. A world smaller than the view is anchored at the origin.
func Camera(fx, fy, viewW, viewH, worldW, worldH int) Rect {
	x := Clamp(fx-viewW/2, 0, max(0, worldW-viewW))
	y := Clamp(fy-viewH/2, 0, max(0, worldH-viewH))
	return Rect{X: x, Y: y, W: viewW, H: viewH}
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ClampF restricts a float64 value to be within [lo, hi].
func ClampF(val, lo, hi float64) float64 {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}
