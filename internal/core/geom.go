// Package core provides fundamental types and utilities for the runner arcade.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

import "math"

// Box is an axis-aligned bounding box in scene units.
// Scene units are whatever the host chooses (pixels for the window host,
// scaled cells for the terminal host).
type Box struct {
	X, Y float64 // Top-left corner position
	W, H float64 // Width and height
}

// NewBox creates a new box with the given position and dimensions.
func NewBox(x, y, w, h float64) Box {
	return Box{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (b Box) Right() float64 {
	return b.X + b.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (b Box) Bottom() float64 {
	return b.Y + b.H
}

// Intersects reports whether two boxes overlap.
// Inequalities are strict: boxes that only touch along an edge do not overlap.
func (b Box) Intersects(other Box) bool {
	return b.X < other.Right() &&
		b.Right() > other.X &&
		b.Y < other.Bottom() &&
		b.Bottom() > other.Y
}

// Cells converts the box to screen cells, given the number of scene units
// covered by one column and one row. Partially covered cells are included.
func (b Box) Cells(unitsPerCol, unitsPerRow float64) Rect {
	x0 := int(math.Floor(b.X / unitsPerCol))
	y0 := int(math.Floor(b.Y / unitsPerRow))
	x1 := int(math.Ceil(b.Right() / unitsPerCol))
	y1 := int(math.Ceil(b.Bottom() / unitsPerRow))
	return NewRect(x0, y0, Max(x1-x0, 1), Max(y1-y0, 1))
}

// Rect represents an integer rectangle in screen cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
