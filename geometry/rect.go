package geometry

import "fmt"

// Point is an integer grid coordinate
type Point struct {
	X, Y int
}

// Rect is an axis-aligned rectangle given by its top-left (X0, Y0) and
// bottom-right (X1, Y1) corners. Y grows downward.
type Rect struct {
	X0, Y0, X1, Y1 int
}

// NewRect builds a rectangle from a top-left corner and a size
func NewRect(x, y, width, height int) Rect {
	return Rect{X0: x, Y0: y, X1: x + width, Y1: y + height}
}

func (r Rect) Width() int  { return r.X1 - r.X0 }
func (r Rect) Height() int { return r.Y1 - r.Y0 }
func (r Rect) Area() int   { return r.Width() * r.Height() }

// TopLeft returns the top-left corner
func (r Rect) TopLeft() Point { return Point{X: r.X0, Y: r.Y0} }

// BottomRight returns the bottom-right corner
func (r Rect) BottomRight() Point { return Point{X: r.X1, Y: r.Y1} }

// Center returns (x0+width/2, y0+height/2) using integer division
func (r Rect) Center() Point {
	return Point{X: r.X0 + r.Width()/2, Y: r.Y0 + r.Height()/2}
}

// Empty reports whether the rectangle has no area
func (r Rect) Empty() bool {
	return r.X1 <= r.X0 || r.Y1 <= r.Y0
}

// Valid reports whether both corners are ordered (x1>=x0, y1>=y0)
func (r Rect) Valid() bool {
	return r.X1 >= r.X0 && r.Y1 >= r.Y0
}

// Contains reports whether o lies entirely inside r (edges may touch)
func (r Rect) Contains(o Rect) bool {
	return o.X0 >= r.X0 && o.Y0 >= r.Y0 && o.X1 <= r.X1 && o.Y1 <= r.Y1
}

// ContainsPoint reports whether p lies inside r, edges included
func (r Rect) ContainsPoint(p Point) bool {
	return p.X >= r.X0 && p.X <= r.X1 && p.Y >= r.Y0 && p.Y <= r.Y1
}

// Overlaps reports whether the interiors of r and o intersect
func (r Rect) Overlaps(o Rect) bool {
	return r.X0 < o.X1 && o.X0 < r.X1 && r.Y0 < o.Y1 && o.Y0 < r.Y1
}

// Inset shrinks the rectangle by n on every side
func (r Rect) Inset(n int) Rect {
	return Rect{X0: r.X0 + n, Y0: r.Y0 + n, X1: r.X1 - n, Y1: r.Y1 - n}
}

// DistanceSq returns the squared euclidean distance between two points
func DistanceSq(a, b Point) int {
	dx, dy := a.X-b.X, a.Y-b.Y
	return dx*dx + dy*dy
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

func (r Rect) String() string {
	return fmt.Sprintf("TL: (%d,%d), BR: (%d,%d), Width: %d, Height: %d",
		r.X0, r.Y0, r.X1, r.Y1, r.Width(), r.Height())
}
