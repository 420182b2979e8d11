package generation

import (
	"bsp-dungeon/geometry"
)

// Corridor is a straight passage of fixed width joining the rooms of two
// sibling subtrees
type Corridor struct {
	Bounds          geometry.Rect
	Left, Right     RoomID // rooms of the first and second child
	SplitHorizontal bool   // orientation of the node that produced it
	Width           int
	Node            CellID
}

// Vertical reports whether the corridor runs top to bottom
func (c Corridor) Vertical() bool {
	return c.SplitHorizontal
}

// Length returns the extent along the major axis
func (c Corridor) Length() int {
	if c.SplitHorizontal {
		return c.Bounds.Height()
	}
	return c.Bounds.Width()
}

// synthesizeCorridors connects the children of every internal node,
// highest node first
func (b *builder) synthesizeCorridors(id CellID) error {
	cell := b.tree.Cell(id)
	if cell.IsLeaf() {
		return nil
	}

	left, right := cell.Children[0], cell.Children[1]
	for _, child := range cell.Children {
		// A child with rooms below it must have been resolved by propagation
		if b.tree.Cell(child).Room == NoRoom && b.tree.subtreeHasCarvedRoom(child) {
			return newError(ErrUnresolvedCorridorEndpoint, b.tree.Cell(child).Bounds,
				"child %d of node %d has rooms below it but no representative", child, id)
		}
	}

	leftRoom, rightRoom := b.tree.Cell(left).Room, b.tree.Cell(right).Room
	if leftRoom != NoRoom && rightRoom != NoRoom {
		b.corridors = append(b.corridors, buildCorridor(id,
			b.rooms[leftRoom], b.rooms[rightRoom], cell.SplitHorizontal, b.cfg.CorridorWidth))
	}

	if err := b.synthesizeCorridors(left); err != nil {
		return err
	}
	return b.synthesizeCorridors(right)
}

// buildCorridor spans the gap between two rooms along the split axis. On
// the cross axis it starts at the middle of the band the rooms share, or
// the middle of their combined extent when they do not overlap, and extends
// width units from there.
func buildCorridor(node CellID, left, right Room, splitHorizontal bool, width int) Corridor {
	a, b := left.Bounds, right.Bounds

	var bounds geometry.Rect
	if splitHorizontal {
		// Top/bottom rooms: vertical passage
		x := crossAxisStart(a.X0, a.X1, b.X0, b.X1)
		bounds = geometry.Rect{X0: x, Y0: a.Y1, X1: x + width, Y1: b.Y0}
	} else {
		// Left/right rooms: horizontal passage
		y := crossAxisStart(a.Y0, a.Y1, b.Y0, b.Y1)
		bounds = geometry.Rect{X0: a.X1, Y0: y, X1: b.X0, Y1: y + width}
	}

	return Corridor{
		Bounds:          bounds,
		Left:            left.ID,
		Right:           right.ID,
		SplitHorizontal: splitHorizontal,
		Width:           width,
		Node:            node,
	}
}

func crossAxisStart(a0, a1, b0, b1 int) int {
	lo, hi := max(a0, b0), min(a1, b1)
	if lo < hi {
		return (lo + hi) / 2
	}
	return (min(a0, b0) + max(a1, b1)) / 2
}
