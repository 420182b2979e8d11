package generation

import (
	"bsp-dungeon/geometry"
)

// PropagateRooms assigns a representative room to every internal node that
// does not have one yet, so corridor synthesis has two endpoints at each
// split. Nodes that already carry a room are left alone, which makes a second
// run a no-op.
func PropagateRooms(tree *Tree, rooms []Room, strategy PropagationStrategy) {
	switch strategy {
	case PropagateNearestToSibling:
		propagateNearest(tree, rooms, tree.Root())
	default:
		propagateLeftBiased(tree, tree.Root())
	}
}

// propagateLeftBiased resolves a node before its children, so when a node is
// resolved only leaf rooms are visible below it.
func propagateLeftBiased(tree *Tree, id CellID) {
	cell := tree.Cell(id)
	if cell.Room != NoRoom || cell.IsLeaf() {
		return
	}

	cell.Room = lowerRoom(tree, id)

	propagateLeftBiased(tree, cell.Children[0])
	propagateLeftBiased(tree, cell.Children[1])
}

// lowerRoom prefers a room sitting directly on a child and otherwise keeps
// descending through the left child. The right child is only searched when
// the left subtree holds no room at all (every leaf in it was skipped).
func lowerRoom(tree *Tree, id CellID) RoomID {
	cell := tree.Cell(id)
	if cell.Room != NoRoom {
		return cell.Room
	}
	if cell.IsLeaf() {
		return NoRoom
	}

	left, right := tree.Cell(cell.Children[0]), tree.Cell(cell.Children[1])
	if left.Room != NoRoom {
		return left.Room
	}
	if right.Room != NoRoom {
		return right.Room
	}

	if room := lowerRoom(tree, cell.Children[0]); room != NoRoom {
		return room
	}
	return lowerRoom(tree, cell.Children[1])
}

func propagateNearest(tree *Tree, rooms []Room, id CellID) {
	cell := tree.Cell(id)
	if cell.IsLeaf() {
		return
	}

	if cell.Room == NoRoom {
		anchor := siblingAnchor(tree, id)
		best, bestDist := NoRoom, 0
		tree.Walk(id, func(_ CellID, c *PartitionCell) bool {
			if !c.IsLeaf() || c.Room == NoRoom {
				return true
			}
			dist := geometry.DistanceSq(rooms[c.Room].Center(), anchor)
			if best == NoRoom || dist < bestDist {
				best, bestDist = c.Room, dist
			}
			return true
		})
		cell.Room = best
	}

	propagateNearest(tree, rooms, cell.Children[0])
	propagateNearest(tree, rooms, cell.Children[1])
}

// siblingAnchor returns the midpoint of the edge a cell shares with its
// sibling. The root has no sibling and uses its own center.
func siblingAnchor(tree *Tree, id CellID) geometry.Point {
	cell := tree.Cell(id)
	if cell.Parent == NoCell {
		return cell.Bounds.Center()
	}

	parent := tree.Cell(cell.Parent)
	first := parent.Children[0] == id
	b := cell.Bounds
	if parent.SplitHorizontal {
		y := b.Y0
		if first {
			y = b.Y1
		}
		return geometry.Point{X: b.X0 + b.Width()/2, Y: y}
	}
	x := b.X0
	if first {
		x = b.X1
	}
	return geometry.Point{X: x, Y: b.Y0 + b.Height()/2}
}
