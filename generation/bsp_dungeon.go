package generation

import (
	"bsp-dungeon/geometry"
)

// CellID indexes a cell in a Tree
type CellID int

// NoCell marks a missing parent or child
const NoCell CellID = -1

// RoomID indexes a room in DungeonLayout.Rooms
type RoomID int

// NoRoom marks a cell without an assigned room
const NoRoom RoomID = -1

// PartitionCell is a node of the binary space partitioning tree
type PartitionCell struct {
	Bounds geometry.Rect

	// Parent is a non-owning back reference; NoCell for the root
	Parent CellID

	// Children is empty for a leaf, otherwise exactly two cells. For a
	// horizontal split the first child is the top half, for a vertical
	// split it is the left half.
	Children []CellID

	// SplitHorizontal records the orientation used to divide this cell
	SplitHorizontal bool

	// Room is the carved room for a leaf or the propagated representative
	// for an internal node
	Room RoomID
}

// IsLeaf reports whether the cell was never split
func (c *PartitionCell) IsLeaf() bool {
	return len(c.Children) == 0
}

// Tree stores every cell of a partition in a flat arena. Cells are appended
// in pre-order (parent, left subtree, right subtree), so index 0 is the root.
type Tree struct {
	cells []PartitionCell
}

func newTree(bounds geometry.Rect) *Tree {
	t := &Tree{}
	t.add(bounds, NoCell)
	return t
}

func (t *Tree) add(bounds geometry.Rect, parent CellID) CellID {
	t.cells = append(t.cells, PartitionCell{
		Bounds: bounds,
		Parent: parent,
		Room:   NoRoom,
	})
	return CellID(len(t.cells) - 1)
}

// Root returns the cell covering the whole dungeon
func (t *Tree) Root() CellID {
	return 0
}

// Len returns the number of cells
func (t *Tree) Len() int {
	return len(t.cells)
}

// Cell returns the cell with the given id. The pointer stays valid for the
// lifetime of the tree.
func (t *Tree) Cell(id CellID) *PartitionCell {
	return &t.cells[id]
}

// Sibling returns the other child of id's parent, or NoCell for the root
func (t *Tree) Sibling(id CellID) CellID {
	parent := t.cells[id].Parent
	if parent == NoCell {
		return NoCell
	}
	children := t.cells[parent].Children
	if children[0] == id {
		return children[1]
	}
	return children[0]
}

// Walk visits the subtree rooted at id in pre-order, left child first.
// Returning false from fn skips the visited cell's children.
func (t *Tree) Walk(id CellID, fn func(id CellID, cell *PartitionCell) bool) {
	cell := &t.cells[id]
	if !fn(id, cell) {
		return
	}
	for _, child := range cell.Children {
		t.Walk(child, fn)
	}
}

// Leaves returns the leaf cells in left-to-right order
func (t *Tree) Leaves() []CellID {
	var leaves []CellID
	t.Walk(t.Root(), func(id CellID, cell *PartitionCell) bool {
		if cell.IsLeaf() {
			leaves = append(leaves, id)
		}
		return true
	})
	return leaves
}

// Depth returns the number of levels below the root
func (t *Tree) Depth() int {
	var depth func(id CellID) int
	depth = func(id CellID) int {
		cell := &t.cells[id]
		if cell.IsLeaf() {
			return 0
		}
		return 1 + max(depth(cell.Children[0]), depth(cell.Children[1]))
	}
	return depth(t.Root())
}

// subtreeHasCarvedRoom reports whether any leaf below id holds a room
func (t *Tree) subtreeHasCarvedRoom(id CellID) bool {
	found := false
	t.Walk(id, func(_ CellID, cell *PartitionCell) bool {
		if cell.IsLeaf() && cell.Room != NoRoom {
			found = true
		}
		return !found
	})
	return found
}

// partition recursively splits a cell until both of its dimensions are
// small enough. Random draws happen in a fixed order: direction, then
// position, then the whole left subtree, then the right subtree.
func (b *builder) partition(id CellID) {
	bounds := b.tree.cells[id].Bounds
	width, height := bounds.Width(), bounds.Height()
	splitWidth, splitHeight := b.cfg.minSplitWidth(), b.cfg.minSplitHeight()

	// Both dimensions must be small for the cell to become a leaf
	if width <= splitWidth && height <= splitHeight {
		return
	}

	divideHorizontal := b.src.Float64() > 0.5

	// A cell too narrow to split vertically is always split horizontally,
	// whatever the draw said
	horizontal := (divideHorizontal && height > splitHeight) || width < splitWidth

	var first, second geometry.Rect
	if horizontal {
		// Top/bottom pair
		y := rangeInt(b.src, b.cfg.MinCellHeight, height-b.cfg.MinCellHeight)
		first = geometry.Rect{X0: bounds.X0, Y0: bounds.Y0, X1: bounds.X1, Y1: bounds.Y0 + y}
		second = geometry.Rect{X0: bounds.X0, Y0: bounds.Y0 + y, X1: bounds.X1, Y1: bounds.Y1}
	} else {
		// Left/right pair
		x := rangeInt(b.src, b.cfg.MinCellWidth, width-b.cfg.MinCellWidth)
		first = geometry.Rect{X0: bounds.X0, Y0: bounds.Y0, X1: bounds.X0 + x, Y1: bounds.Y1}
		second = geometry.Rect{X0: bounds.X0 + x, Y0: bounds.Y0, X1: bounds.X1, Y1: bounds.Y1}
	}
	b.tree.cells[id].SplitHorizontal = horizontal

	left := b.tree.add(first, id)
	b.partition(left)
	right := b.tree.add(second, id)
	b.partition(right)

	b.tree.cells[id].Children = []CellID{left, right}
}
