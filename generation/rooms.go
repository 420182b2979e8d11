package generation

import (
	"go.uber.org/zap"

	"bsp-dungeon/geometry"
)

// Room is a rectangle carved inside a leaf cell. Rooms never change after
// carving.
type Room struct {
	ID     RoomID
	Bounds geometry.Rect
	Cell   CellID // owning leaf
}

// Center returns the center of the room
func (r Room) Center() geometry.Point {
	return r.Bounds.Center()
}

// carveRooms creates a room in every leaf, left subtree before right
func (b *builder) carveRooms(id CellID) error {
	cell := b.tree.Cell(id)
	if !cell.IsLeaf() {
		if err := b.carveRooms(cell.Children[0]); err != nil {
			return err
		}
		return b.carveRooms(cell.Children[1])
	}

	room, err := b.carveRoom(id)
	if err != nil {
		if b.cfg.DegenerateRooms == DegenerateAbort {
			return err
		}
		b.skipped = append(b.skipped, id)
		b.log.Debug("leaf too small for a room, skipping",
			zap.Int("cell", int(id)),
			zap.Stringer("bounds", cell.Bounds),
			zap.Error(err))
		return nil
	}

	cell.Room = room.ID
	b.rooms = append(b.rooms, room)
	return nil
}

// carveRoom picks a room inside the leaf. The top-left corner is jittered
// within offset of the inset corner and the bottom-right corner keeps the
// minimum size while staying inside the inset bounds.
func (b *builder) carveRoom(id CellID) (Room, error) {
	bounds := b.tree.Cell(id).Bounds
	offset := b.cfg.Offset

	leftBound := bounds.X0 + offset
	rightBound := bounds.X1 - offset
	upperBound := bounds.Y0 + offset
	lowerBound := bounds.Y1 - offset

	topLeft := geometry.Point{
		X: rangeInt(b.src, leftBound, leftBound+offset),
		Y: rangeInt(b.src, upperBound, upperBound+offset),
	}

	if topLeft.X+b.cfg.MinCellWidth > rightBound || topLeft.Y+b.cfg.MinCellHeight > lowerBound {
		return Room{}, newError(ErrDegenerateRoom, bounds,
			"carve bounds %dx%d cannot hold a %dx%d room from %v",
			rightBound-leftBound, lowerBound-upperBound,
			b.cfg.MinCellWidth, b.cfg.MinCellHeight, topLeft)
	}

	bottomRight := geometry.Point{
		X: rangeInt(b.src, topLeft.X+b.cfg.MinCellWidth, rightBound),
		Y: rangeInt(b.src, topLeft.Y+b.cfg.MinCellHeight, lowerBound),
	}

	return Room{
		ID:     RoomID(len(b.rooms)),
		Bounds: geometry.Rect{X0: topLeft.X, Y0: topLeft.Y, X1: bottomRight.X, Y1: bottomRight.Y},
		Cell:   id,
	}, nil
}
