package generation

import (
	"bsp-dungeon/components"
)

// Wall connection constants used for box drawing walls
const (
	WallConnectTop    = 1
	WallConnectRight  = 2
	WallConnectBottom = 4
	WallConnectLeft   = 8
)

// Box drawing wall tile lookup table
var WallTileLookup = map[int]int{
	0:  components.TileWall,            // No connections (isolated wall)
	1:  components.TileWallVertical,    // Top only
	2:  components.TileWallHorizontal,  // Right only
	3:  components.TileWallBottomLeft,  // Top and right └
	4:  components.TileWallVertical,    // Bottom only
	5:  components.TileWallVertical,    // Top and bottom │
	6:  components.TileWallTopLeft,     // Right and bottom ┌
	7:  components.TileWallTeeLeft,     // Top, right, bottom ├
	8:  components.TileWallHorizontal,  // Left only
	9:  components.TileWallBottomRight, // Top and left ┘
	10: components.TileWallHorizontal,  // Left and right ─
	11: components.TileWallTeeBottom,   // Top, left, right ┴
	12: components.TileWallTopRight,    // Left and bottom ┐
	13: components.TileWallTeeRight,    // Top, left, bottom ┤
	14: components.TileWallTeeTop,      // Right, bottom, left ┬
	15: components.TileWallCross,       // All four neighbors ┼
}

// ApplyBoxDrawingWalls turns every wall that borders a walkable tile into
// the box drawing piece matching its wall neighbours
func ApplyBoxDrawingWalls(mapComp *components.MapComponent) {
	// First pass: identify perimeter walls so replacements don't change
	// the masks of later tiles
	perimeterWalls := make([][]bool, mapComp.Height)
	for y := 0; y < mapComp.Height; y++ {
		perimeterWalls[y] = make([]bool, mapComp.Width)
		for x := 0; x < mapComp.Width; x++ {
			if mapComp.Tiles[y][x] == components.TileWall && HasAdjacentFloor(mapComp, x, y) {
				perimeterWalls[y][x] = true
			}
		}
	}

	for y := 0; y < mapComp.Height; y++ {
		for x := 0; x < mapComp.Width; x++ {
			if perimeterWalls[y][x] {
				mapComp.Tiles[y][x] = WallTileLookup[CalculateWallMask(mapComp, x, y)]
			}
		}
	}
}

// HasAdjacentFloor checks if a position has at least one adjacent non-wall tile
func HasAdjacentFloor(mapComp *components.MapComponent, x, y int) bool {
	return (y > 0 && !IsWallOrDoor(mapComp, x, y-1)) ||
		(x < mapComp.Width-1 && !IsWallOrDoor(mapComp, x+1, y)) ||
		(y < mapComp.Height-1 && !IsWallOrDoor(mapComp, x, y+1)) ||
		(x > 0 && !IsWallOrDoor(mapComp, x-1, y))
}

// CalculateWallMask calculates the bitmask value for a wall tile
// based on which adjacent tiles are walls
func CalculateWallMask(mapComp *components.MapComponent, x, y int) int {
	mask := 0
	if y > 0 && IsWallOrDoor(mapComp, x, y-1) {
		mask |= WallConnectTop
	}
	if x < mapComp.Width-1 && IsWallOrDoor(mapComp, x+1, y) {
		mask |= WallConnectRight
	}
	if y < mapComp.Height-1 && IsWallOrDoor(mapComp, x, y+1) {
		mask |= WallConnectBottom
	}
	if x > 0 && IsWallOrDoor(mapComp, x-1, y) {
		mask |= WallConnectLeft
	}
	return mask
}

// IsWallOrDoor checks if a tile is any type of wall or a door
func IsWallOrDoor(mapComp *components.MapComponent, x, y int) bool {
	if !mapComp.InBounds(x, y) {
		return true
	}
	tileType := mapComp.Tiles[y][x]
	return components.IsAnyWallType(tileType) || tileType == components.TileDoor || tileType == components.TileBreakable
}
