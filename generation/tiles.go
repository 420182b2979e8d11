package generation

import (
	"bsp-dungeon/components"
)

// Edge bits of an open-edge mask. A set bit means the neighbour on that
// side is floor, so no wall is drawn between the two tiles.
const (
	EdgeNorth = WallConnectTop
	EdgeEast  = WallConnectRight
	EdgeSouth = WallConnectBottom
	EdgeWest  = WallConnectLeft
)

// Rasterize draws every room and corridor of the layout onto a fresh tile
// map the size of the dungeon bounds. A region covers tiles [X0,X1)x[Y0,Y1);
// tiles already placed by an earlier region are left untouched.
func Rasterize(layout *DungeonLayout) *components.MapComponent {
	bounds := layout.Bounds
	mapComp := components.NewMapComponent(bounds.Width(), bounds.Height())

	for _, region := range layout.Regions() {
		r := region.Bounds
		for y := r.Y0; y < r.Y1; y++ {
			for x := r.X0; x < r.X1; x++ {
				mx, my := x-bounds.X0, y-bounds.Y0
				if !mapComp.InBounds(mx, my) || mapComp.Tiles[my][mx] == components.TileFloor {
					continue
				}
				mapComp.SetTile(mx, my, components.TileFloor)
			}
		}
	}

	return mapComp
}

// OpenEdges returns which sides of a walkable tile face another walkable
// tile. Walls remain only on the sides whose bit is clear.
func OpenEdges(mapComp *components.MapComponent, x, y int) int {
	if !mapComp.IsWalkable(x, y) {
		return 0
	}

	mask := 0
	if mapComp.IsWalkable(x, y-1) {
		mask |= EdgeNorth
	}
	if mapComp.IsWalkable(x+1, y) {
		mask |= EdgeEast
	}
	if mapComp.IsWalkable(x, y+1) {
		mask |= EdgeSouth
	}
	if mapComp.IsWalkable(x-1, y) {
		mask |= EdgeWest
	}
	return mask
}

// FloorCount returns the number of walkable tiles
func FloorCount(mapComp *components.MapComponent) int {
	n := 0
	for y := 0; y < mapComp.Height; y++ {
		for x := 0; x < mapComp.Width; x++ {
			if mapComp.IsWalkable(x, y) {
				n++
			}
		}
	}
	return n
}
