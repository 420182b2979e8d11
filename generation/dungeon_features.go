package generation

import (
	"bsp-dungeon/components"
	"bsp-dungeon/geometry"
)

// StampFeatures writes the population plan onto a rasterized map: stairs up
// in the spawn room, stairs down in the exit room and a door or breakable
// barrier at both ends of each blocked corridor. Only walkable tiles are
// overwritten.
func StampFeatures(mapComp *components.MapComponent, layout *DungeonLayout, plan *PopulationPlan) {
	origin := layout.Bounds.TopLeft()

	for _, rp := range plan.Rooms {
		switch rp.Role {
		case RoleSpawn:
			stamp(mapComp, origin, layout.Rooms[rp.Room].Center(), components.TileStairsUp)
		case RoleExit:
			stamp(mapComp, origin, layout.Rooms[rp.Room].Center(), components.TileStairsDown)
		}
	}

	for _, cp := range plan.Corridors {
		tile := components.TileDoor
		switch cp.Feature {
		case FeatureNone:
			continue
		case FeatureBreakable:
			tile = components.TileBreakable
		}
		for _, point := range cp.Points {
			stamp(mapComp, origin, point, tile)
		}
	}
}

func stamp(mapComp *components.MapComponent, origin, p geometry.Point, tile int) {
	x, y := p.X-origin.X, p.Y-origin.Y
	if mapComp.Tile(x, y) != components.TileFloor {
		return
	}
	mapComp.SetTile(x, y, tile)
}
