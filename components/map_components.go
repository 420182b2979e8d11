package components

import (
	"image/color"
	"strings"
)

// MapComponent stores a rasterized dungeon as a grid of tile types
type MapComponent struct {
	Width  int
	Height int
	Tiles  [][]int
}

// Tile types
const (
	TileFloor = iota
	TileWall
	TileDoor
	TileBreakable
	TileStairsDown
	TileStairsUp

	// Box drawing wall tiles
	TileWallHorizontal  // ─
	TileWallVertical    // │
	TileWallTopLeft     // ┌
	TileWallTopRight    // ┐
	TileWallBottomLeft  // └
	TileWallBottomRight // ┘
	TileWallTeeLeft     // ├
	TileWallTeeRight    // ┤
	TileWallTeeTop      // ┬
	TileWallTeeBottom   // ┴
	TileWallCross       // ┼
)

// TileDefinition describes the visual appearance of a tile type
type TileDefinition struct {
	Glyph rune
	FG    color.Color
}

// NewTileDefinition creates a tile definition using a character code
func NewTileDefinition(glyph rune, fg color.Color) TileDefinition {
	return TileDefinition{
		Glyph: glyph,
		FG:    fg,
	}
}

// TileMappingComponent maps tile types to their visual representation
type TileMappingComponent struct {
	Definitions map[int]TileDefinition
}

// NewTileMappingComponent creates a default tile mapping
func NewTileMappingComponent() *TileMappingComponent {
	mapping := &TileMappingComponent{
		Definitions: make(map[int]TileDefinition),
	}
	mapping.Definitions[TileFloor] = NewTileDefinition('.', color.RGBA{64, 64, 64, 255})
	mapping.Definitions[TileWall] = NewTileDefinition('#', color.RGBA{128, 128, 128, 255})
	mapping.Definitions[TileDoor] = NewTileDefinition('+', color.RGBA{139, 69, 19, 255}) // Brown
	mapping.Definitions[TileBreakable] = NewTileDefinition('%', color.RGBA{205, 133, 63, 255})
	mapping.Definitions[TileStairsDown] = NewTileDefinition('>', color.RGBA{255, 255, 255, 255})
	mapping.Definitions[TileStairsUp] = NewTileDefinition('<', color.RGBA{255, 255, 255, 255})

	wallColor := color.RGBA{160, 160, 160, 255}
	mapping.Definitions[TileWallHorizontal] = NewTileDefinition('─', wallColor)
	mapping.Definitions[TileWallVertical] = NewTileDefinition('│', wallColor)
	mapping.Definitions[TileWallTopLeft] = NewTileDefinition('┌', wallColor)
	mapping.Definitions[TileWallTopRight] = NewTileDefinition('┐', wallColor)
	mapping.Definitions[TileWallBottomLeft] = NewTileDefinition('└', wallColor)
	mapping.Definitions[TileWallBottomRight] = NewTileDefinition('┘', wallColor)
	mapping.Definitions[TileWallTeeLeft] = NewTileDefinition('├', wallColor)
	mapping.Definitions[TileWallTeeRight] = NewTileDefinition('┤', wallColor)
	mapping.Definitions[TileWallTeeTop] = NewTileDefinition('┬', wallColor)
	mapping.Definitions[TileWallTeeBottom] = NewTileDefinition('┴', wallColor)
	mapping.Definitions[TileWallCross] = NewTileDefinition('┼', wallColor)

	return mapping
}

// GetTileDefinition returns the visual definition for a given tile type
func (t *TileMappingComponent) GetTileDefinition(tileType int) TileDefinition {
	if def, exists := t.Definitions[tileType]; exists {
		return def
	}

	// Return a default if the tile type isn't defined
	return TileDefinition{
		Glyph: '?',
		FG:    color.RGBA{255, 0, 255, 255}, // Magenta for undefined tiles
	}
}

// NewMapComponent creates a new map with the given dimensions
func NewMapComponent(width, height int) *MapComponent {
	m := &MapComponent{
		Width:  width,
		Height: height,
		Tiles:  make([][]int, height),
	}

	// Start with walls everywhere
	for y := 0; y < height; y++ {
		m.Tiles[y] = make([]int, width)
		for x := 0; x < width; x++ {
			m.Tiles[y][x] = TileWall
		}
	}

	return m
}

// InBounds reports whether (x, y) is on the map
func (m *MapComponent) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// Tile returns the tile at (x, y); out of bounds reads as a wall
func (m *MapComponent) Tile(x, y int) int {
	if !m.InBounds(x, y) {
		return TileWall
	}
	return m.Tiles[y][x]
}

// IsWall returns true if the tile at (x, y) is a wall
func (m *MapComponent) IsWall(x, y int) bool {
	if !m.InBounds(x, y) {
		return true // Out of bounds is considered a wall
	}
	return IsAnyWallType(m.Tiles[y][x])
}

// IsWalkable returns true for floor-like tiles, doors included
func (m *MapComponent) IsWalkable(x, y int) bool {
	return m.InBounds(x, y) && !IsAnyWallType(m.Tiles[y][x])
}

// SetTile sets the tile at the given position
func (m *MapComponent) SetTile(x, y, tileType int) {
	if m.InBounds(x, y) {
		m.Tiles[y][x] = tileType
	}
}

// Count returns how many tiles have the given type
func (m *MapComponent) Count(tileType int) int {
	n := 0
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			if m.Tiles[y][x] == tileType {
				n++
			}
		}
	}
	return n
}

// Render draws the map as text, one row per line
func (m *MapComponent) Render(mapping *TileMappingComponent) string {
	var sb strings.Builder
	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			sb.WriteRune(mapping.GetTileDefinition(m.Tiles[y][x]).Glyph)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (m *MapComponent) String() string {
	return m.Render(NewTileMappingComponent())
}

// IsAnyWallType checks if a tile is any type of wall
func IsAnyWallType(tileType int) bool {
	return tileType == TileWall || (tileType >= TileWallHorizontal && tileType <= TileWallCross)
}

// IsFloorType checks if a tile is a floor-type (not wall or door)
func IsFloorType(tileType int) bool {
	return !IsAnyWallType(tileType) && tileType != TileDoor && tileType != TileBreakable
}
