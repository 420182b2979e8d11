package config

// Viewer layout configuration
const (
	// Tile size in pixels
	TileSize = 8

	// Status bar height in tiles
	StatusHeight = 4

	// Largest window the viewer opens, in pixels
	MaxWindowWidth  = 1280
	MaxWindowHeight = 960
)

// GetScreenDimensions returns the logical screen size in pixels for a
// dungeon of the given size in tiles, status bar included
func GetScreenDimensions(width, height int) (int, int) {
	return width * TileSize, (height + StatusHeight) * TileSize
}

// GetWindowSize returns the window size: the logical screen scaled down to
// fit MaxWindowWidth x MaxWindowHeight, never scaled up
func GetWindowSize(width, height int) (int, int) {
	w, h := GetScreenDimensions(width, height)
	if w <= MaxWindowWidth && h <= MaxWindowHeight {
		return w, h
	}
	scale := min(float64(MaxWindowWidth)/float64(w), float64(MaxWindowHeight)/float64(h))
	return int(float64(w) * scale), int(float64(h) * scale)
}
