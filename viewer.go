package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"go.uber.org/zap"

	"bsp-dungeon/components"
	"bsp-dungeon/config"
	"bsp-dungeon/generation"
	"bsp-dungeon/geometry"
)

var (
	backgroundColor = color.RGBA{0, 0, 0, 255}
	cellColor       = color.RGBA{70, 70, 110, 255}
	corridorColor   = color.RGBA{90, 90, 90, 255}
	statusColor     = color.RGBA{20, 20, 20, 255}

	roleColors = map[generation.RoomRole]color.RGBA{
		generation.RoleSpawn:     {60, 160, 60, 255},
		generation.RoleBoss:      {170, 40, 40, 255},
		generation.RoleExit:      {60, 110, 200, 255},
		generation.RoleTreasure:  {200, 170, 40, 255},
		generation.RoleOddity:    {150, 80, 170, 255},
		generation.RoleEncounter: {130, 100, 80, 255},
	}

	featureColors = map[generation.CorridorFeature]color.RGBA{
		generation.FeatureDoor:      {139, 69, 19, 255},
		generation.FeatureBreakable: {205, 133, 63, 255},
	}
)

// DungeonViewer implements ebiten.Game interface for inspecting generated
// dungeons.
type DungeonViewer struct {
	cfg    *config.Config
	genCfg generation.Config
	log    *zap.Logger

	seed    int64
	dungeon *dungeon
	err     error

	mapping   *components.TileMappingComponent
	showTiles bool

	screenWidth  int
	screenHeight int
}

// NewDungeonViewer creates a viewer showing the dungeon for seed
func NewDungeonViewer(cfg *config.Config, genCfg generation.Config, log *zap.Logger, seed int64) *DungeonViewer {
	w, h := config.GetScreenDimensions(cfg.Dungeon.Width, cfg.Dungeon.Height)
	v := &DungeonViewer{
		cfg:          cfg,
		genCfg:       genCfg,
		log:          log,
		mapping:      components.NewTileMappingComponent(),
		screenWidth:  w,
		screenHeight: h,
	}
	v.regenerate(seed)
	return v
}

// regenerate rebuilds the dungeon. A failed seed stays on screen with its
// error until the next key press.
func (v *DungeonViewer) regenerate(seed int64) {
	v.seed = seed
	v.dungeon, v.err = buildDungeon(v.cfg, v.genCfg, seed)
	if v.err != nil {
		v.log.Warn("generation failed", zap.Int64("seed", seed), zap.Error(v.err))
		return
	}
	v.log.Info("dungeon generated",
		zap.Int64("seed", seed),
		zap.Stringer("propagation", v.genCfg.Propagation),
		zap.Int("rooms", len(v.dungeon.layout.Rooms)),
		zap.Int("corridors", len(v.dungeon.layout.Corridors)))
}

// Update handles input
func (v *DungeonViewer) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		v.regenerate(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		// Same seed, other strategy: only representatives and corridors change
		if v.genCfg.Propagation == generation.PropagateLeftBiased {
			v.genCfg.Propagation = generation.PropagateNearestToSibling
		} else {
			v.genCfg.Propagation = generation.PropagateLeftBiased
		}
		v.regenerate(v.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyG) {
		v.showTiles = !v.showTiles
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		ebiten.SetFullscreen(!ebiten.IsFullscreen())
	}

	return nil
}

// Draw draws the dungeon and a status bar
func (v *DungeonViewer) Draw(screen *ebiten.Image) {
	screen.Fill(backgroundColor)

	if v.dungeon != nil {
		if v.showTiles {
			v.drawTiles(screen)
		} else {
			v.drawLayout(screen)
		}
	}

	v.drawStatus(screen)
}

func (v *DungeonViewer) drawTiles(screen *ebiten.Image) {
	tiles := v.dungeon.tiles
	ts := float64(config.TileSize)
	for y := 0; y < tiles.Height; y++ {
		for x := 0; x < tiles.Width; x++ {
			def := v.mapping.GetTileDefinition(tiles.Tiles[y][x])
			ebitenutil.DrawRect(screen, float64(x)*ts, float64(y)*ts, ts, ts, def.FG)
		}
	}
}

func (v *DungeonViewer) drawLayout(screen *ebiten.Image) {
	layout := v.dungeon.layout
	origin := layout.Bounds.TopLeft()

	// Leaf cells as outlines
	for _, id := range layout.Tree.Leaves() {
		r := toScreen(layout.Tree.Cell(id).Bounds, origin)
		vector.StrokeRect(screen, r[0], r[1], r[2], r[3], 1, cellColor, false)
	}

	for _, c := range layout.Corridors {
		r := toScreen(c.Bounds, origin)
		vector.DrawFilledRect(screen, r[0], r[1], r[2], r[3], corridorColor, false)
	}

	for i, room := range layout.Rooms {
		clr := roleColors[generation.RoleEncounter]
		if i < len(v.dungeon.plan.Rooms) {
			clr = roleColors[v.dungeon.plan.Rooms[i].Role]
		}
		r := toScreen(room.Bounds, origin)
		vector.DrawFilledRect(screen, r[0], r[1], r[2], r[3], clr, false)
	}

	ts := float32(config.TileSize)
	for _, cp := range v.dungeon.plan.Corridors {
		clr, ok := featureColors[cp.Feature]
		if !ok {
			continue
		}
		for _, p := range cp.Points {
			x := float32(p.X-origin.X) * ts
			y := float32(p.Y-origin.Y) * ts
			vector.DrawFilledRect(screen, x, y, ts, ts, clr, false)
		}
	}
}

func (v *DungeonViewer) drawStatus(screen *ebiten.Image) {
	top := v.screenHeight - config.StatusHeight*config.TileSize
	ebitenutil.DrawRect(screen, 0, float64(top), float64(v.screenWidth), float64(config.StatusHeight*config.TileSize), statusColor)

	line := fmt.Sprintf("seed %d | %s", v.seed, v.genCfg.Propagation)
	if v.err != nil {
		line += " | " + v.err.Error()
	} else {
		line += fmt.Sprintf(" | rooms %d corridors %d skipped %d",
			len(v.dungeon.layout.Rooms), len(v.dungeon.layout.Corridors), len(v.dungeon.layout.SkippedLeaves))
	}
	ebitenutil.DebugPrintAt(screen, line, 4, top+1)
	ebitenutil.DebugPrintAt(screen, "R: new seed  P: propagation  G: tiles  F: fullscreen  ESC: quit", 4, top+15)
}

// Layout implements ebiten.Game's Layout
func (v *DungeonViewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return v.screenWidth, v.screenHeight
}

// toScreen converts a dungeon rectangle to x, y, width, height in pixels
func toScreen(r geometry.Rect, origin geometry.Point) [4]float32 {
	ts := float32(config.TileSize)
	return [4]float32{
		float32(r.X0-origin.X) * ts,
		float32(r.Y0-origin.Y) * ts,
		float32(r.Width()) * ts,
		float32(r.Height()) * ts,
	}
}
