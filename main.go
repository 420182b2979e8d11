package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"bsp-dungeon/components"
	"bsp-dungeon/config"
	"bsp-dungeon/generation"
	"bsp-dungeon/logger"
	"bsp-dungeon/preview"
)

// dungeon is one generated layout with everything derived from it
type dungeon struct {
	layout *generation.DungeonLayout
	plan   *generation.PopulationPlan
	tiles  *components.MapComponent
}

// buildDungeon generates, populates and rasterizes the dungeon for seed.
// Population draws from the same stream right after the layout.
func buildDungeon(cfg *config.Config, genCfg generation.Config, seed int64) (*dungeon, error) {
	g := generation.NewDungeonGenerator()
	g.SetSeed(seed)

	layout, err := g.Generate(cfg.Bounds(), genCfg)
	if err != nil {
		return nil, err
	}
	plan := generation.NewDungeonPopulator(g.Source(), cfg.PopulationOptions()).Plan(layout)

	tiles := generation.Rasterize(layout)
	generation.StampFeatures(tiles, layout, plan)
	generation.ApplyBoxDrawingWalls(tiles)

	return &dungeon{layout: layout, plan: plan, tiles: tiles}, nil
}

func main() {
	configPath := flag.String("config", "", "path to a YAML settings file")
	seedFlag := flag.String("seed", "", "dungeon seed (default: BSP_SEED, the config file, or the clock)")
	ascii := flag.Bool("ascii", false, "print the dungeon as text and exit")
	jsonOut := flag.Bool("json", false, "print the dungeon as JSON and exit")
	serve := flag.Bool("serve", false, "run the preview server")
	addr := flag.String("addr", "", "preview server address (overrides the config file)")
	view := flag.Bool("view", false, "open the viewer window (the default mode)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	if *seedFlag != "" {
		seed, err := strconv.ParseInt(*seedFlag, 10, 64)
		if err != nil {
			log.Fatalf("invalid -seed %q: %v", *seedFlag, err)
		}
		cfg.Seed = &seed
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}

	zl, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "bsp-dungeon")
	if err != nil {
		log.Fatal(err)
	}
	defer zl.Sync()

	genCfg, err := cfg.GenerationConfig(zl)
	if err != nil {
		zl.Fatal("invalid generation settings", zap.Error(err))
	}
	seed := cfg.ResolveSeed()

	switch {
	case *view:
		runViewer(cfg, genCfg, zl, seed)
	case *ascii || *jsonOut:
		runDump(cfg, genCfg, zl, seed, *ascii, *jsonOut)
	case *serve:
		runServer(cfg, genCfg, zl, seed)
	default:
		runViewer(cfg, genCfg, zl, seed)
	}
}

func runDump(cfg *config.Config, genCfg generation.Config, zl *zap.Logger, seed int64, ascii, jsonOut bool) {
	d, err := buildDungeon(cfg, genCfg, seed)
	if err != nil {
		zl.Fatal("generation failed", zap.Int64("seed", seed), zap.Error(err))
	}
	zl.Info("dungeon generated",
		zap.Int64("seed", seed),
		zap.Int("rooms", len(d.layout.Rooms)),
		zap.Int("corridors", len(d.layout.Corridors)))

	if ascii {
		fmt.Print(d.tiles.String())
	}
	if jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(preview.NewSnapshot(d.layout, d.plan, genCfg.Propagation)); err != nil {
			zl.Fatal("encode failed", zap.Error(err))
		}
	}
}

func runServer(cfg *config.Config, genCfg generation.Config, zl *zap.Logger, seed int64) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server, err := preview.NewServer(preview.Options{
		Bounds:     cfg.Bounds(),
		Generation: genCfg,
		Population: cfg.PopulationOptions(),
		Logger:     zl,
	}, seed)
	if err != nil {
		zl.Fatal("generation failed", zap.Int64("seed", seed), zap.Error(err))
	}
	if err := server.ListenAndServe(ctx, cfg.Server.Addr); err != nil {
		zl.Fatal("preview server stopped", zap.Error(err))
	}
}

func runViewer(cfg *config.Config, genCfg generation.Config, zl *zap.Logger, seed int64) {
	viewer := NewDungeonViewer(cfg, genCfg, zl, seed)

	windowWidth, windowHeight := config.GetWindowSize(cfg.Dungeon.Width, cfg.Dungeon.Height)
	ebiten.SetWindowSize(windowWidth, windowHeight)
	ebiten.SetWindowTitle("BSP Dungeon Viewer")
	if err := ebiten.RunGame(viewer); err != nil && !errors.Is(err, ebiten.Termination) {
		zl.Fatal("viewer stopped", zap.Error(err))
	}
}
