package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"bsp-dungeon/generation"
	"bsp-dungeon/geometry"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dungeon.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("BSP_SEED", "")
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Nil(t, cfg.Seed)
	assert.Equal(t, geometry.Rect{X0: 0, Y0: 0, X1: 100, Y1: 100}, cfg.Bounds())
	assert.Equal(t, 10, cfg.Dungeon.MinCellWidth)
	assert.Equal(t, 10, cfg.Dungeon.MinCellHeight)
	assert.Equal(t, 2, cfg.Dungeon.Offset)
	assert.Equal(t, 5, cfg.Dungeon.CorridorWidth)
	assert.Equal(t, "left-biased", cfg.Dungeon.Propagation)
	assert.Equal(t, "skip", cfg.Dungeon.DegenerateRooms)
	assert.Equal(t, generation.DefaultPopulationOptions(), cfg.PopulationOptions())
}

func TestLoad_MissingFileKeepsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Dungeon, cfg.Dungeon)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
seed: 1234
dungeon:
  width: 160
  height: 90
  min_cell_width: 12
  offset: 3
  propagation: Nearest-To-Sibling
  degenerate_rooms: abort
log:
  level: debug
  format: json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.NotNil(t, cfg.Seed)
	assert.Equal(t, int64(1234), cfg.ResolveSeed())
	assert.Equal(t, 160, cfg.Dungeon.Width)
	assert.Equal(t, 90, cfg.Dungeon.Height)
	assert.Equal(t, 12, cfg.Dungeon.MinCellWidth)
	// Keys absent from the file keep their defaults
	assert.Equal(t, 10, cfg.Dungeon.MinCellHeight)
	assert.Equal(t, 5, cfg.Dungeon.CorridorWidth)
	assert.Equal(t, "nearest-to-sibling", cfg.Dungeon.Propagation)
	assert.Equal(t, "debug", cfg.Log.Level)

	gen, err := cfg.GenerationConfig(zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, generation.PropagateNearestToSibling, gen.Propagation)
	assert.Equal(t, generation.DegenerateAbort, gen.DegenerateRooms)
	assert.Equal(t, 3, gen.Offset)
	assert.NotNil(t, gen.Logger)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "seed: 5\nlog:\n  level: warn\n")
	t.Setenv("BSP_SEED", "-42")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(-42), cfg.ResolveSeed())
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "malformed yaml", body: "dungeon: [1, 2"},
		{name: "zero width", body: "dungeon:\n  width: 0\n"},
		{name: "unknown propagation", body: "dungeon:\n  propagation: random\n"},
		{name: "unknown policy", body: "dungeon:\n  degenerate_rooms: clamp\n"},
		{name: "far below near", body: "population:\n  near_distance: 30\n  far_distance: 20\n"},
		{name: "unknown log format", body: "log:\n  format: xml\n"},
		{name: "bad seed", body: "", env: map[string]string{"BSP_SEED": "abc"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
			assert.Nil(t, cfg)
		})
	}
}

func TestValidate_StrategyErrorsWrapSentinel(t *testing.T) {
	cfg := Default()
	cfg.Dungeon.Propagation = "widest"
	err := cfg.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, generation.ErrInvalidConfiguration))
}

func TestResolveSeed_Unset(t *testing.T) {
	cfg := Default()
	a := cfg.ResolveSeed()
	assert.NotZero(t, a)
}

func TestGetWindowSize(t *testing.T) {
	w, h := GetScreenDimensions(100, 100)
	assert.Equal(t, 800, w)
	assert.Equal(t, 832, h)

	// Fits: unchanged
	ww, wh := GetWindowSize(100, 100)
	assert.Equal(t, w, ww)
	assert.Equal(t, h, wh)

	// 400x200 tiles is 3200x1632 pixels: width bound
	ww, wh = GetWindowSize(400, 200)
	assert.Equal(t, MaxWindowWidth, ww)
	assert.Equal(t, 652, wh)
}
