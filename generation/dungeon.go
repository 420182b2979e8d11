package generation

import (
	"math/rand"
	"time"

	"go.uber.org/zap"

	"bsp-dungeon/geometry"
)

// RegionKind tells rooms and corridors apart in the flattened output
type RegionKind int

const (
	RegionRoom RegionKind = iota
	RegionCorridor
)

func (k RegionKind) String() string {
	if k == RegionCorridor {
		return "corridor"
	}
	return "room"
}

// Region is one placed rectangle of floor
type Region struct {
	Kind   RegionKind
	Index  int // index into Rooms or Corridors
	Bounds geometry.Rect
}

// DungeonLayout is the full output of a generation pass
type DungeonLayout struct {
	Bounds geometry.Rect
	Seed   int64

	// Rooms are in carving order: the first is the spawn room and the last
	// the exit room
	Rooms     []Room
	Corridors []Corridor
	Tree      *Tree

	// SkippedLeaves lists leaves that were too small to hold a room
	SkippedLeaves []CellID
}

// Regions returns rooms followed by corridors
func (l *DungeonLayout) Regions() []Region {
	regions := make([]Region, 0, len(l.Rooms)+len(l.Corridors))
	for i, room := range l.Rooms {
		regions = append(regions, Region{Kind: RegionRoom, Index: i, Bounds: room.Bounds})
	}
	for i, corridor := range l.Corridors {
		regions = append(regions, Region{Kind: RegionCorridor, Index: i, Bounds: corridor.Bounds})
	}
	return regions
}

// SpawnRoom returns the entrance room, if any
func (l *DungeonLayout) SpawnRoom() (Room, bool) {
	if len(l.Rooms) == 0 {
		return Room{}, false
	}
	return l.Rooms[0], true
}

// ExitRoom returns the last room, if any
func (l *DungeonLayout) ExitRoom() (Room, bool) {
	if len(l.Rooms) == 0 {
		return Room{}, false
	}
	return l.Rooms[len(l.Rooms)-1], true
}

// builder holds the state of one generation pass
type builder struct {
	cfg Config
	src RandomSource
	log *zap.Logger

	tree      *Tree
	rooms     []Room
	corridors []Corridor
	skipped   []CellID
}

// Generate builds a dungeon inside bounds from a seed
func Generate(bounds geometry.Rect, cfg Config, seed int64) (*DungeonLayout, error) {
	layout, err := GenerateWithSource(bounds, cfg, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	layout.Seed = seed
	return layout, nil
}

// GenerateWithSource builds a dungeon drawing every random value from src:
// partition, then room carving. Propagation and corridors draw nothing.
func GenerateWithSource(bounds geometry.Rect, cfg Config, src RandomSource) (*DungeonLayout, error) {
	if err := cfg.Validate(bounds); err != nil {
		return nil, err
	}

	b := &builder{
		cfg:  cfg,
		src:  src,
		log:  cfg.logger(),
		tree: newTree(bounds),
	}

	root := b.tree.Root()
	b.partition(root)
	if err := b.carveRooms(root); err != nil {
		return nil, err
	}
	PropagateRooms(b.tree, b.rooms, cfg.Propagation)
	if err := b.synthesizeCorridors(root); err != nil {
		return nil, err
	}

	b.log.Debug("dungeon generated",
		zap.Stringer("bounds", bounds),
		zap.Int("cells", b.tree.Len()),
		zap.Int("depth", b.tree.Depth()),
		zap.Int("rooms", len(b.rooms)),
		zap.Int("corridors", len(b.corridors)),
		zap.Int("skipped_leaves", len(b.skipped)),
		zap.Stringer("propagation", cfg.Propagation))

	return &DungeonLayout{
		Bounds:        bounds,
		Rooms:         b.rooms,
		Corridors:     b.corridors,
		Tree:          b.tree,
		SkippedLeaves: b.skipped,
	}, nil
}

// DungeonGenerator handles procedural generation of dungeon layouts
type DungeonGenerator struct {
	rng  *rand.Rand
	seed int64
}

// NewDungeonGenerator creates a new dungeon generator seeded from the clock
func NewDungeonGenerator() *DungeonGenerator {
	g := &DungeonGenerator{}
	g.SetSeed(time.Now().UnixNano())
	return g
}

// SetSeed allows setting a specific seed for reproducible dungeons
func (g *DungeonGenerator) SetSeed(seed int64) {
	g.seed = seed
	g.rng = rand.New(rand.NewSource(seed))
}

// Seed returns the seed of the current random stream
func (g *DungeonGenerator) Seed() int64 {
	return g.seed
}

// Source exposes the random stream so later passes (population) continue
// where generation stopped
func (g *DungeonGenerator) Source() RandomSource {
	return g.rng
}

// Generate builds a dungeon from the generator's random stream. Consecutive
// calls continue the stream; call SetSeed to replay a dungeon.
func (g *DungeonGenerator) Generate(bounds geometry.Rect, cfg Config) (*DungeonLayout, error) {
	layout, err := GenerateWithSource(bounds, cfg, g.rng)
	if err != nil {
		return nil, err
	}
	layout.Seed = g.seed
	return layout, nil
}
