package generation

import (
	"fmt"
	"math"

	"bsp-dungeon/geometry"
)

// RoomRole is what a consumer should place in a room
type RoomRole int

const (
	RoleSpawn     RoomRole = iota // player start
	RoleBoss                      // penultimate room
	RoleExit                      // last room
	RoleTreasure                  // loot pile
	RoleOddity                    // a lone small creature instead of loot
	RoleEncounter                 // enemies scaled by distance from spawn
)

func (r RoomRole) String() string {
	switch r {
	case RoleSpawn:
		return "spawn"
	case RoleBoss:
		return "boss"
	case RoleExit:
		return "exit"
	case RoleTreasure:
		return "treasure"
	case RoleOddity:
		return "oddity"
	case RoleEncounter:
		return "encounter"
	default:
		return fmt.Sprintf("RoomRole(%d)", int(r))
	}
}

// EncounterTier grades the enemy placed in an encounter room
type EncounterTier int

const (
	TierNone EncounterTier = iota
	TierSmall
	TierMedium
	TierBig
)

func (t EncounterTier) String() string {
	switch t {
	case TierSmall:
		return "small"
	case TierMedium:
		return "medium"
	case TierBig:
		return "big"
	default:
		return "none"
	}
}

// CorridorFeature is what blocks a corridor at both ends
type CorridorFeature int

const (
	FeatureNone CorridorFeature = iota
	FeatureDoor
	FeatureBreakable
)

func (f CorridorFeature) String() string {
	switch f {
	case FeatureDoor:
		return "door"
	case FeatureBreakable:
		return "breakable"
	default:
		return "none"
	}
}

// RoomPlan is the population decision for one room
type RoomPlan struct {
	Room        RoomID
	Role        RoomRole
	Tier        EncounterTier
	BigTreasure bool
}

// CorridorPlan is the population decision for one corridor. Points are the
// tiles at both ends of the passage, centred on its width.
type CorridorPlan struct {
	Corridor int
	Feature  CorridorFeature
	Points   [2]geometry.Point
}

// PopulationPlan pairs every room and corridor of a layout with its contents
type PopulationPlan struct {
	Rooms     []RoomPlan
	Corridors []CorridorPlan
}

// RolesCount tallies the rooms holding each role
func (p *PopulationPlan) RolesCount() map[RoomRole]int {
	counts := make(map[RoomRole]int)
	for _, room := range p.Rooms {
		counts[room.Role]++
	}
	return counts
}

// PopulationOptions tunes how encounters scale with distance
type PopulationOptions struct {
	NearDistance float64 // beyond this, encounters can be medium or big
	FarDistance  float64 // beyond this, encounters are medium or big only
}

// DefaultPopulationOptions returns the distances used by the reference dungeon
func DefaultPopulationOptions() PopulationOptions {
	return PopulationOptions{
		NearDistance: 10,
		FarDistance:  50,
	}
}

// DungeonPopulator decides room roles and corridor features for a layout
type DungeonPopulator struct {
	rng     RandomSource
	options PopulationOptions
}

// NewDungeonPopulator creates a populator drawing from src. Passing the
// generator's source continues the stream the layout was built from.
func NewDungeonPopulator(src RandomSource, options PopulationOptions) *DungeonPopulator {
	return &DungeonPopulator{
		rng:     src,
		options: options,
	}
}

// Plan assigns contents to every room, then every corridor, in layout order
func (p *DungeonPopulator) Plan(layout *DungeonLayout) *PopulationPlan {
	plan := &PopulationPlan{
		Rooms:     make([]RoomPlan, 0, len(layout.Rooms)),
		Corridors: make([]CorridorPlan, 0, len(layout.Corridors)),
	}

	numRooms := len(layout.Rooms)
	for i, room := range layout.Rooms {
		rp := RoomPlan{Room: room.ID}
		switch {
		case i == 0:
			rp.Role = RoleSpawn
		case i == numRooms-2:
			rp.Role = RoleBoss
		case i == numRooms-1:
			rp.Role = RoleExit
		case isTreasureSlot(layout.Tree, i):
			p.planTreasure(&rp)
		default:
			rp.Role = RoleEncounter
			rp.Tier = p.encounterTier(room, layout.Rooms[0])
		}
		plan.Rooms = append(plan.Rooms, rp)
	}

	for i, corridor := range layout.Corridors {
		plan.Corridors = append(plan.Corridors, CorridorPlan{
			Corridor: i,
			Feature:  p.corridorFeature(),
			Points:   corridorEnds(corridor),
		})
	}

	return plan
}

// isTreasureSlot reports whether the cell sharing the room's index in the
// pre-order cell arena is a leaf
func isTreasureSlot(tree *Tree, index int) bool {
	return index < tree.Len() && tree.Cell(CellID(index)).IsLeaf()
}

func (p *DungeonPopulator) planTreasure(rp *RoomPlan) {
	// 20% chance of a small creature instead of treasure
	if p.rng.Intn(5) == 1 {
		rp.Role = RoleOddity
		return
	}
	rp.Role = RoleTreasure
	rp.BigTreasure = p.rng.Intn(10) == 1
}

func (p *DungeonPopulator) encounterTier(room, spawn Room) EncounterTier {
	a, b := room.Center(), spawn.Center()
	distance := math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))

	switch {
	case distance > p.options.FarDistance:
		if p.rng.Intn(100) < 40 {
			return TierMedium
		}
		return TierBig
	case distance > p.options.NearDistance:
		roll := p.rng.Intn(100)
		if roll < 40 {
			return TierSmall
		}
		if roll < 90 {
			return TierMedium
		}
		return TierBig
	default:
		return TierSmall
	}
}

func (p *DungeonPopulator) corridorFeature() CorridorFeature {
	switch p.rng.Intn(10) {
	case 0:
		return FeatureNone
	case 1:
		return FeatureBreakable
	default:
		return FeatureDoor
	}
}

// corridorEnds returns the first and last tile of the passage along its
// major axis, centred on its width
func corridorEnds(c Corridor) [2]geometry.Point {
	b := c.Bounds
	if c.SplitHorizontal {
		x := b.X0 + c.Width/2
		return [2]geometry.Point{{X: x, Y: b.Y0}, {X: x, Y: max(b.Y0, b.Y1-1)}}
	}
	y := b.Y0 + c.Width/2
	return [2]geometry.Point{{X: b.X0, Y: y}, {X: max(b.X0, b.X1-1), Y: y}}
}
