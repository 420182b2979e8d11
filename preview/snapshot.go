package preview

import (
	"time"

	"github.com/google/uuid"

	"bsp-dungeon/generation"
	"bsp-dungeon/geometry"
)

// Rect is the wire form of geometry.Rect
type Rect struct {
	X0 int `json:"x0"`
	Y0 int `json:"y0"`
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
}

func toRect(r geometry.Rect) Rect {
	return Rect{X0: r.X0, Y0: r.Y0, X1: r.X1, Y1: r.Y1}
}

// Point is the wire form of geometry.Point
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type RoomSnapshot struct {
	ID          int    `json:"id"`
	Bounds      Rect   `json:"bounds"`
	Role        string `json:"role"`
	Tier        string `json:"tier,omitempty"`
	BigTreasure bool   `json:"bigTreasure,omitempty"`
}

type CorridorSnapshot struct {
	Bounds   Rect     `json:"bounds"`
	Left     int      `json:"left"`
	Right    int      `json:"right"`
	Vertical bool     `json:"vertical"`
	Feature  string   `json:"feature"`
	Points   [2]Point `json:"points"`
}

// Snapshot is one generated dungeon as sent to preview clients
type Snapshot struct {
	GenerationID  string             `json:"generationId"`
	Seed          int64              `json:"seed"`
	Propagation   string             `json:"propagation"`
	Bounds        Rect               `json:"bounds"`
	Rooms         []RoomSnapshot     `json:"rooms"`
	Corridors     []CorridorSnapshot `json:"corridors"`
	SkippedLeaves int                `json:"skippedLeaves"`
	Depth         int                `json:"depth"`
	CreatedAt     time.Time          `json:"createdAt"`
}

// NewSnapshot flattens a layout and its population plan. The plan must
// have been made for the same layout.
func NewSnapshot(layout *generation.DungeonLayout, plan *generation.PopulationPlan, propagation generation.PropagationStrategy) *Snapshot {
	s := &Snapshot{
		GenerationID:  uuid.New().String(),
		Seed:          layout.Seed,
		Propagation:   propagation.String(),
		Bounds:        toRect(layout.Bounds),
		Rooms:         make([]RoomSnapshot, 0, len(layout.Rooms)),
		Corridors:     make([]CorridorSnapshot, 0, len(layout.Corridors)),
		SkippedLeaves: len(layout.SkippedLeaves),
		Depth:         layout.Tree.Depth(),
		CreatedAt:     time.Now().UTC(),
	}

	for i, room := range layout.Rooms {
		rs := RoomSnapshot{
			ID:     int(room.ID),
			Bounds: toRect(room.Bounds),
		}
		if i < len(plan.Rooms) {
			rp := plan.Rooms[i]
			rs.Role = rp.Role.String()
			if rp.Role == generation.RoleEncounter {
				rs.Tier = rp.Tier.String()
			}
			rs.BigTreasure = rp.BigTreasure
		}
		s.Rooms = append(s.Rooms, rs)
	}

	for i, c := range layout.Corridors {
		cs := CorridorSnapshot{
			Bounds:   toRect(c.Bounds),
			Left:     int(c.Left),
			Right:    int(c.Right),
			Vertical: c.Vertical(),
			Feature:  generation.FeatureNone.String(),
		}
		if i < len(plan.Corridors) {
			cp := plan.Corridors[i]
			cs.Feature = cp.Feature.String()
			for j, p := range cp.Points {
				cs.Points[j] = Point{X: p.X, Y: p.Y}
			}
		}
		s.Corridors = append(s.Corridors, cs)
	}

	return s
}

// Envelope wraps every message pushed over /stream
type Envelope struct {
	Sequence uint64    `json:"sequence"`
	Type     string    `json:"type"`
	Payload  *Snapshot `json:"payload"`
}

const (
	EventCurrentLayout = "CurrentLayout"
	EventLayoutChanged = "LayoutChanged"
)
