package generation

import (
	"fmt"

	"go.uber.org/zap"

	"bsp-dungeon/geometry"
)

// DefaultCorridorWidth is the cross-sectional width of a corridor
const DefaultCorridorWidth = 5

// PropagationStrategy selects how internal nodes pick a representative room
type PropagationStrategy int

const (
	// PropagateLeftBiased descends into the left subtree whenever neither
	// child carries a carved room. The chosen room can be far from the
	// sibling it gets connected to.
	PropagateLeftBiased PropagationStrategy = iota
	// PropagateNearestToSibling picks the descendant room closest to the
	// edge shared with the sibling subtree.
	PropagateNearestToSibling
)

func (s PropagationStrategy) String() string {
	switch s {
	case PropagateLeftBiased:
		return "left-biased"
	case PropagateNearestToSibling:
		return "nearest-to-sibling"
	default:
		return fmt.Sprintf("PropagationStrategy(%d)", int(s))
	}
}

// ParsePropagationStrategy maps a config name onto a strategy
func ParsePropagationStrategy(name string) (PropagationStrategy, error) {
	switch name {
	case "", "left-biased":
		return PropagateLeftBiased, nil
	case "nearest-to-sibling":
		return PropagateNearestToSibling, nil
	}
	return 0, fmt.Errorf("%w: unknown propagation strategy %q", ErrInvalidConfiguration, name)
}

// DegeneratePolicy decides what happens to a leaf too small to hold a room
type DegeneratePolicy int

const (
	// DegenerateSkip leaves the cell without a room and keeps going
	DegenerateSkip DegeneratePolicy = iota
	// DegenerateAbort fails the whole generation pass
	DegenerateAbort
)

func (p DegeneratePolicy) String() string {
	switch p {
	case DegenerateSkip:
		return "skip"
	case DegenerateAbort:
		return "abort"
	default:
		return fmt.Sprintf("DegeneratePolicy(%d)", int(p))
	}
}

// ParseDegeneratePolicy maps a config name onto a policy
func ParseDegeneratePolicy(name string) (DegeneratePolicy, error) {
	switch name {
	case "", "skip":
		return DegenerateSkip, nil
	case "abort":
		return DegenerateAbort, nil
	}
	return 0, fmt.Errorf("%w: unknown degenerate room policy %q", ErrInvalidConfiguration, name)
}

// Config holds the parameters of one generation pass
type Config struct {
	MinCellWidth  int
	MinCellHeight int
	Offset        int // inset between a leaf cell and its room
	CorridorWidth int

	Propagation     PropagationStrategy
	DegenerateRooms DegeneratePolicy

	Logger *zap.Logger // nil means no logging
}

// DefaultConfig returns the parameters used by the reference dungeon
func DefaultConfig() Config {
	return Config{
		MinCellWidth:  10,
		MinCellHeight: 10,
		Offset:        2,
		CorridorWidth: DefaultCorridorWidth,
	}
}

// minSplitWidth is the widest a cell can be and still stop splitting
func (c Config) minSplitWidth() int {
	return 2*c.MinCellWidth + 2*c.Offset
}

func (c Config) minSplitHeight() int {
	return 2*c.MinCellHeight + 2*c.Offset
}

func (c Config) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}

// Validate checks the parameters against the dungeon bounds before any
// partitioning happens. Values are reported, never clamped.
func (c Config) Validate(bounds geometry.Rect) error {
	switch {
	case bounds.Empty():
		return newError(ErrInvalidConfiguration, bounds, "dungeon bounds are empty")
	case c.MinCellWidth < 1 || c.MinCellHeight < 1:
		return newError(ErrInvalidConfiguration, bounds,
			"minimum cell size must be positive, got %dx%d", c.MinCellWidth, c.MinCellHeight)
	case c.Offset < 0:
		return newError(ErrInvalidConfiguration, bounds, "offset must not be negative, got %d", c.Offset)
	case c.CorridorWidth < 1:
		return newError(ErrInvalidConfiguration, bounds, "corridor width must be positive, got %d", c.CorridorWidth)
	case c.minSplitWidth() > bounds.Width():
		return newError(ErrInvalidConfiguration, bounds,
			"2*minCellWidth+2*offset = %d exceeds dungeon width %d", c.minSplitWidth(), bounds.Width())
	case c.minSplitHeight() > bounds.Height():
		return newError(ErrInvalidConfiguration, bounds,
			"2*minCellHeight+2*offset = %d exceeds dungeon height %d", c.minSplitHeight(), bounds.Height())
	}
	return nil
}
