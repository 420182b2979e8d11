package generation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bsp-dungeon/geometry"
)

func testBounds() geometry.Rect {
	return geometry.Rect{X0: 0, Y0: 0, X1: 100, Y1: 100}
}

// scriptedSource replays fixed draws; Intn values are reduced mod n
type scriptedSource struct {
	floats []float64
	ints   []int
}

func (s *scriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func TestPartition_LeavesSatisfyStoppingCondition(t *testing.T) {
	cfg := DefaultConfig()
	for seed := int64(1); seed <= 25; seed++ {
		layout, err := Generate(testBounds(), cfg, seed)
		require.NoError(t, err)

		tree := layout.Tree
		for _, id := range tree.Leaves() {
			b := tree.Cell(id).Bounds
			assert.LessOrEqual(t, b.Width(), cfg.minSplitWidth(), "seed %d leaf %v", seed, b)
			assert.LessOrEqual(t, b.Height(), cfg.minSplitHeight(), "seed %d leaf %v", seed, b)
		}
	}
}

func TestPartition_ChildrenTileParent(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		layout, err := Generate(testBounds(), DefaultConfig(), seed)
		require.NoError(t, err)

		tree := layout.Tree
		assert.Equal(t, testBounds(), tree.Cell(tree.Root()).Bounds)

		tree.Walk(tree.Root(), func(id CellID, cell *PartitionCell) bool {
			if cell.IsLeaf() {
				return true
			}
			require.Len(t, cell.Children, 2)
			first := tree.Cell(cell.Children[0])
			second := tree.Cell(cell.Children[1])

			assert.Equal(t, id, first.Parent)
			assert.Equal(t, id, second.Parent)
			assert.False(t, first.Bounds.Overlaps(second.Bounds))
			assert.Equal(t, cell.Bounds.Area(), first.Bounds.Area()+second.Bounds.Area())
			assert.True(t, cell.Bounds.Contains(first.Bounds))
			assert.True(t, cell.Bounds.Contains(second.Bounds))

			if cell.SplitHorizontal {
				assert.Equal(t, first.Bounds.Y1, second.Bounds.Y0)
				assert.Equal(t, cell.Bounds.Width(), first.Bounds.Width())
			} else {
				assert.Equal(t, first.Bounds.X1, second.Bounds.X0)
				assert.Equal(t, cell.Bounds.Height(), first.Bounds.Height())
			}
			return true
		})
	}
}

func TestPartition_ArenaIsPreOrder(t *testing.T) {
	layout, err := Generate(testBounds(), DefaultConfig(), 7)
	require.NoError(t, err)

	var visited []CellID
	layout.Tree.Walk(layout.Tree.Root(), func(id CellID, _ *PartitionCell) bool {
		visited = append(visited, id)
		return true
	})

	require.Len(t, visited, layout.Tree.Len())
	for i, id := range visited {
		assert.Equal(t, CellID(i), id)
	}
}

func TestPartition_NarrowCellForcesHorizontalSplit(t *testing.T) {
	// 23 is below the split width 2*10+2*2, so the width constraint decides
	cfg := DefaultConfig()
	bounds := geometry.Rect{X0: 0, Y0: 0, X1: 23, Y1: 60}

	// The direction draw says vertical, the narrow width overrides it
	src := &scriptedSource{floats: []float64{0.1}, ints: []int{5}}
	b := &builder{cfg: cfg, src: src, log: cfg.logger(), tree: newTree(bounds)}
	b.partition(b.tree.Root())

	root := b.tree.Cell(b.tree.Root())
	require.False(t, root.IsLeaf())
	assert.True(t, root.SplitHorizontal)
	// y = minCellHeight + 5
	assert.Equal(t, 15, b.tree.Cell(root.Children[0]).Bounds.Y1)
}

func TestPartition_DirectionDrawSelectsVerticalSplit(t *testing.T) {
	cfg := DefaultConfig()
	bounds := geometry.Rect{X0: 0, Y0: 0, X1: 40, Y1: 20}

	src := &scriptedSource{floats: []float64{0.9}, ints: []int{3}}
	b := &builder{cfg: cfg, src: src, log: cfg.logger(), tree: newTree(bounds)}
	b.partition(b.tree.Root())

	// Height 20 is not above the split height (24), so even a horizontal
	// draw yields a vertical split
	root := b.tree.Cell(b.tree.Root())
	require.Len(t, root.Children, 2)
	assert.False(t, root.SplitHorizontal)
	assert.Equal(t, geometry.Rect{X0: 0, Y0: 0, X1: 13, Y1: 20}, b.tree.Cell(root.Children[0]).Bounds)
	assert.Equal(t, geometry.Rect{X0: 13, Y0: 0, X1: 40, Y1: 20}, b.tree.Cell(root.Children[1]).Bounds)
}

func TestTree_Sibling(t *testing.T) {
	layout, err := Generate(testBounds(), DefaultConfig(), 3)
	require.NoError(t, err)

	tree := layout.Tree
	assert.Equal(t, NoCell, tree.Sibling(tree.Root()))

	root := tree.Cell(tree.Root())
	require.Len(t, root.Children, 2)
	assert.Equal(t, root.Children[1], tree.Sibling(root.Children[0]))
	assert.Equal(t, root.Children[0], tree.Sibling(root.Children[1]))
	assert.Greater(t, tree.Depth(), 0)
}
