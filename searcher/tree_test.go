package searcher

import (
	"halite/game"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

/**
Tests a ship's search tree
- selection: fully expanded node -> max UCB1 child, random among ties
- expansion: unexpanded node -> all search actions added at once
- terminal: node at the horizon -> same node, nothing added
- backup: reward and visit added from the node up to the root
- best plan: highest mean child, not highest UCB1 child
*/

func newTestTree(horizon int) *tree {
	return newTree(1, horizon, DefaultExploration, rand.New(rand.NewSource(1)))
}

// setStats overwrites the statistics of the root's children in search order.
func setStats(t *tree, parent int32, rewards []float64, visits []int) {
	total := 0
	for i := range rewards {
		child := &t.nodes[t.child(parent, i)]
		child.rewards = rewards[i]
		child.visits = visits[i]
		total += visits[i]
	}
	t.nodes[parent].visits = total
}

func TestTreeSelectThenExpand(t *testing.T) {
	t.Run("expanding the root of a new tree", func(t *testing.T) {
		tr := newTestTree(10)

		leaf, path, expanded := tr.selectThenExpand()

		require.Equal(t, root, leaf, "Should stop at the root")
		require.Empty(t, path, "Should not descend")
		require.True(t, expanded, "Should expand the root")
		require.Equal(t, 1+game.NumSearchActions, tr.size(), "Should add every search action at once")
		for i, action := range game.SearchActions {
			child := tr.nodes[tr.child(root, i)]
			require.Equal(t, action, child.action, "Should label children in search order")
			require.Equal(t, 1, child.depth)
			require.Equal(t, root, child.parent, "Should link children to their parent")
		}
	})

	t.Run("selecting the child with max UCB1 value", func(t *testing.T) {
		tr := newTestTree(10)
		tr.expand(root)
		setStats(tr, root, []float64{0, 0, 3, 0, 0}, []int{2, 2, 2, 2, 2})

		leaf, path, expanded := tr.selectThenExpand()

		require.Equal(t, tr.child(root, 2), leaf, "Should descend into the best child")
		require.Equal(t, []game.Action{game.East}, path, "Should record the selected label")
		require.True(t, expanded, "Should expand the selected child")
		require.Equal(t, 1+2*game.NumSearchActions, tr.size())
	})

	t.Run("exploring an unvisited child first", func(t *testing.T) {
		tr := newTestTree(10)
		tr.expand(root)
		setStats(tr, root, []float64{9, 9, 9, 0, 9}, []int{10, 10, 10, 0, 10})

		require.Equal(t, tr.child(root, 3), tr.pickChild(root), "Should pick the only unvisited child")
	})

	t.Run("breaking ties at random", func(t *testing.T) {
		tr := newTestTree(10)
		tr.expand(root)
		setStats(tr, root, []float64{1, 1, 1, 1, 1}, []int{2, 2, 2, 2, 2})

		picked := map[int32]bool{}
		for i := 0; i < 200; i++ {
			picked[tr.pickChild(root)] = true
		}

		require.Len(t, picked, game.NumSearchActions, "Should eventually pick every tied child")
	})

	t.Run("stagnating on a terminal node", func(t *testing.T) {
		tr := newTestTree(1)
		tr.expand(root)
		setStats(tr, root, []float64{0, 1, 0, 0, 0}, []int{1, 1, 1, 1, 1})

		leaf, path, expanded := tr.selectThenExpand()

		require.Equal(t, tr.child(root, 1), leaf, "Should stop at the terminal child")
		require.Equal(t, []game.Action{game.South}, path)
		require.False(t, expanded, "Should not expand a terminal node")
		require.Equal(t, 1+game.NumSearchActions, tr.size(), "Should not add nodes")
	})

	t.Run("stagnating on a terminal root", func(t *testing.T) {
		tr := newTestTree(0)

		leaf, path, expanded := tr.selectThenExpand()

		require.Equal(t, root, leaf)
		require.Empty(t, path)
		require.False(t, expanded)
	})

	t.Run("panics on an expanded node without visits", func(t *testing.T) {
		tr := newTestTree(10)
		tr.expand(root)

		require.Panics(t, func() { tr.pickChild(root) }, "Should panic when N is 0")
	})
}

func TestTreeBackup(t *testing.T) {
	tr := newTestTree(10)
	tr.expand(root)
	child := tr.child(root, 0)
	tr.expand(child)
	grandChild := tr.child(child, 4)

	tr.backup(grandChild, 0.5)
	tr.backup(grandChild, -0.25)

	for _, id := range []int32{grandChild, child, root} {
		require.Equal(t, 2, tr.nodes[id].visits, "Should add a visit along the path")
		require.InDelta(t, 0.25, tr.nodes[id].rewards, 1e-9, "Should add rewards along the path")
	}
	require.Equal(t, 0, tr.nodes[tr.child(root, 1)].visits, "Should not touch siblings")
}

func TestTreeBestPlan(t *testing.T) {
	t.Run("following the highest mean instead of the highest UCB1", func(t *testing.T) {
		tr := newTestTree(10)
		tr.expand(root)
		setStats(tr, root, []float64{50, 0.6, 0, 0, 0}, []int{100, 1, 1, 1, 1})

		require.Equal(t, []game.Action{game.South}, tr.bestPlan())
	})

	t.Run("following the best path to an unexpanded node", func(t *testing.T) {
		tr := newTestTree(10)
		tr.expand(root)
		setStats(tr, root, []float64{0, 0, 0, 4, 0}, []int{1, 1, 1, 4, 1})
		west := tr.child(root, 3)
		tr.expand(west)
		setStats(tr, west, []float64{0, 0, 0, 0, 3}, []int{0, 1, 1, 1, 1})

		require.Equal(t, []game.Action{game.West, game.Stay}, tr.bestPlan(), "Should skip unvisited children")
	})

	t.Run("choosing among negative means", func(t *testing.T) {
		tr := newTestTree(10)
		tr.expand(root)
		setStats(tr, root, []float64{-5, -1, -3, -2, -4}, []int{1, 1, 1, 1, 1})

		require.Equal(t, []game.Action{game.South}, tr.bestPlan(), "Should pick the least negative child")
	})

	t.Run("keeping the earlier action on ties", func(t *testing.T) {
		tr := newTestTree(10)
		tr.expand(root)
		setStats(tr, root, []float64{0, 2, 0, 2, 0}, []int{1, 1, 1, 1, 1})

		require.Equal(t, []game.Action{game.South}, tr.bestPlan())
	})

	t.Run("returning an empty plan before any iteration", func(t *testing.T) {
		require.Empty(t, newTestTree(10).bestPlan())
	})

	t.Run("stopping at terminal nodes", func(t *testing.T) {
		tr := newTestTree(1)
		tr.expand(root)
		setStats(tr, root, []float64{1, 0, 0, 0, 0}, []int{1, 1, 1, 1, 1})

		require.Equal(t, []game.Action{game.North}, tr.bestPlan())
	})
}
