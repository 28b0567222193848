package searcher

import (
	"halite/game"
	"math"

	"golang.org/x/exp/rand"
)

const (
	root    int32 = 0
	noChild int32 = -1
)

type node struct {
	action   game.Action // Label of the edge from the parent
	depth    int
	parent   int32
	children [game.NumSearchActions]int32
	rewards  float64
	visits   int
	expanded bool
	terminal bool
}

// tree is the search tree of a single ship. Nodes live in an arena and refer
// to each other by index, so a parent link never owns its parent.
type tree struct {
	ship    int
	horizon int
	c       float64
	rng     *rand.Rand
	nodes   []node
}

func newTree(ship, horizon int, c float64, rng *rand.Rand) *tree {
	t := &tree{
		ship:    ship,
		horizon: horizon,
		c:       c,
		rng:     rng,
		nodes:   make([]node, 0, 1+4*game.NumSearchActions),
	}
	t.addNode(noChild, game.Stay, 0)
	return t
}

func (t *tree) addNode(parent int32, action game.Action, depth int) int32 {
	n := node{
		action:   action,
		depth:    depth,
		parent:   parent,
		terminal: depth >= t.horizon,
	}
	for i := range n.children {
		n.children[i] = noChild
	}
	t.nodes = append(t.nodes, n)
	return int32(len(t.nodes) - 1)
}

// selectThenExpand descends from the root by UCB1 until it reaches a terminal
// node or a node it can expand. It returns that node, the labels on the way
// down and whether the node was expanded.
func (t *tree) selectThenExpand() (int32, []game.Action, bool) {
	current := root
	path := []game.Action{}
	for {
		n := &t.nodes[current]
		if n.terminal {
			return current, path, false
		}
		if !n.expanded {
			t.expand(current)
			return current, path, true
		}
		current = t.pickChild(current)
		path = append(path, t.nodes[current].action)
	}
}

// expand adds a child for every search action at once.
func (t *tree) expand(id int32) {
	depth := t.nodes[id].depth + 1
	for i, action := range game.SearchActions {
		child := t.addNode(id, action, depth)
		t.nodes[id].children[i] = child
	}
	t.nodes[id].expanded = true
}

func (t *tree) pickChild(id int32) int32 {
	parent := &t.nodes[id]
	if parent.visits == 0 {
		panic("node has children but no visits")
	}

	policy := newUCT(t.c, float64(parent.visits))
	candidates := make([]int32, 0, len(parent.children))
	maxScore := math.Inf(-1)
	for _, child := range parent.children {
		c := &t.nodes[child]
		score := policy.evaluate(c.rewards, float64(c.visits))
		if score > maxScore {
			maxScore = score
			candidates = append(candidates[:0], child)
		} else if score == maxScore {
			candidates = append(candidates, child)
		}
	}
	return candidates[t.rng.Intn(len(candidates))]
}

// child returns the node reached from id by the i-th search action.
func (t *tree) child(id int32, i int) int32 {
	return t.nodes[id].children[i]
}

func (t *tree) backup(id int32, reward float64) {
	for id != noChild {
		n := &t.nodes[id]
		n.rewards += reward
		n.visits++
		id = n.parent
	}
}

// bestPlan follows the child with the highest mean reward from the root until
// it reaches a terminal or unexpanded node. Negative means are eligible and
// ties keep the earlier action.
func (t *tree) bestPlan() []game.Action {
	plan := []game.Action{}
	current := root
	for {
		n := &t.nodes[current]
		if n.terminal || !n.expanded {
			return plan
		}

		best := noChild
		maxMean := math.Inf(-1)
		for _, child := range n.children {
			c := &t.nodes[child]
			if c.visits == 0 {
				continue
			}
			if mean := c.rewards / float64(c.visits); best == noChild || mean > maxMean {
				best = child
				maxMean = mean
			}
		}
		if best == noChild {
			return plan
		}
		plan = append(plan, t.nodes[best].action)
		current = best
	}
}

func (t *tree) size() int {
	return len(t.nodes)
}
