package searcher

import (
	"context"
	"halite/experiments/metrics"
	"halite/game"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

// MCTS searches one tree per ship. Every iteration runs one joint rollout per
// search action, shared by all trees.
type MCTS struct {
	duration      time.Duration
	episodes      int
	cutoff        int
	exploration   float64
	penalty       float64 // Weight of cargo lost in a collision
	depositWeight float64 // Weight of cargo banked
	scale         float64 // Reward multiplier, 0 for 1/MaxHalite
	policy        RolloutPolicy
	rng           *rand.Rand
	clock         func() time.Time
	metrics       metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithExploration(c float64) Option {
	return func(m *MCTS) {
		if c >= 0 {
			m.exploration = c
		}
	}
}

func WithDestructionPenalty(weight float64) Option {
	return func(m *MCTS) {
		if weight >= 0 {
			m.penalty = weight
		}
	}
}

func WithDepositWeight(weight float64) Option {
	return func(m *MCTS) {
		if weight >= 0 {
			m.depositWeight = weight
		}
	}
}

func WithRewardScale(scale float64) Option {
	return func(m *MCTS) {
		if scale > 0 {
			m.scale = scale
		}
	}
}

func WithRolloutPolicy(policy RolloutPolicy) Option {
	return func(m *MCTS) {
		if policy != nil {
			m.policy = policy
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func withClock(clock func() time.Time) Option {
	return func(m *MCTS) {
		m.clock = clock
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		cutoff:      DefaultCutoff,
		exploration: DefaultExploration,
		penalty:     1,
		policy:      StayPolicy(),
		rng:         rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		clock:       time.Now,
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	if m.episodes > 0 && m.duration > 0 {
		panic("Must specify either search episodes or duration, not both")
	}
	return m
}

// Settings are the tuning values a search runs with.
type Settings struct {
	Duration      time.Duration
	Episodes      int
	Cutoff        int
	Exploration   float64
	Penalty       float64
	DepositWeight float64
}

func (m *MCTS) Settings() Settings {
	return Settings{
		Duration:      m.duration,
		Episodes:      m.episodes,
		Cutoff:        m.cutoff,
		Exploration:   m.exploration,
		Penalty:       m.penalty,
		DepositWeight: m.depositWeight,
	}
}

type selection struct {
	leaf     int32
	path     []game.Action
	expanded bool
}

// Simulate searches the given ships of a snapshot until the budget runs out
// and returns every ship's best plan. The snapshot is never modified. A
// deadline on ctx caps the search in addition to the configured budget.
func (m *MCTS) Simulate(ctx context.Context, state *game.State, ships []int) (*Plans, metrics.SearchMetric) {
	horizon := max(0, min(state.Constants.MaxTurns-state.Turn, m.cutoff))
	scale := m.scale
	if scale == 0 {
		scale = 1
		if state.Constants.MaxHalite > 0 {
			scale = 1 / float64(state.Constants.MaxHalite)
		}
	}

	trees := make([]*tree, 0, len(ships))
	for _, id := range ships {
		if _, ok := state.Ships[id]; !ok {
			log.Warn().Int("ship", id).Msg("skipping search for unknown ship")
			continue
		}
		trees = append(trees, newTree(id, horizon, m.exploration, m.rng))
	}
	plans := NewPlans()

	m.metrics.Start(len(trees), horizon)
	b := newBudget(m.episodes, m.deadline(ctx), m.clock)
	for len(trees) > 0 && ctx.Err() == nil && b.admit() {
		m.iterate(state, trees, plans, horizon, scale)
		b.record()
		m.metrics.AddEpisode()
	}
	for _, t := range trees {
		m.metrics.AddNodes(t.size())
	}
	metric := m.metrics.Complete()

	log.Info().Int("turn", state.Turn).Int("ships", len(trees)).Int("iterations", b.iterations).
		Msg("search complete")
	return plans, metric
}

func (m *MCTS) deadline(ctx context.Context) time.Time {
	var deadline time.Time
	if m.duration > 0 {
		deadline = m.clock().Add(m.duration)
	}
	if d, ok := ctx.Deadline(); ok && (deadline.IsZero() || d.Before(deadline)) {
		deadline = d
	}
	return deadline
}

// iterate runs every tree's selection first, then one joint rollout per search
// action, and refreshes the plans last.
func (m *MCTS) iterate(state *game.State, trees []*tree, plans *Plans, horizon int, scale float64) {
	selections := make([]selection, len(trees))
	for i, t := range trees {
		leaf, path, expanded := t.selectThenExpand()
		selections[i] = selection{leaf: leaf, path: path, expanded: expanded}
	}

	joint := make(map[int][]game.Action, len(trees))
	for label, action := range game.SearchActions {
		for i, t := range trees {
			joint[t.ship] = jointPlan(selections[i], action, plans.Get(t.ship))
		}

		rewards := m.rollout(state, joint, horizon)
		m.metrics.AddRollout()

		for i, t := range trees {
			node := selections[i].leaf
			if selections[i].expanded {
				node = t.child(node, label)
			}
			t.backup(node, rewards[t.ship]*scale)
		}
	}

	for _, t := range trees {
		plans.Set(t.ship, t.bestPlan())
	}
}

// jointPlan is the path to a ship's selected node, followed by the candidate
// action when the node was just expanded, followed by the ship's best plan for
// the remaining depths.
func jointPlan(sel selection, action game.Action, best []game.Action) []game.Action {
	plan := make([]game.Action, 0, max(len(best), len(sel.path)+1))
	plan = append(plan, sel.path...)
	if sel.expanded {
		plan = append(plan, action)
	}
	if len(best) > len(plan) {
		plan = append(plan, best[len(plan):]...)
	}
	return plan
}

// rollout plays horizon turns on a copy of the snapshot and returns the
// cumulative reward of every planned ship.
func (m *MCTS) rollout(state *game.State, plans map[int][]game.Action, horizon int) map[int]float64 {
	sim := state.Copy()
	rewards := make(map[int]float64, len(plans))
	for depth := 0; depth < horizon; depth++ {
		orders := game.Orders{Actions: make(map[int]game.Action, len(sim.Ships))}
		for id, ship := range sim.Ships {
			if plan := plans[id]; depth < len(plan) {
				orders.Actions[id] = plan[depth]
			} else {
				orders.Actions[id] = m.policy.Act(sim, ship)
			}
		}

		outcome := sim.SimulateTurn(orders)
		for id := range plans {
			rewards[id] += float64(outcome.Rewards[id]) +
				m.depositWeight*float64(outcome.Deposited[id]) -
				m.penalty*float64(outcome.Destroyed[id])
		}
	}
	return rewards
}
