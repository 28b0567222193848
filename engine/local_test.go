package engine

import (
	"context"
	"halite/experiments/metrics"
	"halite/game"
	"halite/replay"
	"halite/searcher/agent"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type scriptedAgent struct {
	commands  []game.Command
	deadlines []bool
}

func (a *scriptedAgent) FindCommands(ctx context.Context, state *game.State, player int) ([]game.Command, metrics.SearchMetric) {
	_, ok := ctx.Deadline()
	a.deadlines = append(a.deadlines, ok)
	// Tampering with the view must not leak into the match
	state.Players[player].Halite += 1_000_000
	return append([]game.Command(nil), a.commands...), metrics.SearchMetric{Episodes: 1}
}

func newMatchState(maxTurns int) *game.State {
	constants := game.StandardConstants()
	constants.MaxTurns = maxTurns
	s := game.NewState(8, 8, constants)
	s.AddPlayer(0, game.Position{X: 0, Y: 0})
	s.AddPlayer(1, game.Position{X: 4, Y: 4})
	s.AddShip(0, 1, game.Position{X: 2, Y: 2}, 0)
	s.AddShip(1, 2, game.Position{X: 6, Y: 6}, 0)
	return s
}

func TestLocalEngineRun(t *testing.T) {
	t.Run("playing a generated map until the turn limit", func(t *testing.T) {
		constants := game.StandardConstants()
		constants.MaxTurns = 6
		state, err := game.GenerateMap(8, 8, 2, 7, constants)
		require.NoError(t, err)
		agents := []agent.Agent{agent.NewRandomAgent(agent.WithSeed(1)), agent.NewRandomAgent(agent.WithSeed(2))}
		e := NewLocalEngine(agents, state, WithTurnBudget(50*time.Millisecond))

		winner, gameMetric, moveMetrics := e.Run(context.Background())

		require.Equal(t, 6, gameMetric.Turns)
		require.True(t, e.State.IsTerminal())
		require.Len(t, moveMetrics, 12, "Should record a move per player per turn")
		require.Equal(t, e.State.Winner(), winner)
		require.Equal(t, winner, gameMetric.Winner)
		require.Len(t, gameMetric.Scores, 2)
		_, err = uuid.Parse(gameMetric.Match)
		require.NoError(t, err, "Should identify the match with a uuid")
	})

	t.Run("dropping commands for ships of other players", func(t *testing.T) {
		state := newMatchState(1)
		rogue := &scriptedAgent{commands: []game.Command{game.Move(2, game.North), game.Move(1, game.East)}}
		e := NewLocalEngine([]agent.Agent{rogue, &scriptedAgent{}}, state)

		e.Run(context.Background())

		require.Equal(t, game.Position{X: 3, Y: 2}, e.State.Ships[1].Position)
		require.Equal(t, game.Position{X: 6, Y: 6}, e.State.Ships[2].Position, "Should ignore the foreign order")
		require.Equal(t, 0, e.State.Players[0].Halite, "Should hand agents a copy of the state")
		require.Equal(t, []bool{true}, rogue.deadlines, "Should give the agent a deadline")
	})

	t.Run("recording a replay", func(t *testing.T) {
		dir := t.TempDir()
		e := NewLocalEngine([]agent.Agent{&scriptedAgent{}, &scriptedAgent{}}, newMatchState(3), WithReplay(dir), WithMatchID("m1"))

		e.Run(context.Background())

		frames, err := replay.Read(filepath.Join(dir, "m1.jsonl.zst"))
		require.NoError(t, err)
		require.Len(t, frames, 3)
		require.Equal(t, []int{0, 1, 2}, []int{frames[0].Turn, frames[1].Turn, frames[2].Turn})
	})

	t.Run("stopping when the context is cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		e := NewLocalEngine([]agent.Agent{&scriptedAgent{}, &scriptedAgent{}}, newMatchState(10))

		_, gameMetric, moveMetrics := e.Run(ctx)

		require.Equal(t, 0, gameMetric.Turns)
		require.Empty(t, moveMetrics)
	})
}

func TestNewLocalEngine(t *testing.T) {
	t.Run("rejecting a mismatched number of agents", func(t *testing.T) {
		require.Panics(t, func() {
			NewLocalEngine([]agent.Agent{&scriptedAgent{}}, newMatchState(1))
		})
	})

	t.Run("assigning agents in player order", func(t *testing.T) {
		first, second := &scriptedAgent{}, &scriptedAgent{}
		e := NewLocalEngine([]agent.Agent{first, second}, newMatchState(1))

		require.Same(t, first, e.Agents[0])
		require.Same(t, second, e.Agents[1])
	})
}
