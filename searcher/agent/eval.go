package agent

import (
	"context"
	"halite/experiments/metrics"
	"halite/game"
	"halite/searcher"

	"github.com/rs/zerolog/log"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
	config
}

// NewEvaluationAgent returns an agent that plays the first action of every
// ship's best plan.
func NewEvaluationAgent(mcts *searcher.MCTS, options ...Option) Agent {
	return &evaluationAgent{mcts: mcts, config: newConfig(options)}
}

func (a *evaluationAgent) FindCommands(ctx context.Context, state *game.State, player int) ([]game.Command, metrics.SearchMetric) {
	ships := state.ShipsOf(player)
	searched := ships
	if a.allShips {
		searched = state.ShipIDs()
	}

	plans, metric := a.mcts.Simulate(ctx, state, searched)

	commands := make([]game.Command, 0, len(ships)+1)
	for _, id := range ships {
		action, ok := plans.First(id)
		if !ok {
			action = randomDirection(a.rng)
			log.Debug().Int("ship", id).Stringer("action", action).Msg("no plan found, moving at random")
		}
		commands = append(commands, game.Move(id, action))
	}
	if a.spawn.ShouldSpawn(state, player, commands) {
		commands = append(commands, game.Spawn())
	}
	return commands, metric
}
