package agent

import (
	"context"
	"halite/experiments/metrics"
	"halite/game"
)

type randomAgent struct {
	config
}

// NewRandomAgent returns an agent that mines cells worth at least a tenth of
// the cargo capacity and wanders at random otherwise.
func NewRandomAgent(options ...Option) Agent {
	return &randomAgent{config: newConfig(options)}
}

func (a *randomAgent) FindCommands(_ context.Context, state *game.State, player int) ([]game.Command, metrics.SearchMetric) {
	ships := state.ShipsOf(player)
	commands := make([]game.Command, 0, len(ships)+1)
	for _, id := range ships {
		ship := state.Ships[id]
		action := game.Stay
		if state.Cell(ship.Position).Halite*10 < state.Constants.MaxHalite || ship.IsFull(state.Constants.MaxHalite) {
			action = randomDirection(a.rng)
		}
		commands = append(commands, game.Move(id, action))
	}
	if a.spawn.ShouldSpawn(state, player, commands) {
		commands = append(commands, game.Spawn())
	}
	return commands, metrics.SearchMetric{}
}
