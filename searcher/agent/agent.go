package agent

import (
	"context"
	"halite/experiments/metrics"
	"halite/game"
	"halite/meta"
	"time"

	"golang.org/x/exp/rand"
)

type Agent interface {
	// FindCommands returns a player's commands for the turn and performance metrics (if collected) from the search
	FindCommands(ctx context.Context, state *game.State, player int) ([]game.Command, metrics.SearchMetric)
}

// SpawnPolicy decides when a player asks for a new ship.
type SpawnPolicy struct {
	LastTurn int // No spawns after this turn
	Reserve  int // Halite kept in the bank on top of the ship cost
}

func DefaultSpawnPolicy() SpawnPolicy {
	return SpawnPolicy{LastTurn: meta.SPAWN_TURN_LIMIT}
}

// ShouldSpawn reports whether a new ship can be produced without waiting on a
// busy shipyard, given the commands already chosen for the turn.
func (p SpawnPolicy) ShouldSpawn(state *game.State, player int, commands []game.Command) bool {
	me, ok := state.Players[player]
	if !ok {
		return false
	}
	if state.Turn > p.LastTurn || me.Halite < state.Constants.ShipCost+p.Reserve {
		return false
	}
	if _, occupied := state.ShipAt(me.Shipyard); occupied {
		return false
	}
	for _, command := range commands {
		if command.Type != game.MoveCommand {
			continue
		}
		ship, ok := state.Ships[command.ShipID]
		if ok && state.Step(ship.Position, command.Action) == me.Shipyard {
			return false
		}
	}
	return true
}

type Option func(c *config)

type config struct {
	spawn    SpawnPolicy
	allShips bool
	rng      *rand.Rand
}

func newConfig(options []Option) config {
	c := config{
		spawn: DefaultSpawnPolicy(),
		rng:   rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
	}
	for _, option := range options {
		option(&c)
	}
	return c
}

func WithSpawnPolicy(policy SpawnPolicy) Option {
	return func(c *config) {
		c.spawn = policy
	}
}

// WithAllShips searches opponent ships too instead of letting them stay.
func WithAllShips() Option {
	return func(c *config) {
		c.allShips = true
	}
}

func WithSeed(seed uint64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

func randomDirection(rng *rand.Rand) game.Action {
	return game.Directions[rng.Intn(len(game.Directions))]
}
