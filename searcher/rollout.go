package searcher

import (
	"halite/game"
)

// RolloutPolicy picks a ship's action once the ship has run past its plan.
type RolloutPolicy interface {
	Act(state *game.State, ship *game.Ship) game.Action
}

type stayPolicy struct{}

// StayPolicy keeps ships in place.
func StayPolicy() RolloutPolicy {
	return stayPolicy{}
}

func (stayPolicy) Act(*game.State, *game.Ship) game.Action {
	return game.Stay
}

type greedyPolicy struct{}

// GreedyPolicy heads home when nearly full, mines cells worth at least a tenth
// of the cargo capacity and otherwise moves to the richest neighbour.
func GreedyPolicy() RolloutPolicy {
	return greedyPolicy{}
}

func (greedyPolicy) Act(state *game.State, ship *game.Ship) game.Action {
	capacity := state.Constants.MaxHalite
	if ship.Halite*10 >= capacity*9 {
		if depot, ok := nearestDepot(state, ship); ok {
			if directions := state.Toward(ship.Position, depot); len(directions) > 0 {
				return directions[0]
			}
		}
		return game.Stay
	}

	here := state.Cell(ship.Position).Halite
	if here*10 >= capacity {
		return game.Stay
	}
	best, most := game.Stay, here
	for _, direction := range game.Directions {
		if h := state.Cell(state.Step(ship.Position, direction)).Halite; h > most {
			best, most = direction, h
		}
	}
	return best
}

func nearestDepot(state *game.State, ship *game.Ship) (game.Position, bool) {
	owner, ok := state.Players[ship.Owner]
	if !ok {
		return game.Position{}, false
	}
	depot := owner.Shipyard
	for _, dropoff := range owner.Dropoffs {
		if state.Distance(ship.Position, dropoff) < state.Distance(ship.Position, depot) {
			depot = dropoff
		}
	}
	return depot, true
}

// ParseRolloutPolicy maps a configured policy name to a policy.
func ParseRolloutPolicy(name string) (RolloutPolicy, bool) {
	switch name {
	case "", "stay":
		return StayPolicy(), true
	case "greedy":
		return GreedyPolicy(), true
	default:
		return nil, false
	}
}
