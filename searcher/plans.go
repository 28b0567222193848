package searcher

import (
	"halite/game"

	"golang.org/x/exp/slices"
)

// Plans is the table of each ship's best known action sequence, indexed by
// depth from the searched turn. One table is shared by every tree of a search:
// rollouts read it and it is only rewritten once all rollouts of an iteration
// are done.
type Plans struct {
	byShip map[int][]game.Action
}

func NewPlans() *Plans {
	return &Plans{byShip: map[int][]game.Action{}}
}

func (p *Plans) Set(ship int, plan []game.Action) {
	p.byShip[ship] = plan
}

// Get returns a ship's plan, nil when the ship has none.
func (p *Plans) Get(ship int) []game.Action {
	return p.byShip[ship]
}

// First returns the action a ship should take this turn.
func (p *Plans) First(ship int) (game.Action, bool) {
	plan := p.byShip[ship]
	if len(plan) == 0 {
		return game.Stay, false
	}
	return plan[0], true
}

// Ships returns the ids with a plan entry in ascending order.
func (p *Plans) Ships() []int {
	ids := make([]int, 0, len(p.byShip))
	for id := range p.byShip {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
