package game

import (
	"halite/utils"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"
)

// Outcome records what happened during one turn.
type Outcome struct {
	Rewards   map[int]int // Ship id -> halite extracted this turn
	Destroyed map[int]int // Ship id -> cargo lost in a collision
	Deposited map[int]int // Ship id -> halite banked this turn
	Spawned   []int       // Ids of ships created this turn that survived its collisions
}

// Play applies orders to a copy of the state and returns the copy.
func (s *State) Play(orders Orders) (*State, Outcome) {
	next := s.Copy()
	outcome := next.Advance(orders)
	return next, outcome
}

// Advance applies one turn of orders in place. Ships without an order stay and
// harvest. Ships act in ascending id order, spawns follow in ascending player
// order, then every cell claimed by more than one ship destroys all of them.
// Orders degraded by the rules are logged as warnings.
func (s *State) Advance(orders Orders) Outcome {
	return s.advance(orders, zerolog.WarnLevel)
}

// SimulateTurn is Advance for hypothetical turns. Degraded orders are logged at
// debug level.
func (s *State) SimulateTurn(orders Orders) Outcome {
	return s.advance(orders, zerolog.DebugLevel)
}

func (s *State) advance(orders Orders, level zerolog.Level) Outcome {
	outcome := Outcome{
		Rewards:   make(map[int]int, len(s.Ships)),
		Destroyed: map[int]int{},
		Deposited: map[int]int{},
	}

	for id := range orders.Actions {
		if _, ok := s.Ships[id]; !ok {
			log.Debug().Int("ship", id).Msg("ignoring order for unknown ship")
		}
	}

	spawns := slices.Clone(orders.Spawns)
	arrivals := make(map[Position][]int, len(s.Ships))
	for _, id := range s.ShipIDs() {
		ship := s.Ships[id]
		action, ok := orders.Actions[id]
		if !ok {
			action = Stay
		}

		switch {
		case action.IsMove():
			s.move(ship, action, &outcome, level)
		case action == Produce:
			spawns = append(spawns, ship.Owner)
			s.harvest(ship, &outcome)
		case action == Construct:
			outcome.Rewards[id] = 0
		default:
			s.harvest(ship, &outcome)
		}
		arrivals[ship.Position] = append(arrivals[ship.Position], id)
	}

	slices.Sort(spawns)
	for _, pid := range slices.Compact(spawns) {
		if ship := s.spawn(pid, level); ship != nil {
			outcome.Spawned = append(outcome.Spawned, ship.ID)
			arrivals[ship.Position] = append(arrivals[ship.Position], ship.ID)
		}
	}

	for _, ids := range arrivals {
		if len(ids) < 2 {
			continue
		}
		for _, id := range ids {
			outcome.Destroyed[id] = s.Ships[id].Halite
			s.RemoveShip(id)
		}
	}
	if len(outcome.Destroyed) > 0 {
		outcome.Spawned = slices.DeleteFunc(outcome.Spawned, func(id int) bool {
			_, destroyed := outcome.Destroyed[id]
			return destroyed
		})
	}

	s.Turn++
	return outcome
}

func (s *State) harvest(ship *Ship, outcome *Outcome) {
	cell := s.Cell(ship.Position)
	extracted := utils.RoundDiv(cell.Halite, s.Constants.ExtractRatio)
	extracted = min(extracted, s.Constants.MaxHalite-ship.Halite)
	if extracted < 0 {
		extracted = 0
	}
	ship.Halite += extracted
	cell.Halite -= extracted
	outcome.Rewards[ship.ID] = extracted
}

func (s *State) move(ship *Ship, direction Action, outcome *Outcome, level zerolog.Level) {
	owner := s.Players[ship.Owner]

	cost := 0
	if owner == nil || !owner.IsDepot(ship.Position) {
		cost = utils.RoundDiv(s.Cell(ship.Position).Halite, s.Constants.MoveCostRatio)
	}
	if ship.Halite < cost {
		log.WithLevel(level).Int("ship", ship.ID).Int("cargo", ship.Halite).Int("cost", cost).
			Msg("insufficient cargo to move, harvesting instead")
		s.harvest(ship, outcome)
		return
	}

	ship.Halite -= cost
	ship.Position = s.Step(ship.Position, direction)
	outcome.Rewards[ship.ID] = 0

	if owner != nil && owner.IsDepot(ship.Position) && ship.Halite > 0 {
		owner.Halite += ship.Halite
		outcome.Deposited[ship.ID] = ship.Halite
		ship.Halite = 0
	}
}

func (s *State) spawn(pid int, level zerolog.Level) *Ship {
	player, ok := s.Players[pid]
	if !ok {
		log.Debug().Int("player", pid).Msg("ignoring spawn for unknown player")
		return nil
	}
	if player.Halite < s.Constants.ShipCost {
		log.WithLevel(level).Int("player", pid).Int("bank", player.Halite).Int("cost", s.Constants.ShipCost).
			Msg("insufficient halite to spawn a ship")
		return nil
	}
	player.Halite -= s.Constants.ShipCost
	return s.AddShip(pid, s.NextShipID, player.Shipyard, 0)
}
