package game

import (
	"fmt"
	"halite/utils"
)

// Action is what a single ship does in a turn.
type Action int

const (
	North Action = iota
	South
	East
	West
	Stay      // Stay in place and harvest
	Produce   // Ask the owner's shipyard for a new ship
	Construct // Reserved, turns the cell into a dropoff in the real engine
)

// NumSearchActions is the size of the label set expanded by the search.
const NumSearchActions = 5

// SearchActions are the labels a search tree expands, in expansion order.
var SearchActions = [NumSearchActions]Action{North, South, East, West, Stay}

var Directions = []Action{North, South, East, West}

var actionTokens = []string{"n", "s", "e", "w", "o", "g", "c"}

var offsets = []Position{
	North: {X: 0, Y: -1},
	South: {X: 0, Y: 1},
	East:  {X: 1, Y: 0},
	West:  {X: -1, Y: 0},
}

// IsMove reports whether the action moves the ship to a neighbouring cell.
func (a Action) IsMove() bool {
	return a >= North && a <= West
}

func (a Action) Offset() Position {
	if !a.IsMove() {
		return Position{}
	}
	return offsets[a]
}

func (a Action) String() string {
	if a < North || int(a) >= len(actionTokens) {
		return fmt.Sprintf("Action(%d)", int(a))
	}
	return actionTokens[a]
}

// ParseAction decodes a direction token of a move command.
func ParseAction(token string) (Action, error) {
	i := utils.FindIndex(actionTokens[:Stay+1], token)
	if i < 0 {
		return 0, fmt.Errorf("unknown direction %q", token)
	}
	return Action(i), nil
}
