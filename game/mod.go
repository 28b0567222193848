package game

import "halite/utils"

// Position is a cell coordinate on the toroidal grid.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Normalize wraps a position onto the grid.
func (s *State) Normalize(p Position) Position {
	return Position{X: utils.PosMod(p.X, s.Width), Y: utils.PosMod(p.Y, s.Height)}
}

// Step returns the cell reached from p by a directional action. Non-directional
// actions leave the position unchanged.
func (s *State) Step(p Position, a Action) Position {
	offset := a.Offset()
	return s.Normalize(Position{X: p.X + offset.X, Y: p.Y + offset.Y})
}

// Distance is the Manhattan distance between two cells with wrap-around.
func (s *State) Distance(a, b Position) int {
	dx := utils.PosMod(a.X-b.X, s.Width)
	dy := utils.PosMod(a.Y-b.Y, s.Height)
	return min(dx, s.Width-dx) + min(dy, s.Height-dy)
}

// Toward returns the directions that shorten the distance from src to dst,
// horizontal first. It is empty when src equals dst.
func (s *State) Toward(src, dst Position) []Action {
	var directions []Action
	if dx := utils.PosMod(dst.X-src.X, s.Width); dx != 0 {
		if dx <= s.Width/2 {
			directions = append(directions, East)
		} else {
			directions = append(directions, West)
		}
	}
	if dy := utils.PosMod(dst.Y-src.Y, s.Height); dy != 0 {
		if dy <= s.Height/2 {
			directions = append(directions, South)
		} else {
			directions = append(directions, North)
		}
	}
	return directions
}
