package game

import (
	"golang.org/x/exp/slices"
)

// Cell is one square of the grid.
type Cell struct {
	Halite int `json:"halite"`
}

// Ship is a unit owned by a player.
type Ship struct {
	ID       int `json:"id"`
	Owner    int `json:"owner"`
	Position `json:"position"`
	Halite   int `json:"halite"` // Cargo
}

func (s *Ship) IsFull(capacity int) bool {
	return s.Halite >= capacity
}

// Player holds a bank and the structures halite can be deposited at.
type Player struct {
	ID       int        `json:"id"`
	Halite   int        `json:"halite"` // Bank
	Shipyard Position   `json:"shipyard"`
	Dropoffs []Position `json:"dropoffs,omitempty"`
}

// IsDepot reports whether the player can deposit cargo at p.
func (p *Player) IsDepot(pos Position) bool {
	return p.Shipyard == pos || slices.Contains(p.Dropoffs, pos)
}

// State is a snapshot of the world at the start of a turn. The search treats
// a snapshot as read-only and advances copies of it.
type State struct {
	Turn       int
	Width      int
	Height     int
	Cells      []Cell // Row-major, indexed by y*Width+x
	Players    map[int]*Player
	Ships      map[int]*Ship
	Constants  Constants
	NextShipID int // Id handed to the next spawned ship
}

// NewState returns an empty grid with no players.
func NewState(width, height int, constants Constants) *State {
	if width <= 0 || height <= 0 {
		panic("grid dimensions must be positive")
	}
	return &State{
		Width:     width,
		Height:    height,
		Cells:     make([]Cell, width*height),
		Players:   map[int]*Player{},
		Ships:     map[int]*Ship{},
		Constants: constants,
	}
}

func (s *State) Cell(p Position) *Cell {
	p = s.Normalize(p)
	return &s.Cells[p.Y*s.Width+p.X]
}

func (s *State) AddPlayer(id int, shipyard Position) *Player {
	player := &Player{ID: id, Shipyard: s.Normalize(shipyard)}
	s.Players[id] = player
	return player
}

// AddShip places a ship on the grid, replacing any ship with the same id.
func (s *State) AddShip(owner, id int, pos Position, halite int) *Ship {
	ship := &Ship{ID: id, Owner: owner, Position: s.Normalize(pos), Halite: halite}
	s.Ships[id] = ship
	if id >= s.NextShipID {
		s.NextShipID = id + 1
	}
	return ship
}

// RemoveShip deletes a ship; unknown ids are ignored.
func (s *State) RemoveShip(id int) {
	delete(s.Ships, id)
}

// ShipIDs returns every ship id in ascending order.
func (s *State) ShipIDs() []int {
	ids := make([]int, 0, len(s.Ships))
	for id := range s.Ships {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ShipsOf returns the ids of a player's ships in ascending order.
func (s *State) ShipsOf(player int) []int {
	ids := []int{}
	for id, ship := range s.Ships {
		if ship.Owner == player {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

func (s *State) PlayerIDs() []int {
	ids := make([]int, 0, len(s.Players))
	for id := range s.Players {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ShipAt returns the ship on a cell, if any.
func (s *State) ShipAt(p Position) (*Ship, bool) {
	p = s.Normalize(p)
	for _, ship := range s.Ships {
		if ship.Position == p {
			return ship, true
		}
	}
	return nil, false
}

// IsTerminal reports whether the game is over.
func (s *State) IsTerminal() bool {
	return s.Turn >= s.Constants.MaxTurns
}

// Copy returns a deep copy that shares nothing with the receiver.
func (s *State) Copy() *State {
	c := &State{
		Turn:       s.Turn,
		Width:      s.Width,
		Height:     s.Height,
		Cells:      slices.Clone(s.Cells),
		Players:    make(map[int]*Player, len(s.Players)),
		Ships:      make(map[int]*Ship, len(s.Ships)),
		Constants:  s.Constants,
		NextShipID: s.NextShipID,
	}
	for id, player := range s.Players {
		p := *player
		p.Dropoffs = slices.Clone(player.Dropoffs)
		c.Players[id] = &p
	}
	for id, ship := range s.Ships {
		sh := *ship
		c.Ships[id] = &sh
	}
	return c
}
