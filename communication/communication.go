package communication

import "halite/game"

// Communicator is an interface that abstracts the connection to the game engine.
type Communicator interface {
	// Init reads the game start and returns the initial state and the id of the controlled player
	Init() (*game.State, int, error)
	// Ready announces the bot once initialisation is done
	Ready(name string) error
	// Update reads the next turn's frame into the state
	Update(state *game.State) error
	// Submit sends the commands of the current turn
	Submit(commands []game.Command) error
}
