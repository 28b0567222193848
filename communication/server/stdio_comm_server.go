package server

import (
	"bufio"
	"encoding/json"
	"fmt"
	"halite/game"
	"io"
	"strings"
)

// ServerCommunicator speaks the engine's side of the line protocol to one bot.
type ServerCommunicator struct {
	r *bufio.Reader
	w *bufio.Writer
}

// NewServerCommunicator initializes and returns a new ServerCommunicator that
// writes to the bot's input and reads from its output.
func NewServerCommunicator(botOutput io.Reader, botInput io.Writer) *ServerCommunicator {
	return &ServerCommunicator{
		r: bufio.NewReader(botOutput),
		w: bufio.NewWriter(botInput),
	}
}

// SendInit writes the constants, the players and the full grid.
func (sc *ServerCommunicator) SendInit(state *game.State, player int) error {
	constants, err := json.Marshal(state.Constants)
	if err != nil {
		return fmt.Errorf("failed to encode constants: %w", err)
	}
	fmt.Fprintf(sc.w, "%s\n", constants)
	fmt.Fprintf(sc.w, "%d %d\n", len(state.Players), player)
	for _, id := range state.PlayerIDs() {
		shipyard := state.Players[id].Shipyard
		fmt.Fprintf(sc.w, "%d %d %d\n", id, shipyard.X, shipyard.Y)
	}
	fmt.Fprintf(sc.w, "%d %d\n", state.Width, state.Height)
	for y := 0; y < state.Height; y++ {
		row := make([]string, state.Width)
		for x := range row {
			row[x] = fmt.Sprint(state.Cell(game.Position{X: x, Y: y}).Halite)
		}
		fmt.Fprintln(sc.w, strings.Join(row, " "))
	}
	return sc.flush()
}

// SendFrame writes the start of the next turn along with the cells that
// changed since the previous frame.
func (sc *ServerCommunicator) SendFrame(state *game.State, changed []game.Position) error {
	fmt.Fprintf(sc.w, "%d\n", state.Turn+1)
	for _, pid := range state.PlayerIDs() {
		player := state.Players[pid]
		ships := state.ShipsOf(pid)
		fmt.Fprintf(sc.w, "%d %d %d %d\n", pid, len(ships), len(player.Dropoffs), player.Halite)
		for _, id := range ships {
			ship := state.Ships[id]
			fmt.Fprintf(sc.w, "%d %d %d %d\n", id, ship.X, ship.Y, ship.Halite)
		}
		for _, dropoff := range player.Dropoffs {
			fmt.Fprintf(sc.w, "%d %d %d\n", dropoffID(state, dropoff), dropoff.X, dropoff.Y)
		}
	}
	fmt.Fprintf(sc.w, "%d\n", len(changed))
	for _, p := range changed {
		fmt.Fprintf(sc.w, "%d %d %d\n", p.X, p.Y, state.Cell(p).Halite)
	}
	return sc.flush()
}

// dropoffID is the index of the dropoff's cell, so the id survives any
// reordering of a player's dropoffs between frames.
func dropoffID(state *game.State, p game.Position) int {
	p = state.Normalize(p)
	return p.Y*state.Width + p.X
}

// ReceiveName reads the name a bot announces after initialisation.
func (sc *ServerCommunicator) ReceiveName() (string, error) {
	line, err := sc.r.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read bot name: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// ReceiveCommands reads one turn's command line.
func (sc *ServerCommunicator) ReceiveCommands() ([]game.Command, error) {
	line, err := sc.r.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read commands: %w", err)
	}
	return game.ParseCommands(line)
}

func (sc *ServerCommunicator) flush() error {
	if err := sc.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush frame: %w", err)
	}
	return nil
}
