package client

import (
	"bufio"
	"encoding/json"
	"fmt"
	"halite/game"
	"io"
	"strings"
)

// ClientCommunicator speaks the engine's line protocol from the bot side.
type ClientCommunicator struct {
	r *bufio.Reader
	w *bufio.Writer
}

// NewClientCommunicator initializes and returns a new ClientCommunicator,
// usually over stdin and stdout.
func NewClientCommunicator(r io.Reader, w io.Writer) *ClientCommunicator {
	return &ClientCommunicator{
		r: bufio.NewReader(r),
		w: bufio.NewWriter(w),
	}
}

func (cc *ClientCommunicator) Init() (*game.State, int, error) {
	line, err := cc.r.ReadString('\n')
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read constants: %w", err)
	}
	constants := game.StandardConstants()
	if err := json.Unmarshal([]byte(strings.TrimSpace(line)), &constants); err != nil {
		return nil, 0, fmt.Errorf("failed to decode constants: %w", err)
	}

	var numPlayers, me int
	if err := cc.scan(&numPlayers, &me); err != nil {
		return nil, 0, fmt.Errorf("failed to read players header: %w", err)
	}
	type shipyard struct{ id, x, y int }
	shipyards := make([]shipyard, numPlayers)
	for i := range shipyards {
		if err := cc.scan(&shipyards[i].id, &shipyards[i].x, &shipyards[i].y); err != nil {
			return nil, 0, fmt.Errorf("failed to read player %d: %w", i, err)
		}
	}

	var width, height int
	if err := cc.scan(&width, &height); err != nil {
		return nil, 0, fmt.Errorf("failed to read map size: %w", err)
	}
	if width <= 0 || height <= 0 {
		return nil, 0, fmt.Errorf("invalid map size %dx%d", width, height)
	}
	state := game.NewState(width, height, constants)
	for i := range state.Cells {
		if err := cc.scan(&state.Cells[i].Halite); err != nil {
			return nil, 0, fmt.Errorf("failed to read cell %d: %w", i, err)
		}
	}
	for _, s := range shipyards {
		state.AddPlayer(s.id, game.Position{X: s.x, Y: s.y})
	}
	return state, me, nil
}

func (cc *ClientCommunicator) Ready(name string) error {
	return cc.writeLine(name)
}

// Update replaces banks, ships and dropoffs with the frame's and applies the
// cell updates. Engine turns are 1-based, state turns count completed turns.
func (cc *ClientCommunicator) Update(state *game.State) error {
	var turn int
	if err := cc.scan(&turn); err != nil {
		return fmt.Errorf("failed to read turn number: %w", err)
	}
	state.Turn = turn - 1

	for id := range state.Ships {
		state.RemoveShip(id)
	}
	for range state.Players {
		var pid, numShips, numDropoffs, halite int
		if err := cc.scan(&pid, &numShips, &numDropoffs, &halite); err != nil {
			return fmt.Errorf("failed to read player header: %w", err)
		}
		player, ok := state.Players[pid]
		if !ok {
			return fmt.Errorf("frame references unknown player %d", pid)
		}
		player.Halite = halite

		for i := 0; i < numShips; i++ {
			var id, x, y, cargo int
			if err := cc.scan(&id, &x, &y, &cargo); err != nil {
				return fmt.Errorf("failed to read ship of player %d: %w", pid, err)
			}
			state.AddShip(pid, id, game.Position{X: x, Y: y}, cargo)
		}

		player.Dropoffs = player.Dropoffs[:0]
		for i := 0; i < numDropoffs; i++ {
			var id, x, y int
			if err := cc.scan(&id, &x, &y); err != nil {
				return fmt.Errorf("failed to read dropoff of player %d: %w", pid, err)
			}
			player.Dropoffs = append(player.Dropoffs, game.Position{X: x, Y: y})
		}
	}

	var updates int
	if err := cc.scan(&updates); err != nil {
		return fmt.Errorf("failed to read cell update count: %w", err)
	}
	for i := 0; i < updates; i++ {
		var x, y, halite int
		if err := cc.scan(&x, &y, &halite); err != nil {
			return fmt.Errorf("failed to read cell update: %w", err)
		}
		state.Cell(game.Position{X: x, Y: y}).Halite = halite
	}
	return nil
}

func (cc *ClientCommunicator) Submit(commands []game.Command) error {
	return cc.writeLine(game.FormatCommands(commands))
}

func (cc *ClientCommunicator) scan(values ...any) error {
	_, err := fmt.Fscan(cc.r, values...)
	return err
}

func (cc *ClientCommunicator) writeLine(line string) error {
	if _, err := cc.w.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("failed to write line: %w", err)
	}
	if err := cc.w.Flush(); err != nil {
		return fmt.Errorf("failed to flush line: %w", err)
	}
	return nil
}
