package engine

import (
	"context"
	"fmt"
	"halite/communication/server"
	"halite/experiments/metrics"
	"halite/game"
	"io"
	"os"
	"os/exec"

	"github.com/rs/zerolog/log"
)

// RemoteAgent plays through an external bot speaking the line protocol. A bot
// that fails or misses a deadline is disqualified and plays no further commands.
type RemoteAgent struct {
	Name         string
	comm         *server.ServerCommunicator
	started      bool
	disqualified bool
	cells        []int // Halite per cell as last sent
}

func NewRemoteAgent(botOutput io.Reader, botInput io.Writer) *RemoteAgent {
	return &RemoteAgent{comm: server.NewServerCommunicator(botOutput, botInput)}
}

// StartBot launches a bot process and connects to its stdio. The bot's
// stderr is passed through. stop closes the bot's input and waits for it to exit.
func StartBot(ctx context.Context, command string, args ...string) (remote *RemoteAgent, stop func() error, err error) {
	cmd := exec.CommandContext(ctx, command, args...)
	cmd.Stderr = os.Stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open bot input: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open bot output: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, nil, fmt.Errorf("failed to start bot %s: %w", command, err)
	}
	stop = func() error {
		if err := stdin.Close(); err != nil {
			return err
		}
		return cmd.Wait()
	}
	return NewRemoteAgent(stdout, stdin), stop, nil
}

func (a *RemoteAgent) FindCommands(ctx context.Context, state *game.State, player int) ([]game.Command, metrics.SearchMetric) {
	if a.disqualified {
		return nil, metrics.SearchMetric{}
	}

	commands, err := a.exchange(ctx, state, player)
	if err != nil {
		a.disqualified = true
		log.Error().Err(err).Int("player", player).Str("bot", a.Name).Msg("bot disqualified")
		return nil, metrics.SearchMetric{}
	}
	return commands, metrics.SearchMetric{}
}

func (a *RemoteAgent) exchange(ctx context.Context, state *game.State, player int) ([]game.Command, error) {
	if !a.started {
		if err := a.comm.SendInit(state, player); err != nil {
			return nil, err
		}
		name, err := a.comm.ReceiveName()
		if err != nil {
			return nil, err
		}
		a.Name = name
		a.started = true
		a.cells = make([]int, len(state.Cells))
		for i, cell := range state.Cells {
			a.cells[i] = cell.Halite
		}
		log.Info().Int("player", player).Str("bot", name).Msg("bot ready")
	}

	if err := a.comm.SendFrame(state, a.changedCells(state)); err != nil {
		return nil, err
	}

	type reply struct {
		commands []game.Command
		err      error
	}
	replies := make(chan reply, 1)
	go func() {
		commands, err := a.comm.ReceiveCommands()
		replies <- reply{commands, err}
	}()

	select {
	case r := <-replies:
		return r.commands, r.err
	case <-ctx.Done():
		return nil, fmt.Errorf("no commands before the deadline: %w", ctx.Err())
	}
}

// changedCells lists the cells whose halite differs from the last frame sent
// and remembers the new values.
func (a *RemoteAgent) changedCells(state *game.State) []game.Position {
	changed := []game.Position{}
	for i, cell := range state.Cells {
		if cell.Halite != a.cells[i] {
			a.cells[i] = cell.Halite
			changed = append(changed, game.Position{X: i % state.Width, Y: i / state.Width})
		}
	}
	return changed
}
