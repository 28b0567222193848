package player

import (
	"context"
	"errors"
	"fmt"
	"halite/communication"
	"halite/game"
	"halite/replay"
	"halite/searcher/agent"
	"io"
	"time"

	"github.com/rs/zerolog/log"
)

// Player represents the bot in a game run by an external engine.
type Player struct {
	ID           int
	Name         string
	Budget       time.Duration // Time the agent gets per turn
	Communicator communication.Communicator
	Agent        agent.Agent
	Recorder     *replay.Writer // Optional
	State        *game.State
}

// NewPlayer creates a new Player instance.
func NewPlayer(name string, budget time.Duration, comm communication.Communicator, a agent.Agent) *Player {
	return &Player{
		Name:         name,
		Budget:       budget,
		Communicator: comm,
		Agent:        a,
	}
}

// Play reads the game start, then plays turns until the engine closes the
// connection or ctx is done.
func (p *Player) Play(ctx context.Context) error {
	state, id, err := p.Communicator.Init()
	if err != nil {
		return fmt.Errorf("failed to initialise game: %w", err)
	}
	p.ID = id
	p.State = state
	if err := p.Communicator.Ready(p.Name); err != nil {
		return err
	}
	log.Info().Int("player", p.ID).Int("width", state.Width).Int("height", state.Height).Msg("game started")

	for ctx.Err() == nil {
		if err := p.Communicator.Update(p.State); err != nil {
			if errors.Is(err, io.EOF) {
				log.Info().Int("turn", p.State.Turn).Msg("game over")
				return nil
			}
			return err
		}

		commands := p.TakeTurn(ctx)
		if err := p.Communicator.Submit(commands); err != nil {
			return err
		}
	}
	return ctx.Err()
}

// TakeTurn asks the agent for commands within the turn budget.
func (p *Player) TakeTurn(ctx context.Context) []game.Command {
	turnCtx, cancel := context.WithTimeout(ctx, p.Budget)
	defer cancel()

	commands, metric := p.Agent.FindCommands(turnCtx, p.State, p.ID)
	log.Debug().Int("turn", p.State.Turn).Int("commands", len(commands)).
		Int("episodes", metric.Episodes).Dur("duration", metric.Duration).Msg("turn played")

	if p.Recorder != nil {
		if err := p.Recorder.Write(replay.NewFrame(p.State, map[int][]game.Command{p.ID: commands})); err != nil {
			log.Warn().Err(err).Msg("failed to record turn")
		}
	}
	return commands
}
