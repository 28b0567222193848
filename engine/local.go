package engine

import (
	"context"
	"halite/experiments/metrics"
	"halite/game"
	"halite/replay"
	"halite/searcher/agent"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Option func(e *LocalEngine)

// LocalEngine runs a match in process with the forward model as the rules.
type LocalEngine struct {
	ID        string
	State     *game.State
	Agents    map[int]agent.Agent // By player ID
	budget    time.Duration
	replayDir string
}

func WithTurnBudget(budget time.Duration) Option {
	return func(e *LocalEngine) {
		if budget > 0 {
			e.budget = budget
		}
	}
}

// WithReplay records every turn under dir.
func WithReplay(dir string) Option {
	return func(e *LocalEngine) {
		e.replayDir = dir
	}
}

func WithMatchID(id string) Option {
	return func(e *LocalEngine) {
		if id != "" {
			e.ID = id
		}
	}
}

// NewLocalEngine assigns agents to the state's players in ascending ID order.
func NewLocalEngine(agents []agent.Agent, state *game.State, options ...Option) *LocalEngine {
	players := state.PlayerIDs()
	if len(players) != len(agents) {
		panic("number of players does not match number of agents")
	}
	if len(players) < 2 {
		panic("need at least two players")
	}

	e := &LocalEngine{
		ID:     uuid.NewString(),
		State:  state,
		Agents: make(map[int]agent.Agent, len(agents)),
		budget: DefaultTurnBudget,
	}
	for i, pid := range players {
		e.Agents[pid] = agents[i]
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the entire game loop until the turn limit.
func (e *LocalEngine) Run(ctx context.Context) (int, metrics.GameMetric, []metrics.MoveMetric) {
	var recorder *replay.Writer
	if e.replayDir != "" {
		w, err := replay.Create(e.replayDir, e.ID)
		if err != nil {
			log.Warn().Err(err).Str("match", e.ID).Msg("recording disabled")
		} else {
			recorder = w
			defer func() {
				if err := recorder.Close(); err != nil {
					log.Warn().Err(err).Str("match", e.ID).Msg("failed to close replay")
				}
			}()
		}
	}

	log.Info().Str("match", e.ID).Int("players", len(e.Agents)).Msg("match starting")

	startTime := time.Now()
	var moveMetrics []metrics.MoveMetric
	for !e.State.IsTerminal() && ctx.Err() == nil {
		orders := game.NewOrders()
		played := make(map[int][]game.Command, len(e.Agents))
		for _, pid := range e.State.PlayerIDs() {
			commands, metric := e.findCommands(ctx, pid)
			orders.Add(pid, commands)
			played[pid] = commands
			moveMetrics = append(moveMetrics, metrics.MoveMetric{
				Turn:         e.State.Turn,
				Player:       pid,
				Ships:        len(e.State.ShipsOf(pid)),
				SearchMetric: metric,
			})
		}

		if recorder != nil {
			if err := recorder.Write(replay.NewFrame(e.State, played)); err != nil {
				log.Warn().Err(err).Str("match", e.ID).Msg("failed to record turn")
			}
		}
		e.State.Advance(orders)
	}

	winner := e.State.Winner()
	endTime := time.Now()
	gameMetric := metrics.GameMetric{
		Match:     e.ID,
		Winner:    winner,
		StartTime: startTime,
		EndTime:   endTime,
		Duration:  endTime.Sub(startTime),
		Turns:     e.State.Turn,
	}
	for _, pid := range e.State.PlayerIDs() {
		gameMetric.Scores = append(gameMetric.Scores, e.State.Players[pid].Halite)
	}

	log.Info().Str("match", e.ID).Int("winner", winner).Ints("scores", gameMetric.Scores).Msg("match over")
	return winner, gameMetric, moveMetrics
}

// findCommands gives an agent a copy of the state and drops the commands it
// issues for ships it does not own.
func (e *LocalEngine) findCommands(ctx context.Context, pid int) ([]game.Command, metrics.SearchMetric) {
	turnCtx, cancel := context.WithTimeout(ctx, e.budget)
	defer cancel()

	commands, metric := e.Agents[pid].FindCommands(turnCtx, e.State.Copy(), pid)
	valid := commands[:0]
	for _, command := range commands {
		if command.Type != game.SpawnCommand {
			ship, ok := e.State.Ships[command.ShipID]
			if !ok || ship.Owner != pid {
				log.Warn().Int("player", pid).Stringer("command", command).Msg("dropping command for a ship not owned")
				continue
			}
		}
		valid = append(valid, command)
	}
	return valid, metric
}
