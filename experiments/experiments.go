package experiments

import (
	"context"
	"fmt"
	"halite/engine"
	"halite/experiments/metrics"
	"halite/game"
	"halite/meta"
	"halite/searcher"
	"halite/searcher/agent"
	"time"

	"github.com/rs/zerolog/log"
)

// Settings shape every match of an experiment.
type Settings struct {
	Games      int // Per match up
	Width      int
	Height     int
	MaxTurns   int
	Seed       uint64 // Seeds maps and agents
	TurnBudget time.Duration
	OutDir     string
	ReplayDir  string // No replays when empty
}

func DefaultSettings() Settings {
	return Settings{
		Games:      10,
		Width:      32,
		Height:     32,
		MaxTurns:   100,
		Seed:       1,
		TurnBudget: 2 * time.Second,
		OutDir:     "experiments",
	}
}

var baseline = metrics.AgentConfig{ID: 0, Random: true}

// RunBudgetExperiment pairs searchers of growing iteration ceilings against
// the random baseline.
func RunBudgetExperiment(ctx context.Context, settings Settings) (string, error) {
	configs := []metrics.AgentConfig{
		baseline,
		{ID: 1, Episodes: 10, Cutoff: 20},
		{ID: 2, Episodes: 25, Cutoff: 20},
		{ID: 3, Episodes: 50, Cutoff: 20},
		{ID: 4, Episodes: meta.EPISODES, Cutoff: 20},
	}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range configs[1:] {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}
	return runExperiment(ctx, "budget", settings, configs, matchUps)
}

// RunPolicyExperiment pairs the rollout policies against each other at the
// same iteration ceiling.
func RunPolicyExperiment(ctx context.Context, settings Settings) (string, error) {
	stay := metrics.AgentConfig{ID: 1, Episodes: 50, Cutoff: 20, Policy: "stay"}
	greedy := metrics.AgentConfig{ID: 2, Episodes: 50, Cutoff: 20, Policy: "greedy"}
	configs := []metrics.AgentConfig{baseline, stay, greedy}
	matchUps := [][]metrics.AgentConfig{
		{baseline, stay},
		{baseline, greedy},
		{stay, greedy},
	}
	return runExperiment(ctx, "policy", settings, configs, matchUps)
}

// runExperiment plays every match up and returns the directory holding the
// results. Seats alternate between games of a match up.
func runExperiment(ctx context.Context, name string, settings Settings, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig) (string, error) {
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchUp := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), matchUp[0], matchUp[1])

		for i := 0; i < settings.Games; i++ {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			seats := []metrics.AgentConfig{matchUp[0], matchUp[1]}
			if i%2 == 1 {
				seats[0], seats[1] = seats[1], seats[0]
			}
			mapSeed := settings.Seed + uint64(i/2)

			winner, gameMetric, moveMetrics, err := runGame(ctx, settings, mapSeed, seats)
			if err != nil {
				return "", err
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Map:        mapSeed,
				Agents:     []int{seats[0].ID, seats[1].ID},
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: agent %d", mi+1, len(matchUps), i+1, seats[winner].ID)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(settings.OutDir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", fmt.Errorf("failed to store game records: %w", err)
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", fmt.Errorf("failed to store move records: %w", err)
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment results")
	return writer.Dir(), nil
}

// runGame plays one match on a generated map and returns the winning seat.
func runGame(ctx context.Context, settings Settings, mapSeed uint64, seats []metrics.AgentConfig) (int, metrics.GameMetric, []metrics.MoveMetric, error) {
	constants := game.StandardConstants()
	if settings.MaxTurns > 0 {
		constants.MaxTurns = settings.MaxTurns
	}
	state, err := game.GenerateMap(settings.Width, settings.Height, len(seats), mapSeed, constants)
	if err != nil {
		return 0, metrics.GameMetric{}, nil, err
	}

	agents := make([]agent.Agent, len(seats))
	for i, config := range seats {
		agents[i], err = createAgent(config, mapSeed*uint64(len(seats))+uint64(i)+1)
		if err != nil {
			return 0, metrics.GameMetric{}, nil, err
		}
	}

	options := []engine.Option{engine.WithTurnBudget(settings.TurnBudget)}
	if settings.ReplayDir != "" {
		options = append(options, engine.WithReplay(settings.ReplayDir))
	}
	e := engine.NewLocalEngine(agents, state, options...)

	winner, gameMetric, moveMetrics := e.Run(ctx)
	return winner, gameMetric, moveMetrics, nil
}

func createAgent(config metrics.AgentConfig, seed uint64) (agent.Agent, error) {
	if config.Random {
		return agent.NewRandomAgent(agent.WithSeed(seed)), nil
	}
	mcts, err := createMCTS(config, seed)
	if err != nil {
		return nil, err
	}
	return agent.NewEvaluationAgent(mcts, agent.WithSeed(seed)), nil
}

func createMCTS(config metrics.AgentConfig, seed uint64) (*searcher.MCTS, error) {
	policy, ok := searcher.ParseRolloutPolicy(config.Policy)
	if !ok {
		return nil, fmt.Errorf("unknown rollout policy %q", config.Policy)
	}
	options := []searcher.Option{
		searcher.WithRolloutPolicy(policy),
		searcher.WithSeed(seed),
		searcher.WithMetrics(),
	}

	switch {
	case config.Episodes > 0:
		options = append(options, searcher.WithEpisodes(config.Episodes))
	case config.Duration > 0:
		options = append(options, searcher.WithDuration(config.Duration))
	default:
		options = append(options, searcher.WithEpisodes(meta.EPISODES))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}
	if config.Penalty != nil {
		options = append(options, searcher.WithDestructionPenalty(*config.Penalty))
	}
	return searcher.NewMCTS(options...), nil
}
