package main

import (
	"context"
	"flag"
	"fmt"
	"halite/communication/client"
	"halite/config"
	"halite/engine"
	"halite/experiments"
	"halite/game"
	"halite/logger"
	"halite/player"
	"halite/replay"
	"halite/searcher"
	"halite/searcher/agent"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML config file")
	name := flag.String("name", "", "Bot name announced to the engine")
	duration := flag.Duration("duration", 0, "Search time per turn, replaces episodes")
	episodes := flag.Int("episodes", 0, "Search iterations per turn, replaces duration")
	seed := flag.Uint64("seed", 0, "Seed for the search and generated maps (0 is time based)")
	mode := flag.String("mode", "bot", "bot, selfplay or experiment")
	opponent := flag.String("opponent", "", "Bot command played against in selfplay mode instead of the random agent")
	experiment := flag.String("experiment", "budget", "Experiment to run in experiment mode: budget or policy")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if *name != "" {
		cfg.Name = *name
	}
	if *duration > 0 {
		cfg.Search.Duration, cfg.Search.Episodes = *duration, 0
	}
	if *episodes > 0 {
		cfg.Search.Episodes, cfg.Search.Duration = *episodes, 0
	}
	if *seed != 0 {
		cfg.Search.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch *mode {
	case "bot":
		err = runBot(ctx, cfg)
	case "selfplay":
		err = runSelfPlay(ctx, cfg, *opponent)
	case "experiment":
		err = runExperiment(ctx, cfg, *experiment)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Error().Err(err).Str("mode", *mode).Msg("exiting")
		os.Exit(1)
	}
}

func runBot(ctx context.Context, cfg config.Config) error {
	a, err := newSearchAgent(cfg)
	if err != nil {
		return err
	}
	comm := client.NewClientCommunicator(os.Stdin, os.Stdout)
	p := player.NewPlayer(cfg.Name, cfg.Search.TurnBudget, comm, a)

	if cfg.Replay.Dir != "" {
		recorder, err := replay.Create(cfg.Replay.Dir, cfg.Name+"-"+uuid.NewString())
		if err != nil {
			return err
		}
		defer func() {
			if err := recorder.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close replay")
			}
		}()
		p.Recorder = recorder
	}
	return p.Play(ctx)
}

// runSelfPlay pits the configured search against the random agent, or an
// external bot, on a generated map.
func runSelfPlay(ctx context.Context, cfg config.Config, opponent string) error {
	seed := cfg.Search.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	state, err := game.GenerateMap(32, 32, 2, seed, game.StandardConstants())
	if err != nil {
		return err
	}
	a, err := newSearchAgent(cfg)
	if err != nil {
		return err
	}
	agents := []agent.Agent{a, agent.NewRandomAgent(agent.WithSeed(seed + 1))}
	if opponent != "" {
		remote, stop, err := engine.StartBot(ctx, opponent)
		if err != nil {
			return err
		}
		defer func() {
			if err := stop(); err != nil {
				log.Warn().Err(err).Str("bot", opponent).Msg("bot exited with an error")
			}
		}()
		agents[1] = remote
	}

	options := []engine.Option{engine.WithTurnBudget(cfg.Search.TurnBudget)}
	if cfg.Replay.Dir != "" {
		options = append(options, engine.WithReplay(cfg.Replay.Dir))
	}
	e := engine.NewLocalEngine(agents, state, options...)

	winner, gameMetric, _ := e.Run(ctx)
	log.Info().Str("match", gameMetric.Match).Int("winner", winner).Ints("scores", gameMetric.Scores).
		Dur("duration", gameMetric.Duration).Msg("self-play finished")
	return nil
}

func runExperiment(ctx context.Context, cfg config.Config, name string) error {
	settings := experiments.DefaultSettings()
	if cfg.Search.Seed != 0 {
		settings.Seed = cfg.Search.Seed
	}
	settings.ReplayDir = cfg.Replay.Dir

	var err error
	switch name {
	case "budget":
		_, err = experiments.RunBudgetExperiment(ctx, settings)
	case "policy":
		_, err = experiments.RunPolicyExperiment(ctx, settings)
	default:
		err = fmt.Errorf("unknown experiment %q", name)
	}
	return err
}

func newSearchAgent(cfg config.Config) (agent.Agent, error) {
	mcts, err := newMCTS(cfg)
	if err != nil {
		return nil, err
	}
	log.Info().Interface("search", mcts.Settings()).Str("policy", cfg.Search.Policy).Msg("search configured")

	agentOptions := []agent.Option{agent.WithSpawnPolicy(agent.SpawnPolicy{LastTurn: cfg.Spawn.LastTurn, Reserve: cfg.Spawn.Reserve})}
	if cfg.Search.Seed != 0 {
		agentOptions = append(agentOptions, agent.WithSeed(cfg.Search.Seed))
	}
	if cfg.Search.AllShips {
		agentOptions = append(agentOptions, agent.WithAllShips())
	}
	return agent.NewEvaluationAgent(mcts, agentOptions...), nil
}

// newMCTS applies every search setting of a validated config, zeros included.
func newMCTS(cfg config.Config) (*searcher.MCTS, error) {
	policy, ok := searcher.ParseRolloutPolicy(cfg.Search.Policy)
	if !ok {
		return nil, fmt.Errorf("unknown rollout policy %q", cfg.Search.Policy)
	}
	options := []searcher.Option{
		searcher.WithEpisodes(cfg.Search.Episodes),
		searcher.WithDuration(cfg.Search.Duration),
		searcher.WithCutoff(cfg.Search.Cutoff),
		searcher.WithExploration(cfg.Search.Exploration),
		searcher.WithDestructionPenalty(cfg.Search.Penalty),
		searcher.WithDepositWeight(cfg.Search.DepositWeight),
		searcher.WithRolloutPolicy(policy),
		searcher.WithMetrics(),
	}
	if cfg.Search.Seed != 0 {
		options = append(options, searcher.WithSeed(cfg.Search.Seed))
	}
	return searcher.NewMCTS(options...), nil
}
