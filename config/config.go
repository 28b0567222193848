// Package config loads the bot settings from a YAML file.
package config

import (
	"fmt"
	"halite/meta"
	"halite/searcher"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Name   string `yaml:"name"`
	Search Search `yaml:"search"`
	Spawn  Spawn  `yaml:"spawn"`
	Log    Log    `yaml:"log"`
	Replay Replay `yaml:"replay"`
}

// Search tunes the tree search. Either Episodes or Duration bounds a turn.
type Search struct {
	Duration      time.Duration `yaml:"duration"`
	Episodes      int           `yaml:"episodes"`
	Cutoff        int           `yaml:"cutoff"`
	Exploration   float64       `yaml:"exploration"`
	Penalty       float64       `yaml:"destruction_penalty"`
	DepositWeight float64       `yaml:"deposit_weight"`
	Policy        string        `yaml:"rollout_policy"`
	AllShips      bool          `yaml:"all_ships"`
	Seed          uint64        `yaml:"seed"`
	TurnBudget    time.Duration `yaml:"turn_budget"`
}

type Spawn struct {
	LastTurn int `yaml:"last_turn"`
	Reserve  int `yaml:"reserve"`
}

type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type Replay struct {
	Dir string `yaml:"dir"` // No replay when empty
}

func Default() Config {
	return Config{
		Name: meta.BOT_NAME,
		Search: Search{
			Episodes:    meta.EPISODES,
			Cutoff:      meta.WITH_CUTOFF,
			Exploration: searcher.DefaultExploration,
			Penalty:     1,
			Policy:      "stay",
			TurnBudget:  meta.TURN_BUDGET,
		},
		Spawn: Spawn{LastTurn: meta.SPAWN_TURN_LIMIT},
	}
}

// bounds records which search bounds a file sets.
type bounds struct {
	Search struct {
		Duration *time.Duration `yaml:"duration"`
		Episodes *int           `yaml:"episodes"`
	} `yaml:"search"`
}

// Load reads path over the defaults. An empty path returns the defaults. A
// file that sets only one of episodes and duration replaces the other default.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	var set bounds
	if err := yaml.Unmarshal(b, &set); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	switch {
	case set.Search.Duration != nil && set.Search.Episodes == nil:
		cfg.Search.Episodes = 0
	case set.Search.Episodes != nil && set.Search.Duration == nil:
		cfg.Search.Duration = 0
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Search.Episodes > 0 && c.Search.Duration > 0 {
		return fmt.Errorf("search takes either episodes or duration, not both")
	}
	if c.Search.Episodes <= 0 && c.Search.Duration <= 0 {
		return fmt.Errorf("search needs episodes or duration")
	}
	if c.Search.Cutoff < 0 || c.Search.Penalty < 0 || c.Search.Exploration < 0 || c.Search.DepositWeight < 0 {
		return fmt.Errorf("search settings must not be negative")
	}
	return nil
}
