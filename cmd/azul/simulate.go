package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/liwamdaman/azul/cmd/azul/shared"
	"github.com/liwamdaman/azul/internal/config"
	"github.com/liwamdaman/azul/internal/gameid"
	"github.com/liwamdaman/azul/internal/simulator"
	"github.com/liwamdaman/azul/internal/statistics"
)

type SimulateCmd struct {
	Config   string   `default:"azul.hcl" help:"Match configuration file (HCL); defaults apply when it does not exist"`
	Games    int      `help:"Number of games (overrides config)"`
	Seed     *int64   `help:"Base seed (overrides config)"`
	Workers  int      `help:"Concurrent games (overrides config, 0 = CPU count)"`
	Seats    []string `help:"Strategy per seat, e.g. --seats=greedy,random (overrides config)"`
	Timeout  string   `help:"Per-game time limit, e.g. 10s (overrides config)"`
	NoRotate bool     `help:"Keep the seating fixed instead of rotating it every game"`
	Strict   bool     `help:"Verify game invariants after every command"`
	LogLevel string   `help:"Log level (debug|info|warn|error, overrides config)"`
	LogJSON  bool     `help:"Output JSON logs instead of console format"`
	Quiet    bool     `help:"Do not log a line per finished game"`
}

// apply layers the command-line flags over cfg.
func (c *SimulateCmd) apply(cfg *config.Config) {
	m := cfg.Match
	if c.Games > 0 {
		m.Games = c.Games
	}
	if c.Seed != nil {
		m.Seed = *c.Seed
	}
	if c.Workers > 0 {
		m.Workers = c.Workers
	}
	if c.Timeout != "" {
		m.Timeout = c.Timeout
	}
	if c.NoRotate {
		rotate := false
		m.Rotate = &rotate
	}
	if c.Strict {
		m.Strict = true
	}
	if c.LogLevel != "" {
		m.LogLevel = c.LogLevel
	}
	if len(c.Seats) > 0 {
		cfg.Seats = make([]config.SeatConfig, len(c.Seats))
		for i, strategy := range c.Seats {
			cfg.Seats[i] = config.SeatConfig{
				Name:     fmt.Sprintf("%s-%d", strategy, i+1),
				Strategy: strategy,
			}
		}
	}
}

func (c *SimulateCmd) Run() error {
	cfg, err := config.Load(c.Config)
	if err != nil {
		return err
	}
	c.apply(cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.HasHuman() {
		return errors.New("simulate needs bot seats only; use play for human seats")
	}
	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return err
	}

	batch := gameid.Generate()
	logger := shared.NewLogger(cfg.Match.LogLevel, c.LogJSON).With().Str("batch", batch).Logger()
	engineLogger, err := shared.NewEngineLogger(os.Stderr, cfg.Match.LogLevel)
	if err != nil {
		return err
	}

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	strategies := cfg.Strategies()
	sim := simulator.New(simulator.Config{
		Games:      cfg.Match.Games,
		Strategies: strategies,
		Seed:       cfg.Match.Seed,
		Rotate:     *cfg.Match.Rotate,
		Workers:    cfg.Match.Workers,
		Timeout:    timeout,
		Strict:     cfg.Match.Strict,
		Logger:     engineLogger.WithPrefix("sim"),
		OnResult: func(r statistics.GameResult) {
			if !c.Quiet {
				logResult(logger, cfg.Names(), r)
			}
		},
	})

	logger.Info().
		Int("games", cfg.Match.Games).
		Strs("seats", strategies).
		Int64("seed", cfg.Match.Seed).
		Msg("Starting simulation")

	start := time.Now()
	stats, err := sim.Run(ctx)
	if err != nil {
		return fmt.Errorf("simulation failed: %w", err)
	}

	logger.Info().
		Int("games", stats.Games).
		Dur("elapsed", time.Since(start)).
		Float64("mean_rounds", stats.MeanRounds()).
		Msg("Simulation complete")

	simulator.PrintSummary(os.Stdout, stats)
	return nil
}

// logResult writes one event per finished game. Slices in r are indexed by
// lineup entry, which is the order of names.
func logResult(logger zerolog.Logger, names []string, r statistics.GameResult) {
	scores := zerolog.Dict()
	for i, name := range names {
		scores.Int(name, r.Scores[i])
	}
	logger.Info().
		Int("game", r.Index).
		Int64("seed", r.Seed).
		Int("rounds", r.Rounds).
		Str("winner", names[r.Winner]).
		Dict("scores", scores).
		Dur("duration", r.Duration).
		Msg("Game finished")
}
