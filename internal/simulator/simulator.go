package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/liwamdaman/azul/internal/bot"
	"github.com/liwamdaman/azul/internal/game"
	"github.com/liwamdaman/azul/internal/randutil"
	"github.com/liwamdaman/azul/internal/statistics"
	"golang.org/x/sync/errgroup"
)

// ErrGameTimeout is the cancel cause of a game that ran past Config.Timeout.
var ErrGameTimeout = errors.New("game timed out")

// Config holds configuration for running simulations.
type Config struct {
	Games      int
	Strategies []string // lineup, one strategy per seat
	Seed       int64
	Rotate     bool // rotate the seating every game to cancel seat-order bias
	Workers    int
	Timeout    time.Duration // per game; zero means no limit
	Strict     bool          // verify invariants after every command
	Logger     *log.Logger
	Clock      quartz.Clock

	// OnResult, if set, is called for every game in batch order after the
	// whole batch has finished.
	OnResult func(statistics.GameResult)
}

// Simulator plays batches of bot-only games.
type Simulator struct {
	config Config
}

// New creates a simulator, filling in defaults for unset fields.
func New(config Config) *Simulator {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	return &Simulator{config: config}
}

// Run plays every game in the batch across the worker pool and aggregates
// the results. Results do not depend on the number of workers.
func (s *Simulator) Run(ctx context.Context) (*statistics.Statistics, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	results := make([]statistics.GameResult, s.config.Games)
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Workers)
	for i := range s.config.Games {
		g.Go(func() error {
			r, err := s.PlayGame(ctx, i)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats := statistics.New(s.config.Strategies)
	for _, r := range results {
		if err := stats.Add(r); err != nil {
			return nil, err
		}
		if s.config.OnResult != nil {
			s.config.OnResult(r)
		}
	}
	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

func (s *Simulator) validate() error {
	if s.config.Games <= 0 {
		return fmt.Errorf("games must be positive, got %d", s.config.Games)
	}
	if n := len(s.config.Strategies); n < 2 {
		return fmt.Errorf("need at least 2 seats, got %d", n)
	}
	for _, name := range s.config.Strategies {
		if !bot.IsKnown(name) {
			return fmt.Errorf("%w: %q", bot.ErrUnknownStrategy, name)
		}
	}
	return nil
}

// Seating returns the lineup entry sitting in each seat for game index.
func (s *Simulator) Seating(index int) []int {
	n := len(s.config.Strategies)
	shift := 0
	if s.config.Rotate {
		shift = index % n
	}
	seating := make([]int, n)
	for seat := range seating {
		seating[seat] = (seat + shift) % n
	}
	return seating
}

// PlayGame plays game index of the batch to the end. The game's seed is
// derived from the batch seed and the index alone, so any single game can
// be replayed on its own.
func (s *Simulator) PlayGame(ctx context.Context, index int) (statistics.GameResult, error) {
	seed := randutil.Derive(s.config.Seed, index)
	seating := s.Seating(index)
	logger := s.config.Logger.With("game", index)

	names := make([]string, len(seating))
	for seat, entry := range seating {
		names[seat] = fmt.Sprintf("%s#%d", s.config.Strategies[entry], entry+1)
	}
	var opts []game.Option
	if s.config.Strict {
		opts = append(opts, game.WithStrictChecks())
	}
	g := game.New(randutil.New(seed), names, opts...)
	engine := game.NewEngine(g, game.WithEngineLogger(logger), game.WithClock(s.config.Clock))

	for seat, entry := range seating {
		agentSeed := randutil.Derive(seed, seat+1)
		agent, err := bot.New(s.config.Strategies[entry], randutil.New(agentSeed), logger)
		if err != nil {
			return statistics.GameResult{}, err
		}
		if err := engine.SetAgent(seat, agent); err != nil {
			return statistics.GameResult{}, err
		}
	}

	ctx, cancel := context.WithCancelCause(ctx)
	defer cancel(nil)
	if s.config.Timeout > 0 {
		timer := s.config.Clock.AfterFunc(s.config.Timeout, func() {
			cancel(ErrGameTimeout)
		})
		defer timer.Stop()
	}

	start := s.config.Clock.Now()
	if err := engine.Run(ctx); err != nil {
		if cause := context.Cause(ctx); cause != nil {
			err = cause
		}
		return statistics.GameResult{}, fmt.Errorf("game %d (seed %d): %w", index, seed, err)
	}

	g = engine.Game()
	n := len(seating)
	r := statistics.GameResult{
		Index:         index,
		Seed:          seed,
		Rounds:        g.Round(),
		Seating:       seating,
		Scores:        make([]int, n),
		CompletedRows: make([]int, n),
		Duration:      s.config.Clock.Now().Sub(start),
	}
	for seat, entry := range seating {
		p := g.Player(seat)
		r.Scores[entry] = p.Score
		r.CompletedRows[entry] = p.Wall().CompletedRows()
	}
	winner, _ := g.Winner()
	r.Winner = seating[winner]

	logger.Debug("Game finished", "seed", seed, "rounds", r.Rounds, "winner", g.Player(winner).Name)
	return r, nil
}

// RunSimulation is a convenience function for running a simulation with
// basic parameters.
func RunSimulation(ctx context.Context, games int, strategies []string, seed int64, logger *log.Logger) (*statistics.Statistics, error) {
	return New(Config{
		Games:      games,
		Strategies: strategies,
		Seed:       seed,
		Rotate:     true,
		Logger:     logger,
	}).Run(ctx)
}

// PrintSummary writes a summary of simulation results.
func PrintSummary(w io.Writer, stats *statistics.Statistics) {
	names := make([]string, len(stats.Seats))
	for i, seat := range stats.Seats {
		names[i] = seat.Strategy
	}
	fmt.Fprintf(w, "\n=== RESULTS: %s ===\n", strings.Join(names, " vs "))
	fmt.Fprintf(w, "Games played: %d\n", stats.Games)
	fmt.Fprintf(w, "Mean rounds: %.2f\n", stats.MeanRounds())

	for i := range stats.Seats {
		seat := &stats.Seats[i]
		low, high := seat.ConfidenceInterval95()
		fmt.Fprintf(w, "\n#%d %s\n", i+1, seat.Strategy)
		fmt.Fprintf(w, "  Wins: %d (%.1f%%)\n", seat.Wins, seat.WinRate()*100)
		fmt.Fprintf(w, "  Score: mean %.2f, median %.1f, std dev %.2f, max %d\n",
			seat.Mean(), seat.Median(), seat.StdDev(), seat.MaxScore)
		fmt.Fprintf(w, "  95%% CI: [%.2f, %.2f]\n", low, high)
		fmt.Fprintf(w, "  Complete rows: %.2f per game\n", seat.MeanRows())
	}
}
