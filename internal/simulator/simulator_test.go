package simulator

import (
	"bytes"
	"context"
	"testing"

	"github.com/coder/quartz"
	"github.com/liwamdaman/azul/internal/bot"
	"github.com/liwamdaman/azul/internal/statistics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	return Config{
		Games:      6,
		Strategies: []string{bot.StrategyGreedy, bot.StrategyRandom},
		Seed:       12345,
		Rotate:     true,
		Workers:    2,
		Strict:     true,
		Clock:      quartz.NewMock(t),
	}
}

func TestRun(t *testing.T) {
	t.Parallel()
	stats, err := New(testConfig(t)).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 6, stats.Games)
	require.Len(t, stats.Seats, 2)
	assert.Equal(t, bot.StrategyGreedy, stats.Seats[0].Strategy)
	assert.Equal(t, 6, stats.Seats[0].Wins+stats.Seats[1].Wins)
	assert.Positive(t, stats.MeanRounds())
	assert.Zero(t, stats.Duration, "the mock clock never moves")
}

func TestRunIsIndependentOfWorkers(t *testing.T) {
	t.Parallel()
	one := testConfig(t)
	one.Workers = 1
	many := testConfig(t)
	many.Workers = 4

	a, err := New(one).Run(context.Background())
	require.NoError(t, err)
	b, err := New(many).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestOnResultInBatchOrder(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	cfg.Workers = 3
	var seen []statistics.GameResult
	cfg.OnResult = func(r statistics.GameResult) { seen = append(seen, r) }

	_, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, seen, cfg.Games)
	for i, r := range seen {
		assert.Equal(t, i, r.Index)
	}
}

func TestPlayGameReplays(t *testing.T) {
	t.Parallel()
	sim := New(testConfig(t))
	a, err := sim.PlayGame(context.Background(), 3)
	require.NoError(t, err)
	b, err := sim.PlayGame(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := sim.PlayGame(context.Background(), 4)
	require.NoError(t, err)
	assert.NotEqual(t, a.Seed, c.Seed)
}

func TestSeating(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	cfg.Strategies = []string{"greedy", "random", "strategic"}
	sim := New(cfg)
	assert.Equal(t, []int{0, 1, 2}, sim.Seating(0))
	assert.Equal(t, []int{1, 2, 0}, sim.Seating(1))
	assert.Equal(t, []int{2, 0, 1}, sim.Seating(5))

	cfg.Rotate = false
	assert.Equal(t, []int{0, 1, 2}, New(cfg).Seating(5))
}

func TestRunRejectsBadConfig(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"no games", func(c *Config) { c.Games = 0 }},
		{"one seat", func(c *Config) { c.Strategies = c.Strategies[:1] }},
		{"unknown strategy", func(c *Config) { c.Strategies = []string{"greedy", "alphazero"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := testConfig(t)
			tt.mutate(&cfg)
			_, err := New(cfg).Run(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestRunCancelled(t *testing.T) {
	t.Parallel()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(testConfig(t)).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFourSeatsStrict(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	cfg.Strategies = []string{"strategic", "greedy", "random", "strategic"}
	cfg.Games = 4
	stats, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.Games)
}

func TestPrintSummary(t *testing.T) {
	t.Parallel()
	stats, err := RunSimulation(context.Background(), 2, []string{"greedy", "strategic"}, 7, nil)
	require.NoError(t, err)

	var buf bytes.Buffer
	PrintSummary(&buf, stats)
	out := buf.String()
	assert.Contains(t, out, "greedy vs strategic")
	assert.Contains(t, out, "Games played: 2")
	assert.Contains(t, out, "#2 strategic")
}
