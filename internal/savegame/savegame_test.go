package savegame

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/liwamdaman/azul/internal/bot"
	"github.com/liwamdaman/azul/internal/game"
	"github.com/liwamdaman/azul/internal/randutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var savedAt = time.Date(2025, 5, 4, 10, 30, 0, 0, time.UTC)

// midGame plays a seeded game into its second round.
func midGame(t *testing.T) *game.Game {
	t.Helper()
	g := game.New(randutil.New(21), []string{"Alice", "Bob", "Carol"}, game.WithStrictChecks())
	require.NoError(t, g.SetupRound())
	agent, err := bot.New(bot.StrategyGreedy, nil, nil)
	require.NoError(t, err)
	for g.Round() < 2 || g.CurrentPlayer() == g.FirstPlayer() {
		if g.IsRoundOver() {
			_, err := g.ScoreRound()
			require.NoError(t, err)
			continue
		}
		m, ok := agent.ChooseMove(g.Snapshot(), g.CurrentPlayer())
		require.True(t, ok)
		_, err := g.Apply(m)
		require.NoError(t, err)
	}
	return g
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()
	g := midGame(t)
	strategies := []string{"human", "greedy", "strategic"}
	doc, err := New(g.Snapshot(), strategies, "01jv0000000000000000000000", savedAt)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "saves", "game.json")
	require.NoError(t, Save(path, doc))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, strategies, loaded.Strategies())
	assert.Equal(t, doc.ID, loaded.ID)
	assert.True(t, savedAt.Equal(loaded.SavedAt))
	assert.Equal(t, 2, loaded.Round)
	assert.Equal(t, "in_progress", loaded.Phase)

	restored, err := loaded.Restore(randutil.New(5), game.WithStrictChecks())
	require.NoError(t, err)
	assert.Equal(t, g.Snapshot(), restored.Snapshot())
}

func TestRestoredGamePlaysToTheEnd(t *testing.T) {
	t.Parallel()
	doc, err := New(midGame(t).Snapshot(), []string{"greedy", "greedy", "random"}, "", savedAt)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, doc.Encode(&buf))
	loaded, err := Decode(&buf)
	require.NoError(t, err)

	g, err := loaded.Restore(randutil.New(9), game.WithStrictChecks())
	require.NoError(t, err)
	e := game.NewEngine(g)
	for seat, name := range loaded.Strategies() {
		agent, err := bot.New(name, randutil.New(int64(seat)), nil)
		require.NoError(t, err)
		require.NoError(t, e.SetAgent(seat, agent))
	}
	require.NoError(t, e.Run(t.Context()))
	assert.True(t, e.Game().IsGameOver())
}

func TestEncodeIsReadable(t *testing.T) {
	t.Parallel()
	doc, err := New(midGame(t).Snapshot(), []string{"a", "b", "c"}, "", savedAt)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, doc.Encode(&buf))
	out := buf.String()
	for _, key := range []string{`"version": 1`, `"pattern_lines"`, `"center_has_marker"`, `"wall"`, `"none"`, `"strategy": "b"`} {
		assert.Contains(t, out, key)
	}
}

func TestNewRejectsStrategyMismatch(t *testing.T) {
	t.Parallel()
	_, err := New(midGame(t).Snapshot(), []string{"greedy"}, "", savedAt)
	assert.Error(t, err)
}

func TestDecodeErrors(t *testing.T) {
	t.Parallel()
	_, err := Decode(strings.NewReader(`{"version": 99}`))
	assert.ErrorIs(t, err, ErrVersion)

	_, err = Decode(strings.NewReader(`{"version": 1, "center": ["purple"]}`))
	assert.ErrorContains(t, err, "decode save")

	_, err = Decode(strings.NewReader(`not json`))
	assert.Error(t, err)
}

func TestSnapshotChecksPhase(t *testing.T) {
	t.Parallel()
	doc, err := New(midGame(t).Snapshot(), []string{"a", "b", "c"}, "", savedAt)
	require.NoError(t, err)

	doc.GameOver = true
	_, err = doc.Snapshot()
	assert.ErrorContains(t, err, "game_over")

	doc.Phase = "halftime"
	_, err = doc.Snapshot()
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadRejectsTamperedTiles(t *testing.T) {
	t.Parallel()
	doc, err := New(midGame(t).Snapshot(), []string{"a", "b", "c"}, "", savedAt)
	require.NoError(t, err)
	doc.Bag = doc.Bag[1:]

	_, err = doc.Restore(randutil.New(1))
	assert.ErrorContains(t, err, "conservation")
}
