package game

import (
	"context"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/liwamdaman/azul/internal/randutil"
	"github.com/liwamdaman/azul/internal/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder collects every published event.
type recorder struct {
	events []GameEvent
}

func (r *recorder) OnEvent(e GameEvent) { r.events = append(r.events, e) }

func (r *recorder) count(et EventType) int {
	n := 0
	for _, e := range r.events {
		if e.EventType() == et {
			n++
		}
	}
	return n
}

func newTestEngine(t *testing.T, seed int64, opts ...EngineOption) (*Engine, *recorder) {
	t.Helper()
	g := New(randutil.New(seed), []string{"Alice", "Bob"}, WithStrictChecks())
	rec := &recorder{}
	e := NewEngine(g, opts...)
	e.EventBus().Subscribe(rec)
	return e, rec
}

func TestEngineRunsAgentGame(t *testing.T) {
	t.Parallel()
	e, rec := newTestEngine(t, 42)
	require.NoError(t, e.SetAgent(0, randomAgent(1)))
	require.NoError(t, e.SetAgent(1, randomAgent(2)))

	require.NoError(t, e.Run(context.Background()))

	g := e.Game()
	assert.True(t, g.IsGameOver())
	assert.Equal(t, g.Round(), rec.count(EventTypeRoundScored))
	assert.Equal(t, g.Round(), rec.count(EventTypeRoundStart))
	assert.Equal(t, 1, rec.count(EventTypeGameOver))
	assert.Positive(t, rec.count(EventTypeTilesTaken))

	last, ok := rec.events[len(rec.events)-1].(GameOverEvent)
	require.True(t, ok)
	winner, _ := g.Winner()
	assert.Equal(t, winner, last.Winner)
	assert.Equal(t, g.Player(winner).Name, last.WinnerName)

	assert.ErrorIs(t, e.Step(), ErrGameOver)
}

func TestEngineWaitsForHost(t *testing.T) {
	t.Parallel()
	e, _ := newTestEngine(t, 7)
	require.NoError(t, e.SetAgent(0, randomAgent(1)))
	assert.True(t, e.IsAgentSeat(0))
	assert.False(t, e.IsAgentSeat(1))

	err := e.Run(context.Background())
	require.ErrorIs(t, err, ErrNoAgent)
	assert.Equal(t, 1, e.Game().CurrentPlayer())
	assert.Equal(t, PhaseInProgress, e.Game().Phase())

	m := legalMoves(e.Game().Snapshot())[0]
	_, err = e.Play(m)
	require.NoError(t, err)
	assert.Equal(t, 0, e.Game().CurrentPlayer())
}

func TestEngineSetAgent(t *testing.T) {
	t.Parallel()
	e, _ := newTestEngine(t, 1)
	assert.ErrorIs(t, e.SetAgent(2, randomAgent(1)), ErrInvalidSeat)
	assert.ErrorIs(t, e.SetAgent(-1, randomAgent(1)), ErrInvalidSeat)

	require.NoError(t, e.SetAgent(1, randomAgent(1)))
	require.NoError(t, e.SetAgent(1, nil))
	assert.False(t, e.IsAgentSeat(1))
}

func TestEngineAgentWithoutMove(t *testing.T) {
	t.Parallel()
	e, _ := newTestEngine(t, 1)
	require.NoError(t, e.Start())
	require.NoError(t, e.SetAgent(0, AgentFunc(func(Snapshot, int) (Move, bool) {
		return Move{}, false
	})))
	assert.ErrorIs(t, e.Step(), ErrNoMove)
}

func TestEngineRejectsIllegalAgentMove(t *testing.T) {
	t.Parallel()
	e, _ := newTestEngine(t, 1)
	require.NoError(t, e.Start())
	require.NoError(t, e.SetAgent(0, AgentFunc(func(Snapshot, int) (Move, bool) {
		return Move{Source: NumFactories, Color: tile.Red, Line: 0}, true
	})))
	before := e.Game().Snapshot()
	assert.ErrorIs(t, e.Step(), ErrInvalidFactory)
	assert.Equal(t, before, e.Game().Snapshot())
}

func TestEngineUndo(t *testing.T) {
	t.Parallel()
	e, rec := newTestEngine(t, 3)
	require.NoError(t, e.Start())
	assert.False(t, e.CanUndo())
	assert.ErrorIs(t, e.Undo(), ErrNothingToUndo)

	before := e.Game().Snapshot()
	_, err := e.Play(legalMoves(before)[0])
	require.NoError(t, err)
	require.True(t, e.CanUndo())

	require.NoError(t, e.Undo())
	assert.Equal(t, before, e.Game().Snapshot())
	assert.False(t, e.CanUndo())
	assert.Equal(t, 1, rec.count(EventTypeUndo))

	// A failed command keeps nothing to undo.
	_, err = e.Play(Move{Source: -5, Line: 0})
	require.Error(t, err)
	assert.False(t, e.CanUndo())
}

func TestEngineUndoDropsAgentReplies(t *testing.T) {
	t.Parallel()
	e, rec := newTestEngine(t, 3)
	require.NoError(t, e.SetAgent(1, randomAgent(5)))
	require.NoError(t, e.Start())

	before := e.Game().Snapshot()
	_, err := e.Play(legalMoves(before)[0])
	require.NoError(t, err)

	err = e.Run(context.Background())
	require.ErrorIs(t, err, ErrNoAgent)
	require.Equal(t, 2, rec.count(EventTypeTilesTaken), "the agent replied")
	require.True(t, e.CanUndo())

	require.NoError(t, e.Undo())
	assert.Equal(t, before, e.Game().Snapshot())
	assert.Equal(t, 0, e.Game().CurrentPlayer())
	assert.False(t, e.CanUndo())
}

func TestEngineScoringClearsUndo(t *testing.T) {
	t.Parallel()
	e, _ := newTestEngine(t, 4)
	require.NoError(t, e.Start())

	for !e.Game().IsRoundOver() {
		_, err := e.Play(legalMoves(e.Game().Snapshot())[0])
		require.NoError(t, err)
	}
	require.True(t, e.CanUndo())

	require.NoError(t, e.Step())
	assert.False(t, e.CanUndo())
	assert.ErrorIs(t, e.Undo(), ErrNothingToUndo)
}

func TestEnginePlayRejectsAgentSeat(t *testing.T) {
	t.Parallel()
	e, rec := newTestEngine(t, 6)
	require.NoError(t, e.SetAgent(0, randomAgent(1)))
	require.NoError(t, e.Start())

	before := e.Game().Snapshot()
	_, err := e.Play(legalMoves(before)[0])
	assert.ErrorIs(t, err, ErrInvalidSeat)
	assert.Equal(t, before, e.Game().Snapshot())
	assert.False(t, e.CanUndo())
	assert.Zero(t, rec.count(EventTypeTilesTaken))

	require.NoError(t, e.SetAgent(0, nil))
	_, err = e.Play(legalMoves(before)[0])
	assert.NoError(t, err)
}

func TestEngineRunHonorsContext(t *testing.T) {
	t.Parallel()
	e, _ := newTestEngine(t, 3)
	require.NoError(t, e.SetAgent(0, randomAgent(1)))
	require.NoError(t, e.SetAgent(1, randomAgent(2)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, e.Run(ctx), context.Canceled)
	assert.Equal(t, PhaseSetup, e.Game().Phase())
}

func TestEngineEventTimestamps(t *testing.T) {
	t.Parallel()
	clock := quartz.NewMock(t)
	start := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock.Set(start)

	e, rec := newTestEngine(t, 3, WithClock(clock))
	require.NoError(t, e.Start())
	clock.Advance(time.Second)
	_, err := e.Play(legalMoves(e.Game().Snapshot())[0])
	require.NoError(t, err)

	require.Len(t, rec.events, 2)
	first, ok := rec.events[0].(RoundStartEvent)
	require.True(t, ok)
	assert.Equal(t, start, first.Timestamp())
	assert.Equal(t, 1, first.Round)
	assert.Equal(t, e.Game().Offer().Factories[1].Tiles(), first.Factories[1])

	taken, ok := rec.events[1].(TilesTakenEvent)
	require.True(t, ok)
	assert.Equal(t, start.Add(time.Second), taken.Timestamp())
	assert.Equal(t, "Alice", taken.PlayerName)
	assert.False(t, taken.ByAgent)
}
