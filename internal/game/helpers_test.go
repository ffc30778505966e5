package game

import (
	"testing"

	"github.com/liwamdaman/azul/internal/randutil"
	"github.com/liwamdaman/azul/internal/tile"
	"github.com/stretchr/testify/require"
)

// stackedBag returns a full 100-tile bag whose first tiles are top, in
// order, followed by the rest of the set.
func stackedBag(t *testing.T, top ...tile.Tile) []tile.Tile {
	t.Helper()
	left := make(map[tile.Tile]int)
	for _, c := range tile.Colors {
		left[c] = tile.PerColor
	}
	bag := make([]tile.Tile, 0, tile.Total)
	for _, c := range top {
		left[c]--
		require.GreaterOrEqual(t, left[c], 0, "too many %s on top of the bag", c)
		bag = append(bag, c)
	}
	for _, c := range tile.Colors {
		bag = append(bag, tile.Repeat(c, left[c])...)
	}
	return bag
}

// newStackedGame returns a strict two-player game whose first round deals
// the given tiles to the factories in order.
func newStackedGame(t *testing.T, top ...tile.Tile) *Game {
	t.Helper()
	rng := randutil.New(1)
	g := New(rng, []string{"Alice", "Bob"},
		WithSupply(tile.RestoreSupply(rng, stackedBag(t, top...), nil)),
		WithStrictChecks())
	require.NoError(t, g.SetupRound())
	return g
}

func newTestGame(t *testing.T, seed int64, players ...string) *Game {
	t.Helper()
	if len(players) == 0 {
		players = []string{"Alice", "Bob"}
	}
	g := New(randutil.New(seed), players, WithStrictChecks())
	require.NoError(t, g.SetupRound())
	return g
}

// legalMoves lists every draft the snapshot allows, in enumeration order.
func legalMoves(s Snapshot) []Move {
	var moves []Move
	for src := CenterSource; src < NumFactories; src++ {
		for _, c := range tile.Colors {
			if tile.Count(s.SourceTiles(src), c) == 0 {
				continue
			}
			for line := FloorLine; line < NumRows; line++ {
				moves = append(moves, Move{Source: src, Color: c, Line: line})
			}
		}
	}
	return moves
}

// randomAgent plays a uniformly random legal move.
func randomAgent(seed int64) Agent {
	rng := randutil.New(seed)
	return AgentFunc(func(s Snapshot, seat int) (Move, bool) {
		moves := legalMoves(s)
		if len(moves) == 0 {
			return Move{}, false
		}
		return moves[rng.IntN(len(moves))], true
	})
}

// wallWithRows returns a wall whose first n rows are complete.
func wallWithRows(n int) Wall {
	var w Wall
	for row := range n {
		for _, c := range tile.Colors {
			w.Place(row, c)
		}
	}
	return w
}
