package game

import (
	"fmt"
	rand "math/rand/v2"
	"slices"

	"github.com/liwamdaman/azul/internal/tile"
)

// PlayerSnapshot is a read-only copy of one board.
type PlayerSnapshot struct {
	Name  string
	Score int
	Lines [NumRows][]tile.Tile
	Floor []tile.Tile
	Wall  Wall
}

// LineColor returns the established color of pattern line row, or tile.None.
func (p PlayerSnapshot) LineColor(row int) tile.Tile {
	if len(p.Lines[row]) == 0 {
		return tile.None
	}
	return p.Lines[row][0]
}

// LineSpaces returns how many more tiles pattern line row takes.
func (p PlayerSnapshot) LineSpaces(row int) int {
	return row + 1 - len(p.Lines[row])
}

// Snapshot is a value copy of everything needed to render or rebuild a
// game. Changing it does not affect the game it came from.
type Snapshot struct {
	Players         []PlayerSnapshot
	Factories       [NumFactories][]tile.Tile
	Center          []tile.Tile
	CenterHasMarker bool
	Bag             []tile.Tile
	Discard         []tile.Tile
	CurrentPlayer   int
	FirstPlayer     int
	Round           int
	Phase           Phase
}

// GameOver reports whether the snapshot was taken after the game ended.
func (s Snapshot) GameOver() bool { return s.Phase == PhaseGameOver }

// RoundOver reports whether the snapshot was taken with scoring due.
func (s Snapshot) RoundOver() bool { return s.Phase == PhaseRoundScoring }

// SourceTiles returns the tiles at a move source: a factory, or the center
// for CenterSource. The marker is not included.
func (s Snapshot) SourceTiles(source int) []tile.Tile {
	if source == CenterSource {
		return s.Center
	}
	if source < 0 || source >= NumFactories {
		return nil
	}
	return s.Factories[source]
}

// Snapshot copies the game's state.
func (g *Game) Snapshot() Snapshot {
	s := Snapshot{
		Players:         make([]PlayerSnapshot, len(g.players)),
		Center:          g.offer.Center.Tiles(),
		CenterHasMarker: g.offer.Center.marker,
		Bag:             g.supply.Bag(),
		Discard:         g.supply.Discarded(),
		CurrentPlayer:   g.current,
		FirstPlayer:     g.first,
		Round:           g.round,
		Phase:           g.phase,
	}
	for i := range g.offer.Factories {
		s.Factories[i] = g.offer.Factories[i].Tiles()
	}
	for i, p := range g.players {
		ps := PlayerSnapshot{
			Name:  p.Name,
			Score: p.Score,
			Floor: p.Floor(),
			Wall:  p.wall,
		}
		for row := range NumRows {
			ps.Lines[row] = p.lines[row].Tiles()
		}
		s.Players[i] = ps
	}
	return s
}

// Restore rebuilds a game from a snapshot. The snapshot must describe a
// reachable state: restoring fails if it breaks tile conservation or the
// board shapes.
func Restore(rng *rand.Rand, s Snapshot, opts ...Option) (*Game, error) {
	if len(s.Players) < 2 {
		return nil, fmt.Errorf("restore: %d players, need at least 2", len(s.Players))
	}
	if s.CurrentPlayer < 0 || s.CurrentPlayer >= len(s.Players) {
		return nil, fmt.Errorf("restore: current player %d: %w", s.CurrentPlayer, ErrInvalidSeat)
	}
	if s.FirstPlayer < 0 || s.FirstPlayer >= len(s.Players) {
		return nil, fmt.Errorf("restore: first player %d: %w", s.FirstPlayer, ErrInvalidSeat)
	}

	names := make([]string, len(s.Players))
	for i, p := range s.Players {
		names[i] = p.Name
	}
	opts = append(opts, WithSupply(tile.RestoreSupply(rng, s.Bag, s.Discard)))
	g := New(rng, names, opts...)

	for i, ps := range s.Players {
		p := g.players[i]
		p.Score = ps.Score
		p.wall = ps.Wall
		p.floor = slices.Clone(ps.Floor)
		for row := range NumRows {
			if len(ps.Lines[row]) > row+1 {
				return nil, fmt.Errorf("restore: %s line %d holds %d tiles", ps.Name, row, len(ps.Lines[row]))
			}
			p.lines[row].tiles = slices.Clone(ps.Lines[row])
		}
	}
	for i := range s.Factories {
		if len(s.Factories[i]) > FactorySize {
			return nil, fmt.Errorf("restore: factory %d holds %d tiles", i, len(s.Factories[i]))
		}
		g.offer.Factories[i].tiles = slices.Clone(s.Factories[i])
	}
	g.offer.Center = Center{tiles: slices.Clone(s.Center), marker: s.CenterHasMarker}
	g.current = s.CurrentPlayer
	g.first = s.FirstPlayer
	g.round = s.Round
	g.phase = s.Phase

	if g.phase == PhaseInProgress && g.offer.RoundIsOver() {
		g.phase = PhaseRoundScoring
	}
	// Dealing the first round overwrites the offer.
	if g.phase == PhaseSetup && (!g.offer.RoundIsOver() || g.offer.Center.marker) {
		return nil, fmt.Errorf("restore: %s game has tiles on the offer", g.phase)
	}
	if err := g.CheckInvariants(); err != nil {
		return nil, fmt.Errorf("restore: %w", err)
	}
	return g, nil
}
