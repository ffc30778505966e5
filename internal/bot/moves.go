package bot

import (
	"github.com/liwamdaman/azul/internal/game"
	"github.com/liwamdaman/azul/internal/tile"
)

// EnumerateMoves lists every candidate draft in s: each non-empty factory
// in order, then the center, each color present in canonical order, each
// pattern line 0-4 and then the floor.
func EnumerateMoves(s game.Snapshot) []game.Move {
	var moves []game.Move
	add := func(source int, ts []tile.Tile) {
		for _, c := range tile.Colors {
			if tile.Count(ts, c) == 0 {
				continue
			}
			for line := range game.NumRows {
				moves = append(moves, game.Move{Source: source, Color: c, Line: line})
			}
			moves = append(moves, game.Move{Source: source, Color: c, Line: game.FloorLine})
		}
	}
	for i, f := range s.Factories {
		add(i, f)
	}
	add(game.CenterSource, s.Center)
	return moves
}

// moveContext is what a move would do, worked out from the snapshot alone.
type moveContext struct {
	move      game.Move
	player    game.PlayerSnapshot
	taken     int
	leftovers []tile.Tile // factory tiles pushed to the center
	marker    bool        // the move takes the first-player marker
}

func newMoveContext(s game.Snapshot, seat int, m game.Move) moveContext {
	src := s.SourceTiles(m.Source)
	c := moveContext{
		move:   m,
		player: s.Players[seat],
		taken:  tile.Count(src, m.Color),
	}
	if m.Source == game.CenterSource {
		c.marker = s.CenterHasMarker
	} else {
		_, c.leftovers = tile.Split(src, m.Color)
	}
	return c
}

// placement predicts how many taken tiles would stay on the target line.
// A line blocked on the wall or holding another color takes none.
func (c moveContext) placement() (usable, waste int, completes bool) {
	if c.move.Line == game.FloorLine || !c.usableLine() {
		return 0, c.taken, false
	}
	spaces := c.player.LineSpaces(c.move.Line)
	usable = min(c.taken, spaces)
	return usable, c.taken - usable, spaces > 0 && c.taken >= spaces
}

func (c moveContext) usableLine() bool {
	row := c.move.Line
	if !c.player.Wall.CanPlace(row, c.move.Color) {
		return false
	}
	lc := c.player.LineColor(row)
	return lc == tile.None || lc == c.move.Color
}
