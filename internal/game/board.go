package game

import (
	"slices"

	"github.com/liwamdaman/azul/internal/tile"
)

// NumRows is the number of pattern lines and the wall size.
const NumRows = tile.NumColors

// FloorLine is the target line meaning "straight to the floor".
const FloorLine = -1

// PatternLine is a staging row. Row r holds at most r+1 tiles, all of one color.
type PatternLine struct {
	tiles    []tile.Tile
	capacity int
}

// Capacity returns the maximum number of tiles the line holds.
func (l *PatternLine) Capacity() int { return l.capacity }

// Len returns the number of tiles on the line.
func (l *PatternLine) Len() int { return len(l.tiles) }

// Spaces returns how many more tiles fit.
func (l *PatternLine) Spaces() int { return l.capacity - len(l.tiles) }

// IsFull reports whether the line is at capacity.
func (l *PatternLine) IsFull() bool { return len(l.tiles) == l.capacity }

// Color returns the line's established color, or tile.None when empty.
func (l *PatternLine) Color() tile.Tile {
	if len(l.tiles) == 0 {
		return tile.None
	}
	return l.tiles[0]
}

// Tiles returns a copy of the line contents.
func (l *PatternLine) Tiles() []tile.Tile { return slices.Clone(l.tiles) }

// add appends t if there is room and the color matches.
func (l *PatternLine) add(t tile.Tile) bool {
	if l.IsFull() {
		return false
	}
	if len(l.tiles) > 0 && l.tiles[0] != t {
		return false
	}
	l.tiles = append(l.tiles, t)
	return true
}

func (l *PatternLine) clear() { l.tiles = nil }

// Wall is a player's 5x5 scoring grid. Cells hold tile.None until written,
// and are written at most once per game.
type Wall [NumRows][NumRows]tile.Tile

// CanPlace reports whether color may still go into row: no tile of that
// color may already sit anywhere in the row.
func (w Wall) CanPlace(row int, color tile.Tile) bool {
	if row < 0 || row >= NumRows || !color.IsColor() {
		return false
	}
	for _, t := range w[row] {
		if t == color {
			return false
		}
	}
	return true
}

// Place writes color into its fixed column on row. It returns false and
// leaves the wall alone when CanPlace is false.
func (w *Wall) Place(row int, color tile.Tile) bool {
	if !w.CanPlace(row, color) {
		return false
	}
	w[row][tile.Column(row, color)] = color
	return true
}

// Occupied reports whether the cell at (row, col) holds a tile.
func (w Wall) Occupied(row, col int) bool {
	if row < 0 || row >= NumRows || col < 0 || col >= NumRows {
		return false
	}
	return w[row][col] != tile.None
}

// RowCount returns the number of occupied cells in row.
func (w Wall) RowCount(row int) int {
	n := 0
	for col := range NumRows {
		if w.Occupied(row, col) {
			n++
		}
	}
	return n
}

// RowComplete reports whether every cell in row is occupied.
func (w Wall) RowComplete(row int) bool { return w.RowCount(row) == NumRows }

// ColumnComplete reports whether every cell in col is occupied.
func (w Wall) ColumnComplete(col int) bool {
	for row := range NumRows {
		if !w.Occupied(row, col) {
			return false
		}
	}
	return true
}

// ColorCount returns how many of color's home cells are occupied.
func (w Wall) ColorCount(color tile.Tile) int {
	if !color.IsColor() {
		return 0
	}
	n := 0
	for row := range NumRows {
		if w.Occupied(row, tile.Column(row, color)) {
			n++
		}
	}
	return n
}

// CompletedRows returns the number of fully occupied rows.
func (w Wall) CompletedRows() int {
	n := 0
	for row := range NumRows {
		if w.RowComplete(row) {
			n++
		}
	}
	return n
}

// Board is one player's side of the table: pattern lines, wall, floor line
// and score.
type Board struct {
	Name  string
	Score int

	wall  Wall
	lines [NumRows]PatternLine
	floor []tile.Tile
}

// NewBoard returns an empty board.
func NewBoard(name string) *Board {
	b := &Board{Name: name}
	for row := range b.lines {
		b.lines[row].capacity = row + 1
	}
	return b
}

// Wall returns a copy of the wall.
func (b *Board) Wall() Wall { return b.wall }

// Line returns the pattern line for row. The pointer is for reading; only
// the engine mutates lines.
func (b *Board) Line(row int) *PatternLine { return &b.lines[row] }

// Floor returns a copy of the floor line.
func (b *Board) Floor() []tile.Tile { return slices.Clone(b.floor) }

// AddToPatternLine stages tiles on row and returns what did not fit. If the
// wall row already holds the color every tile comes back, before any
// capacity check. Otherwise tiles are added one at a time; those refused for
// capacity or color are returned for the floor.
func (b *Board) AddToPatternLine(row int, tiles []tile.Tile) []tile.Tile {
	if row < 0 || row >= NumRows {
		return tiles
	}
	if len(tiles) > 0 && !b.wall.CanPlace(row, tiles[0]) {
		return tiles
	}
	line := &b.lines[row]
	var overflow []tile.Tile
	for _, t := range tiles {
		if !line.add(t) {
			overflow = append(overflow, t)
		}
	}
	return overflow
}

func (b *Board) addToFloor(tiles ...tile.Tile) {
	b.floor = append(b.floor, tiles...)
}

func (b *Board) clone() *Board {
	c := &Board{
		Name:  b.Name,
		Score: b.Score,
		wall:  b.wall,
		floor: slices.Clone(b.floor),
	}
	for row := range b.lines {
		c.lines[row] = PatternLine{
			tiles:    slices.Clone(b.lines[row].tiles),
			capacity: b.lines[row].capacity,
		}
	}
	return c
}
