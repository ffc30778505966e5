package game

import (
	"github.com/liwamdaman/azul/internal/tile"
)

const (
	rowBonus      = 2
	columnBonus   = 7
	colorSetBonus = 10
)

// floorPenalties are the per-slot costs of the first floor positions; every
// slot after them costs floorOverflowPenalty.
var floorPenalties = [...]int{1, 1, 2, 2, 2, 3, 3}

const floorOverflowPenalty = 3

// FloorPenalty returns the total penalty for n tiles on a floor line.
func FloorPenalty(n int) int {
	total := 0
	for i := range min(n, len(floorPenalties)) {
		total += floorPenalties[i]
	}
	if n > len(floorPenalties) {
		total += (n - len(floorPenalties)) * floorOverflowPenalty
	}
	return total
}

// FloorSlotPenalty returns the cost of the floor slot at position i (0-based).
func FloorSlotPenalty(i int) int {
	if i < len(floorPenalties) {
		return floorPenalties[i]
	}
	return floorOverflowPenalty
}

// PlacementScore scores the tile just written at (row, col) against the
// wall as it stands now. H and V are the lengths of the contiguous runs
// through the cell; a tile linked both ways scores H+V, otherwise the longer
// run, so an isolated tile scores 1.
func PlacementScore(w Wall, row, col int) int {
	h := 1
	for c := col - 1; w.Occupied(row, c); c-- {
		h++
	}
	for c := col + 1; w.Occupied(row, c); c++ {
		h++
	}

	v := 1
	for r := row - 1; w.Occupied(r, col); r-- {
		v++
	}
	for r := row + 1; w.Occupied(r, col); r++ {
		v++
	}

	if h > 1 && v > 1 {
		return h + v
	}
	return max(h, v)
}

// Bonus is the end-game breakdown for one wall.
type Bonus struct {
	Rows      int
	Columns   int
	ColorSets int
}

// Points returns the bonus total.
func (b Bonus) Points() int {
	return b.Rows*rowBonus + b.Columns*columnBonus + b.ColorSets*colorSetBonus
}

// EndGameBonus counts complete rows, columns and color sets on w.
func EndGameBonus(w Wall) Bonus {
	var b Bonus
	for i := range NumRows {
		if w.RowComplete(i) {
			b.Rows++
		}
		if w.ColumnComplete(i) {
			b.Columns++
		}
	}
	for _, c := range tile.Colors {
		if w.ColorCount(c) == NumRows {
			b.ColorSets++
		}
	}
	return b
}

// Placement records one tile moved from a pattern line to the wall.
type Placement struct {
	Player int
	Row    int
	Col    int
	Color  tile.Tile
	Points int
}

// RoundSummary is what a scoring pass did.
type RoundSummary struct {
	Round      int
	Placements []Placement
	Penalties  []int // floor penalty per player, before the zero clamp
	Bonuses    []Bonus
	Scores     []int
	GameOver   bool
}

// ScoreRound runs the end-of-round pass: full pattern lines move to the
// wall in player order, rows ascending, each scored against the wall as it
// is at that instant; then floor penalties, then leftover tiles go to the
// discard. If any wall now has a complete row the game ends and end-game
// bonuses are added once; otherwise the next round is set up with the
// first player to act.
func (g *Game) ScoreRound() (RoundSummary, error) {
	switch g.phase {
	case PhaseGameOver:
		return RoundSummary{}, ErrGameOver
	case PhaseRoundScoring:
	default:
		return RoundSummary{}, ErrRoundNotOver
	}

	summary := RoundSummary{
		Round:     g.round,
		Penalties: make([]int, len(g.players)),
		Scores:    make([]int, len(g.players)),
	}

	for pi, p := range g.players {
		for row := range NumRows {
			line := &p.lines[row]
			if !line.IsFull() {
				continue
			}
			color := line.Color()
			if p.wall.Place(row, color) {
				col := tile.Column(row, color)
				pts := PlacementScore(p.wall, row, col)
				p.Score += pts
				summary.Placements = append(summary.Placements, Placement{
					Player: pi, Row: row, Col: col, Color: color, Points: pts,
				})
				g.supply.Discard(line.tiles[1:]...)
			} else {
				g.logger.Error("Full pattern line blocked on wall", "player", p.Name, "row", row, "color", color)
				g.supply.Discard(line.tiles...)
			}
			line.clear()
		}

		penalty := FloorPenalty(len(p.floor))
		summary.Penalties[pi] = penalty
		p.Score = max(0, p.Score-penalty)
		g.supply.Discard(p.floor...)
		p.floor = nil
	}

	g.supply.Discard(g.offer.clear()...)

	over := false
	for _, p := range g.players {
		if p.wall.CompletedRows() > 0 {
			over = true
			break
		}
	}

	if !over {
		g.current = g.first
		g.round++
		g.setupRound()
		if g.phase == PhaseRoundScoring {
			// Every tile is on a wall or a pattern line; nothing can be drafted again.
			g.logger.Warn("Tile supply exhausted, ending game", "round", summary.Round)
			g.round = summary.Round
			over = true
		}
	}

	if over {
		g.phase = PhaseGameOver
		summary.Bonuses = make([]Bonus, len(g.players))
		for pi, p := range g.players {
			b := EndGameBonus(p.wall)
			summary.Bonuses[pi] = b
			p.Score += b.Points()
		}
	}

	summary.GameOver = over
	for pi, p := range g.players {
		summary.Scores[pi] = p.Score
	}

	g.logger.Info("Round scored",
		"round", summary.Round,
		"placements", len(summary.Placements),
		"scores", summary.Scores,
		"gameOver", over)

	g.verify("score round")
	return summary, nil
}

// Winner returns the seat with the highest (score, completed rows) key. The
// first such seat wins remaining ties. ok is false until the game is over.
func (g *Game) Winner() (seat int, ok bool) {
	if g.phase != PhaseGameOver {
		return -1, false
	}
	seat = 0
	for i, p := range g.players[1:] {
		best := g.players[seat]
		if p.Score > best.Score ||
			(p.Score == best.Score && p.wall.CompletedRows() > best.wall.CompletedRows()) {
			seat = i + 1
		}
	}
	return seat, true
}
