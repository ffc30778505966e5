package bot

import (
	"github.com/liwamdaman/azul/internal/game"
	"github.com/liwamdaman/azul/internal/tile"
)

// strategicRule adds Points when Applies holds for a move. Rules stack.
type strategicRule struct {
	Name    string
	Applies func(c moveContext) bool
	Points  int
}

// nearComplete is how many of five a wall row or color set needs before the
// strategic rules start pushing toward it.
const nearComplete = 3

var strategicRules = []strategicRule{
	{
		Name: "near-complete row",
		Applies: func(c moveContext) bool {
			return c.move.Line != game.FloorLine && c.player.Wall.RowCount(c.move.Line) >= nearComplete
		},
		Points: 5,
	},
	{
		Name: "near-complete color",
		Applies: func(c moveContext) bool {
			return c.move.Line != game.FloorLine && c.player.Wall.ColorCount(c.move.Color) >= nearComplete
		},
		Points: 3,
	},
}

// Opponent lines with this many spaces or fewer count as close to done.
const (
	threatSpaces  = 2
	threatPenalty = 2
)

// Strategic is Greedy plus a lean toward end-game bonuses, less a penalty for
// every leftover tile that would help an opponent finish a pattern line.
func Strategic(s game.Snapshot, seat int, m game.Move) int {
	c := newMoveContext(s, seat, m)
	score := greedyScore(c)
	for _, r := range strategicRules {
		if r.Applies(c) {
			score += r.Points
		}
	}
	return score - opponentBenefit(s, seat, c.leftovers)
}

// opponentBenefit counts, per leftover tile, the opponent lines of that
// color with at most threatSpaces spaces left.
func opponentBenefit(s game.Snapshot, seat int, leftovers []tile.Tile) int {
	penalty := 0
	for i, opp := range s.Players {
		if i == seat {
			continue
		}
		for _, t := range leftovers {
			for row := range game.NumRows {
				spaces := opp.LineSpaces(row)
				if opp.LineColor(row) == t && spaces > 0 && spaces <= threatSpaces {
					penalty += threatPenalty
				}
			}
		}
	}
	return penalty
}
