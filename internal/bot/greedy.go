package bot

import (
	"github.com/liwamdaman/azul/internal/game"
)

// Greedy weights.
const (
	completeLineBonus  = 20
	usableTilePoints   = 2
	wastedTilePenalty  = 3
	blockedWallPenalty = 50
	floorTilePenalty   = 5
	markerBonus        = 3
	leftoverPenalty    = 1
)

// Greedy scores a move on its immediate effect: finishing a line and using
// every drawn tile is good; overflow, dumping to the floor and feeding the
// center are bad; a color the wall row already holds is very bad.
func Greedy(s game.Snapshot, seat int, m game.Move) int {
	return greedyScore(newMoveContext(s, seat, m))
}

func greedyScore(c moveContext) int {
	score := 0
	if c.move.Line == game.FloorLine {
		score -= c.taken * floorTilePenalty
	} else {
		usable, waste, completes := c.placement()
		if completes {
			score += completeLineBonus
		}
		score += usable * usableTilePoints
		score -= waste * wastedTilePenalty
		if !c.player.Wall.CanPlace(c.move.Line, c.move.Color) {
			score -= blockedWallPenalty
		}
	}

	if c.marker {
		score += markerBonus
	}
	score -= len(c.leftovers) * leftoverPenalty
	return score
}
