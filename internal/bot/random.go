package bot

import (
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/liwamdaman/azul/internal/game"
)

// RandomBot picks uniformly among the candidate moves.
type RandomBot struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandomBot creates a RandomBot drawing from rng. A nil logger discards.
func NewRandomBot(rng *rand.Rand, logger *log.Logger) *RandomBot {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &RandomBot{rng: rng, logger: logger}
}

func (r *RandomBot) ChooseMove(s game.Snapshot, seat int) (game.Move, bool) {
	moves := EnumerateMoves(s)
	if len(moves) == 0 {
		return game.Move{}, false
	}
	m := moves[r.rng.IntN(len(moves))]
	r.logger.Debug("Random move", "seat", seat, "move", m, "candidates", len(moves))
	return m, true
}
