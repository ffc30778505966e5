// Package bot provides the computer players: move enumeration, the move
// evaluators and the agents built on them.
package bot

import (
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/liwamdaman/azul/internal/game"
)

// Evaluator scores a candidate move for seat; higher is better. It must
// only read the snapshot.
type Evaluator func(s game.Snapshot, seat int, m game.Move) int

// Selector plays the highest scoring candidate. Ties go to the move
// enumerated first.
type Selector struct {
	name   string
	eval   Evaluator
	logger *log.Logger
}

// NewSelector creates a Selector around eval. A nil logger discards.
func NewSelector(name string, eval Evaluator, logger *log.Logger) *Selector {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Selector{name: name, eval: eval, logger: logger}
}

// Name returns the strategy name.
func (b *Selector) Name() string { return b.name }

func (b *Selector) ChooseMove(s game.Snapshot, seat int) (game.Move, bool) {
	var (
		best      game.Move
		bestScore int
		found     bool
	)
	for _, m := range EnumerateMoves(s) {
		score := b.eval(s, seat, m)
		if !found || score > bestScore {
			best, bestScore, found = m, score, true
		}
	}
	if found {
		b.logger.Debug("Move chosen", "seat", seat, "move", best, "score", bestScore)
	}
	return best, found
}

// Strategy names accepted by New.
const (
	StrategyRandom    = "random"
	StrategyGreedy    = "greedy"
	StrategyStrategic = "strategic"
)

// ErrUnknownStrategy is returned by New for a name it does not know.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategies returns the known strategy names.
func Strategies() []string {
	return []string{StrategyRandom, StrategyGreedy, StrategyStrategic}
}

// IsKnown reports whether New accepts name.
func IsKnown(name string) bool {
	return slices.Contains(Strategies(), name)
}

// New creates the agent for a strategy name. Only the random strategy uses
// rng. A nil logger discards.
func New(strategy string, rng *rand.Rand, logger *log.Logger) (game.Agent, error) {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.WithPrefix(strategy)

	switch strategy {
	case StrategyRandom:
		if rng == nil {
			return nil, fmt.Errorf("%s strategy needs a random source", strategy)
		}
		return NewRandomBot(rng, logger), nil
	case StrategyGreedy:
		return NewSelector(strategy, Greedy, logger), nil
	case StrategyStrategic:
		return NewSelector(strategy, Strategic, logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, strategy)
	}
}
