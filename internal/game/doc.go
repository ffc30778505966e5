// Package game implements the rules of a tile-drafting game for two or
// more players: the offer board of factories and center, each player's
// pattern lines, wall and floor line, the round lifecycle and scoring.
//
// The main type is Game. It moves through the phases
//
//	PhaseSetup -> PhaseInProgress -> PhaseRoundScoring -> PhaseInProgress ... -> PhaseGameOver
//
// and is changed only through its commands: SetupRound, TakeFromFactory,
// TakeFromCenter (or Apply with a Move) and ScoreRound. Each command either
// applies completely or returns an error and changes nothing.
//
// # Basic Usage
//
//	g := game.New(randutil.New(42), []string{"Alice", "Bob"})
//	_ = g.SetupRound()
//	_, err := g.TakeFromFactory(0, tile.Red, 2)
//	...
//	if g.IsRoundOver() {
//	    summary, _ := g.ScoreRound()
//	}
//
// # Deterministic Testing
//
// The only randomness is the bag shuffle, driven by the *rand.Rand passed to
// New. The same seed and the same commands always give the same game.
// WithStrictChecks verifies tile conservation after every command.
//
// # Agents
//
// Engine wraps a Game for hosts that mix computer and human seats. Agents
// see only Snapshot values, never the live game; see package bot for the
// built-in ones.
package game
