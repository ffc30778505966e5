package game

import "errors"

// Command validation failures. A command that returns one of these has not
// changed the game.
var (
	ErrInvalidFactory  = errors.New("invalid factory index")
	ErrInvalidLine     = errors.New("invalid pattern line")
	ErrInvalidColor    = errors.New("not a playable color")
	ErrEmptySource     = errors.New("source is empty")
	ErrColorNotPresent = errors.New("color not present in source")
	ErrNotInProgress   = errors.New("round is not in progress")
	ErrNotInSetup      = errors.New("round already set up")
	ErrRoundNotOver    = errors.New("round is not over")
	ErrGameOver        = errors.New("game is over")
	ErrInvalidSeat     = errors.New("invalid seat")
	ErrNoAgent         = errors.New("no agent for seat")
	ErrNoMove          = errors.New("agent found no move")
	ErrNothingToUndo   = errors.New("nothing to undo")
)
