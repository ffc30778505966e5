package game

import (
	"fmt"

	"github.com/liwamdaman/azul/internal/tile"
)

// Move is a draft command: take every tile of Color from Source (a factory
// index, or CenterSource) and put them on pattern line Line (or FloorLine).
type Move struct {
	Source int
	Color  tile.Tile
	Line   int
}

func (m Move) String() string {
	src := "center"
	if m.Source != CenterSource {
		src = fmt.Sprintf("factory %d", m.Source+1)
	}
	line := "floor"
	if m.Line != FloorLine {
		line = fmt.Sprintf("line %d", m.Line+1)
	}
	return fmt.Sprintf("%s -> %s -> %s", src, m.Color, line)
}

// Agent picks moves for a seat. Agents only see snapshots and must not keep
// or change them; the engine applies the move it returns.
type Agent interface {
	// ChooseMove returns the move for seat, or false if there is none.
	ChooseMove(s Snapshot, seat int) (Move, bool)
}

// AgentFunc adapts a function to the Agent interface.
type AgentFunc func(s Snapshot, seat int) (Move, bool)

// ChooseMove calls f.
func (f AgentFunc) ChooseMove(s Snapshot, seat int) (Move, bool) { return f(s, seat) }
