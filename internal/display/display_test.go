package display

import (
	"bytes"
	"strings"
	"testing"

	"github.com/liwamdaman/azul/internal/game"
	"github.com/liwamdaman/azul/internal/tile"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func plain() *Renderer {
	return NewWithProfile(&bytes.Buffer{}, termenv.Ascii)
}

func sampleSnapshot() game.Snapshot {
	s := game.Snapshot{
		Players: []game.PlayerSnapshot{
			{Name: "Alice", Score: 12},
			{Name: "Bob", Score: 3},
		},
		Round:           2,
		Phase:           game.PhaseInProgress,
		CurrentPlayer:   1,
		FirstPlayer:     0,
		CenterHasMarker: true,
		Center:          []tile.Tile{tile.Yellow, tile.Yellow},
		Bag:             make([]tile.Tile, 40),
	}
	s.Factories[0] = []tile.Tile{tile.Red, tile.Red, tile.Blue, tile.Black}
	s.Players[0].Lines[2] = []tile.Tile{tile.Red, tile.Red}
	s.Players[0].Wall.Place(0, tile.Blue)
	s.Players[0].Floor = []tile.Tile{tile.Marker, tile.Cyan, tile.Cyan}
	return s
}

func TestTileIsPlainUnderAscii(t *testing.T) {
	t.Parallel()
	r := plain()
	assert.Equal(t, "K", r.Tile(tile.Black))
	assert.Equal(t, "1", r.Tile(tile.Marker))
	assert.Equal(t, ".", r.Tile(tile.None))
}

func TestOffer(t *testing.T) {
	t.Parallel()
	out := plain().Offer(sampleSnapshot())
	assert.Contains(t, out, "Factory 1: R R B K")
	assert.Contains(t, out, "Factory 2: empty")
	assert.Contains(t, out, "Center:    1 Y Y")
}

func TestPlayer(t *testing.T) {
	t.Parallel()
	out := plain().Player(sampleSnapshot(), 0)
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "12 pts")
	assert.Contains(t, out, "(first)")
	// Row 0: Blue placed, the rest show their pattern colors.
	assert.Contains(t, out, ". | B y r k c")
	// Row 2 holds two reds and one free space.
	assert.Contains(t, out, ". R R | k c b y r")
	assert.Contains(t, out, "Floor: 1 C C  -4")

	bob := plain().Player(sampleSnapshot(), 1)
	assert.NotContains(t, bob, "(first)")
	assert.Contains(t, bob, "Floor: -")
}

func TestBoard(t *testing.T) {
	t.Parallel()
	out := plain().Board(sampleSnapshot())
	assert.Contains(t, out, "Round 2 - Bob to play")
	assert.Contains(t, out, "(bag 40, discard 0)")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Bob")
	assert.Less(t, strings.Index(out, "Factory 1"), strings.Index(out, "Alice"))

	s := sampleSnapshot()
	s.Phase = game.PhaseGameOver
	assert.Contains(t, plain().Board(s), "game over")
}

func TestSummary(t *testing.T) {
	t.Parallel()
	sum := game.RoundSummary{
		Round: 3,
		Placements: []game.Placement{
			{Player: 1, Row: 2, Col: 4, Color: tile.Red, Points: 3},
		},
		Penalties: []int{4, 0},
		Bonuses:   []game.Bonus{{}, {Rows: 1, ColorSets: 1}},
		Scores:    []int{10, 27},
	}
	out := plain().Summary(sampleSnapshot(), sum)
	assert.Contains(t, out, "Round 3 scored")
	assert.Contains(t, out, "Bob placed R in row 3: +3")
	assert.Contains(t, out, "Alice floor: -4")
	assert.NotContains(t, out, "Bob floor")
	assert.Contains(t, out, "Bob bonus: 1 rows, 0 columns, 1 colors: +12")
	assert.NotContains(t, out, "Alice bonus")
	assert.Contains(t, out, "Bob: 27")
}

func TestRenderDoesNotTouchSnapshot(t *testing.T) {
	t.Parallel()
	s := sampleSnapshot()
	want := sampleSnapshot()
	_ = plain().Board(s)
	assert.Equal(t, want, s)
}
