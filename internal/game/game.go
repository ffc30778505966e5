package game

import (
	"fmt"
	"io"
	rand "math/rand/v2"

	"github.com/charmbracelet/log"
	"github.com/liwamdaman/azul/internal/tile"
)

// Phase is the round lifecycle state.
type Phase int

const (
	PhaseSetup Phase = iota
	PhaseInProgress
	PhaseRoundScoring
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseSetup:
		return "setup"
	case PhaseInProgress:
		return "in_progress"
	case PhaseRoundScoring:
		return "round_scoring"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// ParsePhase is the inverse of Phase.String.
func ParsePhase(s string) (Phase, error) {
	for p := PhaseSetup; p <= PhaseGameOver; p++ {
		if p.String() == s {
			return p, nil
		}
	}
	return PhaseSetup, fmt.Errorf("unknown phase %q", s)
}

// Game is the full state of one match. Its methods are the only way to
// change it; every command either applies completely or returns an error
// and leaves the game untouched.
type Game struct {
	players []*Board
	offer   Offer
	supply  *tile.Supply
	current int
	first   int
	round   int
	phase   Phase

	logger *log.Logger
	strict bool
}

// Option configures a Game during creation.
type Option func(*Game)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) { g.logger = logger }
}

// WithStrictChecks makes every command verify tile conservation and wall
// uniqueness afterwards and panic on a violation.
func WithStrictChecks() Option {
	return func(g *Game) { g.strict = true }
}

// WithSupply replaces the freshly shuffled supply, e.g. with a stacked bag
// from tile.RestoreSupply.
func WithSupply(s *tile.Supply) Option {
	return func(g *Game) { g.supply = s }
}

// New creates a game for the named players. The rng drives every shuffle.
// The game starts in PhaseSetup; call SetupRound to deal the first round.
func New(rng *rand.Rand, names []string, opts ...Option) *Game {
	if rng == nil {
		panic("rng is required for game creation")
	}
	if len(names) < 2 {
		panic("at least 2 players required")
	}
	g := &Game{
		players: make([]*Board, len(names)),
		logger:  log.New(io.Discard),
	}
	for i, name := range names {
		g.players[i] = NewBoard(name)
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.supply == nil {
		g.supply = tile.NewSupply(rng)
	}
	return g
}

// SetupRound deals the first round. Later rounds are dealt by ScoreRound.
func (g *Game) SetupRound() error {
	if g.phase != PhaseSetup {
		return ErrNotInSetup
	}
	g.round = 1
	g.setupRound()
	g.verify("setup round")
	return nil
}

func (g *Game) setupRound() {
	g.offer.Setup(g.supply)
	g.phase = PhaseInProgress
	if g.offer.RoundIsOver() {
		g.phase = PhaseRoundScoring
	}
	g.logger.Debug("Round set up", "round", g.round, "bag", g.supply.BagLen(), "discard", g.supply.DiscardLen())
}

// TakeResult describes an applied draft.
type TakeResult struct {
	Player     int
	Move       Move
	Taken      int  // tiles of the chosen color picked up
	Placed     int  // of those, tiles that landed on the pattern line
	Overflow   int  // tiles sent to the floor line, marker excluded
	ToCenter   int  // factory leftovers pushed to the center
	TookMarker bool // the first-player marker came along
	RoundOver  bool
}

// TakeFromFactory drafts every tile of color from factory idx onto line
// (FloorLine for the floor) for the current player.
func (g *Game) TakeFromFactory(idx int, color tile.Tile, line int) (TakeResult, error) {
	return g.Apply(Move{Source: idx, Color: color, Line: line})
}

// TakeFromCenter drafts every tile of color from the center onto line for
// the current player, along with the marker if it is still there.
func (g *Game) TakeFromCenter(color tile.Tile, line int) (TakeResult, error) {
	return g.Apply(Move{Source: CenterSource, Color: color, Line: line})
}

// Validate reports whether m is legal for the current player without
// applying it.
func (g *Game) Validate(m Move) error {
	switch g.phase {
	case PhaseInProgress:
	case PhaseGameOver:
		return ErrGameOver
	default:
		return fmt.Errorf("%w (phase %s)", ErrNotInProgress, g.phase)
	}
	if m.Line < FloorLine || m.Line >= NumRows {
		return fmt.Errorf("%w: %d", ErrInvalidLine, m.Line)
	}
	if !m.Color.IsColor() {
		return fmt.Errorf("%w: %s", ErrInvalidColor, m.Color)
	}
	if m.Source == CenterSource {
		return g.offer.checkCenter(m.Color)
	}
	return g.offer.checkFactory(m.Source, m.Color)
}

// Apply validates and applies a draft for the current player: the tiles are
// removed from their source, staged or dropped to the floor, and the turn
// passes on.
func (g *Game) Apply(m Move) (TakeResult, error) {
	if err := g.Validate(m); err != nil {
		return TakeResult{}, err
	}

	res := TakeResult{Player: g.current, Move: m}
	var taken []tile.Tile
	if m.Source == CenterSource {
		// Validate guarantees neither take can fail from here on.
		taken, res.TookMarker, _ = g.offer.TakeFromCenter(m.Color)
	} else {
		taken, res.ToCenter, _ = g.offer.TakeFromFactory(m.Source, m.Color)
	}
	res.Taken = len(taken)

	p := g.players[g.current]
	overflow := taken
	if m.Line != FloorLine {
		overflow = p.AddToPatternLine(m.Line, taken)
	}
	res.Overflow = len(overflow)
	res.Placed = res.Taken - res.Overflow
	p.addToFloor(overflow...)

	if res.TookMarker {
		p.addToFloor(tile.Marker)
		g.first = g.current
	}

	g.logger.Debug("Tiles taken",
		"player", p.Name,
		"move", m,
		"placed", res.Placed,
		"overflow", res.Overflow,
		"marker", res.TookMarker)

	g.current = (g.current + 1) % len(g.players)
	if g.offer.RoundIsOver() {
		g.phase = PhaseRoundScoring
		res.RoundOver = true
	}

	g.verify("take")
	return res, nil
}

// Phase returns the lifecycle state.
func (g *Game) Phase() Phase { return g.phase }

// IsRoundOver reports whether the offer is exhausted and scoring is due.
func (g *Game) IsRoundOver() bool { return g.phase == PhaseRoundScoring }

// IsGameOver reports whether the game has ended. Once true it stays true.
func (g *Game) IsGameOver() bool { return g.phase == PhaseGameOver }

// CurrentPlayer returns the seat to act.
func (g *Game) CurrentPlayer() int { return g.current }

// FirstPlayer returns the seat that starts the next round.
func (g *Game) FirstPlayer() int { return g.first }

// Round returns the 1-based round number, or 0 before the first setup.
func (g *Game) Round() int { return g.round }

// NumPlayers returns the number of seats.
func (g *Game) NumPlayers() int { return len(g.players) }

// Player returns the board at seat. The pointer is for reading.
func (g *Game) Player(seat int) *Board { return g.players[seat] }

// Offer returns the drafting area. The pointer is for reading.
func (g *Game) Offer() *Offer { return &g.offer }

// Supply returns the tile supply. The pointer is for reading.
func (g *Game) Supply() *tile.Supply { return g.supply }

// Clone returns an independent deep copy. The copy shares the random
// source and the logger.
func (g *Game) Clone() *Game {
	c := &Game{
		players: make([]*Board, len(g.players)),
		offer:   g.offer.clone(),
		supply:  g.supply.Clone(),
		current: g.current,
		first:   g.first,
		round:   g.round,
		phase:   g.phase,
		logger:  g.logger,
		strict:  g.strict,
	}
	for i, p := range g.players {
		c.players[i] = p.clone()
	}
	return c
}

// CheckInvariants verifies tile conservation, marker uniqueness, pattern
// line shape and wall-row uniqueness. A violation means state was changed
// behind the command surface.
func (g *Game) CheckInvariants() error {
	counts := make(map[tile.Tile]int)
	markers := 0
	tally := func(ts []tile.Tile) {
		for _, t := range ts {
			if t == tile.Marker {
				markers++
				continue
			}
			counts[t]++
		}
	}

	tally(g.supply.Bag())
	tally(g.supply.Discarded())
	for i := range g.offer.Factories {
		tally(g.offer.Factories[i].tiles)
	}
	tally(g.offer.Center.tiles)
	if g.offer.Center.marker {
		markers++
	}

	for _, p := range g.players {
		for row := range NumRows {
			line := &p.lines[row]
			if line.Len() > line.Capacity() {
				return fmt.Errorf("%s: pattern line %d holds %d tiles, capacity %d", p.Name, row, line.Len(), line.Capacity())
			}
			if line.Len() > 0 && !line.tiles[0].IsColor() {
				return fmt.Errorf("%s: pattern line %d holds %s", p.Name, row, line.tiles[0])
			}
			for _, t := range line.tiles {
				if t != line.tiles[0] {
					return fmt.Errorf("%s: pattern line %d mixes %s and %s", p.Name, row, line.tiles[0], t)
				}
			}
			tally(line.tiles)

			seen := make(map[tile.Tile]bool)
			for col, t := range p.wall[row] {
				if t == tile.None {
					continue
				}
				if seen[t] {
					return fmt.Errorf("%s: wall row %d holds %s twice", p.Name, row, t)
				}
				if col != tile.Column(row, t) {
					return fmt.Errorf("%s: %s at wall (%d,%d) is off its column", p.Name, t, row, col)
				}
				seen[t] = true
				counts[t]++
			}
		}
		tally(p.floor)
	}

	for _, c := range tile.Colors {
		if counts[c] != tile.PerColor {
			return fmt.Errorf("tile conservation: %d %s tiles in play, want %d", counts[c], c, tile.PerColor)
		}
	}
	if n := counts[tile.None]; n > 0 {
		return fmt.Errorf("tile conservation: %d empty tiles in play", n)
	}
	if markers > 1 || (g.phase == PhaseInProgress && markers != 1) {
		return fmt.Errorf("marker conservation: %d markers in play during %s", markers, g.phase)
	}
	return nil
}

func (g *Game) verify(op string) {
	if !g.strict {
		return
	}
	if err := g.CheckInvariants(); err != nil {
		g.logger.Error("Invariant violated", "op", op, "error", err)
		panic(fmt.Sprintf("%s: %v", op, err))
	}
}
