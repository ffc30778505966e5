// Package savegame stores games as JSON documents holding everything
// needed to rebuild them, plus who plays each seat.
package savegame

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	rand "math/rand/v2"
	"os"
	"time"

	"github.com/liwamdaman/azul/internal/fileutil"
	"github.com/liwamdaman/azul/internal/game"
	"github.com/liwamdaman/azul/internal/tile"
)

// Version is the document format written by Save.
const Version = 1

// ErrVersion is returned when loading a document of another format.
var ErrVersion = errors.New("unsupported save version")

// Document is the on-disk form of a game.
type Document struct {
	Version         int                            `json:"version"`
	ID              string                         `json:"id,omitempty"`
	SavedAt         time.Time                      `json:"saved_at"`
	Round           int                            `json:"round"`
	Phase           string                         `json:"phase"`
	GameOver        bool                           `json:"game_over"`
	CurrentPlayer   int                            `json:"current_player"`
	FirstPlayer     int                            `json:"first_player"`
	Players         []Player                       `json:"players"`
	Factories       [game.NumFactories][]tile.Tile `json:"factories"`
	Center          []tile.Tile                    `json:"center"`
	CenterHasMarker bool                           `json:"center_has_marker"`
	Bag             []tile.Tile                    `json:"bag"`
	Discard         []tile.Tile                    `json:"discard"`
}

// Player is one seat of a Document.
type Player struct {
	Name         string                    `json:"name"`
	Strategy     string                    `json:"strategy"` // bot strategy, or "human"
	Score        int                       `json:"score"`
	PatternLines [game.NumRows][]tile.Tile `json:"pattern_lines"`
	Floor        []tile.Tile               `json:"floor"`
	Wall         game.Wall                 `json:"wall"`
}

// New builds a document from a game snapshot. strategies gives the seat
// assignment, one entry per player.
func New(s game.Snapshot, strategies []string, id string, savedAt time.Time) (*Document, error) {
	if len(strategies) != len(s.Players) {
		return nil, fmt.Errorf("%d strategies for %d players", len(strategies), len(s.Players))
	}
	d := &Document{
		Version:         Version,
		ID:              id,
		SavedAt:         savedAt.UTC(),
		Round:           s.Round,
		Phase:           s.Phase.String(),
		GameOver:        s.GameOver(),
		CurrentPlayer:   s.CurrentPlayer,
		FirstPlayer:     s.FirstPlayer,
		Players:         make([]Player, len(s.Players)),
		Factories:       s.Factories,
		Center:          s.Center,
		CenterHasMarker: s.CenterHasMarker,
		Bag:             s.Bag,
		Discard:         s.Discard,
	}
	for i, p := range s.Players {
		d.Players[i] = Player{
			Name:         p.Name,
			Strategy:     strategies[i],
			Score:        p.Score,
			PatternLines: p.Lines,
			Floor:        p.Floor,
			Wall:         p.Wall,
		}
	}
	return d, nil
}

// Snapshot converts the document back into a game snapshot.
func (d *Document) Snapshot() (game.Snapshot, error) {
	phase, err := game.ParsePhase(d.Phase)
	if err != nil {
		return game.Snapshot{}, err
	}
	if d.GameOver != (phase == game.PhaseGameOver) {
		return game.Snapshot{}, fmt.Errorf("game_over is %t but phase is %s", d.GameOver, phase)
	}
	s := game.Snapshot{
		Players:         make([]game.PlayerSnapshot, len(d.Players)),
		Factories:       d.Factories,
		Center:          d.Center,
		CenterHasMarker: d.CenterHasMarker,
		Bag:             d.Bag,
		Discard:         d.Discard,
		CurrentPlayer:   d.CurrentPlayer,
		FirstPlayer:     d.FirstPlayer,
		Round:           d.Round,
		Phase:           phase,
	}
	for i, p := range d.Players {
		s.Players[i] = game.PlayerSnapshot{
			Name:  p.Name,
			Score: p.Score,
			Lines: p.PatternLines,
			Floor: p.Floor,
			Wall:  p.Wall,
		}
	}
	return s, nil
}

// Strategies returns the seat assignment in seat order.
func (d *Document) Strategies() []string {
	strategies := make([]string, len(d.Players))
	for i, p := range d.Players {
		strategies[i] = p.Strategy
	}
	return strategies
}

// Restore rebuilds the game. The rng drives shuffles from here on.
func (d *Document) Restore(rng *rand.Rand, opts ...game.Option) (*game.Game, error) {
	s, err := d.Snapshot()
	if err != nil {
		return nil, err
	}
	return game.Restore(rng, s, opts...)
}

// Encode writes the document as indented JSON.
func (d *Document) Encode(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode save: %w", err)
	}
	return nil
}

// Decode reads a document and checks its version.
func Decode(r io.Reader) (*Document, error) {
	var d Document
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, fmt.Errorf("decode save: %w", err)
	}
	if d.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, d.Version)
	}
	return &d, nil
}

// Save writes the document to path atomically.
func Save(path string, d *Document) error {
	return fileutil.WriteAtomic(path, 0o644, d.Encode)
}

// Load reads the document at path.
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f)
}
