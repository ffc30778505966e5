package game

import (
	"fmt"
	"slices"

	"github.com/liwamdaman/azul/internal/tile"
)

const (
	// NumFactories is fixed regardless of player count.
	NumFactories = 5
	// FactorySize is how many tiles a factory is refilled with.
	FactorySize = 4
)

// CenterSource is the Move.Source value that selects the center.
const CenterSource = -1

// Factory is a display of up to FactorySize tiles, emptied whenever a
// player drafts from it.
type Factory struct {
	tiles []tile.Tile
}

// Tiles returns a copy of the factory contents.
func (f *Factory) Tiles() []tile.Tile { return slices.Clone(f.tiles) }

// IsEmpty reports whether the factory holds no tiles.
func (f *Factory) IsEmpty() bool { return len(f.tiles) == 0 }

// Count returns the number of tiles of color.
func (f *Factory) Count(color tile.Tile) int { return tile.Count(f.tiles, color) }

// Center is the shared pool of factory leftovers plus the first-player marker.
type Center struct {
	tiles  []tile.Tile
	marker bool
}

// Tiles returns a copy of the colored tiles in the center.
func (c *Center) Tiles() []tile.Tile { return slices.Clone(c.tiles) }

// HasMarker reports whether the first-player marker is still in the center.
func (c *Center) HasMarker() bool { return c.marker }

// IsEmpty reports whether the center holds no colored tiles. The marker
// does not count.
func (c *Center) IsEmpty() bool { return len(c.tiles) == 0 }

// Count returns the number of tiles of color.
func (c *Center) Count(color tile.Tile) int { return tile.Count(c.tiles, color) }

// Offer is the drafting area: the factories and the center.
type Offer struct {
	Factories [NumFactories]Factory
	Center    Center
}

// Setup clears the center, puts the marker into it and refills every
// factory from the supply. Late in a game factories may get fewer than
// FactorySize tiles.
func (o *Offer) Setup(supply *tile.Supply) {
	o.Center = Center{marker: true}
	for i := range o.Factories {
		o.Factories[i].tiles = supply.Draw(FactorySize)
	}
}

func (o *Offer) checkFactory(idx int, color tile.Tile) error {
	if idx < 0 || idx >= NumFactories {
		return fmt.Errorf("%w: %d", ErrInvalidFactory, idx)
	}
	f := &o.Factories[idx]
	if f.IsEmpty() {
		return fmt.Errorf("factory %d: %w", idx, ErrEmptySource)
	}
	if f.Count(color) == 0 {
		return fmt.Errorf("factory %d has no %s: %w", idx, color, ErrColorNotPresent)
	}
	return nil
}

// TakeFromFactory removes every tile of color from factory idx and pushes
// the rest into the center. It returns the taken tiles and how many went to
// the center.
func (o *Offer) TakeFromFactory(idx int, color tile.Tile) ([]tile.Tile, int, error) {
	if err := o.checkFactory(idx, color); err != nil {
		return nil, 0, err
	}
	taken, rest := tile.Split(o.Factories[idx].tiles, color)
	o.Factories[idx].tiles = nil
	o.Center.tiles = append(o.Center.tiles, rest...)
	return taken, len(rest), nil
}

func (o *Offer) checkCenter(color tile.Tile) error {
	if o.Center.IsEmpty() {
		return fmt.Errorf("center: %w", ErrEmptySource)
	}
	if o.Center.Count(color) == 0 {
		return fmt.Errorf("center has no %s: %w", color, ErrColorNotPresent)
	}
	return nil
}

// TakeFromCenter removes every tile of color from the center. If the
// marker is still there it goes with them, whatever the color, and
// tookMarker is true.
func (o *Offer) TakeFromCenter(color tile.Tile) (taken []tile.Tile, tookMarker bool, err error) {
	if err := o.checkCenter(color); err != nil {
		return nil, false, err
	}
	taken, o.Center.tiles = tile.Split(o.Center.tiles, color)
	tookMarker = o.Center.marker
	o.Center.marker = false
	return taken, tookMarker, nil
}

// RoundIsOver reports whether no colored tile is left to draft.
func (o *Offer) RoundIsOver() bool {
	for i := range o.Factories {
		if !o.Factories[i].IsEmpty() {
			return false
		}
	}
	return o.Center.IsEmpty()
}

// clear returns every leftover colored tile and empties the offer. The
// marker stays where it is.
func (o *Offer) clear() []tile.Tile {
	var left []tile.Tile
	for i := range o.Factories {
		left = append(left, o.Factories[i].tiles...)
		o.Factories[i].tiles = nil
	}
	left = append(left, o.Center.tiles...)
	o.Center.tiles = nil
	return left
}

func (o *Offer) clone() Offer {
	var c Offer
	for i := range o.Factories {
		c.Factories[i].tiles = slices.Clone(o.Factories[i].tiles)
	}
	c.Center = Center{tiles: slices.Clone(o.Center.tiles), marker: o.Center.marker}
	return c
}
