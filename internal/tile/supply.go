package tile

import (
	rand "math/rand/v2"
	"slices"
)

// Supply owns the bag (draw pool) and the discard (spent pool). All
// shuffling goes through the injected random source.
type Supply struct {
	bag     []Tile
	discard []Tile
	rng     *rand.Rand
}

// NewSupply returns a supply holding PerColor tiles of every color, shuffled.
func NewSupply(rng *rand.Rand) *Supply {
	if rng == nil {
		panic("rng is required for supply creation")
	}
	bag := make([]Tile, 0, Total)
	for _, c := range Colors {
		bag = append(bag, Repeat(c, PerColor)...)
	}
	s := &Supply{bag: bag, rng: rng}
	s.shuffle()
	return s
}

// RestoreSupply rebuilds a supply from saved bag and discard contents. The
// bag order is kept as given.
func RestoreSupply(rng *rand.Rand, bag, discard []Tile) *Supply {
	if rng == nil {
		panic("rng is required for supply creation")
	}
	return &Supply{
		bag:     slices.Clone(bag),
		discard: slices.Clone(discard),
		rng:     rng,
	}
}

// Draw removes up to n tiles from the bag. When the bag holds fewer than n,
// the discard is poured back in and the whole bag reshuffled first. If the
// tiles still run short, fewer than n are returned.
func (s *Supply) Draw(n int) []Tile {
	if n <= 0 {
		return nil
	}
	if len(s.bag) < n {
		s.bag = append(s.bag, s.discard...)
		s.discard = s.discard[:0]
		s.shuffle()
	}
	n = min(n, len(s.bag))
	drawn := slices.Clone(s.bag[:n])
	s.bag = s.bag[n:]
	return drawn
}

// Discard moves spent tiles into the discard pool. The marker never enters
// the economy and is dropped.
func (s *Supply) Discard(ts ...Tile) {
	for _, t := range ts {
		if t.IsColor() {
			s.discard = append(s.discard, t)
		}
	}
}

// BagLen returns the number of tiles left in the bag.
func (s *Supply) BagLen() int { return len(s.bag) }

// DiscardLen returns the number of tiles in the discard.
func (s *Supply) DiscardLen() int { return len(s.discard) }

// Bag returns a copy of the bag contents in draw order.
func (s *Supply) Bag() []Tile { return slices.Clone(s.bag) }

// Discarded returns a copy of the discard contents.
func (s *Supply) Discarded() []Tile { return slices.Clone(s.discard) }

// Clone returns an independent copy sharing the random source.
func (s *Supply) Clone() *Supply {
	return RestoreSupply(s.rng, s.bag, s.discard)
}

func (s *Supply) shuffle() {
	s.rng.Shuffle(len(s.bag), func(i, j int) {
		s.bag[i], s.bag[j] = s.bag[j], s.bag[i]
	})
}
