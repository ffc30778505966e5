// Package tile defines the tile colors and the bag/discard economy.
package tile

import (
	"fmt"
	"strings"
)

// Tile is a single game piece: one of the five playable colors or the
// first-player marker. The zero value is None and marks an empty cell.
type Tile uint8

const (
	None Tile = iota
	Blue
	Yellow
	Red
	Black
	Cyan
	Marker
)

const (
	// NumColors is the number of playable colors.
	NumColors = 5
	// PerColor is how many tiles of each color exist in a game.
	PerColor = 20
	// Total is the number of colored tiles in circulation.
	Total = NumColors * PerColor
)

// Colors lists the playable colors in canonical order. A color's position
// in this slice is its index for wall placement.
var Colors = [NumColors]Tile{Blue, Yellow, Red, Black, Cyan}

var colorIndex = [...]int{
	None:   -1,
	Blue:   0,
	Yellow: 1,
	Red:    2,
	Black:  3,
	Cyan:   4,
	Marker: -1,
}

var names = [...]string{
	None:   "none",
	Blue:   "blue",
	Yellow: "yellow",
	Red:    "red",
	Black:  "black",
	Cyan:   "cyan",
	Marker: "marker",
}

// IsColor reports whether t is one of the five playable colors.
func (t Tile) IsColor() bool {
	return t >= Blue && t <= Cyan
}

// Index returns the canonical color index, or -1 for None and Marker.
func (t Tile) Index() int {
	if int(t) >= len(colorIndex) {
		return -1
	}
	return colorIndex[t]
}

func (t Tile) String() string {
	if int(t) >= len(names) {
		return fmt.Sprintf("tile(%d)", uint8(t))
	}
	return names[t]
}

// Letter returns the one-letter abbreviation used in compact board dumps.
func (t Tile) Letter() string {
	switch t {
	case None:
		return "."
	case Black:
		return "K"
	case Marker:
		return "1"
	default:
		return strings.ToUpper(t.String()[:1])
	}
}

// Parse resolves a color or marker name, case-insensitively. Single-letter
// abbreviations as produced by Letter are accepted too.
func Parse(s string) (Tile, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for t := Blue; t <= Marker; t++ {
		if s == names[t] || s == strings.ToLower(t.Letter()) {
			return t, nil
		}
	}
	return None, fmt.Errorf("unknown tile %q", s)
}

// MarshalText encodes a tile by name.
func (t Tile) MarshalText() ([]byte, error) {
	if int(t) >= len(names) {
		return nil, fmt.Errorf("invalid tile %d", uint8(t))
	}
	return []byte(names[t]), nil
}

// UnmarshalText decodes a tile name. "none" decodes to None.
func (t *Tile) UnmarshalText(b []byte) error {
	if string(b) == names[None] {
		*t = None
		return nil
	}
	v, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Column returns the wall column of color in row: (row + index) mod 5.
func Column(row int, color Tile) int {
	return (row + color.Index()) % NumColors
}

// PatternColor returns the color whose home cell on the wall is (row, col).
func PatternColor(row, col int) Tile {
	return Colors[((col-row)%NumColors+NumColors)%NumColors]
}

// Count returns how many tiles in ts equal color.
func Count(ts []Tile, color Tile) int {
	n := 0
	for _, t := range ts {
		if t == color {
			n++
		}
	}
	return n
}

// Split partitions ts into the tiles matching color and the rest, keeping
// their order within each part.
func Split(ts []Tile, color Tile) (match, rest []Tile) {
	for _, t := range ts {
		if t == color {
			match = append(match, t)
		} else {
			rest = append(rest, t)
		}
	}
	return match, rest
}

// Repeat returns n copies of t.
func Repeat(t Tile, n int) []Tile {
	ts := make([]Tile, n)
	for i := range ts {
		ts[i] = t
	}
	return ts
}
