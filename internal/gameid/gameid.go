// Package gameid generates sortable match identifiers: a millisecond
// timestamp followed by random bits, encoded in lowercase Crockford base32.
package gameid

import (
	crand "crypto/rand"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	rand "math/rand/v2"

	"github.com/coder/quartz"
)

// Length is the encoded length of an ID.
const Length = 26

// Crockford's alphabet, lowercased. It is in ASCII order, so IDs sort by
// creation time.
const alphabet = "0123456789abcdefghjkmnpqrstvwxyz"

var encoding = base32.NewEncoding(alphabet).WithPadding(base32.NoPadding)

// Generator creates IDs from a clock and a random source.
type Generator struct {
	clock quartz.Clock
	rng   *rand.Rand
}

// NewGenerator creates a generator. A nil clock uses real time and a nil
// rng uses crypto/rand.
func NewGenerator(clock quartz.Clock, rng *rand.Rand) *Generator {
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Generator{clock: clock, rng: rng}
}

// Generate creates an ID from the current time and crypto/rand.
func Generate() string {
	return NewGenerator(nil, nil).Generate()
}

// Generate creates a new ID. IDs from later milliseconds sort after
// earlier ones.
func (g *Generator) Generate() string {
	var id [16]byte
	ms := uint64(g.clock.Now().UnixMilli())
	// 48-bit big-endian timestamp in the first six bytes.
	binary.BigEndian.PutUint64(id[:8], ms<<16)

	if g.rng != nil {
		binary.BigEndian.PutUint16(id[6:8], uint16(g.rng.Uint32()))
		binary.BigEndian.PutUint64(id[8:], g.rng.Uint64())
	} else if _, err := crand.Read(id[6:]); err != nil {
		panic("failed to generate random bytes: " + err.Error())
	}
	return encoding.EncodeToString(id[:])
}

// Validate checks that id is Length characters of the ID alphabet.
func Validate(id string) error {
	if len(id) != Length {
		return fmt.Errorf("game ID must be exactly %d characters, got %d", Length, len(id))
	}
	if _, err := encoding.DecodeString(id); err != nil {
		return fmt.Errorf("invalid game ID %q: %w", id, err)
	}
	return nil
}
