package emit

import (
	"fmt"
	"math/rand"
	"strings"
)

const (
	nameMin = 4
	nameMax = 10
)

var identAlphabet = buildIdentAlphabet()

// buildIdentAlphabet returns "_aAbBcC...zZ" so generated identifiers look
// like ordinary short variable names.
func buildIdentAlphabet() string {
	var b strings.Builder
	b.WriteByte('_')
	for c := byte('a'); c <= 'z'; c++ {
		b.WriteByte(c)
		b.WriteByte(c - 32)
	}
	return b.String()
}

// namer draws fresh identifiers of random length and case for a single
// emission pass. A Backend constructs one namer per call to Emit so that
// repeated renders of the same Context don't reuse variable names.
type namer struct {
	rng *rand.Rand
}

func newNamer(rng *rand.Rand) namer {
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return namer{rng: rng}
}

// next returns a random identifier matching [_a-zA-Z]{4,10}.
func (n namer) next() string {
	size := nameMin + n.rng.Intn(nameMax-nameMin+1)
	b := make([]byte, size)
	for i := range b {
		b[i] = identAlphabet[n.rng.Intn(len(identAlphabet))]
	}
	return string(b)
}

// hex formats v as a zero-padded 4-hex-digit literal, e.g. 0x0666.
func hex(v uint64) string {
	return fmt.Sprintf("0x%04X", v)
}
