package strobf

import (
	"log"

	"github.com/54754N4/strobf/runopts"
	"github.com/54754N4/strobf/transform"
)

// Engine generates a random bijective transform chain of bounded length and
// verifies it round-trips every code point of a given text before handing
// back a Context. It mirrors PolymorphicEngine's generate-and-verify loop.
type Engine struct {
	minOps, maxOps int
	bits           uint
	cfg            runopts.Configuration
}

// New returns an Engine that samples chains of length in [minOps, maxOps]
// over the given bit width, configured by opts. minOps and maxOps must
// satisfy 0 < minOps <= maxOps; bits must be one of the supported widths
// (8, 16, 32, 64).
func New(minOps, maxOps int, bits uint, opts ...runopts.Option) Engine {
	if minOps <= 0 || maxOps < minOps {
		panic("strobf: invalid [minOps, maxOps] range")
	}
	cfg := runopts.Default()
	for _, o := range opts {
		o.Apply(&cfg)
	}
	return Engine{minOps: minOps, maxOps: maxOps, bits: bits, cfg: cfg}
}

// Transform samples chains until one is found that bijectively round-trips
// every code point of text, returning the resulting Context. It gives up
// and returns a *RetryError once the configured retry budget is exhausted.
func (e Engine) Transform(text string) (Context, error) {
	points := []rune(text)
	s := newSampler(e.cfg.RNG, e.bits)
	mask := (uint64(1) << e.bits) - 1

	var lastErr error
	for attempt := 1; attempt <= e.cfg.RetryBudget; attempt++ {
		forward := e.sampleChain(s)
		reverse := forward.Invert()

		bytes, err := e.encode(forward, reverse, points, mask)
		if err != nil {
			lastErr = err
			if e.cfg.VerboseRetry {
				log.Printf("strobf: attempt %d/%d rejected: %v", attempt, e.cfg.RetryBudget, err)
			}
			continue
		}

		if e.cfg.VerboseRetry {
			log.Printf("strobf: attempt %d/%d accepted a %d-transform chain", attempt, e.cfg.RetryBudget, forward.Len())
		}
		return Context{
			Bits:    e.bits,
			Mask:    mask,
			Bytes:   bytes,
			Forward: forward,
			Reverse: reverse,
		}, nil
	}
	return Context{}, &RetryError{Attempts: e.cfg.RetryBudget, Err: lastErr}
}

// sampleChain draws a chain of uniformly random length in [minOps, maxOps].
func (e Engine) sampleChain(s sampler) transform.Chain {
	n := e.minOps
	if e.maxOps > e.minOps {
		n += s.rng.Intn(e.maxOps - e.minOps + 1)
	}
	ts := make([]transform.Transform, n)
	for i := range ts {
		ts[i] = s.sample()
	}
	return transform.NewChain(ts...)
}

// encode applies forward to every code point, rejecting the whole chain on
// a code point that does not fit the bit width, an overflow, or a reverse
// mismatch for any code point.
func (e Engine) encode(forward, reverse transform.Chain, points []rune, mask uint64) ([]uint64, error) {
	bytes := make([]uint64, len(points))
	for i, r := range points {
		x := uint64(r)
		if x > mask {
			return nil, transform.ErrOverflow
		}
		y, err := forward.Apply(x)
		if err != nil {
			return nil, err
		}
		back, err := reverse.Apply(y)
		if err != nil {
			return nil, err
		}
		if back != x {
			return nil, transform.ErrOverflow
		}
		bytes[i] = y
	}
	return bytes, nil
}
