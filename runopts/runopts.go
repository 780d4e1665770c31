// Package runopts provides functional-options configuration for a
// strobf.Engine: a Configuration that Options mutate in turn.
package runopts

import (
	"crypto/rand"
	"encoding/binary"
	"math/big"
	mrand "math/rand"

	"github.com/ethereum/go-ethereum/crypto"
)

// DefaultRetryBudget is the number of chain-generation attempts the engine
// makes before giving up, absent a WithRetryBudget option.
const DefaultRetryBudget = 10_000

// A Configuration carries all values that can be modified to configure a
// strobf.Engine. It is initially populated with defaults and then passed to
// every Option to be modified.
type Configuration struct {
	RNG          *mrand.Rand
	RetryBudget  int
	VerboseRetry bool
}

// Default returns a Configuration with a non-reproducible RNG (seeded from
// crypto/rand) and the default retry budget.
func Default() Configuration {
	return Configuration{
		RNG:         mrand.New(mrand.NewSource(cryptoSeed())),
		RetryBudget: DefaultRetryBudget,
	}
}

func cryptoSeed() int64 {
	max := big.NewInt(1 << 62)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		// crypto/rand failing is a sign the host environment has no usable
		// entropy source; there's nothing sensible to retry here.
		panic("runopts: crypto/rand unavailable: " + err.Error())
	}
	return n.Int64()
}

// An Option modifies a Configuration.
type Option interface {
	Apply(*Configuration)
}

// A FuncOption converts any function into an Option by calling itself as
// Apply().
type FuncOption func(*Configuration)

// Apply calls f(c).
func (f FuncOption) Apply(c *Configuration) {
	f(c)
}

// WithSeed makes the engine's RNG deterministic, for reproducible tests and
// fixtures. Stable output isn't guaranteed by default, so this is opt-in only.
func WithSeed(seed int64) Option {
	return FuncOption(func(c *Configuration) {
		c.RNG = mrand.New(mrand.NewSource(seed))
	})
}

// WithRNG installs a caller-supplied RNG, e.g. for sharing a single source
// across Engines in a way WithSeed can't express.
func WithRNG(rng *mrand.Rand) Option {
	return FuncOption(func(c *Configuration) {
		c.RNG = rng
	})
}

// WithSeedPhrase derives a deterministic seed from phrase via Keccak256,
// for memorable, reproducible CTF payloads ("same phrase, same chain
// shape") without requiring the caller to manage a raw int64 seed.
func WithSeedPhrase(phrase string) Option {
	return FuncOption(func(c *Configuration) {
		digest := crypto.Keccak256([]byte(phrase))
		seed := int64(binary.BigEndian.Uint64(digest[:8]) &^ (1 << 63))
		c.RNG = mrand.New(mrand.NewSource(seed))
	})
}

// WithRetryBudget overrides the number of chain-generation attempts the
// engine makes before returning a retry-budget-exhausted error.
func WithRetryBudget(n int) Option {
	return FuncOption(func(c *Configuration) {
		c.RetryBudget = n
	})
}

// WithVerboseRetry turns on retry-loop tracing via the standard log
// package.
func WithVerboseRetry() Option {
	return FuncOption(func(c *Configuration) {
		c.VerboseRetry = true
	})
}
