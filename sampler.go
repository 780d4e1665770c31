package strobf

import (
	"math/rand"

	"github.com/54754N4/strobf/transform"
)

// sampler draws random, validity-checked parameters for each transform
// variant, mirroring PolymorphicEngine's per-variant sampling methods.
type sampler struct {
	rng                 *rand.Rand
	bits                uint
	additiveLimit       uint64
	multiplicativeLimit uint64
}

func newSampler(rng *rand.Rand, bits uint) sampler {
	return sampler{
		rng:                 rng,
		bits:                bits,
		additiveLimit:       uint64(1) << (bits - 2),
		multiplicativeLimit: uint64(1) << (bits / 2),
	}
}

// nextUint64 returns a uniform random value in [0, bound).
func (s sampler) nextUint64(bound uint64) uint64 {
	if bound <= 1<<62 {
		return uint64(s.rng.Int63n(int64(bound)))
	}
	// bound exceeds 1<<62 only for widths of 63 bits or more (randomMax
	// handles 64 bits itself); draw a full 64-bit value and reduce it
	// modulo bound.
	hi := s.rng.Uint64()
	return hi % bound
}

func (s sampler) randomMax() uint64 {
	if s.bits == 64 {
		return s.rng.Uint64()
	}
	return s.nextUint64(uint64(1) << s.bits)
}

func (s sampler) add() transform.Transform {
	return transform.NewAdd(s.bits, s.nextUint64(s.additiveLimit))
}

func (s sampler) sub() transform.Transform {
	return transform.NewSub(s.bits, s.nextUint64(s.additiveLimit))
}

func (s sampler) xor() transform.Transform {
	return transform.NewXor(s.bits, s.randomMax())
}

func (s sampler) not() transform.Transform {
	return transform.NewNot(s.bits)
}

func (s sampler) rotateLeft() transform.Transform {
	k := uint(s.nextUint64(uint64(s.bits-1))) + 1
	return transform.NewRotL(s.bits, k)
}

func (s sampler) rotateRight() transform.Transform {
	k := uint(s.nextUint64(uint64(s.bits-1))) + 1
	return transform.NewRotR(s.bits, k)
}

func (s sampler) permutation() transform.Transform {
	for {
		p1 := uint(s.nextUint64(uint64(s.bits)))
		p2 := uint(s.nextUint64(uint64(s.bits)))
		b := uint(s.nextUint64(uint64(s.bits-2))) + 2
		if p1+b < s.bits && p2+b < s.bits {
			return transform.NewPerm(s.bits, p1, p2, b)
		}
	}
}

func (s sampler) mulMod() transform.Transform {
	modulus := uint64(1) << s.bits
	for {
		v := s.randomMax()
		if v == 1 {
			continue
		}
		inv, err := transform.ModInverse(v, modulus)
		if err != nil || inv > s.multiplicativeLimit {
			continue
		}
		return transform.NewMulMod(s.bits, v)
	}
}

func (s sampler) mulModInv() transform.Transform {
	for {
		v := s.randomMax()
		mmi, err := transform.NewMulModInv(s.bits, v)
		if err != nil || mmi.Value() == 1 {
			continue
		}
		mm := mmi.Invert().(transform.MulMod)
		if mm.Value() > s.multiplicativeLimit {
			continue
		}
		return mmi
	}
}

// sample draws one uniformly-chosen transform variant.
func (s sampler) sample() transform.Transform {
	switch s.rng.Intn(9) {
	case 0:
		return s.add()
	case 1:
		return s.sub()
	case 2:
		return s.xor()
	case 3:
		return s.not()
	case 4:
		return s.rotateLeft()
	case 5:
		return s.rotateRight()
	case 6:
		return s.permutation()
	case 7:
		return s.mulMod()
	default:
		return s.mulModInv()
	}
}
