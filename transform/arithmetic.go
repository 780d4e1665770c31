package transform

import "github.com/holiman/uint256"

// Gcd computes the greatest common divisor of a and b using Stein's binary
// algorithm. Defined for non-negative inputs; Gcd(0, b) = b, Gcd(a, 0) = a.
func Gcd(a, b uint64) uint64 {
	if a == 0 {
		return b
	}
	if b == 0 {
		return a
	}
	var n uint64
	for (a|b)&1 == 0 {
		a >>= 1
		b >>= 1
		n++
	}
	for a&1 == 0 {
		a >>= 1
	}
	for {
		for b&1 == 0 {
			b >>= 1
		}
		if a > b {
			a, b = b, a
		}
		b -= a
		if b == 0 {
			break
		}
	}
	return a << n
}

// ModInverse returns the canonical representative in [0, m) of the modular
// inverse of a mod m, via the extended Euclidean algorithm. It returns
// ErrNoInverse if a mod m == 0 or gcd(a, m) != 1. ModInverse(1, m) == 1;
// ModInverse(a, 1) == 0.
func ModInverse(a, m uint64) (uint64, error) {
	if m == 1 {
		return 0, nil
	}
	if a%m == 0 {
		return 0, ErrNoInverse
	}
	if Gcd(a, m) != 1 {
		return 0, ErrNoInverse
	}

	m0 := int64(m)
	x, y := int64(1), int64(0)
	aa := int64(a)
	mm := int64(m)
	for aa > 1 {
		q := aa / mm
		aa, mm = mm, aa%mm
		x, y = y, x-q*y
	}
	if x < 0 {
		x += m0
	}
	return uint64(x), nil
}

// mulOverflows reports whether x*v >= max, computing the product in a
// 256-bit accumulator so the check is correct even when x*v would overflow a
// 64-bit machine word, as opposed to checking the product after it has
// already wrapped.
func mulOverflows(x, v, max uint64) bool {
	var a, b, prod, m uint256.Int
	a.SetUint64(x)
	b.SetUint64(v)
	prod.Mul(&a, &b)
	m.SetUint64(max)
	return prod.Cmp(&m) >= 0
}
