package transform

import "fmt"

// Perm swaps two B-bit fields at bit offsets P1 and P2, via the classic
// XOR-swap identity. It is an involution and never overflows.
type Perm struct {
	width
	P1, P2, B uint
}

// NewPerm returns Perm(p1, p2, b) for the given bit width. It panics if
// p1+b or p2+b reaches or exceeds bits, the invariant the engine's sampler
// maintains by construction.
func NewPerm(bits uint, p1, p2, b uint) Perm {
	if p1+b >= bits || p2+b >= bits {
		panic(fmt.Sprintf("transform: Perm(%d,%d,%d) invalid for width %d", p1, p2, b, bits))
	}
	return Perm{newWidth(bits), p1, p2, b}
}

func (t Perm) Apply(x uint64) (uint64, error) {
	fieldMask := (uint64(1) << t.B) - 1
	xorBits := ((x >> t.P1) ^ (x >> t.P2)) & fieldMask
	return x ^ ((xorBits << t.P1) | (xorBits << t.P2)), nil
}

func (t Perm) Invert() Transform { return t }
func (t Perm) Kind() Kind        { return KindPerm }
