package transform

import "fmt"

// RotL rotates x left by K bits within the configured width. It never
// overflows.
type RotL struct {
	width
	K uint
}

// NewRotL returns RotL(k) for the given bit width. It panics if k is outside
// [1, bits-1].
func NewRotL(bits uint, k uint) RotL {
	if k < 1 || k > bits-1 {
		panic(fmt.Sprintf("transform: RotL(%d) out of range [1, %d]", k, bits-1))
	}
	return RotL{newWidth(bits), k}
}

func (t RotL) Apply(x uint64) (uint64, error) {
	lhs := t.bits - t.K
	return (((x & t.mask) >> lhs) | (x << t.K)) & t.mask, nil
}

func (t RotL) Invert() Transform { return RotR{t.width, t.K} }
func (t RotL) Kind() Kind        { return KindRotL }

// RotR rotates x right by K bits within the configured width. It never
// overflows.
type RotR struct {
	width
	K uint
}

// NewRotR returns RotR(k) for the given bit width. It panics if k is outside
// [1, bits-1].
func NewRotR(bits uint, k uint) RotR {
	if k < 1 || k > bits-1 {
		panic(fmt.Sprintf("transform: RotR(%d) out of range [1, %d]", k, bits-1))
	}
	return RotR{newWidth(bits), k}
}

func (t RotR) Apply(x uint64) (uint64, error) {
	lhs := t.bits - t.K
	return (((x & t.mask) << lhs) | (x >> t.K)) & t.mask, nil
}

func (t RotR) Invert() Transform { return RotL{t.width, t.K} }
func (t RotR) Kind() Kind        { return KindRotR }
