package transform

// mulModBase is the shared representation behind MulMod and MulModInv (see
// spec Design Notes: "A flat design: MulMod{apply_value, paired_value} with
// invert swapping the two... is equivalent and simpler" than modelling
// MulModInv as a subclass of MulMod). value is the multiplier this node's
// Apply uses; paired is the multiplier the inverted node will use. m is the
// modulus, always 2^Bits().
type mulModBase struct {
	width
	value  uint64
	paired uint64
	m      uint64
}

// Modulus returns the modulus this transform operates under, always 2^Bits().
func (b mulModBase) Modulus() uint64 { return b.m }

func (b mulModBase) apply(x uint64) (uint64, error) {
	if mulOverflows(x, b.value, b.max()) {
		return 0, ErrOverflow
	}
	return (x * b.value) % b.m, nil
}

// MulMod transforms x to (x*V) mod M. Construction is unconditional: it
// stores the value (and, when one exists, its modular inverse as the paired
// multiplier, so that Invert().Invert() is structurally equal to the
// receiver), and leaves validity to be enforced by the engine
// sampler, not the constructor. Calling Invert on a MulMod
// whose V has no modular inverse mod M panics — the sampler guarantees this
// never happens for chains the engine generates.
type MulMod struct {
	mulModBase
}

// NewMulMod returns MulMod(v, m) for the given bit width, unconditionally;
// m is always 2^bits.
func NewMulMod(bits uint, v uint64) MulMod {
	w := newWidth(bits)
	inv, _ := ModInverse(v, w.max())
	return MulMod{mulModBase{w, v, inv, w.max()}}
}

func (t MulMod) Value() uint64 { return t.value }

func (t MulMod) Apply(x uint64) (uint64, error) { return t.apply(x) }

// Invert returns MulModInv(V, M), computing the modular inverse of V. It
// panics if no such inverse exists; see the type doc comment.
func (t MulMod) Invert() Transform {
	inv, err := ModInverse(t.value, t.m)
	if err != nil {
		panic("transform: MulMod.Invert() called on a value with no modular inverse; the engine sampler should have rejected it")
	}
	return MulModInv{mulModBase{t.width, inv, t.value, t.m}}
}

func (t MulMod) Kind() Kind { return KindMulMod }

// MulModInv transforms x to (x*V) mod M, where V is the modular inverse of
// some originally-sampled value. Unlike MulMod, construction is fallible:
// NewMulModInv computes the inverse eagerly and returns ErrNoInverse if it
// doesn't exist, so that Invert (which recovers the original value) never
// has to fail.
type MulModInv struct {
	mulModBase
}

// NewMulModInv returns MulModInv wrapping the modular inverse of v mod m. It
// returns ErrNoInverse if v has no inverse mod m.
func NewMulModInv(bits uint, v uint64) (MulModInv, error) {
	w := newWidth(bits)
	inv, err := ModInverse(v, w.max())
	if err != nil {
		return MulModInv{}, err
	}
	return MulModInv{mulModBase{w, inv, v, w.max()}}, nil
}

func (t MulModInv) Value() uint64 { return t.value }

func (t MulModInv) Apply(x uint64) (uint64, error) { return t.apply(x) }

// Invert returns MulMod(initial, M), where initial is the value originally
// passed to NewMulModInv. This never fails, since MulMod's constructor is
// unconditional.
func (t MulModInv) Invert() Transform {
	return MulMod{mulModBase{t.width, t.paired, t.value, t.m}}
}

func (t MulModInv) Kind() Kind { return KindMulModInv }
