package transform

// A Chain is an ordered sequence of transforms applied as one composed
// function. Chains own their transforms; transforms are value-like so a
// Chain is cheap to copy and safe to share for reads.
type Chain struct {
	transforms []Transform
}

// NewChain returns a Chain applying ts in order.
func NewChain(ts ...Transform) Chain {
	cp := make([]Transform, len(ts))
	copy(cp, ts)
	return Chain{cp}
}

// Apply returns f_n(...f_1(x)...), propagating the first overflow
// encountered.
func (c Chain) Apply(x uint64) (uint64, error) {
	y := x
	for _, t := range c.transforms {
		var err error
		y, err = t.Apply(y)
		if err != nil {
			return 0, err
		}
	}
	return y, nil
}

// Invert returns [Invert(f_n), ..., Invert(f_1)], the chain that undoes c.
func (c Chain) Invert() Chain {
	out := make([]Transform, len(c.transforms))
	n := len(c.transforms)
	for i, t := range c.transforms {
		out[n-1-i] = t.Invert()
	}
	return Chain{out}
}

// Contains reports whether any transform in the chain has the given Kind.
func (c Chain) Contains(k Kind) bool {
	for _, t := range c.transforms {
		if t.Kind() == k {
			return true
		}
	}
	return false
}

// ContainsPerm is shorthand for Contains(KindPerm); back-ends use it to
// decide whether to declare a permutation scratch variable.
func (c Chain) ContainsPerm() bool {
	return c.Contains(KindPerm)
}

// Len returns the number of transforms in the chain.
func (c Chain) Len() int {
	return len(c.transforms)
}

// Transforms returns the chain's transforms in insertion order. The returned
// slice is a copy; mutating it does not affect c.
func (c Chain) Transforms() []Transform {
	out := make([]Transform, len(c.transforms))
	copy(out, c.transforms)
	return out
}
