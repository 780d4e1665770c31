package transform

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

// roundTrip applies t then t.Invert(), skipping any x that Apply rejects.
func roundTrip(t *testing.T, tr Transform, domain uint64) {
	t.Helper()
	inv := tr.Invert()
	for x := uint64(0); x < domain; x++ {
		y, err := tr.Apply(x)
		if err != nil {
			continue
		}
		got, err := inv.Apply(y)
		if err != nil {
			t.Fatalf("%v: inverse overflowed on y=%d (from x=%d): %v", tr, y, x, err)
		}
		if got != x {
			t.Fatalf("%v: round trip x=%d -> y=%d -> %d; want %d", tr, x, y, got, x)
		}
	}
}

func TestAddSubRoundTrip(t *testing.T) {
	roundTrip(t, NewAdd(16, 666), 1<<16)
}

func TestAddConcreteScenario(t *testing.T) {
	add := NewAdd(16, 666)
	got, err := add.Apply(1)
	if err != nil || got != 667 {
		t.Fatalf("Add(666).Apply(1) = (%d, %v); want (667, nil)", got, err)
	}
	back, err := add.Invert().Apply(667)
	if err != nil || back != 1 {
		t.Fatalf("Sub(666).Apply(667) = (%d, %v); want (1, nil)", back, err)
	}
}

func TestXorRoundTrip(t *testing.T) {
	roundTrip(t, NewXor(16, 0xBEEF), 1<<16)
}

func TestNotInvolution(t *testing.T) {
	n := NewNot(16)
	for x := uint64(0); x < 1000; x++ {
		y, err := n.Apply(x)
		if err != nil {
			t.Fatalf("Not.Apply(%d) error: %v", x, err)
		}
		back, err := n.Apply(y)
		if err != nil || back != x {
			t.Fatalf("Not(Not(%d)) = (%d, %v); want (%d, nil)", x, back, err, x)
		}
	}
	if _, ok := n.Invert().(Not); !ok {
		t.Errorf("Not.Invert() should return a Not, got %T", n.Invert())
	}
}

func TestRotateRoundTrip(t *testing.T) {
	rol := NewRotL(16, 1)
	ror := rol.Invert().(RotR)

	y, err := rol.Apply(10)
	if err != nil {
		t.Fatal(err)
	}
	if y != 20 {
		t.Errorf("RotL(1,16).Apply(10) = %d; want 20", y)
	}
	back, err := ror.Apply(y)
	if err != nil || back != 10 {
		t.Fatalf("RotR(1,16).Apply(%d) = (%d, %v); want (10, nil)", y, back, err)
	}

	roundTrip(t, NewRotL(16, 5), 1<<16)
	roundTrip(t, NewRotR(16, 5), 1<<16)
}

func TestRotateInvertIsStructural(t *testing.T) {
	rol := NewRotL(16, 7)
	back := rol.Invert().Invert()
	if diff := cmp.Diff(rol, back, cmp.AllowUnexported(width{}, RotL{})); diff != "" {
		t.Errorf("RotL.Invert().Invert() mismatch (-want +got):\n%s", diff)
	}
}

func TestPermRoundTrip(t *testing.T) {
	p := NewPerm(16, 0, 3, 2)
	for x := uint64(30); x < 100; x++ {
		y, err := p.Apply(x)
		if err != nil {
			t.Fatalf("Perm.Apply(%d) error: %v", x, err)
		}
		back, err := p.Invert().Apply(y)
		if err != nil || back != x {
			t.Fatalf("Perm involution on %d failed: got (%d, %v)", x, back, err)
		}
	}
	if _, ok := p.Invert().(Perm); !ok {
		t.Errorf("Perm.Invert() should return a Perm, got %T", p.Invert())
	}
}

func TestMulModApplyAndInvert(t *testing.T) {
	mm := NewMulMod(16, 3)
	y, err := mm.Apply(5)
	if err != nil {
		t.Fatal(err)
	}
	if y != 15 {
		t.Errorf("MulMod(3).Apply(5) = %d; want 15", y)
	}

	// inv(3, 2^16) = 43691: applying it back to y=15 would need
	// 15*43691 = 655365, which overflows the 16-bit domain, since a
	// multiplier this large (well above MULTIPLICATIVE_LIMIT) is exactly
	// what the engine sampler rejects. Apply the inverse to a small input
	// instead, where the reverse multiply stays in range.
	back, err := mm.Invert().Apply(1)
	if err != nil {
		t.Fatal(err)
	}
	if back != 43691 {
		t.Errorf("MulMod(3).Invert().Apply(1) = %d; want 43691", back)
	}
}

func TestMulModInvPreservesOriginalValue(t *testing.T) {
	mmi, err := NewMulModInv(16, 3)
	if err != nil {
		t.Fatal(err)
	}
	back := mmi.Invert()
	mm, ok := back.(MulMod)
	if !ok {
		t.Fatalf("MulModInv.Invert() should return a MulMod, got %T", back)
	}
	if mm.Value() != 3 {
		t.Errorf("MulModInv(3).Invert().Value() = %d; want 3 (the original sampled value)", mm.Value())
	}
}

func TestMulModInvNoInverse(t *testing.T) {
	// gcd(4, 2^16) != 1: 4 has no inverse mod 65536.
	if _, err := NewMulModInv(16, 4); err == nil {
		t.Error("NewMulModInv(16, 4) should fail: 4 has no inverse mod 2^16")
	}
}

func TestConstructorsPanicOnInvalidParameters(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"Add out of range", func() { NewAdd(16, 1<<14) }},
		{"Sub out of range", func() { NewSub(16, 1<<14) }},
		{"RotL k too small", func() { NewRotL(16, 0) }},
		{"RotL k too large", func() { NewRotL(16, 16) }},
		{"Perm p1+b overflow", func() { NewPerm(16, 15, 0, 2) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected a panic for an out-of-range constructor call")
				}
			}()
			tt.fn()
		})
	}
}
