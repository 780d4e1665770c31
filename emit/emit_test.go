package emit

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/54754N4/strobf"
	"github.com/54754N4/strobf/transform"
)

func contextWithChain(ts ...transform.Transform) strobf.Context {
	forward := transform.NewChain(ts...)
	reverse := forward.Invert()
	bytes := make([]uint64, 3)
	for i := range bytes {
		y, err := forward.Apply(uint64('A') + uint64(i))
		if err != nil {
			panic(err)
		}
		bytes[i] = y
	}
	return strobf.Context{
		Bits:    16,
		Mask:    0xFFFF,
		Bytes:   bytes,
		Forward: forward,
		Reverse: reverse,
	}
}

func TestEmitCoversEveryBackend(t *testing.T) {
	ctx := contextWithChain(transform.NewAdd(16, 5), transform.NewXor(16, 0xABCD))
	for _, target := range Targets {
		b, err := ByName(target, rand.New(rand.NewSource(1)))
		if err != nil {
			t.Fatalf("ByName(%q) error: %v", target, err)
		}
		if _, err := Emit(ctx, b); err != nil {
			t.Errorf("Emit(%q) error: %v", target, err)
		}
	}
}

func TestByNameUnknownTarget(t *testing.T) {
	if _, err := ByName("brainfuck", nil); err == nil {
		t.Error("ByName(\"brainfuck\") should fail")
	}
}

func TestPermutationScratchVariableDeclaredOnlyWhenNeeded(t *testing.T) {
	withPerm := contextWithChain(transform.NewPerm(16, 0, 3, 2))
	withoutPerm := contextWithChain(transform.NewAdd(16, 5))

	// C#, C, JavaScript, and Java declare the scratch variable inline in the
	// for-loop header only when the reverse chain contains a Perm.
	for _, target := range []string{"csharp", "c", "javascript", "java"} {
		rng := rand.New(rand.NewSource(2))
		b, err := ByName(target, rng)
		if err != nil {
			t.Fatal(err)
		}
		out, err := Emit(withPerm, b)
		if err != nil {
			t.Fatal(err)
		}

		rng2 := rand.New(rand.NewSource(2))
		b2, err := ByName(target, rng2)
		if err != nil {
			t.Fatal(err)
		}
		out2, err := Emit(withoutPerm, b2)
		if err != nil {
			t.Fatal(err)
		}
		if strings.Count(out, ",") <= strings.Count(out2, ",") {
			t.Errorf("%s: expected the Perm-bearing chain's for-loop header to declare an extra scratch variable", target)
		}
	}
}

func TestSingleStepAddSubOptimization(t *testing.T) {
	// Emit walks the reverse chain, so a forward Sub(1) is rendered as Add(1)
	// and a forward Add(1) as Sub(1).
	ctx := contextWithChain(transform.NewSub(16, 1))
	rng := rand.New(rand.NewSource(3))
	b, err := ByName("csharp", rng)
	if err != nil {
		t.Fatal(err)
	}
	out, err := Emit(ctx, b)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "++;") {
		t.Errorf("Add(1) should render as an increment, got:\n%s", out)
	}

	subCtx := contextWithChain(transform.NewAdd(16, 1))
	rng2 := rand.New(rand.NewSource(3))
	b2, err := ByName("csharp", rng2)
	if err != nil {
		t.Fatal(err)
	}
	out2, err := Emit(subCtx, b2)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out2, "--;") {
		t.Errorf("Sub(1) should render as a decrement, got:\n%s", out2)
	}
}

func TestMasm64BlockSelection(t *testing.T) {
	tests := []struct {
		bits uint
		want int
	}{
		{8, 0},
		{16, 1},
	}
	for _, tt := range tests {
		ctx := strobf.Context{Bits: tt.bits, Mask: (uint64(1) << tt.bits) - 1, Bytes: []uint64{1, 2, 3}, Forward: transform.NewChain(), Reverse: transform.NewChain()}
		m := NewMASM64(rand.New(rand.NewSource(1)))
		out, err := Emit(ctx, m)
		if err != nil {
			t.Fatal(err)
		}
		if m.block != tt.want {
			t.Errorf("bits=%d: block = %d; want %d", tt.bits, m.block, tt.want)
		}
		if !strings.Contains(out, dataTypes[tt.want]) {
			t.Errorf("bits=%d: expected data directive %q in output", tt.bits, dataTypes[tt.want])
		}
	}
}

func TestEveryBackendProducesNonEmptyOutput(t *testing.T) {
	// Add(666)/Xor(0x1234)/RotL(3) push 'A'..'C' past 32768, so a trailing
	// MulMod(3) would need to multiply an already-large intermediate value
	// and overflow the 16-bit domain; the engine would simply reject this
	// chain and resample, so exercise MulMod separately against inputs
	// small enough that the multiply actually survives.
	mixed := contextWithChain(
		transform.NewAdd(16, 666),
		transform.NewXor(16, 0x1234),
		transform.NewRotL(16, 3),
		transform.NewPerm(16, 0, 5, 2),
	)
	mulmod := contextWithChain(transform.NewMulMod(16, 3))

	for _, ctx := range []strobf.Context{mixed, mulmod} {
		for _, target := range Targets {
			b, err := ByName(target, rand.New(rand.NewSource(99)))
			if err != nil {
				t.Fatal(err)
			}
			out, err := Emit(ctx, b)
			if err != nil {
				t.Fatalf("%s: %v", target, err)
			}
			if strings.TrimSpace(out) == "" {
				t.Errorf("%s: Emit produced empty output", target)
			}
		}
	}
}
