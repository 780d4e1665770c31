package transform

import "testing"

func TestChainApplyAndInvert(t *testing.T) {
	c := NewChain(
		NewAdd(16, 666),
	)
	got, err := c.Apply(1)
	if err != nil || got != 667 {
		t.Fatalf("chain.Apply(1) = (%d, %v); want (667, nil)", got, err)
	}
	back, err := c.Invert().Apply(667)
	if err != nil || back != 1 {
		t.Fatalf("chain.Invert().Apply(667) = (%d, %v); want (1, nil)", back, err)
	}
}

func TestChainReversesOrder(t *testing.T) {
	c := NewChain(NewAdd(16, 10), NewXor(16, 0xFF))
	rev := c.Invert()
	ts := rev.Transforms()
	if len(ts) != 2 {
		t.Fatalf("len(reverse) = %d; want 2", len(ts))
	}
	if ts[0].Kind() != KindXor || ts[1].Kind() != KindSub {
		t.Errorf("reverse order = [%v, %v]; want [Xor, Sub]", ts[0].Kind(), ts[1].Kind())
	}
}

func TestChainEndToEnd(t *testing.T) {
	c := NewChain(
		NewAdd(16, 10),
		NewXor(16, 0x1234),
		NewRotL(16, 3),
		NewNot(16),
	)
	rev := c.Invert()
	for x := uint64(0); x < 1<<12; x++ {
		y, err := c.Apply(x)
		if err != nil {
			continue
		}
		back, err := rev.Apply(y)
		if err != nil || back != x {
			t.Fatalf("chain round trip failed for x=%d: got (%d, %v)", x, back, err)
		}
	}
}

func TestChainContains(t *testing.T) {
	withPerm := NewChain(NewAdd(16, 1), NewPerm(16, 0, 3, 2))
	withoutPerm := NewChain(NewAdd(16, 1), NewXor(16, 2))

	if !withPerm.ContainsPerm() {
		t.Error("chain with a Perm should report ContainsPerm() == true")
	}
	if withoutPerm.ContainsPerm() {
		t.Error("chain without a Perm should report ContainsPerm() == false")
	}
}
