package transform

import "testing"

func TestGcd(t *testing.T) {
	tests := []struct {
		a, b, want uint64
	}{
		{0, 5, 5},
		{5, 0, 5},
		{12, 18, 6},
		{17, 13, 1},
		{100, 75, 25},
	}
	for _, tt := range tests {
		if got := Gcd(tt.a, tt.b); got != tt.want {
			t.Errorf("Gcd(%d, %d) = %d; want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestModInverse(t *testing.T) {
	// 3 * 4 = 12 = 1 (mod 11).
	got, err := ModInverse(3, 11)
	if err != nil {
		t.Fatalf("ModInverse(3, 11) error: %v", err)
	}
	if got != 4 {
		t.Errorf("ModInverse(3, 11) = %d; want 4", got)
	}

	if got, err := ModInverse(1, 65536); err != nil || got != 1 {
		t.Errorf("ModInverse(1, 65536) = (%d, %v); want (1, nil)", got, err)
	}
	if got, err := ModInverse(12345, 1); err != nil || got != 0 {
		t.Errorf("ModInverse(12345, 1) = (%d, %v); want (0, nil)", got, err)
	}

	if _, err := ModInverse(4, 8); err == nil {
		t.Error("ModInverse(4, 8) should fail: gcd(4,8) != 1")
	}
	if _, err := ModInverse(8, 4); err == nil {
		t.Error("ModInverse(8, 4) should fail: 8 mod 4 == 0")
	}
}

func TestModInverseRoundTrip(t *testing.T) {
	const m = uint64(1) << 16
	for v := uint64(3); v < 200; v += 2 {
		if Gcd(v, m) != 1 {
			continue
		}
		inv, err := ModInverse(v, m)
		if err != nil {
			t.Fatalf("ModInverse(%d, %d) error: %v", v, m, err)
		}
		if (v*inv)%m != 1 {
			t.Errorf("v=%d inv=%d: (v*inv) mod m = %d; want 1", v, inv, (v*inv)%m)
		}
	}
}

func TestMulOverflows(t *testing.T) {
	const max = uint64(1) << 16
	if mulOverflows(100, 2, max) {
		t.Error("100*2 should not overflow a 16-bit max")
	}
	if !mulOverflows(1000, 1000, max) {
		t.Error("1000*1000 should overflow a 16-bit max")
	}
	// Values whose product would overflow a native uint64 multiply must
	// still be detected correctly via the wide accumulator.
	const big = uint64(1) << 40
	if !mulOverflows(big, big, max) {
		t.Error("a product exceeding 2^64 must still be reported as overflowing")
	}
}
