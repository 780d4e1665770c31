package strobf

import (
	"testing"

	"github.com/54754N4/strobf/runopts"
)

func TestEngineTransformRoundTrips(t *testing.T) {
	e := New(8, 10, 16, runopts.WithSeed(1))
	ctx, err := e.Transform("Hello World!")
	if err != nil {
		t.Fatalf("Transform() error: %v", err)
	}
	if ctx.Forward.Len() < 8 || ctx.Forward.Len() > 10 {
		t.Errorf("chain length %d outside configured [8, 10]", ctx.Forward.Len())
	}
	runes := []rune("Hello World!")
	if len(ctx.Bytes) != len(runes) {
		t.Fatalf("len(Bytes) = %d; want %d", len(ctx.Bytes), len(runes))
	}
	for i, r := range runes {
		back, err := ctx.Reverse.Apply(ctx.Bytes[i])
		if err != nil {
			t.Fatalf("Reverse.Apply(Bytes[%d]) error: %v", i, err)
		}
		if back != uint64(r) {
			t.Errorf("round trip mismatch at %d: got %d, want %d", i, back, r)
		}
	}
}

func TestEngineIsDeterministicGivenSeed(t *testing.T) {
	text := "reproducible payload"
	e1 := New(6, 6, 16, runopts.WithSeed(42))
	e2 := New(6, 6, 16, runopts.WithSeed(42))

	ctx1, err := e1.Transform(text)
	if err != nil {
		t.Fatal(err)
	}
	ctx2, err := e2.Transform(text)
	if err != nil {
		t.Fatal(err)
	}
	if len(ctx1.Bytes) != len(ctx2.Bytes) {
		t.Fatalf("byte lengths differ: %d vs %d", len(ctx1.Bytes), len(ctx2.Bytes))
	}
	for i := range ctx1.Bytes {
		if ctx1.Bytes[i] != ctx2.Bytes[i] {
			t.Errorf("same-seed engines diverged at index %d: %d vs %d", i, ctx1.Bytes[i], ctx2.Bytes[i])
		}
	}
}

func TestEngineExhaustsRetryBudget(t *testing.T) {
	// min_ops == max_ops == 0 is rejected by New; instead force exhaustion by
	// pairing a minimal retry budget with an 8-bit width and a long chain,
	// where the odds of an end-to-end bijective chain surviving are low.
	e := New(40, 40, 8, runopts.WithSeed(7), runopts.WithRetryBudget(1))
	_, err := e.Transform("this text is deliberately long enough to make round-tripping under an 8-bit width with a 40-operation chain exceedingly unlikely to succeed on the very first sampled attempt")
	if err == nil {
		// Not guaranteed to fail, but overwhelmingly likely to; if it didn't,
		// there's nothing more to assert here.
		t.Skip("sampled chain happened to succeed on the first attempt")
	}
	re, ok := err.(*RetryError)
	if !ok {
		t.Fatalf("error type = %T; want *RetryError", err)
	}
	if re.Attempts != 1 {
		t.Errorf("RetryError.Attempts = %d; want 1", re.Attempts)
	}
}

func TestEngineVerboseRetryDoesNotPanic(t *testing.T) {
	e := New(4, 5, 16, runopts.WithSeed(3), runopts.WithVerboseRetry())
	if _, err := e.Transform("ok"); err != nil {
		t.Fatalf("Transform() error: %v", err)
	}
}
