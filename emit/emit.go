// Package emit renders an obfuscated strobf.Context as standalone source
// code in one of several target languages. Each target is a Backend: a
// double-dispatch visitor that walks the context's reverse chain and
// accumulates source text through an Initialise/Visit*/Finalise sequence.
package emit

import (
	"fmt"
	"strings"

	"github.com/54754N4/strobf"
	"github.com/54754N4/strobf/transform"
)

// A Backend renders one target language's decoder. Implementations hold
// their own per-emission state (generated identifier names, whether a
// permutation scratch variable is needed, and so on); a Backend value must
// not be reused across two calls to Emit.
type Backend interface {
	// Initialise writes the preamble: the encoded byte array and the
	// opening of the decode loop.
	Initialise(ctx strobf.Context, sb *strings.Builder)
	// Finalise writes the loop close and the code that prints the result.
	Finalise(ctx strobf.Context, sb *strings.Builder)

	VisitAdd(t transform.Add, sb *strings.Builder)
	VisitSub(t transform.Sub, sb *strings.Builder)
	VisitXor(t transform.Xor, sb *strings.Builder)
	VisitNot(t transform.Not, sb *strings.Builder)
	VisitRotL(t transform.RotL, sb *strings.Builder)
	VisitRotR(t transform.RotR, sb *strings.Builder)
	VisitPerm(t transform.Perm, sb *strings.Builder)
	VisitMulMod(t transform.MulMod, sb *strings.Builder)
	VisitMulModInv(t transform.MulModInv, sb *strings.Builder)
}

// Emit drives b over ctx's reverse chain, returning the rendered decoder
// source. It returns an error if the chain contains a transform Kind no
// Backend method covers, which can only happen if a new Transform variant
// is added to package transform without a matching Visit method here.
func Emit(ctx strobf.Context, b Backend) (string, error) {
	var sb strings.Builder
	b.Initialise(ctx, &sb)
	for _, t := range ctx.Reverse.Transforms() {
		switch v := t.(type) {
		case transform.Add:
			b.VisitAdd(v, &sb)
		case transform.Sub:
			b.VisitSub(v, &sb)
		case transform.Xor:
			b.VisitXor(v, &sb)
		case transform.Not:
			b.VisitNot(v, &sb)
		case transform.RotL:
			b.VisitRotL(v, &sb)
		case transform.RotR:
			b.VisitRotR(v, &sb)
		case transform.Perm:
			b.VisitPerm(v, &sb)
		case transform.MulMod:
			b.VisitMulMod(v, &sb)
		case transform.MulModInv:
			b.VisitMulModInv(v, &sb)
		default:
			return "", fmt.Errorf("emit: unimplemented double dispatch for %T", t)
		}
	}
	b.Finalise(ctx, &sb)
	return sb.String(), nil
}
