package strobf

import "github.com/54754N4/strobf/transform"

// A Context is the engine's frozen output: the obfuscated code-point array
// plus everything emission needs to render a decoder for it. It is
// immutable after construction; consumers may only read it.
type Context struct {
	Bits    uint
	Mask    uint64
	Bytes   []uint64
	Forward transform.Chain
	Reverse transform.Chain
}
