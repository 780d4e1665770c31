package emit

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/54754N4/strobf"
	"github.com/54754N4/strobf/transform"
)

// C renders a decoder as a freestanding C snippet operating on a wchar_t
// array, mirroring CSharp's structure closely since both languages share
// C-style for-loops and in-place array mutation.
type C struct {
	namer namer

	variable string
	temp     string
	i        string
	result   string
}

func NewC(rng *rand.Rand) *C {
	return &C{namer: newNamer(rng)}
}

func (c *C) Initialise(ctx strobf.Context, sb *strings.Builder) {
	c.variable = c.namer.next()
	c.temp = c.namer.next()
	c.i = c.namer.next()
	c.result = "string"

	fmt.Fprintf(sb, "wchar_t %s[%d] = {", c.result, len(ctx.Bytes))
	for i, v := range ctx.Bytes {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(hex(v))
	}
	sb.WriteString("};\n")

	permutation := ""
	if ctx.Reverse.ContainsPerm() {
		permutation = ", " + c.temp
	}
	fmt.Fprintf(sb, "for (unsigned int %s=0, %s%s; %s < %d; %s++) {\n",
		c.i, c.variable, permutation, c.i, len(ctx.Bytes), c.i)
	fmt.Fprintf(sb, "\t%s = %s[%s];\n", c.variable, c.result, c.i)
}

func (c *C) Finalise(ctx strobf.Context, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s[%s] = %s;\n", c.result, c.i, c.variable)
	sb.WriteString("}\n")
	sb.WriteString("wprintf(" + c.result + ");")
}

func (c *C) VisitAdd(t transform.Add, sb *strings.Builder) {
	if t.V == 1 {
		sb.WriteString("\t" + c.variable + "++;\n")
		return
	}
	fmt.Fprintf(sb, "\t%s += %s;\n", c.variable, hex(t.V))
}

func (c *C) VisitSub(t transform.Sub, sb *strings.Builder) {
	if t.V == 1 {
		sb.WriteString("\t" + c.variable + "--;\n")
		return
	}
	fmt.Fprintf(sb, "\t%s -= %s;\n", c.variable, hex(t.V))
}

func (c *C) VisitXor(t transform.Xor, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s ^= %s;\n", c.variable, hex(t.V))
}

func (c *C) VisitNot(t transform.Not, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s = ~%s & %s;\n", c.variable, c.variable, hex(t.Mask()))
}

func (c *C) VisitRotL(t transform.RotL, sb *strings.Builder) {
	mask := hex(t.Mask())
	fmt.Fprintf(sb, "\t%s = (((%s & %s) >> %s) | (%s << %s)) & %s;\n",
		c.variable, c.variable, mask, hex(uint64(t.Bits()-t.K)), c.variable, hex(uint64(t.K)), mask)
}

func (c *C) VisitRotR(t transform.RotR, sb *strings.Builder) {
	mask := hex(t.Mask())
	fmt.Fprintf(sb, "\t%s = (((%s & %s) << %s) | (%s >> %s)) & %s;\n",
		c.variable, c.variable, mask, hex(uint64(t.Bits()-t.K)), c.variable, hex(uint64(t.K)), mask)
}

func (c *C) VisitPerm(t transform.Perm, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s = ((%s >> %s) ^ (%s >> %s)) & ((1 << %s) - 1);\n",
		c.temp, c.variable, hex(uint64(t.P1)), c.variable, hex(uint64(t.P2)), hex(uint64(t.B)))
	fmt.Fprintf(sb, "\t%s ^= (%s << %s) | (%s << %s);\n",
		c.variable, c.temp, hex(uint64(t.P1)), c.temp, hex(uint64(t.P2)))
}

func (c *C) VisitMulMod(t transform.MulMod, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s = (%s * %s) %% %s;\n", c.variable, c.variable, hex(t.Value()), hex(t.Modulus()))
}

func (c *C) VisitMulModInv(t transform.MulModInv, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s = (%s * %s) %% %s;\n", c.variable, c.variable, hex(t.Value()), hex(t.Modulus()))
}
