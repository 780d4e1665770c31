package emit

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/54754N4/strobf"
	"github.com/54754N4/strobf/transform"
)

// CSharp renders a decoder as a C# snippet built around a mutable
// StringBuilder, the idiomatic way to mutate individual UTF-16 code units
// in place.
type CSharp struct {
	namer namer

	variable string
	temp     string
	i        string
	result   string
}

func NewCSharp(rng *rand.Rand) *CSharp {
	return &CSharp{namer: newNamer(rng)}
}

func (c *CSharp) Initialise(ctx strobf.Context, sb *strings.Builder) {
	c.variable = c.namer.next()
	c.temp = c.namer.next()
	c.i = c.namer.next()
	c.result = "str"

	sb.WriteString("var " + c.result + " = new System.Text.StringBuilder(\"")
	for _, v := range ctx.Bytes {
		fmt.Fprintf(sb, "\\u%04x", v)
	}
	sb.WriteString("\");\n")

	permutation := ""
	if ctx.Reverse.ContainsPerm() {
		permutation = ", " + c.temp
	}
	fmt.Fprintf(sb, "for (int %s=0, %s%s; %s < %s.Length; %s++) {\n", c.i, c.variable, permutation, c.i, c.result, c.i)
	fmt.Fprintf(sb, "\t%s = %s[%s];\n", c.variable, c.result, c.i)
}

func (c *CSharp) Finalise(ctx strobf.Context, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s[%s] = (char) %s;\n", c.result, c.i, c.variable)
	sb.WriteString("}\n")
	sb.WriteString("Console.WriteLine(" + c.result + ");")
}

func (c *CSharp) VisitAdd(t transform.Add, sb *strings.Builder) {
	if t.V == 1 {
		sb.WriteString("\t" + c.variable + "++;\n")
		return
	}
	fmt.Fprintf(sb, "\t%s += %s;\n", c.variable, hex(t.V))
}

func (c *CSharp) VisitSub(t transform.Sub, sb *strings.Builder) {
	if t.V == 1 {
		sb.WriteString("\t" + c.variable + "--;\n")
		return
	}
	fmt.Fprintf(sb, "\t%s -= %s;\n", c.variable, hex(t.V))
}

func (c *CSharp) VisitXor(t transform.Xor, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s ^= %s;\n", c.variable, hex(t.V))
}

func (c *CSharp) VisitNot(t transform.Not, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s = ~%s & %s;\n", c.variable, c.variable, hex(t.Mask()))
}

func (c *CSharp) VisitRotL(t transform.RotL, sb *strings.Builder) {
	mask := hex(t.Mask())
	fmt.Fprintf(sb, "\t%s = (((%s & %s) >> %s) | (%s << %s)) & %s;\n",
		c.variable, c.variable, mask, hex(uint64(t.Bits()-t.K)), c.variable, hex(uint64(t.K)), mask)
}

func (c *CSharp) VisitRotR(t transform.RotR, sb *strings.Builder) {
	mask := hex(t.Mask())
	fmt.Fprintf(sb, "\t%s = (((%s & %s) << %s) | (%s >> %s)) & %s;\n",
		c.variable, c.variable, mask, hex(uint64(t.Bits()-t.K)), c.variable, hex(uint64(t.K)), mask)
}

func (c *CSharp) VisitPerm(t transform.Perm, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s = ((%s >> %s) ^ (%s >> %s)) & ((1 << %s) - 1);\n",
		c.temp, c.variable, hex(uint64(t.P1)), c.variable, hex(uint64(t.P2)), hex(uint64(t.B)))
	fmt.Fprintf(sb, "\t%s ^= (%s << %s) | (%s << %s);\n",
		c.variable, c.temp, hex(uint64(t.P1)), c.temp, hex(uint64(t.P2)))
}

func (c *CSharp) VisitMulMod(t transform.MulMod, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s = (%s * %s) %% %s;\n", c.variable, c.variable, hex(t.Value()), hex(t.Modulus()))
}

func (c *CSharp) VisitMulModInv(t transform.MulModInv, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s = (%s * %s) %% %s;\n", c.variable, c.variable, hex(t.Value()), hex(t.Modulus()))
}
