package emit

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/54754N4/strobf"
	"github.com/54754N4/strobf/transform"
)

// JavaScript renders a decoder as a browser/Node-compatible snippet over a
// numeric array, reassembled into a string at the end via
// String.fromCodePoint so values outside the BMP still round-trip.
type JavaScript struct {
	namer namer

	variable string
	temp     string
	i        string
	result   string
}

func NewJavaScript(rng *rand.Rand) *JavaScript {
	return &JavaScript{namer: newNamer(rng)}
}

func (j *JavaScript) Initialise(ctx strobf.Context, sb *strings.Builder) {
	j.variable = j.namer.next()
	j.temp = j.namer.next()
	j.i = j.namer.next()
	j.result = "string"

	sb.WriteString("var " + j.result + " = [")
	for i, v := range ctx.Bytes {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(hex(v))
	}
	sb.WriteString("];\n")

	permutation := ""
	if ctx.Reverse.ContainsPerm() {
		permutation = ", " + j.temp
	}
	fmt.Fprintf(sb, "for (var %s=0, %s%s; %s < %s.length; %s++) {\n", j.i, j.variable, permutation, j.i, j.result, j.i)
	fmt.Fprintf(sb, "\t%s = %s[%s];\n", j.variable, j.result, j.i)
}

func (j *JavaScript) Finalise(ctx strobf.Context, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s[%s] = %s;\n", j.result, j.i, j.variable)
	sb.WriteString("}\n" + j.result + " = String.fromCodePoint(..." + j.result + ");\n")
	sb.WriteString("console.log(" + j.result + ");\n")
}

func (j *JavaScript) VisitAdd(t transform.Add, sb *strings.Builder) {
	if t.V == 1 {
		sb.WriteString("\t" + j.variable + "++;\n")
		return
	}
	fmt.Fprintf(sb, "\t%s += %s;\n", j.variable, hex(t.V))
}

func (j *JavaScript) VisitSub(t transform.Sub, sb *strings.Builder) {
	if t.V == 1 {
		sb.WriteString("\t" + j.variable + "--;\n")
		return
	}
	fmt.Fprintf(sb, "\t%s -= %s;\n", j.variable, hex(t.V))
}

func (j *JavaScript) VisitXor(t transform.Xor, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s ^= %s;\n", j.variable, hex(t.V))
}

func (j *JavaScript) VisitNot(t transform.Not, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s = ~%s & %s;\n", j.variable, j.variable, hex(t.Mask()))
}

func (j *JavaScript) VisitRotL(t transform.RotL, sb *strings.Builder) {
	mask := hex(t.Mask())
	fmt.Fprintf(sb, "\t%s = (((%s & %s) >> %s) | (%s << %s)) & %s;\n",
		j.variable, j.variable, mask, hex(uint64(t.Bits()-t.K)), j.variable, hex(uint64(t.K)), mask)
}

func (j *JavaScript) VisitRotR(t transform.RotR, sb *strings.Builder) {
	mask := hex(t.Mask())
	fmt.Fprintf(sb, "\t%s = (((%s & %s) << %s) | (%s >> %s)) & %s;\n",
		j.variable, j.variable, mask, hex(uint64(t.Bits()-t.K)), j.variable, hex(uint64(t.K)), mask)
}

func (j *JavaScript) VisitPerm(t transform.Perm, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s = ((%s >> %s) ^ (%s >> %s)) & ((1 << %s) - 1);\n",
		j.temp, j.variable, hex(uint64(t.P1)), j.variable, hex(uint64(t.P2)), hex(uint64(t.B)))
	fmt.Fprintf(sb, "\t%s ^= (%s << %s) | (%s << %s);\n",
		j.variable, j.temp, hex(uint64(t.P1)), j.temp, hex(uint64(t.P2)))
}

func (j *JavaScript) VisitMulMod(t transform.MulMod, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s = (%s * %s) %% %s;\n", j.variable, j.variable, hex(t.Value()), hex(t.Modulus()))
}

func (j *JavaScript) VisitMulModInv(t transform.MulModInv, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s = (%s * %s) %% %s;\n", j.variable, j.variable, hex(t.Value()), hex(t.Modulus()))
}
