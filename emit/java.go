package emit

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/54754N4/strobf"
	"github.com/54754N4/strobf/transform"
)

// Java renders a decoder as a self-contained snippet around a
// StringBuilder, the standard way to mutate a Java string's UTF-16 code
// units in place.
type Java struct {
	namer namer

	variable string
	temp     string
	i        string
	result   string
}

func NewJava(rng *rand.Rand) *Java {
	return &Java{namer: newNamer(rng)}
}

func (v *Java) Initialise(ctx strobf.Context, sb *strings.Builder) {
	v.variable = v.namer.next()
	v.temp = v.namer.next()
	v.i = v.namer.next()
	v.result = "string"

	sb.WriteString("StringBuilder " + v.result + " = new StringBuilder(\"")
	for _, b := range ctx.Bytes {
		fmt.Fprintf(sb, "\\u%04x", b)
	}
	sb.WriteString("\");\n")

	permutation := ""
	if ctx.Reverse.ContainsPerm() {
		permutation = ", " + v.temp
	}
	fmt.Fprintf(sb, "for (int %s=0, %s%s; %s < %s.length(); %s++) {\n", v.i, v.variable, permutation, v.i, v.result, v.i)
	fmt.Fprintf(sb, "\t%s = %s.charAt(%s);\n", v.variable, v.result, v.i)
}

func (v *Java) Finalise(ctx strobf.Context, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s.setCharAt(%s, (char) %s);\n", v.result, v.i, v.variable)
	sb.WriteString("}\nSystem.out.println(" + v.result + ");")
}

func (v *Java) VisitAdd(t transform.Add, sb *strings.Builder) {
	if t.V == 1 {
		sb.WriteString("\t" + v.variable + "++;\n")
		return
	}
	fmt.Fprintf(sb, "\t%s += %s;\n", v.variable, hex(t.V))
}

func (v *Java) VisitSub(t transform.Sub, sb *strings.Builder) {
	if t.V == 1 {
		sb.WriteString("\t" + v.variable + "--;\n")
		return
	}
	fmt.Fprintf(sb, "\t%s -= %s;\n", v.variable, hex(t.V))
}

func (v *Java) VisitXor(t transform.Xor, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s ^= %s;\n", v.variable, hex(t.V))
}

func (v *Java) VisitNot(t transform.Not, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s = ~%s & %s;\n", v.variable, v.variable, hex(t.Mask()))
}

func (v *Java) VisitRotL(t transform.RotL, sb *strings.Builder) {
	mask := hex(t.Mask())
	fmt.Fprintf(sb, "\t%s = (((%s & %s) >> %s) | (%s << %s)) & %s;\n",
		v.variable, v.variable, mask, hex(uint64(t.Bits()-t.K)), v.variable, hex(uint64(t.K)), mask)
}

func (v *Java) VisitRotR(t transform.RotR, sb *strings.Builder) {
	mask := hex(t.Mask())
	fmt.Fprintf(sb, "\t%s = (((%s & %s) << %s) | (%s >> %s)) & %s;\n",
		v.variable, v.variable, mask, hex(uint64(t.Bits()-t.K)), v.variable, hex(uint64(t.K)), mask)
}

func (v *Java) VisitPerm(t transform.Perm, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s = ((%s >> %s) ^ (%s >> %s)) & ((1 << %s) - 1);\n",
		v.temp, v.variable, hex(uint64(t.P1)), v.variable, hex(uint64(t.P2)), hex(uint64(t.B)))
	fmt.Fprintf(sb, "\t%s ^= (%s << %s) | (%s << %s);\n",
		v.variable, v.temp, hex(uint64(t.P1)), v.temp, hex(uint64(t.P2)))
}

func (v *Java) VisitMulMod(t transform.MulMod, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s = (%s * %s) %% %s;\n", v.variable, v.variable, hex(t.Value()), hex(t.Modulus()))
}

func (v *Java) VisitMulModInv(t transform.MulModInv, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s = (%s * %s) %% %s;\n", v.variable, v.variable, hex(t.Value()), hex(t.Modulus()))
}
