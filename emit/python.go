package emit

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/54754N4/strobf"
	"github.com/54754N4/strobf/transform"
)

// Python renders a decoder as a script manipulating a list of code points,
// joined into a str at the end since Python strings are immutable.
type Python struct {
	namer namer

	variable string
	temp     string
	i        string
	result   string
	mask     string
	hasPerm  bool
}

func NewPython(rng *rand.Rand) *Python {
	return &Python{namer: newNamer(rng)}
}

func (p *Python) Initialise(ctx strobf.Context, sb *strings.Builder) {
	p.variable = p.namer.next()
	p.temp = p.namer.next()
	p.i = p.namer.next()
	p.mask = hex(ctx.Mask)
	p.result = "string"
	p.hasPerm = ctx.Reverse.ContainsPerm()

	sb.WriteString(p.result + " = [")
	for i, v := range ctx.Bytes {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(hex(v))
	}
	sb.WriteString("]\n")
	fmt.Fprintf(sb, "for %s in range(len(%s)):\n", p.i, p.result)
	fmt.Fprintf(sb, "\t%s = %s[%s]\n", p.variable, p.result, p.i)
}

func (p *Python) Finalise(ctx strobf.Context, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s[%s] = chr(%s & %s)\n", p.result, p.i, p.variable, p.mask)
	if p.hasPerm {
		fmt.Fprintf(sb, "del %s, %s, %s\n", p.i, p.variable, p.temp)
	} else {
		fmt.Fprintf(sb, "del %s, %s\n", p.i, p.variable)
	}
	fmt.Fprintf(sb, "%s = ''.join(%s)\n", p.result, p.result)
	sb.WriteString("print(" + p.result + ")")
}

func (p *Python) VisitAdd(t transform.Add, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s += %s\n", p.variable, hex(t.V))
}

func (p *Python) VisitSub(t transform.Sub, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s -= %s\n", p.variable, hex(t.V))
}

func (p *Python) VisitXor(t transform.Xor, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s ^= %s\n", p.variable, hex(t.V))
}

func (p *Python) VisitNot(t transform.Not, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s = ~%s & %s\n", p.variable, p.variable, hex(t.Mask()))
}

func (p *Python) VisitRotL(t transform.RotL, sb *strings.Builder) {
	mask := hex(t.Mask())
	fmt.Fprintf(sb, "\t%s = (((%s & %s) >> %s) | (%s << %s)) & %s\n",
		p.variable, p.variable, mask, hex(uint64(t.Bits()-t.K)), p.variable, hex(uint64(t.K)), mask)
}

func (p *Python) VisitRotR(t transform.RotR, sb *strings.Builder) {
	mask := hex(t.Mask())
	fmt.Fprintf(sb, "\t%s = (((%s & %s) << %s) | (%s >> %s)) & %s\n",
		p.variable, p.variable, mask, hex(uint64(t.Bits()-t.K)), p.variable, hex(uint64(t.K)), mask)
}

func (p *Python) VisitPerm(t transform.Perm, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s = ((%s >> %s) ^ (%s >> %s)) & ((1 << %s) - 1)\n",
		p.temp, p.variable, hex(uint64(t.P1)), p.variable, hex(uint64(t.P2)), hex(uint64(t.B)))
	fmt.Fprintf(sb, "\t%s ^= (%s << %s) | (%s << %s)\n",
		p.variable, p.temp, hex(uint64(t.P1)), p.temp, hex(uint64(t.P2)))
}

func (p *Python) VisitMulMod(t transform.MulMod, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s = (%s * %s) %% %s\n", p.variable, p.variable, hex(t.Value()), hex(t.Modulus()))
}

func (p *Python) VisitMulModInv(t transform.MulModInv, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s = (%s * %s) %% %s\n", p.variable, p.variable, hex(t.Value()), hex(t.Modulus()))
}
