package emit

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/54754N4/strobf"
	"github.com/54754N4/strobf/transform"
)

// PowerShell renders a decoder as a script using PowerShell's -band/-bor/
// -bxor/-shl/-shr bitwise operators, since PowerShell has no native XOR/shift
// symbols.
type PowerShell struct {
	namer namer

	variable string
	temp     string
	i        string
	array    string
	result   string
	mask     string
	hasPerm  bool
}

func NewPowerShell(rng *rand.Rand) *PowerShell {
	return &PowerShell{namer: newNamer(rng)}
}

func (p *PowerShell) Initialise(ctx strobf.Context, sb *strings.Builder) {
	p.variable = "$" + p.namer.next()
	p.temp = "$" + p.namer.next()
	p.i = "$" + p.namer.next()
	p.array = "$" + p.namer.next()
	p.result = "$string"
	p.mask = hex(ctx.Mask)
	p.hasPerm = ctx.Reverse.ContainsPerm()

	sb.WriteString("[uint64[]]" + p.array + " = ")
	for i, v := range ctx.Bytes {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(hex(v))
	}
	sb.WriteString("\n" + p.result + " = [System.Text.StringBuilder]::new()\n")
	fmt.Fprintf(sb, "for (%s = 0; %s -lt %s.Length; %s++) {\n", p.i, p.i, p.array, p.i)
	fmt.Fprintf(sb, "\t%s = %s[%s]\n", p.variable, p.array, p.i)
}

func (p *PowerShell) Finalise(ctx strobf.Context, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t[void]%s.Append([char](%s -band %s))\n", p.result, p.variable, p.mask)
	sb.WriteString("}\n")
	fmt.Fprintf(sb, "%s = [void]%s\n", p.variable, p.variable)
	fmt.Fprintf(sb, "%s = [void]%s\n", p.i, p.i)
	fmt.Fprintf(sb, "%s = [void]%s\n", p.array, p.array)
	if p.hasPerm {
		fmt.Fprintf(sb, "%s = [void]%s\n", p.temp, p.temp)
	}
	fmt.Fprintf(sb, "%s = %s.ToString()\n", p.result, p.result)
	sb.WriteString("Write-Host " + p.result)
}

func (p *PowerShell) VisitAdd(t transform.Add, sb *strings.Builder) {
	if t.V == 1 {
		sb.WriteString("\t" + p.variable + "++\n")
		return
	}
	fmt.Fprintf(sb, "\t%s += %s\n", p.variable, hex(t.V))
}

func (p *PowerShell) VisitSub(t transform.Sub, sb *strings.Builder) {
	if t.V == 1 {
		sb.WriteString("\t" + p.variable + "--\n")
		return
	}
	fmt.Fprintf(sb, "\t%s -= %s\n", p.variable, hex(t.V))
}

func (p *PowerShell) VisitXor(t transform.Xor, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s = %s -bxor %s\n", p.variable, p.variable, hex(t.V))
}

func (p *PowerShell) VisitNot(t transform.Not, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s = -bnot %s -band %s\n", p.variable, p.variable, hex(t.Mask()))
}

func (p *PowerShell) VisitRotL(t transform.RotL, sb *strings.Builder) {
	mask := hex(t.Mask())
	fmt.Fprintf(sb, "\t%s = (((%s -band %s) -shr %s) -bor (%s -shl %s)) -band %s\n",
		p.variable, p.variable, mask, hex(uint64(t.Bits()-t.K)), p.variable, hex(uint64(t.K)), mask)
}

func (p *PowerShell) VisitRotR(t transform.RotR, sb *strings.Builder) {
	mask := hex(t.Mask())
	fmt.Fprintf(sb, "\t%s = (((%s -band %s) -shl %s) -bor (%s -shr %s)) -band %s\n",
		p.variable, p.variable, mask, hex(uint64(t.Bits()-t.K)), p.variable, hex(uint64(t.K)), mask)
}

func (p *PowerShell) VisitPerm(t transform.Perm, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s = ((%s -shr %s) -bxor (%s -shr %s)) -band ((1 -shl %s) - 1)\n",
		p.temp, p.variable, hex(uint64(t.P1)), p.variable, hex(uint64(t.P2)), hex(uint64(t.B)))
	fmt.Fprintf(sb, "\t%s = %s -bxor ((%s -shl %s) -bor (%s -shl %s))\n",
		p.variable, p.variable, p.temp, hex(uint64(t.P1)), p.temp, hex(uint64(t.P2)))
}

func (p *PowerShell) VisitMulMod(t transform.MulMod, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s = (%s * %s) %% %s\n", p.variable, p.variable, hex(t.Value()), hex(t.Modulus()))
}

func (p *PowerShell) VisitMulModInv(t transform.MulModInv, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s = (%s * %s) %% %s\n", p.variable, p.variable, hex(t.Value()), hex(t.Modulus()))
}
