package emit

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/54754N4/strobf"
	"github.com/54754N4/strobf/transform"
)

// Bash renders a decoder as a POSIX-ish bash script using arithmetic
// expansion ("(( ... ))") and an indexed array, following bash's integer
// arithmetic rules (no native fixed-width wraparound, hence the explicit
// mask on Not and the rotate lowerings).
type Bash struct {
	namer namer

	variable string
	temp     string
	i        string
	result   string
	hasPerm  bool
}

// NewBash returns a Bash backend. rng may be nil to use a fresh
// non-deterministic source of identifier names.
func NewBash(rng *rand.Rand) *Bash {
	return &Bash{namer: newNamer(rng)}
}

func (b *Bash) ae(format string, args ...any) string {
	return "((" + fmt.Sprintf(format, args...) + "))"
}

func (b *Bash) Initialise(ctx strobf.Context, sb *strings.Builder) {
	b.variable = b.namer.next()
	b.temp = b.namer.next()
	b.i = b.namer.next()
	b.result = "string"
	b.hasPerm = ctx.Reverse.ContainsPerm()

	sb.WriteString(b.result + "=( ")
	for _, v := range ctx.Bytes {
		sb.WriteString(hex(v) + " ")
	}
	sb.WriteString(")\n")
	fmt.Fprintf(sb, "for %s in ${!%s[@]}; do\n", b.i, b.result)
	fmt.Fprintf(sb, "\t%s=${%s[$%s]}\n", b.variable, b.result, b.i)
}

func (b *Bash) Finalise(ctx strobf.Context, sb *strings.Builder) {
	fmt.Fprintf(sb, "\t%s[$%s]=$%s\n", b.result, b.i, b.variable)
	sb.WriteString("done\n")
	fmt.Fprintf(sb, "unset %s\n", b.i)
	fmt.Fprintf(sb, "unset %s\n", b.variable)
	if b.hasPerm {
		fmt.Fprintf(sb, "unset %s\n", b.temp)
	}
	fmt.Fprintf(sb, "%s=$(printf %%b \"$(printf '\\U%%x' \"${%s[@]}\")\")\n", b.result, b.result)
	sb.WriteString("echo $" + b.result)
}

func (b *Bash) VisitAdd(t transform.Add, sb *strings.Builder) {
	if t.V == 1 {
		sb.WriteString("\t" + b.ae("%s++", b.variable) + "\n")
		return
	}
	sb.WriteString("\t" + b.ae("%s += %s", b.variable, hex(t.V)) + "\n")
}

func (b *Bash) VisitSub(t transform.Sub, sb *strings.Builder) {
	if t.V == 1 {
		sb.WriteString("\t" + b.ae("%s--", b.variable) + "\n")
		return
	}
	sb.WriteString("\t" + b.ae("%s -= %s", b.variable, hex(t.V)) + "\n")
}

func (b *Bash) VisitXor(t transform.Xor, sb *strings.Builder) {
	sb.WriteString("\t" + b.ae("%s ^= %s", b.variable, hex(t.V)) + "\n")
}

func (b *Bash) VisitNot(t transform.Not, sb *strings.Builder) {
	sb.WriteString("\t" + b.ae("%s = ~%s & %s", b.variable, b.variable, hex(t.Mask())) + "\n")
}

func (b *Bash) VisitRotL(t transform.RotL, sb *strings.Builder) {
	mask := hex(t.Mask())
	sb.WriteString("\t" + b.ae("%s = ((( %s & %s) >> %s) | (%s << %s)) & %s",
		b.variable, b.variable, mask, hex(uint64(t.Bits()-t.K)), b.variable, hex(uint64(t.K)), mask) + "\n")
}

func (b *Bash) VisitRotR(t transform.RotR, sb *strings.Builder) {
	mask := hex(t.Mask())
	sb.WriteString("\t" + b.ae("%s = ((( %s & %s) << %s) | (%s >> %s)) & %s",
		b.variable, b.variable, mask, hex(uint64(t.Bits()-t.K)), b.variable, hex(uint64(t.K)), mask) + "\n")
}

func (b *Bash) VisitPerm(t transform.Perm, sb *strings.Builder) {
	sb.WriteString("\t" + b.ae("%s = ((%s >> %s) ^ (%s >> %s)) & ((1 << %s)-1)",
		b.temp, b.variable, hex(uint64(t.P1)), b.variable, hex(uint64(t.P2)), hex(uint64(t.B))) + "\n")
	sb.WriteString("\t" + b.ae("%s ^= (%s << %s) | (%s << %s)",
		b.variable, b.temp, hex(uint64(t.P1)), b.temp, hex(uint64(t.P2))) + "\n")
}

func (b *Bash) VisitMulMod(t transform.MulMod, sb *strings.Builder) {
	sb.WriteString("\t" + b.ae("%s = (%s * %s) %% %s", b.variable, b.variable, hex(t.Value()), hex(t.Modulus())) + "\n")
}

func (b *Bash) VisitMulModInv(t transform.MulModInv, sb *strings.Builder) {
	sb.WriteString("\t" + b.ae("%s = (%s * %s) %% %s", b.variable, b.variable, hex(t.Value()), hex(t.Modulus())) + "\n")
}
