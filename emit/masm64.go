package emit

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/54754N4/strobf"
	"github.com/54754N4/strobf/transform"
)

// register purposes, indexed into the registers table below.
const (
	regRAX = iota
	regRBX
	regRCX
	regRDX
	regRDI
	regRSI
	regRBP
	regRSP
	regR8
	regR9
	regR10
	regR11
	regR12
	regR13
	regR14
	regR15
)

// registers[purpose][block] gives the byte/word/dword/qword name of a
// register, e.g. registers[regRAX] == {"al", "ax", "eax", "rax"}.
var registers = [][4]string{
	regRAX: {"al", "ax", "eax", "rax"},
	regRBX: {"bl", "bx", "ebx", "rbx"},
	regRCX: {"cl", "cx", "ecx", "rcx"},
	regRDX: {"dl", "dx", "edx", "rdx"},
	regRDI: {"dil", "di", "edi", "rdi"},
	regRSI: {"sil", "si", "esi", "rsi"},
	regRBP: {"bpl", "bp", "ebp", "rbp"},
	regRSP: {"spl", "sp", "esp", "rsp"},
	regR8:  {"r8l", "r8w", "r8d", "r8"},
	regR9:  {"r9l", "r9w", "r9d", "r9"},
	regR10: {"r10l", "r10w", "r10d", "r10"},
	regR11: {"r11l", "r11w", "r11d", "r11"},
	regR12: {"r12l", "r12w", "r12d", "r12"},
	regR13: {"r13l", "r13w", "r13d", "r13"},
	regR14: {"r14l", "r14w", "r14d", "r14"},
	regR15: {"r15l", "r15w", "r15d", "r15"},
}

var immediateHexDigits = [4]int{2, 4, 8, 16}
var dataTypes = [4]string{"db", "dw", "dd", "dq"}
var dataTypesPtr = [4]string{"byte", "word", "dword", "qword"}

// MASM64 renders a decoder as a freestanding x86-64 MASM program, selecting
// register width and data directives from the context's bit width and
// printing via the Win32 console/file API.
type MASM64 struct {
	namer namer

	block     int
	increment int
	result    string
	loopName  string
	i         string
	variable  string
	size      int
}

func NewMASM64(rng *rand.Rand) *MASM64 {
	return &MASM64{namer: newNamer(rng)}
}

// reg returns the block-width name of the given register purpose.
func (m *MASM64) reg(id int) string {
	return registers[id][m.block]
}

// imm formats l as a MASM hex immediate zero-padded to the block's width,
// with a leading 0 so it starts with a digit, e.g. 00666h for a 16-bit block.
func (m *MASM64) imm(l uint64) string {
	digits := immediateHexDigits[m.block]
	return fmt.Sprintf("0%0*xh", digits, l)
}

// RBX holds the data array address, RCX the loop counter, RDX the working
// value, matching the register convention the loop body below assumes.
func (m *MASM64) Initialise(ctx strobf.Context, sb *strings.Builder) {
	// Smallest of byte/word/dword/qword that holds ctx.Bits bits.
	m.block = 0
	for m.block < 3 && uint(8)<<m.block < ctx.Bits {
		m.block++
	}
	m.increment = immediateHexDigits[m.block] / 2
	m.result = "string"
	m.loopName = m.namer.next()
	m.i = m.reg(regRCX)
	m.variable = m.reg(regRDX)
	m.size = len(ctx.Bytes)

	sb.WriteString("extern GetStdHandle: proc\n" +
		"extern WriteFile: proc\n" +
		"extern GetFileType: proc\n" +
		"extern WriteConsoleW: proc\n\n")

	sb.WriteString(".data?\n" +
		"\tstdout\tdq ?\n" +
		"\twritten\tdq ?\n")
	sb.WriteString(".data\n")
	fmt.Fprintf(sb, "\t%s %s ", m.result, dataTypes[m.block])
	for i, v := range ctx.Bytes {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(m.imm(v))
	}
	sb.WriteString("\n\tlen\tequ $-" + m.result + "\n")

	sb.WriteString(".code\n")
	sb.WriteString("main proc\n")
	sb.WriteString("\tpush\trbp\n")
	sb.WriteString("\tmov\trbp, rsp\n")
	fmt.Fprintf(sb, "\tsub\trsp, %d\n", shadowSpace)
	sb.WriteString("\tand\trsp, -10h\n\n")

	fmt.Fprintf(sb, "\tmov\trbx, offset %s\n", m.result)
	sb.WriteString("\txor\trcx, rcx\n")
	sb.WriteString(m.loopName + ":\n")
	sb.WriteString("\txor\trax, rax\n" +
		"\txor\trdx, rdx\n" +
		"\txor\tr8, r8\n" +
		"\txor\tr9, r9\n" +
		"\txor\tr10, r10\n")
	fmt.Fprintf(sb, "\tmov\t%s, %s ptr [rbx + rcx*%d]\n", m.variable, dataTypesPtr[m.block], m.increment)
}

const shadowSpace = 32

func (m *MASM64) Finalise(ctx strobf.Context, sb *strings.Builder) {
	fmt.Fprintf(sb, "\tmov\t%s ptr [rbx + rcx*%d], %s\n", dataTypesPtr[m.block], m.increment, m.variable)
	fmt.Fprintf(sb, "\tinc\t%s\n", m.i)
	fmt.Fprintf(sb, "\tcmp\t%s, %d\n", m.i, m.size)
	fmt.Fprintf(sb, "\tjne\t%s\n\n", m.loopName)

	sb.WriteString("\t; Printing code\n" +
		"\txor\trax, rax\n" +
		"\txor\trcx, rcx\n" +
		"\txor\trdx, rdx\n" +
		"\txor\tr8, r8\n" +
		"\txor\tr9, r9\n" +
		"\tmov\trcx, -11\n" +
		"\tcall\tGetStdHandle\n" +
		"\tmov\t[stdout], rax\n" +
		"\tmov\trcx, rax\n" +
		"\tcall\tGetFileType\n" +
		"\tcmp\trax, 1\n" +
		"\tje\tfileWrite\n" +
		"\tmov\trcx, [stdout]\n" +
		"\tmov\trdx, rbx\n" +
		"\tmov\tr8, len\n" +
		"\tmov\tr9, written\n" +
		"\tcall\tWriteConsoleW\n" +
		"\tjmp\tepilog\n" +
		"fileWrite:\n" +
		"\tmov\trcx, [stdout]\n" +
		"\tmov\trdx, rbx\n" +
		"\tmov\tr8, len\n" +
		"\tmov\tr9, written\n" +
		"\tcall\tWriteFile\n" +
		"epilog:\n")
	fmt.Fprintf(sb, "\tadd\trsp, %d\n", shadowSpace)
	sb.WriteString("\tmov\trsp, rbp\n" +
		"\tpop\trbp\n" +
		"\tret\n" +
		"main endp\n" +
		"end")
}

func (m *MASM64) VisitAdd(t transform.Add, sb *strings.Builder) {
	if t.V == 1 {
		fmt.Fprintf(sb, "\tinc\t%s\n", m.variable)
		return
	}
	fmt.Fprintf(sb, "\tadd\t%s, %d\n", m.variable, t.V)
}

func (m *MASM64) VisitSub(t transform.Sub, sb *strings.Builder) {
	if t.V == 1 {
		fmt.Fprintf(sb, "\tdec\t%s\n", m.variable)
		return
	}
	fmt.Fprintf(sb, "\tsub\t%s, %d\n", m.variable, t.V)
}

func (m *MASM64) VisitXor(t transform.Xor, sb *strings.Builder) {
	fmt.Fprintf(sb, "\txor\t%s, %d\n", m.variable, t.V)
}

func (m *MASM64) VisitNot(t transform.Not, sb *strings.Builder) {
	fmt.Fprintf(sb, "\tnot\t%s\n", m.variable)
}

func (m *MASM64) VisitRotL(t transform.RotL, sb *strings.Builder) {
	fmt.Fprintf(sb, "\trol\t%s, %d\n", m.variable, t.K)
}

func (m *MASM64) VisitRotR(t transform.RotR, sb *strings.Builder) {
	fmt.Fprintf(sb, "\tror\t%s, %d\n", m.variable, t.K)
}

func (m *MASM64) VisitPerm(t transform.Perm, sb *strings.Builder) {
	r8, r9, r10 := m.reg(regR8), m.reg(regR9), m.reg(regR10)
	fmt.Fprintf(sb, "\tmov\t%s, %s\n", r8, m.variable)
	fmt.Fprintf(sb, "\tshr\t%s, %d\n", r8, t.P1)
	fmt.Fprintf(sb, "\tmov\t%s, %s\n", r9, m.variable)
	fmt.Fprintf(sb, "\tshr\t%s, %d\n", r9, t.P2)
	fmt.Fprintf(sb, "\txor\t%s, %s\n", r8, r9)
	fmt.Fprintf(sb, "\tmov\t%s, 1\n", r9)
	fmt.Fprintf(sb, "\tshl\t%s, %d\n", r9, t.B)
	fmt.Fprintf(sb, "\tsub\t%s, 1\n", r9)
	fmt.Fprintf(sb, "\tand\t%s, %s\n", r8, r9)
	fmt.Fprintf(sb, "\tmov\t%s, %s\n", r9, r8)
	fmt.Fprintf(sb, "\tshl\t%s, %d\n", r9, t.P1)
	fmt.Fprintf(sb, "\tmov\t%s, %s\n", r10, r8)
	fmt.Fprintf(sb, "\tshl\t%s, %d\n", r10, t.P2)
	fmt.Fprintf(sb, "\tor\t%s, %s\n", r9, r10)
	fmt.Fprintf(sb, "\txor\t%s, %s\n", m.variable, r9)
}

func (m *MASM64) mulMod(value, modulo uint64, sb *strings.Builder) {
	rax, rdx, r8 := m.reg(regRAX), m.reg(regRDX), m.reg(regR8)
	fmt.Fprintf(sb, "\tmov\t%s, %s\n", rax, rdx)
	fmt.Fprintf(sb, "\txor\t%s, %s\n", rdx, rdx)
	fmt.Fprintf(sb, "\tmov\t%s, %d\n", r8, value)
	fmt.Fprintf(sb, "\tmul\t%s\n", r8)
	fmt.Fprintf(sb, "\tmov\t%s, %s\n", rdx, rax)
	fmt.Fprintf(sb, "\tmov\t%s, %s\n", rax, rdx)
	fmt.Fprintf(sb, "\txor\t%s, %s\n", rdx, rdx)
	fmt.Fprintf(sb, "\tmov\t%s, %d\n", r8, modulo)
	fmt.Fprintf(sb, "\tdiv\t%s\n", r8)
	fmt.Fprintf(sb, "\tmov\t%s, %s\n", rdx, rax)
}

func (m *MASM64) VisitMulMod(t transform.MulMod, sb *strings.Builder) {
	m.mulMod(t.Value(), t.Modulus(), sb)
}

func (m *MASM64) VisitMulModInv(t transform.MulModInv, sb *strings.Builder) {
	m.mulMod(t.Value(), t.Modulus(), sb)
}
