// Package tui provides a read-only terminal inspector for a single
// strobf.Context: the reverse chain that was sampled, the obfuscated byte
// array, and the rendered decoder snippet, side by side.
package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/54754N4/strobf"
	"github.com/54754N4/strobf/transform"
)

// Inspect opens a three-pane terminal view of ctx and its rendered decoder
// snippet. Unlike a stepped debugger, there is nothing to advance: the
// engine's chain-generation loop already ran to completion, so this is a
// static render. Press 'q' or Ctrl-C to exit.
func Inspect(ctx strobf.Context, rendered string) error {
	t := &inspector{ctx: ctx, rendered: rendered}
	t.initComponents()
	t.initApp()
	t.populate()
	return t.app.Run()
}

type inspector struct {
	ctx      strobf.Context
	rendered string

	app    *tview.Application
	chain  *tview.List
	bytes  *tview.TextView
	source *tview.TextView
}

func (*inspector) styleBox(b *tview.Box, title string) *tview.Box {
	return b.SetBorder(true).
		SetTitle(title).
		SetTitleAlign(tview.AlignLeft)
}

func (t *inspector) initComponents() {
	t.chain = tview.NewList().ShowSecondaryText(false)
	t.styleBox(t.chain.Box, "Reverse chain")

	t.bytes = tview.NewTextView()
	t.styleBox(t.bytes.Box, "Obfuscated bytes")

	t.source = tview.NewTextView()
	t.source.SetScrollable(true)
	t.styleBox(t.source.Box, "Rendered decoder")
}

func (t *inspector) initApp() {
	t.app = tview.NewApplication().SetRoot(t.createLayout(), true)
	t.app.SetInputCapture(t.inputCapture)
}

func (t *inspector) createLayout() tview.Primitive {
	const wChain = 2 + 24

	top := tview.NewFlex().
		AddItem(t.chain, wChain, 0, false).
		AddItem(t.bytes, 0, 1, false)

	root := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(top, 0, 1, false).
		AddItem(t.source, 0, 2, false)

	t.styleBox(root.Box, fmt.Sprintf("strobf (%d-bit)", t.ctx.Bits)).SetTitleAlign(tview.AlignCenter)
	return root
}

func (t *inspector) populate() {
	for _, tr := range t.ctx.Reverse.Transforms() {
		t.chain.AddItem(describe(tr), "", 0, nil)
	}

	var b strings.Builder
	for i, v := range t.ctx.Bytes {
		if i > 0 {
			b.WriteString(" ")
		}
		fmt.Fprintf(&b, "%#04x", v)
	}
	t.bytes.SetText(b.String())
	t.source.SetText(t.rendered)
}

func (t *inspector) inputCapture(ev *tcell.EventKey) *tcell.EventKey {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		t.app.Stop()
		return ev
	}
	if ev.Rune() == 'q' {
		t.app.Stop()
		return nil
	}
	return ev
}

// describe renders a single transform as a short human-readable label for
// the chain pane.
func describe(tr transform.Transform) string {
	switch v := tr.(type) {
	case transform.Add:
		return fmt.Sprintf("Add(%#x)", v.V)
	case transform.Sub:
		return fmt.Sprintf("Sub(%#x)", v.V)
	case transform.Xor:
		return fmt.Sprintf("Xor(%#x)", v.V)
	case transform.Not:
		return "Not"
	case transform.RotL:
		return fmt.Sprintf("RotL(%d)", v.K)
	case transform.RotR:
		return fmt.Sprintf("RotR(%d)", v.K)
	case transform.Perm:
		return fmt.Sprintf("Perm(%d,%d,%d)", v.P1, v.P2, v.B)
	case transform.MulMod:
		return fmt.Sprintf("MulMod(%#x)", v.Value())
	case transform.MulModInv:
		return fmt.Sprintf("MulModInv(%#x)", v.Value())
	default:
		return fmt.Sprintf("%T", tr)
	}
}
