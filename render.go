package rowan

import (
	"fmt"
	"io"
	"time"
	"unicode/utf8"
)

// Output is the byte sink a Renderer draws into. Writes are synchronous and
// ordered; Flush pushes buffered bytes to the device and may be a no-op for
// unbuffered sinks. *Terminal satisfies Output.
type Output interface {
	io.Writer
	Flush() error
}

// Box-drawing fragments for outline rectangles.
const (
	boxTopLeft     = "┌"
	boxTopRight    = "┐"
	boxBottomLeft  = "└"
	boxBottomRight = "┘"
	boxHorizontal  = "─"
	boxVertical    = "│"
)

// Renderer turns a scene tree into protocol bytes on an Output. A frame is
// built in an internal buffer and written with a single Write followed by
// Flush, so partially drawn frames never reach the terminal.
type Renderer struct {
	out   Output
	theme *Theme
	buf   []byte
	stats frameStats
}

// NewRenderer creates a renderer drawing to out with the default theme.
func NewRenderer(out Output) *Renderer {
	return &Renderer{out: out, theme: DefaultTheme()}
}

// SetTheme replaces the theme consulted for widget drawing.
func (r *Renderer) SetTheme(t *Theme) {
	if t != nil {
		r.theme = t
	}
}

// Theme returns the renderer's current theme.
func (r *Renderer) Theme() *Theme {
	return r.theme
}

// RenderFrame draws one complete frame: clear screen, recompute absolute
// offsets with PropagateTransform, draw every visible node pre-order, then
// write and flush. An invisible node suppresses its entire subtree.
//
// Nodes with malformed geometry (negative sizes) are a caller contract
// violation; the renderer assumes sizes were validated at construction time
// and does not sanitize.
func (r *Renderer) RenderFrame(s *Scene) error {
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	r.buf = r.buf[:0]
	r.buf = AppendClear(r.buf)
	PropagateTransform(s.root)
	r.stats = frameStats{}
	r.drawNode(s.root)

	if _, err := r.out.Write(r.buf); err != nil {
		return fmt.Errorf("rowan: write frame: %w", err)
	}
	if err := r.out.Flush(); err != nil {
		return fmt.Errorf("rowan: flush frame: %w", err)
	}

	if s.debug {
		r.stats.renderTime = time.Since(t0)
		r.stats.bytesOut = len(r.buf)
		r.debugLog()
	}
	return nil
}

// drawNode emits one node and recurses into its children in draw order.
func (r *Renderer) drawNode(n *Node) {
	if !n.Visible {
		return
	}
	r.stats.nodesVisited++
	switch n.Type {
	case NodeTypeRect:
		r.drawRect(n)
	case NodeTypeText:
		r.drawText(n)
	case NodeTypeImage:
		r.drawImage(n)
	case NodeTypeButton:
		r.drawButton(n)
	case NodeTypeInput:
		r.drawInput(n)
	case NodeTypeList:
		r.drawList(n)
		// NodeTypeGroup draws nothing.
	}
	for _, child := range n.drawOrder() {
		r.drawNode(child)
	}
}

// drawRect fills or outlines the node's w by h cell area. Each width cell
// spans cellAspect columns.
func (r *Renderer) drawRect(n *Node) {
	if n.Style == RectOutline {
		r.drawRectOutline(n)
		return
	}
	cols := n.W * cellAspect
	if n.GradientTo == nil {
		r.buf = AppendBg(r.buf, n.Fill)
		for row := 0; row < n.H; row++ {
			r.buf = AppendCursorTo(r.buf, n.AbsX, n.AbsY+row)
			r.buf = appendSpaces(r.buf, cols)
		}
	} else {
		for row := 0; row < n.H; row++ {
			t := 0.0
			if n.H > 1 {
				t = float64(row) / float64(n.H-1)
			}
			r.buf = AppendBg(r.buf, n.Fill.Blend(*n.GradientTo, t))
			r.buf = AppendCursorTo(r.buf, n.AbsX, n.AbsY+row)
			r.buf = appendSpaces(r.buf, cols)
		}
	}
	r.buf = AppendReset(r.buf)
	r.stats.nodesDrawn++
}

// drawRectOutline draws a box-drawing border colored with the node's Fill as
// foreground. A height of one degrades to a plain horizontal run.
func (r *Renderer) drawRectOutline(n *Node) {
	cols := n.W * cellAspect
	r.buf = AppendFg(r.buf, n.Fill)
	if n.H == 1 {
		r.buf = AppendCursorTo(r.buf, n.AbsX, n.AbsY)
		r.buf = appendRepeat(r.buf, boxHorizontal, cols)
	} else {
		r.buf = AppendCursorTo(r.buf, n.AbsX, n.AbsY)
		r.buf = append(r.buf, boxTopLeft...)
		r.buf = appendRepeat(r.buf, boxHorizontal, cols-2)
		r.buf = append(r.buf, boxTopRight...)
		for row := 1; row < n.H-1; row++ {
			r.buf = AppendCursorTo(r.buf, n.AbsX, n.AbsY+row)
			r.buf = append(r.buf, boxVertical...)
			r.buf = AppendCursorTo(r.buf, n.AbsX+cols-1, n.AbsY+row)
			r.buf = append(r.buf, boxVertical...)
		}
		r.buf = AppendCursorTo(r.buf, n.AbsX, n.AbsY+n.H-1)
		r.buf = append(r.buf, boxBottomLeft...)
		r.buf = appendRepeat(r.buf, boxHorizontal, cols-2)
		r.buf = append(r.buf, boxBottomRight...)
	}
	r.buf = AppendReset(r.buf)
	r.stats.nodesDrawn++
}

// drawText writes the node's content with one cursor move, the foreground
// set before and reset after.
func (r *Renderer) drawText(n *Node) {
	r.buf = AppendCursorTo(r.buf, n.AbsX, n.AbsY)
	r.buf = AppendFg(r.buf, n.Fg)
	r.buf = append(r.buf, n.Content...)
	r.buf = AppendReset(r.buf)
	r.stats.nodesDrawn++
}

// drawImage transmits the node's pre-encoded image at its absolute cell.
func (r *Renderer) drawImage(n *Node) {
	r.buf = AppendImageAt(r.buf, *n.Image, n.AbsX, n.AbsY)
	r.stats.nodesDrawn++
}

func (r *Renderer) drawButton(n *Node) {
	fg, bg := r.theme.ButtonFg, r.theme.ButtonBg
	if n.focused {
		fg, bg = r.theme.ButtonFocusFg, r.theme.ButtonFocusBg
	}
	r.buf = AppendCursorTo(r.buf, n.AbsX, n.AbsY)
	r.buf = AppendBg(r.buf, bg)
	r.buf = AppendFg(r.buf, fg)
	r.buf = append(r.buf, "[ "...)
	r.buf = append(r.buf, n.Button.Label...)
	r.buf = append(r.buf, " ]"...)
	r.buf = AppendReset(r.buf)
	r.stats.nodesDrawn++
}

// drawInput renders the input's value inside its w-cell window, scrolled so
// the caret stays visible. The caret cell is drawn with fg and bg swapped
// while the node is focused.
func (r *Renderer) drawInput(n *Node) {
	in := n.Input
	w := n.W
	// A zero-width window has no cells; the scroll loop below assumes w >= 1.
	if w <= 0 {
		return
	}
	fg, bg := r.theme.InputFg, r.theme.InputBg
	if n.focused {
		fg, bg = r.theme.InputFocusFg, r.theme.InputFocusBg
	}

	before := string(in.value[:in.caret])
	after := string(in.value[in.caret:])
	for DisplayWidth(before) > w-1 {
		_, size := utf8.DecodeRuneInString(before)
		before = before[size:]
	}

	caretCh := " "
	if after != "" {
		_, size := utf8.DecodeRuneInString(after)
		caretCh = after[:size]
		after = after[size:]
	}
	after = TruncateText(after, w-DisplayWidth(before)-DisplayWidth(caretCh))

	r.buf = AppendCursorTo(r.buf, n.AbsX, n.AbsY)
	r.buf = AppendBg(r.buf, bg)
	r.buf = AppendFg(r.buf, fg)
	r.buf = append(r.buf, before...)
	if n.focused {
		r.buf = AppendBg(r.buf, fg)
		r.buf = AppendFg(r.buf, bg)
		r.buf = append(r.buf, caretCh...)
		r.buf = AppendBg(r.buf, bg)
		r.buf = AppendFg(r.buf, fg)
	} else {
		r.buf = append(r.buf, caretCh...)
	}
	r.buf = append(r.buf, after...)
	pad := w - DisplayWidth(before) - DisplayWidth(caretCh) - DisplayWidth(after)
	r.buf = appendSpaces(r.buf, pad)
	r.buf = AppendReset(r.buf)
	r.stats.nodesDrawn++
}

// drawList renders the visible window of items, keeping the selection in
// view. The selected row uses the theme's selection colors.
func (r *Renderer) drawList(n *Node) {
	l := n.List
	l.clampSelection()
	if l.Selected < l.top {
		l.top = l.Selected
	}
	if n.H > 0 && l.Selected >= l.top+n.H {
		l.top = l.Selected - n.H + 1
	}
	if l.top < 0 {
		l.top = 0
	}

	for row := 0; row < n.H; row++ {
		i := l.top + row
		if i >= len(l.Items) {
			break
		}
		fg, bg := r.theme.ListFg, r.theme.ListBg
		if i == l.Selected {
			fg, bg = r.theme.ListSelectedFg, r.theme.ListSelectedBg
		}
		r.buf = AppendCursorTo(r.buf, n.AbsX, n.AbsY+row)
		r.buf = AppendBg(r.buf, bg)
		r.buf = AppendFg(r.buf, fg)
		r.buf = append(r.buf, padToWidth(l.Items[i], n.W)...)
	}
	r.buf = AppendReset(r.buf)
	r.stats.nodesDrawn++
}

// appendSpaces appends count space characters.
func appendSpaces(dst []byte, count int) []byte {
	for i := 0; i < count; i++ {
		dst = append(dst, ' ')
	}
	return dst
}

// appendRepeat appends count copies of the (possibly multi-byte) fragment.
func appendRepeat(dst []byte, frag string, count int) []byte {
	for i := 0; i < count; i++ {
		dst = append(dst, frag...)
	}
	return dst
}
