package rowan

// --- Button ---

// ButtonState is the payload of a NodeTypeButton node. Enter or space
// activates the button while it is focused.
type ButtonState struct {
	Label   string
	OnPress func(*Node)
}

func (b *ButtonState) focusGained(n *Node) {}
func (b *ButtonState) focusLost(n *Node)   {}

func (b *ButtonState) handleKey(n *Node, k Key) bool {
	if k.Code == KeyEnter || (k.Code == KeyRune && k.Rune == ' ' && k.Mod == 0) {
		if b.OnPress != nil {
			b.OnPress(n)
		}
		return true
	}
	return false
}

// --- Input ---

// InputState is the payload of a NodeTypeInput node: a single-line editable
// text value with a caret.
//
// While focused the input consumes printable characters, backspace, delete,
// left/right, home/end, and enter (which fires OnSubmit). Up and down are
// deliberately left unconsumed so vertical arrow navigation can move focus
// off the field.
type InputState struct {
	value []rune
	caret int

	OnChange func(n *Node, value string)
	OnSubmit func(n *Node, value string)
}

// Value returns the current text.
func (in *InputState) Value() string {
	return string(in.value)
}

// SetValue replaces the text and moves the caret to the end. OnChange does
// not fire for programmatic changes.
func (in *InputState) SetValue(s string) {
	in.value = []rune(s)
	in.caret = len(in.value)
}

// Caret returns the caret position in runes from the start of the value.
func (in *InputState) Caret() int {
	return in.caret
}

func (in *InputState) focusGained(n *Node) {}
func (in *InputState) focusLost(n *Node)   {}

func (in *InputState) handleKey(n *Node, k Key) bool {
	switch {
	case k.Code == KeyRune && k.Mod == 0:
		in.value = append(in.value, 0)
		copy(in.value[in.caret+1:], in.value[in.caret:])
		in.value[in.caret] = k.Rune
		in.caret++
		in.changed(n)
		return true
	case k.Code == KeyBackspace:
		if in.caret > 0 {
			copy(in.value[in.caret-1:], in.value[in.caret:])
			in.value = in.value[:len(in.value)-1]
			in.caret--
			in.changed(n)
		}
		return true
	case k.Code == KeyDelete:
		if in.caret < len(in.value) {
			copy(in.value[in.caret:], in.value[in.caret+1:])
			in.value = in.value[:len(in.value)-1]
			in.changed(n)
		}
		return true
	case k.Code == KeyLeft && k.Mod == 0:
		if in.caret > 0 {
			in.caret--
		}
		return true
	case k.Code == KeyRight && k.Mod == 0:
		if in.caret < len(in.value) {
			in.caret++
		}
		return true
	case k.Code == KeyHome:
		in.caret = 0
		return true
	case k.Code == KeyEnd:
		in.caret = len(in.value)
		return true
	case k.Code == KeyEnter:
		if in.OnSubmit != nil {
			in.OnSubmit(n, string(in.value))
		}
		return true
	}
	return false
}

func (in *InputState) changed(n *Node) {
	if in.OnChange != nil {
		in.OnChange(n, string(in.value))
	}
}

// --- List ---

// ListState is the payload of a NodeTypeList node: a scrollable column of
// selectable items. It is the composite container variant — a focusable
// whose children (the item rows) are managed internally rather than as
// scene nodes.
//
// While focused, up and down move the selection and are consumed only when
// the selection actually moves; at the first or last item the arrow falls
// through to spatial navigation, letting focus leave the list. Home, end,
// page up, and page down are always consumed. Enter fires OnSelect.
type ListState struct {
	Items    []string
	Selected int

	OnSelect func(n *Node, index int, item string)

	top int // first visible row, maintained by the renderer
}

func (l *ListState) focusGained(n *Node) {
	l.clampSelection()
}

func (l *ListState) focusLost(n *Node) {}

func (l *ListState) handleKey(n *Node, k Key) bool {
	if k.Mod != 0 {
		return false
	}
	switch k.Code {
	case KeyUp:
		if l.Selected > 0 {
			l.Selected--
			return true
		}
		return false
	case KeyDown:
		if l.Selected < len(l.Items)-1 {
			l.Selected++
			return true
		}
		return false
	case KeyHome:
		l.Selected = 0
		return true
	case KeyEnd:
		if len(l.Items) > 0 {
			l.Selected = len(l.Items) - 1
		}
		return true
	case KeyPgUp:
		l.Selected -= n.H
		l.clampSelection()
		return true
	case KeyPgDn:
		l.Selected += n.H
		l.clampSelection()
		return true
	case KeyEnter:
		// Selected is exported and may be stale in either direction.
		l.clampSelection()
		if l.OnSelect != nil && l.Selected < len(l.Items) {
			l.OnSelect(n, l.Selected, l.Items[l.Selected])
		}
		return true
	}
	return false
}

// clampSelection keeps Selected inside Items. Items is exported and may be
// swapped by the caller at any time, so the widget re-clamps whenever it is
// about to act on the selection.
func (l *ListState) clampSelection() {
	if l.Selected >= len(l.Items) {
		l.Selected = len(l.Items) - 1
	}
	if l.Selected < 0 {
		l.Selected = 0
	}
}
