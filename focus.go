package rowan

import "sort"

// focusable is the capability interface for keyboard focus, implemented by
// the widget payload types (ButtonState, InputState, ListState). A focusable
// is always reached through its Node; the registry stores nodes, and the
// payload hooks receive the node they belong to.
type focusable interface {
	// focusGained runs when the node receives focus, before the node's
	// OnFocus callback.
	focusGained(n *Node)
	// focusLost runs when the node loses focus, before the node's OnBlur
	// callback.
	focusLost(n *Node)
	// handleKey gives the focused widget first claim on a key token.
	// Reporting true consumes the token.
	handleKey(n *Node, k Key) bool
}

// --- Registry maintenance ---

// adoptSubtree walks the subtree pre-order, stamps the scene handle on every
// node, and registers each focusable one. Pre-order walk order is what
// defines registration order for tab sorting.
func (s *Scene) adoptSubtree(root *Node) {
	before := len(s.focusables)
	s.adopt(root)
	if len(s.focusables) != before {
		s.resortFocus()
	}
}

func (s *Scene) adopt(n *Node) {
	n.scene = s
	if n.focusable != nil {
		n.regSeq = s.nextFocusSeq
		s.nextFocusSeq++
		s.focusables = append(s.focusables, n)
	}
	for _, child := range n.children {
		s.adopt(child)
	}
}

// releaseSubtree is the inverse of adoptSubtree: it unregisters every
// focusable in the subtree, clears the scene handles, and repairs focus.
// When the focused node is among the removed, focus advances to the next
// surviving registry entry (wrapping) or clears if none remain.
func (s *Scene) releaseSubtree(root *Node) {
	leaving := make(map[*Node]bool)
	collectFocusables(root, leaving)

	if len(leaving) > 0 {
		var successor *Node
		if s.focused != nil && leaving[s.focused] {
			successor = s.nextSurvivor(s.focused, leaving)
			s.blurNode(s.focused)
			s.focused = nil
		}

		kept := s.focusables[:0]
		for _, f := range s.focusables {
			if !leaving[f] {
				kept = append(kept, f)
			}
		}
		for i := len(kept); i < len(s.focusables); i++ {
			s.focusables[i] = nil
		}
		s.focusables = kept
		s.resortFocus()

		if successor != nil {
			s.setFocusDirect(successor)
		}
	}

	clearSceneRefs(root)
}

func collectFocusables(n *Node, into map[*Node]bool) {
	if n.focusable != nil {
		into[n] = true
	}
	for _, child := range n.children {
		collectFocusables(child, into)
	}
}

func clearSceneRefs(n *Node) {
	n.scene = nil
	for _, child := range n.children {
		clearSceneRefs(child)
	}
}

// nextSurvivor returns the first registry entry after n, scanning forward
// with wrap-around, that is not in the leaving set. Nil when every entry is
// leaving.
func (s *Scene) nextSurvivor(n *Node, leaving map[*Node]bool) *Node {
	idx := s.focusIndex(n)
	if idx < 0 {
		return nil
	}
	count := len(s.focusables)
	for i := 1; i < count; i++ {
		cand := s.focusables[(idx+i)%count]
		if !leaving[cand] {
			return cand
		}
	}
	return nil
}

// resortFocus re-sorts the focus registry. Explicitly indexed entries come
// first in ascending index order; indexless entries follow. The stable sort
// plus the per-node registration sequence keep registration order as the
// final tiebreaker among equals, so repeated re-sorts never shuffle peers.
func (s *Scene) resortFocus() {
	sort.SliceStable(s.focusables, func(i, j int) bool {
		a, b := s.focusables[i], s.focusables[j]
		if a.hasTabIndex != b.hasTabIndex {
			return a.hasTabIndex
		}
		if a.hasTabIndex && a.tabIndex != b.tabIndex {
			return a.tabIndex < b.tabIndex
		}
		return a.regSeq < b.regSeq
	})
}

// Focusables returns the focus registry in tab order. The returned slice
// MUST NOT be mutated by the caller.
func (s *Scene) Focusables() []*Node {
	return s.focusables
}

// focusIndex returns n's position in the registry, or -1.
func (s *Scene) focusIndex(n *Node) int {
	for i, f := range s.focusables {
		if f == n {
			return i
		}
	}
	return -1
}

// --- Focus transitions ---

// Focused returns the node currently holding keyboard focus, or nil.
func (s *Scene) Focused() *Node {
	return s.focused
}

// SetFocus moves keyboard focus to n, or clears focus when n is nil. The
// target must be a focus-registered node of this scene; SetFocus reports
// false and changes nothing otherwise.
//
// Setting focus to the already-focused node blurs and refocuses it, running
// both callback sets again. Widgets rely on this to refresh their visual
// state, so the double invocation is intentional.
func (s *Scene) SetFocus(n *Node) bool {
	if n == nil {
		if s.focused != nil {
			s.blurNode(s.focused)
			s.focused = nil
		}
		return true
	}
	if n.scene != s || n.focusable == nil {
		return false
	}
	s.setFocusDirect(n)
	return true
}

// setFocusDirect performs the focus transition without membership checks.
// Callers guarantee n is registered.
func (s *Scene) setFocusDirect(n *Node) {
	if s.focused != nil {
		s.blurNode(s.focused)
	}
	s.focused = n
	s.focusNode(n)
}

func (s *Scene) focusNode(n *Node) {
	n.focused = true
	n.focusable.focusGained(n)
	if n.OnFocus != nil {
		n.OnFocus(n)
	}
}

func (s *Scene) blurNode(n *Node) {
	n.focused = false
	n.focusable.focusLost(n)
	if n.OnBlur != nil {
		n.OnBlur(n)
	}
}

// --- Key dispatch ---

// DispatchKey routes one decoded key token through the three-stage chain:
//
//  1. The focused node's widget gets first claim; a consumed token stops
//     here.
//  2. Navigation: tab and shift-tab step through the registry with
//     wrap-around (tab from no focus selects the first entry, shift-tab the
//     last); an unmodified arrow key moves focus spatially (see
//     moveFocusDirectional). Navigation with an empty registry, or an arrow
//     with no current focus or no candidate in that direction, falls
//     through.
//  3. Root-level handlers registered with OnKey for exactly this token.
//
// The return value reports whether any stage handled the token.
func (s *Scene) DispatchKey(k Key) bool {
	if s.focused != nil && s.focused.focusable.handleKey(s.focused, k) {
		return true
	}

	switch {
	case k.Code == KeyTab && k.Mod == 0:
		if s.advanceFocus(1) {
			return true
		}
	case k.Code == KeyBacktab, k.Code == KeyTab && k.Mod == ModShift:
		if s.advanceFocus(-1) {
			return true
		}
	case isArrowKey(k):
		if s.moveFocusDirectional(k.Code) {
			return true
		}
	}

	return s.fireKeyHandlers(k)
}

func isArrowKey(k Key) bool {
	if k.Mod != 0 {
		return false
	}
	switch k.Code {
	case KeyUp, KeyDown, KeyLeft, KeyRight:
		return true
	}
	return false
}

// advanceFocus moves focus delta positions through the registry, wrapping at
// both ends. With no current focus, a forward step selects the first entry
// and a backward step the last. Reports false only when the registry is
// empty.
func (s *Scene) advanceFocus(delta int) bool {
	count := len(s.focusables)
	if count == 0 {
		return false
	}
	cur := -1
	if s.focused != nil {
		cur = s.focusIndex(s.focused)
	}
	var target int
	switch {
	case cur < 0 && delta > 0:
		target = 0
	case cur < 0:
		target = count - 1
	default:
		target = (cur + count + delta%count) % count
	}
	s.setFocusDirect(s.focusables[target])
	return true
}

// moveFocusDirectional moves focus to the registered node nearest in the
// given direction. A candidate qualifies only when its absolute position
// lies strictly in that direction: smaller row for up, larger for down,
// smaller column for left, larger for right. Among qualifiers the one
// minimizing primary-axis delta plus cross-axis delta wins; on equal scores
// the earlier registry entry is kept (strict minimum scan).
//
// Absolute positions are whatever the last PropagateTransform pass produced;
// dispatch normally runs between frames, so they are current.
func (s *Scene) moveFocusDirectional(code KeyCode) bool {
	if s.focused == nil {
		return false
	}
	fx, fy := s.focused.AbsX, s.focused.AbsY

	var best *Node
	bestScore := 0
	for _, cand := range s.focusables {
		if cand == s.focused {
			continue
		}
		dx := cand.AbsX - fx
		dy := cand.AbsY - fy
		var primary, cross int
		switch code {
		case KeyUp:
			if dy >= 0 {
				continue
			}
			primary, cross = -dy, absInt(dx)
		case KeyDown:
			if dy <= 0 {
				continue
			}
			primary, cross = dy, absInt(dx)
		case KeyLeft:
			if dx >= 0 {
				continue
			}
			primary, cross = -dx, absInt(dy)
		case KeyRight:
			if dx <= 0 {
				continue
			}
			primary, cross = dx, absInt(dy)
		default:
			return false
		}
		score := primary + cross
		if best == nil || score < bestScore {
			best = cand
			bestScore = score
		}
	}
	if best == nil {
		return false
	}
	s.setFocusDirect(best)
	return true
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
