package rowan

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic — rowan is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// --- Node ---

// Node is the fundamental scene graph element. A single flat struct is used
// for all node types; drawing dispatches on Type, and the focusable widget
// types additionally carry a payload pointer implementing the focus
// capability.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Type NodeType

	// Hierarchy
	Parent   *Node
	children []*Node

	// Local offset in character cells, relative to the parent.
	X, Y int

	// Absolute offset, derived by PropagateTransform. Valid only immediately
	// after a propagation pass over the whole tree; any ancestor offset
	// change leaves these stale until the next pass. The renderer runs a
	// pass at the start of every frame.
	AbsX, AbsY int

	// Visibility & ordering
	Visible bool
	ZIndex  int

	// Owning scene. Set when the node is attached under a scene's root,
	// cleared on detach. Carried so that focus registration and re-sorting
	// never have to search upward through parent links.
	scene *Scene

	// Geometry in cells (NodeTypeRect, NodeTypeInput, NodeTypeList).
	W, H int

	// Rect fields (NodeTypeRect)
	Style      RectStyle
	Fill       Color
	GradientTo *Color // vertical gradient end color; nil for a solid fill

	// Text fields (NodeTypeText)
	Content string
	Fg      Color

	// Image payload (NodeTypeImage)
	Image *ImageData

	// Widget payloads
	Button *ButtonState
	Input  *InputState
	List   *ListState

	// Focus state (widget node types)
	focusable   focusable
	focused     bool
	tabIndex    int
	hasTabIndex bool
	regSeq      uint64 // registration sequence, assigned by the scene

	// Per-node callbacks (nil by default; zero cost when unused)
	OnFocus func(*Node)
	OnBlur  func(*Node)

	// Metadata
	UserData any

	// Internal
	disposed       bool
	childrenSorted bool
	sortedChildren []*Node // reused buffer for ZIndex-sorted traversal order
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.Visible = true
	n.Fg = ColorWhite
	n.childrenSorted = true
}

// NewGroup creates a container node with no visual representation.
func NewGroup(name string) *Node {
	n := &Node{Name: name, Type: NodeTypeGroup}
	nodeDefaults(n)
	return n
}

// NewRect creates a rectangle node drawn as a solid fill by default.
// Set Style to RectOutline for a box-drawing border instead.
func NewRect(name string, w, h int, fill Color) *Node {
	n := &Node{Name: name, Type: NodeTypeRect, W: w, H: h, Fill: fill}
	nodeDefaults(n)
	return n
}

// NewText creates a single-line text node. The default foreground is white.
func NewText(name, content string) *Node {
	n := &Node{Name: name, Type: NodeTypeText, Content: content}
	nodeDefaults(n)
	return n
}

// NewImage creates an image node from pre-encoded image data.
func NewImage(name string, img ImageData) *Node {
	n := &Node{Name: name, Type: NodeTypeImage, Image: &img}
	nodeDefaults(n)
	return n
}

// NewButton creates a focusable button node with the given label.
func NewButton(name, label string) *Node {
	b := &ButtonState{Label: label}
	n := &Node{Name: name, Type: NodeTypeButton, Button: b, focusable: b}
	nodeDefaults(n)
	return n
}

// NewInput creates a focusable single-line text input displayed width cells
// wide.
func NewInput(name string, width int) *Node {
	in := &InputState{}
	n := &Node{Name: name, Type: NodeTypeInput, W: width, Input: in, focusable: in}
	nodeDefaults(n)
	return n
}

// NewList creates a focusable list node showing items in a w by h cell
// viewport. The list scrolls to keep the selected item visible.
func NewList(name string, items []string, w, h int) *Node {
	l := &ListState{Items: items}
	n := &Node{Name: name, Type: NodeTypeList, W: w, H: h, List: l, focusable: l}
	nodeDefaults(n)
	return n
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is detached from that parent first,
// including removal of any focus registrations. If this node belongs to a
// scene, the child subtree is scanned and its focusable nodes registered.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("rowan: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("rowan: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.detachChild(child)
	} else if child.scene != nil {
		// Detached root of another scene.
		child.scene.releaseSubtree(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
	n.childrenSorted = false
	if n.scene != nil {
		n.scene.adoptSubtree(child)
	}
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// AddChildAt inserts child at the given index among this node's children.
// Same reparenting, registration, and cycle-check behavior as AddChild.
// Panics if the index is out of range.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("rowan: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChildAt (parent)")
		debugCheckDisposed(child, "AddChildAt (child)")
	}
	if isAncestor(child, n) {
		panic("rowan: adding child would create a cycle")
	}
	if index < 0 || index > len(n.children) {
		panic("rowan: child index out of range")
	}
	if child.Parent != nil {
		child.Parent.detachChild(child)
	} else if child.scene != nil {
		child.scene.releaseSubtree(child)
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
	n.childrenSorted = false
	if n.scene != nil {
		n.scene.adoptSubtree(child)
	}
	if globalDebug {
		debugCheckTreeDepth(child)
		debugCheckChildCount(n)
	}
}

// RemoveChild detaches child from this node. It reports false, with no other
// effect, when child is not currently one of this node's children. On
// success any focus registrations in the removed subtree are released; if
// the focused node was among them, focus advances to the next registry entry
// or clears.
func (n *Node) RemoveChild(child *Node) bool {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChild (parent)")
	}
	if child == nil || child.Parent != n {
		return false
	}
	n.detachChild(child)
	return true
}

// RemoveChildAt removes and returns the child at the given index.
// Panics if the index is out of range.
func (n *Node) RemoveChildAt(index int) *Node {
	if globalDebug {
		debugCheckDisposed(n, "RemoveChildAt")
	}
	if index < 0 || index >= len(n.children) {
		panic("rowan: child index out of range")
	}
	child := n.children[index]
	n.detachChild(child)
	return child
}

// RemoveFromParent detaches this node from its parent.
// It reports false when the node has no parent.
func (n *Node) RemoveFromParent() bool {
	if n.Parent == nil {
		return false
	}
	return n.Parent.RemoveChild(n)
}

// RemoveChildren detaches all children from this node.
// Children are NOT disposed.
func (n *Node) RemoveChildren() {
	for i, child := range n.children {
		child.Parent = nil
		if child.scene != nil {
			child.scene.releaseSubtree(child)
		}
		n.children[i] = nil
	}
	n.children = n.children[:0]
	n.childrenSorted = true
}

// detachChild removes child and runs the detach side effects. The caller
// guarantees child.Parent == n.
func (n *Node) detachChild(child *Node) {
	n.removeChildByPtr(child)
	child.Parent = nil
	n.childrenSorted = false
	if child.scene != nil {
		child.scene.releaseSubtree(child)
	}
}

// Children returns the child list. The returned slice MUST NOT be mutated by
// the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// ChildAt returns the child at the given index.
func (n *Node) ChildAt(index int) *Node {
	return n.children[index]
}

// SetChildIndex moves child to a new index among its siblings.
func (n *Node) SetChildIndex(child *Node, index int) {
	if child.Parent != n {
		panic("rowan: child's parent is not this node")
	}
	nc := len(n.children)
	if index < 0 || index >= nc {
		panic("rowan: child index out of range")
	}
	oldIndex := -1
	for i, c := range n.children {
		if c == child {
			oldIndex = i
			break
		}
	}
	if oldIndex == index {
		return
	}
	// Shift elements to fill the gap and open the target slot.
	if oldIndex < index {
		copy(n.children[oldIndex:], n.children[oldIndex+1:index+1])
	} else {
		copy(n.children[index+1:], n.children[index:oldIndex])
	}
	n.children[index] = child
	n.childrenSorted = false
}

// SetZIndex sets the node's ZIndex and marks the parent's children as
// unsorted.
func (n *Node) SetZIndex(z int) {
	if n.ZIndex == z {
		return
	}
	n.ZIndex = z
	if n.Parent != nil {
		n.Parent.childrenSorted = false
	}
}

// FindByName returns the first node named name in this subtree, searching
// pre-order, or nil when absent.
func (n *Node) FindByName(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.children {
		if found := child.FindByName(name); found != nil {
			return found
		}
	}
	return nil
}

// --- Focus attributes ---

// Focused reports whether this node currently holds keyboard focus.
func (n *Node) Focused() bool {
	return n.focused
}

// SetTabIndex assigns an explicit tab-order index. Indexed nodes come before
// indexless ones in tab order, ascending. Assigning an index to a node that
// is already focus-registered re-sorts the registry.
func (n *Node) SetTabIndex(index int) {
	n.tabIndex = index
	n.hasTabIndex = true
	if n.scene != nil && n.focusable != nil {
		n.scene.resortFocus()
	}
}

// ClearTabIndex removes the explicit tab-order index, returning the node to
// registration order after all indexed nodes.
func (n *Node) ClearTabIndex() {
	n.tabIndex = 0
	n.hasTabIndex = false
	if n.scene != nil && n.focusable != nil {
		n.scene.resortFocus()
	}
}

// TabIndex returns the explicit tab-order index and whether one is set.
func (n *Node) TabIndex() (int, bool) {
	return n.tabIndex, n.hasTabIndex
}

// --- Drawing order ---

// drawOrder returns the children in traversal order: ZIndex ascending,
// insertion order among equals. The sorted buffer is rebuilt lazily after a
// ZIndex or membership change.
func (n *Node) drawOrder() []*Node {
	if len(n.children) == 0 {
		return nil
	}
	if !n.childrenSorted {
		n.rebuildSortedChildren()
	}
	if n.sortedChildren != nil {
		return n.sortedChildren
	}
	return n.children
}

// rebuildSortedChildren rebuilds the ZIndex-sorted traversal order.
// Uses insertion sort: zero allocations once the buffer exists, stable, and
// optimal for the typical case of few children that are nearly sorted.
func (n *Node) rebuildSortedChildren() {
	nc := len(n.children)
	if cap(n.sortedChildren) < nc {
		n.sortedChildren = make([]*Node, nc)
	}
	n.sortedChildren = n.sortedChildren[:nc]
	copy(n.sortedChildren, n.children)
	for i := 1; i < nc; i++ {
		key := n.sortedChildren[i]
		j := i - 1
		for j >= 0 && n.sortedChildren[j].ZIndex > key.ZIndex {
			n.sortedChildren[j+1] = n.sortedChildren[j]
			j--
		}
		n.sortedChildren[j+1] = key
	}
	n.childrenSorted = true
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed, and
// recursively disposes all descendants. Running tweens targeting a disposed
// node stop on their next update.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	if n.Parent != nil {
		n.Parent.RemoveChild(n)
	} else if n.scene != nil {
		n.scene.releaseSubtree(n)
	}
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.sortedChildren = nil
	n.Parent = nil
	n.Image = nil
	n.Button = nil
	n.Input = nil
	n.List = nil
	n.focusable = nil
	n.GradientTo = nil
	n.UserData = nil
	n.OnFocus = nil
	n.OnBlur = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing
// child.Parent. Uses copy+nil to avoid retaining a dangling pointer in the
// backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}
