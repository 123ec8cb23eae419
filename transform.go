package rowan

// PropagateTransform recomputes the absolute offset of every node in the
// tree rooted at root. The root's absolute offset is its local offset; every
// other node's absolute offset is its parent's absolute offset plus its own
// local offset.
//
// The pass visits each node exactly once, parents before children — a child
// read before its parent would see a stale position. Absolute offsets are a
// derived cache: they are correct immediately after this pass and become
// stale the moment any ancestor's local offset changes. Nothing invalidates
// them automatically; re-run the pass (the renderer does, at the start of
// every frame) before reading AbsX/AbsY.
func PropagateTransform(root *Node) {
	root.AbsX = root.X
	root.AbsY = root.Y
	for _, child := range root.children {
		propagateFrom(child)
	}
}

// propagateFrom computes n's absolute offset from its parent's already
// computed one, then descends.
func propagateFrom(n *Node) {
	n.AbsX = n.Parent.AbsX + n.X
	n.AbsY = n.Parent.AbsY + n.Y
	for _, child := range n.children {
		propagateFrom(child)
	}
}
