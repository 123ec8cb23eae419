package rowan

import "testing"

// --- Absolute offset propagation ---

func TestPropagateTransformRoot(t *testing.T) {
	root := NewGroup("root")
	root.X, root.Y = 3, 7
	PropagateTransform(root)

	if root.AbsX != 3 || root.AbsY != 7 {
		t.Errorf("root abs = (%d, %d), want (3, 7)", root.AbsX, root.AbsY)
	}
}

func TestPropagateTransformNested(t *testing.T) {
	root := NewGroup("root")
	panel := NewGroup("panel")
	label := NewText("label", "x")
	root.AddChild(panel)
	panel.AddChild(label)

	root.X, root.Y = 1, 2
	panel.X, panel.Y = 10, 20
	label.X, label.Y = 100, 200
	PropagateTransform(root)

	if panel.AbsX != 11 || panel.AbsY != 22 {
		t.Errorf("panel abs = (%d, %d), want (11, 22)", panel.AbsX, panel.AbsY)
	}
	if label.AbsX != 111 || label.AbsY != 222 {
		t.Errorf("label abs = (%d, %d), want (111, 222)", label.AbsX, label.AbsY)
	}
}

func TestPropagateTransformPathSum(t *testing.T) {
	// Each node's absolute offset equals the sum of local offsets along its
	// root path, regardless of depth.
	root := NewGroup("root")
	cur := root
	wantX, wantY := 0, 0
	var leaf *Node
	for i := 1; i <= 6; i++ {
		child := NewGroup("")
		child.X, child.Y = i, i*2
		wantX += i
		wantY += i * 2
		cur.AddChild(child)
		cur = child
		leaf = child
	}
	PropagateTransform(root)

	if leaf.AbsX != wantX || leaf.AbsY != wantY {
		t.Errorf("leaf abs = (%d, %d), want (%d, %d)", leaf.AbsX, leaf.AbsY, wantX, wantY)
	}
}

func TestPropagateTransformSiblingsIndependent(t *testing.T) {
	root := NewGroup("root")
	a := NewGroup("a")
	b := NewGroup("b")
	a.X, b.X = 5, 9
	root.AddChild(a)
	root.AddChild(b)
	PropagateTransform(root)

	if a.AbsX != 5 || b.AbsX != 9 {
		t.Errorf("sibling abs = (%d, %d), want (5, 9)", a.AbsX, b.AbsX)
	}
}

// --- Staleness contract ---

func TestAbsStaleUntilNextPass(t *testing.T) {
	root := NewGroup("root")
	child := NewGroup("child")
	child.X = 4
	root.AddChild(child)
	PropagateTransform(root)

	root.X = 50
	if child.AbsX != 4 {
		t.Errorf("child abs should be stale (4) before the next pass, got %d", child.AbsX)
	}

	PropagateTransform(root)
	if child.AbsX != 54 {
		t.Errorf("child abs = %d after pass, want 54", child.AbsX)
	}
}

func TestPropagateTransformVisitsInvisible(t *testing.T) {
	// Visibility gates drawing, not propagation: hidden subtrees keep
	// accurate offsets so spatial focus movement can still target them
	// the frame they reappear.
	root := NewGroup("root")
	hidden := NewGroup("hidden")
	inner := NewGroup("inner")
	hidden.Visible = false
	hidden.X, inner.X = 10, 3
	root.AddChild(hidden)
	hidden.AddChild(inner)
	PropagateTransform(root)

	if inner.AbsX != 13 {
		t.Errorf("inner abs = %d, want 13", inner.AbsX)
	}
}

func TestPropagateTransformRepeatedRuns(t *testing.T) {
	root := NewGroup("root")
	child := NewGroup("child")
	child.X = 2
	root.AddChild(child)

	PropagateTransform(root)
	PropagateTransform(root)
	if child.AbsX != 2 {
		t.Errorf("repeated passes should be idempotent, got %d", child.AbsX)
	}
}
