package rowan

import (
	"fmt"
	"os"
	"time"
)

// frameStats holds per-frame timing and output metrics.
// Only populated when Scene.debug is true.
type frameStats struct {
	renderTime   time.Duration
	nodesVisited int
	nodesDrawn   int
	bytesOut     int
}

// debugLog prints timing and output stats for the last frame to stderr.
func (r *Renderer) debugLog() {
	_, _ = fmt.Fprintf(os.Stderr,
		"[rowan] render: %v | visited: %d | drawn: %d | bytes: %d\n",
		r.stats.renderTime, r.stats.nodesVisited, r.stats.nodesDrawn, r.stats.bytesOut)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called when Scene.debug or the node's scene is
// in debug mode. In release mode callers skip this entirely.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("rowan debug: %s on disposed node %q (ID was %d)", op, n.Name, n.ID))
	}
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[rowan] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

// debugCheckChildCount warns on stderr if a node has more than 1000 children.
const debugMaxChildCount = 1000

func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		_, _ = fmt.Fprintf(os.Stderr, "[rowan] warning: node %q has %d children (threshold %d)\n",
			n.Name, len(n.children), debugMaxChildCount)
	}
}
