package rowan

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// tweenKind selects which node fields a TweenGroup writes.
type tweenKind uint8

const (
	tweenPosition tweenKind = iota
	tweenFill
	tweenFg
)

// TweenGroup animates up to 3 numeric fields on a Node simultaneously.
// Create one via the convenience constructors (TweenPosition, TweenFill,
// TweenFg) and either register it with Scene.Animate so Scene.Update advances
// it, or call Update(dt) yourself each frame. Interpolation runs in float
// space; integer fields are rounded on application. If the target node is
// disposed, the group stops immediately.
type TweenGroup struct {
	tweens [3]*gween.Tween
	count  int
	kind   tweenKind
	target *Node
	Done   bool

	// OnComplete fires once, on the update that finishes the last tween.
	OnComplete func(*Node)
}

// Update advances all tweens by dt seconds and writes values to the target
// node. If the target node has been disposed, Done is set to true and no
// writes occur.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	var vals [3]float32
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		vals[i] = val
		if !finished {
			allDone = false
		}
	}
	g.apply(vals)

	if allDone {
		g.Done = true
		if g.OnComplete != nil {
			g.OnComplete(g.target)
		}
	}
}

func (g *TweenGroup) apply(vals [3]float32) {
	switch g.kind {
	case tweenPosition:
		g.target.X = roundCell(vals[0])
		g.target.Y = roundCell(vals[1])
	case tweenFill:
		g.target.Fill = Color{clampByte(vals[0]), clampByte(vals[1]), clampByte(vals[2])}
	case tweenFg:
		g.target.Fg = Color{clampByte(vals[0]), clampByte(vals[1]), clampByte(vals[2])}
	}
}

// TweenPosition creates a TweenGroup that animates node.X and node.Y to the
// given cell coordinates over the specified duration using the easing
// function. Positions are rounded to the nearest cell each update.
func TweenPosition(node *Node, toX, toY int, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, kind: tweenPosition, target: node}
	g.tweens[0] = gween.New(float32(node.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(node.Y), float32(toY), duration, fn)
	return g
}

// TweenFill creates a TweenGroup that animates all three channels of
// node.Fill to the target color over the specified duration.
func TweenFill(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3, kind: tweenFill, target: node}
	g.tweens[0] = gween.New(float32(node.Fill.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(node.Fill.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(node.Fill.B), float32(to.B), duration, fn)
	return g
}

// TweenFg creates a TweenGroup that animates all three channels of node.Fg
// to the target color over the specified duration.
func TweenFg(node *Node, to Color, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 3, kind: tweenFg, target: node}
	g.tweens[0] = gween.New(float32(node.Fg.R), float32(to.R), duration, fn)
	g.tweens[1] = gween.New(float32(node.Fg.G), float32(to.G), duration, fn)
	g.tweens[2] = gween.New(float32(node.Fg.B), float32(to.B), duration, fn)
	return g
}

func roundCell(v float32) int {
	return int(math.Round(float64(v)))
}

func clampByte(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(math.Round(float64(v)))
}
