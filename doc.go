// Package rowan is a retained-mode scene-graph toolkit for terminals.
//
// Rowan provides the node tree, transform propagation, escape-stream
// rendering with true-color and kitty graphics output, keyboard decoding,
// focus traversal, and the built-in widgets a non-trivial terminal
// application needs.
//
// # Quick start
//
// The simplest way to get started is [Run], which puts the terminal in raw
// mode, drives the event loop, and stops on ctrl+c:
//
//	scene := rowan.NewScene()
//	// ... add nodes ...
//	if err := rowan.Run(scene, rowan.RunConfig{TickRate: 30}); err != nil {
//		log.Fatal(err)
//	}
//
// For full control, including the choice of quit key, build the pieces
// yourself and call [Loop.Run]:
//
//	term, err := rowan.NewTerminal(nil, nil)
//	if err != nil { ... }
//	loop := rowan.NewLoop(term, scene, rowan.NewRenderer(term))
//	scene.OnKey(rowan.Key{Code: rowan.KeyEscape}, func(rowan.Key) { loop.Stop() })
//	err = loop.Run()
//
// # Scene graph
//
// Every visual element is a [Node]. Nodes form a tree rooted at
// [Scene.Root]. Children inherit their parent's position; absolute cell
// offsets are recomputed each frame by [PropagateTransform].
//
// Create nodes with typed constructors: [NewGroup], [NewRect], [NewText],
// [NewImage], [NewButton], [NewInput], and [NewList].
//
//	panel := rowan.NewGroup("panel")
//	scene.Root().AddChild(panel)
//
//	box := rowan.NewRect("box", 10, 4, rowan.ColorBlue)
//	box.X, box.Y = 2, 1
//	panel.AddChild(box)
//
// Positions and sizes are character cells. A rectangle cell spans two
// terminal columns so unit squares render square on common fonts.
//
// # Key features
//
// Rowan includes focus traversal with tab order and spatial arrow-key
// movement, per-scene key handler registries, pixel image transmission via
// the kitty graphics protocol, TOML widget themes, tweens (via [gween]),
// and JSON input-replay scripts for automated testing (see [LoadScript]).
//
// [gween]: https://github.com/tanema/gween
package rowan
