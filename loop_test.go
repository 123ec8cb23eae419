package rowan

import (
	"io"
	"os"
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

// pipeLoop builds a loop over pipe-backed terminal I/O. Frames go to an
// in-memory sink; the out pipe is drained so terminal control writes never
// block. Raw mode fails on pipes, so the loop runs in its degraded mode,
// which is exactly what drives it during scripted tests.
func pipeLoop(t *testing.T) (loop *Loop, scene *Scene, inW *os.File, sink *captureSink) {
	t.Helper()
	inR, inW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	go func() { _, _ = io.Copy(io.Discard, outR) }()

	term, err := NewTerminal(inR, outW)
	if err != nil {
		t.Fatalf("NewTerminal: %v", err)
	}
	scene = NewScene()
	sink = &captureSink{}
	loop = NewLoop(term, scene, NewRenderer(sink))

	t.Cleanup(func() {
		term.Close()
		inR.Close()
		inW.Close()
		outR.Close()
		outW.Close()
	})
	return loop, scene, inW, sink
}

func TestLoopStopFromKeyHandler(t *testing.T) {
	loop, scene, inW, _ := pipeLoop(t)
	scene.OnKey(Char('q'), func(Key) { loop.Stop() })

	if _, err := inW.WriteString("q"); err != nil {
		t.Fatal(err)
	}
	if err := loop.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestLoopRendersInputDrivenFrames(t *testing.T) {
	loop, scene, inW, sink := pipeLoop(t)
	in := NewInput("in", 8)
	scene.Root().AddChild(in)
	scene.SetFocus(in)
	// The focused input consumes printable runes, so stop on escape,
	// which passes through every stage to the root handler.
	scene.OnKey(Key{Code: KeyEscape}, func(Key) { loop.Stop() })

	if _, err := inW.WriteString("hi\x1b"); err != nil {
		t.Fatal(err)
	}
	if err := loop.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if in.Input.Value() != "hi" {
		t.Errorf("input value = %q, want %q", in.Input.Value(), "hi")
	}
	if sink.Len() == 0 {
		t.Error("the loop should have rendered frames to the sink")
	}
}

func TestLoopCallLaterBeforeRun(t *testing.T) {
	loop, _, _, _ := pipeLoop(t)
	ran := false
	loop.CallLater(func() {
		ran = true
		loop.Stop()
	})
	if err := loop.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !ran {
		t.Error("a callback queued before Run should run before the first frame")
	}
}

func TestLoopCallLaterFromHandler(t *testing.T) {
	loop, scene, inW, _ := pipeLoop(t)
	var order []string
	scene.OnKey(Char('c'), func(Key) {
		order = append(order, "handler")
		loop.CallLater(func() {
			order = append(order, "later")
			loop.Stop()
		})
	})

	if _, err := inW.WriteString("c"); err != nil {
		t.Fatal(err)
	}
	if err := loop.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(order) != 2 || order[0] != "handler" || order[1] != "later" {
		t.Errorf("order = %v, want [handler later]", order)
	}
}

func TestLoopCallLaterNested(t *testing.T) {
	loop, _, _, _ := pipeLoop(t)
	ran := false
	loop.CallLater(func() {
		// Callbacks scheduled from a callback run in the same drain.
		loop.CallLater(func() {
			ran = true
			loop.Stop()
		})
	})
	if err := loop.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !ran {
		t.Error("nested callback should have run")
	}
}

func TestLoopTickerDrivesUpdates(t *testing.T) {
	loop, scene, _, _ := pipeLoop(t)
	n := NewRect("r", 1, 1, ColorGray)
	scene.Root().AddChild(n)

	g := TweenPosition(n, 4, 0, 0.05, ease.Linear)
	g.OnComplete = func(*Node) { loop.Stop() }
	scene.Animate(g)

	loop.SetTickRate(120)
	start := time.Now()
	if err := loop.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if n.X != 4 {
		t.Errorf("X after the animation = %d, want 4", n.X)
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("animation took %v, expected well under a second", elapsed)
	}
}

func TestLoopStopBeforeRun(t *testing.T) {
	loop, _, _, _ := pipeLoop(t)
	loop.Stop()
	loop.Stop() // idempotent

	done := make(chan error, 1)
	go func() { done <- loop.Run() }()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run after Stop = %v, want nil", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after a prior Stop")
	}
}

func TestRequestRenderNeverBlocks(t *testing.T) {
	loop, _, _, _ := pipeLoop(t)
	loop.RequestRender()
	loop.RequestRender() // coalesces with the pending request
}

func TestLoopAccessors(t *testing.T) {
	loop, scene, _, _ := pipeLoop(t)
	if loop.Scene() != scene {
		t.Error("Scene() should return the wired scene")
	}
	if loop.Renderer() == nil {
		t.Error("Renderer() should return the wired renderer")
	}
}

func TestLoopRunReturnsRenderError(t *testing.T) {
	inR, inW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer inR.Close()
	defer inW.Close()
	outR, outW, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	defer outR.Close()
	defer outW.Close()
	go func() { _, _ = io.Copy(io.Discard, outR) }()

	term, err := NewTerminal(inR, outW)
	if err != nil {
		t.Fatal(err)
	}
	defer term.Close()

	loop := NewLoop(term, NewScene(), NewRenderer(&failSink{failWrite: true}))
	if err := loop.Run(); err == nil {
		t.Error("a failing frame write should abort Run with an error")
	}
}
