package rowan

import (
	"fmt"
	"os"
	"sync"
	"time"
)

// RunConfig controls the convenience Run entry point.
type RunConfig struct {
	TickRate int    // scene updates per second; 0 disables the update ticker
	Theme    *Theme // widget palette; nil means DefaultTheme
}

// Loop is the main event loop for a terminal application. It coordinates
// input decoding, key dispatch, deferred callbacks, scene updates, and
// rendering. Input is read on a separate goroutine; everything else runs on
// the loop goroutine, which is why the rest of the package needs no locking.
type Loop struct {
	term     *Terminal
	scene    *Scene
	renderer *Renderer
	tickRate int

	// CallLater queue
	callLaterMu    sync.Mutex
	callLaterQueue []func()

	// Control channels
	inputChan chan []byte
	frameChan chan struct{}
	stopChan  chan struct{}
	stopOnce  sync.Once
}

// NewLoop creates an event loop over the given terminal, scene, and renderer.
func NewLoop(term *Terminal, scene *Scene, r *Renderer) *Loop {
	return &Loop{
		term:      term,
		scene:     scene,
		renderer:  r,
		inputChan: make(chan []byte, 16),
		frameChan: make(chan struct{}, 1),
		stopChan:  make(chan struct{}),
	}
}

// Scene returns the scene driven by this loop.
func (l *Loop) Scene() *Scene {
	return l.scene
}

// Renderer returns the renderer used by this loop.
func (l *Loop) Renderer() *Renderer {
	return l.renderer
}

// SetTickRate sets how many times per second Scene.Update runs. Zero (the
// default) disables the ticker; the scene then only redraws on input and
// explicit frame requests. Must be called before Run.
func (l *Loop) SetTickRate(perSecond int) {
	l.tickRate = perSecond
}

// CallLater schedules a function to run on the loop goroutine before the
// next frame. This is the integration point for work triggered from other
// goroutines. Safe to call from any goroutine.
func (l *Loop) CallLater(fn func()) {
	l.callLaterMu.Lock()
	l.callLaterQueue = append(l.callLaterQueue, fn)
	l.callLaterMu.Unlock()

	l.requestFrame()
}

// requestFrame signals that a frame should be rendered.
// Non-blocking - if a frame is already requested, this does nothing.
func (l *Loop) requestFrame() {
	select {
	case l.frameChan <- struct{}{}:
	default:
	}
}

// RequestRender requests a redraw on the next loop iteration.
// Safe to call from any goroutine.
func (l *Loop) RequestRender() {
	l.requestFrame()
}

// Run starts the event loop and blocks until Stop is called or a frame write
// fails. Raw mode failure is not fatal: the loop warns on stderr and keeps
// running with whatever input the reader delivers, which keeps scripted and
// piped sessions working.
func (l *Loop) Run() error {
	if err := l.term.EnterRaw(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "[rowan] raw mode unavailable: %v (degraded input)\n", err)
	}
	defer func() { _ = l.term.Restore() }()

	go l.readInput()

	// Initial frame, including any callbacks queued before Run.
	l.drainCalls()
	if err := l.renderNow(); err != nil {
		return err
	}

	var tickC <-chan time.Time
	var dt float32
	if l.tickRate > 0 {
		ticker := time.NewTicker(time.Second / time.Duration(l.tickRate))
		defer ticker.Stop()
		tickC = ticker.C
		dt = float32(1.0 / float64(l.tickRate))
	}

	for {
		select {
		case chunk := <-l.inputChan:
			for _, k := range DecodeKeys(chunk) {
				l.scene.DispatchKey(k)
			}
			l.drainCalls()
			if err := l.renderNow(); err != nil {
				return err
			}

		case <-l.frameChan:
			l.drainCalls()
			if err := l.renderNow(); err != nil {
				return err
			}

		case <-tickC:
			l.scene.Update(dt)
			l.drainCalls()
			if err := l.renderNow(); err != nil {
				return err
			}

		case <-l.stopChan:
			return nil
		}
	}
}

// Stop signals the event loop to stop and interrupts any pending input read.
// Safe to call from any goroutine, including key handlers, more than once.
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		l.term.Cancel()
		close(l.stopChan)
	})
}

// readInput reads raw chunks from the terminal on a separate goroutine.
func (l *Loop) readInput() {
	buf := make([]byte, 256)
	for {
		n, err := l.term.Read(buf)
		if err != nil {
			return
		}
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])

			select {
			case l.inputChan <- chunk:
			case <-l.stopChan:
				return
			}
		}
	}
}

// drainCalls runs the deferred-callback queue until it is empty. Callbacks
// may schedule further callbacks; those run in the same drain.
func (l *Loop) drainCalls() {
	for {
		l.callLaterMu.Lock()
		if len(l.callLaterQueue) == 0 {
			l.callLaterMu.Unlock()
			return
		}
		queue := l.callLaterQueue
		l.callLaterQueue = nil
		l.callLaterMu.Unlock()

		for _, fn := range queue {
			fn()
		}
	}
}

// renderNow draws a frame, first absorbing any pending frame request so a
// queued signal does not cause a redundant redraw right after.
func (l *Loop) renderNow() error {
	select {
	case <-l.frameChan:
	default:
	}
	return l.renderer.RenderFrame(l.scene)
}

// Run wires a terminal over stdin and stdout to the scene and blocks until
// the loop stops. Raw mode swallows the interrupt signal, so Run binds
// ctrl+c to stop the loop; the binding runs after any handler the
// application registered for that token. Applications needing custom files,
// a different quit key, or direct loop access build the pieces themselves
// instead.
func Run(scene *Scene, cfg RunConfig) error {
	term, err := NewTerminal(nil, nil)
	if err != nil {
		return err
	}
	defer func() { _ = term.Close() }()

	r := NewRenderer(term)
	if cfg.Theme != nil {
		r.SetTheme(cfg.Theme)
	}
	loop := NewLoop(term, scene, r)
	loop.SetTickRate(cfg.TickRate)
	scene.OnKey(Key{Code: KeyRune, Rune: 'c', Mod: ModCtrl}, func(Key) { loop.Stop() })
	return loop.Run()
}
