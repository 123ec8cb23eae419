package rowan

// Scene is the top-level object that owns the node tree, the focus registry,
// root-level key handlers, and running animations.
type Scene struct {
	root  *Node
	debug bool

	// Focus state
	focusables   []*Node
	focused      *Node
	nextFocusSeq uint64

	// Root-level key handlers
	handlers keyHandlerRegistry

	// Running tween groups, drained as they finish
	tweens []*TweenGroup
}

// NewScene creates a new scene with a pre-created root group node.
func NewScene() *Scene {
	s := &Scene{}
	root := NewGroup("root")
	root.scene = s
	s.root = root
	return s
}

// Root returns the scene's root group node. Nodes attached under the root
// become part of the scene: their focusable descendants join the focus
// registry as they are attached.
func (s *Scene) Root() *Node {
	return s.root
}

// Find returns the first node with the given name, searching the tree
// pre-order from the root, or nil when absent.
func (s *Scene) Find(name string) *Node {
	return s.root.FindByName(name)
}

// Update advances running animations by dt seconds and drops finished ones.
// Call it from the event loop tick or any other per-frame driver.
//
// Completion callbacks may register new groups; those start on the next
// Update, not the current one.
func (s *Scene) Update(dt float32) {
	if len(s.tweens) == 0 {
		return
	}

	// Detach the running set so an Animate call from an OnComplete
	// callback appends to a fresh slice instead of the one being
	// compacted.
	running := s.tweens
	s.tweens = nil

	kept := running[:0]
	for _, g := range running {
		g.Update(dt)
		if !g.Done {
			kept = append(kept, g)
		}
	}
	for i := len(kept); i < len(running); i++ {
		running[i] = nil
	}

	added := s.tweens
	s.tweens = append(kept, added...)
}

// Animate registers a tween group with the scene so Update advances it.
// Groups may also be updated manually; Animate is the convenience path.
func (s *Scene) Animate(g *TweenGroup) {
	s.tweens = append(s.tweens, g)
}

// SetDebug enables or disables debug mode. When enabled, disposed-node
// access panics, tree depth and child count warnings are printed, and
// per-frame render stats are logged to stderr.
func (s *Scene) SetDebug(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Scene debug flag so that node
// operations (which may run on detached subtrees without a scene handle)
// can check it cheaply. Only valid with a single Scene; multiple Scenes with
// differing debug modes will reflect whichever called SetDebug last.
var globalDebug bool

// --- Root-level key handlers ---

type keyHandler struct {
	id uint32
	fn func(Key)
}

type keyHandlerRegistry struct {
	byKey  map[Key][]keyHandler
	nextID uint32
}

// CallbackHandle allows removing a registered root-level key handler.
type CallbackHandle struct {
	id  uint32
	reg *keyHandlerRegistry
	key Key
}

// Remove unregisters this handler so it no longer fires.
// The entry is removed from the slice to avoid nil iteration waste.
func (h CallbackHandle) Remove() {
	if h.reg == nil || h.reg.byKey == nil {
		return
	}
	entries := h.reg.byKey[h.key]
	for i := range entries {
		if entries[i].id == h.id {
			copy(entries[i:], entries[i+1:])
			entries[len(entries)-1] = keyHandler{}
			entries = entries[:len(entries)-1]
			break
		}
	}
	if len(entries) == 0 {
		delete(h.reg.byKey, h.key)
	} else {
		h.reg.byKey[h.key] = entries
	}
}

// OnKey registers a root-level handler for exactly the given key token.
// Handlers are the final dispatch stage: they run only for tokens the
// focused widget and the navigation stage both declined. All handlers for a
// token fire in registration order.
func (s *Scene) OnKey(k Key, fn func(Key)) CallbackHandle {
	if s.handlers.byKey == nil {
		s.handlers.byKey = make(map[Key][]keyHandler)
	}
	s.handlers.nextID++
	id := s.handlers.nextID
	s.handlers.byKey[k] = append(s.handlers.byKey[k], keyHandler{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, key: k}
}

// fireKeyHandlers invokes the root-level handlers for k and reports whether
// any were registered.
//
// A handler may remove itself (or any other handler) while it runs, so the
// loop walks a snapshot; Remove compacts the live slice in place and must
// not shift or zero an entry out from under the iteration. Handlers
// registered mid-dispatch fire on the next dispatch, not this one.
func (s *Scene) fireKeyHandlers(k Key) bool {
	entries := s.handlers.byKey[k]
	if len(entries) == 0 {
		return false
	}
	snap := append([]keyHandler(nil), entries...)
	for _, h := range snap {
		if h.fn != nil {
			h.fn(k)
		}
	}
	return true
}
