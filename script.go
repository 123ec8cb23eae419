package rowan

import (
	"encoding/json"
	"fmt"
)

// scriptStep represents a single action in a replay script.
type scriptStep struct {
	Action  string  `json:"action"`
	Key     string  `json:"key,omitempty"`
	Count   int     `json:"count,omitempty"`
	Text    string  `json:"text,omitempty"`
	Node    string  `json:"node,omitempty"`
	Seconds float64 `json:"seconds,omitempty"`
}

// scriptFile is the top-level JSON structure for a replay script.
type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script is a parsed input-replay script for automated testing and demos.
// Actions: "key" (token spelling plus optional count), "text" (each character
// dispatched as a literal token), "focus" (move focus to a named node),
// "update" (advance animations by seconds), "render" (draw a frame).
type Script struct {
	steps []scriptStep
}

// Len returns the number of steps in the script.
func (sc *Script) Len() int {
	return len(sc.steps)
}

// LoadScript parses a JSON replay script. Key spellings and action names are
// validated here so a typo fails at load time, not halfway through a replay.
func LoadScript(jsonData []byte) (*Script, error) {
	var file scriptFile
	if err := json.Unmarshal(jsonData, &file); err != nil {
		return nil, fmt.Errorf("rowan: parse script: %w", err)
	}
	if len(file.Steps) == 0 {
		return nil, fmt.Errorf("rowan: parse script: no steps")
	}
	for i, st := range file.Steps {
		switch st.Action {
		case "key":
			if _, ok := ParseKey(st.Key); !ok {
				return nil, fmt.Errorf("rowan: parse script: step %d: unknown key %q", i, st.Key)
			}
		case "text", "focus", "update", "render":
		default:
			return nil, fmt.Errorf("rowan: parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: file.Steps}, nil
}

// RunScript replays a script against the scene, drawing through r whenever
// the script asks for a frame. Pass a nil renderer to skip render steps.
func (s *Scene) RunScript(sc *Script, r *Renderer) error {
	for i, st := range sc.steps {
		switch st.Action {
		case "key":
			k, _ := ParseKey(st.Key)
			count := st.Count
			if count < 1 {
				count = 1
			}
			for j := 0; j < count; j++ {
				s.DispatchKey(k)
			}
		case "text":
			for _, ch := range st.Text {
				s.DispatchKey(Char(ch))
			}
		case "focus":
			n := s.Find(st.Node)
			if n == nil {
				return fmt.Errorf("rowan: script step %d: node %q not found", i, st.Node)
			}
			if !s.SetFocus(n) {
				return fmt.Errorf("rowan: script step %d: node %q is not focusable", i, st.Node)
			}
		case "update":
			s.Update(float32(st.Seconds))
		case "render":
			if r == nil {
				continue
			}
			if err := r.RenderFrame(s); err != nil {
				return fmt.Errorf("rowan: script step %d: %w", i, err)
			}
		}
	}
	return nil
}
