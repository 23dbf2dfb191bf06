package flurry

import (
	"encoding/json"
	"fmt"
	"time"
)

// scriptStep is a single action in a playback script.
type scriptStep struct {
	Action string  `json:"action"`
	Label  string  `json:"label,omitempty"`
	Frames int     `json:"frames,omitempty"`
	StepMS float64 `json:"stepMs,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
	DPR    float64 `json:"dpr,omitempty"`
}

type scriptFile struct {
	Steps []scriptStep `json:"steps"`
}

// Script is a parsed playback script. Actions:
//
//	{"action": "start"}
//	{"action": "advance", "frames": 60, "stepMs": 16}
//	{"action": "resize", "width": 390, "height": 844, "dpr": 3}
//	{"action": "screenshot", "label": "after-resize"}
//	{"action": "stop"}
type Script struct {
	steps []scriptStep
}

// LoadScript parses a JSON playback script.
func LoadScript(jsonData []byte) (*Script, error) {
	var f scriptFile
	if err := json.Unmarshal(jsonData, &f); err != nil {
		return nil, fmt.Errorf("parse script: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("parse script: no steps")
	}
	for i, st := range f.Steps {
		switch st.Action {
		case "start", "stop", "advance", "resize", "screenshot":
		default:
			return nil, fmt.Errorf("parse script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &Script{steps: f.Steps}, nil
}

// Len returns the number of steps.
func (s *Script) Len() int {
	return len(s.steps)
}

// Run executes every step of s against the harness in order.
func (h *Harness) Run(s *Script) error {
	for i, st := range s.steps {
		switch st.Action {
		case "start":
			h.Start()
		case "stop":
			h.Stop()
		case "advance":
			frames := max(st.Frames, 1)
			h.Advance(frames, time.Duration(st.StepMS*float64(time.Millisecond)))
		case "resize":
			dpr := st.DPR
			if dpr == 0 {
				dpr = h.Container.DeviceScale()
			}
			h.Container.Resize(st.Width, st.Height, dpr)
		case "screenshot":
			if err := h.Screenshot(st.Label); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		}
	}
	return nil
}
