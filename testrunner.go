package roomdesigner

import (
	"encoding/json"
	"fmt"
)

// testStep is a single action in a script.
type testStep struct {
	Action  string  `json:"action"`
	Label   string  `json:"label,omitempty"`
	X       float64 `json:"x,omitempty"`
	Y       float64 `json:"y,omitempty"`
	FromX   float64 `json:"fromX,omitempty"`
	FromY   float64 `json:"fromY,omitempty"`
	ToX     float64 `json:"toX,omitempty"`
	ToY     float64 `json:"toY,omitempty"`
	Frames  int     `json:"frames,omitempty"`
	Key     string  `json:"key,omitempty"`
	Product int     `json:"product,omitempty"`
	Index   int     `json:"index,omitempty"`
	Width   float64 `json:"width,omitempty"`
	Length  float64 `json:"length,omitempty"`
	Height  float64 `json:"height,omitempty"`
	Color   string  `json:"color,omitempty"`
}

// testScript is the top-level JSON structure of a script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

var knownActions = map[string]bool{
	"screenshot": true, "click": true, "hover": true, "drag": true, "key": true,
	"wait": true, "add": true, "select": true, "room": true, "color": true,
}

// TestRunner sequences injected input, designer commands and screenshots
// across frames for scripted sessions. Attach it with SetTestRunner.
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
	err       error
}

// LoadTestScript parses a JSON script.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		if !knownActions[st.Action] {
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches runner. Its step runs at the start of every
// Update, before input.
func (d *Designer) SetTestRunner(runner *TestRunner) {
	d.testRunner = runner
}

// Done reports whether every step has run.
func (r *TestRunner) Done() bool {
	return r.done
}

// Err returns the first error a step produced, if any. Failing steps are
// skipped and the script continues.
func (r *TestRunner) Err() error {
	return r.err
}

func (r *TestRunner) fail(err error) {
	debugf("test runner: %v", err)
	if r.err == nil {
		r.err = err
	}
}

// step advances the runner by one frame.
func (r *TestRunner) step(d *Designer) {
	if r.done {
		return
	}
	if len(d.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		d.Screenshot(st.Label)
	case "click":
		d.InjectClick(st.X, st.Y)
	case "hover":
		d.InjectHover(st.X, st.Y)
	case "drag":
		d.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "key":
		d.InjectKey(st.Key)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	case "add":
		if !d.catalogPanel.ChooseID(st.Product) {
			r.fail(fmt.Errorf("step %d: product %d not in catalog", r.cursor-1, st.Product))
		}
	case "select":
		d.ctrl.ClickItem(st.Index)
	case "room":
		if st.Width > 0 {
			d.SetRoomWidth(st.Width)
		}
		if st.Length > 0 {
			d.SetRoomLength(st.Length)
		}
		if st.Height > 0 {
			d.SetRoomHeight(st.Height)
		}
	case "color":
		c, err := ParseColor(st.Color)
		if err != nil {
			r.fail(fmt.Errorf("step %d: %w", r.cursor-1, err))
			break
		}
		d.SetSelectedColor(c)
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(d.injectQueue) == 0 {
		r.done = true
	}
}
