package roomdesigner

import (
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestLoadTestScriptErrors(t *testing.T) {
	tests := []struct {
		name, script, want string
	}{
		{"invalid json", `{"steps": [`, "parse test script"},
		{"no steps", `{"steps": []}`, "no steps"},
		{"unknown action", `{"steps": [{"action": "jump"}]}`, `unknown action "jump"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadTestScript([]byte(tt.script))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("LoadTestScript = %v, want error containing %q", err, tt.want)
			}
		})
	}
}

func TestTestRunnerCommands(t *testing.T) {
	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "add", "product": 101},
		{"action": "select", "index": 0},
		{"action": "key", "key": "d"},
		{"action": "wait", "frames": 2},
		{"action": "color", "color": "#000000"},
		{"action": "room", "width": 7, "height": 2.5}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	d := newTestDesigner(t, Config{})
	d.SetTestRunner(r)

	runFrames(d, 3)
	if r.Done() {
		t.Fatal("runner finished early")
	}
	runFrames(d, 7)
	if !r.Done() {
		t.Fatal("runner not done after 10 frames")
	}
	if r.Err() != nil {
		t.Fatalf("Err = %v", r.Err())
	}

	it := d.Store().Snapshot().Item(0)
	if it.Product.ID != testChair.ID {
		t.Errorf("product = %d", it.Product.ID)
	}
	if !vecApprox(it.Position, mgl64.Vec3{MoveStep, 0, 0}, 1e-9) {
		t.Errorf("position = %v", it.Position)
	}
	if it.Color.Hex() != "#000000" {
		t.Errorf("color = %s", it.Color.Hex())
	}
	if r := d.Room(); r.Width != 7 || r.Length != 5 || r.Height != 2.5 {
		t.Errorf("room = %+v", r)
	}
}

func TestTestRunnerWaitsForInjectedInput(t *testing.T) {
	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "click", "x": 600, "y": 20},
		{"action": "hover", "x": 640, "y": 400}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	d := newTestDesigner(t, Config{})
	d.SetTestRunner(r)

	runFrames(d, 1)
	if len(d.injectQueue) != 1 {
		t.Fatalf("queue = %d after the press frame", len(d.injectQueue))
	}
	runFrames(d, 1)
	if r.cursor != 1 {
		t.Errorf("cursor = %d, runner should wait for the release", r.cursor)
	}
	runFrames(d, 3)
	if !r.Done() {
		t.Error("runner should finish once the queue drains")
	}
}

func TestTestRunnerFailingSteps(t *testing.T) {
	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "add", "product": 999},
		{"action": "color", "color": "not-a-color"},
		{"action": "add", "product": 100}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	d := newTestDesigner(t, Config{})
	d.SetTestRunner(r)
	runFrames(d, 5)

	if !r.Done() {
		t.Fatal("failing steps should not stop the script")
	}
	if r.Err() == nil || !strings.Contains(r.Err().Error(), "product 999") {
		t.Errorf("Err = %v, want the first failure", r.Err())
	}
	if d.Store().Snapshot().Len() != 1 {
		t.Error("the last add should still run")
	}
}

func TestTestRunnerScreenshotQueues(t *testing.T) {
	r, err := LoadTestScript([]byte(`{"steps": [{"action": "screenshot", "label": "empty room"}]}`))
	if err != nil {
		t.Fatal(err)
	}
	d := newTestDesigner(t, Config{})
	d.SetTestRunner(r)
	runFrames(d, 1)
	if len(d.screenshotQueue) != 1 || d.screenshotQueue[0] != "empty room" {
		t.Errorf("screenshotQueue = %v", d.screenshotQueue)
	}
}
