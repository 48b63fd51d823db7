package render

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/gregzanch/rirtrace/internal/geom"
	"github.com/gregzanch/rirtrace/internal/scene"
	"github.com/gregzanch/rirtrace/internal/sceneio"
)

func TestConfigValidate(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate, got %v", err)
	}

	bad := cfg
	bad.SampleRate = 0
	if err := bad.Validate(); err != ErrInvalidSampleRate {
		t.Errorf("got %v, want ErrInvalidSampleRate", err)
	}

	bad = cfg
	bad.Overlap = 1.5
	if err := bad.Validate(); err != ErrInvalidOverlap {
		t.Errorf("got %v, want ErrInvalidOverlap", err)
	}
}

func testScene() *sceneio.Scene {
	root := scene.NewNode(0, "root")
	receiver := scene.NewNode(1, "receiver")
	receiver.Primitive = geom.Sphere{}
	receiver.Scale(geom.Vec3{X: 2, Y: 2, Z: 2})
	root.AddChild(receiver)

	return &sceneio.Scene{
		Root:     root,
		Source:   geom.Vec3{},
		Receiver: 1,
		MaxOrder: 5,
		RayCount: 10,
	}
}

func TestRenderProducesSignalAndProgress(t *testing.T) {
	sc := testScene()
	cfg := DefaultConfig()
	cfg.SampleRate = 2000

	var progress bytes.Buffer
	signal, err := Render(context.Background(), sc, cfg, &progress)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(signal) == 0 {
		t.Fatalf("expected a non-empty signal")
	}

	dec := json.NewDecoder(&progress)
	var events []ProgressEvent
	for {
		var ev ProgressEvent
		if err := dec.Decode(&ev); err != nil {
			break
		}
		events = append(events, ev)
	}
	if len(events) == 0 {
		t.Fatalf("expected at least one progress line")
	}
	if events[0].Phase != PhaseInitializing {
		t.Errorf("first phase = %q, want %q", events[0].Phase, PhaseInitializing)
	}
	last := events[len(events)-1]
	if last.Phase != PhaseFinishing {
		t.Errorf("last phase = %q, want %q", last.Phase, PhaseFinishing)
	}
	if last.Progress != 100 {
		t.Errorf("final progress = %d, want 100", last.Progress)
	}

	sawRaytracing := false
	for _, ev := range events {
		if ev.Phase == PhaseRaytracing {
			sawRaytracing = true
			if ev.Progress < 0 || ev.Progress > 100 {
				t.Errorf("raytracing progress %d outside [0,100]", ev.Progress)
			}
		}
	}
	if !sawRaytracing {
		t.Errorf("expected at least one %q progress line", PhaseRaytracing)
	}
}

func TestRenderRejectsZeroRayCountAndMaxOrder(t *testing.T) {
	sc := testScene()
	sc.MaxOrder = 0
	sc.RayCount = 0
	cfg := DefaultConfig()

	if _, err := Render(context.Background(), sc, cfg, nil); err == nil {
		t.Errorf("expected an error when neither the scene nor the config set max order/ray count")
	}
}
