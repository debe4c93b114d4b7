package automation

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/plexus/internal/dynamo"
)

const scenarioYAML = `
name: hover
preset: sparse
seed: 9
frames: 30
width: 400
height: 300
events:
  - frame: 20
    kind: resize
    width: 200
    height: 150
  - frame: 10
    kind: pointer
    x: 200
    y: 150
`

func writeScenario(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAndReplay(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	if s.Name != "hover" || len(s.Events) != 2 {
		t.Fatalf("unexpected scenario %+v", s)
	}

	res, err := Replay(context.Background(), s, Options{Quiet: true})
	if err != nil {
		t.Fatal(err)
	}
	if res.Frames != 30 {
		t.Errorf("expected 30 frames, got %d", res.Frames)
	}
	links := res.Series["links"]
	if len(links) != 30 {
		t.Fatalf("expected 30 link samples, got %d", len(links))
	}
	for i := 0; i < 9; i++ {
		if links[i] != 0 {
			t.Errorf("frame %d has links before the pointer arrived", i+1)
		}
	}
	if links[9] == 0 {
		t.Error("pointer at the centre produced no links")
	}
	if res.Field.Size() != (dynamo.Size{W: 200, H: 150}) {
		t.Errorf("resize event not applied: %v", res.Field.Size())
	}
	if err := res.Field.Validate(); err != nil {
		t.Error(err)
	}
}

func TestReplayIsDeterministic(t *testing.T) {
	s, err := LoadScenario(writeScenario(t, scenarioYAML))
	if err != nil {
		t.Fatal(err)
	}
	a, _ := Replay(context.Background(), s, Options{Quiet: true})
	b, _ := Replay(context.Background(), s, Options{Quiet: true})
	sa, sb := a.Series["mean_speed"], b.Series["mean_speed"]
	for i := range sa {
		if sa[i] != sb[i] {
			t.Fatalf("runs diverged at frame %d", i+1)
		}
	}
}

func TestReplayErrors(t *testing.T) {
	tests := []struct {
		name string
		s    Scenario
		want error
	}{
		{"unknown preset", Scenario{Preset: "nope", Frames: 1}, ErrUnknownPreset},
		{"unknown event", Scenario{Frames: 1, Events: []Event{{Frame: 1, Kind: "click"}}}, dynamo.ErrParameterBounds},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Replay(context.Background(), &tt.s, Options{Quiet: true})
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestReplayCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Replay(ctx, &Scenario{Frames: 10}, Options{Quiet: true})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRunSweep(t *testing.T) {
	sweep := &ParameterSweep{
		Scenario:  Scenario{Preset: "background", Seed: 1, Frames: 50, Width: 300, Height: 200},
		ParamName: "damping",
		ParamMin:  0.5,
		ParamMax:  1,
		NumSteps:  3,
	}
	results, err := RunSweep(context.Background(), sweep)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 || results[2].ParamValue != 1 {
		t.Fatalf("unexpected results %+v", results)
	}
	if !(results[0].MeanSpeed < results[1].MeanSpeed && results[1].MeanSpeed < results[2].MeanSpeed) {
		t.Errorf("mean speed should grow with damping: %+v", results)
	}

	sweep.ParamName = "colour"
	if _, err := RunSweep(context.Background(), sweep); !errors.Is(err, dynamo.ErrParameterBounds) {
		t.Errorf("expected parameter error, got %v", err)
	}
}
