package storage

import (
	"testing"

	"github.com/causelab/causim/internal/cycles"
	"github.com/causelab/causim/internal/sim"
	"github.com/causelab/causim/internal/state"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		Loops: []cycles.Record{
			{
				Type:      cycles.Balancing,
				Dominance: 70,
				Nodes:     []string{"a", "b"},
				Chain:     "a → b → a",
				Weights:   []float64{0.5, -0.5},
			},
		},
		Series: sim.TimeSeries{
			{Step: 0, Values: map[string]float64{"a": 5, "b": 3}},
			{Step: 1, Values: map[string]float64{"a": 4.5, "b": 3.25}},
		},
		NewState: state.FiveFactor{Vitality: 5, Cognition: 5, Emotion: 4.2, Adaptability: 5, Meaning: 5},
		Metrics:  map[string]float64{"settling": 0.8},
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	opts := sim.Options{Steps: 1, Dt: 0.32, Damping: 0.26}
	runID, err := st.Save("demo", opts, sampleResult())
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	meta, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if meta.Name != "demo" || meta.Steps != 1 || meta.Dt != 0.32 {
		t.Errorf("metadata = %+v", meta)
	}
	if len(meta.Loops) != 1 || meta.Loops[0].Dominance != 70 {
		t.Errorf("loops = %+v", meta.Loops)
	}
	if meta.NewState.Emotion != 4.2 {
		t.Errorf("newState.emotion = %v, want 4.2", meta.NewState.Emotion)
	}
	if meta.Metrics["settling"] != 0.8 {
		t.Errorf("metrics = %v", meta.Metrics)
	}
}

func TestLoadSeries(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	runID, err := st.Save("demo", sim.Options{Steps: 1, Dt: 0.32, Damping: 0.26}, sampleResult())
	if err != nil {
		t.Fatal(err)
	}

	ids, series, err := st.LoadSeries(runID)
	if err != nil {
		t.Fatalf("load series failed: %v", err)
	}

	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("ids = %v, want [a b]", ids)
	}
	if len(series) != 2 {
		t.Fatalf("got %d snapshots, want 2", len(series))
	}
	if series[1].Step != 1 || series[1].Values["b"] != 3.25 {
		t.Errorf("snapshot 1 = %+v", series[1])
	}
}

func TestList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatal(err)
	}

	if _, err := st.Save("one", sim.Options{Steps: 1}, sampleResult()); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Save("two", sim.Options{Steps: 1}, sampleResult()); err != nil {
		t.Fatal(err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("got %d runs, want 2", len(runs))
	}
}

func TestListEmptyDir(t *testing.T) {
	st := New(t.TempDir())
	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("got %d runs, want 0", len(runs))
	}
}

func TestLoadUnknownRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("missing_123"); err == nil {
		t.Error("expected error for unknown run")
	}
}
