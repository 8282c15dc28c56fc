package sim

import (
	"math"
	"testing"

	"github.com/causelab/causim/internal/graph"
)

func TestIntegrateSnapshotCount(t *testing.T) {
	tests := []struct {
		steps int
		want  int
	}{
		{1, 2},
		{16, 17},
		{0, 1},
	}

	for _, tt := range tests {
		g := graph.Template()
		series := Integrate(g, tt.steps, 0.32, 0.26)
		if len(series) != tt.want {
			t.Errorf("steps=%d: got %d snapshots, want %d", tt.steps, len(series), tt.want)
		}
		if series[0].Step != 0 {
			t.Errorf("first snapshot step = %d, want 0", series[0].Step)
		}
	}
}

func TestIntegrateSelfLoopStep(t *testing.T) {
	// v' = 5 + 1*((5 * -0.5) - 0) = 2.5
	g := graph.New(
		[]graph.Variable{{ID: "X", Value: 5, Baseline: 5}},
		[]graph.Edge{{From: "X", To: "X", Weight: -0.5}},
	)
	series := Integrate(g, 1, 1.0, 0)

	if got := series[1].Values["X"]; got != 2.5 {
		t.Errorf("X after one step = %v, want 2.5", got)
	}
}

func TestIntegrateSynchronousUpdates(t *testing.T) {
	// B's influence on A must use B's step-start value, not the value
	// written earlier in the same pass.
	g := graph.New(
		[]graph.Variable{
			{ID: "A", Value: 4, Baseline: 4},
			{ID: "B", Value: 6, Baseline: 6},
		},
		[]graph.Edge{
			{From: "A", To: "B", Weight: 0.5},
			{From: "B", To: "A", Weight: 0.5},
		},
	)
	series := Integrate(g, 1, 1.0, 0)

	if got := series[1].Values["A"]; got != 7 {
		t.Errorf("A = %v, want 7 (4 + 6*0.5)", got)
	}
	if got := series[1].Values["B"]; got != 8 {
		t.Errorf("B = %v, want 8 (6 + 4*0.5)", got)
	}
}

func TestIntegrateDamping(t *testing.T) {
	// No edges feeding Y: pure relaxation toward baseline.
	g := graph.New(
		[]graph.Variable{{ID: "Y", Value: 8, Baseline: 4}},
		[]graph.Edge{{From: "Y", To: "nowhere", Weight: 1}},
	)
	series := Integrate(g, 1, 0.5, 0.5)

	// 8 + 0.5*(0 - 0.5*(8-4)) = 7
	if got := series[1].Values["Y"]; got != 7 {
		t.Errorf("Y = %v, want 7", got)
	}
}

func TestIntegrateIgnoresUnknownEndpoints(t *testing.T) {
	g := graph.New(
		[]graph.Variable{{ID: "A", Value: 5, Baseline: 5}},
		[]graph.Edge{
			{From: "ghost", To: "A", Weight: 10},
			{From: "A", To: "ghost", Weight: 10},
		},
	)
	series := Integrate(g, 4, 1.0, 0)

	for _, snap := range series {
		if got := snap.Values["A"]; got != 5 {
			t.Fatalf("step %d: A = %v, want untouched 5", snap.Step, got)
		}
	}
}

func TestIntegrateStaysInRange(t *testing.T) {
	g := graph.New(
		[]graph.Variable{
			{ID: "up", Value: 9, Baseline: 9},
			{ID: "down", Value: 1, Baseline: 1},
		},
		[]graph.Edge{
			{From: "up", To: "up", Weight: 5},
			{From: "down", To: "down", Weight: -5},
		},
	)
	series := Integrate(g, 8, 1.0, 0)

	for _, snap := range series {
		for id, v := range snap.Values {
			if v < 0 || v > 10 || math.IsNaN(v) {
				t.Fatalf("step %d: %s = %v escaped [0,10]", snap.Step, id, v)
			}
		}
	}
}

func TestOptionsSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   Options
		want Options
	}{
		{"zero value", Options{}, Options{Steps: 16, Dt: 0.32, Damping: 0}},
		{"negative steps", Options{Steps: -3, Dt: 0.1, Damping: 0.1}, Options{Steps: 16, Dt: 0.1, Damping: 0.1}},
		{"nan dt", Options{Steps: 4, Dt: math.NaN(), Damping: 0.1}, Options{Steps: 4, Dt: 0.32, Damping: 0.1}},
		{"inf damping", Options{Steps: 4, Dt: 0.1, Damping: math.Inf(1)}, Options{Steps: 4, Dt: 0.1, Damping: 0.26}},
		{"zero damping kept", Options{Steps: 4, Dt: 0.1, Damping: 0}, Options{Steps: 4, Dt: 0.1, Damping: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.Sanitize()
			if got.Steps != tt.want.Steps || got.Dt != tt.want.Dt || got.Damping != tt.want.Damping {
				t.Errorf("Sanitize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
