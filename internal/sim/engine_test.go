package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/causelab/causim/internal/cycles"
	"github.com/causelab/causim/internal/graph"
)

func TestEngineRunOnEmptyDescription(t *testing.T) {
	result := NewEngine().Run(map[string]any{}, Options{Steps: 16, Dt: 0.32, Damping: 0.26})

	require.Len(t, result.Series, 17)
	assert.Len(t, result.Series[0].Values, 8, "template graph expected")

	require.NotEmpty(t, result.Loops)
	var reinforcing, balancing bool
	for _, loop := range result.Loops {
		switch loop.Type {
		case cycles.Reinforcing:
			reinforcing = true
		case cycles.Balancing:
			balancing = true
		}
	}
	assert.True(t, reinforcing)
	assert.True(t, balancing)

	for _, v := range []float64{
		result.NewState.Vitality, result.NewState.Cognition, result.NewState.Emotion,
		result.NewState.Adaptability, result.NewState.Meaning,
	} {
		assert.GreaterOrEqual(t, v, 1.0)
		assert.LessOrEqual(t, v, 10.0)
	}
}

func TestEngineIsDeterministic(t *testing.T) {
	desc := map[string]any{
		"variables": []any{
			map[string]any{"id": "a", "value": 3.0},
			map[string]any{"id": "b", "value": 7.0},
		},
		"edges": []any{
			map[string]any{"from": "a", "to": "b", "weight": 0.4},
			map[string]any{"from": "b", "to": "a", "weight": -0.6},
		},
	}
	opts := Options{
		InitialState: map[string]float64{"emotion": 4},
		Steps:        16, Dt: 0.32, Damping: 0.26,
	}

	engine := NewEngine()
	first := engine.Run(desc, opts)
	second := engine.Run(desc, opts)

	assert.Equal(t, first.Series, second.Series)
	assert.Equal(t, first.Loops, second.Loops)
	assert.Equal(t, first.NewState, second.NewState)
}

func TestEngineAnchorOverridesGraphValues(t *testing.T) {
	// The description says mood starts at 9; the anchor state wins.
	desc := map[string]any{
		"variables": []any{
			map[string]any{"id": graph.VarMood, "value": 9.0},
			map[string]any{"id": graph.VarStress, "value": 9.0},
		},
		"edges": []any{
			map[string]any{"from": graph.VarStress, "to": graph.VarMood, "weight": -0.5},
		},
	}
	result := NewEngine().Run(desc, Options{
		InitialState: map[string]float64{"emotion": 3, "vitality": 5},
		Steps:        1, Dt: 0.32, Damping: 0.26,
	})

	// mood anchors to mean(emotion, vitality) = 4.
	assert.Equal(t, 4.0, result.Series[0].Values[graph.VarMood])
}

func TestEngineIsTotal(t *testing.T) {
	descs := []any{
		nil,
		"not a graph",
		42,
		[]any{"stray"},
		map[string]any{"variables": "bogus", "edges": 7},
	}
	for _, desc := range descs {
		result := NewEngine().Run(desc, Options{Steps: -1, Dt: math.Inf(1), Damping: math.NaN()})
		require.NotNil(t, result)
		assert.Len(t, result.Series, DefaultSteps+1)
		assert.NotEmpty(t, result.Loops)
	}
}

func TestEngineCountsGhostEdgesForLoopsOnly(t *testing.T) {
	// phantom never integrates, yet its loop is reported.
	desc := map[string]any{
		"variables": []any{map[string]any{"id": "real", "value": 5.0}},
		"edges": []any{
			map[string]any{"from": "phantom", "to": "phantom", "weight": -0.3},
		},
	}
	result := NewEngine().Run(desc, Options{Steps: 2, Dt: 0.5, Damping: 0})

	require.Len(t, result.Loops, 1)
	assert.Equal(t, []string{"phantom"}, result.Loops[0].Nodes)

	for _, snap := range result.Series {
		_, ok := snap.Values["phantom"]
		assert.False(t, ok, "phantom must not be integrated")
		assert.Equal(t, 5.0, snap.Values["real"])
	}
}

type countingMetric struct {
	observed int
}

func (c *countingMetric) Name() string     { return "count" }
func (c *countingMetric) Observe(Snapshot) { c.observed++ }
func (c *countingMetric) Value() float64   { return float64(c.observed) }
func (c *countingMetric) Reset()           { c.observed = 0 }

func TestEngineRunsMetricsOverSeries(t *testing.T) {
	engine := NewEngine()
	engine.AddMetric(func(*graph.Graph) Metric { return &countingMetric{} })

	result := engine.Run(nil, Options{Steps: 4, Dt: 0.32, Damping: 0.26})
	assert.Equal(t, 5.0, result.Metrics["count"])
}
