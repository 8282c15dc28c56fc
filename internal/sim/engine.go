package sim

import (
	"github.com/causelab/causim/internal/cycles"
	"github.com/causelab/causim/internal/graph"
	"github.com/causelab/causim/internal/state"
)

// Engine runs the full causal-loop pipeline: normalize the loose
// graph description, anchor the initial condition, integrate the
// trajectory, enumerate feedback loops on the static edge set, and
// project the final snapshot to a five-factor state. Each run owns
// its graph, so one Engine is safe for concurrent use.
type Engine struct {
	metrics []func(*graph.Graph) Metric
}

func NewEngine() *Engine {
	return &Engine{}
}

// AddMetric registers a metric factory; each run gets fresh instances
// built against that run's anchored graph.
func (e *Engine) AddMetric(factory func(*graph.Graph) Metric) {
	e.metrics = append(e.metrics, factory)
}

// Run never fails: malformed descriptions fall back to the template
// graph and unusable options to fixed defaults.
func (e *Engine) Run(desc any, opts Options) *Result {
	opts = opts.Sanitize()

	g := graph.Normalize(desc)
	state.Anchor(g, opts.InitialState)

	// Loop structure is read from the raw edge list before
	// integration, unfiltered by the variable set.
	loops := cycles.Detect(g.Edges)

	// Metrics capture baselines before integration mutates the graph.
	metrics := make([]Metric, 0, len(e.metrics))
	for _, factory := range e.metrics {
		metrics = append(metrics, factory(g))
	}

	series := Integrate(g, opts.Steps, opts.Dt, opts.Damping)

	result := &Result{
		Loops:    loops,
		Series:   series,
		NewState: state.Project(series.Final()),
		Metrics:  make(map[string]float64, len(metrics)),
	}

	for _, m := range metrics {
		m.Reset()
		for _, snap := range series {
			m.Observe(snap)
		}
		result.Metrics[m.Name()] = m.Value()
	}
	return result
}
