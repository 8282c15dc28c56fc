package sim

import "github.com/causelab/causim/internal/graph"

// Integrate advances the graph through steps synchronous damped-linear
// updates and returns the trajectory: snapshot 0 is the initial
// condition, followed by one snapshot per step. The graph is mutated
// in place; callers wanting the original intact pass a clone.
func Integrate(g *graph.Graph, steps int, dt, damping float64) TimeSeries {
	series := make(TimeSeries, 0, steps+1)
	series = append(series, Snapshot{Step: 0, Values: g.Values()})

	influence := make(map[string]float64, len(g.Variables))

	for step := 1; step <= steps; step++ {
		clear(influence)

		// Edge endpoints outside the variable set carry no influence;
		// they still exist for loop analysis.
		for _, e := range g.Edges {
			from, ok := g.Lookup(e.From)
			if !ok || !g.Has(e.To) {
				continue
			}
			influence[e.To] += g.Variables[from].Value * e.Weight
		}

		// All reads above used step-start values, so the writes below
		// are safe within the same pass.
		for i := range g.Variables {
			v := &g.Variables[i]
			delta := influence[v.ID] - damping*(v.Value-v.Baseline)
			v.Value = graph.Clamp(v.Value+dt*delta, 0, 10)
		}

		series = append(series, Snapshot{Step: step, Values: g.Values()})
	}
	return series
}
