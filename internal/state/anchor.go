package state

import "github.com/causelab/causim/internal/graph"

// anchorTable ties each canonical template variable to the summary
// factors that seed it. Variables outside this table are never
// anchored.
var anchorTable = map[string][]Factor{
	graph.VarStress:     {Emotion, Adaptability},
	graph.VarRumination: {Cognition, Emotion},
	graph.VarIsolation:  {Emotion},
	graph.VarBelonging:  {Emotion, Meaning},
	graph.VarMood:       {Emotion, Vitality},
	graph.VarEnergy:     {Vitality},
	graph.VarCoping:     {Adaptability, Cognition},
	graph.VarPurpose:    {Meaning},
}

// Anchor overrides the starting value and baseline of canonical
// variables from a possibly partial five-factor state, keyed by factor
// name. For each table-associated variable the mean of the finite
// referenced factors becomes both value and baseline, so damping pulls
// toward the supplied state rather than the template default. Missing
// or non-finite factors are skipped; a variable whose factors are all
// absent is left untouched, as is every non-canonical variable.
func Anchor(g *graph.Graph, factors map[string]float64) {
	if len(factors) == 0 {
		return
	}
	for i := range g.Variables {
		refs, ok := anchorTable[g.Variables[i].ID]
		if !ok {
			continue
		}
		sum, n := 0.0, 0
		for _, f := range refs {
			v, present := factors[f.String()]
			if !present || !finite(v) {
				continue
			}
			sum += v
			n++
		}
		if n == 0 {
			continue
		}
		mean := graph.Clamp(sum/float64(n), 0, 10)
		g.Variables[i].Value = mean
		g.Variables[i].Baseline = mean
	}
}
