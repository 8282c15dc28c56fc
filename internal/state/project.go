package state

import "github.com/causelab/causim/internal/graph"

// projection lists the canonical variables that push a factor up
// (pos) and down (neg).
type projection struct {
	pos []string
	neg []string
}

var projectionTable = map[Factor]projection{
	Vitality: {
		pos: []string{graph.VarEnergy},
		neg: []string{graph.VarStress},
	},
	Cognition: {
		pos: []string{graph.VarCoping},
		neg: []string{graph.VarRumination},
	},
	Emotion: {
		pos: []string{graph.VarMood, graph.VarBelonging},
		neg: []string{graph.VarStress, graph.VarIsolation},
	},
	Adaptability: {
		pos: []string{graph.VarCoping, graph.VarEnergy},
		neg: []string{graph.VarRumination},
	},
	Meaning: {
		pos: []string{graph.VarPurpose, graph.VarBelonging},
		neg: []string{graph.VarIsolation},
	},
}

// projectionGain compresses extremes toward the midpoint; the read-out
// is a fixed linear formula, not a fitted one.
const projectionGain = 0.6

// Project reduces a final snapshot of variable values to the
// five-factor summary state. Variables missing from the snapshot count
// as neutral 5, and every output factor is clamped to [1,10].
func Project(values map[string]float64) FiveFactor {
	factor := func(f Factor) float64 {
		p := projectionTable[f]
		pos := setMean(values, p.pos)
		neg := setMean(values, p.neg)
		return graph.Clamp(5+projectionGain*(pos-5)-projectionGain*(neg-5), 1, 10)
	}
	return FiveFactor{
		Vitality:     factor(Vitality),
		Cognition:    factor(Cognition),
		Emotion:      factor(Emotion),
		Adaptability: factor(Adaptability),
		Meaning:      factor(Meaning),
	}
}

func setMean(values map[string]float64, ids []string) float64 {
	if len(ids) == 0 {
		return 5
	}
	sum := 0.0
	for _, id := range ids {
		if v, ok := values[id]; ok {
			sum += v
		} else {
			sum += 5
		}
	}
	return sum / float64(len(ids))
}
