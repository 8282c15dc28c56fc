package state

import "math"

// FiveFactor is the fixed five-dimensional summary state the engine
// reads in (as an optional anchor) and writes out (as the projection
// of the final snapshot). Output fields stay in [1,10].
type FiveFactor struct {
	Vitality     float64 `json:"vitality" yaml:"vitality"`
	Cognition    float64 `json:"cognition" yaml:"cognition"`
	Emotion      float64 `json:"emotion" yaml:"emotion"`
	Adaptability float64 `json:"adaptability" yaml:"adaptability"`
	Meaning      float64 `json:"meaning" yaml:"meaning"`
}

// Factor identifies one of the five summary dimensions.
type Factor int

const (
	Vitality Factor = iota
	Cognition
	Emotion
	Adaptability
	Meaning
)

var factorNames = [...]string{"vitality", "cognition", "emotion", "adaptability", "meaning"}

func (f Factor) String() string { return factorNames[f] }

// Get returns the named factor's value.
func (s FiveFactor) Get(f Factor) float64 {
	switch f {
	case Vitality:
		return s.Vitality
	case Cognition:
		return s.Cognition
	case Emotion:
		return s.Emotion
	case Adaptability:
		return s.Adaptability
	default:
		return s.Meaning
	}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
