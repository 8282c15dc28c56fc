package metrics

import (
	"math"

	"github.com/causelab/causim/internal/graph"
	"github.com/causelab/causim/internal/sim"
)

// Settling measures how far the trajectory closed the gap to its
// baselines: 1 means the final snapshot sits on the set points, 0
// means no improvement over the initial deviation.
type Settling struct {
	baselines map[string]float64
	initial   float64
	final     float64
	observed  bool
}

func NewSettling(g *graph.Graph) *Settling {
	baselines := make(map[string]float64, len(g.Variables))
	for _, v := range g.Variables {
		baselines[v.ID] = v.Baseline
	}
	return &Settling{baselines: baselines}
}

func (s *Settling) Name() string { return "settling" }

func (s *Settling) Observe(snap sim.Snapshot) {
	dev := s.deviation(snap.Values)
	if !s.observed {
		s.initial = dev
		s.observed = true
	}
	s.final = dev
}

func (s *Settling) Value() float64 {
	if !s.observed || s.initial == 0 {
		return 1.0
	}
	v := 1.0 - s.final/s.initial
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (s *Settling) Reset() {
	s.initial = 0
	s.final = 0
	s.observed = false
}

func (s *Settling) deviation(values map[string]float64) float64 {
	if len(s.baselines) == 0 {
		return 0
	}
	sum := 0.0
	for id, b := range s.baselines {
		if v, ok := values[id]; ok {
			sum += math.Abs(v - b)
		}
	}
	return sum / float64(len(s.baselines))
}

// Volatility is the mean absolute per-step change averaged over all
// variables; a quiet trajectory scores near zero.
type Volatility struct {
	prev    map[string]float64
	sum     float64
	samples int
}

func NewVolatility() *Volatility {
	return &Volatility{}
}

func (v *Volatility) Name() string { return "volatility" }

func (v *Volatility) Observe(snap sim.Snapshot) {
	if v.prev != nil && len(v.prev) > 0 {
		step := 0.0
		for id, val := range snap.Values {
			step += math.Abs(val - v.prev[id])
		}
		v.sum += step / float64(len(v.prev))
		v.samples++
	}
	v.prev = snap.Values
}

func (v *Volatility) Value() float64 {
	if v.samples == 0 {
		return 0
	}
	return v.sum / float64(v.samples)
}

func (v *Volatility) Reset() {
	v.prev = nil
	v.sum = 0
	v.samples = 0
}

// Envelope counts snapshots with any value outside [0,10]; the
// integrator clamps, so anything below 1.0 flags a bug.
type Envelope struct {
	violations int
	samples    int
}

func NewEnvelope() *Envelope {
	return &Envelope{}
}

func (e *Envelope) Name() string { return "envelope" }

func (e *Envelope) Observe(snap sim.Snapshot) {
	e.samples++
	for _, v := range snap.Values {
		if v < 0 || v > 10 || math.IsNaN(v) {
			e.violations++
			break
		}
	}
}

func (e *Envelope) Value() float64 {
	if e.samples == 0 {
		return 1.0
	}
	return 1.0 - float64(e.violations)/float64(e.samples)
}

func (e *Envelope) Reset() {
	e.violations = 0
	e.samples = 0
}

// Standard returns the default metric set wired into engine runs.
func Standard() []func(*graph.Graph) sim.Metric {
	return []func(*graph.Graph) sim.Metric{
		func(g *graph.Graph) sim.Metric { return NewSettling(g) },
		func(*graph.Graph) sim.Metric { return NewVolatility() },
		func(*graph.Graph) sim.Metric { return NewEnvelope() },
	}
}
