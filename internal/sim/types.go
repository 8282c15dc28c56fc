package sim

import (
	"math"

	"github.com/causelab/causim/internal/cycles"
	"github.com/causelab/causim/internal/state"
)

// Defaults substituted when options arrive missing or non-finite; the
// engine never rejects input.
const (
	DefaultSteps   = 16
	DefaultDt      = 0.32
	DefaultDamping = 0.26
)

type Options struct {
	// InitialState optionally anchors canonical variables before the
	// first step; keys are five-factor names, partial maps are fine.
	InitialState map[string]float64

	Steps   int
	Dt      float64
	Damping float64
}

// Sanitize returns a copy with unusable fields reset to defaults.
func (o Options) Sanitize() Options {
	if o.Steps <= 0 {
		o.Steps = DefaultSteps
	}
	if o.Dt <= 0 || math.IsNaN(o.Dt) || math.IsInf(o.Dt, 0) {
		o.Dt = DefaultDt
	}
	if o.Damping < 0 || math.IsNaN(o.Damping) || math.IsInf(o.Damping, 0) {
		o.Damping = DefaultDamping
	}
	return o
}

// Snapshot is the full variable state after a given step; step 0 is
// the initial condition.
type Snapshot struct {
	Step   int                `json:"step"`
	Values map[string]float64 `json:"values"`
}

type TimeSeries []Snapshot

// Final returns the last snapshot's values, or nil for an empty series.
func (ts TimeSeries) Final() map[string]float64 {
	if len(ts) == 0 {
		return nil
	}
	return ts[len(ts)-1].Values
}

type Result struct {
	Loops    []cycles.Record    `json:"loopsDetected"`
	Series   TimeSeries         `json:"timeSeries"`
	NewState state.FiveFactor   `json:"newState"`
	Metrics  map[string]float64 `json:"metrics"`
}

// Metric observes each snapshot of a run and reduces it to a single
// number afterwards.
type Metric interface {
	Name() string
	Observe(s Snapshot)
	Value() float64
	Reset()
}
