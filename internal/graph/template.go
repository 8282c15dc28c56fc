package graph

// Canonical variable ids used by the built-in template. The anchor and
// projection tables in the state package key off these.
const (
	VarStress     = "stress"
	VarRumination = "rumination"
	VarIsolation  = "isolation"
	VarBelonging  = "belonging"
	VarMood       = "mood"
	VarEnergy     = "energy"
	VarCoping     = "coping"
	VarPurpose    = "purpose"
)

var templateVariables = []Variable{
	{ID: VarStress, Value: 6.0, Baseline: 4.0},
	{ID: VarRumination, Value: 5.5, Baseline: 3.5},
	{ID: VarIsolation, Value: 6.0, Baseline: 3.0},
	{ID: VarBelonging, Value: 4.0, Baseline: 6.0},
	{ID: VarMood, Value: 4.5, Baseline: 5.5},
	{ID: VarEnergy, Value: 4.5, Baseline: 5.5},
	{ID: VarCoping, Value: 5.0, Baseline: 5.5},
	{ID: VarPurpose, Value: 5.0, Baseline: 6.0},
}

// Isolation/belonging/stress axis. The mutual isolation-belonging
// suppression and the stress-rumination pair are reinforcing; the
// stress-coping pair is balancing.
var templateEdges = []Edge{
	{From: VarIsolation, To: VarBelonging, Weight: -0.8},
	{From: VarBelonging, To: VarIsolation, Weight: -0.6},
	{From: VarBelonging, To: VarMood, Weight: 0.7},
	{From: VarIsolation, To: VarRumination, Weight: 0.4},
	{From: VarRumination, To: VarStress, Weight: 0.6},
	{From: VarStress, To: VarRumination, Weight: 0.5},
	{From: VarStress, To: VarMood, Weight: -0.6},
	{From: VarStress, To: VarCoping, Weight: 0.4},
	{From: VarCoping, To: VarStress, Weight: -0.7},
	{From: VarMood, To: VarEnergy, Weight: 0.5},
	{From: VarEnergy, To: VarCoping, Weight: 0.3},
	{From: VarPurpose, To: VarMood, Weight: 0.4},
}

// Template returns a fresh copy of the built-in 8-variable causal
// graph. Callers own the copy and may mutate it freely.
func Template() *Graph {
	vars := make([]Variable, len(templateVariables))
	copy(vars, templateVariables)
	edges := make([]Edge, len(templateEdges))
	copy(edges, templateEdges)
	return New(vars, edges)
}
