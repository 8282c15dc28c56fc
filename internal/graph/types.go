package graph

import "math"

type Variable struct {
	ID       string
	Value    float64
	Baseline float64
}

type Edge struct {
	From   string
	To     string
	Weight float64
}

type Graph struct {
	Variables []Variable
	Edges     []Edge

	index map[string]int
}

func New(vars []Variable, edges []Edge) *Graph {
	g := &Graph{
		Variables: vars,
		Edges:     edges,
		index:     make(map[string]int, len(vars)),
	}
	for i, v := range g.Variables {
		g.index[v.ID] = i
	}
	return g
}

// Lookup returns the index of the variable with the given id.
func (g *Graph) Lookup(id string) (int, bool) {
	i, ok := g.index[id]
	return i, ok
}

func (g *Graph) Has(id string) bool {
	_, ok := g.index[id]
	return ok
}

func (g *Graph) Clone() *Graph {
	vars := make([]Variable, len(g.Variables))
	copy(vars, g.Variables)
	edges := make([]Edge, len(g.Edges))
	copy(edges, g.Edges)
	return New(vars, edges)
}

// Values returns a snapshot map of current variable values.
func (g *Graph) Values() map[string]float64 {
	m := make(map[string]float64, len(g.Variables))
	for _, v := range g.Variables {
		m[v.ID] = v.Value
	}
	return m
}

// Clamp saturates x into [lo, hi]; NaN collapses to lo.
func Clamp(x, lo, hi float64) float64 {
	if math.IsNaN(x) {
		return lo
	}
	return math.Min(hi, math.Max(lo, x))
}
