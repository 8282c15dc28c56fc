package cycles

import (
	"math"
	"strings"

	"github.com/causelab/causim/internal/graph"
)

// LoopType labels the net polarity of a feedback loop.
type LoopType string

const (
	Reinforcing LoopType = "Reinforcing"
	Balancing   LoopType = "Balancing"
)

// Record describes one elementary cycle. Dominance is a 0..100
// relative-strength score against the strongest edge anywhere in the
// graph, so it is only comparable between loops of the same graph.
type Record struct {
	Type      LoopType  `json:"type"`
	Dominance int       `json:"dominance"`
	Nodes     []string  `json:"nodes"`
	Chain     string    `json:"chain"`
	Weights   []float64 `json:"weights"`
}

type detector struct {
	adjacency map[string][]graph.Edge
	maxWeight float64

	path    []string
	weights []float64
	onPath  map[string]int

	seen    map[string]bool
	records []Record
}

// Detect enumerates every elementary cycle reachable through the edge
// list and returns one record per distinct cycle, in discovery order.
// A self-loop counts as a one-node cycle.
func Detect(edges []graph.Edge) []Record {
	d := &detector{
		adjacency: make(map[string][]graph.Edge),
		onPath:    make(map[string]int),
		seen:      make(map[string]bool),
	}

	// Roots in edge appearance order keeps discovery deterministic.
	var roots []string
	noted := make(map[string]bool)
	note := func(id string) {
		if id != "" && !noted[id] {
			noted[id] = true
			roots = append(roots, id)
		}
	}
	for _, e := range edges {
		note(e.From)
		note(e.To)
		d.adjacency[e.From] = append(d.adjacency[e.From], e)
		if w := math.Abs(e.Weight); w > d.maxWeight {
			d.maxWeight = w
		}
	}

	for _, id := range roots {
		d.walk(id)
	}
	return d.records
}

// walk extends the active path through node id, closing a cycle
// whenever an outgoing edge targets a node already on the path. The
// path and weight stacks are pushed and popped together.
func (d *detector) walk(id string) {
	d.onPath[id] = len(d.path)
	d.path = append(d.path, id)

	for _, e := range d.adjacency[id] {
		if at, ok := d.onPath[e.To]; ok {
			nodes := append([]string(nil), d.path[at:]...)
			weights := append([]float64(nil), d.weights[at:]...)
			weights = append(weights, e.Weight)
			d.record(nodes, weights)
			continue
		}
		d.weights = append(d.weights, e.Weight)
		d.walk(e.To)
		d.weights = d.weights[:len(d.weights)-1]
	}

	d.path = d.path[:len(d.path)-1]
	delete(d.onPath, id)
}

func (d *detector) record(nodes []string, weights []float64) {
	key := canonicalKey(nodes)
	if d.seen[key] {
		return
	}
	d.seen[key] = true

	sign := 1.0
	sum := 0.0
	for _, w := range weights {
		switch {
		case w > 0:
			// sign unchanged
		case w < 0:
			sign = -sign
		default:
			sign = 0
		}
		sum += math.Abs(w)
	}

	loopType := Balancing
	if sign > 0 {
		loopType = Reinforcing
	}

	dominance := 0
	if d.maxWeight > 0 {
		mean := sum / float64(len(weights))
		dominance = int(math.Round(100 * mean / d.maxWeight))
		if dominance < 0 {
			dominance = 0
		}
		if dominance > 100 {
			dominance = 100
		}
	}

	d.records = append(d.records, Record{
		Type:      loopType,
		Dominance: dominance,
		Nodes:     nodes,
		Chain:     chain(nodes),
		Weights:   weights,
	})
}

// canonicalKey is the lexicographically smallest rotation of the node
// sequence, so the same cycle found from different start nodes maps to
// one key.
func canonicalKey(nodes []string) string {
	best := 0
	for i := 1; i < len(nodes); i++ {
		if rotationLess(nodes, i, best) {
			best = i
		}
	}
	rotated := make([]string, 0, len(nodes))
	rotated = append(rotated, nodes[best:]...)
	rotated = append(rotated, nodes[:best]...)
	return strings.Join(rotated, "\x1f")
}

// rotationLess reports whether rotation a of nodes orders before
// rotation b.
func rotationLess(nodes []string, a, b int) bool {
	n := len(nodes)
	for i := 0; i < n; i++ {
		x, y := nodes[(a+i)%n], nodes[(b+i)%n]
		if x != y {
			return x < y
		}
	}
	return false
}

func chain(nodes []string) string {
	return strings.Join(nodes, " → ") + " → " + nodes[0]
}
