package graph

import "testing"

func TestTemplateShape(t *testing.T) {
	g := Template()

	if len(g.Variables) != 8 {
		t.Fatalf("got %d variables, want 8", len(g.Variables))
	}
	if len(g.Edges) != 12 {
		t.Fatalf("got %d edges, want 12", len(g.Edges))
	}

	seen := make(map[string]bool)
	for _, v := range g.Variables {
		if seen[v.ID] {
			t.Errorf("duplicate variable id %q", v.ID)
		}
		seen[v.ID] = true
		if v.Value < 0 || v.Value > 10 || v.Baseline < 0 || v.Baseline > 10 {
			t.Errorf("%s out of range: value=%v baseline=%v", v.ID, v.Value, v.Baseline)
		}
	}

	for _, e := range g.Edges {
		if !g.Has(e.From) || !g.Has(e.To) {
			t.Errorf("edge %s->%s references unknown variable", e.From, e.To)
		}
	}
}

func TestTemplateReturnsFreshCopy(t *testing.T) {
	a := Template()
	a.Variables[0].Value = 0
	a.Edges[0].Weight = 99

	b := Template()
	if b.Variables[0].Value == 0 {
		t.Error("template variables shared between copies")
	}
	if b.Edges[0].Weight == 99 {
		t.Error("template edges shared between copies")
	}
}
