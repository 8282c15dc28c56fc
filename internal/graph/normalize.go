package graph

import (
	"math"
	"sort"
)

// Normalize builds a canonical graph from a loosely structured
// description, typically the result of decoding JSON or YAML into
// interface values. It never fails: unusable fields fall back to
// defaults and an empty result is replaced by the built-in template.
func Normalize(desc any) *Graph {
	var vars []Variable
	var edges []Edge

	if m, ok := desc.(map[string]any); ok {
		vars = normalizeVariables(pick(m, "variables", "nodes", "vars"))
		edges = normalizeEdges(pick(m, "edges", "links", "connections"))
	}

	if len(vars) == 0 || len(edges) == 0 {
		return Template()
	}
	return New(vars, edges)
}

func normalizeVariables(raw any) []Variable {
	var out []Variable
	seen := make(map[string]bool)

	add := func(v Variable) {
		if v.ID == "" || seen[v.ID] {
			return
		}
		seen[v.ID] = true
		out = append(out, v)
	}

	switch t := raw.(type) {
	case []any:
		for _, item := range t {
			switch it := item.(type) {
			case string:
				add(Variable{ID: it, Value: 5, Baseline: 5})
			case map[string]any:
				add(variableFromMap(pickString(it, "id", "name"), it))
			}
		}
	case map[string]any:
		for _, id := range sortedKeys(t) {
			switch it := t[id].(type) {
			case map[string]any:
				add(variableFromMap(id, it))
			default:
				if n, ok := toFloat(it); ok {
					n = Clamp(n, 0, 10)
					add(Variable{ID: id, Value: n, Baseline: n})
				}
			}
		}
	}
	return out
}

func variableFromMap(id string, m map[string]any) Variable {
	value := pickFloat(m, 5, "initial", "value", "start")
	baseline := pickFloat(m, value, "baseline", "setPoint")
	return Variable{
		ID:       id,
		Value:    Clamp(value, 0, 10),
		Baseline: Clamp(baseline, 0, 10),
	}
}

func normalizeEdges(raw any) []Edge {
	var out []Edge

	add := func(from, to string, weight float64) {
		if from == "" || to == "" {
			return
		}
		if math.IsNaN(weight) || math.IsInf(weight, 0) {
			weight = 0
		}
		out = append(out, Edge{From: from, To: to, Weight: weight})
	}

	switch t := raw.(type) {
	case []any:
		for _, item := range t {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			add(pickString(m, "from", "source"),
				pickString(m, "to", "target"),
				pickFloat(m, 0, "weight", "strength", "value"))
		}
	case map[string]any:
		for _, from := range sortedKeys(t) {
			switch it := t[from].(type) {
			case string:
				add(from, it, 0)
			case []any:
				for _, target := range it {
					switch tt := target.(type) {
					case string:
						add(from, tt, 0)
					case map[string]any:
						add(from,
							pickString(tt, "to", "target", "id", "name"),
							pickFloat(tt, 0, "weight", "strength", "value"))
					}
				}
			case map[string]any:
				// Explicit edge record; the key only matters when the
				// record omits its own source.
				src := pickString(it, "from", "source")
				if src == "" {
					src = from
				}
				add(src,
					pickString(it, "to", "target"),
					pickFloat(it, 0, "weight", "strength", "value"))
			}
		}
	}
	return out
}

func pick(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok {
			return v
		}
	}
	return nil
}

func pickString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func pickFloat(m map[string]any, fallback float64, keys ...string) float64 {
	for _, k := range keys {
		v, ok := m[k]
		if !ok {
			continue
		}
		if n, ok := toFloat(v); ok {
			return n
		}
	}
	return fallback
}

// toFloat accepts the numeric types produced by encoding/json and
// yaml.v3 decoding. Non-finite values are rejected.
func toFloat(v any) (float64, bool) {
	var n float64
	switch t := v.(type) {
	case float64:
		n = t
	case float32:
		n = float64(t)
	case int:
		n = float64(t)
	case int64:
		n = float64(t)
	case uint64:
		n = float64(t)
	default:
		return 0, false
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
