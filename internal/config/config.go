package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/causelab/causim/internal/sim"
)

type Config struct {
	// Graph is an optional path to a YAML or JSON graph description;
	// empty means the built-in template.
	Graph   string             `yaml:"graph"`
	Steps   int                `yaml:"steps"`
	Dt      float64            `yaml:"dt"`
	Damping float64            `yaml:"damping"`
	State   map[string]float64 `yaml:"state"`
}

func DefaultConfig() *Config {
	return &Config{
		Steps:   sim.DefaultSteps,
		Dt:      sim.DefaultDt,
		Damping: sim.DefaultDamping,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Options converts the config into engine options.
func (c *Config) Options() sim.Options {
	return sim.Options{
		InitialState: c.State,
		Steps:        c.Steps,
		Dt:           c.Dt,
		Damping:      c.Damping,
	}
}

// LoadGraph reads a graph description file into the loose structure
// the normalizer expects. JSON files decode via encoding/json, all
// other extensions via yaml.
func LoadGraph(path string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var desc any
	if filepath.Ext(path) == ".json" {
		if err := json.Unmarshal(data, &desc); err != nil {
			return nil, fmt.Errorf("parse graph %s: %w", path, err)
		}
		return desc, nil
	}
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("parse graph %s: %w", path, err)
	}
	return normalizeYAML(desc), nil
}

// normalizeYAML rewrites yaml.v3's map[string]any values recursively
// so the normalizer sees the same shapes json produces.
func normalizeYAML(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			t[k] = normalizeYAML(val)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, val := range t {
			m[fmt.Sprint(k)] = normalizeYAML(val)
		}
		return m
	case []any:
		for i, val := range t {
			t[i] = normalizeYAML(val)
		}
		return t
	default:
		return v
	}
}
