package config

// Presets are named starting conditions for the built-in template
// graph, expressed as five-factor anchor states.
var Presets = map[string]*Config{
	"baseline": {
		Steps: 16, Dt: 0.32, Damping: 0.26,
	},
	"burnout": {
		Steps: 16, Dt: 0.32, Damping: 0.26,
		State: map[string]float64{
			"vitality": 2.5, "cognition": 4, "emotion": 3,
			"adaptability": 3.5, "meaning": 4,
		},
	},
	"recovery": {
		Steps: 24, Dt: 0.32, Damping: 0.34,
		State: map[string]float64{
			"vitality": 5.5, "cognition": 6, "emotion": 5,
			"adaptability": 6.5, "meaning": 6,
		},
	},
	"crisis": {
		Steps: 16, Dt: 0.32, Damping: 0.18,
		State: map[string]float64{
			"vitality": 2, "cognition": 3, "emotion": 1.5,
			"adaptability": 2, "meaning": 2.5,
		},
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
