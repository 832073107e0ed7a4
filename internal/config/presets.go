package config

var Presets = map[string]*Config{
	"cold": {
		Size: 32, Temperature: 1.0, J: 1.0, Steps: 200000,
	},
	"critical": {
		Size: 64, Temperature: 2.269, J: 1.0, Steps: 500000,
	},
	"hot": {
		Size: 32, Temperature: 5.0, J: 1.0, Steps: 100000,
	},
	"quench": {
		Size: 64, Temperature: 0.5, J: 1.0, Steps: 1000000,
	},
	"field": {
		Size: 32, Temperature: 2.0, J: 1.0, H: 0.5, Steps: 200000,
	},
	"tiny": {
		Size: 8, Temperature: 2.269, J: 1.0, Steps: 50000,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out := *cfg
	if out.Replicas == 0 {
		out.Replicas = 1
	}
	return &out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
