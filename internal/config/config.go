package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/isinglab/internal/ising"
)

const (
	DefaultSize        = 32
	DefaultTemperature = 2.269
	DefaultJ           = 1.0
	DefaultSteps       = 100000
)

type Config struct {
	Size        int     `yaml:"size"`
	Temperature float64 `yaml:"temperature"`
	J           float64 `yaml:"j"`
	H           float64 `yaml:"h"`
	Steps       int     `yaml:"steps"`
	Seed        int64   `yaml:"seed"`
	Replicas    int     `yaml:"replicas"`
	Record      bool    `yaml:"record"`
}

func DefaultConfig() *Config {
	return &Config{
		Size:        DefaultSize,
		Temperature: DefaultTemperature,
		J:           DefaultJ,
		Steps:       DefaultSteps,
		Replicas:    1,
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

// Params maps the configuration onto simulation parameters.
func (c *Config) Params() ising.Params {
	return ising.Params{
		Size:        c.Size,
		Temperature: c.Temperature,
		J:           c.J,
		H:           c.H,
	}
}
