package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/JasonAgung/tango-puzzle/internal/domain"
)

// Band sets the generation targets for one difficulty: how many given cells
// survive minimization and how many constraint edges get attached. Bands are
// configuration, not algorithm.
type Band struct {
	MinGivens int `yaml:"min_givens"`
	MaxGivens int `yaml:"max_givens"`
	MinEdges  int `yaml:"min_edges"`
	MaxEdges  int `yaml:"max_edges"`
}

// Config holds the difficulty table and the generation retry budget.
type Config struct {
	Bands map[domain.Difficulty]Band `yaml:"bands"`
	// MaxRestarts bounds full generation restarts before giving up with
	// ErrGenerationBudget. Difficulty targets are a hard contract.
	MaxRestarts int `yaml:"max_restarts"`
}

// Default returns the built-in band table: easy keeps more givens and fewer
// edges, hard the reverse.
func Default() *Config {
	return &Config{
		Bands: map[domain.Difficulty]Band{
			domain.Easy:   {MinGivens: 22, MaxGivens: 26, MinEdges: 4, MaxEdges: 6},
			domain.Medium: {MinGivens: 12, MaxGivens: 16, MinEdges: 6, MaxEdges: 10},
			domain.Hard:   {MinGivens: 6, MaxGivens: 10, MinEdges: 10, MaxEdges: 15},
		},
		MaxRestarts: 20,
	}
}

// Load reads a YAML file over the defaults, so a file may override a single
// band without restating the table.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Band looks up the targets for a difficulty.
func (c *Config) Band(d domain.Difficulty) (Band, error) {
	b, ok := c.Bands[d]
	if !ok {
		return Band{}, fmt.Errorf("%w: unknown difficulty %q", domain.ErrInvalidInput, d)
	}
	return b, nil
}

func (c *Config) check() error {
	total := domain.Size * domain.Size
	for d, b := range c.Bands {
		if b.MinGivens < 0 || b.MaxGivens > total || b.MinGivens > b.MaxGivens {
			return fmt.Errorf("%w: bad given range for %q", domain.ErrInvalidInput, d)
		}
		if b.MinEdges < 0 || b.MinEdges > b.MaxEdges {
			return fmt.Errorf("%w: bad edge range for %q", domain.ErrInvalidInput, d)
		}
	}
	if c.MaxRestarts < 1 {
		return fmt.Errorf("%w: max_restarts must be positive", domain.ErrInvalidInput)
	}
	return nil
}
