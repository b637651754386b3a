package config

import (
	"fmt"
	"os"

	"github.com/san-kum/flingsim/internal/parser"
	"gopkg.in/yaml.v3"
)

const (
	DefaultBoard    = "default"
	DefaultDt       = 0.04
	DefaultDuration = 10.0
	DefaultFPS      = 25
	DefaultOutput   = "./data"
	DefaultLogLevel = "info"
)

// Config is a run configuration. Board is either a preset name or the path
// of a .fb or YAML board file.
type Config struct {
	Board    string  `yaml:"board"`
	Dt       float64 `yaml:"dt"`
	Duration float64 `yaml:"duration"`
	FPS      int     `yaml:"fps"`
	Seed     int64   `yaml:"seed"`
	Output   string  `yaml:"output"`
	LogLevel string  `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		Board:    DefaultBoard,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		FPS:      DefaultFPS,
		Output:   DefaultOutput,
		LogLevel: DefaultLogLevel,
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

func (c *Config) Validate() error {
	if c.Board == "" {
		return fmt.Errorf("board must be set")
	}
	if c.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", c.Duration)
	}
	if c.FPS <= 0 {
		return fmt.Errorf("fps must be positive, got %d", c.FPS)
	}
	return nil
}

// LoadBoard resolves ref as a preset name first and then as a file path.
func LoadBoard(ref string) (*parser.Description, error) {
	if src, ok := GetPreset(ref); ok {
		d, err := parser.ParseFB(src)
		if err != nil {
			return nil, fmt.Errorf("preset %s: %w", ref, err)
		}
		return d, nil
	}
	return parser.ParseFile(ref)
}

// Source returns the raw board text behind ref.
func Source(ref string) ([]byte, error) {
	if src, ok := GetPreset(ref); ok {
		return []byte(src), nil
	}
	return os.ReadFile(ref)
}
