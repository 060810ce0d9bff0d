package config

import (
	"fmt"
	"os"

	"github.com/greboid/termplan/pkg/catalog"
	"github.com/greboid/termplan/pkg/planner"
	"gopkg.in/yaml.v3"
)

const DefaultPath = ".termplan.yaml"

// Config represents the .termplan.yaml settings file
type Config struct {
	Defaults        Defaults       `yaml:"defaults"`
	PreferLightLoad bool           `yaml:"prefer-light-load,omitempty"`
	Format          string         `yaml:"format,omitempty"`
	Policy          []planner.Rule `yaml:"policy,omitempty"`
}

// Defaults are the constraints used when a catalog declares none
type Defaults struct {
	Terms         int  `yaml:"terms"`
	MinCredits    int  `yaml:"min-credits"`
	MaxCredits    int  `yaml:"max-credits"`
	CoreqTogether bool `yaml:"coreq-together,omitempty"`
}

func Default() *Config {
	return &Config{
		Defaults: Defaults{
			Terms:      8,
			MinCredits: 12,
			MaxCredits: 18,
		},
	}
}

// Load reads and parses the settings file
func Load(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return Default(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := Default()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", configPath, err)
	}

	return config, nil
}

func (c *Config) Validate() error {
	if err := c.defaultConstraints().Validate(); err != nil {
		return fmt.Errorf("defaults: %w", err)
	}
	for i, rule := range c.Policy {
		if rule.Category == "" {
			return fmt.Errorf("policy[%d]: category is required", i)
		}
		if len(rule.IDs) == 0 && len(rule.Prefixes) == 0 && len(rule.Groups) == 0 {
			return fmt.Errorf("policy[%d]: rule %q matches nothing", i, rule.Category)
		}
		for _, term := range rule.Terms {
			if term < 1 {
				return fmt.Errorf("policy[%d]: term %d must be at least 1", i, term)
			}
		}
	}
	return nil
}

// Constraints returns the catalog's constraints, or the configured defaults
// when the catalog has none
func (c *Config) Constraints(fromCatalog catalog.Constraints) catalog.Constraints {
	if !fromCatalog.IsEmpty() {
		return fromCatalog
	}
	return c.defaultConstraints()
}

func (c *Config) defaultConstraints() catalog.Constraints {
	return catalog.Constraints{
		Slots:         c.Defaults.Terms,
		MinPerSlot:    c.Defaults.MinCredits,
		MaxPerSlot:    c.Defaults.MaxCredits,
		CoreqTogether: c.Defaults.CoreqTogether,
	}
}

// ClassificationPolicy returns the configured policy, or nil when no rules
// are set
func (c *Config) ClassificationPolicy() planner.ClassificationPolicy {
	if len(c.Policy) == 0 {
		return nil
	}
	return planner.RulePolicy(c.Policy)
}

// Save writes the settings to a file
func (c *Config) Save(configPath string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
