package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/tavolahq/brigade/pkg/core/engine"
)

// ClosureRule marks recurring dates on which the restaurant is closed and
// coverage requirements do not apply
type ClosureRule struct {
	RRule string `yaml:"rrule" validate:"required"`
	Label string `yaml:"label,omitempty"`
}

// Config represents the application configuration
type Config struct {
	DatabaseURL string `yaml:"databaseURL" validate:"required"`

	MaxWeeklyHours         float64 `yaml:"maxWeeklyHours,omitempty" validate:"omitempty,gt=0"`
	MinRestHours           float64 `yaml:"minRestHours,omitempty" validate:"omitempty,gt=0"`
	MaxConsecutiveDays     int     `yaml:"maxConsecutiveDays,omitempty" validate:"omitempty,min=1"`
	ContractToleranceHours float64 `yaml:"contractToleranceHours,omitempty" validate:"omitempty,min=0"`
	MinShiftHours          float64 `yaml:"minShiftHours,omitempty" validate:"omitempty,gt=0"`

	// SplitShiftKeywords and LunchKeywords extend the built-in template
	// keywords recognised by the shift duration rule
	SplitShiftKeywords []string `yaml:"splitShiftKeywords,omitempty"`
	LunchKeywords      []string `yaml:"lunchKeywords,omitempty"`

	ClosureRules []ClosureRule `yaml:"closureRules,omitempty" validate:"dive"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from brigade_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	configPath, err := findConfigFile()
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct and checks rrule syntax
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}

	for i, rule := range cfg.ClosureRules {
		if _, err := rrule.StrToRRule(rule.RRule); err != nil {
			return fmt.Errorf("invalid rrule in closureRules[%d]: %w", i, err)
		}
	}

	return nil
}

// Limits builds the constraint limits from the configured values, falling
// back to the defaults for anything left unset
func (c *Config) Limits() engine.Limits {
	limits := engine.DefaultLimits()
	if c.MaxWeeklyHours > 0 {
		limits.MaxWeeklyHours = c.MaxWeeklyHours
	}
	if c.MinRestHours > 0 {
		limits.MinRestHours = c.MinRestHours
	}
	if c.MaxConsecutiveDays > 0 {
		limits.MaxConsecutiveDays = c.MaxConsecutiveDays
	}
	if c.ContractToleranceHours > 0 {
		limits.ContractToleranceHours = c.ContractToleranceHours
	}
	return limits
}

// findConfigFile searches for brigade_config.yaml in current directory and home directory
func findConfigFile() (string, error) {
	configFileName := "brigade_config.yaml"

	// Check current directory
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName, nil
	}

	// Check home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, configFileName)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
