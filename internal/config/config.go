package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// DefaultCourts is the court roster used when the config file does not
// override it. The names match the courts served by the enforcement
// commissions.
var DefaultCourts = []string{
	"Primera Instancia 1",
	"Primera Instancia 2",
	"Primera Instancia 3",
	"Primera Instancia 4",
	"Primera Instancia 5",
	"Primera Instancia 6",
	"Instrucción 1",
	"Instrucción 2",
	"Instrucción 3",
	"Instrucción 4",
	"Mercantil 1",
	"Mercantil 2",
}

// Config represents the application configuration
type Config struct {
	Backend     string   `yaml:"backend" validate:"required,oneof=postgres memory"`
	DatabaseURL string   `yaml:"databaseURL,omitempty" validate:"required_if=Backend postgres"`
	Courts      []string `yaml:"courts,omitempty" validate:"omitempty,dive,required"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from docket_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return loadNamed("docket_config.yaml")
}

// LoadWithEnv loads the configuration for a named environment, e.g.
// docket_config.test.yaml for env "test".
func LoadWithEnv(env string) (*Config, error) {
	return loadNamed(fmt.Sprintf("docket_config.%s.yaml", env))
}

func loadNamed(name string) (*Config, error) {
	configPath, err := findConfigFile(name)
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

	if len(cfg.Courts) == 0 {
		cfg.Courts = append([]string(nil), DefaultCourts...)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// findConfigFile searches for the named config file in the current directory
// and the home directory
func findConfigFile(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	homeConfigPath := filepath.Join(homeDir, name)
	if _, err := os.Stat(homeConfigPath); err == nil {
		return homeConfigPath, nil
	}

	return "", fmt.Errorf("config file %s not found in current directory or home directory", name)
}
